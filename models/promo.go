package models

import "time"

// PromoType distinguishes generally usable codes from user-scoped birthday codes.
type PromoType string

const (
	PromoTypeRegular  PromoType = "REGULAR"
	PromoTypeBirthday PromoType = "BIRTHDAY"
)

// PromoCode is a discount voucher with usage-limit and expiry semantics.
// Birthday codes are owned by a single user and only valid during that
// user's birth month.
type PromoCode struct {
	ID         string    `bson:"id" json:"id"`
	Code       string    `bson:"code" json:"code"`
	Type       PromoType `bson:"type" json:"type"`
	DiscountPC float64   `bson:"discount_percent" json:"discountPercent"`
	ExpiresAt  time.Time `bson:"expires_at" json:"expiresAt"`
	UsageLimit int       `bson:"usage_limit" json:"usageLimit"`
	UsedCount  int       `bson:"used_count" json:"usedCount"`
	Active     bool      `bson:"active" json:"active"`
	OwnerID    string    `bson:"owner_id,omitempty" json:"ownerId,omitempty"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updatedAt"`
}

// PromoValidation is what a successful validation returns. Validation never
// mutates the usage counter; consumption happens at purchase time.
type PromoValidation struct {
	Code            string  `json:"code"`
	DiscountPercent float64 `json:"discountPercent"`
	DiscountAmount  float64 `json:"discountAmount"`
	FinalAmount     float64 `json:"finalAmount"`
}
