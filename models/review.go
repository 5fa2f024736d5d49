package models

import "time"

// ReviewType tags which entity kind a review targets.
type ReviewType string

const (
	ReviewTypeTourGuide ReviewType = "tour_guide"
	ReviewTypeEvent     ReviewType = "event"
	ReviewTypeProduct   ReviewType = "product"
)

// Review is the generalized review entity. One review per
// (tourist, reviewType, entity); acceptance requires proof of consumption
// (an attended booking or a delivered order).
type Review struct {
	ID         string     `bson:"id" json:"id"`
	TouristID  string     `bson:"tourist_id" json:"touristId"`
	ReviewType ReviewType `bson:"review_type" json:"reviewType"`
	EntityID   string     `bson:"entity_id" json:"entityId"`
	Rating     float64    `bson:"rating" json:"rating"`
	Comment    string     `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt  time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time  `bson:"updated_at" json:"updatedAt"`
}
