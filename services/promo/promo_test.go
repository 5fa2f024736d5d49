package promo

import (
	"strings"
	"testing"
	"time"

	"tripmart/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePromoRepo struct {
	codes map[string]*models.PromoCode
}

func newFakePromoRepo() *fakePromoRepo {
	return &fakePromoRepo{codes: make(map[string]*models.PromoCode)}
}

func (f *fakePromoRepo) Create(p *models.PromoCode) error {
	cp := *p
	f.codes[p.Code] = &cp
	return nil
}

func (f *fakePromoRepo) GetByCode(code string) (*models.PromoCode, error) {
	p, ok := f.codes[code]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakePromoRepo) Consume(code string) (bool, error) {
	p, ok := f.codes[code]
	if !ok || !p.Active || time.Now().After(p.ExpiresAt) || p.UsedCount >= p.UsageLimit {
		return false, nil
	}
	p.UsedCount++
	return true, nil
}

func (f *fakePromoRepo) HasActiveBirthdayCode(ownerID string) (bool, error) {
	for _, p := range f.codes {
		if p.Type == models.PromoTypeBirthday && p.OwnerID == ownerID &&
			p.Active && time.Now().Before(p.ExpiresAt) {
			return true, nil
		}
	}
	return false, nil
}

func newTestPromo() (*DefaultPromoService, *fakePromoRepo) {
	repo := newFakePromoRepo()
	return &DefaultPromoService{Repo: repo, Logger: zap.NewNop()}, repo
}

func regularCode(code string, percent float64) *models.PromoCode {
	return &models.PromoCode{
		Code:       code,
		Type:       models.PromoTypeRegular,
		DiscountPC: percent,
		ExpiresAt:  time.Now().Add(24 * time.Hour),
		UsageLimit: 10,
		Active:     true,
	}
}

func TestValidateComputesDiscount(t *testing.T) {
	svc, repo := newTestPromo()
	repo.codes["SUMMER20"] = regularCode("SUMMER20", 20)

	v, err := svc.Validate("SUMMER20", "t-1", time.January, 250)
	require.NoError(t, err)
	assert.Equal(t, 50.0, v.DiscountAmount)
	assert.Equal(t, 200.0, v.FinalAmount)
	// Validation never burns a use.
	assert.Equal(t, 0, repo.codes["SUMMER20"].UsedCount)
}

func TestValidateUnknownCode(t *testing.T) {
	svc, _ := newTestPromo()
	_, err := svc.Validate("NOPE", "t-1", time.January, 100)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateInactiveCode(t *testing.T) {
	svc, repo := newTestPromo()
	p := regularCode("OFF", 10)
	p.Active = false
	repo.codes["OFF"] = p

	_, err := svc.Validate("OFF", "t-1", time.January, 100)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not active")
}

func TestValidateExpiredCode(t *testing.T) {
	svc, repo := newTestPromo()
	p := regularCode("OLD", 10)
	p.ExpiresAt = time.Now().Add(-time.Hour)
	repo.codes["OLD"] = p

	_, err := svc.Validate("OLD", "t-1", time.January, 100)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}

func TestValidateExhaustedCode(t *testing.T) {
	svc, repo := newTestPromo()
	p := regularCode("BUSY", 10)
	p.UsageLimit = 3
	p.UsedCount = 3
	repo.codes["BUSY"] = p

	_, err := svc.Validate("BUSY", "t-1", time.January, 100)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "usage limit")
}

func TestValidateBirthdayCodeOwnership(t *testing.T) {
	svc, repo := newTestPromo()
	thisMonth := time.Now().Month()
	repo.codes["BDAY-AAAA1111"] = &models.PromoCode{
		Code:       "BDAY-AAAA1111",
		Type:       models.PromoTypeBirthday,
		DiscountPC: 20,
		ExpiresAt:  time.Now().Add(24 * time.Hour),
		UsageLimit: 1,
		Active:     true,
		OwnerID:    "t-1",
	}

	_, err := svc.Validate("BDAY-AAAA1111", "t-2", thisMonth, 100)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "belongs to another user")

	v, err := svc.Validate("BDAY-AAAA1111", "t-1", thisMonth, 100)
	require.NoError(t, err)
	assert.Equal(t, 20.0, v.DiscountAmount)
}

func TestValidateBirthdayCodeOutsideBirthMonth(t *testing.T) {
	svc, repo := newTestPromo()
	repo.codes["BDAY-BBBB2222"] = &models.PromoCode{
		Code:       "BDAY-BBBB2222",
		Type:       models.PromoTypeBirthday,
		DiscountPC: 20,
		ExpiresAt:  time.Now().Add(24 * time.Hour),
		UsageLimit: 1,
		Active:     true,
		OwnerID:    "t-1",
	}

	otherMonth := time.Now().Month()%12 + 1

	_, err := svc.Validate("BDAY-BBBB2222", "t-1", time.Month(otherMonth), 100)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "birth month")
}

func TestConsumeBurnsOneUse(t *testing.T) {
	svc, repo := newTestPromo()
	p := regularCode("ONCE", 10)
	p.UsageLimit = 1
	repo.codes["ONCE"] = p

	require.NoError(t, svc.Consume("ONCE"))

	err := svc.Consume("ONCE")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no longer usable")
}

func TestIssueBirthdayCodeIdempotent(t *testing.T) {
	svc, _ := newTestPromo()

	first, err := svc.IssueBirthdayCode("t-1")
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.True(t, strings.HasPrefix(first.Code, "BDAY-"))
	assert.Equal(t, models.PromoTypeBirthday, first.Type)
	assert.Equal(t, "t-1", first.OwnerID)
	assert.Equal(t, 1, first.UsageLimit)

	second, err := svc.IssueBirthdayCode("t-1")
	require.NoError(t, err)
	assert.Nil(t, second, "re-issue within validity must be skipped")
}

func TestCreateValidatesAndUppercases(t *testing.T) {
	svc, repo := newTestPromo()

	err := svc.Create(&models.PromoCode{Code: "", DiscountPC: 10, UsageLimit: 5})
	require.Error(t, err)

	err = svc.Create(&models.PromoCode{Code: "x", DiscountPC: 150, UsageLimit: 5})
	require.Error(t, err)

	p := &models.PromoCode{
		Code:       "welcome10",
		DiscountPC: 10,
		ExpiresAt:  time.Now().Add(time.Hour),
		UsageLimit: 5,
	}
	require.NoError(t, svc.Create(p))
	assert.Equal(t, "WELCOME10", p.Code)
	assert.Equal(t, models.PromoTypeRegular, p.Type)
	assert.NotNil(t, repo.codes["WELCOME10"])
}
