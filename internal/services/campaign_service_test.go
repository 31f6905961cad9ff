package services

import (
	"fmt"
	"regexp"
	"testing"

	"offerwall-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCreateCampaignDerivesSlug(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCampaignService(db)

	campaign, err := svc.Create(CreateCampaignDTO{Name: "Free Recharge!! Offer", PayoutRate: 50})
	assert.NoError(t, err)
	assert.NotNil(t, campaign)

	// slug = slugified name + hyphen + 6-char random suffix
	assert.Regexp(t, regexp.MustCompile(`^free-recharge-offer-[0-9a-f-]{6}$`), campaign.Slug)
	assert.Equal(t, models.CampaignStatusActive, campaign.Status)
	assert.NotEmpty(t, campaign.HowItWorks)
}

func TestCreateCampaignSlugUniqueUnderCollidingNames(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCampaignService(db)

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		campaign, err := svc.Create(CreateCampaignDTO{Name: "Same Name"})
		assert.NoError(t, err, "creation %d should not collide", i)
		assert.False(t, seen[campaign.Slug], "slug %q repeated", campaign.Slug)
		seen[campaign.Slug] = true
	}
}

func TestCreateCampaignRequiresName(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCampaignService(db)

	_, err := svc.Create(CreateCampaignDTO{Name: "   "})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestFindByIdentifierDualLookup(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCampaignService(db)

	created, err := svc.Create(CreateCampaignDTO{Name: "Dual Lookup"})
	assert.NoError(t, err)

	bySlug, err := svc.FindByIdentifier(created.Slug)
	assert.NoError(t, err)
	assert.Equal(t, created.ID, bySlug.ID)

	byID, err := svc.FindByIdentifier(fmt.Sprintf("%d", created.ID))
	assert.NoError(t, err)
	assert.Equal(t, created.Slug, byID.Slug)
}

func TestFindByIdentifierNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCampaignService(db)

	_, err := svc.FindByIdentifier("nonexistent-slug")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.FindByIdentifier("999999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateAndDeleteCampaign(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCampaignService(db)

	created, err := svc.Create(CreateCampaignDTO{Name: "To Update", ReferralAmount: 5})
	assert.NoError(t, err)

	paused := models.CampaignStatusPaused
	rate := 25.0
	updated, err := svc.Update(created.Slug, UpdateCampaignDTO{Status: &paused, PayoutRate: &rate})
	assert.NoError(t, err)
	assert.Equal(t, models.CampaignStatusPaused, updated.Status)
	assert.Equal(t, 25.0, updated.PayoutRate)
	assert.False(t, updated.IsActive())

	assert.NoError(t, svc.Delete(created.Slug))

	_, err = svc.FindByIdentifier(created.Slug)
	assert.ErrorIs(t, err, ErrNotFound)
}
