package services

import (
	"fmt"
	"testing"

	"offerwall-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func setupReferralTest(t *testing.T) (*ReferralService, *CampaignService, *models.Campaign) {
	db := setupTestDB(t)
	campaigns := NewCampaignService(db)
	svc := NewReferralService(db, campaigns)

	campaign, err := campaigns.Create(CreateCampaignDTO{Name: "Referral Campaign", ReferralAmount: 10})
	assert.NoError(t, err)

	return svc, campaigns, campaign
}

func TestCreateReferralSnapshotsAmount(t *testing.T) {
	svc, campaigns, campaign := setupReferralTest(t)
	campaignID := fmt.Sprintf("%d", campaign.ID)

	referral, link, err := svc.CreateReferral("referrer-1", campaignID)
	assert.NoError(t, err)
	assert.Equal(t, 10.0, referral.Amount)
	assert.NotEmpty(t, referral.ReferralCode)
	assert.Contains(t, link, "/campaigns/"+campaign.Slug)
	assert.Contains(t, link, "?ref="+referral.ReferralCode)

	// Raising the campaign rate must not affect the issued referral.
	newRate := 50.0
	_, err = campaigns.Update(campaignID, UpdateCampaignDTO{ReferralAmount: &newRate})
	assert.NoError(t, err)

	var stored models.Referral
	assert.NoError(t, svc.DB.First(&stored, referral.ID).Error)
	assert.Equal(t, 10.0, stored.Amount)
}

func TestCreateReferralValidation(t *testing.T) {
	svc, _, campaign := setupReferralTest(t)

	_, _, err := svc.CreateReferral("", fmt.Sprintf("%d", campaign.ID))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, _, err = svc.CreateReferral("referrer-1", "missing-campaign")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateReferralAllowsMultipleCodesPerCampaign(t *testing.T) {
	svc, _, campaign := setupReferralTest(t)
	campaignID := fmt.Sprintf("%d", campaign.ID)

	first, _, err := svc.CreateReferral("referrer-1", campaignID)
	assert.NoError(t, err)
	second, _, err := svc.CreateReferral("referrer-1", campaignID)
	assert.NoError(t, err)
	assert.NotEqual(t, first.ReferralCode, second.ReferralCode)
}

func TestTrackClickPersistsReferredUser(t *testing.T) {
	svc, _, campaign := setupReferralTest(t)
	referral, _, err := svc.CreateReferral("referrer-1", fmt.Sprintf("%d", campaign.ID))
	assert.NoError(t, err)

	// The very first click from a new viewer must write the serialized
	// referredUsers column, not just the counter.
	_, err = svc.TrackClick(referral.ReferralCode, "userA")
	assert.NoError(t, err)

	var stored models.Referral
	assert.NoError(t, svc.DB.First(&stored, referral.ID).Error)
	assert.Equal(t, int64(1), stored.ClickCount)
	assert.Len(t, stored.ReferredUsers, 1)
	assert.Equal(t, "userA", stored.ReferredUsers[0].UserID)
}

func TestTrackClickCountsVolumeButDedupesUsers(t *testing.T) {
	svc, _, campaign := setupReferralTest(t)
	referral, _, err := svc.CreateReferral("referrer-1", fmt.Sprintf("%d", campaign.ID))
	assert.NoError(t, err)

	result, err := svc.TrackClick(referral.ReferralCode, "viewer-1")
	assert.NoError(t, err)
	assert.Contains(t, result.RedirectURL, campaign.Slug)
	assert.Equal(t, campaign.Name, result.CampaignName)

	// Repeat click from the same viewer: click volume grows, the
	// referredUsers list does not.
	_, err = svc.TrackClick(referral.ReferralCode, "viewer-1")
	assert.NoError(t, err)

	var stored models.Referral
	assert.NoError(t, svc.DB.First(&stored, referral.ID).Error)
	assert.Equal(t, int64(2), stored.ClickCount)
	assert.Len(t, stored.ReferredUsers, 1)
	assert.Equal(t, models.ReferredUserStatusClicked, stored.ReferredUsers[0].Status)
}

func TestTrackClickIgnoresReferrerSelfClick(t *testing.T) {
	svc, _, campaign := setupReferralTest(t)
	referral, _, err := svc.CreateReferral("referrer-1", fmt.Sprintf("%d", campaign.ID))
	assert.NoError(t, err)

	_, err = svc.TrackClick(referral.ReferralCode, "referrer-1")
	assert.NoError(t, err)

	var stored models.Referral
	assert.NoError(t, svc.DB.First(&stored, referral.ID).Error)
	assert.Equal(t, int64(1), stored.ClickCount)
	assert.Empty(t, stored.ReferredUsers)
}

func TestTrackClickUnknownCode(t *testing.T) {
	svc, _, _ := setupReferralTest(t)

	_, err := svc.TrackClick("no-such-code", "viewer-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReferralConversionScenario(t *testing.T) {
	svc, _, campaign := setupReferralTest(t)
	referral, _, err := svc.CreateReferral("referrer-1", fmt.Sprintf("%d", campaign.ID))
	assert.NoError(t, err)

	_, err = svc.TrackClick(referral.ReferralCode, "userA")
	assert.NoError(t, err)
	_, err = svc.TrackClick(referral.ReferralCode, "userB")
	assert.NoError(t, err)

	updated, err := svc.RecordConversion(referral.ReferralCode, "userA", "c1")
	assert.NoError(t, err)

	assert.Equal(t, int64(2), updated.ClickCount)
	assert.Equal(t, int64(1), updated.ConversionCount)
	assert.Equal(t, 10.0, updated.TotalEarned)

	i := updated.FindReferredUser("userA")
	assert.GreaterOrEqual(t, i, 0)
	assert.Equal(t, models.ReferredUserStatusConverted, updated.ReferredUsers[i].Status)
	assert.Equal(t, "c1", updated.ReferredUsers[i].ConversionID)

	j := updated.FindReferredUser("userB")
	assert.GreaterOrEqual(t, j, 0)
	assert.Equal(t, models.ReferredUserStatusClicked, updated.ReferredUsers[j].Status)
}

func TestRecordConversionForUnknownUserAppendsEntry(t *testing.T) {
	svc, _, campaign := setupReferralTest(t)
	referral, _, err := svc.CreateReferral("referrer-1", fmt.Sprintf("%d", campaign.ID))
	assert.NoError(t, err)

	updated, err := svc.RecordConversion(referral.ReferralCode, "direct-user", "c9")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), updated.ConversionCount)
	assert.Len(t, updated.ReferredUsers, 1)
	assert.Equal(t, models.ReferredUserStatusConverted, updated.ReferredUsers[0].Status)
}

func TestRecordConversionValidation(t *testing.T) {
	svc, _, _ := setupReferralTest(t)

	_, err := svc.RecordConversion("", "userA", "c1")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = svc.RecordConversion("code", "", "c1")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = svc.RecordConversion("no-such-code", "userA", "c1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetUserReferralsStats(t *testing.T) {
	svc, _, campaign := setupReferralTest(t)
	campaignID := fmt.Sprintf("%d", campaign.ID)

	first, _, err := svc.CreateReferral("referrer-1", campaignID)
	assert.NoError(t, err)
	_, _, err = svc.CreateReferral("referrer-1", campaignID)
	assert.NoError(t, err)

	_, err = svc.TrackClick(first.ReferralCode, "userA")
	assert.NoError(t, err)
	_, err = svc.TrackClick(first.ReferralCode, "userB")
	assert.NoError(t, err)
	_, err = svc.RecordConversion(first.ReferralCode, "userA", "c1")
	assert.NoError(t, err)

	items, stats, err := svc.GetUserReferrals("referrer-1")
	assert.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, int64(2), stats.TotalClicks)
	assert.Equal(t, int64(1), stats.TotalConversions)
	assert.Equal(t, 10.0, stats.TotalEarned)
	assert.Equal(t, 50.0, stats.ConversionRate)

	for _, item := range items {
		assert.Equal(t, campaign.Name, item.CampaignName)
		if item.ClickCount == 0 {
			// no clicks must not divide by zero
			assert.Equal(t, 0.0, item.ConversionRate)
		}
	}
}

func TestGetUserReferralsEmpty(t *testing.T) {
	svc, _, _ := setupReferralTest(t)

	items, stats, err := svc.GetUserReferrals("nobody")
	assert.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, 0.0, stats.ConversionRate)
}
