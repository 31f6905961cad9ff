package services

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"offerwall-service/internal/models"
	"offerwall-service/pkg/common"

	"gorm.io/gorm"
)

type ReferralService struct {
	DB        *gorm.DB
	Campaigns *CampaignService
}

func NewReferralService(db *gorm.DB, campaigns *CampaignService) *ReferralService {
	return &ReferralService{DB: db, Campaigns: campaigns}
}

// PublicOrigin is the scheme+host referral links are composed against.
func PublicOrigin() string {
	origin := os.Getenv("PUBLIC_ORIGIN")
	if origin == "" {
		origin = "http://localhost:8080"
	}
	return strings.TrimRight(origin, "/")
}

// campaignPath prefers the human-readable slug, falling back to the id.
func campaignPath(campaign *models.Campaign) string {
	if campaign.Slug != "" {
		return campaign.Slug
	}
	return strconv.FormatUint(uint64(campaign.ID), 10)
}

// CreateReferral issues a new referral link for a campaign. The campaign's
// current referral amount is snapshotted onto the referral; later rate edits
// do not retroactively affect the link. A referrer may hold multiple
// independent codes for the same campaign.
func (s *ReferralService) CreateReferral(referrerID, campaignID string) (*models.Referral, string, error) {
	if strings.TrimSpace(referrerID) == "" || strings.TrimSpace(campaignID) == "" {
		return nil, "", ErrInvalidArgument
	}

	campaign, err := s.Campaigns.FindByIdentifier(campaignID)
	if err != nil {
		return nil, "", err
	}

	referral := models.Referral{
		ReferrerID:    referrerID,
		ReferralCode:  common.GenerateReferralCode(),
		CampaignID:    campaignID,
		Amount:        campaign.ReferralAmount,
		ReferredUsers: []models.ReferredUser{},
	}

	if err := s.DB.Create(&referral).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, "", ErrConflict
		}
		return nil, "", err
	}

	link := fmt.Sprintf("%s/campaigns/%s?ref=%s", PublicOrigin(), campaignPath(campaign), referral.ReferralCode)
	return &referral, link, nil
}

type TrackClickResult struct {
	RedirectURL  string `json:"redirectUrl"`
	CampaignID   string `json:"campaignId"`
	CampaignName string `json:"campaignName"`
}

// TrackClick records one click against a referral link. ClickCount counts
// click volume, not unique visitors: every invocation increments it. The
// referredUsers list is deduplicated by user id, and the referrer's own
// clicks are never recorded as referred users.
func (s *ReferralService) TrackClick(code, userID string) (*TrackClickResult, error) {
	referral, err := s.findByCode(code)
	if err != nil {
		return nil, err
	}

	if err := s.DB.Model(referral).UpdateColumn("click_count", gorm.Expr("click_count + ?", 1)).Error; err != nil {
		return nil, err
	}

	if userID != "" && userID != referral.ReferrerID && referral.FindReferredUser(userID) < 0 {
		referral.ReferredUsers = append(referral.ReferredUsers, models.ReferredUser{
			UserID:    userID,
			Status:    models.ReferredUserStatusClicked,
			CreatedAt: time.Now(),
		})
		if err := s.DB.Model(referral).Updates(&models.Referral{ReferredUsers: referral.ReferredUsers}).Error; err != nil {
			return nil, err
		}
	}

	campaign, err := s.Campaigns.FindByIdentifier(referral.CampaignID)
	if err != nil {
		return nil, err
	}

	return &TrackClickResult{
		RedirectURL:  fmt.Sprintf("%s/campaigns/%s?ref=%s", PublicOrigin(), campaignPath(campaign), referral.ReferralCode),
		CampaignID:   referral.CampaignID,
		CampaignName: campaign.Name,
	}, nil
}

// RecordConversion attributes a conversion to a referral. The referredUsers
// entry for userID is created or overwritten with status "converted" and the
// given conversion id; conversionCount and totalEarned grow on every call.
// There is no idempotence guard keyed on conversionID: invoking this twice
// for the same conversion credits the referrer twice.
func (s *ReferralService) RecordConversion(code, userID, conversionID string) (*models.Referral, error) {
	if strings.TrimSpace(code) == "" || strings.TrimSpace(userID) == "" || strings.TrimSpace(conversionID) == "" {
		return nil, ErrInvalidArgument
	}

	referral, err := s.findByCode(code)
	if err != nil {
		return nil, err
	}

	if i := referral.FindReferredUser(userID); i >= 0 {
		referral.ReferredUsers[i].ConversionID = conversionID
		referral.ReferredUsers[i].Status = models.ReferredUserStatusConverted
	} else {
		referral.ReferredUsers = append(referral.ReferredUsers, models.ReferredUser{
			UserID:       userID,
			ConversionID: conversionID,
			Status:       models.ReferredUserStatusConverted,
			CreatedAt:    time.Now(),
		})
	}

	referral.ConversionCount++
	referral.TotalEarned += referral.Amount

	if err := s.DB.Save(referral).Error; err != nil {
		return nil, err
	}
	return referral, nil
}

type ReferralItem struct {
	models.Referral
	CampaignName   string  `json:"campaignName"`
	CampaignSlug   string  `json:"campaignSlug"`
	ReferralLink   string  `json:"referralLink"`
	ConversionRate float64 `json:"conversionRate"`
}

type ReferralStats struct {
	TotalClicks      int64   `json:"totalClicks"`
	TotalConversions int64   `json:"totalConversions"`
	TotalEarned      float64 `json:"totalEarned"`
	ConversionRate   float64 `json:"conversionRate"`
}

// GetUserReferrals joins each referral owned by referrerID with its
// campaign's display fields and derives per-referral and aggregate totals.
func (s *ReferralService) GetUserReferrals(referrerID string) ([]ReferralItem, *ReferralStats, error) {
	if strings.TrimSpace(referrerID) == "" {
		return nil, nil, ErrInvalidArgument
	}

	var referrals []models.Referral
	if err := s.DB.Where("referrer_id = ?", referrerID).Order("created_at desc").Find(&referrals).Error; err != nil {
		return nil, nil, err
	}

	items := make([]ReferralItem, 0, len(referrals))
	stats := &ReferralStats{}

	for _, referral := range referrals {
		item := ReferralItem{Referral: referral, ConversionRate: conversionRate(referral.ConversionCount, referral.ClickCount)}

		if campaign, err := s.Campaigns.FindByIdentifier(referral.CampaignID); err == nil {
			item.CampaignName = campaign.Name
			item.CampaignSlug = campaign.Slug
			item.ReferralLink = fmt.Sprintf("%s/campaigns/%s?ref=%s", PublicOrigin(), campaignPath(campaign), referral.ReferralCode)
		}

		stats.TotalClicks += referral.ClickCount
		stats.TotalConversions += referral.ConversionCount
		stats.TotalEarned += referral.TotalEarned

		items = append(items, item)
	}

	stats.ConversionRate = conversionRate(stats.TotalConversions, stats.TotalClicks)
	return items, stats, nil
}

func conversionRate(conversions, clicks int64) float64 {
	if clicks == 0 {
		return 0
	}
	return float64(conversions) / float64(clicks) * 100
}

func (s *ReferralService) findByCode(code string) (*models.Referral, error) {
	if strings.TrimSpace(code) == "" {
		return nil, ErrInvalidArgument
	}

	var referral models.Referral
	if err := s.DB.Where("referral_code = ?", code).First(&referral).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &referral, nil
}
