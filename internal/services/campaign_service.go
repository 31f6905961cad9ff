package services

import (
	"errors"
	"strconv"
	"strings"

	"offerwall-service/internal/models"
	"offerwall-service/pkg/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CampaignService struct {
	DB *gorm.DB
}

func NewCampaignService(db *gorm.DB) *CampaignService {
	return &CampaignService{DB: db}
}

type CreateCampaignDTO struct {
	Name           string                  `json:"name" binding:"required"`
	Description    string                  `json:"description"`
	TrackingURL    string                  `json:"trackingUrl"`
	PayoutRate     float64                 `json:"payoutRate"`
	ReferralAmount float64                 `json:"referralAmount"`
	Status         string                  `json:"status"`
	Slug           string                  `json:"slug"`
	HowItWorks     []models.HowItWorksStep `json:"howItWorks"`
	ImageURL       string                  `json:"imageUrl"`
	Details        string                  `json:"details"`
}

type UpdateCampaignDTO struct {
	Name           *string                  `json:"name"`
	Description    *string                  `json:"description"`
	TrackingURL    *string                  `json:"trackingUrl"`
	PayoutRate     *float64                 `json:"payoutRate"`
	ReferralAmount *float64                 `json:"referralAmount"`
	Status         *string                  `json:"status"`
	HowItWorks     *[]models.HowItWorksStep `json:"howItWorks"`
	ImageURL       *string                  `json:"imageUrl"`
	Details        *string                  `json:"details"`
}

// FindByIdentifier resolves a campaign by database id or by slug. A purely
// numeric identifier is tried as a primary key first; everything else is a
// slug lookup. Both misses collapse into ErrNotFound.
func (s *CampaignService) FindByIdentifier(identifier string) (*models.Campaign, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, ErrInvalidArgument
	}

	var campaign models.Campaign
	if id, err := strconv.ParseUint(identifier, 10, 64); err == nil {
		if err := s.DB.First(&campaign, uint(id)).Error; err == nil {
			return &campaign, nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	if err := s.DB.Where("slug = ?", identifier).First(&campaign).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &campaign, nil
}

func (s *CampaignService) List() ([]models.Campaign, error) {
	var campaigns []models.Campaign
	if err := s.DB.Order("created_at desc").Find(&campaigns).Error; err != nil {
		return nil, err
	}
	return campaigns, nil
}

func (s *CampaignService) Create(data CreateCampaignDTO) (*models.Campaign, error) {
	if strings.TrimSpace(data.Name) == "" {
		return nil, ErrInvalidArgument
	}

	slug := data.Slug
	if slug == "" {
		// Random suffix guarantees uniqueness without a pre-check query.
		slug = common.Slugify(data.Name) + "-" + uuid.NewString()[:6]
	}

	status := data.Status
	if status == "" {
		status = models.CampaignStatusActive
	}

	howItWorks := data.HowItWorks
	if len(howItWorks) == 0 {
		howItWorks = models.DefaultHowItWorks()
	}

	campaign := models.Campaign{
		Name:           data.Name,
		Description:    data.Description,
		TrackingURL:    data.TrackingURL,
		PayoutRate:     data.PayoutRate,
		ReferralAmount: data.ReferralAmount,
		Status:         status,
		Slug:           slug,
		HowItWorks:     howItWorks,
		ImageURL:       data.ImageURL,
		Details:        data.Details,
	}

	if err := s.DB.Create(&campaign).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return &campaign, nil
}

func (s *CampaignService) Update(identifier string, data UpdateCampaignDTO) (*models.Campaign, error) {
	campaign, err := s.FindByIdentifier(identifier)
	if err != nil {
		return nil, err
	}

	if data.Name != nil {
		campaign.Name = *data.Name
	}
	if data.Description != nil {
		campaign.Description = *data.Description
	}
	if data.TrackingURL != nil {
		campaign.TrackingURL = *data.TrackingURL
	}
	if data.PayoutRate != nil {
		campaign.PayoutRate = *data.PayoutRate
	}
	if data.ReferralAmount != nil {
		campaign.ReferralAmount = *data.ReferralAmount
	}
	if data.Status != nil {
		campaign.Status = *data.Status
	}
	if data.HowItWorks != nil {
		campaign.HowItWorks = *data.HowItWorks
	}
	if data.ImageURL != nil {
		campaign.ImageURL = *data.ImageURL
	}
	if data.Details != nil {
		campaign.Details = *data.Details
	}

	if err := s.DB.Save(campaign).Error; err != nil {
		return nil, err
	}
	return campaign, nil
}

func (s *CampaignService) Delete(identifier string) error {
	campaign, err := s.FindByIdentifier(identifier)
	if err != nil {
		return err
	}
	return s.DB.Delete(campaign).Error
}
