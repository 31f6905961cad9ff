package services

import (
	"errors"
	"strconv"
	"strings"

	"offerwall-service/internal/models"

	"gorm.io/gorm"
)

type LeadService struct {
	DB        *gorm.DB
	Campaigns *CampaignService
}

func NewLeadService(db *gorm.DB, campaigns *CampaignService) *LeadService {
	return &LeadService{DB: db, Campaigns: campaigns}
}

type SubmitLeadDTO struct {
	Phone      string `json:"phone" binding:"required"`
	UpiID      string `json:"upiId" binding:"required"`
	CampaignID string `json:"campaignId" binding:"required"`
}

// SubmitLead upserts a user keyed by (phone, campaignId): creates the lead if
// absent, overwrites the UPI id if present. A duplicate-key race on create is
// surfaced as ErrConflict so the handler can answer with a client error.
func (s *LeadService) SubmitLead(data SubmitLeadDTO) (*models.User, bool, error) {
	if strings.TrimSpace(data.Phone) == "" || strings.TrimSpace(data.UpiID) == "" || strings.TrimSpace(data.CampaignID) == "" {
		return nil, false, ErrInvalidArgument
	}

	if _, err := s.Campaigns.FindByIdentifier(data.CampaignID); err != nil {
		return nil, false, err
	}

	var user models.User
	err := s.DB.Where("phone = ? AND campaign_id = ?", data.Phone, data.CampaignID).First(&user).Error
	if err == nil {
		user.UpiID = data.UpiID
		if err := s.DB.Save(&user).Error; err != nil {
			return nil, false, err
		}
		return &user, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	user = models.User{
		Phone:        data.Phone,
		UpiID:        data.UpiID,
		CampaignID:   data.CampaignID,
		PayoutStatus: models.PayoutStatusPending,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, false, ErrConflict
		}
		return nil, false, err
	}
	return &user, true, nil
}

func (s *LeadService) UpdateStatus(id string, status string) (*models.User, error) {
	switch status {
	case models.PayoutStatusPending, models.PayoutStatusPaid, models.PayoutStatusRejected:
	default:
		return nil, ErrInvalidArgument
	}

	user, err := s.findByID(id)
	if err != nil {
		return nil, err
	}

	user.PayoutStatus = status
	if err := s.DB.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *LeadService) UpdateCampaign(id string, campaignID string) (*models.User, error) {
	if strings.TrimSpace(campaignID) == "" {
		return nil, ErrInvalidArgument
	}
	if _, err := s.Campaigns.FindByIdentifier(campaignID); err != nil {
		return nil, err
	}

	user, err := s.findByID(id)
	if err != nil {
		return nil, err
	}

	user.CampaignID = campaignID
	if err := s.DB.Save(user).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return user, nil
}

func (s *LeadService) findByID(id string) (*models.User, error) {
	userID, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return nil, ErrInvalidArgument
	}

	var user models.User
	if err := s.DB.First(&user, uint(userID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
