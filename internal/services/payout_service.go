package services

import (
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	"offerwall-service/internal/models"
	"offerwall-service/pkg/common"

	"gorm.io/gorm"
)

type PayoutService struct {
	DB *gorm.DB
}

func NewPayoutService(db *gorm.DB) *PayoutService {
	return &PayoutService{DB: db}
}

// AutoPayoutThreshold is the largest amount disbursed without manual review.
func AutoPayoutThreshold() float64 {
	if v := os.Getenv("AUTO_PAYOUT_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return 0
}

// CreateForConversion records a payout owed for a reconciled conversion.
// The compound unique index on (source, conversion_id) makes this safe to
// call repeatedly: the second attempt for the same conversion returns
// ErrConflict instead of creating a duplicate.
func (s *PayoutService) CreateForConversion(conv *models.Conversion, user *models.User) (*models.Payout, error) {
	if conv == nil || conv.ClickID == "" {
		return nil, ErrInvalidArgument
	}

	method := models.PaymentMethodManual
	if threshold := AutoPayoutThreshold(); threshold > 0 && conv.Payout <= threshold {
		method = models.PaymentMethodAutomatic
	}

	conversionID := conv.ClickID
	payout := models.Payout{
		Phone:         conv.Phone,
		UpiID:         conv.UpiID,
		Amount:        conv.Payout,
		Status:        models.PayoutRecordStatusPending,
		PaymentMethod: method,
		Source:        conv.Source,
		ConversionID:  &conversionID,
	}
	if user != nil {
		payout.UserID = &user.ID
		if payout.UpiID == "" {
			payout.UpiID = user.UpiID
		}
	}

	if err := s.DB.Create(&payout).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return &payout, nil
}

func (s *PayoutService) List(page, limit int, status string) ([]models.Payout, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 50
	}

	query := s.DB.Model(&models.Payout{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var payouts []models.Payout
	err := query.Order("created_at desc").Offset((page - 1) * limit).Limit(limit).Find(&payouts).Error
	if err != nil {
		return nil, 0, err
	}
	return payouts, total, nil
}

func (s *PayoutService) UpdateStatus(id string, status string) (*models.Payout, error) {
	switch status {
	case models.PayoutRecordStatusPending, models.PayoutRecordStatusProcessing,
		models.PayoutRecordStatusPaid, models.PayoutRecordStatusFailed, models.PayoutRecordStatusRejected:
	default:
		return nil, ErrInvalidArgument
	}

	payoutID, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return nil, ErrInvalidArgument
	}

	var payout models.Payout
	if err := s.DB.First(&payout, uint(payoutID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	payout.Status = status
	if status == models.PayoutRecordStatusPaid {
		now := time.Now()
		payout.ProcessedAt = &now
	}
	if err := s.DB.Save(&payout).Error; err != nil {
		return nil, err
	}

	if status == models.PayoutRecordStatusPaid || status == models.PayoutRecordStatusFailed ||
		status == models.PayoutRecordStatusRejected {
		s.notifyWebhook(&payout)
	}
	return &payout, nil
}

// notifyWebhook posts the payout's final state to PAYOUT_WEBHOOK_URL when one
// is configured. Delivery is best effort: failures are logged and never roll
// back the status change.
func (s *PayoutService) notifyWebhook(payout *models.Payout) {
	webhookURL := os.Getenv("PAYOUT_WEBHOOK_URL")
	if webhookURL == "" {
		return
	}

	payload := map[string]interface{}{
		"payoutId": payout.ID,
		"phone":    payout.Phone,
		"amount":   payout.Amount,
		"status":   payout.Status,
		"source":   payout.Source,
	}
	if payout.ConversionID != nil {
		payload["conversionId"] = *payout.ConversionID
	}

	if _, err := common.Post(webhookURL, payload, nil); err != nil {
		log.Printf("Payout webhook delivery failed for payout %d: %v", payout.ID, err)
	}
}

// ProcessAutomatic advances pending automatic payouts to processing. Actual
// disbursement is left to the payment rail; this marks the batch picked up.
func (s *PayoutService) ProcessAutomatic() (int, error) {
	var payouts []models.Payout
	err := s.DB.Where("status = ? AND payment_method = ?",
		models.PayoutRecordStatusPending, models.PaymentMethodAutomatic).Find(&payouts).Error
	if err != nil {
		return 0, err
	}

	processed := 0
	for i := range payouts {
		err := s.DB.Model(&payouts[i]).Update("status", models.PayoutRecordStatusProcessing).Error
		if err != nil {
			continue
		}
		processed++
	}
	return processed, nil
}
