package services

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"time"

	"offerwall-service/internal/models"
	"offerwall-service/pkg/common"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HiqmobiService polls the external HiQmobi conversion-tracking API and
// mirrors its events into the conversions table.
type HiqmobiService struct {
	DB      *gorm.DB
	BaseURL string
	APIKey  string
}

func NewHiqmobiService(db *gorm.DB) *HiqmobiService {
	baseURL := os.Getenv("HIQMOBI_API_URL")
	if baseURL == "" {
		baseURL = "https://api.hiqmobi.com"
	}
	return &HiqmobiService{
		DB:      db,
		BaseURL: baseURL,
		APIKey:  os.Getenv("HIQMOBI_API_KEY"),
	}
}

// FetchConversions pulls one page of conversion events from the tracking API
// and upserts each into the conversions table keyed by click id. Repeated
// polls converge rather than duplicate; a later poll's values overwrite an
// earlier poll's, defaults included (last-write-wins, no field merge).
//
// The return value is the raw API payload, not the normalized rows; storing
// the normalized form is a side effect.
func (s *HiqmobiService) FetchConversions(page, limit int, status, startDate, endDate string) ([]interface{}, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 50
	}

	params := url.Values{}
	params.Set("api_key", s.APIKey)
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))
	if status != "" {
		params.Set("status", status)
	}
	if startDate != "" {
		params.Set("start_date", startDate)
	}
	if endDate != "" {
		params.Set("end_date", endDate)
	}

	resp, err := common.Get(fmt.Sprintf("%s/api/conversions?%s", s.BaseURL, params.Encode()), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	records := extractRecords(resp)
	if records == nil {
		return nil, fmt.Errorf("%w: unexpected response shape", ErrUpstream)
	}

	for _, raw := range records {
		record, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		conv := normalizeConversion(record)
		if conv.ClickID == "" {
			continue
		}
		err := s.DB.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "click_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"phone", "upi_id", "status", "payout", "offer_id", "offer_name", "ip", "source",
			}),
		}).Create(&conv).Error
		if err != nil {
			log.Printf("hiqmobi: failed to upsert conversion %s: %v", conv.ClickID, err)
		}
	}

	return records, nil
}

// extractRecords accepts either a bare array or an envelope with a "data"
// (or "conversions") array.
func extractRecords(resp interface{}) []interface{} {
	switch v := resp.(type) {
	case []interface{}:
		return v
	case map[string]interface{}:
		if data, ok := v["data"].([]interface{}); ok {
			return data
		}
		if data, ok := v["conversions"].([]interface{}); ok {
			return data
		}
	}
	return nil
}

// normalizeConversion maps the API's heterogeneous field names onto the
// canonical conversion record. Each logical field accepts two spellings.
func normalizeConversion(record map[string]interface{}) models.Conversion {
	payout := pickNumber(record, "payout", "amount")
	if payout == 0 {
		payout = 100
	}
	offerName := pickString(record, "offer_name", "offerName")
	if offerName == "" {
		offerName = "Unknown Offer"
	}
	status := pickString(record, "status", "conversion_status")
	if status == "" {
		status = models.ConversionStatusPending
	}
	source := pickString(record, "source", "network")
	if source == "" {
		source = models.ConversionSourceHiqmobi
	}

	return models.Conversion{
		ClickID:   pickString(record, "clickid", "id"),
		Phone:     pickString(record, "p1", "phone"),
		UpiID:     pickString(record, "p2", "upi_id"),
		Status:    status,
		Payout:    payout,
		OfferID:   pickString(record, "offer_id", "offerId"),
		OfferName: offerName,
		IP:        pickString(record, "ip", "ip_address"),
		Source:    source,
	}
}

func pickString(record map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		switch v := record[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

func pickNumber(record map[string]interface{}, keys ...string) float64 {
	for _, key := range keys {
		switch v := record[key].(type) {
		case float64:
			return v
		case string:
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
		}
	}
	return 0
}

type UserProcessDetails struct {
	Conversions []models.Conversion `json:"conversions"`
	TotalPayout float64             `json:"totalPayout"`
	Pending     int64               `json:"pending"`
	Completed   int64               `json:"completed"`
	Rejected    int64               `json:"rejected"`
}

// GetUserProcessDetails aggregates all conversion records for a phone number.
// The sum and per-status counts are pushed into SQL rather than computed over
// a materialized collection.
func (s *HiqmobiService) GetUserProcessDetails(phone string) (*UserProcessDetails, error) {
	if phone == "" {
		return nil, ErrInvalidArgument
	}

	details := &UserProcessDetails{}

	if err := s.DB.Where("phone = ?", phone).Order("created_at desc").Find(&details.Conversions).Error; err != nil {
		return nil, err
	}

	s.DB.Model(&models.Conversion{}).
		Select("COALESCE(SUM(payout), 0)").
		Where("phone = ?", phone).
		Scan(&details.TotalPayout)

	type statusCount struct {
		Status string
		Count  int64
	}
	var counts []statusCount
	s.DB.Model(&models.Conversion{}).
		Select("status, COUNT(*) as count").
		Where("phone = ?", phone).
		Group("status").
		Scan(&counts)

	for _, c := range counts {
		switch c.Status {
		case models.ConversionStatusPending:
			details.Pending = c.Count
		case models.ConversionStatusCompleted:
			details.Completed = c.Count
		case models.ConversionStatusRejected:
			details.Rejected = c.Count
		}
	}

	return details, nil
}

// Reconcile matches completed conversions that have no user reference yet
// against leads by phone number, links them, and hands each match to the
// payout service. Returns the number of conversions matched.
func (s *HiqmobiService) Reconcile(payouts *PayoutService) (int, error) {
	var conversions []models.Conversion
	err := s.DB.Where("status = ? AND user_id IS NULL", models.ConversionStatusCompleted).Find(&conversions).Error
	if err != nil {
		return 0, err
	}

	matched := 0
	for i := range conversions {
		conv := &conversions[i]

		var user models.User
		if err := s.DB.Where("phone = ?", conv.Phone).First(&user).Error; err != nil {
			continue
		}

		now := time.Now()
		conv.UserID = &user.ID
		conv.ProcessedAt = &now
		if err := s.DB.Model(conv).Updates(map[string]interface{}{
			"user_id":      user.ID,
			"processed_at": now,
		}).Error; err != nil {
			log.Printf("hiqmobi: failed to link conversion %s: %v", conv.ClickID, err)
			continue
		}

		if payouts != nil {
			if _, err := payouts.CreateForConversion(conv, &user); err != nil && err != ErrConflict {
				log.Printf("hiqmobi: failed to create payout for conversion %s: %v", conv.ClickID, err)
			}
		}

		matched++
	}

	return matched, nil
}
