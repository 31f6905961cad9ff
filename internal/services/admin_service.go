package services

import (
	"log"
	"math"

	"offerwall-service/internal/models"

	"gorm.io/gorm"
)

// AdminService composes reads across conversions, payouts and campaigns into
// the aggregate dashboards served under /api/admin.
type AdminService struct {
	DB      *gorm.DB
	Hiqmobi *HiqmobiService
}

func NewAdminService(db *gorm.DB, hiqmobi *HiqmobiService) *AdminService {
	return &AdminService{DB: db, Hiqmobi: hiqmobi}
}

type ConversionStats struct {
	Total       int64   `json:"total"`
	TotalPayout float64 `json:"totalPayout"`
	Pending     int64   `json:"pending"`
	Completed   int64   `json:"completed"`
	Rejected    int64   `json:"rejected"`
	ActiveUsers int64   `json:"activeUsers"`
	AvgPayout   float64 `json:"avgPayout"`
}

type ConversionDashboard struct {
	Data       interface{}     `json:"data"`
	Stats      ConversionStats `json:"stats"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"totalPages"`
	Message    string          `json:"message,omitempty"`
}

// GetConversions fetches the latest events live from the tracking API. An
// upstream outage degrades to an empty result set with zeroed stats and a
// message field, so the dashboard stays up through a downstream failure.
func (s *AdminService) GetConversions(page, limit int, status, startDate, endDate string) *ConversionDashboard {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 50
	}

	dashboard := &ConversionDashboard{Page: page, Limit: limit}

	records, err := s.Hiqmobi.FetchConversions(page, limit, status, startDate, endDate)
	if err != nil {
		log.Printf("admin: conversion fetch failed: %v", err)
		dashboard.Data = []interface{}{}
		dashboard.Message = "Tracking API unavailable, showing empty results"
		return dashboard
	}

	dashboard.Data = records
	dashboard.Stats.Total = int64(len(records))
	for _, raw := range records {
		record, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		conv := normalizeConversion(record)
		dashboard.Stats.TotalPayout += conv.Payout
		switch conv.Status {
		case models.ConversionStatusCompleted:
			dashboard.Stats.Completed++
		case models.ConversionStatusRejected:
			dashboard.Stats.Rejected++
		default:
			dashboard.Stats.Pending++
		}
	}
	if dashboard.Stats.Total > 0 {
		dashboard.Stats.AvgPayout = dashboard.Stats.TotalPayout / float64(dashboard.Stats.Total)
	}
	if len(records) == limit {
		dashboard.TotalPages = page + 1
	} else {
		dashboard.TotalPages = page
	}

	return dashboard
}

// GetDBConversions serves the same dashboard from the local store, with the
// aggregates pushed into SQL instead of materializing the collection.
func (s *AdminService) GetDBConversions(page, limit int, status string) (*ConversionDashboard, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 50
	}

	query := s.DB.Model(&models.Conversion{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var conversions []models.Conversion
	err := query.Order("created_at desc").Offset((page - 1) * limit).Limit(limit).Find(&conversions).Error
	if err != nil {
		return nil, err
	}

	dashboard := &ConversionDashboard{
		Data:  conversions,
		Page:  page,
		Limit: limit,
	}
	if limit > 0 {
		dashboard.TotalPages = int(math.Ceil(float64(total) / float64(limit)))
	}

	statsQuery := s.DB.Model(&models.Conversion{})
	if status != "" {
		statsQuery = statsQuery.Where("status = ?", status)
	}

	dashboard.Stats.Total = total
	statsQuery.Select("COALESCE(SUM(payout), 0)").Scan(&dashboard.Stats.TotalPayout)

	s.DB.Model(&models.Conversion{}).Where("status = ?", models.ConversionStatusPending).Count(&dashboard.Stats.Pending)
	s.DB.Model(&models.Conversion{}).Where("status = ?", models.ConversionStatusCompleted).Count(&dashboard.Stats.Completed)
	s.DB.Model(&models.Conversion{}).Where("status = ?", models.ConversionStatusRejected).Count(&dashboard.Stats.Rejected)
	s.DB.Model(&models.Conversion{}).Distinct("phone").Where("phone != ''").Count(&dashboard.Stats.ActiveUsers)

	if total > 0 {
		dashboard.Stats.AvgPayout = dashboard.Stats.TotalPayout / float64(total)
	}

	return dashboard, nil
}
