package models

import (
	"time"
)

const (
	ConversionStatusPending   = "pending"
	ConversionStatusCompleted = "completed"
	ConversionStatusRejected  = "rejected"

	ConversionSourceHiqmobi = "hiqmobi"
	ConversionSourceManual  = "manual"
	ConversionSourceWebhook = "webhook"
)

// Conversion is an externally-reported completion event. Rows are upserted
// keyed on click_id, so repeated polls converge instead of duplicating.
type Conversion struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	ClickID     string     `gorm:"column:click_id;size:255;not null;uniqueIndex" json:"clickId"`
	Phone       string     `gorm:"column:phone;size:20;index" json:"phone"`
	UpiID       string     `gorm:"column:upi_id;size:255" json:"upiId"`
	Status      string     `gorm:"column:status;size:20;default:pending;index" json:"status"`
	Payout      float64    `gorm:"column:payout;type:decimal(20,2);default:0.00" json:"payout"`
	OfferID     string     `gorm:"column:offer_id;size:255" json:"offerId"`
	OfferName   string     `gorm:"column:offer_name;size:255" json:"offerName"`
	IP          string     `gorm:"column:ip;size:64" json:"ip"`
	Source      string     `gorm:"column:source;size:50;default:hiqmobi" json:"source"`
	UserID      *uint      `gorm:"column:user_id;index" json:"userId"`
	ProcessedAt *time.Time `gorm:"column:processed_at" json:"processedAt"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Conversion) TableName() string {
	return "conversions"
}
