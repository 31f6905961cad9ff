package models

import (
	"time"
)

const (
	PayoutRecordStatusPending    = "pending"
	PayoutRecordStatusProcessing = "processing"
	PayoutRecordStatusPaid       = "paid"
	PayoutRecordStatusFailed     = "failed"
	PayoutRecordStatusRejected   = "rejected"

	PaymentMethodAutomatic = "automatic"
	PaymentMethodManual    = "manual"
)

// Payout is a single disbursement owed to a user. The compound unique index
// on (source, conversion_id) prevents double-creating a payout for the same
// external conversion.
type Payout struct {
	ID            uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        *uint      `gorm:"column:user_id;index" json:"userId"`
	Phone         string     `gorm:"column:phone;size:20;index" json:"phone"`
	UpiID         string     `gorm:"column:upi_id;size:255" json:"upiId"`
	Amount        float64    `gorm:"column:amount;type:decimal(20,2);not null" json:"amount"`
	Status        string     `gorm:"column:status;size:20;default:pending;index" json:"status"`
	PaymentMethod string     `gorm:"column:payment_method;size:20;default:manual" json:"paymentMethod"`
	Source        string     `gorm:"column:source;size:50;not null;uniqueIndex:idx_payouts_source_conversion" json:"source"`
	ConversionID  *string    `gorm:"column:conversion_id;size:255;uniqueIndex:idx_payouts_source_conversion" json:"conversionId"`
	ProcessedAt   *time.Time `gorm:"column:processed_at" json:"processedAt"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Payout) TableName() string {
	return "payouts"
}
