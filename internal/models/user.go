package models

import (
	"time"
)

const (
	PayoutStatusPending  = "pending"
	PayoutStatusPaid     = "paid"
	PayoutStatusRejected = "rejected"
)

// User is a lead: someone who submitted contact and payment details for a
// campaign. A phone number may register once per distinct campaign.
type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Phone        string    `gorm:"column:phone;size:20;not null;uniqueIndex:idx_users_phone_campaign" json:"phone"`
	UpiID        string    `gorm:"column:upi_id;size:255;not null" json:"upiId"`
	CampaignID   string    `gorm:"column:campaign_id;size:255;not null;uniqueIndex:idx_users_phone_campaign" json:"campaignId"`
	PayoutStatus string    `gorm:"column:payout_status;size:20;default:pending;index" json:"payoutStatus"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}
