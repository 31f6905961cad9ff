package models

import (
	"time"
)

const (
	ReferredUserStatusClicked   = "clicked"
	ReferredUserStatusConverted = "converted"
	ReferredUserStatusPaid      = "paid"
)

// ReferredUser is an append-mostly entry tracking one viewer of a referral
// link. At most one entry exists per user id.
type ReferredUser struct {
	UserID       string    `json:"userId"`
	ConversionID string    `json:"conversionId,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Referral is a trackable link issued to a referring user. Amount is a
// snapshot of the campaign's referral rate at creation time; later campaign
// edits do not affect existing links.
type Referral struct {
	ID              uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	ReferrerID      string         `gorm:"column:referrer_id;size:255;not null;index" json:"referrerId"`
	ReferralCode    string         `gorm:"column:referral_code;size:64;not null;uniqueIndex" json:"referralCode"`
	CampaignID      string         `gorm:"column:campaign_id;size:255;not null;index" json:"campaignId"`
	Amount          float64        `gorm:"column:amount;type:decimal(20,2);default:0.00" json:"amount"`
	ClickCount      int64          `gorm:"column:click_count;default:0" json:"clickCount"`
	ConversionCount int64          `gorm:"column:conversion_count;default:0" json:"conversionCount"`
	TotalEarned     float64        `gorm:"column:total_earned;type:decimal(20,2);default:0.00" json:"totalEarned"`
	ReferredUsers   []ReferredUser `gorm:"column:referred_users;serializer:json" json:"referredUsers"`
	CreatedAt       time.Time      `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Referral) TableName() string {
	return "referrals"
}

// FindReferredUser returns the index of the entry for userID, or -1.
func (r *Referral) FindReferredUser(userID string) int {
	for i := range r.ReferredUsers {
		if r.ReferredUsers[i].UserID == userID {
			return i
		}
	}
	return -1
}
