package models

import (
	"time"
)

const (
	CampaignStatusActive = "active"
	CampaignStatusPaused = "paused"
)

// HowItWorksStep is one entry of the ordered "how it works" walkthrough
// rendered on the campaign page.
type HowItWorksStep struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Campaign struct {
	ID             uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string           `gorm:"column:name;size:255;not null" json:"name"`
	Description    string           `gorm:"column:description;type:text" json:"description"`
	TrackingURL    string           `gorm:"column:tracking_url;size:1024" json:"trackingUrl"`
	PayoutRate     float64          `gorm:"column:payout_rate;type:decimal(20,2);default:0.00" json:"payoutRate"`
	ReferralAmount float64          `gorm:"column:referral_amount;type:decimal(20,2);default:0.00" json:"referralAmount"`
	Status         string           `gorm:"column:status;size:20;default:active;index" json:"status"`
	Slug           string           `gorm:"column:slug;size:255;uniqueIndex" json:"slug"`
	HowItWorks     []HowItWorksStep `gorm:"column:how_it_works;serializer:json" json:"howItWorks"`
	ImageURL       string           `gorm:"column:image_url;size:1024" json:"imageUrl"`
	Details        string           `gorm:"column:details;type:text" json:"details"`
	CreatedAt      time.Time        `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Campaign) TableName() string {
	return "campaigns"
}

func (c *Campaign) IsActive() bool {
	return c.Status == CampaignStatusActive
}

// DefaultHowItWorks backfills the walkthrough for campaigns created without one.
func DefaultHowItWorks() []HowItWorksStep {
	return []HowItWorksStep{
		{Title: "Complete the offer", Description: "Follow the tracking link and finish all required steps."},
		{Title: "Submit your details", Description: "Enter your phone number and UPI id on the campaign page."},
		{Title: "Get paid", Description: "Once the conversion is confirmed, the payout is sent to your UPI id."},
	}
}
