package handlers

import (
	"net/http"

	"offerwall-service/internal/services"

	"github.com/gin-gonic/gin"
)

type ReferralHandler struct {
	Service *services.ReferralService
}

func NewReferralHandler(service *services.ReferralService) *ReferralHandler {
	return &ReferralHandler{Service: service}
}

type generateReferralRequest struct {
	ReferrerID string `json:"referrerId" binding:"required"`
	CampaignID string `json:"campaignId" binding:"required"`
}

func (h *ReferralHandler) Generate(c *gin.Context) {
	var req generateReferralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	referral, link, err := h.Service.CreateReferral(req.ReferrerID, req.CampaignID)
	if err != nil {
		respondError(c, err, "Campaign not found")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"referral": gin.H{
			"id":           referral.ID,
			"referrerId":   referral.ReferrerID,
			"referralCode": referral.ReferralCode,
			"campaignId":   referral.CampaignID,
			"amount":       referral.Amount,
			"referralLink": link,
		},
	})
}

func (h *ReferralHandler) TrackClick(c *gin.Context) {
	result, err := h.Service.TrackClick(c.Param("code"), c.Query("userId"))
	if err != nil {
		respondError(c, err, "Referral not found")
		return
	}
	c.JSON(http.StatusOK, result)
}

type recordConversionRequest struct {
	ReferralCode string `json:"referralCode" binding:"required"`
	UserID       string `json:"userId" binding:"required"`
	ConversionID string `json:"conversionId" binding:"required"`
}

func (h *ReferralHandler) RecordConversion(c *gin.Context) {
	var req recordConversionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	referral, err := h.Service.RecordConversion(req.ReferralCode, req.UserID, req.ConversionID)
	if err != nil {
		respondError(c, err, "Referral not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "referral": referral})
}

func (h *ReferralHandler) GetUserReferrals(c *gin.Context) {
	referrals, stats, err := h.Service.GetUserReferrals(c.Param("referrerId"))
	if err != nil {
		respondError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"referrals": referrals, "stats": stats})
}
