package handlers

import (
	"net/http"

	"offerwall-service/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	Service *services.LeadService
}

func NewUserHandler(service *services.LeadService) *UserHandler {
	return &UserHandler{Service: service}
}

func (h *UserHandler) Submit(c *gin.Context) {
	var req services.SubmitLeadDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, created, err := h.Service.SubmitLead(req)
	if err != nil {
		respondError(c, err, "Campaign not found")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, user)
}

type updateStatusRequest struct {
	PayoutStatus string `json:"payoutStatus" binding:"required"`
}

func (h *UserHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.Service.UpdateStatus(c.Param("id"), req.PayoutStatus)
	if err != nil {
		respondError(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, user)
}

type updateCampaignRequest struct {
	CampaignID string `json:"campaignId" binding:"required"`
}

func (h *UserHandler) UpdateCampaign(c *gin.Context) {
	var req updateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.Service.UpdateCampaign(c.Param("id"), req.CampaignID)
	if err != nil {
		respondError(c, err, "User or campaign not found")
		return
	}
	c.JSON(http.StatusOK, user)
}
