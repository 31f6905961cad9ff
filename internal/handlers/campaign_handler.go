package handlers

import (
	"net/http"

	"offerwall-service/internal/services"

	"github.com/gin-gonic/gin"
)

type CampaignHandler struct {
	Service *services.CampaignService
}

func NewCampaignHandler(service *services.CampaignService) *CampaignHandler {
	return &CampaignHandler{Service: service}
}

func (h *CampaignHandler) List(c *gin.Context) {
	campaigns, err := h.Service.List()
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, campaigns)
}

func (h *CampaignHandler) Get(c *gin.Context) {
	campaign, err := h.Service.FindByIdentifier(c.Param("identifier"))
	if err != nil {
		respondError(c, err, "Campaign not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"campaign": campaign,
		"isActive": campaign.IsActive(),
	})
}

func (h *CampaignHandler) Create(c *gin.Context) {
	var req services.CreateCampaignDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	campaign, err := h.Service.Create(req)
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusCreated, campaign)
}

func (h *CampaignHandler) Update(c *gin.Context) {
	var req services.UpdateCampaignDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	campaign, err := h.Service.Update(c.Param("identifier"), req)
	if err != nil {
		respondError(c, err, "Campaign not found")
		return
	}
	c.JSON(http.StatusOK, campaign)
}

func (h *CampaignHandler) Delete(c *gin.Context) {
	if err := h.Service.Delete(c.Param("identifier")); err != nil {
		respondError(c, err, "Campaign not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Campaign deleted"})
}
