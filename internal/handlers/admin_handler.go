package handlers

import (
	"net/http"
	"strconv"

	"offerwall-service/internal/services"
	"offerwall-service/pkg/common"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	Service   *services.AdminService
	Auth      *services.AuthService
	Payouts   *services.PayoutService
	Hiqmobi   *services.HiqmobiService
	Scheduler *services.SyncScheduler
}

func NewAdminHandler(service *services.AdminService, auth *services.AuthService, payouts *services.PayoutService, hiqmobi *services.HiqmobiService, scheduler *services.SyncScheduler) *AdminHandler {
	return &AdminHandler{
		Service:   service,
		Auth:      auth,
		Payouts:   payouts,
		Hiqmobi:   hiqmobi,
		Scheduler: scheduler,
	}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AdminHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := h.Auth.Login(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	return page, limit
}

func (h *AdminHandler) GetConversions(c *gin.Context) {
	page, limit := pageParams(c)
	dashboard := h.Service.GetConversions(page, limit,
		c.Query("status"), c.Query("startDate"), c.Query("endDate"))
	c.JSON(http.StatusOK, dashboard)
}

func (h *AdminHandler) GetDBConversions(c *gin.Context) {
	page, limit := pageParams(c)
	dashboard, err := h.Service.GetDBConversions(page, limit, c.Query("status"))
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// TriggerSync enqueues an immediate conversion sync run.
func (h *AdminHandler) TriggerSync(c *gin.Context) {
	page, limit := pageParams(c)
	payload := services.ConversionSyncPayload{Page: page, Limit: limit, Status: c.Query("status")}
	if err := h.Scheduler.EnqueueSync(payload); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to enqueue sync"})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"message": "Conversion sync queued"})
}

func (h *AdminHandler) ListPayouts(c *gin.Context) {
	page, limit := pageParams(c)
	payouts, total, err := h.Payouts.List(page, limit, c.Query("status"))
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, common.PaginateResponse(payouts, total, page, limit, ""))
}

type payoutStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *AdminHandler) UpdatePayoutStatus(c *gin.Context) {
	var req payoutStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payout, err := h.Payouts.UpdateStatus(c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err, "Payout not found")
		return
	}
	c.JSON(http.StatusOK, payout)
}

func (h *AdminHandler) GetUserProcessDetails(c *gin.Context) {
	details, err := h.Hiqmobi.GetUserProcessDetails(c.Param("phone"))
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, details)
}
