package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"earn_webapp/internal/campaign"
	"earn_webapp/internal/http/middleware"
	"earn_webapp/internal/logger"
	"earn_webapp/internal/repository"
	"earn_webapp/internal/service"

	"github.com/gin-gonic/gin"
)

// adminError maps service errors to responses. Unknown errors are logged
// and reported as 500.
func adminError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, campaign.ErrCampaignNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "campaign not found"})
	case errors.Is(err, repository.ErrAccountNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "account not found"})
	case errors.Is(err, service.ErrWithdrawalNotPending):
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": err.Error()})
	default:
		logger.WithContext(c.Request.Context()).Error("admin request failed", "op", op, "admin", middleware.AdminSubject(c), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal error"})
	}
}

func (h *Handler) AdminStats(c *gin.Context) {
	stats, err := h.Admin.GetStats(c.Request.Context())
	if err != nil {
		adminError(c, "stats", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}

func (h *Handler) AdminListCampaigns(c *gin.Context) {
	list, err := h.Admin.ListCampaigns(c.Request.Context())
	if err != nil {
		adminError(c, "list_campaigns", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "campaigns": list})
}

type campaignStatusRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// SetCampaignStatus handles PUT /api/admin/campaigns/:slug/status
func (h *Handler) SetCampaignStatus(c *gin.Context) {
	var req campaignStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "isActive is required"})
		return
	}

	slug := c.Param("slug")
	st, err := h.Admin.SetCampaignStatus(c.Request.Context(), middleware.AdminSubject(c), c.ClientIP(), slug, *req.IsActive)
	if err != nil {
		adminError(c, "set_campaign_status", err)
		return
	}

	logger.WithContext(c.Request.Context()).Info("campaign status changed",
		"campaign", st.Slug, "is_active", st.IsActive, "admin", middleware.AdminSubject(c))
	c.JSON(http.StatusOK, gin.H{"success": true, "status": st})
}

func (h *Handler) AdminRecentEarnings(c *gin.Context) {
	rows, err := h.Admin.RecentEarnings(c.Request.Context(), queryLimit(c, 100))
	if err != nil {
		adminError(c, "recent_earnings", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "earnings": rows})
}

func (h *Handler) AdminAccountEarnings(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid account id"})
		return
	}

	acct, rows, err := h.Admin.AccountEarnings(c.Request.Context(), id, queryLimit(c, 100))
	if err != nil {
		adminError(c, "account_earnings", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "account": acct, "earnings": rows})
}

func (h *Handler) AdminPendingWithdrawals(c *gin.Context) {
	list, err := h.Admin.PendingWithdrawals(c.Request.Context())
	if err != nil {
		adminError(c, "pending_withdrawals", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "withdrawals": list})
}

type reviewRequest struct {
	Notes string `json:"notes"`
}

func (h *Handler) ApproveWithdrawal(c *gin.Context) {
	h.reviewWithdrawal(c, true)
}

func (h *Handler) RejectWithdrawal(c *gin.Context) {
	h.reviewWithdrawal(c, false)
}

func (h *Handler) reviewWithdrawal(c *gin.Context, approve bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid withdrawal id"})
		return
	}
	var req reviewRequest
	// body is optional
	_ = c.ShouldBindJSON(&req)

	ctx := c.Request.Context()
	admin := middleware.AdminSubject(c)
	review := h.Admin.RejectWithdrawal
	op := "reject_withdrawal"
	if approve {
		review = h.Admin.ApproveWithdrawal
		op = "approve_withdrawal"
	}

	w, err := review(ctx, admin, c.ClientIP(), id, req.Notes)
	if err != nil {
		adminError(c, op, err)
		return
	}

	logger.WithContext(ctx).Info("withdrawal reviewed", "withdrawal_id", w.ID, "status", w.Status, "admin", admin)
	c.JSON(http.StatusOK, gin.H{"success": true, "withdrawal": w})
}

func (h *Handler) AdminAuditLogs(c *gin.Context) {
	logs, err := h.Admin.AuditLogs(c.Request.Context(), c.Query("category"), queryLimit(c, 50))
	if err != nil {
		adminError(c, "audit_logs", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "logs": logs})
}
