package handlers

import (
	"errors"
	"net/http"

	"earn_webapp/internal/http/middleware"
	"earn_webapp/internal/postback"

	"github.com/gin-gonic/gin"
)

// Postback handles GET /postback. Networks only look at the status code,
// the JSON body is for humans reading network dashboards.
func (h *Handler) Postback(c *gin.Context) {
	reqID := middleware.GetRequestID(c)

	res, err := h.Postbacks.Process(c.Request.Context(), postback.Request{
		Query:     c.Request.URL.Query(),
		RequestID: reqID,
		ClientIP:  c.ClientIP(),
	})
	if err != nil {
		status, msg := http.StatusInternalServerError, "internal error"
		var pe *postback.Error
		if errors.As(err, &pe) {
			status, msg = pe.HTTPStatus(), pe.Message
		}
		c.JSON(status, gin.H{
			"success":   false,
			"message":   msg,
			"requestId": reqID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "earning recorded",
		"requestId":    reqID,
		"campaign":     res.Campaign.Name,
		"campaignSlug": res.Campaign.Slug,
		"user": gin.H{
			"id":           res.Account.ID,
			"upiId":        res.Account.UPIID,
			"mobileNumber": res.Account.Mobile(),
		},
		"eventType":  res.Earning.EventType,
		"payment":    res.Earning.Payment.InexactFloat64(),
		"newBalance": res.Balance.AvailableBalance.InexactFloat64(),
		"earningId":  res.Earning.ID,
	})
}
