package handlers

import (
	"errors"
	"net/http"
	"strings"

	"earn_webapp/internal/campaign"
	"earn_webapp/internal/domain"
	"earn_webapp/internal/logger"

	"github.com/gin-gonic/gin"
)

type publicEvent struct {
	Key         string  `json:"key"`
	DisplayName string  `json:"displayName"`
	Amount      float64 `json:"amount"`
}

type publicCampaign struct {
	ID            string        `json:"id"`
	Slug          string        `json:"slug"`
	Name          string        `json:"name"`
	Description   string        `json:"description,omitempty"`
	Currency      string        `json:"currency"`
	MinWithdrawal float64       `json:"minWithdrawal"`
	Events        []publicEvent `json:"events"`
}

// toPublic strips mapping and affiliate ids, which are not for clients.
func toPublic(c *domain.Campaign) publicCampaign {
	events := make([]publicEvent, 0, len(c.Events))
	for _, ev := range c.Events {
		events = append(events, publicEvent{Key: ev.Key, DisplayName: ev.DisplayName, Amount: ev.Amount.InexactFloat64()})
	}
	return publicCampaign{
		ID:            c.ID,
		Slug:          c.Slug,
		Name:          c.Name,
		Description:   c.Description,
		Currency:      c.Settings.Currency,
		MinWithdrawal: c.Settings.MinWithdrawal.InexactFloat64(),
		Events:        events,
	}
}

// ListCampaigns returns effectively active campaigns
func (h *Handler) ListCampaigns(c *gin.Context) {
	ctx := c.Request.Context()
	all := h.Registry.List()
	out := make([]publicCampaign, 0, len(all))
	for i := range all {
		active, err := h.Registry.IsActive(ctx, &all[i])
		if err != nil {
			logger.WithContext(ctx).Error("campaign status lookup failed", "campaign", all[i].Slug, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "campaign status unavailable"})
			return
		}
		if active {
			out = append(out, toPublic(&all[i]))
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "campaigns": out})
}

func (h *Handler) activeCampaign(c *gin.Context) (*domain.Campaign, bool) {
	camp, err := h.Registry.GetActive(c.Request.Context(), c.Param("slug"))
	if errors.Is(err, campaign.ErrCampaignNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "campaign unavailable"})
		return nil, false
	}
	if err != nil {
		logger.WithContext(c.Request.Context()).Error("campaign lookup failed", "slug", c.Param("slug"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "campaign status unavailable"})
		return nil, false
	}
	return camp, true
}

// GetCampaign returns one campaign; suspended ones look like missing ones
func (h *Handler) GetCampaign(c *gin.Context) {
	camp, ok := h.activeCampaign(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "campaign": toPublic(camp)})
}

// CampaignLink builds the affiliate tracking link for ?click_id=
func (h *Handler) CampaignLink(c *gin.Context) {
	clickID := strings.TrimSpace(c.Query("click_id"))
	if clickID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "click_id is required"})
		return
	}
	camp, ok := h.activeCampaign(c)
	if !ok {
		return
	}

	link, err := campaign.AffiliateURL(camp, clickID)
	if errors.Is(err, campaign.ErrNoAffiliateLink) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
		return
	}
	if err != nil {
		logger.WithContext(c.Request.Context()).Error("affiliate link build failed", "campaign", camp.Slug, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "invalid affiliate link configuration"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "campaignSlug": camp.Slug, "url": link})
}
