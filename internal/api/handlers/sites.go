package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/knotworthy/knotworthy/internal/api/middleware"
	"github.com/knotworthy/knotworthy/internal/config"
	"github.com/knotworthy/knotworthy/internal/core"
	"github.com/knotworthy/knotworthy/internal/storage/postgres"
	"github.com/knotworthy/knotworthy/internal/storage/redis"
)

type SiteHandler struct {
	db     *postgres.DB
	cache  *redis.Client
	config *config.Config
}

func NewSiteHandler(db *postgres.DB, cache *redis.Client, cfg *config.Config) *SiteHandler {
	return &SiteHandler{db: db, cache: cache, config: cfg}
}

func (h *SiteHandler) GetMySite(c *gin.Context) {
	siteID := c.GetString("site_id")

	site, err := h.db.GetSite(siteID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
		return
	}

	c.JSON(http.StatusOK, site)
}

type UpdateSiteRequest struct {
	CoupleNames *string    `json:"couple_names,omitempty"`
	Theme       *string    `json:"theme,omitempty"`
	NameFormat  *string    `json:"name_format,omitempty"`
	NotifyURL   *string    `json:"notify_url,omitempty"`
	WeddingDate *time.Time `json:"wedding_date,omitempty"`
	IsPublished *bool      `json:"is_published,omitempty"`
}

func (h *SiteHandler) UpdateSite(c *gin.Context) {
	siteID := c.GetString("site_id")

	var req UpdateSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.NameFormat != nil && *req.NameFormat != core.NameFormatFull && *req.NameFormat != core.NameFormatFirst {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid name format"})
		return
	}

	site, err := h.db.GetSite(siteID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
		return
	}

	if req.CoupleNames != nil {
		site.CoupleNames = *req.CoupleNames
	}
	if req.Theme != nil {
		site.Theme = *req.Theme
	}
	if req.NameFormat != nil {
		site.NameFormat = *req.NameFormat
	}
	if req.NotifyURL != nil {
		site.NotifyURL = *req.NotifyURL
	}
	if req.WeddingDate != nil {
		site.WeddingDate = req.WeddingDate
	}
	if req.IsPublished != nil {
		site.IsPublished = *req.IsPublished
	}
	site.UpdatedAt = time.Now()

	if err := h.db.UpdateSite(site); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update site"})
		return
	}

	h.invalidateHosts(c, site)

	c.JSON(http.StatusOK, site)
}

func (h *SiteHandler) GetStats(c *gin.Context) {
	siteID := c.GetString("site_id")

	stats, err := h.db.GetSiteStats(siteID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetPublicSite serves the payload the wedding site front end renders. It
// runs behind the host resolver, so the site comes from context.
func (h *SiteHandler) GetPublicSite(c *gin.Context) {
	site := middleware.Site(c)

	if !site.IsPublished {
		c.JSON(http.StatusNotFound, gin.H{"error": "Wedding site not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"couple_names": site.CoupleNames,
		"theme":        site.Theme,
		"wedding_date": site.WeddingDate,
	})
}

// invalidateHosts drops every cached host the site can be reached on.
func (h *SiteHandler) invalidateHosts(c *gin.Context, site *core.Site) {
	hosts := []string{
		site.Subdomain + "." + h.config.Platform.ApexDomain,
		site.Subdomain + ".localhost",
		site.CustomDomain,
	}
	_ = h.cache.InvalidateSiteHosts(c.Request.Context(), hosts...)
}
