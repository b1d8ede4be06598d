package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/knotworthy/knotworthy/internal/domains"
	"github.com/knotworthy/knotworthy/internal/storage/postgres"
	"github.com/knotworthy/knotworthy/internal/storage/redis"
)

type DomainHandler struct {
	db       *postgres.DB
	cache    *redis.Client
	verifier *domains.Verifier
	logger   *zap.Logger
}

func NewDomainHandler(db *postgres.DB, cache *redis.Client, verifier *domains.Verifier, logger *zap.Logger) *DomainHandler {
	return &DomainHandler{db: db, cache: cache, verifier: verifier, logger: logger}
}

type SetDomainRequest struct {
	Domain string `json:"domain" binding:"required,fqdn"`
}

// SetCustomDomain records the couple's claimed domain. It stays unresolvable
// until a verification pass succeeds.
func (h *DomainHandler) SetCustomDomain(c *gin.Context) {
	siteID := c.GetString("site_id")

	var req SetDomainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	domain := strings.ToLower(strings.TrimSpace(req.Domain))

	site, err := h.db.GetSite(siteID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
		return
	}

	oldDomain := site.CustomDomain
	if err := h.db.SetCustomDomain(siteID, domain); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set domain"})
		return
	}

	_ = h.cache.InvalidateSiteHosts(c.Request.Context(), oldDomain, domain)

	c.JSON(http.StatusOK, gin.H{
		"domain":   domain,
		"verified": false,
	})
}

// VerifyDomain runs the DNS check against the site's claimed domain and
// marks it verified when it points at the platform.
func (h *DomainHandler) VerifyDomain(c *gin.Context) {
	siteID := c.GetString("site_id")

	site, err := h.db.GetSite(siteID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
		return
	}
	if site.CustomDomain == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No custom domain configured"})
		return
	}

	result, err := h.verifier.Verify(c.Request.Context(), site.CustomDomain)
	if err != nil {
		h.logger.Warn("domain verification failed",
			zap.String("site_id", siteID),
			zap.String("domain", site.CustomDomain),
			zap.Error(err),
		)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Domain lookup failed"})
		return
	}

	if result.Verified {
		if err := h.db.MarkDomainVerified(siteID, result.CheckedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record verification"})
			return
		}
		_ = h.cache.InvalidateSiteHosts(c.Request.Context(), site.CustomDomain)
	}

	c.JSON(http.StatusOK, result)
}

func (h *DomainHandler) GetDomainStatus(c *gin.Context) {
	siteID := c.GetString("site_id")

	site, err := h.db.GetSite(siteID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"domain":      site.CustomDomain,
		"verified":    site.DomainVerifiedAt != nil,
		"verified_at": site.DomainVerifiedAt,
	})
}
