package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/knotworthy/knotworthy/internal/config"
	"github.com/knotworthy/knotworthy/internal/core"
	"github.com/knotworthy/knotworthy/internal/hostname"
	"github.com/knotworthy/knotworthy/internal/metrics"
	"github.com/knotworthy/knotworthy/internal/storage/postgres"
	"github.com/knotworthy/knotworthy/internal/storage/redis"
)

// SiteResolver resolves the request's Host header to a wedding site and
// stores it in the context. The classifier only fast-paths the subdomain
// shape; existence is always confirmed by lookup, and non-tenant shapes get
// one more chance as a stored custom domain before the request 404s.
func SiteResolver(cfg *config.Config, classifier *hostname.Classifier, db *postgres.DB, cache *redis.Client, collector *metrics.Collector, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		host := normalizeHost(c.Request.Host)

		if site, err := cache.GetCachedSiteByHost(c.Request.Context(), host); err == nil {
			collector.RecordResolution("cache")
			setSite(c, site)
			c.Next()
			return
		}

		cl := classifier.Classify(host)
		collector.RecordClassification(cl.IsTenantHost)

		var site *core.Site
		var err error
		source := "subdomain"

		if cl.IsTenantHost {
			site, err = db.GetSiteBySubdomain(cl.FirstLabel)
			if errors.Is(err, postgres.ErrSiteNotFound) {
				// Tenant-shaped but unknown subdomain; could still be a
				// bare custom apex.
				site, err = db.GetSiteByCustomDomain(host)
				source = "custom_domain"
			}
		} else {
			site, err = db.GetSiteByCustomDomain(host)
			source = "custom_domain"
		}

		if err != nil {
			if errors.Is(err, postgres.ErrSiteNotFound) {
				collector.RecordResolution("miss")
				c.JSON(http.StatusNotFound, gin.H{"error": "Wedding site not found"})
				c.Abort()
				return
			}
			logger.Error("site resolution failed", zap.String("host", host), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve site"})
			c.Abort()
			return
		}

		collector.RecordResolution(source)
		if err := cache.CacheSiteByHost(c.Request.Context(), host, site, cfg.Redis.SiteCacheTTL); err != nil {
			logger.Warn("failed to cache site resolution", zap.String("host", host), zap.Error(err))
		}

		setSite(c, site)
		c.Next()
	}
}

// Site returns the resolved site set by SiteResolver.
func Site(c *gin.Context) *core.Site {
	v, _ := c.Get("site")
	site, _ := v.(*core.Site)
	return site
}

func setSite(c *gin.Context, site *core.Site) {
	c.Set("site", site)
	c.Set("site_id", site.ID.String())
}

// normalizeHost lowercases and strips the port so cache keys and stored
// custom-domain values compare cleanly.
func normalizeHost(host string) string {
	h := strings.ToLower(strings.TrimSpace(host))
	if i := strings.LastIndexByte(h, ':'); i >= 0 && !strings.Contains(h[i:], "]") {
		h = h[:i]
	}
	return h
}
