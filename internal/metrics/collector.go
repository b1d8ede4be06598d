package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Collector struct {
	// Host routing
	hostClassifications *prometheus.CounterVec
	siteResolutions     *prometheus.CounterVec

	// RSVP flow
	rsvpLookups     *prometheus.CounterVec
	rsvpSubmissions *prometheus.CounterVec
}

func NewCollector() *Collector {
	return &Collector{
		hostClassifications: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "host_classifications_total",
			Help: "Host header classifications by kind (platform or tenant)",
		}, []string{"kind"}),
		siteResolutions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "site_resolutions_total",
			Help: "Host-to-site resolutions by source (cache, subdomain, custom_domain, miss)",
		}, []string{"source"}),
		rsvpLookups: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "rsvp_lookups_total",
			Help: "Guest name lookups by result (hit or miss)",
		}, []string{"result"}),
		rsvpSubmissions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "rsvp_submissions_total",
			Help: "RSVP submissions by invitation match kind",
		}, []string{"match"}),
	}
}

func (c *Collector) RecordClassification(isTenant bool) {
	kind := "platform"
	if isTenant {
		kind = "tenant"
	}
	c.hostClassifications.WithLabelValues(kind).Inc()
}

func (c *Collector) RecordResolution(source string) {
	c.siteResolutions.WithLabelValues(source).Inc()
}

func (c *Collector) RecordLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	c.rsvpLookups.WithLabelValues(result).Inc()
}

func (c *Collector) RecordSubmission(match string) {
	c.rsvpSubmissions.WithLabelValues(match).Inc()
}
