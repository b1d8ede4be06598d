// Package hostname decides, from a raw HTTP Host header, whether a request
// targets the platform's own surface or an individual wedding site, and
// extracts the candidate tenant subdomain.
//
// Classification is purely shape-based: a tenant result means "this looks
// like <subdomain>.<apex>", not "this site exists". Custom domains have no
// distinguishing shape at all, so callers must always fall back to a full-host
// lookup against stored custom-domain values before treating a non-tenant
// classification as final.
package hostname

import "strings"

// DefaultReservedLabels are subdomains the platform keeps for itself.
// Signup must refuse these, and requests to them never resolve to a site.
var DefaultReservedLabels = []string{"www", "admin", "api", "app", "dashboard", "blog", "docs"}

// Classification is the per-request result. FirstLabel is the first
// dot-separated label of the host, lowercased; when IsTenantHost is true it
// is the candidate subdomain to look up.
type Classification struct {
	IsTenantHost bool   `json:"is_tenant_host"`
	FirstLabel   string `json:"first_label"`
}

type Classifier struct {
	apex     string
	legacy   []string
	reserved map[string]struct{}
}

// NewClassifier builds a classifier for the given apex domain (e.g.
// "knotworthy.com"). legacyApexes are historical single-tenant domains the
// platform serves itself; reserved overrides DefaultReservedLabels when
// non-empty.
func NewClassifier(apex string, legacyApexes, reserved []string) *Classifier {
	if len(reserved) == 0 {
		reserved = DefaultReservedLabels
	}
	set := make(map[string]struct{}, len(reserved))
	for _, r := range reserved {
		set[strings.ToLower(r)] = struct{}{}
	}
	legacy := make([]string, 0, len(legacyApexes))
	for _, l := range legacyApexes {
		legacy = append(legacy, strings.ToLower(strings.TrimSpace(l)))
	}
	return &Classifier{
		apex:     strings.ToLower(strings.TrimSpace(apex)),
		legacy:   legacy,
		reserved: set,
	}
}

// Classify is total: every string input produces a definite result, and
// malformed input falls through to non-tenant so a bad Host header can never
// route to an arbitrary site.
func (c *Classifier) Classify(host string) Classification {
	h := strings.ToLower(strings.TrimSpace(host))
	h = stripPort(h)

	labels := strings.Split(h, ".")
	out := Classification{FirstLabel: labels[0]}

	// Bare single-label host (localhost, localhost:3000)
	if len(labels) == 1 {
		return out
	}

	if c.isOwnApex(labels) {
		return out
	}

	if _, ok := c.reserved[labels[0]]; ok {
		return out
	}

	out.IsTenantHost = true
	return out
}

// isOwnApex reports whether the labels, after an optional leading www, are
// exactly the platform apex or a grandfathered legacy apex.
func (c *Classifier) isOwnApex(labels []string) bool {
	rest := labels
	if rest[0] == "www" {
		rest = rest[1:]
	}
	domain := strings.Join(rest, ".")
	if domain == c.apex && c.apex != "" {
		return true
	}
	for _, l := range c.legacy {
		if domain == l && l != "" {
			return true
		}
	}
	return false
}

// stripPort drops a trailing :port. Bracketed IPv6 literals and other odd
// shapes end up with no dots and classify as non-tenant anyway.
func stripPort(h string) string {
	if i := strings.LastIndexByte(h, ':'); i >= 0 && !strings.Contains(h[i:], "]") {
		return h[:i]
	}
	return h
}
