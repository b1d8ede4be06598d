package hostname

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestClassifier() *Classifier {
	return NewClassifier("knotworthy.com", []string{"emilyandjack.wedding"}, nil)
}

func TestClassifyPlatformHosts(t *testing.T) {
	c := newTestClassifier()

	tests := []struct {
		host      string
		wantLabel string
	}{
		{"knotworthy.com", "knotworthy"},
		{"www.knotworthy.com", "www"},
		{"KNOTWORTHY.COM", "knotworthy"},
		{"knotworthy.com:443", "knotworthy"},
		{"localhost", "localhost"},
		{"localhost:3000", "localhost"},
		{"admin.knotworthy.com", "admin"},
		{"api.knotworthy.com", "api"},
		{"app.knotworthy.com", "app"},
		{"dashboard.knotworthy.com", "dashboard"},
		{"blog.knotworthy.com", "blog"},
		{"docs.knotworthy.com", "docs"},
		{"www.localhost", "www"},
		{"emilyandjack.wedding", "emilyandjack"},
		{"www.emilyandjack.wedding", "www"},
		{"", ""},
	}

	for _, tt := range tests {
		got := c.Classify(tt.host)
		assert.False(t, got.IsTenantHost, "host %q should not be a tenant", tt.host)
		assert.Equal(t, tt.wantLabel, got.FirstLabel, "host %q", tt.host)
	}
}

func TestClassifyTenantHosts(t *testing.T) {
	c := newTestClassifier()

	tests := []struct {
		host      string
		wantLabel string
	}{
		{"emilyandjack.localhost", "emilyandjack"},
		{"emilyandjack.localhost:3000", "emilyandjack"},
		{"emilyandjack.knotworthy.com", "emilyandjack"},
		{"chloe-and-william.knotworthy.com", "chloe-and-william"},
		{"Tyler.Knotworthy.Com", "tyler"},
		{"chloe-and-william.localhost:3000", "chloe-and-william"},
	}

	for _, tt := range tests {
		got := c.Classify(tt.host)
		assert.True(t, got.IsTenantHost, "host %q should be a tenant", tt.host)
		assert.Equal(t, tt.wantLabel, got.FirstLabel, "host %q", tt.host)
	}
}

func TestClassifyPortDoesNotChangeResult(t *testing.T) {
	c := newTestClassifier()

	for _, host := range []string{"localhost", "knotworthy.com", "emilyandjack.localhost", "www.knotworthy.com"} {
		bare := c.Classify(host)
		withPort := c.Classify(host + ":3000")
		assert.Equal(t, bare, withPort, "host %q", host)
	}
}

func TestClassifyIsPure(t *testing.T) {
	c := newTestClassifier()
	first := c.Classify("emilyandjack.knotworthy.com")
	second := c.Classify("emilyandjack.knotworthy.com")
	assert.Equal(t, first, second)
}

// Custom domains have no tenant shape; the middleware resolves them by full
// host lookup. The classifier just has to not blow up and not claim them.
func TestClassifyCustomDomainShapes(t *testing.T) {
	c := newTestClassifier()

	got := c.Classify("www.chloeandwilliam.com")
	assert.False(t, got.IsTenantHost)

	// A bare custom apex looks like <label>.<tld>, which is tenant-shaped.
	// The middleware's existence lookup is what keeps this from routing.
	got = c.Classify("chloeandwilliam.com")
	assert.True(t, got.IsTenantHost)
	assert.Equal(t, "chloeandwilliam", got.FirstLabel)
}

func TestClassifyReservedOverride(t *testing.T) {
	c := NewClassifier("knotworthy.com", nil, []string{"status"})

	assert.False(t, c.Classify("status.knotworthy.com").IsTenantHost)
	// Default reserved set no longer applies when overridden.
	assert.True(t, c.Classify("blog.knotworthy.com").IsTenantHost)
}
