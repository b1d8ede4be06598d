package domains

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHostMatchesTarget(t *testing.T) {
	tests := []struct {
		host, target string
		want         bool
	}{
		{"sites.knotworthy.com", "sites.knotworthy.com", true},
		{"sites.knotworthy.com.", "sites.knotworthy.com", true},
		{"SITES.KNOTWORTHY.COM", "sites.knotworthy.com", true},
		{"edge1.sites.knotworthy.com", "sites.knotworthy.com", true},
		{"knotworthy.com", "sites.knotworthy.com", false},
		{"evilsites.knotworthy.com.attacker.net", "sites.knotworthy.com", false},
		{"", "sites.knotworthy.com", false},
		{"sites.knotworthy.com", "", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, HostMatchesTarget(tt.host, tt.target), "host=%q target=%q", tt.host, tt.target)
	}
}

func TestSharesAddress(t *testing.T) {
	assert.True(t, sharesAddress([]string{"1.2.3.4", "5.6.7.8"}, []string{"5.6.7.8"}))
	assert.False(t, sharesAddress([]string{"1.2.3.4"}, []string{"5.6.7.8"}))
	assert.False(t, sharesAddress(nil, []string{"5.6.7.8"}))
}

func TestParseWhoisDate(t *testing.T) {
	got, err := parseWhoisDate("2027-03-14")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2027, 3, 14, 0, 0, 0, 0, time.UTC), got)

	_, err = parseWhoisDate("not a date")
	assert.Error(t, err)
}
