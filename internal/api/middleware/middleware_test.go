package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/rsvp", RateLimit(1, 2), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/rsvp", nil)
		req.RemoteAddr = "203.0.113.7:1234"
		router.ServeHTTP(w, req)
		statuses = append(statuses, w.Code)
	}

	// Burst of 2 passes, the third is throttled.
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, statuses)
}

func TestRateLimitIsPerIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/rsvp", RateLimit(1, 1), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	send := func(addr string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/rsvp", nil)
		req.RemoteAddr = addr
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("203.0.113.7:1234"))
	assert.Equal(t, http.StatusTooManyRequests, send("203.0.113.7:1234"))
	assert.Equal(t, http.StatusOK, send("198.51.100.9:1234"))
}

func TestNormalizeHost(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"EmilyAndJack.Knotworthy.com", "emilyandjack.knotworthy.com"},
		{"emilyandjack.localhost:3000", "emilyandjack.localhost"},
		{" knotworthy.com ", "knotworthy.com"},
		{"[::1]:8080", "[::1]"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeHost(tt.in), "host=%q", tt.in)
	}
}
