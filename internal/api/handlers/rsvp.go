package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/knotworthy/knotworthy/internal/api/middleware"
	"github.com/knotworthy/knotworthy/internal/metrics"
	"github.com/knotworthy/knotworthy/internal/rsvp"
)

// RSVPHandler serves the public endpoints on a couple's wedding site.
type RSVPHandler struct {
	svc     *rsvp.Service
	metrics *metrics.Collector
}

func NewRSVPHandler(svc *rsvp.Service, collector *metrics.Collector) *RSVPHandler {
	return &RSVPHandler{svc: svc, metrics: collector}
}

type LookupRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *RSVPHandler) Lookup(c *gin.Context) {
	site := middleware.Site(c)

	var req LookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.svc.Lookup(site, req.Name)
	if err != nil {
		if errors.Is(err, rsvp.ErrGuestNotFound) {
			h.metrics.RecordLookup(false)
			c.JSON(http.StatusNotFound, gin.H{"error": "Guest not found on invitation list"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up guest"})
		return
	}

	h.metrics.RecordLookup(true)
	c.JSON(http.StatusOK, result)
}

func (h *RSVPHandler) Submit(c *gin.Context) {
	site := middleware.Site(c)

	var sub rsvp.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows, match, err := h.svc.Submit(c.Request.Context(), site, &sub)
	if err != nil {
		switch {
		case errors.Is(err, rsvp.ErrGuestNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Guest not found on invitation list"})
		case errors.Is(err, rsvp.ErrGuestNotOnInvitation), errors.Is(err, rsvp.ErrNoGuests):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save RSVP"})
		}
		return
	}

	h.metrics.RecordSubmission(match.String())
	c.JSON(http.StatusCreated, gin.H{
		"rsvps": rows,
		"count": len(rows),
	})
}
