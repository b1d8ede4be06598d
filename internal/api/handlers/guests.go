package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/knotworthy/knotworthy/internal/core"
	"github.com/knotworthy/knotworthy/internal/guestmatch"
	"github.com/knotworthy/knotworthy/internal/storage/postgres"
)

type GuestHandler struct {
	db *postgres.DB
}

func NewGuestHandler(db *postgres.DB) *GuestHandler {
	return &GuestHandler{db: db}
}

type InvitationRequest struct {
	Names    []string `json:"names" binding:"required"`
	Position int      `json:"position"`
}

// validateNames enforces the party invariant: one or two slots, the second
// either a literal name or the plus-one sentinel, the first never empty or
// the sentinel.
func validateNames(names []string) string {
	if len(names) < 1 || len(names) > 2 {
		return "A party has one or two name slots"
	}
	if strings.TrimSpace(names[0]) == "" || names[0] == guestmatch.PlusOneSentinel {
		return "The first slot must be the primary guest's name"
	}
	if len(names) == 2 && names[1] != guestmatch.PlusOneSentinel && strings.TrimSpace(names[1]) == "" {
		return "The second slot must be a name or the plus-one marker"
	}
	return ""
}

func (h *GuestHandler) ListInvitations(c *gin.Context) {
	siteID := c.GetString("site_id")

	invitations, err := h.db.ListInvitations(siteID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list invitations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"invitations": invitations,
		"count":       len(invitations),
	})
}

func (h *GuestHandler) CreateInvitation(c *gin.Context) {
	siteID := c.GetString("site_id")

	var req InvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := validateNames(req.Names); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	position := req.Position
	if position == 0 {
		count, err := h.db.CountInvitations(siteID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count invitations"})
			return
		}
		position = count + 1
	}

	inv := &core.Invitation{
		ID:        uuid.New(),
		SiteID:    uuid.MustParse(siteID),
		Position:  position,
		Names:     req.Names,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := h.db.CreateInvitation(inv); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create invitation"})
		return
	}

	c.JSON(http.StatusCreated, inv)
}

func (h *GuestHandler) UpdateInvitation(c *gin.Context) {
	siteID := c.GetString("site_id")
	invID := c.Param("id")

	var req InvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := validateNames(req.Names); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	inv, err := h.db.GetInvitation(invID, siteID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invitation not found"})
		return
	}

	inv.Names = req.Names
	if req.Position != 0 {
		inv.Position = req.Position
	}
	inv.UpdatedAt = time.Now()

	if err := h.db.UpdateInvitation(inv); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update invitation"})
		return
	}

	c.JSON(http.StatusOK, inv)
}

func (h *GuestHandler) DeleteInvitation(c *gin.Context) {
	siteID := c.GetString("site_id")
	invID := c.Param("id")

	if err := h.db.DeleteInvitation(invID, siteID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete invitation"})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

func (h *GuestHandler) ListRSVPs(c *gin.Context) {
	siteID := c.GetString("site_id")

	rsvps, err := h.db.ListRSVPs(siteID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list RSVPs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rsvps": rsvps,
		"count": len(rsvps),
	})
}
