package core

import (
	"time"

	"github.com/google/uuid"
)

// NameFormat controls how guest names are rendered on the public RSVP form.
const (
	NameFormatFull  = "full"
	NameFormatFirst = "first"
)

// Site is one couple's wedding website. A site is the tenant unit: it owns
// the subdomain, the optional custom domain, the guest roster and all RSVPs.
type Site struct {
	ID          uuid.UUID `json:"id" db:"id"`
	CoupleNames string    `json:"couple_names" db:"couple_names"`
	Email       string    `json:"email" db:"email"`
	Subdomain   string    `json:"subdomain" db:"subdomain"`

	// Custom domain, empty until the couple attaches one
	CustomDomain     string     `json:"custom_domain,omitempty" db:"custom_domain"`
	DomainVerifiedAt *time.Time `json:"domain_verified_at,omitempty" db:"domain_verified_at"`

	// Site settings
	Theme       string     `json:"theme" db:"theme"`
	NameFormat  string     `json:"name_format" db:"name_format"`
	NotifyURL   string     `json:"notify_url,omitempty" db:"notify_url"`
	WeddingDate *time.Time `json:"wedding_date,omitempty" db:"wedding_date"`
	IsPublished bool       `json:"is_published" db:"is_published"`

	// Metadata
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type SiteStats struct {
	InvitationCount int `json:"invitation_count"`
	RSVPCount       int `json:"rsvp_count"`
	AttendingCount  int `json:"attending_count"`
	DeclinedCount   int `json:"declined_count"`
}
