package core

import (
	"time"

	"github.com/google/uuid"
)

// Invitation is one roster entry: a party of one or two people invited
// together. Names holds one or two slots; the second slot is either a
// companion's literal name or the plus-one sentinel (see guestmatch).
// Position preserves roster order, which is the tie-break during matching.
type Invitation struct {
	ID        uuid.UUID `json:"id" db:"id"`
	SiteID    uuid.UUID `json:"site_id" db:"site_id"`
	Position  int       `json:"position" db:"position"`
	Names     []string  `json:"names" db:"-"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// RSVP is one guest's recorded answer. A party submission writes one row per
// named guest; HasPlusOne is only ever true on the primary guest's row.
type RSVP struct {
	ID               uuid.UUID `json:"id" db:"id"`
	SiteID           uuid.UUID `json:"site_id" db:"site_id"`
	InvitationID     uuid.UUID `json:"invitation_id" db:"invitation_id"`
	NameOnInvitation string    `json:"name_on_invitation" db:"name_on_invitation"`
	Email            string    `json:"email" db:"email"`
	IsAttending      bool      `json:"is_attending" db:"is_attending"`
	HasPlusOne       bool      `json:"has_plus_one" db:"has_plus_one"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}
