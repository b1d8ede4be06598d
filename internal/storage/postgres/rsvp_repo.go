package postgres

import (
	"github.com/knotworthy/knotworthy/internal/core"
)

// SaveRSVP upserts one guest's answer. A guest re-submitting replaces their
// earlier answer for the same invitation.
func (db *DB) SaveRSVP(r *core.RSVP) error {
	query := `
        INSERT INTO rsvps (
            id, site_id, invitation_id, name_on_invitation,
            email, is_attending, has_plus_one, created_at
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8
        )
        ON CONFLICT (invitation_id, name_on_invitation)
        DO UPDATE SET email = $5, is_attending = $6, has_plus_one = $7, created_at = $8
    `

	_, err := db.Exec(query,
		r.ID, r.SiteID, r.InvitationID, r.NameOnInvitation,
		r.Email, r.IsAttending, r.HasPlusOne, r.CreatedAt,
	)
	return err
}

func (db *DB) ListRSVPs(siteID string) ([]*core.RSVP, error) {
	query := `
        SELECT id, site_id, invitation_id, name_on_invitation,
               email, is_attending, has_plus_one, created_at
        FROM rsvps
        WHERE site_id = $1
        ORDER BY created_at DESC
    `

	var rsvps []*core.RSVP
	if err := db.Select(&rsvps, query, siteID); err != nil {
		return nil, err
	}
	return rsvps, nil
}

func (db *DB) GetSiteStats(siteID string) (*core.SiteStats, error) {
	var stats core.SiteStats

	if err := db.Get(&stats.InvitationCount,
		`SELECT COUNT(*) FROM invitations WHERE site_id = $1`, siteID); err != nil {
		return nil, err
	}
	if err := db.Get(&stats.RSVPCount,
		`SELECT COUNT(*) FROM rsvps WHERE site_id = $1`, siteID); err != nil {
		return nil, err
	}
	if err := db.Get(&stats.AttendingCount,
		`SELECT COUNT(*) FROM rsvps WHERE site_id = $1 AND is_attending = true`, siteID); err != nil {
		return nil, err
	}
	stats.DeclinedCount = stats.RSVPCount - stats.AttendingCount

	return &stats, nil
}
