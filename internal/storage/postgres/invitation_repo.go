package postgres

import (
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/knotworthy/knotworthy/internal/core"
)

var ErrInvitationNotFound = errors.New("invitation not found")

func (db *DB) CreateInvitation(inv *core.Invitation) error {
	query := `
        INSERT INTO invitations (
            id, site_id, position, names, created_at, updated_at
        ) VALUES (
            $1, $2, $3, $4, $5, $6
        )`

	_, err := db.Exec(query,
		inv.ID, inv.SiteID, inv.Position, pq.StringArray(inv.Names),
		inv.CreatedAt, inv.UpdatedAt,
	)
	return err
}

func (db *DB) GetInvitation(id, siteID string) (*core.Invitation, error) {
	var inv core.Invitation
	var names pq.StringArray

	query := `
        SELECT id, site_id, position, names, created_at, updated_at
        FROM invitations
        WHERE id = $1 AND site_id = $2
    `

	err := db.QueryRow(query, id, siteID).Scan(
		&inv.ID, &inv.SiteID, &inv.Position, &names,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvitationNotFound
		}
		return nil, err
	}

	inv.Names = []string(names)
	return &inv, nil
}

// ListInvitations returns the site's roster in position order. Resolution
// depends on this ordering: the first matching party wins.
func (db *DB) ListInvitations(siteID string) ([]*core.Invitation, error) {
	query := `
        SELECT id, site_id, position, names, created_at, updated_at
        FROM invitations
        WHERE site_id = $1
        ORDER BY position, created_at
    `

	rows, err := db.Query(query, siteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invitations []*core.Invitation
	for rows.Next() {
		var inv core.Invitation
		var names pq.StringArray

		if err := rows.Scan(
			&inv.ID, &inv.SiteID, &inv.Position, &names,
			&inv.CreatedAt, &inv.UpdatedAt,
		); err != nil {
			return nil, err
		}

		inv.Names = []string(names)
		invitations = append(invitations, &inv)
	}

	return invitations, rows.Err()
}

func (db *DB) UpdateInvitation(inv *core.Invitation) error {
	query := `
        UPDATE invitations
        SET position = $3, names = $4, updated_at = $5
        WHERE id = $1 AND site_id = $2
    `
	_, err := db.Exec(query,
		inv.ID, inv.SiteID, inv.Position, pq.StringArray(inv.Names), time.Now(),
	)
	return err
}

func (db *DB) DeleteInvitation(id, siteID string) error {
	query := `DELETE FROM invitations WHERE id = $1 AND site_id = $2`
	_, err := db.Exec(query, id, siteID)
	return err
}

func (db *DB) CountInvitations(siteID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM invitations WHERE site_id = $1`
	err := db.Get(&count, query, siteID)
	return count, err
}
