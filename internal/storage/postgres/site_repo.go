package postgres

import (
	"database/sql"
	"errors"
	"time"

	"github.com/knotworthy/knotworthy/internal/core"
)

var ErrSiteNotFound = errors.New("site not found")

func (db *DB) CreateSite(site *core.Site, hashedPassword string) error {
	query := `
        INSERT INTO sites (
            id, couple_names, email, subdomain, custom_domain,
            theme, name_format, notify_url, wedding_date,
            is_published, is_active, created_at, updated_at
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
        )`

	_, err := db.Exec(query,
		site.ID, site.CoupleNames, site.Email, site.Subdomain, site.CustomDomain,
		site.Theme, site.NameFormat, site.NotifyURL, site.WeddingDate,
		site.IsPublished, site.IsActive, site.CreatedAt, site.UpdatedAt,
	)
	if err != nil {
		return err
	}

	// Store password
	passwordQuery := `
        INSERT INTO site_passwords (site_id, password_hash)
        VALUES ($1, $2)
    `
	_, err = db.Exec(passwordQuery, site.ID, hashedPassword)

	return err
}

func (db *DB) GetSite(id string) (*core.Site, error) {
	var site core.Site
	query := `
        SELECT id, couple_names, email, subdomain, custom_domain,
               domain_verified_at, theme, name_format, notify_url,
               wedding_date, is_published, is_active, created_at, updated_at
        FROM sites
        WHERE id = $1
    `

	if err := db.Get(&site, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSiteNotFound
		}
		return nil, err
	}

	return &site, nil
}

func (db *DB) GetSiteBySubdomain(subdomain string) (*core.Site, error) {
	var site core.Site
	query := `
        SELECT id, couple_names, email, subdomain, custom_domain,
               domain_verified_at, theme, name_format, notify_url,
               wedding_date, is_published, is_active, created_at, updated_at
        FROM sites
        WHERE subdomain = $1 AND is_active = true
    `

	if err := db.Get(&site, query, subdomain); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSiteNotFound
		}
		return nil, err
	}

	return &site, nil
}

// GetSiteByCustomDomain matches the full host string against stored custom
// domain values. Only verified domains resolve.
func (db *DB) GetSiteByCustomDomain(host string) (*core.Site, error) {
	var site core.Site
	query := `
        SELECT id, couple_names, email, subdomain, custom_domain,
               domain_verified_at, theme, name_format, notify_url,
               wedding_date, is_published, is_active, created_at, updated_at
        FROM sites
        WHERE custom_domain = $1 AND domain_verified_at IS NOT NULL AND is_active = true
    `

	if err := db.Get(&site, query, host); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSiteNotFound
		}
		return nil, err
	}

	return &site, nil
}

func (db *DB) GetSiteByEmail(email string) (*core.Site, string, error) {
	var site core.Site
	var hashedPassword string

	query := `
        SELECT s.id, s.couple_names, s.email, s.subdomain, s.custom_domain,
               s.domain_verified_at, s.theme, s.name_format, s.notify_url,
               s.wedding_date, s.is_published, s.is_active,
               s.created_at, s.updated_at, sp.password_hash
        FROM sites s
        JOIN site_passwords sp ON s.id = sp.site_id
        WHERE s.email = $1
    `

	row := db.QueryRow(query, email)
	err := row.Scan(
		&site.ID, &site.CoupleNames, &site.Email, &site.Subdomain, &site.CustomDomain,
		&site.DomainVerifiedAt, &site.Theme, &site.NameFormat, &site.NotifyURL,
		&site.WeddingDate, &site.IsPublished, &site.IsActive,
		&site.CreatedAt, &site.UpdatedAt, &hashedPassword,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", ErrSiteNotFound
		}
		return nil, "", err
	}

	return &site, hashedPassword, nil
}

func (db *DB) UpdateSite(site *core.Site) error {
	query := `
        UPDATE sites
        SET couple_names = $2, theme = $3, name_format = $4, notify_url = $5,
            wedding_date = $6, is_published = $7, updated_at = $8
        WHERE id = $1
    `
	_, err := db.Exec(query,
		site.ID, site.CoupleNames, site.Theme, site.NameFormat, site.NotifyURL,
		site.WeddingDate, site.IsPublished, time.Now(),
	)
	return err
}

// SetCustomDomain replaces the site's custom domain and clears verification.
func (db *DB) SetCustomDomain(siteID, domain string) error {
	query := `
        UPDATE sites
        SET custom_domain = $2, domain_verified_at = NULL, updated_at = $3
        WHERE id = $1
    `
	_, err := db.Exec(query, siteID, domain, time.Now())
	return err
}

func (db *DB) MarkDomainVerified(siteID string, verifiedAt time.Time) error {
	query := `
        UPDATE sites
        SET domain_verified_at = $2, updated_at = $3
        WHERE id = $1
    `
	_, err := db.Exec(query, siteID, verifiedAt, time.Now())
	return err
}

func (db *DB) EmailExists(email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM sites WHERE email = $1)`
	err := db.Get(&exists, query, email)
	return exists, err
}

func (db *DB) SubdomainExists(subdomain string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM sites WHERE subdomain = $1)`
	err := db.Get(&exists, query, subdomain)
	return exists, err
}
