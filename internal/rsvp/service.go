// Package rsvp glues the pure guest matcher to persistence: it resolves the
// submitted names against the invitation, derives plus-one semantics, writes
// one RSVP row per guest and queues a notification for the couple. Matching
// itself never touches the database; the roster is loaded first and passed
// in as a value.
package rsvp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/knotworthy/knotworthy/internal/core"
	"github.com/knotworthy/knotworthy/internal/guestmatch"
	"github.com/knotworthy/knotworthy/internal/queue"
	"github.com/knotworthy/knotworthy/internal/storage/postgres"
)

var (
	// ErrGuestNotFound is the user-facing "check your spelling" outcome,
	// not a system fault.
	ErrGuestNotFound = errors.New("guest not found on invitation list")
	// ErrGuestNotOnInvitation rejects a submitted guest name that does not
	// belong to the resolved invitation.
	ErrGuestNotOnInvitation = errors.New("guest is not on this invitation")
	ErrNoGuests             = errors.New("submission contains no guests")
)

type Service struct {
	db     *postgres.DB
	queue  *queue.RedisQueue
	logger *zap.Logger
}

func NewService(db *postgres.DB, q *queue.RedisQueue, logger *zap.Logger) *Service {
	return &Service{
		db:     db,
		queue:  q,
		logger: logger,
	}
}

// Roster converts stored invitations into the matcher's party list,
// preserving roster order.
func Roster(invitations []*core.Invitation) []guestmatch.Party {
	roster := make([]guestmatch.Party, len(invitations))
	for i, inv := range invitations {
		roster[i] = guestmatch.Party(inv.Names)
	}
	return roster
}

// LookupResult is what the public lookup endpoint returns for a hit.
type LookupResult struct {
	Invitation *core.Invitation `json:"invitation"`
	Match      string           `json:"match"`
	Companion  string           `json:"companion,omitempty"`
	NameFormat string           `json:"name_format"`
}

// Lookup resolves free-text name input against the site's roster.
func (s *Service) Lookup(site *core.Site, input string) (*LookupResult, error) {
	invitations, err := s.db.ListInvitations(site.ID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}

	roster := Roster(invitations)
	idx := guestmatch.Find(input, roster)
	if idx < 0 {
		return nil, ErrGuestNotFound
	}

	result := &LookupResult{
		Invitation: invitations[idx],
		Match:      roster[idx].Kind().String(),
		NameFormat: site.NameFormat,
	}
	if companion, ok := guestmatch.CompanionOf(input, roster); ok {
		result.Companion = companion
	}

	return result, nil
}

type GuestAnswer struct {
	Name        string `json:"name" binding:"required"`
	IsAttending bool   `json:"is_attending"`
}

type Submission struct {
	InvitationID uuid.UUID     `json:"invitation_id" binding:"required"`
	Email        string        `json:"email" binding:"required,email"`
	Guests       []GuestAnswer `json:"guests" binding:"required"`
	PlusOne      bool          `json:"plus_one"`
}

// Submit validates the submission against the invitation, derives the
// effective plus-one flag and persists one row per guest. The plus-one flag
// only ever lands on the primary guest's row, and only when the party holds
// a plus-one slot and the primary is attending.
func (s *Service) Submit(ctx context.Context, site *core.Site, sub *Submission) ([]*core.RSVP, guestmatch.Match, error) {
	if len(sub.Guests) == 0 {
		return nil, guestmatch.Unknown, ErrNoGuests
	}

	inv, err := s.db.GetInvitation(sub.InvitationID.String(), site.ID.String())
	if err != nil {
		if errors.Is(err, postgres.ErrInvitationNotFound) {
			return nil, guestmatch.Unknown, ErrGuestNotFound
		}
		return nil, guestmatch.Unknown, fmt.Errorf("failed to load invitation: %w", err)
	}

	party := guestmatch.Party(inv.Names)
	match := party.Kind()

	rows := make([]*core.RSVP, 0, len(sub.Guests))
	now := time.Now()
	attending := 0
	hasPlusOne := false

	for _, g := range sub.Guests {
		slot, ok := matchSlot(g.Name, party)
		if !ok {
			return nil, guestmatch.Unknown, fmt.Errorf("%w: %s", ErrGuestNotOnInvitation, g.Name)
		}

		row := &core.RSVP{
			ID:               uuid.New(),
			SiteID:           site.ID,
			InvitationID:     inv.ID,
			NameOnInvitation: party[slot],
			Email:            sub.Email,
			IsAttending:      g.IsAttending,
			CreatedAt:        now,
		}
		// Companion rows never carry a plus-one.
		if slot == 0 {
			row.HasPlusOne = guestmatch.EffectivePlusOne(match, g.IsAttending, sub.PlusOne)
			hasPlusOne = row.HasPlusOne
		}

		if g.IsAttending {
			attending++
		}
		rows = append(rows, row)
	}

	for _, row := range rows {
		if err := s.db.SaveRSVP(row); err != nil {
			return nil, guestmatch.Unknown, fmt.Errorf("failed to save rsvp: %w", err)
		}
	}

	s.enqueueNotification(ctx, site, inv, rows, attending, hasPlusOne)

	return rows, match, nil
}

// matchSlot maps a submitted guest name to its literal slot on the party.
// The plus-one sentinel is never a matchable slot.
func matchSlot(name string, p guestmatch.Party) (int, bool) {
	for i, slot := range p {
		if slot == guestmatch.PlusOneSentinel {
			continue
		}
		if guestmatch.IsValidMatch(name, slot) {
			return i, true
		}
	}
	return 0, false
}

// enqueueNotification is best effort: a queue outage must not lose the RSVP.
func (s *Service) enqueueNotification(ctx context.Context, site *core.Site, inv *core.Invitation, rows []*core.RSVP, attending int, hasPlusOne bool) {
	if s.queue == nil || site.NotifyURL == "" {
		return
	}

	names := make([]string, 0, len(rows))
	for _, r := range rows {
		names = append(names, r.NameOnInvitation)
	}

	job := &queue.Job{
		ID:           uuid.New().String(),
		SiteID:       site.ID.String(),
		InvitationID: inv.ID.String(),
		NotifyURL:    site.NotifyURL,
		GuestNames:   names,
		Attending:    attending,
		HasPlusOne:   hasPlusOne,
		CreatedAt:    time.Now(),
	}

	if err := s.queue.Push(ctx, job); err != nil {
		s.logger.Warn("failed to queue rsvp notification",
			zap.String("site_id", site.ID.String()),
			zap.Error(err),
		)
	}
}
