package rsvp

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/knotworthy/knotworthy/internal/core"
	"github.com/knotworthy/knotworthy/internal/guestmatch"
)

func TestRosterPreservesOrder(t *testing.T) {
	invitations := []*core.Invitation{
		{ID: uuid.New(), Names: []string{"Ken Bub", "Terri Bub"}},
		{ID: uuid.New(), Names: []string{"Tyler Marsh", guestmatch.PlusOneSentinel}},
		{ID: uuid.New(), Names: []string{"Hunter Reed"}},
	}

	roster := Roster(invitations)
	assert.Len(t, roster, 3)
	assert.Equal(t, guestmatch.GuestAndKnownPlusOne, roster[0].Kind())
	assert.Equal(t, guestmatch.GuestPlusOneInvited, roster[1].Kind())
	assert.Equal(t, guestmatch.GuestOnly, roster[2].Kind())
}

func TestMatchSlot(t *testing.T) {
	party := guestmatch.Party{"Ken Bub", "Terri Bub"}

	slot, ok := matchSlot("ken", party)
	assert.True(t, ok)
	assert.Equal(t, 0, slot)

	slot, ok = matchSlot("Terri", party)
	assert.True(t, ok)
	assert.Equal(t, 1, slot)

	_, ok = matchSlot("Stranger", party)
	assert.False(t, ok)
}

func TestMatchSlotSkipsSentinel(t *testing.T) {
	party := guestmatch.Party{"Tyler Marsh", guestmatch.PlusOneSentinel}

	_, ok := matchSlot("PLUSONE", party)
	assert.False(t, ok)

	slot, ok := matchSlot("Tyler", party)
	assert.True(t, ok)
	assert.Equal(t, 0, slot)
}
