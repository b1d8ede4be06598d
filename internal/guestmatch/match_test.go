package guestmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var roster = []Party{
	{"Ken Bub", "Terri Bub"},
	{"Tyler Marsh", PlusOneSentinel},
	{"Hunter Reed"},
	{"Chloe Park"},
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "ken bub", Normalize("  Ken   Bub "))
	assert.Equal(t, "", Normalize("   "))
	assert.Equal(t, "a b c", Normalize("A\tB\nC"))
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, s := range []string{"  Ken   Bub ", "TYLER marsh", "", "éLise  du Pont"} {
		once := Normalize(s)
		assert.Equal(t, once, Normalize(once))
	}
}

func TestIsValidMatch(t *testing.T) {
	tests := []struct {
		input, candidate string
		want             bool
	}{
		{"Ken Bub", "Ken Bub", true},
		{"ken bub", "Ken Bub", true},
		{"Ken", "Ken Bub", true},          // first-name-only input
		{"Bub", "Ken Bub", false},         // last name alone never anchors
		{"Hunt", "Hunter Reed", false},    // prefix must not match
		{"Hunter", "Hunter Reed", true},
		{"Ken Smith", "Ken Bub", false},   // extraneous word rejects
		{"Bub Ken", "Ken Bub", true},      // word order irrelevant
		{"", "Ken Bub", false},
		{"Ken", "", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsValidMatch(tt.input, tt.candidate), "input=%q candidate=%q", tt.input, tt.candidate)
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		input string
		want  Match
	}{
		{"Ken", GuestAndKnownPlusOne},
		{"Terri", GuestAndKnownPlusOne}, // companion slot matches directly
		{"Tyler", GuestPlusOneInvited},
		{"Hunter Reed", GuestOnly},
		{"Chloe", GuestOnly},
		{"Hunt", Unknown},
		{"Nonexistent Person", Unknown},
		{"", Unknown},
		{"PLUSONE", Unknown}, // the sentinel is not a matchable name
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Resolve(tt.input, roster), "input=%q", tt.input)
	}
}

func TestCompanionOf(t *testing.T) {
	name, ok := CompanionOf("Ken", roster)
	assert.True(t, ok)
	assert.Equal(t, "Terri Bub", name)

	name, ok = CompanionOf("Terri Bub", roster)
	assert.True(t, ok)
	assert.Equal(t, "Ken Bub", name)

	for _, input := range []string{"Tyler", "Hunter", "Chloe", "Nobody"} {
		_, ok := CompanionOf(input, roster)
		assert.False(t, ok, "input=%q", input)
	}
}

func TestResolveFirstMatchWins(t *testing.T) {
	dup := []Party{
		{"Alex Stone"},
		{"Alex Stone", "Jamie Stone"},
	}
	assert.Equal(t, GuestOnly, Resolve("Alex", dup))
	_, ok := CompanionOf("Alex", dup)
	assert.False(t, ok)
}

func TestPartyKind(t *testing.T) {
	assert.Equal(t, Unknown, Party{}.Kind())
	assert.Equal(t, GuestOnly, Party{"Chloe Park"}.Kind())
	assert.Equal(t, GuestPlusOneInvited, Party{"Tyler Marsh", PlusOneSentinel}.Kind())
	assert.Equal(t, GuestAndKnownPlusOne, Party{"Ken Bub", "Terri Bub"}.Kind())
}

func TestEffectivePlusOne(t *testing.T) {
	tests := []struct {
		match      Match
		attending  bool
		requested  bool
		want       bool
	}{
		{GuestPlusOneInvited, true, true, true},
		{GuestPlusOneInvited, false, true, false}, // never credited when declining
		{GuestPlusOneInvited, true, false, false},
		{GuestOnly, true, true, false},            // party never entitled
		{GuestAndKnownPlusOne, true, true, false}, // named companion is not a plus-one
		{Unknown, true, true, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, EffectivePlusOne(tt.match, tt.attending, tt.requested),
			"match=%v attending=%v requested=%v", tt.match, tt.attending, tt.requested)
	}
}

func TestMatchString(t *testing.T) {
	assert.Equal(t, "guest_plusone_invited", GuestPlusOneInvited.String())
	assert.Equal(t, "unknown", Unknown.String())
}
