// Package guestmatch maps free-text name input from the public RSVP form to
// an invitation on a site's roster, and classifies the invitation's plus-one
// shape. All functions are pure; the roster is passed in as a value and the
// first matching party always wins (roster order is the only tie-break).
package guestmatch

import "strings"

// PlusOneSentinel in a party's second slot marks an unnamed extra seat, as
// opposed to a named companion.
const PlusOneSentinel = "PLUSONE"

// Party is one invitation unit: [primary], [primary, companion] or
// [primary, PlusOneSentinel].
type Party []string

// Match is the closed set of resolution outcomes.
type Match int

const (
	Unknown Match = iota
	GuestOnly
	GuestPlusOneInvited
	GuestAndKnownPlusOne
)

func (m Match) String() string {
	switch m {
	case GuestOnly:
		return "guest_only"
	case GuestPlusOneInvited:
		return "guest_plusone_invited"
	case GuestAndKnownPlusOne:
		return "guest_and_known_plusone"
	default:
		return "unknown"
	}
}

// Kind classifies the party's shape, assuming the input matched it.
func (p Party) Kind() Match {
	switch {
	case len(p) == 0:
		return Unknown
	case len(p) == 1:
		return GuestOnly
	case p[1] == PlusOneSentinel:
		return GuestPlusOneInvited
	default:
		return GuestAndKnownPlusOne
	}
}

// Normalize trims, lowercases and collapses internal whitespace runs to a
// single space. Idempotent.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// IsValidMatch reports whether the input names the candidate. Exact
// normalized equality always matches. Otherwise the candidate's first word
// must appear verbatim among the input's words (anchoring to first names, so
// "Hunt" never matches "Hunter"), and every input word must appear among the
// candidate's words (so "Ken" matches "Ken Bub" but "Ken Smith" does not).
func IsValidMatch(input, candidate string) bool {
	in := Normalize(input)
	cand := Normalize(candidate)
	if in == cand {
		return true
	}

	inWords := strings.Fields(in)
	candWords := strings.Fields(cand)
	if len(inWords) == 0 || len(candWords) == 0 {
		return false
	}

	if !containsWord(inWords, candWords[0]) {
		return false
	}
	for _, w := range inWords {
		if !containsWord(candWords, w) {
			return false
		}
	}
	return true
}

// Find returns the index of the first party the input matches, or -1. A
// named companion slot matches the same as the primary slot; the plus-one
// sentinel never matches input.
func Find(input string, roster []Party) int {
	for i, p := range roster {
		if matchesParty(input, p) {
			return i
		}
	}
	return -1
}

// Resolve classifies the input against the roster.
func Resolve(input string, roster []Party) Match {
	i := Find(input, roster)
	if i < 0 {
		return Unknown
	}
	return roster[i].Kind()
}

// CompanionOf returns the other slot's name when the input matches either
// slot of a party with a named companion. For every other outcome (guest
// only, plus-one slot, no match) it returns false.
func CompanionOf(input string, roster []Party) (string, bool) {
	i := Find(input, roster)
	if i < 0 {
		return "", false
	}
	p := roster[i]
	if p.Kind() != GuestAndKnownPlusOne {
		return "", false
	}
	if IsValidMatch(input, p[0]) {
		return p[1], true
	}
	return p[0], true
}

// EffectivePlusOne derives whether a submission may record a plus-one: only
// a party holding a plus-one slot, whose primary is attending, and whose
// submission asked for one. Any other combination is silently corrected to
// false rather than rejected, since the client cannot know roster internals.
func EffectivePlusOne(m Match, isAttending, requested bool) bool {
	return m == GuestPlusOneInvited && isAttending && requested
}

func matchesParty(input string, p Party) bool {
	if len(p) == 0 {
		return false
	}
	if IsValidMatch(input, p[0]) {
		return true
	}
	return len(p) > 1 && p[1] != PlusOneSentinel && IsValidMatch(input, p[1])
}

func containsWord(words []string, w string) bool {
	for _, x := range words {
		if x == w {
			return true
		}
	}
	return false
}
