package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/knotworthy/knotworthy/internal/guestmatch"
)

func TestValidateNames(t *testing.T) {
	tests := []struct {
		names  []string
		wantOK bool
	}{
		{[]string{"Hunter Reed"}, true},
		{[]string{"Ken Bub", "Terri Bub"}, true},
		{[]string{"Tyler Marsh", guestmatch.PlusOneSentinel}, true},
		{[]string{}, false},
		{[]string{"a", "b", "c"}, false},
		{[]string{""}, false},
		{[]string{"   "}, false},
		{[]string{guestmatch.PlusOneSentinel}, false},
		{[]string{guestmatch.PlusOneSentinel, "Ken Bub"}, false},
		{[]string{"Ken Bub", " "}, false},
	}

	for _, tt := range tests {
		msg := validateNames(tt.names)
		if tt.wantOK {
			assert.Empty(t, msg, "names=%v", tt.names)
		} else {
			assert.NotEmpty(t, msg, "names=%v", tt.names)
		}
	}
}
