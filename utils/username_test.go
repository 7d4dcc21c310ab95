package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brettboylen/redditscope/models"
)

func TestNormalizeUsername(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Plain", "spez", "spez"},
		{"Prefixed", "u/spez", "spez"},
		{"Upper prefix", "U/upper", "upper"},
		{"Upper prefix with whitespace", "  U/Some_User-1 ", "Some_User-1"},
		{"Max length", "abcdefghijklmnopqrst", "abcdefghijklmnopqrst"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizeUsername(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNormalizeUsernameRejects(t *testing.T) {
	for _, input := range []string{"", "   ", "u/", "has space", "dots.not.allowed", "bad/slash", "abcdefghijklmnopqrstu", "/u/spez"} {
		t.Run(input, func(t *testing.T) {
			_, err := NormalizeUsername(input)
			require.Error(t, err)
			assert.ErrorIs(t, err, models.ErrInvalidUsername)
		})
	}
}
