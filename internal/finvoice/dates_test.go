package finvoice_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/finvoice/internal/finvoice"
)

var eightDigits = regexp.MustCompile(`^\d{8}$`)

func TestFormatDate(t *testing.T) {
	d := time.Date(2013, 7, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "20130702", finvoice.FormatDate(d))
}

// Any valid calendar date yields an 8-digit numeric string.
func TestFormatDate_AlwaysEightDigits(t *testing.T) {
	dates := []time.Time{
		time.Date(1999, 12, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 1, 23, 59, 0, 0, time.UTC),
		time.Date(2100, 2, 28, 0, 0, 0, 0, time.UTC),
	}
	for _, d := range dates {
		assert.Regexp(t, eightDigits, finvoice.FormatDate(d))
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in       string
		expected time.Time
	}{
		{"20130702", time.Date(2013, 7, 2, 0, 0, 0, 0, time.UTC)},
		{"2013-07-02", time.Date(2013, 7, 2, 0, 0, 0, 0, time.UTC)},
		{"2013-07-02T10:30:00", time.Date(2013, 7, 2, 10, 30, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := finvoice.ParseDate(tt.in)
		require.NoError(t, err, tt.in)
		assert.True(t, got.Equal(tt.expected), "%s parsed to %s", tt.in, got)
	}

	_, err := finvoice.ParseDate("not a date")
	require.Error(t, err)
}

// Format then parse is stable for any layout ParseDate accepts.
func TestDateRoundTrip(t *testing.T) {
	for _, in := range []string{"20130702", "2013-07-02"} {
		d, err := finvoice.ParseDate(in)
		require.NoError(t, err)
		assert.Equal(t, "20130702", finvoice.FormatDate(d))
	}
}
