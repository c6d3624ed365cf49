package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Time
		wantErr bool
	}{
		{"iso", "2025-01-10", time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), false},
		{"iso with spaces", "  2024-02-29 ", time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), false},
		{"iso with clock", "2025-01-10 08:30:00", time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), false},
		{"day out of range", "2025-02-30", time.Time{}, true},
		{"month out of range", "2025-13-01", time.Time{}, true},
		{"empty", "", time.Time{}, true},
		{"garbage", "not a date", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2025, 1, 1, 23, 0, 0, 0, time.UTC)
	b := time.Date(2025, 1, 31, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, 30, DaysBetween(a, b))
	assert.Equal(t, 0, DaysBetween(a, a))
}

func TestHashIdentifier(t *testing.T) {
	assert.Equal(t, HashIdentifier("a", "b"), HashIdentifier("a", "b"))
	assert.NotEqual(t, HashIdentifier("a|b"), HashIdentifier("a", "c"))
	assert.Len(t, HashIdentifier("x"), 32)
}

func TestCleanToValidUTF8(t *testing.T) {
	assert.Equal(t, "ok", CleanToValidUTF8("ok"))
	assert.Equal(t, "a�b", CleanToValidUTF8("a\xffb"))
}
