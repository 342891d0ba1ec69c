package countdown

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUntil(t *testing.T) {
	utc := time.UTC
	tests := []struct {
		name string
		now  time.Time
		year int
		want Remaining
	}{
		{
			name: "one second before midnight",
			now:  time.Date(2025, 12, 31, 23, 59, 59, 0, utc),
			year: 2026,
			want: Remaining{Seconds: 1},
		},
		{
			name: "full breakdown",
			now:  time.Date(2025, 12, 30, 10, 15, 30, 0, utc),
			year: 2026,
			want: Remaining{Days: 1, Hours: 13, Minutes: 44, Seconds: 30},
		},
		{
			name: "sub-second remainder is truncated",
			now:  time.Date(2025, 12, 31, 23, 59, 58, 500_000_000, utc),
			year: 2026,
			want: Remaining{Seconds: 1},
		},
		{
			name: "exactly at midnight",
			now:  time.Date(2026, 1, 1, 0, 0, 0, 0, utc),
			year: 2026,
			want: Remaining{Done: true},
		},
		{
			name: "past target",
			now:  time.Date(2030, 6, 1, 0, 0, 0, 0, utc),
			year: 2026,
			want: Remaining{Done: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Until(tt.now, tt.year))
		})
	}
}

func TestUntil_UsesLocationOfNow(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	now := time.Date(2025, 12, 31, 23, 0, 0, 0, tokyo)

	got := Until(now, 2026)
	assert.Equal(t, Remaining{Hours: 1}, got)
	assert.Equal(t, tokyo, Target(now, 2026).Location())
}

func TestNextYear(t *testing.T) {
	assert.Equal(t, 2027, NextYear(time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 2026, NextYear(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
}
