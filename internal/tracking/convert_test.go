package tracking_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/timekeep-hq/timekeep_app/internal/tracking"
)

func TestHoursFromDuration(t *testing.T) {
	tests := []struct {
		elapsed time.Duration
		want    string
	}{
		{2 * time.Minute, "0.25"},  // under the floor
		{14 * time.Minute, "0.25"}, // just under the floor
		{15 * time.Minute, "0.25"}, // exactly the floor
		{30 * time.Minute, "0.5"},
		{90 * time.Minute, "1.5"},
		{100 * time.Minute, "1.67"}, // rounds to two decimals
		{8 * time.Hour, "8"},
	}
	for _, tc := range tests {
		got := tracking.HoursFromDuration(tc.elapsed)
		assert.True(t, got.Equal(decimal.RequireFromString(tc.want)),
			"elapsed %s: got %s want %s", tc.elapsed, got, tc.want)
	}
}

func TestMinutesFromDuration(t *testing.T) {
	tests := []struct {
		elapsed time.Duration
		want    int
	}{
		{30 * time.Second, 15}, // under the floor
		{14 * time.Minute, 15},
		{15 * time.Minute, 15},
		{16 * time.Minute, 16},
		{90 * time.Minute, 90},
		{90*time.Minute + 29*time.Second, 90}, // rounds to nearest minute
		{90*time.Minute + 31*time.Second, 91},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, tracking.MinutesFromDuration(tc.elapsed), "elapsed %s", tc.elapsed)
	}
}
