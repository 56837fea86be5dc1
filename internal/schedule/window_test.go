package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func testConfig(t *testing.T, start, end string, length int) Config {
	t.Helper()
	return Config{
		WindowStart:    day(t, start),
		WindowEnd:      day(t, end),
		TripLengthDays: length,
	}
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, testConfig(t, "2025-06-01", "2025-06-10", 3).Validate())
	assert.NoError(t, testConfig(t, "2025-06-01", "2025-06-01", 1).Validate())

	assert.ErrorIs(t, testConfig(t, "2025-06-10", "2025-06-01", 3).Validate(), ErrInvalidRange)
	assert.ErrorIs(t, testConfig(t, "2025-06-01", "2025-06-10", 0).Validate(), ErrInvalidRange)
	assert.ErrorIs(t, testConfig(t, "2025-06-01", "2025-06-10", -1).Validate(), ErrInvalidRange)
}

func TestConfig_ValidStarts(t *testing.T) {
	cfg := testConfig(t, "2025-06-01", "2025-06-10", 3)

	starts, err := cfg.ValidStarts()
	require.NoError(t, err)

	// 10-day window, 3-day trip: starts run June 1 through June 8.
	require.Len(t, starts, 8)
	assert.Equal(t, day(t, "2025-06-01"), starts[0])
	assert.Equal(t, day(t, "2025-06-08"), starts[len(starts)-1])

	assert.True(t, cfg.IsValidStart(day(t, "2025-06-08")))
	assert.False(t, cfg.IsValidStart(day(t, "2025-06-09")))
	assert.False(t, cfg.IsValidStart(day(t, "2025-05-31")))
}

func TestConfig_ValidStarts_TripFillsWindow(t *testing.T) {
	cfg := testConfig(t, "2025-06-01", "2025-06-03", 3)

	starts, err := cfg.ValidStarts()
	require.NoError(t, err)
	require.Len(t, starts, 1)
	assert.Equal(t, day(t, "2025-06-01"), starts[0])
}

func TestConfig_ValidStarts_TripLongerThanWindow(t *testing.T) {
	cfg := testConfig(t, "2025-06-01", "2025-06-03", 5)

	starts, err := cfg.ValidStarts()
	require.NoError(t, err)
	assert.Empty(t, starts)
}

func TestConfig_Window(t *testing.T) {
	cfg := testConfig(t, "2025-06-01", "2025-06-10", 3)

	w, err := cfg.Window(day(t, "2025-06-04"))
	require.NoError(t, err)
	assert.Equal(t, day(t, "2025-06-04"), w.Start)
	assert.Equal(t, day(t, "2025-06-06"), w.End)

	days := w.Days()
	require.Len(t, days, 3)
	assert.Equal(t, day(t, "2025-06-05"), days[1])

	_, err = cfg.Window(day(t, "2025-06-09"))
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestConfig_Window_InvalidRange(t *testing.T) {
	cfg := testConfig(t, "2025-06-10", "2025-06-01", 3)

	_, err := cfg.Window(day(t, "2025-06-05"))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestDateOnly_StripsClockAndZone(t *testing.T) {
	loc := time.FixedZone("X", -5*3600)
	stamp := time.Date(2025, 6, 4, 23, 30, 0, 0, loc)

	got := DateOnly(stamp)
	assert.Equal(t, time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC), got)
}

func TestConfig_Days_Inclusive(t *testing.T) {
	cfg := testConfig(t, "2025-06-01", "2025-06-05", 2)

	days := cfg.Days()
	require.Len(t, days, 5)
	assert.Equal(t, day(t, "2025-06-01"), days[0])
	assert.Equal(t, day(t, "2025-06-05"), days[4])
}
