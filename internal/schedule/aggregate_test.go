package schedule

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmission_Expand_PerDay(t *testing.T) {
	cfg := testConfig(t, "2025-06-01", "2025-06-10", 3)

	sub := Submission{
		Kind: SubmissionPerDay,
		Days: []DayEntry{
			{Day: day(t, "2025-06-02"), Status: DayAvailable},
			{Day: day(t, "2025-06-03"), Status: DayMaybe},
		},
	}

	entries, err := sub.Expand(cfg)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, DayAvailable, entries[0].Status)
	assert.Equal(t, day(t, "2025-06-03"), entries[1].Day)
}

func TestSubmission_Expand_PerDay_Invalid(t *testing.T) {
	cfg := testConfig(t, "2025-06-01", "2025-06-10", 3)

	cases := map[string]Submission{
		"empty": {Kind: SubmissionPerDay},
		"bad status": {Kind: SubmissionPerDay, Days: []DayEntry{
			{Day: day(t, "2025-06-02"), Status: DayStatus("busy")},
		}},
		"outside window": {Kind: SubmissionPerDay, Days: []DayEntry{
			{Day: day(t, "2025-07-01"), Status: DayAvailable},
		}},
		"duplicate day": {Kind: SubmissionPerDay, Days: []DayEntry{
			{Day: day(t, "2025-06-02"), Status: DayAvailable},
			{Day: day(t, "2025-06-02"), Status: DayMaybe},
		}},
		"unknown kind": {Kind: SubmissionKind("monthly")},
	}
	for name, sub := range cases {
		_, err := sub.Expand(cfg)
		assert.ErrorIs(t, err, ErrInvalidRecord, name)
	}
}

func TestSubmission_Expand_Broad_CoversWholeWindow(t *testing.T) {
	cfg := testConfig(t, "2025-06-01", "2025-06-10", 3)

	sub := Submission{
		Kind:       SubmissionBroad,
		Status:     DayMaybe,
		RangeStart: day(t, "2025-06-01"),
		RangeEnd:   day(t, "2025-06-10"),
	}

	entries, err := sub.Expand(cfg)
	require.NoError(t, err)
	require.Len(t, entries, 10)
	for _, e := range entries {
		assert.Equal(t, DayMaybe, e.Status)
	}
}

func TestSubmission_Expand_Weekly_ClipsToWindow(t *testing.T) {
	cfg := testConfig(t, "2025-06-04", "2025-06-10", 3)

	// A whole calendar week straddling the window start.
	sub := Submission{
		Kind:       SubmissionWeekly,
		Status:     DayAvailable,
		RangeStart: day(t, "2025-06-02"),
		RangeEnd:   day(t, "2025-06-08"),
	}

	entries, err := sub.Expand(cfg)
	require.NoError(t, err)
	require.Len(t, entries, 5)
	assert.Equal(t, day(t, "2025-06-04"), entries[0].Day)
	assert.Equal(t, day(t, "2025-06-08"), entries[len(entries)-1].Day)
}

func TestSubmission_Expand_Range_FullyOutsideWindow(t *testing.T) {
	cfg := testConfig(t, "2025-06-01", "2025-06-10", 3)

	sub := Submission{
		Kind:       SubmissionBroad,
		Status:     DayAvailable,
		RangeStart: day(t, "2025-07-01"),
		RangeEnd:   day(t, "2025-07-10"),
	}

	_, err := sub.Expand(cfg)
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestBuildGrid_LaterRecordReplaces(t *testing.T) {
	userID := uuid.New()
	d := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	grid := BuildGrid([]DayRecord{
		{UserID: userID, Day: d, Status: DayAvailable, Source: SubmissionBroad},
		{UserID: userID, Day: d, Status: DayUnavailable, Source: SubmissionPerDay},
	})

	require.Len(t, grid[userID], 1)
	assert.Equal(t, DayUnavailable, grid[userID][d])
}

func TestScoreStarts_FullyAvailableRosterScoresOne(t *testing.T) {
	cfg := testConfig(t, "2025-06-01", "2025-06-05", 2)
	userA, userB := uuid.New(), uuid.New()

	var records []DayRecord
	for _, d := range cfg.Days() {
		records = append(records,
			DayRecord{UserID: userA, Day: d, Status: DayAvailable, Source: SubmissionBroad},
			DayRecord{UserID: userB, Day: d, Status: DayAvailable, Source: SubmissionBroad},
		)
	}

	scores, err := ScoreStarts(cfg, BuildGrid(records), 2)
	require.NoError(t, err)
	require.Len(t, scores, 4)
	for _, s := range scores {
		assert.InDelta(t, 1.0, s.Score, 1e-9)
	}
}

func TestScoreStarts_MaybeCountsHalf(t *testing.T) {
	cfg := testConfig(t, "2025-06-01", "2025-06-02", 2)
	userID := uuid.New()

	records := []DayRecord{
		{UserID: userID, Day: day(t, "2025-06-01"), Status: DayAvailable, Source: SubmissionPerDay},
		{UserID: userID, Day: day(t, "2025-06-02"), Status: DayMaybe, Source: SubmissionPerDay},
	}

	scores, err := ScoreStarts(cfg, BuildGrid(records), 1)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.InDelta(t, 0.75, scores[0].Score, 1e-9)
}

// A member marking every day unavailable contributes zero but never drags a
// window below what the other members earned for it.
func TestScoreStarts_UnavailableMemberDoesNotPenalize(t *testing.T) {
	cfg := testConfig(t, "2025-06-01", "2025-06-03", 3)
	available, unavailable := uuid.New(), uuid.New()

	var records []DayRecord
	for _, d := range cfg.Days() {
		records = append(records,
			DayRecord{UserID: available, Day: d, Status: DayAvailable, Source: SubmissionPerDay},
			DayRecord{UserID: unavailable, Day: d, Status: DayUnavailable, Source: SubmissionPerDay},
		)
	}

	scores, err := ScoreStarts(cfg, BuildGrid(records), 2)
	require.NoError(t, err)
	require.Len(t, scores, 1)

	// One of two members fully available: exactly half intensity.
	assert.InDelta(t, 0.5, scores[0].Score, 1e-9)
	assert.GreaterOrEqual(t, scores[0].Score, 0.0)
}

func TestScoreStarts_NoActiveMembers(t *testing.T) {
	cfg := testConfig(t, "2025-06-01", "2025-06-05", 2)

	scores, err := ScoreStarts(cfg, DayGrid{}, 0)
	require.NoError(t, err)
	for _, s := range scores {
		assert.Zero(t, s.Score)
	}
}

func TestScoreStarts_InvalidRange(t *testing.T) {
	cfg := testConfig(t, "2025-06-05", "2025-06-01", 2)

	_, err := ScoreStarts(cfg, DayGrid{}, 1)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestFilterRoster_DropsDepartedMembers(t *testing.T) {
	stayed, left := uuid.New(), uuid.New()
	d := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	grid := BuildGrid([]DayRecord{
		{UserID: stayed, Day: d, Status: DayAvailable, Source: SubmissionPerDay},
		{UserID: left, Day: d, Status: DayAvailable, Source: SubmissionPerDay},
	})

	filtered := FilterRoster(grid, []uuid.UUID{stayed})
	assert.Len(t, filtered, 1)
	assert.Contains(t, filtered, stayed)
	assert.NotContains(t, filtered, left)
}

func TestDayGrid_SortedDays(t *testing.T) {
	userID := uuid.New()
	grid := BuildGrid([]DayRecord{
		{UserID: userID, Day: day(t, "2025-06-03"), Status: DayAvailable, Source: SubmissionPerDay},
		{UserID: userID, Day: day(t, "2025-06-01"), Status: DayMaybe, Source: SubmissionPerDay},
		{UserID: uuid.New(), Day: day(t, "2025-06-01"), Status: DayAvailable, Source: SubmissionPerDay},
	})

	days := grid.SortedDays()
	require.Len(t, days, 2)
	assert.Equal(t, day(t, "2025-06-01"), days[0])
	assert.Equal(t, day(t, "2025-06-03"), days[1])
}
