package schedule

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromisingWindows_RelativeThreshold(t *testing.T) {
	cfg := testConfig(t, "2025-06-01", "2025-06-30", 3)

	candidates := RankHeatmap(cfg, []StartScore{
		{Start: day(t, "2025-06-02"), Score: 1.0},
		{Start: day(t, "2025-06-10"), Score: 0.8},
		{Start: day(t, "2025-06-20"), Score: 0.3},
	}, 0)

	promising := PromisingWindows(candidates)
	require.Len(t, promising, 2)
	assert.Equal(t, day(t, "2025-06-02"), promising[0].Start)
	assert.Equal(t, day(t, "2025-06-10"), promising[1].Start)
}

func TestPromisingWindows_CapsAtThree(t *testing.T) {
	cfg := testConfig(t, "2025-06-01", "2025-06-30", 3)

	candidates := RankHeatmap(cfg, []StartScore{
		{Start: day(t, "2025-06-01"), Score: 0.9},
		{Start: day(t, "2025-06-05"), Score: 0.9},
		{Start: day(t, "2025-06-09"), Score: 0.9},
		{Start: day(t, "2025-06-13"), Score: 0.9},
	}, 0)

	assert.Len(t, PromisingWindows(candidates), 3)
}

func TestPromisingWindows_NothingScoredYet(t *testing.T) {
	cfg := testConfig(t, "2025-06-01", "2025-06-10", 3)

	assert.Empty(t, PromisingWindows(nil))

	candidates := RankHeatmap(cfg, []StartScore{
		{Start: day(t, "2025-06-01"), Score: 0},
		{Start: day(t, "2025-06-02"), Score: 0},
	}, 0)
	assert.Empty(t, PromisingWindows(candidates))
}

func TestRefinementDateSet_UnionsOverlappingWindows(t *testing.T) {
	cfg := testConfig(t, "2025-06-01", "2025-06-10", 3)

	w1, err := cfg.Window(day(t, "2025-06-02"))
	require.NoError(t, err)
	w2, err := cfg.Window(day(t, "2025-06-04"))
	require.NoError(t, err)

	set := RefinementDateSet([]Candidate{
		{Start: w1.Start, End: w1.End},
		{Start: w2.Start, End: w2.End},
	})

	// June 2-4 and June 4-6 union to June 2-6.
	require.Len(t, set, 5)
	assert.Equal(t, day(t, "2025-06-02"), set[0])
	assert.Equal(t, day(t, "2025-06-06"), set[4])
}

func TestRespondedAndRefined_AreIndependent(t *testing.T) {
	broadOnly := uuid.New()
	refinedUser := uuid.New()

	records := []DayRecord{
		// broadOnly answered with a broad pass that happens to cover the
		// refinement days.
		{UserID: broadOnly, Day: day(t, "2025-06-02"), Status: DayMaybe, Source: SubmissionBroad},
		{UserID: broadOnly, Day: day(t, "2025-06-03"), Status: DayMaybe, Source: SubmissionBroad},
		// refinedUser came back with a per-day second pass.
		{UserID: refinedUser, Day: day(t, "2025-06-02"), Status: DayAvailable, Source: SubmissionPerDay},
	}
	dateSet := []time.Time{day(t, "2025-06-02"), day(t, "2025-06-03"), day(t, "2025-06-04")}

	responded := RespondedUsers(records)
	assert.True(t, responded[broadOnly])
	assert.True(t, responded[refinedUser])

	refined := RefinedUsers(records, dateSet)
	assert.False(t, refined[broadOnly])
	assert.True(t, refined[refinedUser])
}

func TestRefinedUsers_PerDayOutsideSetDoesNotCount(t *testing.T) {
	userID := uuid.New()

	records := []DayRecord{
		{UserID: userID, Day: day(t, "2025-06-09"), Status: DayAvailable, Source: SubmissionPerDay},
	}
	dateSet := []time.Time{day(t, "2025-06-02"), day(t, "2025-06-03")}

	assert.Empty(t, RefinedUsers(records, dateSet))
}
