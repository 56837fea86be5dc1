package schedule

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePicks(t *testing.T) {
	cfg := testConfig(t, "2025-06-01", "2025-06-10", 3)
	userID := uuid.New()

	picks := []Pick{
		{UserID: userID, Rank: RankLove, Start: day(t, "2025-06-01")},
		{UserID: userID, Rank: RankCan, Start: day(t, "2025-06-04")},
		{UserID: userID, Rank: RankMight, Start: day(t, "2025-06-07")},
	}
	assert.NoError(t, ValidatePicks(cfg, picks))
}

func TestValidatePicks_DuplicateRank(t *testing.T) {
	cfg := testConfig(t, "2025-06-01", "2025-06-10", 3)
	userID := uuid.New()

	picks := []Pick{
		{UserID: userID, Rank: RankLove, Start: day(t, "2025-06-01")},
		{UserID: userID, Rank: RankLove, Start: day(t, "2025-06-04")},
	}
	assert.ErrorIs(t, ValidatePicks(cfg, picks), ErrDuplicateRank)

	assert.ErrorIs(t, ValidatePicks(cfg, []Pick{{UserID: userID, Rank: 4, Start: day(t, "2025-06-01")}}), ErrDuplicateRank)
	assert.ErrorIs(t, ValidatePicks(cfg, []Pick{{UserID: userID, Rank: 0, Start: day(t, "2025-06-01")}}), ErrDuplicateRank)
}

func TestValidatePicks_InvalidWindow(t *testing.T) {
	cfg := testConfig(t, "2025-06-01", "2025-06-10", 3)
	userID := uuid.New()

	// Window would end June 11, past the planning bound.
	picks := []Pick{{UserID: userID, Rank: RankLove, Start: day(t, "2025-06-09")}}
	assert.ErrorIs(t, ValidatePicks(cfg, picks), ErrInvalidWindow)

	// Same start day under two ranks.
	picks = []Pick{
		{UserID: userID, Rank: RankLove, Start: day(t, "2025-06-01")},
		{UserID: userID, Rank: RankCan, Start: day(t, "2025-06-01")},
	}
	assert.ErrorIs(t, ValidatePicks(cfg, picks), ErrInvalidWindow)
}

// Composite scoring across two members: B loves June 4 and A can do it, so it
// outranks A's solo love of June 1 and far outranks the might-only June 7.
func TestRankPicks_CompositeScore(t *testing.T) {
	cfg := testConfig(t, "2025-06-01", "2025-06-10", 3)
	userA, userB := uuid.New(), uuid.New()

	picks := []Pick{
		{UserID: userA, Rank: RankLove, Start: day(t, "2025-06-01")},
		{UserID: userA, Rank: RankCan, Start: day(t, "2025-06-04")},
		{UserID: userA, Rank: RankMight, Start: day(t, "2025-06-07")},
		{UserID: userB, Rank: RankLove, Start: day(t, "2025-06-04")},
	}

	candidates := RankPicks(cfg, picks, 3)
	require.Len(t, candidates, 3)

	assert.Equal(t, day(t, "2025-06-04"), candidates[0].Start)
	assert.Equal(t, day(t, "2025-06-06"), candidates[0].End)
	assert.Equal(t, 1, candidates[0].LoveCount)
	assert.Equal(t, 1, candidates[0].CanCount)
	assert.Equal(t, 0, candidates[0].MightCount)
	assert.Equal(t, 5.0, candidates[0].Score)

	assert.Equal(t, day(t, "2025-06-01"), candidates[1].Start)
	assert.Equal(t, 3.0, candidates[1].Score)

	assert.Equal(t, day(t, "2025-06-07"), candidates[2].Start)
	assert.Equal(t, 1.0, candidates[2].Score)
}

func TestRankPicks_TieBreaksOnEarlierStart(t *testing.T) {
	cfg := testConfig(t, "2025-06-01", "2025-06-10", 3)
	userA, userB := uuid.New(), uuid.New()

	picks := []Pick{
		{UserID: userA, Rank: RankLove, Start: day(t, "2025-06-05")},
		{UserID: userB, Rank: RankLove, Start: day(t, "2025-06-02")},
	}

	candidates := RankPicks(cfg, picks, 0)
	require.Len(t, candidates, 2)
	assert.Equal(t, day(t, "2025-06-02"), candidates[0].Start)
	assert.Equal(t, day(t, "2025-06-05"), candidates[1].Start)
}

func TestRankPicks_Deterministic(t *testing.T) {
	cfg := testConfig(t, "2025-06-01", "2025-06-30", 4)

	var picks []Pick
	for i := 0; i < 8; i++ {
		userID := uuid.New()
		picks = append(picks,
			Pick{UserID: userID, Rank: RankLove, Start: day(t, "2025-06-03")},
			Pick{UserID: userID, Rank: RankCan, Start: day(t, "2025-06-10")},
			Pick{UserID: userID, Rank: RankMight, Start: day(t, "2025-06-17")},
		)
	}

	first := RankPicks(cfg, picks, 0)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, RankPicks(cfg, picks, 0))
	}
}

func TestRankPicks_TopN(t *testing.T) {
	cfg := testConfig(t, "2025-06-01", "2025-06-30", 2)
	userID := uuid.New()

	picks := []Pick{
		{UserID: userID, Rank: RankLove, Start: day(t, "2025-06-01")},
		{UserID: userID, Rank: RankCan, Start: day(t, "2025-06-05")},
		{UserID: userID, Rank: RankMight, Start: day(t, "2025-06-09")},
	}

	assert.Len(t, RankPicks(cfg, picks, 2), 2)
	assert.Len(t, RankPicks(cfg, picks, 0), 3)
	assert.Len(t, RankPicks(cfg, picks, 10), 3)
}

func TestRankHeatmap_OrdersByScoreThenStart(t *testing.T) {
	cfg := testConfig(t, "2025-06-01", "2025-06-10", 3)

	scores := []StartScore{
		{Start: day(t, "2025-06-01"), Score: 0.5},
		{Start: day(t, "2025-06-02"), Score: 0.9},
		{Start: day(t, "2025-06-03"), Score: 0.9},
		{Start: day(t, "2025-06-04"), Score: 0.2},
	}

	candidates := RankHeatmap(cfg, scores, 3)
	require.Len(t, candidates, 3)
	assert.Equal(t, day(t, "2025-06-02"), candidates[0].Start)
	assert.Equal(t, day(t, "2025-06-03"), candidates[1].Start)
	assert.Equal(t, day(t, "2025-06-01"), candidates[2].Start)
	assert.Equal(t, day(t, "2025-06-04"), candidates[0].End)
}
