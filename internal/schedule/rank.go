package schedule

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Pick ranks. Rank 1 is a window the member loves, 2 one they can do, 3 one
// they might make work.
const (
	RankLove  = 1
	RankCan   = 2
	RankMight = 3
)

// Pick is one member's ranked preference for a window start day.
type Pick struct {
	UserID uuid.UUID
	Rank   int
	Start  time.Time
}

// Candidate is a scored, rankable window. Count fields are only populated for
// the ranked model.
type Candidate struct {
	Start      time.Time
	End        time.Time
	Score      float64
	LoveCount  int
	CanCount   int
	MightCount int
}

// Days enumerates the calendar days the candidate window covers.
func (c Candidate) Days() []time.Time {
	return daysBetween(c.Start, c.End)
}

// ValidatePicks checks a single user's pick set: at most one pick per rank,
// distinct start days across ranks, every window inside the planning bounds.
func ValidatePicks(cfg Config, picks []Pick) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	byRank := make(map[int]bool, len(picks))
	byStart := make(map[time.Time]bool, len(picks))
	for _, p := range picks {
		if p.Rank < RankLove || p.Rank > RankMight {
			return ErrDuplicateRank
		}
		if byRank[p.Rank] {
			return ErrDuplicateRank
		}
		byRank[p.Rank] = true

		start := DateOnly(p.Start)
		if byStart[start] {
			return ErrInvalidWindow
		}
		byStart[start] = true

		if !cfg.IsValidStart(start) {
			return ErrInvalidWindow
		}
	}
	return nil
}

// RankPicks aggregates all members' picks into candidates ordered by
// composite score, 3 x love + 2 x can + 1 x might, descending. Ties break
// toward the earliest start date so reruns on unchanged input give an
// identical list.
func RankPicks(cfg Config, picks []Pick, topN int) []Candidate {
	byStart := make(map[time.Time]*Candidate)
	for _, p := range picks {
		start := DateOnly(p.Start)
		c := byStart[start]
		if c == nil {
			c = &Candidate{Start: start, End: windowEnd(start, cfg.TripLengthDays)}
			byStart[start] = c
		}
		switch p.Rank {
		case RankLove:
			c.LoveCount++
		case RankCan:
			c.CanCount++
		case RankMight:
			c.MightCount++
		}
	}

	candidates := make([]Candidate, 0, len(byStart))
	for _, c := range byStart {
		c.Score = float64(3*c.LoveCount + 2*c.CanCount + c.MightCount)
		candidates = append(candidates, *c)
	}
	sortCandidates(candidates)
	return truncate(candidates, topN)
}

// RankHeatmap turns aggregation scores into candidates for the legacy
// broad/per-day model, same ordering discipline as RankPicks.
func RankHeatmap(cfg Config, scores []StartScore, topN int) []Candidate {
	candidates := make([]Candidate, 0, len(scores))
	for _, s := range scores {
		start := DateOnly(s.Start)
		candidates = append(candidates, Candidate{
			Start: start,
			End:   windowEnd(start, cfg.TripLengthDays),
			Score: s.Score,
		})
	}
	sortCandidates(candidates)
	return truncate(candidates, topN)
}

func sortCandidates(candidates []Candidate) {
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Start.Before(candidates[j].Start)
	})
}

func truncate(candidates []Candidate, topN int) []Candidate {
	if topN > 0 && len(candidates) > topN {
		return candidates[:topN]
	}
	return candidates
}
