package schedule

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Refinement pass tuning: a window is promising when it scores at least
// refineScoreRatio of the current best, and at most refineMaxWindows are
// offered.
const (
	refineScoreRatio = 0.6
	refineMaxWindows = 3
)

// PromisingWindows selects the high-score windows worth a second,
// finer-grained preference pass. Input must already be candidate-ordered
// (RankPicks/RankHeatmap output). Empty if nothing has a positive score yet.
func PromisingWindows(candidates []Candidate) []Candidate {
	if len(candidates) == 0 || candidates[0].Score <= 0 {
		return nil
	}
	threshold := candidates[0].Score * refineScoreRatio

	var promising []Candidate
	for _, c := range candidates {
		if c.Score < threshold {
			break
		}
		promising = append(promising, c)
		if len(promising) == refineMaxWindows {
			break
		}
	}
	return promising
}

// RefinementDateSet unions the days covered by the promising windows into a
// sorted, de-duplicated day list. Members who already submitted a broad or
// weekly pass may re-submit per-day statuses for exactly these days; days
// outside the set keep their original derived status.
func RefinementDateSet(windows []Candidate) []time.Time {
	seen := make(map[time.Time]bool)
	var days []time.Time
	for _, w := range windows {
		for _, day := range w.Days() {
			if !seen[day] {
				seen[day] = true
				days = append(days, day)
			}
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// RespondedUsers marks every user holding at least one availability record.
func RespondedUsers(records []DayRecord) map[uuid.UUID]bool {
	responded := make(map[uuid.UUID]bool)
	for _, r := range records {
		responded[r.UserID] = true
	}
	return responded
}

// RefinedUsers marks users with at least one genuinely per-day record inside
// the refinement date set. Responded and refined are independent flags: a
// broad pass makes a user responded but not refined, even though its
// expansion covers the same days.
func RefinedUsers(records []DayRecord, dateSet []time.Time) map[uuid.UUID]bool {
	inSet := make(map[time.Time]bool, len(dateSet))
	for _, day := range dateSet {
		inSet[DateOnly(day)] = true
	}
	refined := make(map[uuid.UUID]bool)
	for _, r := range records {
		if r.Source == SubmissionPerDay && inSet[DateOnly(r.Day)] {
			refined[r.UserID] = true
		}
	}
	return refined
}
