package schedule

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// DayStatus is a member's availability for a single calendar day.
type DayStatus string

const (
	DayAvailable   DayStatus = "available"
	DayMaybe       DayStatus = "maybe"
	DayUnavailable DayStatus = "unavailable"
)

func (s DayStatus) Valid() bool {
	return s == DayAvailable || s == DayMaybe || s == DayUnavailable
}

// Weight is the per-day score contribution: available counts full, maybe
// half, unavailable nothing. A member can never push a day below zero.
func (s DayStatus) Weight() float64 {
	switch s {
	case DayAvailable:
		return 1
	case DayMaybe:
		return 0.5
	default:
		return 0
	}
}

// SubmissionKind tags the shape a member submitted their availability in.
type SubmissionKind string

const (
	SubmissionPerDay SubmissionKind = "per_day"
	SubmissionBroad  SubmissionKind = "broad"
	SubmissionWeekly SubmissionKind = "weekly"
)

// DayEntry is one (day, status) pair of a per-day submission.
type DayEntry struct {
	Day    time.Time
	Status DayStatus
}

// Submission is the boundary form of an availability write. Per-day
// submissions carry Days; broad and weekly submissions carry one Status for
// an inclusive range and are expanded to per-day entries before storage.
// Which shape a client chooses for a given window size is a caller concern;
// the engine scores any per-day map the same way.
type Submission struct {
	Kind       SubmissionKind
	Days       []DayEntry
	Status     DayStatus
	RangeStart time.Time
	RangeEnd   time.Time
}

// Expand normalizes a submission into per-day entries, clipped against the
// planning window. ErrInvalidRecord on unknown kinds, bad statuses, days
// outside the window, or duplicate days.
func (sub Submission) Expand(cfg Config) ([]DayEntry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch sub.Kind {
	case SubmissionPerDay:
		if len(sub.Days) == 0 {
			return nil, ErrInvalidRecord
		}
		seen := make(map[time.Time]bool, len(sub.Days))
		entries := make([]DayEntry, 0, len(sub.Days))
		for _, e := range sub.Days {
			if !e.Status.Valid() {
				return nil, ErrInvalidRecord
			}
			day := DateOnly(e.Day)
			if !cfg.Contains(day) || seen[day] {
				return nil, ErrInvalidRecord
			}
			seen[day] = true
			entries = append(entries, DayEntry{Day: day, Status: e.Status})
		}
		return entries, nil

	case SubmissionBroad, SubmissionWeekly:
		if !sub.Status.Valid() {
			return nil, ErrInvalidRecord
		}
		start, end := DateOnly(sub.RangeStart), DateOnly(sub.RangeEnd)
		if end.Before(start) {
			return nil, ErrInvalidRecord
		}
		// Clip to the planning window so a whole-week block straddling the
		// boundary still lands.
		if start.Before(DateOnly(cfg.WindowStart)) {
			start = DateOnly(cfg.WindowStart)
		}
		if end.After(DateOnly(cfg.WindowEnd)) {
			end = DateOnly(cfg.WindowEnd)
		}
		if end.Before(start) {
			return nil, ErrInvalidRecord
		}
		var entries []DayEntry
		for _, day := range daysBetween(start, end) {
			entries = append(entries, DayEntry{Day: day, Status: sub.Status})
		}
		return entries, nil

	default:
		return nil, ErrInvalidRecord
	}
}

// DayRecord is one member's effective status for one day, as read back from
// the store. Source keeps the submission shape the row came from; expanded
// broad/weekly rows and true per-day rows score identically but only the
// latter count as a refinement response.
type DayRecord struct {
	UserID uuid.UUID
	Day    time.Time
	Status DayStatus
	Source SubmissionKind
}

// DayGrid is the canonical aggregation input: userID -> day -> status.
type DayGrid map[uuid.UUID]map[time.Time]DayStatus

// BuildGrid folds stored records into a grid. Later records for the same
// (user, day) replace earlier ones, matching the store's upsert-by-replace
// semantics.
func BuildGrid(records []DayRecord) DayGrid {
	grid := make(DayGrid)
	for _, r := range records {
		days := grid[r.UserID]
		if days == nil {
			days = make(map[time.Time]DayStatus)
			grid[r.UserID] = days
		}
		days[DateOnly(r.Day)] = r.Status
	}
	return grid
}

// StartScore is the heatmap value for one valid start day.
type StartScore struct {
	Start time.Time
	Score float64
}

// ScoreStarts computes the per-start-day heatmap: for every valid start, the
// sum of responding members' day weights across the window, normalized by
// tripLengthDays x activeMemberCount so a fully-available roster scores 1.
// activeMemberCount counts current roster members; departed members' records
// are ignored by virtue of not being in the roster-filtered grid.
func ScoreStarts(cfg Config, grid DayGrid, activeMemberCount int) ([]StartScore, error) {
	starts, err := cfg.ValidStarts()
	if err != nil {
		return nil, err
	}

	scores := make([]StartScore, 0, len(starts))
	denom := float64(cfg.TripLengthDays * activeMemberCount)
	for _, start := range starts {
		w := Window{Start: start, End: windowEnd(start, cfg.TripLengthDays)}
		var sum float64
		for _, days := range grid {
			for _, day := range w.Days() {
				if st, ok := days[day]; ok {
					sum += st.Weight()
				}
			}
		}
		score := 0.0
		if denom > 0 {
			score = sum / denom
		}
		scores = append(scores, StartScore{Start: start, Score: score})
	}
	return scores, nil
}

// FilterRoster drops grid entries for users no longer on the active roster.
func FilterRoster(grid DayGrid, roster []uuid.UUID) DayGrid {
	active := make(map[uuid.UUID]bool, len(roster))
	for _, id := range roster {
		active[id] = true
	}
	filtered := make(DayGrid, len(grid))
	for userID, days := range grid {
		if active[userID] {
			filtered[userID] = days
		}
	}
	return filtered
}

// SortedDays returns the distinct days present in the grid, ascending.
// Handy for rendering and for tests.
func (g DayGrid) SortedDays() []time.Time {
	seen := make(map[time.Time]bool)
	var days []time.Time
	for _, userDays := range g {
		for day := range userDays {
			if !seen[day] {
				seen[day] = true
				days = append(days, day)
			}
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}
