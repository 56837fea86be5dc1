package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tripkin/tripkin-api/internal/database"
	"github.com/tripkin/tripkin-api/internal/models"
	"github.com/tripkin/tripkin-api/internal/schedule"
)

type ScheduleService struct {
	db    *database.DB
	trips *TripService
}

func NewScheduleService(db *database.DB, trips *TripService) *ScheduleService {
	return &ScheduleService{db: db, trips: trips}
}

// ScheduleView is the aggregated scheduling state for one trip. Legacy-mode
// trips carry the heatmap; top3-mode trips carry the ranked candidates. The
// refinement fields are only populated while the trip is still scheduling.
type ScheduleView struct {
	Trip              *models.Trip          `json:"trip"`
	ActiveMemberCount int                   `json:"active_member_count"`
	RespondedCount    int                   `json:"responded_count"`
	RefinedCount      int                   `json:"refined_count"`
	Heatmap           []schedule.StartScore `json:"heatmap,omitempty"`
	Candidates        []schedule.Candidate  `json:"candidates,omitempty"`
	PromisingWindows  []schedule.Candidate  `json:"promising_windows,omitempty"`
	RefinementDateSet []time.Time           `json:"refinement_date_set,omitempty"`
	VoteCounts        map[string]int        `json:"vote_counts,omitempty"`
}

func tripConfig(trip *models.Trip) schedule.Config {
	return schedule.Config{
		WindowStart:    schedule.DateOnly(trip.PlanningWindowStart),
		WindowEnd:      schedule.DateOnly(trip.PlanningWindowEnd),
		TripLengthDays: trip.TripLengthDays,
	}
}

// SubmitAvailability expands a per-day, broad or weekly submission into day
// records and upserts them, so a later submission replaces the earlier status
// for each covered day. Returns the number of days written.
func (s *ScheduleService) SubmitAvailability(ctx context.Context, tripID, userID uuid.UUID, sub schedule.Submission) (int, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return 0, err
	}
	if err := schedule.AcceptsSubmissions(trip.Status); err != nil {
		return 0, err
	}

	active, err := s.trips.IsActiveMember(ctx, tripID, userID)
	if err != nil {
		return 0, err
	}
	if !active {
		return 0, ErrNotTripMember
	}

	entries, err := sub.Expand(tripConfig(trip))
	if err != nil {
		return 0, err
	}

	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, entry := range entries {
		_, err := tx.Exec(ctx, `
			INSERT INTO availability_records (trip_id, user_id, day, status, source)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (trip_id, user_id, day) DO UPDATE SET
				status = EXCLUDED.status,
				source = EXCLUDED.source,
				updated_at = NOW()
		`, tripID, userID, entry.Day, entry.Status, sub.Kind)
		if err != nil {
			return 0, fmt.Errorf("failed to write availability record: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return len(entries), nil
}

// SubmitDatePicks replaces the user's ranked window picks wholesale.
func (s *ScheduleService) SubmitDatePicks(ctx context.Context, tripID, userID uuid.UUID, picks []schedule.Pick) error {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return err
	}
	if err := schedule.AcceptsSubmissions(trip.Status); err != nil {
		return err
	}

	active, err := s.trips.IsActiveMember(ctx, tripID, userID)
	if err != nil {
		return err
	}
	if !active {
		return ErrNotTripMember
	}

	if err := schedule.ValidatePicks(tripConfig(trip), picks); err != nil {
		return err
	}

	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		DELETE FROM date_picks WHERE trip_id = $1 AND user_id = $2
	`, tripID, userID)
	if err != nil {
		return fmt.Errorf("failed to clear previous picks: %w", err)
	}

	for _, pick := range picks {
		_, err := tx.Exec(ctx, `
			INSERT INTO date_picks (trip_id, user_id, rank, start_date)
			VALUES ($1, $2, $3, $4)
		`, tripID, userID, pick.Rank, pick.Start)
		if err != nil {
			return fmt.Errorf("failed to write date pick: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// SubmitVote records or replaces the user's vote on a candidate window.
// Votes are only accepted while the trip is in the voting phase.
func (s *ScheduleService) SubmitVote(ctx context.Context, tripID, userID uuid.UUID, optionKey string) error {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return err
	}
	if trip.Status != schedule.StatusVoting {
		if err := schedule.AcceptsSubmissions(trip.Status); err != nil {
			return err
		}
		return ErrVotingNotOpen
	}

	active, err := s.trips.IsActiveMember(ctx, tripID, userID)
	if err != nil {
		return err
	}
	if !active {
		return ErrNotTripMember
	}

	_, err = s.db.Pool.Exec(ctx, `
		INSERT INTO trip_votes (trip_id, user_id, option_key)
		VALUES ($1, $2, $3)
		ON CONFLICT (trip_id, user_id) DO UPDATE SET
			option_key = EXCLUDED.option_key,
			updated_at = NOW()
	`, tripID, userID, optionKey)
	return err
}

// GetScheduleView loads everything submitted for the trip and runs the
// aggregation appropriate to its scheduling mode.
func (s *ScheduleService) GetScheduleView(ctx context.Context, tripID uuid.UUID) (*ScheduleView, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	roster, err := s.trips.ActiveMemberIDs(ctx, tripID)
	if err != nil {
		return nil, err
	}

	records, err := s.getAvailability(ctx, tripID)
	if err != nil {
		return nil, err
	}

	cfg := tripConfig(trip)
	view := &ScheduleView{
		Trip:              trip,
		ActiveMemberCount: len(roster),
		RespondedCount:    len(schedule.RespondedUsers(records)),
	}

	switch trip.SchedulingMode {
	case models.SchedulingModeTop3:
		picks, err := s.getDatePicks(ctx, tripID)
		if err != nil {
			return nil, err
		}
		view.Candidates = schedule.RankPicks(cfg, picks, 3)
	default:
		grid := schedule.FilterRoster(schedule.BuildGrid(records), roster)
		scores, err := schedule.ScoreStarts(cfg, grid, len(roster))
		if err != nil {
			return nil, err
		}
		view.Heatmap = scores
		view.Candidates = schedule.RankHeatmap(cfg, scores, 3)
	}

	if trip.Status == schedule.StatusScheduling {
		view.PromisingWindows = schedule.PromisingWindows(view.Candidates)
		view.RefinementDateSet = schedule.RefinementDateSet(view.PromisingWindows)
		view.RefinedCount = len(schedule.RefinedUsers(records, view.RefinementDateSet))
	}

	if trip.Status == schedule.StatusVoting {
		counts, err := s.getVoteCounts(ctx, tripID)
		if err != nil {
			return nil, err
		}
		view.VoteCounts = counts
	}

	return view, nil
}

func (s *ScheduleService) GetUserAvailability(ctx context.Context, tripID, userID uuid.UUID) ([]models.AvailabilityRecord, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, trip_id, user_id, day, status, source, created_at, updated_at
		FROM availability_records
		WHERE trip_id = $1 AND user_id = $2
		ORDER BY day
	`, tripID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.AvailabilityRecord
	for rows.Next() {
		var r models.AvailabilityRecord
		if err := rows.Scan(&r.ID, &r.TripID, &r.UserID, &r.Day, &r.Status, &r.Source, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

func (s *ScheduleService) getAvailability(ctx context.Context, tripID uuid.UUID) ([]schedule.DayRecord, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT user_id, day, status, source
		FROM availability_records
		WHERE trip_id = $1
		ORDER BY day
	`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []schedule.DayRecord
	for rows.Next() {
		var r schedule.DayRecord
		if err := rows.Scan(&r.UserID, &r.Day, &r.Status, &r.Source); err != nil {
			return nil, err
		}
		r.Day = schedule.DateOnly(r.Day)
		records = append(records, r)
	}
	return records, nil
}

func (s *ScheduleService) getDatePicks(ctx context.Context, tripID uuid.UUID) ([]schedule.Pick, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT user_id, rank, start_date
		FROM date_picks
		WHERE trip_id = $1
		ORDER BY user_id, rank
	`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var picks []schedule.Pick
	for rows.Next() {
		var p schedule.Pick
		if err := rows.Scan(&p.UserID, &p.Rank, &p.Start); err != nil {
			return nil, err
		}
		p.Start = schedule.DateOnly(p.Start)
		picks = append(picks, p)
	}
	return picks, nil
}

func (s *ScheduleService) getVoteCounts(ctx context.Context, tripID uuid.UUID) (map[string]int, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT option_key, COUNT(*)
		FROM trip_votes
		WHERE trip_id = $1
		GROUP BY option_key
	`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return nil, err
		}
		counts[key] = count
	}
	return counts, nil
}
