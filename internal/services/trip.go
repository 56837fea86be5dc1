package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tripkin/tripkin-api/internal/database"
	"github.com/tripkin/tripkin-api/internal/models"
	"github.com/tripkin/tripkin-api/internal/schedule"
)

var (
	ErrTripNotFound  = errors.New("trip not found")
	ErrNotLeader     = errors.New("only the trip leader can do this")
	ErrAlreadyLocked = errors.New("trip dates are already locked")
	ErrNotTripMember = errors.New("user is not a trip member")
	ErrVotingNotOpen = errors.New("voting is not open for this trip")
)

const tripColumns = `id, circle_id, created_by, name, destination, trip_type, scheduling_mode,
	status, planning_window_start, planning_window_end, trip_length_days,
	locked_start_date, locked_end_date, created_at, updated_at`

type TripService struct {
	db *database.DB
}

func NewTripService(db *database.DB) *TripService {
	return &TripService{db: db}
}

type CreateTripParams struct {
	CircleID            uuid.UUID
	CreatedBy           uuid.UUID
	Name                string
	Destination         *string
	TripType            string
	SchedulingMode      string
	PlanningWindowStart time.Time
	PlanningWindowEnd   time.Time
	TripLengthDays      int
	// StartDate is required for hosted trips, which lock immediately.
	StartDate *time.Time
}

func (s *TripService) Create(ctx context.Context, params CreateTripParams) (*models.Trip, error) {
	cfg := schedule.Config{
		WindowStart:    schedule.DateOnly(params.PlanningWindowStart),
		WindowEnd:      schedule.DateOnly(params.PlanningWindowEnd),
		TripLengthDays: params.TripLengthDays,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	status := schedule.StatusProposed
	var lockedStart, lockedEnd *time.Time
	if params.TripType == models.TripTypeHosted {
		if params.StartDate == nil {
			return nil, schedule.ErrInvalidWindow
		}
		window, err := cfg.Window(schedule.DateOnly(*params.StartDate))
		if err != nil {
			return nil, err
		}
		status = schedule.StatusLocked
		lockedStart, lockedEnd = &window.Start, &window.End
	}

	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var trip models.Trip
	err = tx.QueryRow(ctx, `
		INSERT INTO trips (circle_id, created_by, name, destination, trip_type, scheduling_mode,
			status, planning_window_start, planning_window_end, trip_length_days,
			locked_start_date, locked_end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+tripColumns+`
	`, params.CircleID, params.CreatedBy, params.Name, params.Destination,
		params.TripType, params.SchedulingMode, status,
		cfg.WindowStart, cfg.WindowEnd, params.TripLengthDays,
		lockedStart, lockedEnd).Scan(tripFields(&trip)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create trip: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO trip_members (trip_id, user_id) VALUES ($1, $2)
	`, trip.ID, params.CreatedBy)
	if err != nil {
		return nil, fmt.Errorf("failed to add trip leader as member: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &trip, nil
}

func (s *TripService) GetByID(ctx context.Context, tripID uuid.UUID) (*models.Trip, error) {
	var trip models.Trip
	err := s.db.Pool.QueryRow(ctx, `
		SELECT `+tripColumns+` FROM trips WHERE id = $1
	`, tripID).Scan(tripFields(&trip)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTripNotFound
	}
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

func (s *TripService) GetCircleTrips(ctx context.Context, circleID uuid.UUID) ([]models.Trip, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+tripColumns+` FROM trips WHERE circle_id = $1 ORDER BY created_at DESC
	`, circleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []models.Trip
	for rows.Next() {
		var trip models.Trip
		if err := rows.Scan(tripFields(&trip)...); err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}
	return trips, nil
}

// Join adds the user to the trip roster, or rejoins after a leave.
func (s *TripService) Join(ctx context.Context, tripID, userID uuid.UUID) error {
	trip, err := s.GetByID(ctx, tripID)
	if err != nil {
		return err
	}
	if trip.Status.Terminal() {
		return schedule.ErrTripCanceled
	}

	_, err = s.db.Pool.Exec(ctx, `
		INSERT INTO trip_members (trip_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (trip_id, user_id) DO UPDATE SET left_at = NULL
	`, tripID, userID)
	return err
}

func (s *TripService) Leave(ctx context.Context, tripID, userID uuid.UUID) error {
	result, err := s.db.Pool.Exec(ctx, `
		UPDATE trip_members SET left_at = NOW()
		WHERE trip_id = $1 AND user_id = $2 AND left_at IS NULL
	`, tripID, userID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotTripMember
	}
	return nil
}

func (s *TripService) IsActiveMember(ctx context.Context, tripID, userID uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.Pool.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM trip_members
			WHERE trip_id = $1 AND user_id = $2 AND left_at IS NULL
		)
	`, tripID, userID).Scan(&exists)
	return exists, err
}

func (s *TripService) ActiveMemberIDs(ctx context.Context, tripID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT user_id FROM trip_members
		WHERE trip_id = $1 AND left_at IS NULL
		ORDER BY joined_at
	`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *TripService) OpenScheduling(ctx context.Context, tripID, requestedBy uuid.UUID) (*models.Trip, error) {
	return s.transition(ctx, tripID, requestedBy, schedule.StatusProposed, schedule.StatusScheduling)
}

// OpenVoting moves a legacy-mode trip from availability collection to voting.
func (s *TripService) OpenVoting(ctx context.Context, tripID, requestedBy uuid.UUID) (*models.Trip, error) {
	trip, err := s.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.SchedulingMode != models.SchedulingModeLegacy {
		return nil, schedule.ErrInvalidTransition
	}
	return s.transition(ctx, tripID, requestedBy, schedule.StatusScheduling, schedule.StatusVoting)
}

func (s *TripService) Cancel(ctx context.Context, tripID, requestedBy uuid.UUID) (*models.Trip, error) {
	trip, err := s.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.CreatedBy != requestedBy {
		return nil, ErrNotLeader
	}
	return s.transition(ctx, tripID, requestedBy, trip.Status, schedule.StatusCanceled)
}

func (s *TripService) Complete(ctx context.Context, tripID, requestedBy uuid.UUID) (*models.Trip, error) {
	return s.transition(ctx, tripID, requestedBy, schedule.StatusLocked, schedule.StatusCompleted)
}

// Lock irrevocably fixes the trip dates to the window starting at startDate.
// The compare-and-set on status guarantees at most one lock wins even under
// concurrent requests.
func (s *TripService) Lock(ctx context.Context, tripID, requestedBy uuid.UUID, startDate time.Time) (*models.Trip, error) {
	trip, err := s.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.CreatedBy != requestedBy {
		return nil, ErrNotLeader
	}

	cfg := schedule.Config{
		WindowStart:    schedule.DateOnly(trip.PlanningWindowStart),
		WindowEnd:      schedule.DateOnly(trip.PlanningWindowEnd),
		TripLengthDays: trip.TripLengthDays,
	}
	window, err := cfg.Window(schedule.DateOnly(startDate))
	if err != nil {
		return nil, err
	}

	var locked models.Trip
	err = s.db.Pool.QueryRow(ctx, `
		UPDATE trips
		SET status = $1, locked_start_date = $2, locked_end_date = $3, updated_at = NOW()
		WHERE id = $4 AND status IN ($5, $6)
		RETURNING `+tripColumns+`
	`, schedule.StatusLocked, window.Start, window.End, tripID,
		schedule.StatusScheduling, schedule.StatusVoting).Scan(tripFields(&locked)...)
	if errors.Is(err, pgx.ErrNoRows) {
		current, loadErr := s.GetByID(ctx, tripID)
		if loadErr != nil {
			return nil, loadErr
		}
		if current.Status == schedule.StatusLocked || current.Status == schedule.StatusCompleted {
			return nil, ErrAlreadyLocked
		}
		return nil, schedule.ErrInvalidTransition
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock trip: %w", err)
	}
	return &locked, nil
}

// transition performs a leader-gated compare-and-set status change. A lost
// race surfaces as ErrAlreadyLocked when another request locked first, or
// ErrInvalidTransition otherwise.
func (s *TripService) transition(ctx context.Context, tripID, requestedBy uuid.UUID, from, to schedule.Status) (*models.Trip, error) {
	if err := schedule.Transition(from, to); err != nil {
		return nil, err
	}

	trip, err := s.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.CreatedBy != requestedBy {
		return nil, ErrNotLeader
	}

	var updated models.Trip
	err = s.db.Pool.QueryRow(ctx, `
		UPDATE trips SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
		RETURNING `+tripColumns+`
	`, to, tripID, from).Scan(tripFields(&updated)...)
	if errors.Is(err, pgx.ErrNoRows) {
		current, loadErr := s.GetByID(ctx, tripID)
		if loadErr != nil {
			return nil, loadErr
		}
		if current.Status == schedule.StatusLocked && to != schedule.StatusCompleted {
			return nil, ErrAlreadyLocked
		}
		return nil, schedule.ErrInvalidTransition
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update trip status: %w", err)
	}
	return &updated, nil
}

func tripFields(t *models.Trip) []any {
	return []any{
		&t.ID, &t.CircleID, &t.CreatedBy, &t.Name, &t.Destination,
		&t.TripType, &t.SchedulingMode, &t.Status,
		&t.PlanningWindowStart, &t.PlanningWindowEnd, &t.TripLengthDays,
		&t.LockedStartDate, &t.LockedEndDate, &t.CreatedAt, &t.UpdatedAt,
	}
}
