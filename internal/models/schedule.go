package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/tripkin/tripkin-api/internal/schedule"
)

// AvailabilityRecord is the stored per-day form. Broad and weekly submissions
// are expanded to per-day rows before they reach the table, so a single
// (trip, user, day) row is always the user's effective status for that day.
type AvailabilityRecord struct {
	ID        uuid.UUID               `json:"id"`
	TripID    uuid.UUID               `json:"trip_id"`
	UserID    uuid.UUID               `json:"user_id"`
	Day       time.Time               `json:"day"`
	Status    schedule.DayStatus      `json:"status"`
	Source    schedule.SubmissionKind `json:"source"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
}

// DatePick is one ranked window preference. Rank 1 = love, 2 = can, 3 = might.
type DatePick struct {
	ID        uuid.UUID `json:"id"`
	TripID    uuid.UUID `json:"trip_id"`
	UserID    uuid.UUID `json:"user_id"`
	Rank      int       `json:"rank"`
	StartDate time.Time `json:"start_date"`
	CreatedAt time.Time `json:"created_at"`
}

// TripVote is the legacy voting-path ballot: one encoded date-range option per
// user, replaced on resubmit.
type TripVote struct {
	ID        uuid.UUID `json:"id"`
	TripID    uuid.UUID `json:"trip_id"`
	UserID    uuid.UUID `json:"user_id"`
	OptionKey string    `json:"option_key"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
