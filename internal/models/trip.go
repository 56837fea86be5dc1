package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/tripkin/tripkin-api/internal/schedule"
)

const (
	TripTypeCollaborative = "collaborative"
	TripTypeHosted        = "hosted"
)

// Scheduling modes. Legacy trips collect broad/weekly/per-day availability and
// close with a vote; top3 trips collect ranked window picks and lock directly.
const (
	SchedulingModeLegacy = "legacy"
	SchedulingModeTop3   = "top3"
)

type Trip struct {
	ID                  uuid.UUID       `json:"id"`
	CircleID            uuid.UUID       `json:"circle_id"`
	CreatedBy           uuid.UUID       `json:"created_by"`
	Name                string          `json:"name"`
	Destination         *string         `json:"destination,omitempty"`
	TripType            string          `json:"trip_type"`
	SchedulingMode      string          `json:"scheduling_mode"`
	Status              schedule.Status `json:"status"`
	PlanningWindowStart time.Time       `json:"planning_window_start"`
	PlanningWindowEnd   time.Time       `json:"planning_window_end"`
	TripLengthDays      int             `json:"trip_length_days"`
	LockedStartDate     *time.Time      `json:"locked_start_date,omitempty"`
	LockedEndDate       *time.Time      `json:"locked_end_date,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

func (t *Trip) IsHosted() bool {
	return t.TripType == TripTypeHosted
}

type TripMember struct {
	ID       uuid.UUID  `json:"id"`
	TripID   uuid.UUID  `json:"trip_id"`
	UserID   uuid.UUID  `json:"user_id"`
	JoinedAt time.Time  `json:"joined_at"`
	LeftAt   *time.Time `json:"left_at,omitempty"`
	User     *User      `json:"user,omitempty"`
}
