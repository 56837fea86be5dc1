package dto

import "github.com/google/uuid"

type CreateTripRequest struct {
	Name                string  `json:"name"`
	Destination         *string `json:"destination,omitempty"`
	TripType            string  `json:"trip_type"`
	SchedulingMode      string  `json:"scheduling_mode"`
	PlanningWindowStart string  `json:"planning_window_start"`
	PlanningWindowEnd   string  `json:"planning_window_end"`
	TripLengthDays      int     `json:"trip_length_days"`
	StartDate           *string `json:"start_date,omitempty"`
}

type LockTripRequest struct {
	StartDate string `json:"start_date"`
}

type TripResponse struct {
	ID                  uuid.UUID `json:"id"`
	CircleID            uuid.UUID `json:"circle_id"`
	CreatedBy           uuid.UUID `json:"created_by"`
	Name                string    `json:"name"`
	Destination         *string   `json:"destination,omitempty"`
	TripType            string    `json:"trip_type"`
	SchedulingMode      string    `json:"scheduling_mode"`
	Status              string    `json:"status"`
	PlanningWindowStart string    `json:"planning_window_start"`
	PlanningWindowEnd   string    `json:"planning_window_end"`
	TripLengthDays      int       `json:"trip_length_days"`
	LockedStartDate     *string   `json:"locked_start_date,omitempty"`
	LockedEndDate       *string   `json:"locked_end_date,omitempty"`
}

type TripMemberResponse struct {
	ID     uuid.UUID    `json:"id"`
	UserID uuid.UUID    `json:"user_id"`
	User   UserResponse `json:"user"`
}
