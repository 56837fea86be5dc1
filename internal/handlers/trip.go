package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/tripkin/tripkin-api/internal/middleware"
	"github.com/tripkin/tripkin-api/internal/models"
	"github.com/tripkin/tripkin-api/internal/schedule"
	"github.com/tripkin/tripkin-api/internal/services"
	"github.com/tripkin/tripkin-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

const dateFormat = "2006-01-02"

type TripHandler struct {
	tripService   TripServiceInterface
	circleService CircleServiceInterface
}

func NewTripHandler(tripService TripServiceInterface, circleService CircleServiceInterface) *TripHandler {
	return &TripHandler{
		tripService:   tripService,
		circleService: circleService,
	}
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateFormat, s)
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateFormat)
	return &s
}

func tripResponse(trip *models.Trip) dto.TripResponse {
	return dto.TripResponse{
		ID:                  trip.ID,
		CircleID:            trip.CircleID,
		CreatedBy:           trip.CreatedBy,
		Name:                trip.Name,
		Destination:         trip.Destination,
		TripType:            trip.TripType,
		SchedulingMode:      trip.SchedulingMode,
		Status:              string(trip.Status),
		PlanningWindowStart: trip.PlanningWindowStart.Format(dateFormat),
		PlanningWindowEnd:   trip.PlanningWindowEnd.Format(dateFormat),
		TripLengthDays:      trip.TripLengthDays,
		LockedStartDate:     formatDatePtr(trip.LockedStartDate),
		LockedEndDate:       formatDatePtr(trip.LockedEndDate),
	}
}

// tripError maps service and lifecycle errors onto HTTP responses. Conflicts
// with the trip's current state come back as 409 so clients can reload.
func tripError(c *drift.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrTripNotFound):
		c.NotFound("trip not found")
	case errors.Is(err, services.ErrNotLeader):
		c.Forbidden("only the trip leader can do this")
	case errors.Is(err, services.ErrNotTripMember):
		c.Forbidden("not a trip member")
	case errors.Is(err, services.ErrAlreadyLocked):
		_ = c.JSON(409, map[string]any{
			"error": "trip dates are already locked",
			"code":  "already_locked",
		})
	case errors.Is(err, schedule.ErrTripLocked):
		_ = c.JSON(409, map[string]any{
			"error": "trip dates are locked",
			"code":  "trip_locked",
		})
	case errors.Is(err, schedule.ErrTripCanceled):
		_ = c.JSON(409, map[string]any{
			"error": "trip is canceled",
			"code":  "trip_canceled",
		})
	case errors.Is(err, schedule.ErrInvalidTransition):
		_ = c.JSON(409, map[string]any{
			"error": "trip is not in the right state for this action",
			"code":  "invalid_transition",
		})
	case errors.Is(err, schedule.ErrInvalidRange), errors.Is(err, schedule.ErrInvalidWindow),
		errors.Is(err, schedule.ErrInvalidRecord), errors.Is(err, schedule.ErrDuplicateRank):
		c.BadRequest(err.Error())
	default:
		c.InternalServerError(fallback)
	}
}

func (h *TripHandler) Create(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	circleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid circle id")
		return
	}

	isMember, err := h.circleService.IsMember(context.Background(), circleID, userID)
	if err != nil || !isMember {
		c.NotFound("circle not found")
		return
	}

	var req dto.CreateTripRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Name == "" {
		c.BadRequest("name is required")
		return
	}
	if req.TripType == "" {
		req.TripType = models.TripTypeCollaborative
	}
	if req.TripType != models.TripTypeCollaborative && req.TripType != models.TripTypeHosted {
		c.BadRequest("invalid trip type")
		return
	}
	if req.SchedulingMode == "" {
		req.SchedulingMode = models.SchedulingModeTop3
	}
	if req.SchedulingMode != models.SchedulingModeLegacy && req.SchedulingMode != models.SchedulingModeTop3 {
		c.BadRequest("invalid scheduling mode")
		return
	}

	windowStart, err := parseDate(req.PlanningWindowStart)
	if err != nil {
		c.BadRequest("invalid planning_window_start")
		return
	}
	windowEnd, err := parseDate(req.PlanningWindowEnd)
	if err != nil {
		c.BadRequest("invalid planning_window_end")
		return
	}

	params := services.CreateTripParams{
		CircleID:            circleID,
		CreatedBy:           userID,
		Name:                req.Name,
		Destination:         req.Destination,
		TripType:            req.TripType,
		SchedulingMode:      req.SchedulingMode,
		PlanningWindowStart: windowStart,
		PlanningWindowEnd:   windowEnd,
		TripLengthDays:      req.TripLengthDays,
	}
	if req.StartDate != nil {
		start, err := parseDate(*req.StartDate)
		if err != nil {
			c.BadRequest("invalid start_date")
			return
		}
		params.StartDate = &start
	}

	trip, err := h.tripService.Create(context.Background(), params)
	if err != nil {
		tripError(c, err, "failed to create trip")
		return
	}

	_ = c.JSON(201, tripResponse(trip))
}

func (h *TripHandler) ListCircleTrips(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	circleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid circle id")
		return
	}

	isMember, err := h.circleService.IsMember(context.Background(), circleID, userID)
	if err != nil || !isMember {
		c.NotFound("circle not found")
		return
	}

	trips, err := h.tripService.GetCircleTrips(context.Background(), circleID)
	if err != nil {
		c.InternalServerError("failed to get trips")
		return
	}

	response := make([]dto.TripResponse, len(trips))
	for i := range trips {
		response[i] = tripResponse(&trips[i])
	}

	_ = c.JSON(200, response)
}

// getAccessibleTrip loads the trip and checks circle membership. Trips are
// visible to everyone in the circle, not just trip members.
func (h *TripHandler) getAccessibleTrip(c *drift.Context, userID uuid.UUID) *models.Trip {
	tripID, err := uuid.Parse(c.Param("tripId"))
	if err != nil {
		c.BadRequest("invalid trip id")
		return nil
	}

	trip, err := h.tripService.GetByID(context.Background(), tripID)
	if err != nil {
		c.NotFound("trip not found")
		return nil
	}

	isMember, err := h.circleService.IsMember(context.Background(), trip.CircleID, userID)
	if err != nil || !isMember {
		c.NotFound("trip not found")
		return nil
	}

	return trip
}

func (h *TripHandler) Get(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	trip := h.getAccessibleTrip(c, userID)
	if trip == nil {
		return
	}

	_ = c.JSON(200, tripResponse(trip))
}

func (h *TripHandler) Join(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	trip := h.getAccessibleTrip(c, userID)
	if trip == nil {
		return
	}

	if err := h.tripService.Join(context.Background(), trip.ID, userID); err != nil {
		tripError(c, err, "failed to join trip")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "joined trip"})
}

func (h *TripHandler) Leave(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	trip := h.getAccessibleTrip(c, userID)
	if trip == nil {
		return
	}

	if err := h.tripService.Leave(context.Background(), trip.ID, userID); err != nil {
		tripError(c, err, "failed to leave trip")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "left trip"})
}

func (h *TripHandler) OpenScheduling(c *drift.Context) {
	h.lifecycleAction(c, h.tripService.OpenScheduling, "failed to open scheduling")
}

func (h *TripHandler) OpenVoting(c *drift.Context) {
	h.lifecycleAction(c, h.tripService.OpenVoting, "failed to open voting")
}

func (h *TripHandler) Cancel(c *drift.Context) {
	h.lifecycleAction(c, h.tripService.Cancel, "failed to cancel trip")
}

func (h *TripHandler) Complete(c *drift.Context) {
	h.lifecycleAction(c, h.tripService.Complete, "failed to complete trip")
}

func (h *TripHandler) lifecycleAction(c *drift.Context, action func(context.Context, uuid.UUID, uuid.UUID) (*models.Trip, error), fallback string) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	trip := h.getAccessibleTrip(c, userID)
	if trip == nil {
		return
	}

	updated, err := action(context.Background(), trip.ID, userID)
	if err != nil {
		tripError(c, err, fallback)
		return
	}

	_ = c.JSON(200, tripResponse(updated))
}

func (h *TripHandler) Lock(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	trip := h.getAccessibleTrip(c, userID)
	if trip == nil {
		return
	}

	var req dto.LockTripRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		c.BadRequest("invalid start_date")
		return
	}

	locked, err := h.tripService.Lock(context.Background(), trip.ID, userID, startDate)
	if err != nil {
		tripError(c, err, "failed to lock trip")
		return
	}

	_ = c.JSON(200, tripResponse(locked))
}
