package handlers

import (
	"context"
	"errors"

	"github.com/tripkin/tripkin-api/internal/middleware"
	"github.com/tripkin/tripkin-api/internal/schedule"
	"github.com/tripkin/tripkin-api/internal/services"
	"github.com/tripkin/tripkin-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

type ScheduleHandler struct {
	scheduleService ScheduleServiceInterface
	tripService     TripServiceInterface
	circleService   CircleServiceInterface
}

func NewScheduleHandler(scheduleService ScheduleServiceInterface, tripService TripServiceInterface, circleService CircleServiceInterface) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService: scheduleService,
		tripService:     tripService,
		circleService:   circleService,
	}
}

func (h *ScheduleHandler) tripID(c *drift.Context, userID uuid.UUID) (uuid.UUID, bool) {
	tripID, err := uuid.Parse(c.Param("tripId"))
	if err != nil {
		c.BadRequest("invalid trip id")
		return uuid.Nil, false
	}

	trip, err := h.tripService.GetByID(context.Background(), tripID)
	if err != nil {
		c.NotFound("trip not found")
		return uuid.Nil, false
	}

	isMember, err := h.circleService.IsMember(context.Background(), trip.CircleID, userID)
	if err != nil || !isMember {
		c.NotFound("trip not found")
		return uuid.Nil, false
	}

	return tripID, true
}

func (h *ScheduleHandler) SubmitAvailability(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	tripID, ok := h.tripID(c, userID)
	if !ok {
		return
	}

	var req dto.SubmitAvailabilityRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	sub := schedule.Submission{
		Kind:   schedule.SubmissionKind(req.Kind),
		Status: schedule.DayStatus(req.Status),
	}

	switch sub.Kind {
	case schedule.SubmissionPerDay:
		sub.Days = make([]schedule.DayEntry, 0, len(req.Days))
		for _, entry := range req.Days {
			day, err := parseDate(entry.Day)
			if err != nil {
				c.BadRequest("invalid day: " + entry.Day)
				return
			}
			sub.Days = append(sub.Days, schedule.DayEntry{
				Day:    day,
				Status: schedule.DayStatus(entry.Status),
			})
		}
	case schedule.SubmissionBroad, schedule.SubmissionWeekly:
		start, err := parseDate(req.RangeStart)
		if err != nil {
			c.BadRequest("invalid range_start")
			return
		}
		end, err := parseDate(req.RangeEnd)
		if err != nil {
			c.BadRequest("invalid range_end")
			return
		}
		sub.RangeStart, sub.RangeEnd = start, end
	default:
		c.BadRequest("invalid submission kind")
		return
	}

	count, err := h.scheduleService.SubmitAvailability(context.Background(), tripID, userID, sub)
	if err != nil {
		tripError(c, err, "failed to submit availability")
		return
	}

	_ = c.JSON(200, dto.SubmitAvailabilityResponse{DaysRecorded: count})
}

func (h *ScheduleHandler) GetMyAvailability(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	tripID, ok := h.tripID(c, userID)
	if !ok {
		return
	}

	records, err := h.scheduleService.GetUserAvailability(context.Background(), tripID, userID)
	if err != nil {
		c.InternalServerError("failed to get availability")
		return
	}

	response := make([]dto.AvailabilityRecordResponse, len(records))
	for i, r := range records {
		response[i] = dto.AvailabilityRecordResponse{
			Day:    r.Day.Format(dateFormat),
			Status: string(r.Status),
			Source: string(r.Source),
		}
	}

	_ = c.JSON(200, response)
}

func (h *ScheduleHandler) SubmitDatePicks(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	tripID, ok := h.tripID(c, userID)
	if !ok {
		return
	}

	var req dto.SubmitDatePicksRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if len(req.Picks) == 0 {
		c.BadRequest("picks are required")
		return
	}

	picks := make([]schedule.Pick, 0, len(req.Picks))
	for _, p := range req.Picks {
		start, err := parseDate(p.StartDate)
		if err != nil {
			c.BadRequest("invalid start_date: " + p.StartDate)
			return
		}
		picks = append(picks, schedule.Pick{UserID: userID, Rank: p.Rank, Start: start})
	}

	if err := h.scheduleService.SubmitDatePicks(context.Background(), tripID, userID, picks); err != nil {
		tripError(c, err, "failed to submit picks")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "picks recorded"})
}

func (h *ScheduleHandler) SubmitVote(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	tripID, ok := h.tripID(c, userID)
	if !ok {
		return
	}

	var req dto.SubmitVoteRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.OptionKey == "" {
		c.BadRequest("option_key is required")
		return
	}

	if err := h.scheduleService.SubmitVote(context.Background(), tripID, userID, req.OptionKey); err != nil {
		if errors.Is(err, services.ErrVotingNotOpen) {
			_ = c.JSON(409, map[string]any{
				"error": "voting is not open for this trip",
				"code":  "voting_not_open",
			})
			return
		}
		tripError(c, err, "failed to submit vote")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "vote recorded"})
}

func (h *ScheduleHandler) GetScheduleView(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	tripID, ok := h.tripID(c, userID)
	if !ok {
		return
	}

	view, err := h.scheduleService.GetScheduleView(context.Background(), tripID)
	if err != nil {
		tripError(c, err, "failed to build schedule view")
		return
	}

	response := dto.ScheduleViewResponse{
		Trip:              tripResponse(view.Trip),
		ActiveMemberCount: view.ActiveMemberCount,
		RespondedCount:    view.RespondedCount,
		RefinedCount:      view.RefinedCount,
		VoteCounts:        view.VoteCounts,
	}
	for _, s := range view.Heatmap {
		response.Heatmap = append(response.Heatmap, dto.StartScoreResponse{
			Start: s.Start.Format(dateFormat),
			Score: s.Score,
		})
	}
	response.Candidates = candidateResponses(view.Candidates)
	response.PromisingWindows = candidateResponses(view.PromisingWindows)
	for _, day := range view.RefinementDateSet {
		response.RefinementDateSet = append(response.RefinementDateSet, day.Format(dateFormat))
	}

	_ = c.JSON(200, response)
}

func candidateResponses(candidates []schedule.Candidate) []dto.CandidateResponse {
	if len(candidates) == 0 {
		return nil
	}
	out := make([]dto.CandidateResponse, len(candidates))
	for i, cand := range candidates {
		out[i] = dto.CandidateResponse{
			Start:      cand.Start.Format(dateFormat),
			End:        cand.End.Format(dateFormat),
			Score:      cand.Score,
			LoveCount:  cand.LoveCount,
			CanCount:   cand.CanCount,
			MightCount: cand.MightCount,
		}
	}
	return out
}
