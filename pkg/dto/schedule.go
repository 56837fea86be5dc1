package dto

// DayStatusEntry is one (day, status) pair of a per-day availability
// submission. Days use the 2006-01-02 form throughout.
type DayStatusEntry struct {
	Day    string `json:"day"`
	Status string `json:"status"`
}

type SubmitAvailabilityRequest struct {
	Kind       string           `json:"kind"`
	Days       []DayStatusEntry `json:"days,omitempty"`
	Status     string           `json:"status,omitempty"`
	RangeStart string           `json:"range_start,omitempty"`
	RangeEnd   string           `json:"range_end,omitempty"`
}

type SubmitAvailabilityResponse struct {
	DaysRecorded int `json:"days_recorded"`
}

type DatePickEntry struct {
	Rank      int    `json:"rank"`
	StartDate string `json:"start_date"`
}

type SubmitDatePicksRequest struct {
	Picks []DatePickEntry `json:"picks"`
}

type SubmitVoteRequest struct {
	OptionKey string `json:"option_key"`
}

type StartScoreResponse struct {
	Start string  `json:"start"`
	Score float64 `json:"score"`
}

type CandidateResponse struct {
	Start      string  `json:"start"`
	End        string  `json:"end"`
	Score      float64 `json:"score"`
	LoveCount  int     `json:"love_count"`
	CanCount   int     `json:"can_count"`
	MightCount int     `json:"might_count"`
}

type ScheduleViewResponse struct {
	Trip              TripResponse         `json:"trip"`
	ActiveMemberCount int                  `json:"active_member_count"`
	RespondedCount    int                  `json:"responded_count"`
	RefinedCount      int                  `json:"refined_count"`
	Heatmap           []StartScoreResponse `json:"heatmap,omitempty"`
	Candidates        []CandidateResponse  `json:"candidates,omitempty"`
	PromisingWindows  []CandidateResponse  `json:"promising_windows,omitempty"`
	RefinementDateSet []string             `json:"refinement_date_set,omitempty"`
	VoteCounts        map[string]int       `json:"vote_counts,omitempty"`
}

type AvailabilityRecordResponse struct {
	Day    string `json:"day"`
	Status string `json:"status"`
	Source string `json:"source"`
}
