package schedule

import "time"

// Config holds a trip's scheduling bounds: the inclusive planning window
// members may choose within and the fixed number of days a locked trip will
// occupy.
type Config struct {
	WindowStart    time.Time
	WindowEnd      time.Time
	TripLengthDays int
}

// Window is a concrete candidate date range, End = Start + TripLengthDays - 1.
type Window struct {
	Start time.Time
	End   time.Time
}

// DateOnly strips clock and monotonic data so dates compare (and hash) by
// calendar day.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (c Config) Validate() error {
	if c.TripLengthDays < 1 {
		return ErrInvalidRange
	}
	if DateOnly(c.WindowEnd).Before(DateOnly(c.WindowStart)) {
		return ErrInvalidRange
	}
	return nil
}

// Days enumerates every calendar day in the planning window, inclusive.
func (c Config) Days() []time.Time {
	return daysBetween(c.WindowStart, c.WindowEnd)
}

// ValidStarts returns every day d in the planning window for which the full
// window [d, d+len-1] still fits inside the bounds.
func (c Config) ValidStarts() ([]time.Time, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	var starts []time.Time
	for _, d := range c.Days() {
		if c.IsValidStart(d) {
			starts = append(starts, d)
		}
	}
	return starts, nil
}

func (c Config) IsValidStart(day time.Time) bool {
	d := DateOnly(day)
	if d.Before(DateOnly(c.WindowStart)) {
		return false
	}
	end := windowEnd(d, c.TripLengthDays)
	return !end.After(DateOnly(c.WindowEnd))
}

// Window builds the concrete window starting at day. ErrInvalidWindow if it
// does not fit the planning bounds.
func (c Config) Window(day time.Time) (Window, error) {
	if err := c.Validate(); err != nil {
		return Window{}, err
	}
	if !c.IsValidStart(day) {
		return Window{}, ErrInvalidWindow
	}
	start := DateOnly(day)
	return Window{Start: start, End: windowEnd(start, c.TripLengthDays)}, nil
}

// Contains reports whether day falls inside the planning window.
func (c Config) Contains(day time.Time) bool {
	d := DateOnly(day)
	return !d.Before(DateOnly(c.WindowStart)) && !d.After(DateOnly(c.WindowEnd))
}

// Days enumerates the calendar days the window covers.
func (w Window) Days() []time.Time {
	return daysBetween(w.Start, w.End)
}

func windowEnd(start time.Time, lengthDays int) time.Time {
	return DateOnly(start).AddDate(0, 0, lengthDays-1)
}

func daysBetween(start, end time.Time) []time.Time {
	first := DateOnly(start)
	last := DateOnly(end)
	if last.Before(first) {
		return nil
	}
	var days []time.Time
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
