package schedule

// Status is a trip's lifecycle state.
type Status string

const (
	StatusProposed   Status = "proposed"
	StatusScheduling Status = "scheduling"
	StatusVoting     Status = "voting"
	StatusLocked     Status = "locked"
	StatusCompleted  Status = "completed"
	StatusCanceled   Status = "canceled"
)

// transitions is the full legal-move table. Canceled and completed are
// terminal; locking is reachable from both scheduling (ranked mode) and
// voting (legacy mode).
var transitions = map[Status][]Status{
	StatusProposed:   {StatusScheduling, StatusCanceled},
	StatusScheduling: {StatusVoting, StatusLocked, StatusCanceled},
	StatusVoting:     {StatusLocked, StatusCanceled},
	StatusLocked:     {StatusCompleted},
}

func (s Status) Valid() bool {
	switch s {
	case StatusProposed, StatusScheduling, StatusVoting, StatusLocked, StatusCompleted, StatusCanceled:
		return true
	}
	return false
}

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCanceled
}

// Lockable reports whether a trip in this state may have its dates locked.
func (s Status) Lockable() bool {
	return s == StatusScheduling || s == StatusVoting
}

func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition validates a single status move. Pure; callers apply the result
// with a compare-and-set on the stored status so concurrent moves cannot both
// win.
func Transition(from, to Status) error {
	if !from.Valid() || !to.Valid() {
		return ErrInvalidTransition
	}
	if !CanTransition(from, to) {
		return ErrInvalidTransition
	}
	return nil
}

// AcceptsSubmissions gates availability, pick and vote writes by lifecycle
// state. Post-lock writes fail with ErrTripLocked, canceled trips with
// ErrTripCanceled.
func AcceptsSubmissions(s Status) error {
	switch s {
	case StatusLocked, StatusCompleted:
		return ErrTripLocked
	case StatusCanceled:
		return ErrTripCanceled
	default:
		return nil
	}
}
