package appointment

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusNoShow     Status = "no_show"
)

// AllStatuses lists every status in lifecycle order.
var AllStatuses = []Status{
	StatusScheduled,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}

var transitions = map[Status][]Status{
	StatusScheduled:  {StatusConfirmed, StatusCancelled, StatusNoShow},
	StatusConfirmed:  {StatusInProgress, StatusCancelled, StatusNoShow},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  nil,
	StatusCancelled:  nil,
	StatusNoShow:     nil,
}

// ParseStatus rejects anything outside the closed set.
func ParseStatus(s string) (Status, bool) {
	st := Status(s)
	if _, ok := transitions[st]; !ok {
		return "", false
	}
	return st, true
}

func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// Blocks reports whether an appointment in this status occupies its window.
func (s Status) Blocks() bool {
	return s != StatusCancelled && s != StatusNoShow
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ===============================
// Validations
// ===============================

// Transition checks a requested status change against the transition table.
func Transition(current, requested Status) (Status, error) {
	if !current.CanTransitionTo(requested) {
		return current, &InvalidTransitionError{From: current, To: requested}
	}
	return requested, nil
}

func InitialStatus() Status {
	return StatusScheduled
}

// ReschedulableStatuses are the only states whose window may still move.
func (s Status) Reschedulable() bool {
	return s == StatusScheduled || s == StatusConfirmed
}
