package servicerequest

import "errors"

type Status string

const (
	StatusNew        Status = "new"
	StatusPending    Status = "pending"
	StatusInProcess  Status = "in-process"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusRejected   Status = "rejected"
)

var ErrInvalidTransition = errors.New("invalid status transition")

func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusPending, StatusInProcess, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether the status admits no further transitions
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusRejected
}

// transitions enumerates every legal status move. Terminal states have no
// entries. Cancellation and rejection are reachable from any live state.
var transitions = map[Status][]Status{
	StatusNew:        {StatusPending, StatusInProcess, StatusInProgress, StatusCompleted, StatusCancelled, StatusRejected},
	StatusPending:    {StatusNew, StatusInProcess, StatusInProgress, StatusCompleted, StatusCancelled, StatusRejected},
	StatusInProcess:  {StatusNew, StatusPending, StatusInProgress, StatusCompleted, StatusCancelled, StatusRejected},
	StatusInProgress: {StatusNew, StatusPending, StatusInProcess, StatusCompleted, StatusCancelled, StatusRejected},
}

// canTransition reports whether a request may move from one status to
// another. Re-asserting the current status is always allowed.
func canTransition(from, to Status) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	if from == to {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
