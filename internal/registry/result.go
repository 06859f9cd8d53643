package registry

import "carpick/internal/models"

// Outcome tells an empty success apart from a failure.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeEmpty
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeEmpty:
		return "empty"
	case OutcomeFailed:
		return "failed"
	}
	return "unknown"
}

// Result is the single value a lookup completes with. Items is never nil.
type Result[T models.Entity] struct {
	Items   []T
	Outcome Outcome
	Err     error
}

// Ok wraps a successful lookup.
func Ok[T models.Entity](items []T) Result[T] {
	if len(items) == 0 {
		return Result[T]{Items: []T{}, Outcome: OutcomeEmpty}
	}
	return Result[T]{Items: items, Outcome: OutcomeOK}
}

// Failed wraps a failed lookup as an empty list.
func Failed[T models.Entity](err error) Result[T] {
	return Result[T]{Items: []T{}, Outcome: OutcomeFailed, Err: err}
}
