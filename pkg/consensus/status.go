package consensus

import "fmt"

// Status is the outcome of processing one event. StatusWaiting is ordinary
// control flow, not a fault: it tells the caller that progress is blocked
// on an unresolved approver table and the pass must be retried later.
type Status int

const (
	// StatusApplied means the event mutated state.
	StatusApplied Status = iota
	// StatusWaiting means processing halted on an unresolved reward set.
	StatusWaiting
	// StatusNoop means the event required no mutation.
	StatusNoop
	// StatusPending means a block verified but has not reached the
	// approval threshold yet. It stays staged until superseded.
	StatusPending
)

func (s Status) String() string {
	switch s {
	case StatusApplied:
		return "applied"
	case StatusWaiting:
		return "waiting"
	case StatusNoop:
		return "noop"
	case StatusPending:
		return "pending"
	default:
		return fmt.Sprintf("invalid(%d)", int(s))
	}
}
