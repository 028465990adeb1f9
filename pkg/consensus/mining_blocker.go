package consensus

import (
	"sync"
)

// MiningBlocker is a counted set of reasons to suspend block production.
// Independent subsystems block and unblock with their own reason without
// racing each other; mining resumes only once every reason is cleared.
type MiningBlocker struct {
	mu      sync.Mutex
	reasons map[string]int
}

// NewMiningBlocker creates an empty blocker.
func NewMiningBlocker() *MiningBlocker {
	return &MiningBlocker{
		reasons: map[string]int{},
	}
}

// Block adds one count for the reason.
func (m *MiningBlocker) Block(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reasons[reason]++
}

// Unblock removes one count for the reason. Unblocking a reason that was
// never blocked is a no-op.
func (m *MiningBlocker) Unblock(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count, ok := m.reasons[reason]
	if !ok {
		return
	}
	if count <= 1 {
		delete(m.reasons, reason)
		return
	}
	m.reasons[reason] = count - 1
}

// Blocked returns true while any reason holds.
func (m *MiningBlocker) Blocked() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.reasons) > 0
}

// Reasons returns the currently held reasons.
func (m *MiningBlocker) Reasons() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	reasons := make([]string, 0, len(m.reasons))
	for reason := range m.reasons {
		reasons = append(reasons, reason)
	}
	return reasons
}
