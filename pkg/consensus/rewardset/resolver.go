// Package rewardset resolves the weighted approver table of a reward cycle.
package rewardset

import (
	"errors"
	"fmt"

	"github.com/EmberHQ/ember-engine/pkg/blockchain"
	"github.com/EmberHQ/ember-engine/pkg/db"
	"github.com/EmberHQ/ember-engine/pkg/log"
)

// Status of a reward cycle resolution.
type Status int

const (
	// StatusNotSelected marks a cycle before the weighted regime. A
	// missing table may fall back to the default burn table.
	StatusNotSelected Status = iota
	// StatusSelectedUnknown marks a weighted cycle whose table is not yet
	// resolvable. Sortition evaluation must block on it; it never falls
	// back to a default.
	StatusSelectedUnknown
	// StatusSelectedKnown carries the resolved weighted table.
	StatusSelectedKnown
)

func (s Status) String() string {
	switch s {
	case StatusNotSelected:
		return "notSelected"
	case StatusSelectedUnknown:
		return "selectedUnknown"
	case StatusSelectedKnown:
		return "selectedKnown"
	default:
		return fmt.Sprintf("invalid(%d)", int(s))
	}
}

// Info is the resolution result for one cycle. Set is non-nil only when
// Status is StatusSelectedKnown.
type Info struct {
	Cycle  uint64
	Status Status
	Set    *blockchain.ApproverSet
}

// Config for the resolver.
type Config struct {
	// FirstWeightedCycle is the first reward cycle governed by the
	// weighted approver regime.
	FirstWeightedCycle uint64
}

// Resolver resolves reward cycle approver tables through the two step
// indirection in the chain data, caching any known result. A cycle result
// only ever moves from unknown to known, so the cache never invalidates.
type Resolver struct {
	logger             log.Logger
	dataAccess         *blockchain.DataAccess
	firstWeightedCycle uint64

	known map[uint64]*Info
}

// NewResolver creates a resolver.
func NewResolver(logger log.Logger, dataAccess *blockchain.DataAccess, cfg *Config) *Resolver {
	return &Resolver{
		logger:             logger,
		dataAccess:         dataAccess,
		firstWeightedCycle: cfg.FirstWeightedCycle,
		known:              map[uint64]*Info{},
	}
}

// FirstWeightedCycle returns the first cycle of the weighted regime.
func (r *Resolver) FirstWeightedCycle() uint64 {
	return r.firstWeightedCycle
}

// Weighted returns true if the cycle falls under the weighted regime.
func (r *Resolver) Weighted(cycle uint64) bool {
	return cycle >= r.firstWeightedCycle
}

// Resolve returns the resolution state of the cycle. Under the weighted
// regime a missing indirection record or table yields SelectedUnknown and
// never a default table.
func (r *Resolver) Resolve(cycle uint64) (*Info, error) {
	if !r.Weighted(cycle) {
		return &Info{Cycle: cycle, Status: StatusNotSelected}, nil
	}
	if cached, ok := r.known[cycle]; ok {
		return cached, nil
	}
	finalizeHeight, err := r.dataAccess.GetCycleFinalizeHeight(cycle)
	if err != nil {
		if errors.Is(err, db.ErrDataNotFound) {
			r.logger.Debugf("Reward cycle %d has no finalize height yet", cycle)
			return &Info{Cycle: cycle, Status: StatusSelectedUnknown}, nil
		}
		return nil, err
	}
	set, err := r.dataAccess.GetApproverSet(finalizeHeight)
	if err != nil {
		if errors.Is(err, db.ErrDataNotFound) {
			r.logger.Debugf("Reward cycle %d table at height %d is not stored yet", cycle, finalizeHeight)
			return &Info{Cycle: cycle, Status: StatusSelectedUnknown}, nil
		}
		return nil, err
	}
	if err := set.Validate(); err != nil {
		return nil, fmt.Errorf("approver table for cycle %d is invalid: %w", cycle, err)
	}
	info := &Info{Cycle: cycle, Status: StatusSelectedKnown, Set: set}
	r.known[cycle] = info
	r.logger.Infof("Resolved reward cycle %d with %d approvers and total weight %d", cycle, len(set.Approvers), set.TotalWeight())
	return info, nil
}
