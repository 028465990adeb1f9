// Package tenure tracks the sequence of producer tenures announced on the
// burn chain and validates tenure change payloads against the locally
// observed sortition history.
package tenure

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/EmberHQ/ember-engine/pkg/blockchain"
	"github.com/EmberHQ/ember-engine/pkg/codec"
	"github.com/EmberHQ/ember-engine/pkg/db"
	"github.com/EmberHQ/ember-engine/pkg/log"
)

var (
	// ErrTenureMismatch rejects one block whose tenure change does not
	// link to the tracker's view. The chain itself continues.
	ErrTenureMismatch = errors.New("tenure change does not match tracked tenure")
	// ErrUnknownCause rejects a tenure change outside the closed cause set.
	ErrUnknownCause = errors.New("unknown tenure change cause")
)

// DefaultMissedSortitionTolerance bounds how many winnerless sortitions may
// separate a tenure change's burn view from the last accepted tenure.
const DefaultMissedSortitionTolerance = 6

// Config for the tracker.
type Config struct {
	// MissedSortitionTolerance overrides the default when non-zero.
	MissedSortitionTolerance uint32
}

// Tracker validates tenure changes and records accepted ones.
type Tracker struct {
	logger     log.Logger
	dataAccess *blockchain.DataAccess
	tolerance  uint32

	// Observed sortitions in burn height order.
	sortitions []*blockchain.Sortition
	lastTenure *blockchain.TenureEvent
}

// NewTracker creates a tracker and loads the last accepted tenure.
func NewTracker(logger log.Logger, dataAccess *blockchain.DataAccess, cfg *Config) (*Tracker, error) {
	tolerance := uint32(DefaultMissedSortitionTolerance)
	if cfg != nil && cfg.MissedSortitionTolerance != 0 {
		tolerance = cfg.MissedSortitionTolerance
	}
	tracker := &Tracker{
		logger:     logger,
		dataAccess: dataAccess,
		tolerance:  tolerance,
	}
	last, err := dataAccess.GetLastTenureEvent()
	if err != nil {
		if !errors.Is(err, db.ErrDataNotFound) {
			return nil, err
		}
	} else {
		tracker.lastTenure = last
	}
	return tracker, nil
}

// Observe records a sortition outcome. Sortitions must arrive in burn
// height order; a duplicate height is ignored.
func (t *Tracker) Observe(sortition *blockchain.Sortition) {
	if len(t.sortitions) > 0 {
		last := t.sortitions[len(t.sortitions)-1]
		if sortition.BurnHeight <= last.BurnHeight {
			return
		}
	}
	t.sortitions = append(t.sortitions, sortition)
	t.logger.Debugf("Observed sortition at burn height %d winner=%t", sortition.BurnHeight, sortition.HasWinner)
}

// Observed returns the sortition with the consensus hash, if seen.
func (t *Tracker) Observed(consensusHash []byte) (*blockchain.Sortition, bool) {
	for _, sortition := range t.sortitions {
		if bytes.Equal(sortition.ConsensusHash, consensusHash) {
			return sortition, true
		}
	}
	return nil, false
}

// AuthorizedProducer returns the public key of the sortition winner for the
// tenure id.
func (t *Tracker) AuthorizedProducer(tenureID []byte) (codec.Hex, error) {
	sortition, ok := t.Observed(tenureID)
	if !ok {
		return nil, fmt.Errorf("%w: no sortition observed for tenure %s", ErrTenureMismatch, codec.Hex(tenureID))
	}
	if !sortition.HasWinner {
		return nil, fmt.Errorf("%w: sortition for tenure %s has no winner", ErrTenureMismatch, codec.Hex(tenureID))
	}
	return sortition.ProducerPublicKey, nil
}

// LastTenure returns the most recently accepted tenure event, or nil before
// the first tenure.
func (t *Tracker) LastTenure() *blockchain.TenureEvent {
	return t.lastTenure
}

// CoinbaseHeight derives the coinbase height a cause would produce.
// Only a new tenure raises it; every extension keeps the current value.
func (t *Tracker) CoinbaseHeight(cause blockchain.TenureCause) uint64 {
	current := uint64(0)
	if t.lastTenure != nil {
		current = t.lastTenure.CoinbaseHeight
	}
	if cause.NewTenure() {
		return current + 1
	}
	return current
}

// Validate checks a tenure change against the tracked state. It verifies
// the cause, the previous tenure linkage and that the burn view names an
// observed sortition no further than the missed sortition tolerance from
// the last accepted tenure.
func (t *Tracker) Validate(change *blockchain.TenureChange) error {
	cause := blockchain.TenureCause(change.Cause)
	if !cause.Valid() {
		return fmt.Errorf("%w: cause %d", ErrUnknownCause, change.Cause)
	}
	if t.lastTenure != nil {
		if !bytes.Equal(change.PrevTenureID, t.lastTenure.TenureID) {
			return fmt.Errorf("%w: previous tenure %s does not match last accepted %s",
				ErrTenureMismatch, change.PrevTenureID, t.lastTenure.TenureID)
		}
	}
	if !cause.NewTenure() {
		// Extensions stay within the current tenure and burn view.
		if t.lastTenure != nil && !bytes.Equal(change.TenureID, t.lastTenure.TenureID) {
			return fmt.Errorf("%w: extension names tenure %s but current is %s",
				ErrTenureMismatch, change.TenureID, t.lastTenure.TenureID)
		}
		return nil
	}
	burnView, ok := t.Observed(change.BurnViewHash)
	if !ok {
		return fmt.Errorf("%w: burn view %s was never observed", ErrTenureMismatch, change.BurnViewHash)
	}
	if missed := t.missedSince(burnView); missed > t.tolerance {
		return fmt.Errorf("%w: %d winnerless sortitions since last tenure exceeds tolerance %d",
			ErrTenureMismatch, missed, t.tolerance)
	}
	return nil
}

// missedSince counts winnerless sortitions after the last accepted tenure's
// burn view up to and excluding the given burn view.
func (t *Tracker) missedSince(burnView *blockchain.Sortition) uint32 {
	var lowerHeight uint64
	if t.lastTenure != nil {
		if last, ok := t.Observed(t.lastTenure.BurnViewHash); ok {
			lowerHeight = last.BurnHeight
		}
	}
	missed := uint32(0)
	for _, sortition := range t.sortitions {
		if sortition.BurnHeight <= lowerHeight || sortition.BurnHeight >= burnView.BurnHeight {
			continue
		}
		if !sortition.HasWinner {
			missed++
		}
	}
	return missed
}

// Apply records an accepted tenure change observed at the burn height. The
// caller must have validated the change first.
func (t *Tracker) Apply(change *blockchain.TenureChange, burnHeight uint64) (*blockchain.TenureEvent, error) {
	cause := blockchain.TenureCause(change.Cause)
	if !cause.Valid() {
		return nil, fmt.Errorf("%w: cause %d", ErrUnknownCause, change.Cause)
	}
	event := &blockchain.TenureEvent{
		TenureID:         change.TenureID,
		PrevTenureID:     change.PrevTenureID,
		BurnViewHash:     change.BurnViewHash,
		Cause:            change.Cause,
		CoinbaseHeight:   t.CoinbaseHeight(cause),
		PrevTenureBlocks: change.PrevTenureBlocks,
		BurnHeight:       burnHeight,
	}
	if err := t.dataAccess.AppendTenureEvent(event); err != nil {
		return nil, err
	}
	t.lastTenure = event
	t.logger.Infof("Accepted tenure change cause=%s tenure=%s coinbaseHeight=%d", cause, event.TenureID, event.CoinbaseHeight)
	return event, nil
}
