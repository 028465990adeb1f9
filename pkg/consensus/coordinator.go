// Package consensus coordinates burn chain evaluation and fast block
// admission around a single canonical tip.
package consensus

import (
	"context"
	"errors"
	"fmt"

	"github.com/EmberHQ/ember-engine/pkg/blockchain"
	"github.com/EmberHQ/ember-engine/pkg/codec"
	"github.com/EmberHQ/ember-engine/pkg/collection/bytes"
	"github.com/EmberHQ/ember-engine/pkg/consensus/approval"
	"github.com/EmberHQ/ember-engine/pkg/consensus/rewardset"
	"github.com/EmberHQ/ember-engine/pkg/consensus/tenure"
	"github.com/EmberHQ/ember-engine/pkg/crypto"
	"github.com/EmberHQ/ember-engine/pkg/db"
	"github.com/EmberHQ/ember-engine/pkg/event"
	"github.com/EmberHQ/ember-engine/pkg/log"
)

const (
	reasonBurnEvaluation = "burnEvaluation"
	reasonBlockApply     = "blockApply"
)

// BurnIndexer is the read only view of the burn chain the coordinator
// consumes. The indexer guarantees strict height ordering; the coordinator
// tolerates duplicate or reordered deliveries within one height.
type BurnIndexer interface {
	TipHeight() (uint64, error)
	SortitionAt(height uint64) (*blockchain.Sortition, error)
	TenureChangesAt(height uint64) ([]*blockchain.TenureChange, error)
	BlockCommit(tenureID []byte) (*blockchain.BlockCommit, error)
}

// dispatchPhase selects which block styles the coordinator admits.
type dispatchPhase int

const (
	// phasePre runs only the legacy handler.
	phasePre dispatchPhase = iota
	// phaseTransition runs both handlers so in flight legacy blocks drain
	// while weighted blocks are admitted.
	phaseTransition
	// phasePost runs only the weighted handler.
	phasePost
)

// CoordinatorConfig holds config for the coordinator.
type CoordinatorConfig struct {
	CTX                      context.Context
	Chain                    *blockchain.Chain
	Indexer                  BurnIndexer
	RewardCycleLength        uint64
	FirstWeightedCycle       uint64
	MissedSortitionTolerance uint32
}

// Coordinator is the single writer of the canonical tip. All mutation is
// serialized through its event loop.
type Coordinator struct {
	chain              *blockchain.Chain
	indexer            BurnIndexer
	rewardCycleLength  uint64
	firstWeightedCycle uint64
	tolerance          uint32
	// Dynamic values
	ctx      context.Context
	database *db.DB
	logger   log.Logger

	tracker       *tenure.Tracker
	resolver      *rewardset.Resolver
	authenticator *approval.Authenticator
	miningBlocker *MiningBlocker
	events        *event.EventEmitter

	// enteredWeighted latches once the canonical tip itself is a weighted
	// approver block. It never reverts.
	enteredWeighted bool

	burnCh  chan struct{}
	chainCh chan *blockchain.BlockHeader
	closeCh chan bool
}

// NewCoordinator creates the coordinator.
func NewCoordinator(config *CoordinatorConfig) *Coordinator {
	return &Coordinator{
		chain:              config.Chain,
		indexer:            config.Indexer,
		rewardCycleLength:  config.RewardCycleLength,
		firstWeightedCycle: config.FirstWeightedCycle,
		tolerance:          config.MissedSortitionTolerance,
		ctx:                config.CTX,
		miningBlocker:      NewMiningBlocker(),
		events:             event.New(),
		burnCh:             make(chan struct{}, 1),
		chainCh:            make(chan *blockchain.BlockHeader, 200),
		closeCh:            make(chan bool),
	}
}

// CoordinatorInitParam is the dependency set for Init.
type CoordinatorInitParam struct {
	CTX      context.Context
	Logger   log.Logger
	Database *db.DB
	Genesis  *blockchain.BlockHeader
}

// Init the coordinator.
func (c *Coordinator) Init(param *CoordinatorInitParam) error {
	if param.CTX != nil {
		c.ctx = param.CTX
	}
	c.logger = param.Logger
	c.database = param.Database
	c.logger.Info("Initializing consensus coordinator")
	if err := c.chain.Init(param.Genesis, param.Database); err != nil {
		return err
	}
	dataAccess := c.chain.DataAccess()
	tracker, err := tenure.NewTracker(c.logger.With("module", "tenure"), dataAccess, &tenure.Config{
		MissedSortitionTolerance: c.tolerance,
	})
	if err != nil {
		return err
	}
	c.tracker = tracker
	c.resolver = rewardset.NewResolver(c.logger.With("module", "rewardset"), dataAccess, &rewardset.Config{
		FirstWeightedCycle: c.firstWeightedCycle,
	})
	c.authenticator = approval.NewAuthenticator(c.logger.With("module", "approval"), c.chain.ChainID())
	if c.chain.CanonicalTip().IsShadow() || len(c.chain.CanonicalTip().ApproverSignatures) > 0 {
		c.enteredWeighted = true
	}
	return nil
}

// Start runs the event loop until Stop or context cancellation. Events are
// consumed one at a time; verification always runs to completion once
// started.
func (c *Coordinator) Start() error {
	for {
		select {
		case <-c.closeCh:
			return nil
		case <-c.ctx.Done():
			return nil
		case <-c.burnCh:
			c.miningBlocker.Block(reasonBurnEvaluation)
			status, err := c.processBurnBlocks()
			c.miningBlocker.Unblock(reasonBurnEvaluation)
			if err != nil {
				c.logger.Errorf("Fail to process burn blocks with error %v", err)
				continue
			}
			if status == StatusApplied {
				// New tenures may unlock staged fast blocks.
				c.drainStagedBlocks()
			}
		case header := <-c.chainCh:
			if err := c.chain.DataAccess().StageBlockHeader(header); err != nil {
				c.logger.Errorf("Fail to stage block %s with error %v", header.ID, err)
				continue
			}
			c.drainStagedBlocks()
		}
	}
}

// Stop the coordinator.
func (c *Coordinator) Stop() error {
	c.events.Close()
	close(c.closeCh)
	return nil
}

// OnBurnBlock signals that the burn chain advanced. Duplicate signals
// collapse; evaluation progress is tracked persistently, so replaying a
// burn event is a no-op.
func (c *Coordinator) OnBurnBlock() {
	select {
	case c.burnCh <- struct{}{}:
	default:
	}
}

// OnChainBlock queues a fast block header for admission.
func (c *Coordinator) OnChainBlock(header *blockchain.BlockHeader) {
	select {
	case c.chainCh <- header:
	default:
		c.logger.Info("Process queue is full")
	}
}

// Subscribe to coordinator events.
func (c *Coordinator) Subscribe(topic string) <-chan interface{} {
	return c.events.Subscribe(topic)
}

// CanonicalTip returns the current canonical tip.
func (c *Coordinator) CanonicalTip() *blockchain.BlockHeader {
	return c.chain.CanonicalTip()
}

// MiningBlocked reports whether block production is currently suspended.
func (c *Coordinator) MiningBlocked() bool {
	return c.miningBlocker.Blocked()
}

// AuthorizedProducer returns the producer allowed to build blocks in the
// tenure.
func (c *Coordinator) AuthorizedProducer(tenureID []byte) (codec.Hex, error) {
	return c.tracker.AuthorizedProducer(tenureID)
}

// ProducerSigningHash exposes the producer domain digest for the header.
func (c *Coordinator) ProducerSigningHash(header *blockchain.BlockHeader) []byte {
	return header.ProducerSigningHash(c.chain.ChainID())
}

// ApproverSigningHash exposes the approver domain digest for the header.
func (c *Coordinator) ApproverSigningHash(header *blockchain.BlockHeader) []byte {
	return header.ApproverSigningHash(c.chain.ChainID())
}

// ApproverSet returns the resolved approver table for the cycle.
func (c *Coordinator) ApproverSet(cycle uint64) (*rewardset.Info, error) {
	return c.resolver.Resolve(cycle)
}

func (c *Coordinator) cycleOf(burnHeight uint64) uint64 {
	return burnHeight / c.rewardCycleLength
}

func (c *Coordinator) isCycleStart(burnHeight uint64) bool {
	return burnHeight%c.rewardCycleLength == 0
}

// phase derives the dispatch phase from the last evaluated burn height.
func (c *Coordinator) phase() (dispatchPhase, error) {
	height, err := c.chain.DataAccess().GetLastEvaluatedBurnHeight()
	if err != nil {
		return phasePre, err
	}
	cycle := c.cycleOf(height)
	switch {
	case cycle < c.firstWeightedCycle:
		return phasePre, nil
	case cycle == c.firstWeightedCycle:
		return phaseTransition, nil
	default:
		return phasePost, nil
	}
}

// processBurnBlocks walks every unevaluated burn height in order. A cycle
// start under the weighted regime must resolve before any sortition at or
// past it is evaluated; an unresolved table halts the walk with
// StatusWaiting so nothing is evaluated on a default.
func (c *Coordinator) processBurnBlocks() (Status, error) {
	dataAccess := c.chain.DataAccess()
	tipHeight, err := c.indexer.TipHeight()
	if err != nil {
		return StatusNoop, err
	}
	lastEvaluated, err := dataAccess.GetLastEvaluatedBurnHeight()
	if err != nil {
		return StatusNoop, err
	}
	status := StatusNoop
	for height := lastEvaluated + 1; height <= tipHeight; height++ {
		cycle := c.cycleOf(height)
		if c.isCycleStart(height) && c.resolver.Weighted(cycle) {
			info, err := c.resolver.Resolve(cycle)
			if err != nil {
				return status, err
			}
			if info.Status == rewardset.StatusSelectedUnknown {
				c.logger.Infof("Waiting for approver table of reward cycle %d before burn height %d", cycle, height)
				c.events.Publish(EventBurnAdvanced, &EventBurnAdvancedMessage{
					Height:  height,
					Waiting: true,
					Cycle:   cycle,
				})
				return StatusWaiting, nil
			}
		}
		sortition, err := c.indexer.SortitionAt(height)
		if err != nil {
			return status, err
		}
		c.tracker.Observe(sortition)
		changes, err := c.indexer.TenureChangesAt(height)
		if err != nil {
			return status, err
		}
		for _, change := range changes {
			if err := c.applyTenureChange(change, height); err != nil {
				c.logger.Errorf("Rejecting tenure change at burn height %d with error %v", height, err)
			}
		}
		if err := dataAccess.SetLastEvaluatedBurnHeight(height); err != nil {
			return status, err
		}
		status = StatusApplied
		c.events.Publish(EventBurnAdvanced, &EventBurnAdvancedMessage{
			Height: height,
			Cycle:  cycle,
		})
	}
	return status, nil
}

func (c *Coordinator) applyTenureChange(change *blockchain.TenureChange, burnHeight uint64) error {
	if err := change.Validate(); err != nil {
		return err
	}
	// Duplicate deliveries within one burn height are tolerated.
	if _, err := c.chain.DataAccess().GetTenureEvent(burnHeight, change.TenureID); err == nil {
		return nil
	} else if !errors.Is(err, db.ErrDataNotFound) {
		return err
	}
	if err := c.tracker.Validate(change); err != nil {
		return err
	}
	applied, err := c.tracker.Apply(change, burnHeight)
	if err != nil {
		return err
	}
	c.events.Publish(EventTenureChange, &EventTenureChangeMessage{Event: applied})
	return nil
}

// drainStagedBlocks repeatedly admits the next ready block and advances the
// tip until no staged block is ready. An individually invalid block is
// logged and dropped; the batch continues.
func (c *Coordinator) drainStagedBlocks() {
	c.miningBlocker.Block(reasonBlockApply)
	defer c.miningBlocker.Unblock(reasonBlockApply)
	dataAccess := c.chain.DataAccess()
	for {
		tip := c.chain.CanonicalTip()
		staged, err := dataAccess.GetStagedBlockHeaders(tip.ChainLength + 1)
		if err != nil {
			c.logger.Errorf("Fail to read staged blocks with error %v", err)
			return
		}
		if len(staged) == 0 {
			return
		}
		advanced := false
		for _, header := range staged {
			status, err := c.processBlock(header)
			if err != nil {
				c.logger.Errorf("Rejecting block %s with error %v", header.ID, err)
				c.events.Publish(EventBlockRejected, &EventBlockRejectedMessage{Header: header, Err: err})
				if removeErr := dataAccess.RemoveStagedBlockHeader(header.ChainLength, header.ID); removeErr != nil {
					c.logger.Errorf("Fail to remove staged block %s with error %v", header.ID, removeErr)
				}
				continue
			}
			switch status {
			case StatusApplied:
				if err := dataAccess.RemoveStagedBlockHeader(header.ChainLength, header.ID); err != nil {
					c.logger.Errorf("Fail to remove staged block %s with error %v", header.ID, err)
				}
				advanced = true
			case StatusWaiting:
				// Blocked on an unresolved approver table. Leave the
				// whole batch staged for a later pass.
				return
			case StatusPending:
				// Below threshold. Stays staged until superseded.
			}
			if advanced {
				break
			}
		}
		if !advanced {
			return
		}
		// The accepted block supersedes every other candidate at its
		// length, including pending ones.
		superseded, err := dataAccess.GetStagedBlockHeaders(tip.ChainLength + 1)
		if err != nil {
			c.logger.Errorf("Fail to read superseded blocks with error %v", err)
			return
		}
		for _, header := range superseded {
			if err := dataAccess.RemoveStagedBlockHeader(header.ChainLength, header.ID); err != nil {
				c.logger.Errorf("Fail to remove superseded block %s with error %v", header.ID, err)
			}
		}
	}
}

// processBlock authenticates and applies one staged block.
func (c *Coordinator) processBlock(header *blockchain.BlockHeader) (Status, error) {
	if err := header.Validate(); err != nil {
		return StatusNoop, fmt.Errorf("%w: %v", ErrInvalidBlock, err)
	}
	tip := c.chain.CanonicalTip()
	if header.ChainLength != tip.ChainLength+1 || !bytes.Equal(header.PreviousBlockID, tip.ID) {
		return StatusNoop, fmt.Errorf("%w: block does not extend the canonical tip", ErrInvalidBlock)
	}
	lastTenure := c.tracker.LastTenure()
	if lastTenure == nil || !bytes.Equal(header.TenureID(), lastTenure.TenureID) {
		return StatusNoop, fmt.Errorf("%w: block tenure %s is not the current tenure", tenure.ErrTenureMismatch, header.TenureID())
	}
	phase, err := c.phase()
	if err != nil {
		return StatusNoop, err
	}
	weightedStyle := header.IsShadow() || len(header.ApproverSignatures) > 0
	switch phase {
	case phasePre:
		if weightedStyle {
			return StatusNoop, fmt.Errorf("%w: weighted block before activation", ErrWrongRegime)
		}
		return c.processLegacyBlock(header)
	case phaseTransition:
		if weightedStyle {
			return c.processWeightedBlock(header)
		}
		if c.enteredWeighted {
			return StatusNoop, fmt.Errorf("%w: legacy block after weighted tip", ErrWrongRegime)
		}
		return c.processLegacyBlock(header)
	default:
		if !weightedStyle {
			return StatusNoop, fmt.Errorf("%w: legacy block after activation", ErrWrongRegime)
		}
		return c.processWeightedBlock(header)
	}
}

// processLegacyBlock admits a block under the pre weighted regime, which
// only requires a valid producer signature.
func (c *Coordinator) processLegacyBlock(header *blockchain.BlockHeader) (Status, error) {
	producer, err := c.tracker.AuthorizedProducer(header.TenureID())
	if err != nil {
		return StatusNoop, err
	}
	recovered, err := crypto.RecoverPublicKey(header.ProducerSignature, header.ProducerSigningHash(c.chain.ChainID()))
	if err != nil {
		return StatusNoop, fmt.Errorf("%w: %v", ErrInvalidBlock, err)
	}
	if !bytes.Equal(recovered, producer) {
		return StatusNoop, fmt.Errorf("%w: producer signature mismatch", ErrInvalidBlock)
	}
	if err := c.verifyBlockCommit(header); err != nil {
		return StatusNoop, err
	}
	return c.applyBlock(header, 0, false)
}

// processWeightedBlock admits a block under the weighted approver regime.
func (c *Coordinator) processWeightedBlock(header *blockchain.BlockHeader) (Status, error) {
	lastTenure := c.tracker.LastTenure()
	cycle := c.cycleOf(lastTenure.BurnHeight)
	info, err := c.resolver.Resolve(cycle)
	if err != nil {
		return StatusNoop, err
	}
	if info.Status != rewardset.StatusSelectedKnown {
		c.logger.Infof("Block %s waits for approver table of cycle %d", header.ID, cycle)
		return StatusWaiting, nil
	}
	var producer codec.Hex
	if !header.IsShadow() {
		producer, err = c.tracker.AuthorizedProducer(header.TenureID())
		if err != nil {
			return StatusNoop, err
		}
		if err := c.verifyBlockCommit(header); err != nil {
			return StatusNoop, err
		}
	}
	result, err := c.authenticator.Authenticate(header, producer, info.Set)
	if err != nil {
		return StatusNoop, err
	}
	if result.Pending {
		c.events.Publish(EventBlockPending, &EventBlockPendingMessage{Header: header, Weight: result.Weight})
		return StatusPending, nil
	}
	return c.applyBlock(header, result.Weight, true)
}

// verifyBlockCommit checks the header's burn spend against the winning
// commitment on the burn chain.
func (c *Coordinator) verifyBlockCommit(header *blockchain.BlockHeader) error {
	commit, err := c.indexer.BlockCommit(header.TenureID())
	if err != nil {
		return fmt.Errorf("%w: no block commit for tenure %s", ErrInvalidBlock, header.TenureID())
	}
	if commit.BurnSpent != header.BurnSpent {
		return fmt.Errorf("%w: burn spent %d does not match commit %d", ErrInvalidBlock, header.BurnSpent, commit.BurnSpent)
	}
	return nil
}

func (c *Coordinator) applyBlock(header *blockchain.BlockHeader, weight uint64, weighted bool) (Status, error) {
	if err := c.chain.AdvanceTip(header); err != nil {
		return StatusNoop, fmt.Errorf("%w: %v", ErrInvalidBlock, err)
	}
	if weighted && !c.enteredWeighted {
		c.enteredWeighted = true
		c.logger.Info("Canonical tip entered the weighted approver regime")
	}
	c.events.Publish(EventBlockNew, &EventBlockNewMessage{Header: header, Weight: weight})
	c.logger.Infof("Advanced canonical tip to %s at length %d", header.ID, header.ChainLength)
	return StatusApplied, nil
}
