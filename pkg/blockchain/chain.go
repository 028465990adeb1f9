package blockchain

import (
	"errors"
	"fmt"
	"sync"

	"github.com/EmberHQ/ember-engine/pkg/codec"
	"github.com/EmberHQ/ember-engine/pkg/collection/bytes"
	"github.com/EmberHQ/ember-engine/pkg/db"
)

// ChainConfig is for config value of chain.
type ChainConfig struct {
	ChainID codec.Hex
}

// Chain holds the canonical view of the fast chain. The tip is cached and
// only replaced through AdvanceTip, which persists the header and the tip
// pointer together. The coordinator event loop is the sole caller of
// AdvanceTip; the cache lock only protects readers on other goroutines.
type Chain struct {
	chainID codec.Hex
	// Dynamic values
	database   *db.DB
	dataAccess *DataAccess

	mu  sync.RWMutex
	tip *BlockHeader
}

// NewChain returns new chain with config.
func NewChain(cfg *ChainConfig) *Chain {
	return &Chain{
		chainID: cfg.ChainID,
	}
}

// Init the chain. The genesis header seeds the tip when no tip was
// persisted before.
func (c *Chain) Init(genesis *BlockHeader, database *db.DB) error {
	c.database = database
	c.dataAccess = NewDataAccess(database, c.chainID)
	tip, err := c.dataAccess.GetCanonicalTip()
	if err != nil {
		if !errors.Is(err, db.ErrDataNotFound) {
			return err
		}
		genesis.Init(c.chainID)
		if err := c.dataAccess.SaveBlockHeader(genesis); err != nil {
			return err
		}
		if err := c.dataAccess.SetCanonicalTip(genesis.ID); err != nil {
			return err
		}
		tip = genesis
	}
	c.mu.Lock()
	c.tip = tip
	c.mu.Unlock()
	return nil
}

// ChainID is getter for network identifier for the chain.
func (c *Chain) ChainID() []byte {
	return c.chainID
}

// DataAccess returns access to DB.
func (c *Chain) DataAccess() *DataAccess {
	return c.dataAccess
}

// CanonicalTip returns the cached tip header.
func (c *Chain) CanonicalTip() *BlockHeader {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tip
}

// AdvanceTip persists the header and replaces the canonical tip. The
// header must extend the current tip by exactly one.
func (c *Chain) AdvanceTip(header *BlockHeader) error {
	c.mu.RLock()
	tip := c.tip
	c.mu.RUnlock()
	if header.ChainLength != tip.ChainLength+1 {
		return fmt.Errorf("block at length %d does not extend tip at length %d", header.ChainLength, tip.ChainLength)
	}
	if !bytes.Equal(header.PreviousBlockID, tip.ID) {
		return fmt.Errorf("block %v does not reference tip %v", header.ID, tip.ID)
	}
	if err := c.dataAccess.SaveBlockHeader(header); err != nil {
		return err
	}
	if err := c.dataAccess.SetCanonicalTip(header.ID); err != nil {
		return err
	}
	c.mu.Lock()
	c.tip = header
	c.mu.Unlock()
	return nil
}
