package blockchain

import (
	"fmt"

	"github.com/EmberHQ/ember-engine/pkg/codec"
)

// TenureCause classifies why a tenure change was issued. The set is closed;
// any other value is rejected at validation time.
type TenureCause uint32

const (
	// CauseBlockFound starts a new tenure for a fresh sortition winner.
	CauseBlockFound TenureCause = 0
	// CauseExtended extends the current tenure and resets every budget
	// dimension.
	CauseExtended TenureCause = 1
	// Single dimension extensions reset one execution budget only.
	CauseExtendedRuntime     TenureCause = 2
	CauseExtendedReadCount   TenureCause = 3
	CauseExtendedReadLength  TenureCause = 4
	CauseExtendedWriteCount  TenureCause = 5
	CauseExtendedWriteLength TenureCause = 6
)

// BudgetDimension is one of the per-tenure execution budgets.
type BudgetDimension uint32

const (
	DimensionRuntime BudgetDimension = iota
	DimensionReadCount
	DimensionReadLength
	DimensionWriteCount
	DimensionWriteLength
)

var allDimensions = []BudgetDimension{
	DimensionRuntime,
	DimensionReadCount,
	DimensionReadLength,
	DimensionWriteCount,
	DimensionWriteLength,
}

var causeDimensions = map[TenureCause][]BudgetDimension{
	CauseBlockFound:          allDimensions,
	CauseExtended:            allDimensions,
	CauseExtendedRuntime:     {DimensionRuntime},
	CauseExtendedReadCount:   {DimensionReadCount},
	CauseExtendedReadLength:  {DimensionReadLength},
	CauseExtendedWriteCount:  {DimensionWriteCount},
	CauseExtendedWriteLength: {DimensionWriteLength},
}

// Valid returns true if the cause belongs to the closed set.
func (c TenureCause) Valid() bool {
	_, ok := causeDimensions[c]
	return ok
}

// NewTenure returns true if the cause starts a new tenure rather than
// extending the current one.
func (c TenureCause) NewTenure() bool {
	return c == CauseBlockFound
}

// ResetDimensions returns the budget dimensions the cause resets.
func (c TenureCause) ResetDimensions() ([]BudgetDimension, error) {
	dims, ok := causeDimensions[c]
	if !ok {
		return nil, fmt.Errorf("unknown tenure cause %d", uint32(c))
	}
	return dims, nil
}

func (c TenureCause) String() string {
	switch c {
	case CauseBlockFound:
		return "blockFound"
	case CauseExtended:
		return "extended"
	case CauseExtendedRuntime:
		return "extendedRuntime"
	case CauseExtendedReadCount:
		return "extendedReadCount"
	case CauseExtendedReadLength:
		return "extendedReadLength"
	case CauseExtendedWriteCount:
		return "extendedWriteCount"
	case CauseExtendedWriteLength:
		return "extendedWriteLength"
	default:
		return fmt.Sprintf("unknown(%d)", uint32(c))
	}
}

// TenureChange is the burn chain payload announcing a tenure start or
// extension.
type TenureChange struct {
	TenureID         codec.Hex `json:"tenureID" fieldNumber:"1"`
	PrevTenureID     codec.Hex `json:"prevTenureID" fieldNumber:"2"`
	BurnViewHash     codec.Hex `json:"burnViewHash" fieldNumber:"3"`
	Cause            uint32    `json:"cause" fieldNumber:"4"`
	PrevTenureBlocks uint32    `json:"prevTenureBlocks" fieldNumber:"5"`
}

// Validate checks structural properties of the payload.
func (t *TenureChange) Validate() error {
	if len(t.TenureID) != ConsensusHashLength {
		return fmt.Errorf("tenure id must be %d bytes but received %v", ConsensusHashLength, t.TenureID)
	}
	if len(t.PrevTenureID) != ConsensusHashLength {
		return fmt.Errorf("previous tenure id must be %d bytes but received %v", ConsensusHashLength, t.PrevTenureID)
	}
	if len(t.BurnViewHash) != ConsensusHashLength {
		return fmt.Errorf("burn view hash must be %d bytes but received %v", ConsensusHashLength, t.BurnViewHash)
	}
	if !TenureCause(t.Cause).Valid() {
		return fmt.Errorf("unknown tenure cause %d", t.Cause)
	}
	return nil
}

// TenureEvent is the persisted record of an accepted tenure change.
type TenureEvent struct {
	TenureID         codec.Hex `json:"tenureID" fieldNumber:"1"`
	PrevTenureID     codec.Hex `json:"prevTenureID" fieldNumber:"2"`
	BurnViewHash     codec.Hex `json:"burnViewHash" fieldNumber:"3"`
	Cause            uint32    `json:"cause" fieldNumber:"4"`
	CoinbaseHeight   uint64    `json:"coinbaseHeight,string" fieldNumber:"5"`
	PrevTenureBlocks uint32    `json:"prevTenureBlocks" fieldNumber:"6"`
	BurnHeight       uint64    `json:"burnHeight,string" fieldNumber:"7"`
}
