package blockchain

import (
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/EmberHQ/ember-engine/pkg/codec"
	"github.com/EmberHQ/ember-engine/pkg/collection/bytes"
	"github.com/EmberHQ/ember-engine/pkg/db"
)

// DBPrefix is a type to define prefix for the data type.
type DBPrefix uint8

// DBPrefix for all the low level common data.
var (
	dbPrefixBlockIDToBlockHeader    DBPrefix = 3
	dbPrefixChainLengthToBlockID    DBPrefix = 4
	dbPrefixCanonicalTip            DBPrefix = 5
	dbPrefixStagedBlockHeader       DBPrefix = 6
	dbPrefixTenureEvent             DBPrefix = 7
	dbPrefixLastTenureEvent         DBPrefix = 8
	dbPrefixApproverSetByHeight     DBPrefix = 9
	dbPrefixCycleFinalizeHeight     DBPrefix = 10
	dbPrefixLastEvaluatedBurnHeight DBPrefix = 11
)

// DBPrefixToBytes converts prefix to slice.
func DBPrefixToBytes(prefix DBPrefix) []byte {
	return []byte{uint8(prefix)}
}

// DataAccess gives access to the persisted chain data.
type DataAccess struct {
	database *db.DB
	chainID  codec.Hex
}

// NewDataAccess returns new instance of data access.
func NewDataAccess(database *db.DB, chainID codec.Hex) *DataAccess {
	return &DataAccess{
		database: database,
		chainID:  chainID,
	}
}

// GetBlockHeader returns block header if data exists.
func (d *DataAccess) GetBlockHeader(id []byte) (*BlockHeader, error) {
	value, err := d.database.Get(bytes.Join(DBPrefixToBytes(dbPrefixBlockIDToBlockHeader), id))
	if err != nil {
		return nil, err
	}
	return NewBlockHeader(d.chainID, value)
}

// GetBlockHeaders returns every existing header for the ids. Missing ids
// are dropped from the result.
func (d *DataAccess) GetBlockHeaders(ids [][]byte) ([]*BlockHeader, error) {
	eg := new(errgroup.Group)
	headers := make([]*BlockHeader, len(ids))
	hasEmpty := false
	for i, id := range ids {
		i, id := i, id // https://golang.org/doc/faq#closures_and_goroutines
		eg.Go(func() error {
			header, err := d.GetBlockHeader(id)
			if err != nil {
				if !errors.Is(err, db.ErrDataNotFound) {
					return err
				}
				hasEmpty = true
				return nil
			}
			headers[i] = header
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if !hasEmpty {
		return headers, nil
	}
	nonNilHeaders := []*BlockHeader{}
	for _, h := range headers {
		if h != nil {
			nonNilHeaders = append(nonNilHeaders, h)
		}
	}
	return nonNilHeaders, nil
}

// GetBlockHeaderByChainLength returns block header at the chain length.
func (d *DataAccess) GetBlockHeaderByChainLength(chainLength uint64) (*BlockHeader, error) {
	id, err := d.database.Get(bytes.Join(DBPrefixToBytes(dbPrefixChainLengthToBlockID), bytes.FromUint64(chainLength)))
	if err != nil {
		return nil, err
	}
	return d.GetBlockHeader(id)
}

// SaveBlockHeader persists a header under both the id and chain length
// index in one batch.
func (d *DataAccess) SaveBlockHeader(header *BlockHeader) error {
	batch := d.database.NewBatch()
	encoded := header.MustEncode()
	if err := batch.Set(bytes.Join(DBPrefixToBytes(dbPrefixBlockIDToBlockHeader), header.ID), encoded); err != nil {
		return err
	}
	if err := batch.Set(bytes.Join(DBPrefixToBytes(dbPrefixChainLengthToBlockID), bytes.FromUint64(header.ChainLength)), header.ID); err != nil {
		return err
	}
	return d.database.Write(batch)
}

// GetCanonicalTip returns the current canonical tip header.
func (d *DataAccess) GetCanonicalTip() (*BlockHeader, error) {
	id, err := d.database.Get(DBPrefixToBytes(dbPrefixCanonicalTip))
	if err != nil {
		return nil, err
	}
	return d.GetBlockHeader(id)
}

// SetCanonicalTip moves the tip pointer to the block id.
func (d *DataAccess) SetCanonicalTip(id []byte) error {
	return d.database.Set(DBPrefixToBytes(dbPrefixCanonicalTip), id)
}

// StageBlockHeader stores a header awaiting authentication, keyed by chain
// length then id so the next ready block is cheap to find.
func (d *DataAccess) StageBlockHeader(header *BlockHeader) error {
	key := bytes.Join(DBPrefixToBytes(dbPrefixStagedBlockHeader), bytes.FromUint64(header.ChainLength), header.ID)
	return d.database.Set(key, header.MustEncode())
}

// GetStagedBlockHeaders returns every staged header at the chain length.
func (d *DataAccess) GetStagedBlockHeaders(chainLength uint64) ([]*BlockHeader, error) {
	prefix := bytes.Join(DBPrefixToBytes(dbPrefixStagedBlockHeader), bytes.FromUint64(chainLength))
	kvs, err := d.database.Iterate(prefix, -1, false)
	if err != nil {
		return nil, err
	}
	headers := make([]*BlockHeader, 0, len(kvs))
	for _, kv := range kvs {
		header, err := NewBlockHeader(d.chainID, kv.Value())
		if err != nil {
			return nil, err
		}
		headers = append(headers, header)
	}
	return headers, nil
}

// RemoveStagedBlockHeader deletes one staged header.
func (d *DataAccess) RemoveStagedBlockHeader(chainLength uint64, id []byte) error {
	key := bytes.Join(DBPrefixToBytes(dbPrefixStagedBlockHeader), bytes.FromUint64(chainLength), id)
	return d.database.Del(key)
}

// AppendTenureEvent persists an accepted tenure change and moves the last
// tenure pointer in one batch.
func (d *DataAccess) AppendTenureEvent(event *TenureEvent) error {
	batch := d.database.NewBatch()
	encoded := event.MustEncode()
	key := bytes.Join(DBPrefixToBytes(dbPrefixTenureEvent), bytes.FromUint64(event.BurnHeight), event.TenureID)
	if err := batch.Set(key, encoded); err != nil {
		return err
	}
	if err := batch.Set(DBPrefixToBytes(dbPrefixLastTenureEvent), encoded); err != nil {
		return err
	}
	return d.database.Write(batch)
}

// GetLastTenureEvent returns the most recently accepted tenure event.
func (d *DataAccess) GetLastTenureEvent() (*TenureEvent, error) {
	value, err := d.database.Get(DBPrefixToBytes(dbPrefixLastTenureEvent))
	if err != nil {
		return nil, err
	}
	event := &TenureEvent{}
	if err := event.DecodeStrict(value); err != nil {
		return nil, err
	}
	return event, nil
}

// GetTenureEvent returns the tenure event accepted at the burn height for
// the tenure id.
func (d *DataAccess) GetTenureEvent(burnHeight uint64, tenureID []byte) (*TenureEvent, error) {
	value, err := d.database.Get(bytes.Join(DBPrefixToBytes(dbPrefixTenureEvent), bytes.FromUint64(burnHeight), tenureID))
	if err != nil {
		return nil, err
	}
	event := &TenureEvent{}
	if err := event.DecodeStrict(value); err != nil {
		return nil, err
	}
	return event, nil
}

// GetApproverSet returns the approver table finalized at the burn height.
func (d *DataAccess) GetApproverSet(finalizeHeight uint64) (*ApproverSet, error) {
	value, err := d.database.Get(bytes.Join(DBPrefixToBytes(dbPrefixApproverSetByHeight), bytes.FromUint64(finalizeHeight)))
	if err != nil {
		return nil, err
	}
	set := &ApproverSet{}
	if err := set.DecodeStrict(value); err != nil {
		return nil, err
	}
	return set, nil
}

// SaveApproverSet persists a finalized approver table at the burn height.
func (d *DataAccess) SaveApproverSet(finalizeHeight uint64, set *ApproverSet) error {
	return d.database.Set(bytes.Join(DBPrefixToBytes(dbPrefixApproverSetByHeight), bytes.FromUint64(finalizeHeight)), set.MustEncode())
}

// GetCycleFinalizeHeight resolves the indirection from a reward cycle to
// the burn height where its approver table was finalized. Absence of the
// record is reported as db.ErrDataNotFound.
func (d *DataAccess) GetCycleFinalizeHeight(cycle uint64) (uint64, error) {
	value, err := d.database.Get(bytes.Join(DBPrefixToBytes(dbPrefixCycleFinalizeHeight), bytes.FromUint64(cycle)))
	if err != nil {
		return 0, err
	}
	return bytes.ToUint64(value), nil
}

// SaveCycleFinalizeHeight records the cycle to finalize height indirection.
func (d *DataAccess) SaveCycleFinalizeHeight(cycle, finalizeHeight uint64) error {
	return d.database.Set(bytes.Join(DBPrefixToBytes(dbPrefixCycleFinalizeHeight), bytes.FromUint64(cycle)), bytes.FromUint64(finalizeHeight))
}

// GetLastEvaluatedBurnHeight returns the highest burn height whose
// sortition has been evaluated, or zero when none has.
func (d *DataAccess) GetLastEvaluatedBurnHeight() (uint64, error) {
	value, err := d.database.Get(DBPrefixToBytes(dbPrefixLastEvaluatedBurnHeight))
	if err != nil {
		if errors.Is(err, db.ErrDataNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return bytes.ToUint64(value), nil
}

// SetLastEvaluatedBurnHeight records burn evaluation progress.
func (d *DataAccess) SetLastEvaluatedBurnHeight(height uint64) error {
	return d.database.Set(DBPrefixToBytes(dbPrefixLastEvaluatedBurnHeight), bytes.FromUint64(height))
}
