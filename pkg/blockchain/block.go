package blockchain

import (
	"errors"
	"fmt"

	"github.com/EmberHQ/ember-engine/pkg/codec"
	"github.com/EmberHQ/ember-engine/pkg/collection/bytes"
	"github.com/EmberHQ/ember-engine/pkg/crypto"
)

const (
	IDLength            = 32
	ConsensusHashLength = 32

	// VersionShadowFlag marks a header synthesized by the out-of-band
	// recovery procedure. Shadow headers skip signature authentication but
	// no other consensus rule.
	VersionShadowFlag uint32 = 0x80000000
)

// BlockHeader is a fast block header produced within a tenure.
//
// Two signing domains cover the header. The producer domain covers every
// field except both signature fields. The approver domain additionally
// covers the producer signature, binding each approval to one specific
// producer commitment so that a signature cannot be moved onto a different
// producer's header. The block ID equals the approver domain hash: identity
// depends on the producer commitment but not on which approvers eventually
// sign.
type BlockHeader struct {
	ID                 codec.Hex   `json:"id"`
	Version            uint32      `json:"version" fieldNumber:"1"`
	Timestamp          uint32      `json:"timestamp" fieldNumber:"2"`
	ChainLength        uint64      `json:"chainLength,string" fieldNumber:"3"`
	BurnSpent          uint64      `json:"burnSpent,string" fieldNumber:"4"`
	ConsensusHash      codec.Hex   `json:"consensusHash" fieldNumber:"5"`
	PreviousBlockID    codec.Hex   `json:"previousBlockID" fieldNumber:"6"`
	TransactionRoot    codec.Hex   `json:"transactionRoot" fieldNumber:"7"`
	StateRoot          codec.Hex   `json:"stateRoot" fieldNumber:"8"`
	ProducerSignature  codec.Hex   `json:"producerSignature" fieldNumber:"9"`
	ApproverSignatures []codec.Hex `json:"approverSignatures" fieldNumber:"10"`
	ApproverBitfield   codec.Hex   `json:"approverBitfield" fieldNumber:"11"`
}

// NewBlockHeader creates a block header instance from encoded value.
func NewBlockHeader(chainID, value []byte) (*BlockHeader, error) {
	header := &BlockHeader{}
	if err := header.DecodeStrict(value); err != nil {
		return nil, err
	}
	header.Init(chainID)
	return header, nil
}

// Init computes the block ID. It must be called if the header was decoded
// directly without NewBlockHeader.
func (b *BlockHeader) Init(chainID []byte) {
	b.ID = b.ApproverSigningHash(chainID)
}

// IsShadow returns true if the header carries the shadow version flag.
func (b *BlockHeader) IsShadow() bool {
	return b.Version&VersionShadowFlag != 0
}

// TenureID is the consensus hash of the sortition the block was produced
// under.
func (b *BlockHeader) TenureID() codec.Hex {
	return b.ConsensusHash
}

func (b *BlockHeader) producerSigningHeader() *producerSigningBlockHeader {
	return &producerSigningBlockHeader{
		Version:         b.Version,
		Timestamp:       b.Timestamp,
		ChainLength:     b.ChainLength,
		BurnSpent:       b.BurnSpent,
		ConsensusHash:   b.ConsensusHash,
		PreviousBlockID: b.PreviousBlockID,
		TransactionRoot: b.TransactionRoot,
		StateRoot:       b.StateRoot,
	}
}

func (b *BlockHeader) approverSigningHeader() *approverSigningBlockHeader {
	return &approverSigningBlockHeader{
		Version:           b.Version,
		Timestamp:         b.Timestamp,
		ChainLength:       b.ChainLength,
		BurnSpent:         b.BurnSpent,
		ConsensusHash:     b.ConsensusHash,
		PreviousBlockID:   b.PreviousBlockID,
		TransactionRoot:   b.TransactionRoot,
		StateRoot:         b.StateRoot,
		ProducerSignature: b.ProducerSignature,
	}
}

// ProducerSigningBytes returns the producer domain part of the header.
func (b *BlockHeader) ProducerSigningBytes() []byte {
	return b.producerSigningHeader().MustEncode()
}

// ApproverSigningBytes returns the approver domain part of the header.
func (b *BlockHeader) ApproverSigningBytes() []byte {
	return b.approverSigningHeader().MustEncode()
}

// ProducerSigningHash returns the digest the producer signs.
func (b *BlockHeader) ProducerSigningHash(chainID []byte) []byte {
	message := bytes.Join(TagBlockProducer, chainID, b.ProducerSigningBytes())
	return crypto.Hash(message)
}

// ApproverSigningHash returns the digest every approver signs. It is also
// the block ID.
func (b *BlockHeader) ApproverSigningHash(chainID []byte) []byte {
	message := bytes.Join(TagBlockApprover, chainID, b.ApproverSigningBytes())
	return crypto.Hash(message)
}

// SignProducer signs the producer domain and recomputes the ID.
func (b *BlockHeader) SignProducer(chainID, privateKey []byte) error {
	signature, err := crypto.Sign(privateKey, b.ProducerSigningHash(chainID))
	if err != nil {
		return err
	}
	b.ProducerSignature = signature
	b.Init(chainID)
	return nil
}

// Validate block header property.
func (b *BlockHeader) Validate() error {
	if len(b.ConsensusHash) != ConsensusHashLength {
		return fmt.Errorf("consensus hash must be %d bytes but received %v", ConsensusHashLength, b.ConsensusHash)
	}
	if len(b.PreviousBlockID) != IDLength {
		return fmt.Errorf("previous block id must be %d bytes but received %v", IDLength, b.PreviousBlockID)
	}
	if b.IsShadow() {
		if len(b.ProducerSignature) != 0 {
			return errors.New("shadow block producer signature must be empty")
		}
		if len(b.ApproverSignatures) != 0 {
			return errors.New("shadow block approver signatures must be empty")
		}
		return nil
	}
	if len(b.ProducerSignature) != crypto.SignatureLength {
		return errors.New("block producer signature must not be empty")
	}
	for i, signature := range b.ApproverSignatures {
		if len(signature) != crypto.SignatureLength {
			return fmt.Errorf("approver signature at %d must be %d bytes", i, crypto.SignatureLength)
		}
	}
	return nil
}

// producerSigningBlockHeader holds the producer domain of a block header.
type producerSigningBlockHeader struct {
	Version         uint32    `fieldNumber:"1"`
	Timestamp       uint32    `fieldNumber:"2"`
	ChainLength     uint64    `fieldNumber:"3"`
	BurnSpent       uint64    `fieldNumber:"4"`
	ConsensusHash   codec.Hex `fieldNumber:"5"`
	PreviousBlockID codec.Hex `fieldNumber:"6"`
	TransactionRoot codec.Hex `fieldNumber:"7"`
	StateRoot       codec.Hex `fieldNumber:"8"`
}

// approverSigningBlockHeader holds the approver domain of a block header,
// which includes the producer signature.
type approverSigningBlockHeader struct {
	Version           uint32    `fieldNumber:"1"`
	Timestamp         uint32    `fieldNumber:"2"`
	ChainLength       uint64    `fieldNumber:"3"`
	BurnSpent         uint64    `fieldNumber:"4"`
	ConsensusHash     codec.Hex `fieldNumber:"5"`
	PreviousBlockID   codec.Hex `fieldNumber:"6"`
	TransactionRoot   codec.Hex `fieldNumber:"7"`
	StateRoot         codec.Hex `fieldNumber:"8"`
	ProducerSignature codec.Hex `fieldNumber:"9"`
}
