// Package approval authenticates block headers against a producer and a
// weighted approver table.
package approval

import (
	"errors"
	"fmt"

	"github.com/EmberHQ/ember-engine/pkg/blockchain"
	"github.com/EmberHQ/ember-engine/pkg/codec"
	"github.com/EmberHQ/ember-engine/pkg/collection/bytes"
	"github.com/EmberHQ/ember-engine/pkg/crypto"
	"github.com/EmberHQ/ember-engine/pkg/log"
)

var (
	// ErrProducerMismatch rejects a header whose producer signature does
	// not recover to the tenure's authorized producer.
	ErrProducerMismatch = errors.New("producer signature does not match authorized producer")
	// ErrApproverOrdering rejects a header whose approver signatures are
	// not strictly increasing by table index. Treated as a malleability
	// signal, never as a soft failure.
	ErrApproverOrdering = errors.New("approver signatures out of order")
	// ErrUnknownApprover rejects a signature recovering to a key outside
	// the approver table.
	ErrUnknownApprover = errors.New("signature from unknown approver")
)

// Threshold returns the minimum accumulated weight for acceptance,
// ceil(totalWeight * 7 / 10).
func Threshold(totalWeight uint64) uint64 {
	return (totalWeight*7 + 9) / 10
}

// Result of authenticating one header.
type Result struct {
	// Accepted is true once accumulated weight reached the threshold.
	Accepted bool
	// Pending is true when every signature verified but the weight is
	// below the threshold. The header may be resubmitted with more
	// signatures later.
	Pending bool
	// Weight is the accumulated weight of the matched approvers.
	Weight uint64
	// Threshold the header had to reach.
	Threshold uint64
	// Participation marks the table index of every verified approver.
	// Empty for shadow headers which carry no signatures.
	Participation codec.Hex
}

// Authenticator verifies the two signing domains of a block header.
type Authenticator struct {
	logger  log.Logger
	chainID []byte
}

// NewAuthenticator creates an authenticator for the chain.
func NewAuthenticator(logger log.Logger, chainID []byte) *Authenticator {
	return &Authenticator{
		logger:  logger,
		chainID: chainID,
	}
}

// Authenticate verifies the producer signature and accumulates approver
// weight. A shadow header skips signature checks entirely and is granted
// the table's full weight. Ordering violations and unknown signers reject
// the header regardless of accumulated weight.
func (a *Authenticator) Authenticate(header *blockchain.BlockHeader, producerKey []byte, set *blockchain.ApproverSet) (*Result, error) {
	totalWeight := set.TotalWeight()
	threshold := Threshold(totalWeight)

	if header.IsShadow() {
		return &Result{
			Accepted:  true,
			Weight:    totalWeight,
			Threshold: threshold,
		}, nil
	}

	recovered, err := crypto.RecoverPublicKey(header.ProducerSignature, header.ProducerSigningHash(a.chainID))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProducerMismatch, err)
	}
	if !bytes.Equal(recovered, producerKey) {
		return nil, fmt.Errorf("%w: recovered %s expected %s",
			ErrProducerMismatch, codec.Hex(recovered), codec.Hex(producerKey))
	}

	approverHash := header.ApproverSigningHash(a.chainID)
	participation := bytes.NewBitField(len(set.Approvers))
	weight := uint64(0)
	lastIndex := -1
	for i, signature := range header.ApproverSignatures {
		signer, err := crypto.RecoverPublicKey(signature, approverHash)
		if err != nil {
			return nil, fmt.Errorf("approver signature at %d is invalid: %w", i, err)
		}
		index := set.IndexOf(signer)
		if index < 0 {
			return nil, fmt.Errorf("%w: signature at %d recovers to %s", ErrUnknownApprover, i, codec.Hex(signer))
		}
		if index <= lastIndex {
			a.logger.Warningf("Rejecting block %s: approver index %d at position %d does not increase past %d",
				header.ID, index, i, lastIndex)
			return nil, fmt.Errorf("%w: index %d at position %d", ErrApproverOrdering, index, i)
		}
		if len(header.ApproverBitfield) > 0 {
			if index/8 >= len(header.ApproverBitfield) || !bytes.IsBitSet(header.ApproverBitfield, index) {
				return nil, fmt.Errorf("%w: index %d is not marked in the bitfield", ErrApproverOrdering, index)
			}
		}
		bytes.SetBit(participation, index)
		lastIndex = index
		weight += set.WeightAt(index)
	}

	if weight < threshold {
		a.logger.Debugf("Block %s pending with weight %d of threshold %d", header.ID, weight, threshold)
		return &Result{
			Pending:       true,
			Weight:        weight,
			Threshold:     threshold,
			Participation: participation,
		}, nil
	}
	return &Result{
		Accepted:      true,
		Weight:        weight,
		Threshold:     threshold,
		Participation: participation,
	}, nil
}
