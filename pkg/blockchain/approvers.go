package blockchain

import (
	"bytes"
	"fmt"

	"github.com/EmberHQ/ember-engine/pkg/codec"
	"github.com/EmberHQ/ember-engine/pkg/crypto"
)

// ApproverEntry is one weighted signer in a reward cycle approver table.
type ApproverEntry struct {
	PublicKey codec.Hex `json:"publicKey" fieldNumber:"1"`
	Weight    uint64    `json:"weight,string" fieldNumber:"2"`
}

// Validate checks entry property.
func (a *ApproverEntry) Validate() error {
	if len(a.PublicKey) != crypto.PublicKeyLength {
		return fmt.Errorf("approver public key must be %d bytes but received %v", crypto.PublicKeyLength, a.PublicKey)
	}
	if a.Weight == 0 {
		return fmt.Errorf("approver %v must have non-zero weight", a.PublicKey)
	}
	return nil
}

// ApproverSet is the weighted signer table finalized for one reward cycle.
// Entries are stored in their canonical order; an approver's index in the
// table defines the required ordering of signatures on a block header.
type ApproverSet struct {
	Approvers []*ApproverEntry `json:"approvers" fieldNumber:"1"`
}

// Validate checks that every entry is well formed and no public key repeats.
func (s *ApproverSet) Validate() error {
	seen := map[string]bool{}
	for _, entry := range s.Approvers {
		if err := entry.Validate(); err != nil {
			return err
		}
		key := string(entry.PublicKey)
		if seen[key] {
			return fmt.Errorf("approver %v appears more than once", entry.PublicKey)
		}
		seen[key] = true
	}
	return nil
}

// TotalWeight sums the weight of every approver in the set.
func (s *ApproverSet) TotalWeight() uint64 {
	total := uint64(0)
	for _, entry := range s.Approvers {
		total += entry.Weight
	}
	return total
}

// IndexOf returns the table index of the public key, or -1 when the key is
// not an approver of this cycle.
func (s *ApproverSet) IndexOf(publicKey []byte) int {
	for i, entry := range s.Approvers {
		if bytes.Equal(entry.PublicKey, publicKey) {
			return i
		}
	}
	return -1
}

// WeightAt returns the weight of the approver at the index.
func (s *ApproverSet) WeightAt(index int) uint64 {
	if index < 0 || index >= len(s.Approvers) {
		return 0
	}
	return s.Approvers[index].Weight
}
