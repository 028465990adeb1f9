package blockchain

import (
	"github.com/EmberHQ/ember-engine/pkg/codec"
)

// Sortition is the outcome of producer selection at one burn height as
// reported by the burn chain indexer. A sortition without a winner still
// advances the burn view even though no tenure can start from it.
type Sortition struct {
	BurnHeight        uint64    `json:"burnHeight,string"`
	ConsensusHash     codec.Hex `json:"consensusHash"`
	HasWinner         bool      `json:"hasWinner"`
	ProducerPublicKey codec.Hex `json:"producerPublicKey"`
}

// BlockCommit is the burn chain commitment of the producer that won a
// sortition. BurnSpent is the amount destroyed to enter the sortition and
// is echoed in every header of the tenure.
type BlockCommit struct {
	TenureID          codec.Hex `json:"tenureID"`
	ProducerPublicKey codec.Hex `json:"producerPublicKey"`
	BurnSpent         uint64    `json:"burnSpent,string"`
}
