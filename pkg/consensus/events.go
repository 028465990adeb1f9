package consensus

import (
	"github.com/EmberHQ/ember-engine/pkg/blockchain"
	"github.com/EmberHQ/ember-engine/pkg/codec"
)

const (
	EventBlockNew      = "EventBlockNew"
	EventBlockRejected = "EventBlockRejected"
	EventBlockPending  = "EventBlockPending"
	EventTenureChange  = "EventTenureChange"
	EventBurnAdvanced  = "EventBurnAdvanced"
)

type EventBlockNewMessage struct {
	Header *blockchain.BlockHeader
	Weight uint64
}

type EventBlockRejectedMessage struct {
	Header *blockchain.BlockHeader
	Err    error
}

type EventBlockPendingMessage struct {
	Header *blockchain.BlockHeader
	Weight uint64
}

type EventTenureChangeMessage struct {
	Event *blockchain.TenureEvent
}

type EventBurnAdvancedMessage struct {
	Height  uint64
	Waiting bool
	Cycle   uint64
	TipID   codec.Hex
}
