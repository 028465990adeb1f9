package engine

import (
	"encoding/json"

	"github.com/EmberHQ/ember-engine/pkg/blockchain"
	"github.com/EmberHQ/ember-engine/pkg/codec"
	"github.com/EmberHQ/ember-engine/pkg/consensus"
)

const (
	RPCEventChainNewBlock      = "chain_newBlock"
	RPCEventChainRejectedBlock = "chain_rejectedBlock"
	RPCEventChainPendingBlock  = "chain_pendingBlock"
	RPCEventConsensusTenure    = "consensus_tenureChange"
	RPCEventConsensusBurn      = "consensus_burnAdvanced"
)

type EventBlockHeader struct {
	BlockHeader *blockchain.BlockHeader `json:"blockHeader"`
	Weight      uint64                  `json:"weight,string"`
}

type EventBlockRejected struct {
	BlockHeader *blockchain.BlockHeader `json:"blockHeader"`
	Reason      string                  `json:"reason"`
}

type EventTenure struct {
	Tenure *blockchain.TenureEvent `json:"tenure"`
}

type EventBurnAdvanced struct {
	Height  uint64    `json:"height,string"`
	Waiting bool      `json:"waiting"`
	Cycle   uint64    `json:"cycle,string"`
	TipID   codec.Hex `json:"tipID"`
}

func (e *Engine) handleEvents() {
	newBlock := e.coordinator.Subscribe(consensus.EventBlockNew)
	rejectedBlock := e.coordinator.Subscribe(consensus.EventBlockRejected)
	pendingBlock := e.coordinator.Subscribe(consensus.EventBlockPending)
	tenureChange := e.coordinator.Subscribe(consensus.EventTenureChange)
	burnAdvanced := e.coordinator.Subscribe(consensus.EventBurnAdvanced)
	for {
		select {
		case <-e.ctx.Done():
			return
		case msg := <-newBlock:
			eventMsg, ok := msg.(*consensus.EventBlockNewMessage)
			if !ok {
				e.logger.Errorf("Failed to cast event data with %v", msg)
				continue
			}
			data := &EventBlockHeader{
				BlockHeader: eventMsg.Header,
				Weight:      eventMsg.Weight,
			}
			publishData, err := json.Marshal(data)
			if err != nil {
				e.logger.Errorf("Failed to marshal publishing data with %s", err)
				continue
			}
			e.server.Publish(RPCEventChainNewBlock, publishData)
		case msg := <-rejectedBlock:
			eventMsg, ok := msg.(*consensus.EventBlockRejectedMessage)
			if !ok {
				e.logger.Errorf("Failed to cast event data with %v", msg)
				continue
			}
			data := &EventBlockRejected{
				BlockHeader: eventMsg.Header,
				Reason:      eventMsg.Err.Error(),
			}
			publishData, err := json.Marshal(data)
			if err != nil {
				e.logger.Errorf("Failed to marshal publishing data with %s", err)
				continue
			}
			e.server.Publish(RPCEventChainRejectedBlock, publishData)
		case msg := <-pendingBlock:
			eventMsg, ok := msg.(*consensus.EventBlockPendingMessage)
			if !ok {
				e.logger.Errorf("Failed to cast event data with %v", msg)
				continue
			}
			data := &EventBlockHeader{
				BlockHeader: eventMsg.Header,
				Weight:      eventMsg.Weight,
			}
			publishData, err := json.Marshal(data)
			if err != nil {
				e.logger.Errorf("Failed to marshal publishing data with %s", err)
				continue
			}
			e.server.Publish(RPCEventChainPendingBlock, publishData)
		case msg := <-tenureChange:
			eventMsg, ok := msg.(*consensus.EventTenureChangeMessage)
			if !ok {
				e.logger.Errorf("Failed to cast event data with %v", msg)
				continue
			}
			data := &EventTenure{
				Tenure: eventMsg.Event,
			}
			publishData, err := json.Marshal(data)
			if err != nil {
				e.logger.Errorf("Failed to marshal publishing data with %s", err)
				continue
			}
			e.server.Publish(RPCEventConsensusTenure, publishData)
		case msg := <-burnAdvanced:
			eventMsg, ok := msg.(*consensus.EventBurnAdvancedMessage)
			if !ok {
				e.logger.Errorf("Failed to cast event data with %v", msg)
				continue
			}
			data := &EventBurnAdvanced{
				Height:  eventMsg.Height,
				Waiting: eventMsg.Waiting,
				Cycle:   eventMsg.Cycle,
				TipID:   eventMsg.TipID,
			}
			publishData, err := json.Marshal(data)
			if err != nil {
				e.logger.Errorf("Failed to marshal publishing data with %s", err)
				continue
			}
			e.server.Publish(RPCEventConsensusBurn, publishData)
		}
	}
}
