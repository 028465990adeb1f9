package endpoint

import (
	"github.com/EmberHQ/ember-engine/pkg/blockchain"
	"github.com/EmberHQ/ember-engine/pkg/codec"
	"github.com/EmberHQ/ember-engine/pkg/consensus"
	"github.com/EmberHQ/ember-engine/pkg/engine/config"
	"github.com/EmberHQ/ember-engine/pkg/router"
)

type systemEndpoint struct {
	config      *config.Config
	chain       *blockchain.Chain
	coordinator *consensus.Coordinator
}

func NewSystemEndpoint(
	config *config.Config,
	chain *blockchain.Chain,
	coordinator *consensus.Coordinator,
) *systemEndpoint {
	return &systemEndpoint{
		config:      config,
		chain:       chain,
		coordinator: coordinator,
	}
}

func (a *systemEndpoint) Endpoint() router.EndpointHandlers {
	return map[string]router.EndpointHandler{
		"getNodeInfo": a.HandleGetNodeInfo,
	}
}

type GetNodeInfoResponse struct {
	Version       string                `json:"version"`
	ChainID       codec.Hex             `json:"chainID"`
	ChainLength   uint64                `json:"chainLength,string"`
	TipID         codec.Hex             `json:"tipID"`
	MiningBlocked bool                  `json:"miningBlocked"`
	GenesisConfig *config.GenesisConfig `json:"genesisConfig"`
}

func (a *systemEndpoint) HandleGetNodeInfo(w router.EndpointResponseWriter, r *router.EndpointRequest) {
	tip := a.coordinator.CanonicalTip()
	w.Write(&GetNodeInfoResponse{
		Version:       a.config.System.Version,
		ChainID:       a.chain.ChainID(),
		ChainLength:   tip.ChainLength,
		TipID:         tip.ID,
		MiningBlocked: a.coordinator.MiningBlocked(),
		GenesisConfig: a.config.Genesis,
	})
}
