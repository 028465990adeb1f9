package endpoint

import (
	"encoding/json"

	"github.com/EmberHQ/ember-engine/pkg/blockchain"
	"github.com/EmberHQ/ember-engine/pkg/codec"
	"github.com/EmberHQ/ember-engine/pkg/consensus"
	"github.com/EmberHQ/ember-engine/pkg/router"
)

type consensusEndpoint struct {
	chain       *blockchain.Chain
	coordinator *consensus.Coordinator
}

func NewConsensusEndpoint(
	chain *blockchain.Chain,
	coordinator *consensus.Coordinator,
) *consensusEndpoint {
	return &consensusEndpoint{
		chain:       chain,
		coordinator: coordinator,
	}
}

func (a *consensusEndpoint) Endpoint() router.EndpointHandlers {
	return map[string]router.EndpointHandler{
		"getRewardSet":          a.HandleGetRewardSet,
		"getMiningStatus":       a.HandleGetMiningStatus,
		"getAuthorizedProducer": a.HandleGetAuthorizedProducer,
		"getLastTenure":         a.HandleGetLastTenure,
		"getSigningHashes":      a.HandleGetSigningHashes,
		"postBurnBlock":         a.HandlePostBurnBlock,
	}
}

type GetRewardSetRequest struct {
	Cycle uint64 `json:"cycle,string"`
}

type GetRewardSetResponse struct {
	Cycle       uint64                  `json:"cycle,string"`
	Status      string                  `json:"status"`
	TotalWeight uint64                  `json:"totalWeight,string"`
	Set         *blockchain.ApproverSet `json:"set"`
}

func (a *consensusEndpoint) HandleGetRewardSet(w router.EndpointResponseWriter, r *router.EndpointRequest) {
	req := &GetRewardSetRequest{}
	if err := json.Unmarshal(r.Params(), req); err != nil {
		w.Error(err)
		return
	}
	info, err := a.coordinator.ApproverSet(req.Cycle)
	if err != nil {
		w.Error(err)
		return
	}
	resp := &GetRewardSetResponse{
		Cycle:  info.Cycle,
		Status: info.Status.String(),
		Set:    info.Set,
	}
	if info.Set != nil {
		resp.TotalWeight = info.Set.TotalWeight()
	}
	w.Write(resp)
}

type GetMiningStatusResponse struct {
	Blocked bool `json:"blocked"`
}

func (a *consensusEndpoint) HandleGetMiningStatus(w router.EndpointResponseWriter, r *router.EndpointRequest) {
	w.Write(&GetMiningStatusResponse{
		Blocked: a.coordinator.MiningBlocked(),
	})
}

type GetAuthorizedProducerRequest struct {
	TenureID codec.Hex `json:"tenureID"`
}

type GetAuthorizedProducerResponse struct {
	PublicKey codec.Hex `json:"publicKey"`
}

func (a *consensusEndpoint) HandleGetAuthorizedProducer(w router.EndpointResponseWriter, r *router.EndpointRequest) {
	req := &GetAuthorizedProducerRequest{}
	if err := json.Unmarshal(r.Params(), req); err != nil {
		w.Error(err)
		return
	}
	publicKey, err := a.coordinator.AuthorizedProducer(req.TenureID)
	if err != nil {
		w.Error(err)
		return
	}
	w.Write(&GetAuthorizedProducerResponse{PublicKey: publicKey})
}

func (a *consensusEndpoint) HandleGetLastTenure(w router.EndpointResponseWriter, r *router.EndpointRequest) {
	event, err := a.chain.DataAccess().GetLastTenureEvent()
	if err != nil {
		w.Error(err)
		return
	}
	w.Write(event)
}

type GetSigningHashesRequest struct {
	Header codec.Hex `json:"header"`
}

type GetSigningHashesResponse struct {
	ProducerSigningHash codec.Hex `json:"producerSigningHash"`
	ApproverSigningHash codec.Hex `json:"approverSigningHash"`
}

func (a *consensusEndpoint) HandleGetSigningHashes(w router.EndpointResponseWriter, r *router.EndpointRequest) {
	req := &GetSigningHashesRequest{}
	if err := json.Unmarshal(r.Params(), req); err != nil {
		w.Error(err)
		return
	}
	header, err := blockchain.NewBlockHeader(a.chain.ChainID(), req.Header)
	if err != nil {
		w.Error(err)
		return
	}
	w.Write(&GetSigningHashesResponse{
		ProducerSigningHash: a.coordinator.ProducerSigningHash(header),
		ApproverSigningHash: a.coordinator.ApproverSigningHash(header),
	})
}

func (a *consensusEndpoint) HandlePostBurnBlock(w router.EndpointResponseWriter, r *router.EndpointRequest) {
	a.coordinator.OnBurnBlock()
	w.Write(map[string]bool{"accepted": true})
}
