package endpoint

import (
	"encoding/json"

	"github.com/EmberHQ/ember-engine/pkg/blockchain"
	"github.com/EmberHQ/ember-engine/pkg/codec"
	"github.com/EmberHQ/ember-engine/pkg/consensus"
	"github.com/EmberHQ/ember-engine/pkg/router"
)

type chainEndpoint struct {
	chain       *blockchain.Chain
	coordinator *consensus.Coordinator
}

func NewChainEndpoint(
	chain *blockchain.Chain,
	coordinator *consensus.Coordinator,
) *chainEndpoint {
	return &chainEndpoint{
		chain:       chain,
		coordinator: coordinator,
	}
}

func (a *chainEndpoint) Endpoint() router.EndpointHandlers {
	return map[string]router.EndpointHandler{
		"getCanonicalTip":       a.HandleGetCanonicalTip,
		"getBlockByID":          a.HandleGetBlockByID,
		"getBlocksByIDs":        a.HandleGetBlocksByIDs,
		"getBlockByChainLength": a.HandleGetBlockByChainLength,
		"getStagedBlocks":       a.HandleGetStagedBlocks,
		"postBlock":             a.HandlePostBlock,
	}
}

func (a *chainEndpoint) HandleGetCanonicalTip(w router.EndpointResponseWriter, r *router.EndpointRequest) {
	w.Write(a.coordinator.CanonicalTip())
}

type GetBlockByIDRequest struct {
	ID codec.Hex `json:"id"`
}

func (a *chainEndpoint) HandleGetBlockByID(w router.EndpointResponseWriter, r *router.EndpointRequest) {
	req := &GetBlockByIDRequest{}
	if err := json.Unmarshal(r.Params(), req); err != nil {
		w.Error(err)
		return
	}
	header, err := a.chain.DataAccess().GetBlockHeader(req.ID)
	if err != nil {
		w.Error(err)
		return
	}
	w.Write(header)
}

type GetBlocksByIDsRequest struct {
	IDs []codec.Hex `json:"ids"`
}

type GetBlocksByIDsResponse struct {
	Headers []*blockchain.BlockHeader `json:"headers"`
}

func (a *chainEndpoint) HandleGetBlocksByIDs(w router.EndpointResponseWriter, r *router.EndpointRequest) {
	req := &GetBlocksByIDsRequest{}
	if err := json.Unmarshal(r.Params(), req); err != nil {
		w.Error(err)
		return
	}
	ids := make([][]byte, len(req.IDs))
	for i, id := range req.IDs {
		ids[i] = id
	}
	headers, err := a.chain.DataAccess().GetBlockHeaders(ids)
	if err != nil {
		w.Error(err)
		return
	}
	w.Write(&GetBlocksByIDsResponse{Headers: headers})
}

type GetBlockByChainLengthRequest struct {
	ChainLength uint64 `json:"chainLength,string"`
}

func (a *chainEndpoint) HandleGetBlockByChainLength(w router.EndpointResponseWriter, r *router.EndpointRequest) {
	req := &GetBlockByChainLengthRequest{}
	if err := json.Unmarshal(r.Params(), req); err != nil {
		w.Error(err)
		return
	}
	header, err := a.chain.DataAccess().GetBlockHeaderByChainLength(req.ChainLength)
	if err != nil {
		w.Error(err)
		return
	}
	w.Write(header)
}

type GetStagedBlocksRequest struct {
	ChainLength uint64 `json:"chainLength,string"`
}

type GetStagedBlocksResponse struct {
	Headers []*blockchain.BlockHeader `json:"headers"`
}

func (a *chainEndpoint) HandleGetStagedBlocks(w router.EndpointResponseWriter, r *router.EndpointRequest) {
	req := &GetStagedBlocksRequest{}
	if err := json.Unmarshal(r.Params(), req); err != nil {
		w.Error(err)
		return
	}
	headers, err := a.chain.DataAccess().GetStagedBlockHeaders(req.ChainLength)
	if err != nil {
		w.Error(err)
		return
	}
	w.Write(&GetStagedBlocksResponse{Headers: headers})
}

type PostBlockRequest struct {
	Header codec.Hex `json:"header"`
}

type PostBlockResponse struct {
	BlockID codec.Hex `json:"blockID"`
}

func (a *chainEndpoint) HandlePostBlock(w router.EndpointResponseWriter, r *router.EndpointRequest) {
	req := &PostBlockRequest{}
	if err := json.Unmarshal(r.Params(), req); err != nil {
		w.Error(err)
		return
	}
	header, err := blockchain.NewBlockHeader(a.chain.ChainID(), req.Header)
	if err != nil {
		w.Error(err)
		return
	}
	a.coordinator.OnChainBlock(header)
	w.Write(&PostBlockResponse{BlockID: header.ID})
}
