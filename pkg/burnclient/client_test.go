package burnclient

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EmberHQ/ember-engine/pkg/blockchain"
	"github.com/EmberHQ/ember-engine/pkg/crypto"
	"github.com/EmberHQ/ember-engine/pkg/log"
	"github.com/EmberHQ/ember-engine/pkg/rpc"
)

var testUpgrader = websocket.Upgrader{}

type testIndexerServer struct {
	t         *testing.T
	sortition *blockchain.Sortition
	commit    *blockchain.BlockCommit
	conn      *websocket.Conn
	connected chan struct{}
}

func newTestIndexerServer(t *testing.T) *testIndexerServer {
	return &testIndexerServer{
		t: t,
		sortition: &blockchain.Sortition{
			BurnHeight:        42,
			ConsensusHash:     crypto.RandomBytes(32),
			HasWinner:         true,
			ProducerPublicKey: crypto.RandomBytes(crypto.PublicKeyLength),
		},
		commit: &blockchain.BlockCommit{
			TenureID:          crypto.RandomBytes(32),
			ProducerPublicKey: crypto.RandomBytes(crypto.PublicKeyLength),
			BurnSpent:         1000,
		},
		connected: make(chan struct{}),
	}
}

func (s *testIndexerServer) handle(w http.ResponseWriter, r *http.Request) {
	conn, err := testUpgrader.Upgrade(w, r, nil)
	require.NoError(s.t, err)
	s.conn = conn
	close(s.connected)
	for {
		_, body, err := conn.ReadMessage()
		if err != nil {
			return
		}
		req := &rpc.JSONRPCRequest{}
		require.NoError(s.t, json.Unmarshal(body, req))
		resp := &rpc.JSONRPCResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
		}
		switch req.Method {
		case "subscribe":
			resp.Result = json.RawMessage(`{}`)
		case "burn_getTipHeight":
			resp.Result = json.RawMessage(`{"height":"42"}`)
		case "burn_getSortition":
			data, err := json.Marshal(s.sortition)
			require.NoError(s.t, err)
			resp.Result = data
		case "burn_getTenureChanges":
			resp.Result = json.RawMessage(`{"changes":[]}`)
		case "burn_getBlockCommit":
			data, err := json.Marshal(s.commit)
			require.NoError(s.t, err)
			resp.Result = data
		default:
			resp.Error = &rpc.JSONRPCErrorResponse{Message: "unknown method", Code: -32601}
		}
		require.NoError(s.t, conn.WriteJSON(resp))
	}
}

func (s *testIndexerServer) notifyNewBurnBlock() {
	<-s.connected
	notification := &rpc.JSONRPCRequest{
		JSONRPC: "2.0",
		Method:  "burn_newBlock",
	}
	require.NoError(s.t, s.conn.WriteJSON(notification))
}

func testClient(t *testing.T) (*Client, *testIndexerServer) {
	t.Helper()
	server := newTestIndexerServer(t)
	httpServer := httptest.NewServer(http.HandlerFunc(server.handle))
	t.Cleanup(httpServer.Close)

	client := NewClient(log.NewSilentLogger())
	url := "ws" + strings.TrimPrefix(httpServer.URL, "http")
	require.NoError(t, client.Start(url))
	t.Cleanup(func() { client.Close() })
	return client, server
}

func TestClientCalls(t *testing.T) {
	client, server := testClient(t)

	height, err := client.TipHeight()
	require.NoError(t, err)
	assert.Equal(t, uint64(42), height)

	sortition, err := client.SortitionAt(42)
	require.NoError(t, err)
	assert.Equal(t, server.sortition.ConsensusHash, sortition.ConsensusHash)
	assert.True(t, sortition.HasWinner)

	changes, err := client.TenureChangesAt(42)
	require.NoError(t, err)
	assert.Empty(t, changes)

	commit, err := client.BlockCommit(server.commit.TenureID)
	require.NoError(t, err)
	assert.Equal(t, server.commit.ProducerPublicKey, commit.ProducerPublicKey)
	assert.Equal(t, uint64(1000), commit.BurnSpent)
}

func TestClientSubscribeNotification(t *testing.T) {
	client, server := testClient(t)

	notified := make(chan struct{}, 1)
	client.OnNewBurnBlock(func() {
		select {
		case notified <- struct{}{}:
		default:
		}
	})
	require.NoError(t, client.Subscribe())

	server.notifyNewBurnBlock()
	select {
	case <-notified:
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for burn block notification")
	}
}
