// Package burnclient implements the burn chain indexer client over a
// websocket JSON RPC connection.
package burnclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/EmberHQ/ember-engine/pkg/blockchain"
	"github.com/EmberHQ/ember-engine/pkg/codec"
	"github.com/EmberHQ/ember-engine/pkg/log"
	"github.com/EmberHQ/ember-engine/pkg/rpc"
)

const newBurnBlockMethod = "burn_newBlock"

type reqOp struct {
	id      int
	msgChan chan *rpc.JSONRPCResponse
}

// Client talks to a burn chain indexer node. It implements
// consensus.BurnIndexer; each call is one JSON RPC request over the shared
// connection.
type Client struct {
	logger    log.Logger
	conn      *websocket.Conn
	globalID  int
	mutex     *sync.Mutex
	reqOp     map[int]*reqOp
	notify    func()
	closeConn chan struct{}
}

func NewClient(logger log.Logger) *Client {
	return &Client{
		logger:    logger,
		mutex:     new(sync.Mutex),
		reqOp:     map[int]*reqOp{},
		closeConn: make(chan struct{}),
	}
}

// Start dials the indexer and begins the read loop.
func (c *Client) Start(url string) error {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return err
	}
	c.conn = conn
	go c.read()
	return nil
}

func (c *Client) Close() error {
	close(c.closeConn)
	return c.conn.Close()
}

// OnNewBurnBlock registers the handler invoked for every burn block
// notification. It must be set before Subscribe.
func (c *Client) OnNewBurnBlock(handler func()) {
	c.notify = handler
}

// Subscribe asks the indexer to push burn block notifications.
func (c *Client) Subscribe() error {
	params, err := json.Marshal(map[string][]string{"topics": {newBurnBlockMethod}})
	if err != nil {
		return err
	}
	return c.call("subscribe", params, nil)
}

func (c *Client) read() {
	for {
		select {
		case <-c.closeConn:
			return
		default:
		}
		_, body, err := c.conn.ReadMessage()
		if err != nil {
			select {
			case <-c.closeConn:
			default:
				c.logger.Errorf("Fail to receive message from indexer with %v", err)
			}
			return
		}
		resp := &rpc.JSONRPCResponse{}
		if err := json.Unmarshal(body, resp); err != nil {
			// Notifications arrive as requests, not responses.
			notification := &rpc.JSONRPCRequest{}
			if err := json.Unmarshal(body, notification); err != nil {
				c.logger.Errorf("Fail to decode indexer message with %v", err)
				continue
			}
			c.handleNotification(notification)
			continue
		}
		if resp.Result == nil && resp.Error == nil {
			notification := &rpc.JSONRPCRequest{}
			if err := json.Unmarshal(body, notification); err == nil && notification.Method != "" {
				c.handleNotification(notification)
				continue
			}
		}
		c.mutex.Lock()
		if op, exist := c.reqOp[resp.ID]; exist {
			op.msgChan <- resp
			delete(c.reqOp, resp.ID)
		}
		c.mutex.Unlock()
	}
}

func (c *Client) handleNotification(notification *rpc.JSONRPCRequest) {
	if notification.Method != newBurnBlockMethod {
		return
	}
	if c.notify != nil {
		c.notify()
	}
}

func (c *Client) call(method string, params json.RawMessage, result interface{}) error {
	c.mutex.Lock()
	if c.globalID == math.MaxInt {
		c.globalID = 0
	}
	c.globalID++
	id := c.globalID
	op := &reqOp{
		id:      id,
		msgChan: make(chan *rpc.JSONRPCResponse, 1),
	}
	c.reqOp[id] = op
	c.mutex.Unlock()

	req := &rpc.JSONRPCRequest{
		JSONRPC: "2.0",
		ID:      id,
		Method:  method,
		Params:  params,
	}
	if err := c.conn.WriteJSON(req); err != nil {
		c.mutex.Lock()
		delete(c.reqOp, id)
		c.mutex.Unlock()
		return err
	}
	select {
	case <-c.closeConn:
		return errors.New("connection closed")
	case resp := <-op.msgChan:
		if resp.Error != nil {
			return fmt.Errorf("indexer call %s failed with %s", method, resp.Error.Message)
		}
		if result == nil {
			return nil
		}
		return json.Unmarshal(resp.Result, result)
	}
}

type tipHeightResponse struct {
	Height uint64 `json:"height,string"`
}

// TipHeight returns the indexer burn tip.
func (c *Client) TipHeight() (uint64, error) {
	resp := &tipHeightResponse{}
	if err := c.call("burn_getTipHeight", nil, resp); err != nil {
		return 0, err
	}
	return resp.Height, nil
}

type heightRequest struct {
	Height uint64 `json:"height,string"`
}

// SortitionAt returns the sortition outcome at the burn height.
func (c *Client) SortitionAt(height uint64) (*blockchain.Sortition, error) {
	params, err := json.Marshal(&heightRequest{Height: height})
	if err != nil {
		return nil, err
	}
	sortition := &blockchain.Sortition{}
	if err := c.call("burn_getSortition", params, sortition); err != nil {
		return nil, err
	}
	return sortition, nil
}

type tenureChangesResponse struct {
	Changes []*blockchain.TenureChange `json:"changes"`
}

// TenureChangesAt returns the tenure changes confirmed at the burn height.
func (c *Client) TenureChangesAt(height uint64) ([]*blockchain.TenureChange, error) {
	params, err := json.Marshal(&heightRequest{Height: height})
	if err != nil {
		return nil, err
	}
	resp := &tenureChangesResponse{}
	if err := c.call("burn_getTenureChanges", params, resp); err != nil {
		return nil, err
	}
	return resp.Changes, nil
}

type blockCommitRequest struct {
	TenureID codec.Hex `json:"tenureID"`
}

// BlockCommit returns the producer commitment of the tenure.
func (c *Client) BlockCommit(tenureID []byte) (*blockchain.BlockCommit, error) {
	params, err := json.Marshal(&blockCommitRequest{TenureID: tenureID})
	if err != nil {
		return nil, err
	}
	commit := &blockchain.BlockCommit{}
	if err := c.call("burn_getBlockCommit", params, commit); err != nil {
		return nil, err
	}
	return commit, nil
}
