package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/EmberHQ/ember-engine/pkg/log"
)

var port = 12345

func mustCreateBody(req *JSONRPCRequest) io.Reader {
	reqBytes, err := json.Marshal(req)
	if err != nil {
		panic(err)
	}
	return bytes.NewReader(reqBytes)
}

func mustMarshal(data interface{}) string {
	reqBytes, err := json.Marshal(data)
	if err != nil {
		panic(err)
	}
	return string(reqBytes)
}

type echoParams struct {
	Cycle uint64 `json:"cycle"`
}

type mockInvoker struct{}

func (i *mockInvoker) Invoke(ctx context.Context, endpoint string, data []byte) EndpointResponse {
	params := &echoParams{}
	if err := json.Unmarshal(data, params); err != nil {
		return NewEndpointResponse(nil, err)
	}
	if params.Cycle == 0 {
		return NewEndpointResponse(nil, errors.New("invalid cycle"))
	}
	return NewEndpointResponse(params, nil)
}

func TestHTTPServer(t *testing.T) {
	invoker := &mockInvoker{}
	server := NewHTTPJSONServer(log.NewSilentLogger(), port, "0.0.0.0", invoker)
	defer server.Close()
	go func() {
		server.ListenAndServe()
	}()

	// Wait for the server goroutine to bind the port before sending requests.
	for i := 0; i < 100; i++ {
		conn, err := net.Dial("tcp", fmt.Sprintf("localhost:%d", port))
		if err == nil {
			conn.Close()
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	cli := http.DefaultClient

	testTable := []struct {
		method       string
		statusCode   int
		body         io.Reader
		expectedResp string
	}{
		{
			method:       "GET",
			body:         nil,
			statusCode:   http.StatusBadRequest,
			expectedResp: "Invalid method",
		},
		{
			method:     "POST",
			statusCode: http.StatusBadRequest,
			body:       bytes.NewReader([]byte("invalid req")),
			expectedResp: mustMarshal(&JSONRPCResponse{
				JSONRPC: "2.0",
				Error: &JSONRPCErrorResponse{
					Code:    jsonRPCParseError,
					Message: "invalid character 'i' looking for beginning of value",
				},
			}),
		},
		{
			method:     "POST",
			statusCode: http.StatusBadRequest,
			body: mustCreateBody(&JSONRPCRequest{
				ID:      1,
				JSONRPC: "2.0",
				Method:  "consensus_rewardSet",
				Params:  json.RawMessage(mustMarshal(&echoParams{Cycle: 0})),
			}),
			expectedResp: mustMarshal(&JSONRPCResponse{
				JSONRPC: "2.0",
				ID:      1,
				Error: &JSONRPCErrorResponse{
					Code:    jsonRPCInvalidRequest,
					Message: "invalid cycle",
				},
			}),
		},
		{
			method:     "POST",
			statusCode: http.StatusBadRequest,
			body: mustCreateBody(&JSONRPCRequest{
				ID:      1,
				JSONRPC: "1.0",
				Method:  "consensus_rewardSet",
				Params:  json.RawMessage(mustMarshal(&echoParams{Cycle: 0})),
			}),
			expectedResp: mustMarshal(&JSONRPCResponse{
				JSONRPC: "2.0",
				ID:      1,
				Error: &JSONRPCErrorResponse{
					Code:    jsonRPCInvalidRequestError,
					Message: "invalid json rpc version 1.0",
				},
			}),
		},
		{
			method:     "POST",
			statusCode: http.StatusOK,
			body: mustCreateBody(&JSONRPCRequest{
				ID:      2,
				JSONRPC: "2.0",
				Method:  "consensus_rewardSet",
				Params:  json.RawMessage(mustMarshal(&echoParams{Cycle: 5})),
			}),
			expectedResp: mustMarshal(&JSONRPCResponse{
				JSONRPC: "2.0",
				ID:      2,
				Result:  json.RawMessage(mustMarshal(&echoParams{Cycle: 5})),
			}),
		},
	}

	for i, testCase := range testTable {
		t.Logf("Testing case %d", i)
		req, err := http.NewRequest(testCase.method, fmt.Sprintf("http://localhost:%d/rpc", port), testCase.body)
		assert.NoError(t, err)
		resp, err := cli.Do(req)
		assert.NoError(t, err)
		assert.Equal(t, testCase.statusCode, resp.StatusCode)
		body, err := io.ReadAll(resp.Body)
		assert.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, testCase.expectedResp, string(body))
	}
}
