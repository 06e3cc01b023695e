// Package transport is the JSON-RPC envelope parser and HTTP framing
// around ethapi.Dispatcher, adapted from the teacher's
// internal/handlers/http.go: same read-body/parse/batch-detect/
// write-response shape and the same metrics calls at the same points,
// but routing into a typed dispatcher instead of forwarding raw bytes
// to an upstream RPC endpoint.
package transport

import (
	"encoding/json"

	"github.com/amacwhirter/hedera-json-rpc-relay/internal/rpcerror"
)

// Request is a single JSON-RPC 2.0 request envelope.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
	Params  []any           `json:"params"`
}

// Response is a single JSON-RPC 2.0 response envelope.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result"`
	Error   *rpcerror.Error `json:"error,omitempty"`
}

// MarshalJSON omits "result" entirely when Error is set and includes
// it (even as null, for not-found lookups) otherwise — a nil Result
// with no Error must still serialize as "result": null, per the
// JSON-RPC result/error exclusivity spec.md §7 describes.
func (r *Response) MarshalJSON() ([]byte, error) {
	if r.Error != nil {
		return json.Marshal(struct {
			JSONRPC string          `json:"jsonrpc"`
			ID      json.RawMessage `json:"id"`
			Error   *rpcerror.Error `json:"error"`
		}{r.JSONRPC, r.ID, r.Error})
	}
	return json.Marshal(struct {
		JSONRPC string          `json:"jsonrpc"`
		ID      json.RawMessage `json:"id"`
		Result  any             `json:"result"`
	}{r.JSONRPC, r.ID, r.Result})
}

// NewResultResponse wraps a successful result.
func NewResultResponse(id json.RawMessage, result any) *Response {
	return &Response{JSONRPC: "2.0", ID: id, Result: result}
}

// NewErrorResponse wraps a JSON-RPC error value.
func NewErrorResponse(id json.RawMessage, code int, message string) *Response {
	return &Response{JSONRPC: "2.0", ID: id, Error: &rpcerror.Error{Code: code, Message: message}}
}

const (
	ErrCodeParseError     = -32700
	ErrCodeInvalidRequest = -32600
	ErrCodeInternalError  = -32603
)
