package transport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/amacwhirter/hedera-json-rpc-relay/internal/ethapi"
	"github.com/amacwhirter/hedera-json-rpc-relay/internal/logger"
	"github.com/amacwhirter/hedera-json-rpc-relay/internal/metrics"
)

// HTTPHandler handles JSON-RPC requests over HTTP, dispatching into the
// relay core instead of forwarding bytes upstream.
type HTTPHandler struct {
	dispatcher *ethapi.Dispatcher
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(dispatcher *ethapi.Dispatcher) *HTTPHandler {
	return &HTTPHandler{dispatcher: dispatcher}
}

// ServeHTTP handles incoming HTTP requests.
func (h *HTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeError(w, nil, ErrCodeParseError, "Failed to read request body")
		return
	}
	defer r.Body.Close()

	if len(body) > 0 && body[0] == '[' {
		h.handleBatch(w, r, body)
		return
	}

	var req Request
	if err := json.Unmarshal(body, &req); err != nil {
		h.writeError(w, nil, ErrCodeParseError, "Failed to parse JSON-RPC request")
		return
	}

	if req.JSONRPC != "2.0" {
		h.writeError(w, req.ID, ErrCodeInvalidRequest, "Invalid JSON-RPC version")
		return
	}
	if req.Method == "" {
		h.writeError(w, req.ID, ErrCodeInvalidRequest, "Method is required")
		return
	}

	resp := h.dispatch(r.Context(), req)
	h.writeJSON(w, resp)
}

func (h *HTTPHandler) handleBatch(w http.ResponseWriter, r *http.Request, body []byte) {
	var reqs []Request
	if err := json.Unmarshal(body, &reqs); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode([]*Response{
			NewErrorResponse(nil, ErrCodeParseError, "Failed to parse JSON-RPC batch request"),
		})
		return
	}

	resps := make([]*Response, len(reqs))
	for i, req := range reqs {
		resps[i] = h.dispatch(r.Context(), req)
	}
	h.writeJSON(w, resps)
}

// dispatch routes a single envelope through the core, translating
// between ethapi.Outcome and the wire response shape.
func (h *HTTPHandler) dispatch(ctx context.Context, req Request) *Response {
	requestID := extractRequestID(req.ID)

	outcome, err := h.dispatcher.Dispatch(ctx, req.Method, req.Params, requestID)
	if err != nil {
		logger.Error("dispatch %s failed: %v", req.Method, err)
		metrics.RequestsTotal.WithLabelValues(req.Method, "transport_throw").Inc()
		return NewErrorResponse(req.ID, ErrCodeInternalError, "Internal error")
	}
	if outcome.Err != nil {
		return &Response{JSONRPC: "2.0", ID: req.ID, Error: outcome.Err}
	}
	return NewResultResponse(req.ID, outcome.Value)
}

func extractRequestID(id json.RawMessage) string {
	var s string
	if err := json.Unmarshal(id, &s); err == nil {
		return s
	}
	return ""
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, id json.RawMessage, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(NewErrorResponse(id, code, message))
}

func (h *HTTPHandler) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
