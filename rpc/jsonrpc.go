package rpc

import (
	"encoding/json"
	"io"
	"net/http"
)

const maxRequestSize = 1 << 20

type RPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
	ID      interface{}     `json:"id"`
}

type RPCResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	Result  interface{} `json:"result,omitempty"`
	Error   *RPCError   `json:"error,omitempty"`
	ID      interface{} `json:"id"`
}

// Standard JSON-RPC 2.0 error codes.
const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeServerError    = -32000
)

type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return e.Message
}

// HandleJSONRPC serves a single (non-batch) JSON-RPC request per POST.
func HandleJSONRPC(handlers map[string]RPCHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "POST only", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestSize))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		var req RPCRequest
		if err := json.Unmarshal(body, &req); err != nil {
			writeResponse(w, RPCResponse{
				JSONRPC: "2.0",
				Error:   &RPCError{Code: codeParseError, Message: "parse error"},
			})
			return
		}

		if req.JSONRPC != "2.0" || req.Method == "" {
			writeResponse(w, RPCResponse{
				JSONRPC: "2.0",
				Error:   &RPCError{Code: codeInvalidRequest, Message: "invalid request"},
				ID:      req.ID,
			})
			return
		}

		result, rpcErr := Dispatch(handlers, req.Method, req.Params)

		writeResponse(w, RPCResponse{
			JSONRPC: "2.0",
			Result:  result,
			Error:   rpcErr,
			ID:      req.ID,
		})
	}
}

func writeResponse(w http.ResponseWriter, resp RPCResponse) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
