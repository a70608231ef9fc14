package rpc

import (
	"encoding/json"
	"errors"
)

// RPCHandler handles one method. Params arrive positional.
type RPCHandler func(params []interface{}) (interface{}, error)

// ErrInvalidParams marks a handler error caused by the caller's params.
var ErrInvalidParams = errors.New("invalid params")

func Dispatch(handlers map[string]RPCHandler, method string, raw json.RawMessage) (interface{}, *RPCError) {
	h, ok := handlers[method]
	if !ok {
		return nil, &RPCError{Code: codeMethodNotFound, Message: "Method not found"}
	}

	var params []interface{}
	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, &params); err != nil {
			return nil, &RPCError{Code: codeInvalidParams, Message: "params must be an array"}
		}
	}

	result, err := h(params)
	if err != nil {
		if errors.Is(err, ErrInvalidParams) {
			return nil, &RPCError{Code: codeInvalidParams, Message: err.Error()}
		}
		return nil, &RPCError{Code: codeServerError, Message: err.Error()}
	}
	return result, nil
}
