package explorer

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/Siasom1/shinde-chain/account"
	"github.com/Siasom1/shinde-chain/core/blockchain"
)

// Utility response
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// pathArg returns the segment after prefix, e.g. "7" for /explorer/block/7.
func pathArg(r *http.Request, prefix string) string {
	return strings.Trim(strings.TrimPrefix(r.URL.Path, prefix), "/")
}

// ------------------------------------------------------------
// 1. /explorer/spec
// ------------------------------------------------------------
func (api *ExplorerAPI) handleSpec(w http.ResponseWriter, r *http.Request) {
	data, err := api.Spec.JSON(false)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// ------------------------------------------------------------
// 2. /explorer/head
// ------------------------------------------------------------
func (api *ExplorerAPI) handleHead(w http.ResponseWriter, r *http.Request) {
	head := api.Chain.Head()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"hash":   head.Hash(),
		"header": head.Header,
	})
}

// ------------------------------------------------------------
// 3. /explorer/block/{number}
// ------------------------------------------------------------
func (api *ExplorerAPI) handleBlockByNumber(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.ParseUint(pathArg(r, "/explorer/block/"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid block number")
		return
	}

	block, err := api.Chain.LoadBlock(number)
	if errors.Is(err, blockchain.ErrBlockNotFound) {
		writeError(w, http.StatusNotFound, "block not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"hash":   block.Hash(),
		"header": block.Header,
	})
}

// ------------------------------------------------------------
// 4. /explorer/account/{address}
// ------------------------------------------------------------
func (api *ExplorerAPI) handleAccount(w http.ResponseWriter, r *http.Request) {
	id, _, err := account.Decode(pathArg(r, "/explorer/account/"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	balance, err := api.State.GetBalance(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	nonce, err := api.State.GetNonce(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	format := account.GenericFormat
	if api.Spec.Properties != nil {
		format = account.Format(api.Spec.Properties.SS58Format)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"address":   id.SS58(format),
		"publicKey": id.Hex(),
		"balance":   balance,
		"nonce":     nonce,
	})
}

// ------------------------------------------------------------
// 5. /explorer/stream/blocks  (SSE)
// ------------------------------------------------------------
func (api *ExplorerAPI) handleStreamBlocks(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	flusher.Flush()

	ch := api.Events.SubscribeBlocks()
	defer api.Events.Unsubscribe(ch)
	ctx := r.Context()

	for {
		select {
		case block, ok := <-ch:
			if !ok {
				return
			}
			data, err := json.Marshal(block)
			if err != nil {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", data)
			flusher.Flush()
		case <-ctx.Done():
			return
		}
	}
}
