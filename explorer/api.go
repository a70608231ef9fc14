package explorer

import (
	"net/http"

	"github.com/Siasom1/shinde-chain/chainspec"
	"github.com/Siasom1/shinde-chain/core/blockchain"
	"github.com/Siasom1/shinde-chain/events"
	"github.com/Siasom1/shinde-chain/state"
)

// ExplorerAPI is a read-only REST view of a node, served next to JSON-RPC.
type ExplorerAPI struct {
	Spec   *chainspec.Spec
	Chain  *blockchain.Blockchain
	State  *state.State
	Events *events.EventBus
}

func NewExplorerAPI(spec *chainspec.Spec, chain *blockchain.Blockchain, st *state.State, bus *events.EventBus) *ExplorerAPI {
	return &ExplorerAPI{
		Spec:   spec,
		Chain:  chain,
		State:  st,
		Events: bus,
	}
}

// Routes returns the /explorer/ handler tree.
func (api *ExplorerAPI) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/explorer/spec", api.handleSpec)
	mux.HandleFunc("/explorer/head", api.handleHead)
	mux.HandleFunc("/explorer/block/", api.handleBlockByNumber)
	mux.HandleFunc("/explorer/account/", api.handleAccount)

	// Live stream (SSE)
	mux.HandleFunc("/explorer/stream/blocks", api.handleStreamBlocks)
	return mux
}
