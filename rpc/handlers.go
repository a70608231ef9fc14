package rpc

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Siasom1/shinde-chain/account"
	"github.com/Siasom1/shinde-chain/chainspec"
	"github.com/Siasom1/shinde-chain/core/blockchain"
	"github.com/Siasom1/shinde-chain/core/types"
	chainparams "github.com/Siasom1/shinde-chain/params"
	"github.com/Siasom1/shinde-chain/state"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

type RPCHandlers struct {
	Spec  *chainspec.Spec
	Chain *blockchain.Blockchain
	State *state.State
}

// ---------------------------------------------------------------
// REGISTER METHODS
// ---------------------------------------------------------------
func NewHandlers(spec *chainspec.Spec, chain *blockchain.Blockchain, st *state.State) map[string]RPCHandler {
	h := &RPCHandlers{Spec: spec, Chain: chain, State: st}

	return map[string]RPCHandler{
		// ---------------- SYSTEM ----------------
		"system_name":       h.systemName,
		"system_version":    h.systemVersion,
		"system_chain":      h.systemChain,
		"system_chainType":  h.systemChainType,
		"system_properties": h.systemProperties,

		// ---------------- CHAIN -----------------
		"chain_getBlockHash": h.getBlockHash,
		"chain_getHeader":    h.getHeader,

		// ---------------- SYNC ------------------
		"sync_state_genSyncSpec": h.genSyncSpec,

		// ---------------- SHINDE ----------------
		"shinde_getBalance": h.getBalance,
		"shinde_sudoKey":    h.sudoKey,
	}
}

// ---------------------------------------------------------------
// SYSTEM
// ---------------------------------------------------------------
func (h *RPCHandlers) systemName(params []interface{}) (interface{}, error) {
	return chainparams.ClientName, nil
}

func (h *RPCHandlers) systemVersion(params []interface{}) (interface{}, error) {
	return chainparams.ClientVersion, nil
}

func (h *RPCHandlers) systemChain(params []interface{}) (interface{}, error) {
	return h.Spec.Name, nil
}

func (h *RPCHandlers) systemChainType(params []interface{}) (interface{}, error) {
	return h.Spec.ChainType, nil
}

func (h *RPCHandlers) systemProperties(params []interface{}) (interface{}, error) {
	if h.Spec.Properties == nil {
		return map[string]interface{}{}, nil
	}
	return h.Spec.Properties, nil
}

// ---------------------------------------------------------------
// CHAIN
// ---------------------------------------------------------------

// getBlockHash: [number?]; without a number the head hash.
func (h *RPCHandlers) getBlockHash(params []interface{}) (interface{}, error) {
	if len(params) == 0 || params[0] == nil {
		return h.Chain.Head().Hash(), nil
	}

	n, err := blockNumberParam(params[0])
	if err != nil {
		return nil, err
	}
	b, err := h.Chain.LoadBlock(n)
	if err != nil {
		return nil, err
	}
	return b.Hash(), nil
}

// getHeader: [hash?]; without a hash the head header.
func (h *RPCHandlers) getHeader(params []interface{}) (interface{}, error) {
	if len(params) == 0 || params[0] == nil {
		return h.Chain.Head().Header, nil
	}

	s, ok := params[0].(string)
	if !ok {
		return nil, fmt.Errorf("%w: block hash must be a string", ErrInvalidParams)
	}
	raw, err := hexutil.Decode(s)
	if err != nil || len(raw) != common.HashLength {
		return nil, fmt.Errorf("%w: bad block hash %q", ErrInvalidParams, s)
	}
	want := common.BytesToHash(raw)

	for _, b := range []*types.Block{h.Chain.Head(), h.Chain.Genesis()} {
		if b.Hash() == want {
			return b.Header, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", blockchain.ErrBlockNotFound, want)
}

func blockNumberParam(p interface{}) (uint64, error) {
	switch v := p.(type) {
	case float64:
		if v < 0 || v != float64(uint64(v)) {
			return 0, fmt.Errorf("%w: bad block number %v", ErrInvalidParams, v)
		}
		return uint64(v), nil
	case string:
		n, err := hexutil.DecodeUint64(v)
		if err != nil {
			return 0, fmt.Errorf("%w: bad block number %q", ErrInvalidParams, v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%w: block number must be a number or hex string", ErrInvalidParams)
	}
}

// ---------------------------------------------------------------
// SYNC
// ---------------------------------------------------------------

// genSyncSpec returns the running chain spec. The optional raw flag is accepted
// for compatibility; specs are always returned in descriptor form.
func (h *RPCHandlers) genSyncSpec(params []interface{}) (interface{}, error) {
	if len(params) > 0 && params[0] != nil {
		if _, ok := params[0].(bool); !ok {
			return nil, fmt.Errorf("%w: raw flag must be a boolean", ErrInvalidParams)
		}
	}

	data, err := h.Spec.JSON(false)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}

// ---------------------------------------------------------------
// SHINDE
// ---------------------------------------------------------------
func (h *RPCHandlers) getBalance(params []interface{}) (interface{}, error) {
	if len(params) == 0 {
		return nil, fmt.Errorf("%w: missing address", ErrInvalidParams)
	}
	id, err := accountParam(params[0])
	if err != nil {
		return nil, err
	}
	return h.State.GetBalance(id)
}

func (h *RPCHandlers) sudoKey(params []interface{}) (interface{}, error) {
	id, ok, err := h.State.SudoKey()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New("no sudo key")
	}
	return id.SS58(account.Format(h.ss58Format())), nil
}

func (h *RPCHandlers) ss58Format() uint16 {
	if h.Spec.Properties != nil {
		return h.Spec.Properties.SS58Format
	}
	return uint16(account.GenericFormat)
}

// accountParam accepts an SS58 address of any format or a 0x-prefixed public key.
func accountParam(p interface{}) (account.ID, error) {
	s, ok := p.(string)
	if !ok {
		return account.ID{}, fmt.Errorf("%w: address must be a string", ErrInvalidParams)
	}

	if strings.HasPrefix(s, "0x") {
		raw, err := hexutil.Decode(s)
		if err != nil {
			return account.ID{}, fmt.Errorf("%w: %v", ErrInvalidParams, err)
		}
		id, err := account.BytesToID(raw)
		if err != nil {
			return account.ID{}, fmt.Errorf("%w: %v", ErrInvalidParams, err)
		}
		return id, nil
	}

	id, _, err := account.Decode(s)
	if err != nil {
		return account.ID{}, fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return id, nil
}
