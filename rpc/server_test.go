package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Siasom1/shinde-chain/account"
	"github.com/Siasom1/shinde-chain/chainspec"
	"github.com/Siasom1/shinde-chain/core/blockchain"
	"github.com/Siasom1/shinde-chain/core/genesis"
	"github.com/Siasom1/shinde-chain/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testNode struct {
	spec  *chainspec.Spec
	chain *blockchain.Blockchain
	state *state.State
	srv   *httptest.Server
}

func newTestNode(t *testing.T) *testNode {
	t.Helper()

	alice := account.MustFromSeed("Alice")
	spec, err := chainspec.NewBuilder([]byte{0x00, 0x61, 0x73, 0x6d}, chainspec.Extensions{}).
		WithName("Test Chain").
		WithID("test").
		WithChainType(chainspec.Development).
		WithProperties(chainspec.Properties{SS58Format: 42, TokenDecimals: 12, TokenSymbol: "SHINDE"}).
		WithGenesis(genesis.Descriptor{Supply: big.NewInt(1000), Authority: alice}).
		Build()
	require.NoError(t, err)

	g, err := spec.BuildGenesis()
	require.NoError(t, err)
	st, err := state.NewMemoryState()
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	_, err = st.CommitGenesis(g)
	require.NoError(t, err)

	block, err := spec.GenesisBlock()
	require.NoError(t, err)
	chain, err := blockchain.NewBlockchain(blockchain.DefaultChainConfig(t.TempDir(), spec.ID, block))
	require.NoError(t, err)

	server := NewRPCServer("127.0.0.1:0", NewHandlers(spec, chain, st), nil)
	srv := httptest.NewServer(server.Handler())
	t.Cleanup(srv.Close)

	return &testNode{spec: spec, chain: chain, state: st, srv: srv}
}

type rawResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result"`
	Error   *RPCError       `json:"error"`
	ID      json.RawMessage `json:"id"`
}

func (n *testNode) call(t *testing.T, method string, params ...interface{}) rawResponse {
	t.Helper()
	if params == nil {
		params = []interface{}{}
	}
	body, err := json.Marshal(map[string]interface{}{
		"jsonrpc": "2.0",
		"method":  method,
		"params":  params,
		"id":      7,
	})
	require.NoError(t, err)

	resp, err := http.Post(n.srv.URL, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out rawResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "2.0", out.JSONRPC)
	return out
}

func TestSystemMethods(t *testing.T) {
	n := newTestNode(t)

	res := n.call(t, "system_name")
	require.Nil(t, res.Error)
	assert.JSONEq(t, `"Shinde Node"`, string(res.Result))
	assert.JSONEq(t, `7`, string(res.ID))

	res = n.call(t, "system_chain")
	assert.JSONEq(t, `"Test Chain"`, string(res.Result))

	res = n.call(t, "system_chainType")
	assert.JSONEq(t, `"Development"`, string(res.Result))

	res = n.call(t, "system_properties")
	assert.JSONEq(t, `{"ss58Format":42,"tokenDecimals":12,"tokenSymbol":"SHINDE"}`, string(res.Result))

	res = n.call(t, "system_version")
	assert.Nil(t, res.Error)
}

func TestChainMethods(t *testing.T) {
	n := newTestNode(t)
	want := n.chain.GenesisHash().Hex()

	res := n.call(t, "chain_getBlockHash", 0)
	require.Nil(t, res.Error)
	assert.JSONEq(t, `"`+want+`"`, string(res.Result))

	res = n.call(t, "chain_getBlockHash", "0x0")
	assert.JSONEq(t, `"`+want+`"`, string(res.Result))

	res = n.call(t, "chain_getBlockHash")
	assert.JSONEq(t, `"`+want+`"`, string(res.Result))

	res = n.call(t, "chain_getBlockHash", 5)
	require.NotNil(t, res.Error)
	assert.Equal(t, codeServerError, res.Error.Code)

	res = n.call(t, "chain_getBlockHash", -1)
	require.NotNil(t, res.Error)
	assert.Equal(t, codeInvalidParams, res.Error.Code)

	res = n.call(t, "chain_getHeader", want)
	require.Nil(t, res.Error)
	var header struct {
		Number    uint64 `json:"number"`
		StateRoot string `json:"stateRoot"`
	}
	require.NoError(t, json.Unmarshal(res.Result, &header))
	assert.Equal(t, uint64(0), header.Number)

	root, err := n.state.GenesisRoot()
	require.NoError(t, err)
	assert.Equal(t, root.Hex(), header.StateRoot)
}

func TestShindeMethods(t *testing.T) {
	n := newTestNode(t)
	alice := account.MustFromSeed("Alice")

	res := n.call(t, "shinde_getBalance", alice.String())
	require.Nil(t, res.Error)
	assert.JSONEq(t, `1000`, string(res.Result))

	res = n.call(t, "shinde_getBalance", alice.Hex())
	assert.JSONEq(t, `1000`, string(res.Result))

	res = n.call(t, "shinde_getBalance", account.MustFromSeed("Bob").String())
	assert.JSONEq(t, `0`, string(res.Result))

	res = n.call(t, "shinde_getBalance", "not-an-address")
	require.NotNil(t, res.Error)
	assert.Equal(t, codeInvalidParams, res.Error.Code)

	res = n.call(t, "shinde_getBalance")
	require.NotNil(t, res.Error)
	assert.Equal(t, codeInvalidParams, res.Error.Code)

	res = n.call(t, "shinde_sudoKey")
	require.Nil(t, res.Error)
	assert.JSONEq(t, `"`+alice.String()+`"`, string(res.Result))
}

func TestGenSyncSpec(t *testing.T) {
	n := newTestNode(t)

	res := n.call(t, "sync_state_genSyncSpec", true)
	require.Nil(t, res.Error)

	spec, err := chainspec.Decode(bytes.NewReader(res.Result))
	require.NoError(t, err)
	assert.Equal(t, n.spec.ID, spec.ID)

	a, err := spec.GenesisHash()
	require.NoError(t, err)
	assert.Equal(t, n.chain.GenesisHash(), a)

	res = n.call(t, "sync_state_genSyncSpec", "yes")
	require.NotNil(t, res.Error)
	assert.Equal(t, codeInvalidParams, res.Error.Code)
}

func TestProtocolErrors(t *testing.T) {
	n := newTestNode(t)

	res := n.call(t, "eth_chainId")
	require.NotNil(t, res.Error)
	assert.Equal(t, codeMethodNotFound, res.Error.Code)

	resp, err := http.Post(n.srv.URL, "application/json", bytes.NewReader([]byte("{")))
	require.NoError(t, err)
	defer resp.Body.Close()
	var out rawResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.NotNil(t, out.Error)
	assert.Equal(t, codeParseError, out.Error.Code)

	resp, err = http.Post(n.srv.URL, "application/json",
		bytes.NewReader([]byte(`{"jsonrpc":"2.0","method":"system_name","params":{"a":1},"id":1}`)))
	require.NoError(t, err)
	defer resp.Body.Close()
	out = rawResponse{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.NotNil(t, out.Error)
	assert.Equal(t, codeInvalidParams, out.Error.Code)

	get, err := http.Get(n.srv.URL)
	require.NoError(t, err)
	get.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, get.StatusCode)
}

func TestServerStartStop(t *testing.T) {
	server := NewRPCServer("127.0.0.1:0", map[string]RPCHandler{
		"ping": func(params []interface{}) (interface{}, error) { return "pong", nil },
	}, nil)
	require.NoError(t, server.Start())

	resp, err := http.Post("http://"+server.Addr(), "application/json",
		bytes.NewReader([]byte(`{"jsonrpc":"2.0","method":"ping","id":1}`)))
	require.NoError(t, err)
	var out rawResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	resp.Body.Close()
	assert.JSONEq(t, `"pong"`, string(out.Result))

	require.NoError(t, server.Stop(context.Background()))
}
