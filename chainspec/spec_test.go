package chainspec

import (
	"bytes"
	"encoding/json"
	"math/big"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Siasom1/shinde-chain/account"
	"github.com/Siasom1/shinde-chain/core/genesis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCode = []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

func testDescriptor() genesis.Descriptor {
	return genesis.Descriptor{
		Supply:    big.NewInt(1_000_000),
		Authority: account.MustFromSeed("Alice"),
	}
}

func testSpec(t *testing.T) *Spec {
	t.Helper()
	ext := Extensions{Telemetry: TelemetryEndpoints{{URL: "wss://telemetry.example/submit/", Verbosity: 0}}}
	spec, err := NewBuilder(testCode, ext).
		WithName("Test Development").
		WithID("test-dev").
		WithChainType(Development).
		WithForkID("born today").
		WithProtocolID("test").
		WithBootNodes("/ip4/127.0.0.1/tcp/30333/p2p/12D3KooWEyoppNCUx8Yx66oV9fJnriXwCcXwDDUA2kj6vnc6iDEp").
		WithProperties(Properties{SS58Format: 42, TokenDecimals: 12, TokenSymbol: "TEST"}).
		WithGenesis(testDescriptor()).
		Build()
	require.NoError(t, err)
	return spec
}

func TestBuildMissingCode(t *testing.T) {
	for _, code := range [][]byte{nil, {}} {
		spec, err := NewBuilder(code, Extensions{}).
			WithName("x").
			WithGenesis(testDescriptor()).
			Build()
		assert.ErrorIs(t, err, genesis.ErrMissingRuntimeCode)
		assert.Nil(t, spec)
	}
}

func TestBuildUsesBuilderCode(t *testing.T) {
	d := testDescriptor()
	d.Code = []byte{0xde, 0xad}

	spec, err := NewBuilder(testCode, Extensions{}).WithGenesis(d).Build()
	require.NoError(t, err)
	assert.Equal(t, testCode, spec.Code())
	assert.Equal(t, Live, spec.ChainType)

	st, err := spec.BuildGenesis()
	require.NoError(t, err)
	assert.Equal(t, testCode, []byte(st.Code))
}

func TestBuildIsolatesInputs(t *testing.T) {
	code := append([]byte(nil), testCode...)
	d := testDescriptor()
	b := NewBuilder(code, Extensions{}).WithGenesis(d)

	code[0] = 0xff
	d.Supply.SetInt64(5)

	first, err := b.Build()
	require.NoError(t, err)
	second, err := b.WithName("changed").Build()
	require.NoError(t, err)

	assert.Equal(t, testCode, first.Code())
	assert.Equal(t, "", first.Name)
	assert.Equal(t, "changed", second.Name)
	assert.Equal(t, int64(1_000_000), first.Genesis().Supply.Int64())
}

func TestGenesisHashDeterministic(t *testing.T) {
	a, err := testSpec(t).GenesisHash()
	require.NoError(t, err)
	b, err := testSpec(t).GenesisHash()
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestJSONRoundTrip(t *testing.T) {
	spec := testSpec(t)
	require.NoError(t, spec.Extensions.Set("badBlocks", []string{"0x01"}))

	data, err := spec.JSON(true)
	require.NoError(t, err)

	decoded, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, spec.Name, decoded.Name)
	assert.Equal(t, spec.ID, decoded.ID)
	assert.Equal(t, spec.ChainType, decoded.ChainType)
	assert.Equal(t, spec.ForkID, decoded.ForkID)
	assert.Equal(t, spec.ProtocolID, decoded.ProtocolID)
	assert.Equal(t, spec.BootNodes, decoded.BootNodes)
	assert.Equal(t, spec.Properties, decoded.Properties)
	assert.Equal(t, spec.Extensions.Telemetry, decoded.Extensions.Telemetry)
	assert.Equal(t, []string{"badBlocks"}, decoded.Extensions.Names())

	want, err := spec.GenesisHash()
	require.NoError(t, err)
	got, err := decoded.GenesisHash()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	again, err := decoded.JSON(true)
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(again))
}

func TestJSONLayout(t *testing.T) {
	data, err := testSpec(t).JSON(false)
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.JSONEq(t, `"Development"`, string(doc["chainType"]))
	assert.JSONEq(t, `"born today"`, string(doc["forkId"]))
	assert.JSONEq(t, `1`, string(doc["specVersion"]))
	assert.JSONEq(t, `{"version":1,"telemetry":[["wss://telemetry.example/submit/",0]]}`, string(doc["extensions"]))
	assert.Contains(t, string(doc["genesis"]), `"runtimeGenesis"`)
	assert.Contains(t, string(doc["genesis"]), `"code":"0x0061736d01000000"`)
}

func TestJSONOptionalFields(t *testing.T) {
	spec, err := NewBuilder(testCode, Extensions{}).WithGenesis(testDescriptor()).Build()
	require.NoError(t, err)

	data, err := spec.JSON(false)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"forkId":null`)
	assert.Contains(t, string(data), `"protocolId":null`)
	assert.Contains(t, string(data), `"bootNodes":[]`)
	assert.Contains(t, string(data), `"extensions":{"version":1}`)
}

func TestDecodeRejectsNewerVersion(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"specVersion": 99, "name": "x"}`))
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestDecodeRejectsMissingCode(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"specVersion":1,"name":"x","id":"x","chainType":"Live","genesis":{}}`))
	assert.ErrorIs(t, err, genesis.ErrMissingRuntimeCode)

	_, err = Decode(strings.NewReader(`{"specVersion":1,"name":"x","id":"x","chainType":"Live","genesis":{"runtimeGenesis":{"code":"0x"}}}`))
	assert.ErrorIs(t, err, genesis.ErrMissingRuntimeCode)
}

func TestDecodeRejectsMissingSudo(t *testing.T) {
	doc := `{"specVersion":1,"name":"x","id":"x","chainType":"Live","genesis":{"runtimeGenesis":` +
		`{"code":"0x00","config":{"balances":{"balances":[["5E2dY5eu1fz1AyyBnG9NSwpWtAxRhve8Q88aDrfu6DwHQQii",1]],"totalIssuance":1}}}}}`
	_, err := Decode(strings.NewReader(doc))
	assert.ErrorIs(t, err, genesis.ErrMissingAuthority)
}

func TestBuildGenesisRejectsZeroAuthority(t *testing.T) {
	spec, err := NewBuilder(testCode, Extensions{}).
		WithGenesis(genesis.Descriptor{Supply: big.NewInt(1)}).
		Build()
	require.NoError(t, err)

	_, err = spec.BuildGenesis()
	assert.ErrorIs(t, err, genesis.ErrMissingAuthority)
}

func TestDecodeInvalidAuthority(t *testing.T) {
	doc := `{"specVersion":1,"name":"x","id":"x","chainType":"Live","genesis":{"runtimeGenesis":` +
		`{"code":"0x00","config":{"balances":{"balances":[],"totalIssuance":1},"sudo":{"key":"5notAnAddress"}}}}}`
	_, err := Decode(strings.NewReader(doc))
	assert.ErrorIs(t, err, account.ErrInvalidAddress)
}

func TestWriteAndLoadFile(t *testing.T) {
	spec := testSpec(t)
	path := filepath.Join(t.TempDir(), "spec.json")
	require.NoError(t, spec.WriteFile(path))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, spec.Name, loaded.Name)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
