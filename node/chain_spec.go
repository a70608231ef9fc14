package node

import (
	"fmt"

	"github.com/Siasom1/shinde-chain/account"
	"github.com/Siasom1/shinde-chain/chainspec"
	"github.com/Siasom1/shinde-chain/core/genesis"
	"github.com/Siasom1/shinde-chain/params"
	"github.com/Siasom1/shinde-chain/wasm"
)

// chainVariant is what differs between the named Shinde chain specs.
type chainVariant struct {
	name      string
	id        string
	chainType chainspec.ChainType
}

var (
	developmentVariant = chainVariant{params.DevelopmentName, params.DevelopmentID, chainspec.Development}
	localVariant       = chainVariant{params.LocalName, params.LocalID, chainspec.Local}
)

// DevelopmentChainSpec is the single-node Shinde development chain.
func DevelopmentChainSpec(code []byte) (*chainspec.Spec, error) {
	return buildChainSpec(code, developmentVariant, chainspec.Extensions{})
}

// LocalChainSpec is the multi-node Shinde local testnet.
func LocalChainSpec(code []byte) (*chainspec.Spec, error) {
	return buildChainSpec(code, localVariant, chainspec.Extensions{})
}

func buildChainSpec(code []byte, v chainVariant, ext chainspec.Extensions) (*chainspec.Spec, error) {
	if len(code) == 0 {
		return nil, fmt.Errorf("%s runtime code not available: %w", v.id, genesis.ErrMissingRuntimeCode)
	}

	desc, err := shindeGenesis()
	if err != nil {
		return nil, err
	}

	return chainspec.NewBuilder(code, ext).
		WithName(v.name).
		WithID(v.id).
		WithChainType(v.chainType).
		WithForkID(params.GenesisForkID).
		WithProtocolID(params.ProtocolID).
		WithProperties(chainspec.Properties{
			SS58Format:    params.SS58Format,
			TokenDecimals: params.TokenDecimals,
			TokenSymbol:   params.TokenSymbol,
		}).
		WithGenesis(desc).
		Build()
}

// shindeGenesis allocates the whole supply to the sudo account. The runtime code is
// filled in by the chain spec builder.
func shindeGenesis() (genesis.Descriptor, error) {
	sudo, err := account.FromSS58(params.SudoAddress, account.Format(params.SS58Format))
	if err != nil {
		return genesis.Descriptor{}, fmt.Errorf("sudo account %s: %w", params.SudoAddress, err)
	}

	return genesis.Descriptor{
		Supply:    params.TotalSupply(),
		Authority: sudo,
	}, nil
}

// LoadChainSpec resolves a --chain value: "dev" (or empty), "local", or a path to a
// JSON chain spec. Built-in specs use code; file specs carry their own.
func LoadChainSpec(id string, code []byte) (*chainspec.Spec, error) {
	switch id {
	case "", "dev":
		return DevelopmentChainSpec(code)
	case "local":
		return LocalChainSpec(code)
	default:
		return chainspec.LoadFile(id)
	}
}

// IsBuiltinChain reports whether id names a spec compiled into the node.
func IsBuiltinChain(id string) bool {
	return id == "" || id == "dev" || id == "local"
}

// ResolveChainSpec is LoadChainSpec reading runtime code only for built-in chains.
func ResolveChainSpec(id string, runtime wasm.Provider) (*chainspec.Spec, error) {
	var code []byte
	if IsBuiltinChain(id) {
		c, err := runtime.Code()
		if err != nil {
			return nil, fmt.Errorf("load runtime: %w", err)
		}
		code = c
	}
	return LoadChainSpec(id, code)
}
