// Package chainspec binds a genesis descriptor to the metadata of a network and
// serializes both into the JSON chain specification nodes boot from.
//
// A Spec stores how to build genesis, not a snapshot of it: every node regenerates
// the state from the embedded runtime code and the descriptor, and so arrives at the
// same genesis hash.
package chainspec

import (
	"bytes"
	"math/big"

	"github.com/Siasom1/shinde-chain/core/genesis"
	"github.com/Siasom1/shinde-chain/core/types"
	"github.com/ethereum/go-ethereum/common"
)

// Properties are display hints for wallets and explorers.
type Properties struct {
	SS58Format    uint16 `json:"ss58Format"`
	TokenDecimals uint8  `json:"tokenDecimals"`
	TokenSymbol   string `json:"tokenSymbol"`
}

// Spec is a chain specification.
type Spec struct {
	Name       string
	ID         string
	ChainType  ChainType
	BootNodes  []string
	ProtocolID string
	// ForkID is a free-form provenance string distinguishing chains that share
	// a genesis.
	ForkID     string
	Properties *Properties
	Extensions Extensions

	genesis genesis.Descriptor
}

// Genesis returns a copy of the genesis descriptor.
func (s *Spec) Genesis() genesis.Descriptor {
	return cloneDescriptor(s.genesis)
}

// Code returns a copy of the runtime code blob.
func (s *Spec) Code() []byte {
	return bytes.Clone(s.genesis.Code)
}

// BuildGenesis regenerates the genesis state from the descriptor.
func (s *Spec) BuildGenesis() (*genesis.State, error) {
	return genesis.BuildFromDescriptor(s.genesis)
}

func (s *Spec) GenesisBlock() (*types.Block, error) {
	st, err := s.BuildGenesis()
	if err != nil {
		return nil, err
	}
	return st.Block()
}

func (s *Spec) GenesisHash() (common.Hash, error) {
	block, err := s.GenesisBlock()
	if err != nil {
		return common.Hash{}, err
	}
	return block.Hash(), nil
}

func cloneDescriptor(d genesis.Descriptor) genesis.Descriptor {
	out := genesis.Descriptor{
		Code:      bytes.Clone(d.Code),
		Authority: d.Authority,
	}
	if d.Supply != nil {
		out.Supply = new(big.Int).Set(d.Supply)
	}
	for _, a := range d.Allocations {
		alloc := genesis.Allocation{Account: a.Account}
		if a.Amount != nil {
			alloc.Amount = new(big.Int).Set(a.Amount)
		}
		out.Allocations = append(out.Allocations, alloc)
	}
	return out
}
