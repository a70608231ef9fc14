package blockchain

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Siasom1/shinde-chain/core/types"
)

// ChainConfig defines where a chain instance lives and which genesis it expects.
// One data directory can hold several chains side by side, keyed by chain id.
type ChainConfig struct {
	DataDir string
	ChainID string

	// Genesis is block #0 as derived from the chain spec.
	Genesis *types.Block
}

// ErrInvalidChainID is returned for chain ids that cannot name a directory under
// <datadir>/chains.
var ErrInvalidChainID = errors.New("invalid chain id")

func DefaultChainConfig(dataDir, chainID string, genesis *types.Block) ChainConfig {
	return ChainConfig{
		DataDir: dataDir,
		ChainID: chainID,
		Genesis: genesis,
	}
}

// ChainDir is the per-chain root: <datadir>/chains/<id>.
func (c ChainConfig) ChainDir() string {
	return filepath.Join(c.DataDir, "chains", c.ChainID)
}

// Validate checks that the chain id is a single path element.
func (c ChainConfig) Validate() error {
	id := c.ChainID
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidChainID, id)
	}
	return nil
}
