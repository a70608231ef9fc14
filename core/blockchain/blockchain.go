package blockchain

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Siasom1/shinde-chain/core/types"
	"github.com/ethereum/go-ethereum/common"
)

var (
	// ErrGenesisMismatch means the data directory belongs to another chain.
	ErrGenesisMismatch = errors.New("stored genesis does not match chain spec")
	ErrNoGenesis       = errors.New("no genesis block configured")
	ErrBlockNotFound   = errors.New("block not found")
)

// --------------------------------------------------------
// Blockchain struct
// --------------------------------------------------------

type Blockchain struct {
	dataDir string
	genesis *types.Block
	head    *types.Block

	// true als block #0 bij deze start is geschreven
	created bool
}

// --------------------------------------------------------
// Constructor
// --------------------------------------------------------

// NewBlockchain opens the chain under cfg.ChainDir(). On first start the genesis
// block is written; afterwards the stored block #0 must hash to cfg.Genesis.
func NewBlockchain(cfg ChainConfig) (*Blockchain, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Genesis == nil || cfg.Genesis.Header == nil {
		return nil, ErrNoGenesis
	}

	bc := &Blockchain{
		dataDir: filepath.Join(cfg.ChainDir(), "chaindata"),
		genesis: cfg.Genesis,
	}

	if err := os.MkdirAll(bc.dataDir, 0o755); err != nil {
		return nil, err
	}

	head, err := bc.loadHead()
	if err != nil {
		return nil, err
	}

	if head == nil {
		// ------------------------------------------------
		// FIRST START → GENESIS
		// ------------------------------------------------
		if err := bc.SetHead(cfg.Genesis); err != nil {
			return nil, fmt.Errorf("write genesis: %w", err)
		}
		bc.created = true
		return bc, nil
	}

	stored, err := bc.LoadBlock(0)
	if err != nil {
		return nil, fmt.Errorf("load genesis: %w", err)
	}
	if want, got := cfg.Genesis.Hash(), stored.Hash(); want != got {
		return nil, fmt.Errorf("%w: have %s, spec %s", ErrGenesisMismatch, got, want)
	}

	// Bestaande chain
	bc.head = head
	return bc, nil
}

// Created reports whether this open wrote the genesis block.
func (bc *Blockchain) Created() bool {
	return bc.created
}

func (bc *Blockchain) Genesis() *types.Block {
	return bc.genesis
}

func (bc *Blockchain) GenesisHash() common.Hash {
	return bc.genesis.Hash()
}

// --------------------------------------------------------
// Head helpers
// --------------------------------------------------------

func (bc *Blockchain) Head() *types.Block {
	return bc.head
}

func (bc *Blockchain) SetHead(block *types.Block) error {
	if err := bc.saveBlock(block); err != nil {
		return err
	}
	bc.head = block
	return bc.saveHead()
}

func (bc *Blockchain) saveHead() error {
	return writeJSON(filepath.Join(bc.dataDir, "head.json"), bc.head)
}

func (bc *Blockchain) loadHead() (*types.Block, error) {
	path := filepath.Join(bc.dataDir, "head.json")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	return readBlock(path)
}

// --------------------------------------------------------
// Block storage
// --------------------------------------------------------

func (bc *Blockchain) blockPath(number uint64) string {
	return filepath.Join(bc.dataDir, fmt.Sprintf("block_%d.json", number))
}

func (bc *Blockchain) saveBlock(block *types.Block) error {
	return writeJSON(bc.blockPath(block.Number()), block)
}

// LoadBlock reads a stored block by number.
func (bc *Blockchain) LoadBlock(number uint64) (*types.Block, error) {
	b, err := readBlock(bc.blockPath(number))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: #%d", ErrBlockNotFound, number)
	}
	return b, err
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func readBlock(path string) (*types.Block, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var b types.Block
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, err
	}
	if b.Header == nil {
		return nil, fmt.Errorf("%s: block without header", path)
	}
	return &b, nil
}
