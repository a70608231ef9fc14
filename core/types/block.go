package types

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
)

// ------------------------------------------------------------
// Block Header
// ------------------------------------------------------------

type Header struct {
	ParentHash     common.Hash `json:"parentHash"`
	Number         uint64      `json:"number"`
	Timestamp      uint64      `json:"timestamp"`
	StateRoot      common.Hash `json:"stateRoot"`
	ExtrinsicsRoot common.Hash `json:"extrinsicsRoot"`
}

// Hash is keccak256 over the RLP encoding of the header.
func (h *Header) Hash() common.Hash {
	data, err := rlp.EncodeToBytes(h)
	if err != nil {
		// every field is fixed size; encoding cannot fail
		panic(err)
	}
	return crypto.Keccak256Hash(data)
}

// ------------------------------------------------------------
// Block
// ------------------------------------------------------------

type Block struct {
	Header *Header `json:"header"`
}

func (b *Block) Hash() common.Hash {
	return b.Header.Hash()
}

func (b *Block) Number() uint64 {
	return b.Header.Number
}

// ------------------------------------------------------------
// GENESIS BLOCK
// ------------------------------------------------------------

// NewGenesisBlock builds block #0 for the given state root. The header carries no
// wall-clock time so every node derives the same hash from the same state.
func NewGenesisBlock(stateRoot common.Hash) *Block {
	header := &Header{
		ParentHash:     common.Hash{},
		Number:         0,
		Timestamp:      0,
		StateRoot:      stateRoot,
		ExtrinsicsRoot: common.Hash{},
	}

	return &Block{Header: header}
}
