package genesis

import (
	"math/big"

	"github.com/Siasom1/shinde-chain/core/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
)

// Used for RLP encoding of the state commitment
type rlpState struct {
	Code     []byte
	Balances []rlpBalance
	Sudo     []byte
}

type rlpBalance struct {
	Account [32]byte
	Amount  *big.Int
}

// Encode returns the canonical byte encoding of the state. Balances keep their
// genesis order.
func (s *State) Encode() ([]byte, error) {
	data := rlpState{
		Code:     s.Code,
		Balances: make([]rlpBalance, len(s.Balances)),
	}
	for i, b := range s.Balances {
		data.Balances[i] = rlpBalance{Account: b.Account, Amount: b.Amount}
	}
	if s.Sudo != nil {
		data.Sudo = s.Sudo.Bytes()
	}
	return rlp.EncodeToBytes(data)
}

// Root is keccak256 over Encode; it is the state root of the genesis header.
func (s *State) Root() (common.Hash, error) {
	enc, err := s.Encode()
	if err != nil {
		return common.Hash{}, err
	}
	return crypto.Keccak256Hash(enc), nil
}

// Block returns the genesis block committing to this state.
func (s *State) Block() (*types.Block, error) {
	root, err := s.Root()
	if err != nil {
		return nil, err
	}
	return types.NewGenesisBlock(root), nil
}
