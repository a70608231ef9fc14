package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"github.com/Siasom1/shinde-chain/account"
	"github.com/Siasom1/shinde-chain/core/genesis"
	"github.com/ethereum/go-ethereum/common"
	"github.com/syndtr/goleveldb/leveldb"
)

var (
	keyCode = []byte("meta:code")
	keySudo = []byte("meta:sudo")
	keyRoot = []byte("meta:genesisRoot")
)

// ErrAlreadyInitialized is returned when a genesis is committed twice.
var ErrAlreadyInitialized = errors.New("state already initialized")

// State is een hogere-level wrapper rond StateDB met makkelijke helpers.
type State struct {
	db *StateDB
}

// NewState opent StateDB en wrapped deze in State.
func NewState(path string) (*State, error) {
	db, err := NewStateDB(path)
	if err != nil {
		return nil, err
	}
	return &State{db: db}, nil
}

// NewMemoryState is NewState zonder disk.
func NewMemoryState() (*State, error) {
	db, err := NewMemoryStateDB()
	if err != nil {
		return nil, err
	}
	return &State{db: db}, nil
}

func (s *State) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// ------------------- GENESIS ---------------------

// CommitGenesis schrijft de genesis state in een enkele batch en geeft de root terug.
func (s *State) CommitGenesis(g *genesis.State) (common.Hash, error) {
	ok, err := s.Initialized()
	if err != nil {
		return common.Hash{}, err
	}
	if ok {
		return common.Hash{}, ErrAlreadyInitialized
	}

	root, err := g.Root()
	if err != nil {
		return common.Hash{}, fmt.Errorf("genesis root: %w", err)
	}

	batch := new(leveldb.Batch)
	for _, b := range g.Balances {
		acc := NewAccount(b.Account)
		acc.Balance = new(big.Int).Set(b.Amount)

		data, err := encodeAccount(acc)
		if err != nil {
			return common.Hash{}, err
		}
		batch.Put(accountKey(b.Account), data)
	}

	batch.Put(keyCode, g.Code)
	if g.Sudo != nil {
		batch.Put(keySudo, g.Sudo.Bytes())
	}
	batch.Put(keyRoot, root.Bytes())

	if err := s.db.write(batch); err != nil {
		return common.Hash{}, err
	}
	return root, nil
}

// Initialized meldt of er al een genesis is gecommit.
func (s *State) Initialized() (bool, error) {
	_, ok, err := s.db.get(keyRoot)
	return ok, err
}

// GenesisRoot is the root recorded by CommitGenesis.
func (s *State) GenesisRoot() (common.Hash, error) {
	data, ok, err := s.db.get(keyRoot)
	if err != nil {
		return common.Hash{}, err
	}
	if !ok {
		return common.Hash{}, leveldb.ErrNotFound
	}
	return common.BytesToHash(data), nil
}

// Code returns the stored runtime code.
func (s *State) Code() ([]byte, error) {
	data, ok, err := s.db.get(keyCode)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, genesis.ErrMissingRuntimeCode
	}
	return data, nil
}

// SudoKey returns the sudo account, if any.
func (s *State) SudoKey() (account.ID, bool, error) {
	data, ok, err := s.db.get(keySudo)
	if err != nil || !ok {
		return account.ID{}, false, err
	}
	id, err := account.BytesToID(data)
	if err != nil {
		return account.ID{}, false, err
	}
	return id, true, nil
}

// ------------------- READ ---------------------

func (s *State) GetBalance(id account.ID) (*big.Int, error) {
	acc, err := s.db.GetAccount(id)
	if err != nil {
		return nil, err
	}
	return acc.Balance, nil
}

func (s *State) GetNonce(id account.ID) (uint64, error) {
	acc, err := s.db.GetAccount(id)
	if err != nil {
		return 0, err
	}
	return acc.Nonce, nil
}

// TotalIssuance telt alle balances in de DB op.
func (s *State) TotalIssuance() (*big.Int, error) {
	it := s.db.accounts()
	defer it.Release()

	total := new(big.Int)
	for it.Next() {
		var acc Account
		if err := json.Unmarshal(it.Value(), &acc); err != nil {
			return nil, err
		}
		if acc.Balance != nil {
			total.Add(total, acc.Balance)
		}
	}
	if err := it.Error(); err != nil {
		return nil, err
	}
	return total, nil
}
