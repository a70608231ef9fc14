package state

import (
	"encoding/json"
	"math/big"

	"github.com/Siasom1/shinde-chain/account"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
)

var accountPrefix = []byte("account:")

// StateDB is de low-level LevelDB wrapper.
type StateDB struct {
	db *leveldb.DB
}

// NewStateDB opent de LevelDB op de gegeven path.
func NewStateDB(path string) (*StateDB, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, err
	}
	return &StateDB{db: db}, nil
}

// NewMemoryStateDB opent een LevelDB in het geheugen (tests, check-spec).
func NewMemoryStateDB() (*StateDB, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, err
	}
	return &StateDB{db: db}, nil
}

// Close sluit de DB.
func (s *StateDB) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func accountKey(id account.ID) []byte {
	return append(append([]byte{}, accountPrefix...), id[:]...)
}

func encodeAccount(acc *Account) ([]byte, error) {
	return json.Marshal(acc)
}

// GetAccount laadt een account, of maakt een nieuwe lege als hij niet bestaat.
func (s *StateDB) GetAccount(id account.ID) (*Account, error) {
	data, err := s.db.Get(accountKey(id), nil)
	if err == leveldb.ErrNotFound {
		// nieuw lege account
		return NewAccount(id), nil
	}
	if err != nil {
		return nil, err
	}

	var acc Account
	if err := json.Unmarshal(data, &acc); err != nil {
		return nil, err
	}

	if acc.Balance == nil {
		acc.Balance = big.NewInt(0)
	}

	return &acc, nil
}

func (s *StateDB) accounts() iterator.Iterator {
	return s.db.NewIterator(util.BytesPrefix(accountPrefix), nil)
}

func (s *StateDB) get(key []byte) ([]byte, bool, error) {
	data, err := s.db.Get(key, nil)
	if err == leveldb.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (s *StateDB) write(batch *leveldb.Batch) error {
	return s.db.Write(batch, &opt.WriteOptions{Sync: true})
}
