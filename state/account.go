package state

import (
	"math/big"

	"github.com/Siasom1/shinde-chain/account"
)

// Account is een simpele account-representatie in de state.
type Account struct {
	Address account.ID `json:"address"`
	Balance *big.Int   `json:"balance"`
	Nonce   uint64     `json:"nonce"`
}

// NewAccount maakt een nieuwe lege account.
func NewAccount(id account.ID) *Account {
	return &Account{
		Address: id,
		Balance: big.NewInt(0),
		Nonce:   0,
	}
}
