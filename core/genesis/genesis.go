// Package genesis builds the block-zero ledger state of a Shinde network: the runtime
// code, the initial balances and the sudo key.
//
// Construction is pure. A Descriptor is the small value a chain spec stores; Build
// turns it into a State, and identical descriptors always produce byte-identical
// states (see State.Root).
package genesis

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"

	"github.com/Siasom1/shinde-chain/account"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

var (
	ErrMissingRuntimeCode = errors.New("runtime code unavailable")
	ErrInvalidSupply      = errors.New("total supply must be positive")
	ErrInvalidAmount      = errors.New("allocation amount must be positive")
	ErrDuplicateAccount   = errors.New("duplicate genesis account")
	ErrSupplyMismatch     = errors.New("allocations do not sum to total supply")
	ErrMissingAuthority   = errors.New("genesis sudo key missing")
)

// Allocation is one initial balance. It serializes as ["<ss58>", amount].
type Allocation struct {
	Account account.ID
	Amount  *big.Int
}

// Descriptor describes a genesis state without building it.
type Descriptor struct {
	Code      hexutil.Bytes
	Supply    *big.Int
	Authority account.ID

	// Allocations distributes Supply. Empty means the whole supply goes to
	// Authority.
	Allocations []Allocation
}

// State is the ledger at block zero.
type State struct {
	Code     hexutil.Bytes `json:"code"`
	Balances []Allocation  `json:"balances"`
	Sudo     *account.ID   `json:"sudo"`
}

// Build creates the single-recipient genesis: authority holds the whole supply and
// is the sudo key.
func Build(code []byte, supply *big.Int, authority account.ID) (*State, error) {
	return BuildFromDescriptor(Descriptor{
		Code:      code,
		Supply:    supply,
		Authority: authority,
	})
}

// BuildFromDescriptor validates d and builds its state. The returned state shares no
// memory with d.
func BuildFromDescriptor(d Descriptor) (*State, error) {
	if len(d.Code) == 0 {
		return nil, ErrMissingRuntimeCode
	}
	if d.Supply == nil || d.Supply.Sign() <= 0 {
		return nil, ErrInvalidSupply
	}
	if d.Authority.IsZero() {
		return nil, ErrMissingAuthority
	}

	allocs := d.allocations()
	balances := make([]Allocation, 0, len(allocs))
	seen := make(map[account.ID]struct{}, len(allocs))
	total := new(big.Int)

	for _, a := range allocs {
		if a.Amount == nil || a.Amount.Sign() <= 0 {
			return nil, fmt.Errorf("%w: %s", ErrInvalidAmount, a.Account)
		}
		if _, ok := seen[a.Account]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAccount, a.Account)
		}
		seen[a.Account] = struct{}{}

		total.Add(total, a.Amount)
		balances = append(balances, Allocation{
			Account: a.Account,
			Amount:  new(big.Int).Set(a.Amount),
		})
	}

	if total.Cmp(d.Supply) != 0 {
		return nil, fmt.Errorf("%w: allocated %s, supply %s", ErrSupplyMismatch, total, d.Supply)
	}

	sudo := d.Authority
	return &State{
		Code:     bytes.Clone(d.Code),
		Balances: balances,
		Sudo:     &sudo,
	}, nil
}

func (d Descriptor) allocations() []Allocation {
	if len(d.Allocations) > 0 {
		return d.Allocations
	}
	return []Allocation{{Account: d.Authority, Amount: d.Supply}}
}

// TotalIssuance is the sum of all balances.
func (s *State) TotalIssuance() *big.Int {
	total := new(big.Int)
	for _, b := range s.Balances {
		total.Add(total, b.Amount)
	}
	return total
}

// Balance returns the genesis balance of id, zero when it has none.
func (s *State) Balance(id account.ID) *big.Int {
	for _, b := range s.Balances {
		if b.Account == id {
			return new(big.Int).Set(b.Amount)
		}
	}
	return new(big.Int)
}

// Authorities lists the privileged accounts; at most one.
func (s *State) Authorities() []account.ID {
	if s.Sudo == nil {
		return nil
	}
	return []account.ID{*s.Sudo}
}
