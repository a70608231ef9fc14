package genesis

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/Siasom1/shinde-chain/account"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

func (a Allocation) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{a.Account, a.Amount})
}

func (a *Allocation) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("balance entry must be [account, amount], got %d items", len(pair))
	}
	if err := json.Unmarshal(pair[0], &a.Account); err != nil {
		return err
	}
	a.Amount = new(big.Int)
	return json.Unmarshal(pair[1], a.Amount)
}

// descriptorJSON mirrors the runtime genesis config layout: pallet name, then the
// pallet's own fields.
type descriptorJSON struct {
	Code   hexutil.Bytes `json:"code"`
	Config struct {
		Balances struct {
			Balances      []Allocation `json:"balances"`
			TotalIssuance *big.Int     `json:"totalIssuance"`
		} `json:"balances"`
		Sudo struct {
			Key *account.ID `json:"key"`
		} `json:"sudo"`
	} `json:"config"`
}

// MarshalJSON always writes the allocation list explicitly, so a serialized
// descriptor does not depend on the single-recipient default.
func (d Descriptor) MarshalJSON() ([]byte, error) {
	var out descriptorJSON
	out.Code = d.Code
	out.Config.Balances.Balances = d.allocations()
	out.Config.Balances.TotalIssuance = d.Supply
	authority := d.Authority
	out.Config.Sudo.Key = &authority
	return json.Marshal(out)
}

func (d *Descriptor) UnmarshalJSON(data []byte) error {
	var in descriptorJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if len(in.Code) == 0 {
		return ErrMissingRuntimeCode
	}
	// an absent key must not fall back to the zero account
	if in.Config.Sudo.Key == nil {
		return ErrMissingAuthority
	}
	*d = Descriptor{
		Code:        in.Code,
		Supply:      in.Config.Balances.TotalIssuance,
		Authority:   *in.Config.Sudo.Key,
		Allocations: in.Config.Balances.Balances,
	}
	return nil
}
