package params

import (
	"math/big"
)

// ------------------------------------------------------------
// NATIVE SHINDE SUPPLY
// ------------------------------------------------------------
//
// SHINDE has 12 decimals, so 1 SHINDE = 10^12 base units.
//
// Total supply: 589,552,695,333,683 SHINDE, all of it allocated to
// the sudo account at genesis.
// ------------------------------------------------------------

const (
	TokenSymbol   = "SHINDE"
	TokenDecimals = 12

	// WholeTokenSupply is the total supply in whole SHINDE.
	WholeTokenSupply uint64 = 589_552_695_333_683
)

// UnitsPerToken returns 10^TokenDecimals.
func UnitsPerToken() *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(TokenDecimals), nil)
}

// TotalSupply returns the total supply in base units. A fresh value is returned on
// every call so callers can never alter the constant.
func TotalSupply() *big.Int {
	return new(big.Int).Mul(new(big.Int).SetUint64(WholeTokenSupply), UnitsPerToken())
}

// ------------------------------------------------------------
// PRIVILEGED AUTHORITY
// ------------------------------------------------------------
//
// The sudo key of every Shinde network. The private key is held offline;
// never derive this account from a seed.
// ------------------------------------------------------------

const SudoAddress = "5E2dY5eu1fz1AyyBnG9NSwpWtAxRhve8Q88aDrfu6DwHQQii"

// GenesisForkID marks the provenance of every Shinde chain spec.
const GenesisForkID = "shinde is born - 19 May -2025"
