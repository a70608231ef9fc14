// Package account derives and encodes the 32-byte account identities used in the
// genesis state. Identities come either from a secret URI (development seeds such as
// "Alice") or from their canonical SS58 text.
package account

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// IDLength is the size of an account identifier in bytes.
const IDLength = 32

// ID is a public-key derived account identifier (AccountId32).
type ID [IDLength]byte

var ErrInvalidLength = errors.New("account id must be 32 bytes")

// BytesToID copies b into an ID. b must be exactly IDLength bytes.
func BytesToID(b []byte) (ID, error) {
	var id ID
	if len(b) != IDLength {
		return id, fmt.Errorf("%w: got %d", ErrInvalidLength, len(b))
	}
	copy(id[:], b)
	return id, nil
}

func (id ID) Bytes() []byte {
	return bytes.Clone(id[:])
}

func (id ID) Hex() string {
	return hexutil.Encode(id[:])
}

// SS58 returns the checksummed text encoding of id for the given network format.
func (id ID) SS58(format Format) string {
	return encodeSS58(format, id[:])
}

// String returns the SS58 text in the generic Substrate format.
func (id ID) String() string {
	return id.SS58(GenericFormat)
}

func (id ID) IsZero() bool {
	return id == ID{}
}

func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText accepts SS58 text of any network format.
func (id *ID) UnmarshalText(text []byte) error {
	decoded, _, err := Decode(string(text))
	if err != nil {
		return err
	}
	*id = decoded
	return nil
}
