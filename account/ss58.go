package account

import (
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"
)

// Format is an SS58 network prefix.
type Format uint16

const (
	// GenericFormat is the prefix shared by Substrate based chains without their own
	// registry entry. Addresses in this format start with "5".
	GenericFormat Format = 42

	maxFormat   Format = 16383
	checksumLen        = 2
)

var ss58Prefix = []byte("SS58PRE")

var (
	ErrInvalidAddress  = errors.New("invalid ss58 address")
	ErrBadBase58       = fmt.Errorf("%w: bad base58", ErrInvalidAddress)
	ErrBadLength       = fmt.Errorf("%w: bad length", ErrInvalidAddress)
	ErrInvalidPrefix   = fmt.Errorf("%w: invalid network prefix", ErrInvalidAddress)
	ErrInvalidChecksum = fmt.Errorf("%w: checksum mismatch", ErrInvalidAddress)
	ErrFormatMismatch  = fmt.Errorf("%w: unexpected network format", ErrInvalidAddress)
)

// Reserved reports whether f may not be used by any network.
func (f Format) Reserved() bool {
	return f == 46 || f == 47
}

func (f Format) bytes() []byte {
	if f < 64 {
		return []byte{byte(f)}
	}
	first := byte((f&0x00fc)>>2) | 0x40
	second := byte(f>>8) | byte(f&0x0003)<<6
	return []byte{first, second}
}

func decodeFormat(data []byte) (Format, int, error) {
	switch {
	case len(data) == 0:
		return 0, 0, ErrBadLength
	case data[0] < 64:
		return Format(data[0]), 1, nil
	case data[0] < 128:
		if len(data) < 2 {
			return 0, 0, ErrBadLength
		}
		lower := data[0]<<2 | data[1]>>6
		upper := data[1] & 0x3f
		return Format(lower) | Format(upper)<<8, 2, nil
	default:
		return 0, 0, ErrInvalidPrefix
	}
}

func ss58Checksum(data []byte) []byte {
	h, _ := blake2b.New512(nil)
	h.Write(ss58Prefix)
	h.Write(data)
	return h.Sum(nil)[:checksumLen]
}

func encodeSS58(format Format, payload []byte) string {
	data := append(format.bytes(), payload...)
	data = append(data, ss58Checksum(data)...)
	return base58.Encode(data)
}

// Decode parses SS58 text into an identity and the network format it was encoded
// for. Any structural or checksum problem is reported as ErrInvalidAddress.
func Decode(text string) (ID, Format, error) {
	var id ID

	data, err := base58.Decode(text)
	if err != nil {
		return id, 0, fmt.Errorf("%w: %v", ErrBadBase58, err)
	}
	if len(data) < 2 {
		return id, 0, ErrBadLength
	}

	format, prefixLen, err := decodeFormat(data)
	if err != nil {
		return id, 0, err
	}
	if format > maxFormat || format.Reserved() {
		return id, 0, fmt.Errorf("%w: %d", ErrInvalidPrefix, format)
	}
	if len(data) != prefixLen+IDLength+checksumLen {
		return id, 0, fmt.Errorf("%w: %d bytes", ErrBadLength, len(data))
	}

	body := data[:prefixLen+IDLength]
	sum := ss58Checksum(body)
	if sum[0] != data[len(body)] || sum[1] != data[len(body)+1] {
		return id, 0, ErrInvalidChecksum
	}

	copy(id[:], body[prefixLen:])
	return id, format, nil
}

// FromSS58 decodes text and requires it to be encoded for the given network format.
func FromSS58(text string, format Format) (ID, error) {
	id, got, err := Decode(text)
	if err != nil {
		return ID{}, err
	}
	if got != format {
		return ID{}, fmt.Errorf("%w: want %d, got %d", ErrFormatMismatch, format, got)
	}
	return id, nil
}
