package account

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// DevPhrase is the well-known mnemonic behind development accounts such as //Alice.
const DevPhrase = "bottom drive obey lake curtain smoke basket hold race lonely fit walk"

// junction is one hard step of a derivation path.
type junction struct {
	hard      bool
	chainCode [32]byte
}

// secretURI is a parsed "phrase//hard/soft///password" string.
type secretURI struct {
	phrase   string
	path     []junction
	password string
}

func parseURI(suri string) (*secretURI, error) {
	u := &secretURI{}

	if idx := strings.Index(suri, "///"); idx >= 0 {
		u.password = suri[idx+3:]
		suri = suri[:idx]
	}

	rest := suri
	if idx := strings.Index(suri, "/"); idx >= 0 {
		u.phrase, rest = suri[:idx], suri[idx:]
	} else {
		u.phrase, rest = suri, ""
	}
	u.phrase = strings.TrimSpace(u.phrase)
	if u.phrase == "" {
		u.phrase = DevPhrase
	}

	for rest != "" {
		j := junction{}
		rest = rest[1:]
		if strings.HasPrefix(rest, "/") {
			j.hard = true
			rest = rest[1:]
		}
		name := rest
		if idx := strings.Index(rest, "/"); idx >= 0 {
			name, rest = rest[:idx], rest[idx:]
		} else {
			rest = ""
		}
		if name == "" {
			return nil, fmt.Errorf("%w: empty path junction", ErrKeyDerivation)
		}
		j.chainCode = junctionChainCode(name)
		u.path = append(u.path, j)
	}
	return u, nil
}

// junctionChainCode maps a junction name to its 32-byte chain code: numeric names are
// little-endian u64, anything else is the SCALE encoded string, hashed when longer
// than 32 bytes.
func junctionChainCode(name string) [32]byte {
	var cc [32]byte
	if n, err := strconv.ParseUint(name, 10, 64); err == nil {
		binary.LittleEndian.PutUint64(cc[:8], n)
		return cc
	}
	enc := scaleString(name)
	if len(enc) > len(cc) {
		return blake2b.Sum256(enc)
	}
	copy(cc[:], enc)
	return cc
}

func scaleString(s string) []byte {
	return append(compactLength(uint64(len(s))), s...)
}

// compactLength is the SCALE compact encoding of n.
func compactLength(n uint64) []byte {
	switch {
	case n < 1<<6:
		return []byte{byte(n << 2)}
	case n < 1<<14:
		out := make([]byte, 2)
		binary.LittleEndian.PutUint16(out, uint16(n<<2|0b01))
		return out
	case n < 1<<30:
		out := make([]byte, 4)
		binary.LittleEndian.PutUint32(out, uint32(n<<2|0b10))
		return out
	}
	le := make([]byte, 8)
	binary.LittleEndian.PutUint64(le, n)
	size := 8
	for size > 4 && le[size-1] == 0 {
		size--
	}
	return append([]byte{byte(size-4)<<2 | 0b11}, le[:size]...)
}
