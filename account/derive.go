package account

import (
	"crypto/ed25519"
	"crypto/sha512"
	"errors"
	"fmt"
	"strings"

	schnorrkel "github.com/ChainSafe/go-schnorrkel"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/pbkdf2"
)

// Scheme is the signature scheme a seed is expanded with.
type Scheme int

const (
	Sr25519 Scheme = iota
	Ed25519
)

var ErrKeyDerivation = errors.New("key derivation failed")

func (s Scheme) String() string {
	switch s {
	case Sr25519:
		return "sr25519"
	case Ed25519:
		return "ed25519"
	default:
		return fmt.Sprintf("scheme(%d)", int(s))
	}
}

func ParseScheme(name string) (Scheme, error) {
	switch strings.ToLower(name) {
	case "sr25519", "":
		return Sr25519, nil
	case "ed25519":
		return Ed25519, nil
	}
	return 0, fmt.Errorf("unknown signature scheme %q", name)
}

// FromSeed derives the sr25519 identity of a development seed such as "Alice". The
// seed is treated as the hard junction "//seed" under DevPhrase.
func FromSeed(seed string) (ID, error) {
	return FromSeedWithScheme(Sr25519, seed)
}

func FromSeedWithScheme(scheme Scheme, seed string) (ID, error) {
	return FromURI(scheme, "//"+seed)
}

// MustFromSeed is FromSeed for compile-time constant seeds. It panics on failure.
func MustFromSeed(seed string) ID {
	id, err := FromSeed(seed)
	if err != nil {
		panic(fmt.Sprintf("static seed %q: %v", seed, err))
	}
	return id
}

// FromURI derives the public identity named by a secret URI
// ("phrase//hard///password"). An empty phrase means DevPhrase; a 0x-prefixed phrase
// is a raw 32-byte seed.
func FromURI(scheme Scheme, suri string) (ID, error) {
	u, err := parseURI(suri)
	if err != nil {
		return ID{}, err
	}
	for _, j := range u.path {
		if !j.hard {
			return ID{}, fmt.Errorf("%w: soft junctions are not supported", ErrKeyDerivation)
		}
	}

	seed, err := miniSecret(u.phrase, u.password)
	if err != nil {
		return ID{}, err
	}

	switch scheme {
	case Sr25519:
		return sr25519Public(seed, u.path)
	case Ed25519:
		return ed25519Public(seed, u.path), nil
	}
	return ID{}, fmt.Errorf("%w: unsupported scheme %s", ErrKeyDerivation, scheme)
}

// miniSecret turns a BIP-39 phrase into the 32-byte seed Substrate tooling uses:
// PBKDF2-HMAC-SHA512 over the mnemonic entropy, salted with "mnemonic"+password.
func miniSecret(phrase, password string) ([32]byte, error) {
	var seed [32]byte

	if strings.HasPrefix(phrase, "0x") {
		raw, err := hexutil.Decode(phrase)
		if err != nil {
			return seed, fmt.Errorf("%w: %v", ErrKeyDerivation, err)
		}
		if len(raw) != len(seed) {
			return seed, fmt.Errorf("%w: raw seed must be 32 bytes, got %d", ErrKeyDerivation, len(raw))
		}
		copy(seed[:], raw)
		return seed, nil
	}

	entropy, err := bip39.EntropyFromMnemonic(phrase)
	if err != nil {
		return seed, fmt.Errorf("%w: %v", ErrKeyDerivation, err)
	}
	key := pbkdf2.Key(entropy, []byte("mnemonic"+password), 2048, 64, sha512.New)
	copy(seed[:], key[:32])
	return seed, nil
}

func sr25519Public(seed [32]byte, path []junction) (ID, error) {
	msk, err := schnorrkel.NewMiniSecretKeyFromRaw(seed)
	if err != nil {
		return ID{}, fmt.Errorf("%w: %v", ErrKeyDerivation, err)
	}
	sk := msk.ExpandEd25519()

	for _, j := range path {
		child, _, err := sk.HardDeriveMiniSecretKey([]byte{}, j.chainCode)
		if err != nil {
			return ID{}, fmt.Errorf("%w: %v", ErrKeyDerivation, err)
		}
		sk = child.ExpandEd25519()
	}

	pub, err := sk.Public()
	if err != nil {
		return ID{}, fmt.Errorf("%w: %v", ErrKeyDerivation, err)
	}
	return ID(pub.Encode()), nil
}

func ed25519Public(seed [32]byte, path []junction) ID {
	tag := scaleString("Ed25519HDKD")
	for _, j := range path {
		buf := make([]byte, 0, len(tag)+64)
		buf = append(buf, tag...)
		buf = append(buf, seed[:]...)
		buf = append(buf, j.chainCode[:]...)
		seed = blake2b.Sum256(buf)
	}

	var id ID
	pub := ed25519.NewKeyFromSeed(seed[:]).Public().(ed25519.PublicKey)
	copy(id[:], pub)
	return id
}
