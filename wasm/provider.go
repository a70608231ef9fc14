// Package wasm supplies the runtime code blob embedded in genesis. The blob is read
// once at process start and passed explicitly to everything that needs it.
package wasm

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/Siasom1/shinde-chain/core/genesis"
)

// ErrCodeUnavailable is returned when no usable runtime code exists. It matches
// genesis.ErrMissingRuntimeCode with errors.Is.
var ErrCodeUnavailable = fmt.Errorf("wasm: %w", genesis.ErrMissingRuntimeCode)

// Provider yields the runtime code. The returned slice belongs to the caller.
type Provider interface {
	Code() ([]byte, error)
}

// Static serves code held in memory.
type Static []byte

func (s Static) Code() ([]byte, error) {
	if len(s) == 0 {
		return nil, ErrCodeUnavailable
	}
	return bytes.Clone(s), nil
}

// FileProvider reads code from a compiled runtime on disk.
type FileProvider struct {
	Path string
}

func (p FileProvider) Code() ([]byte, error) {
	if p.Path == "" {
		return nil, fmt.Errorf("%w: no runtime path configured", ErrCodeUnavailable)
	}
	code, err := os.ReadFile(p.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s does not exist", ErrCodeUnavailable, p.Path)
	}
	if err != nil {
		return nil, err
	}
	if len(code) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrCodeUnavailable, p.Path)
	}
	return code, nil
}
