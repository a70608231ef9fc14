package chainspec

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Siasom1/shinde-chain/core/genesis"
)

// SpecVersion is the chain spec format this package reads and writes.
const SpecVersion = 1

var ErrUnsupportedVersion = errors.New("unsupported chain spec version")

type specJSON struct {
	SpecVersion int         `json:"specVersion"`
	Name        string      `json:"name"`
	ID          string      `json:"id"`
	ChainType   ChainType   `json:"chainType"`
	BootNodes   []string    `json:"bootNodes"`
	ProtocolID  *string     `json:"protocolId"`
	ForkID      *string     `json:"forkId"`
	Properties  *Properties `json:"properties"`
	Extensions  Extensions  `json:"extensions"`
	Genesis     genesisJSON `json:"genesis"`
}

type genesisJSON struct {
	RuntimeGenesis *genesis.Descriptor `json:"runtimeGenesis"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (s Spec) MarshalJSON() ([]byte, error) {
	d := s.genesis
	out := specJSON{
		SpecVersion: SpecVersion,
		Name:        s.Name,
		ID:          s.ID,
		ChainType:   s.ChainType,
		BootNodes:   s.BootNodes,
		ProtocolID:  optional(s.ProtocolID),
		ForkID:      optional(s.ForkID),
		Properties:  s.Properties,
		Extensions:  s.Extensions,
		Genesis:     genesisJSON{RuntimeGenesis: &d},
	}
	if out.BootNodes == nil {
		out.BootNodes = []string{}
	}
	return json.Marshal(out)
}

func (s *Spec) UnmarshalJSON(data []byte) error {
	var in specJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if in.SpecVersion > SpecVersion {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, in.SpecVersion)
	}
	if in.Genesis.RuntimeGenesis == nil || len(in.Genesis.RuntimeGenesis.Code) == 0 {
		return genesis.ErrMissingRuntimeCode
	}

	*s = Spec{
		Name:       in.Name,
		ID:         in.ID,
		ChainType:  in.ChainType,
		BootNodes:  in.BootNodes,
		Properties: in.Properties,
		Extensions: in.Extensions,
		genesis:    *in.Genesis.RuntimeGenesis,
	}
	if in.ProtocolID != nil {
		s.ProtocolID = *in.ProtocolID
	}
	if in.ForkID != nil {
		s.ForkID = *in.ForkID
	}
	if s.ChainType == "" {
		s.ChainType = Live
	}
	return nil
}

// JSON encodes the spec, indented when pretty is set.
func (s *Spec) JSON(pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(s, "", "  ")
	}
	return json.Marshal(s)
}

// WriteFile stores the pretty-printed spec at path.
func (s *Spec) WriteFile(path string) error {
	data, err := s.JSON(true)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Decode reads a spec from r.
func Decode(r io.Reader) (*Spec, error) {
	var s Spec
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode chain spec: %w", err)
	}
	return &s, nil
}

func LoadFile(path string) (*Spec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(f)
}
