package chainspec

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ChainType classifies a network.
type ChainType string

const (
	// Development is a single-node, throwaway chain.
	Development ChainType = "Development"
	// Local is a multi-node chain run on one host or a private network.
	Local ChainType = "Local"
	// Live is a public network.
	Live ChainType = "Live"
)

var ErrInvalidChainType = errors.New("invalid chain type")

// Custom returns a user defined chain type. It serializes as {"Custom": name}.
// Empty names and the names of the built-in types are rejected.
func Custom(name string) (ChainType, error) {
	t := ChainType(name)
	if name == "" || !t.IsCustom() {
		return "", fmt.Errorf("%w: custom name %q", ErrInvalidChainType, name)
	}
	return t, nil
}

func (c ChainType) IsCustom() bool {
	switch c {
	case Development, Local, Live:
		return false
	}
	return true
}

func (c ChainType) String() string {
	if c.IsCustom() {
		return "Custom(" + string(c) + ")"
	}
	return string(c)
}

func (c ChainType) MarshalJSON() ([]byte, error) {
	if c == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidChainType)
	}
	if c.IsCustom() {
		return json.Marshal(map[string]string{"Custom": string(c)})
	}
	return json.Marshal(string(c))
}

func (c *ChainType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		t := ChainType(name)
		if t.IsCustom() {
			return fmt.Errorf("%w: %q", ErrInvalidChainType, name)
		}
		*c = t
		return nil
	}

	var custom map[string]string
	if err := json.Unmarshal(data, &custom); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidChainType, data)
	}
	name, ok := custom["Custom"]
	if !ok || len(custom) != 1 {
		return fmt.Errorf("%w: %s", ErrInvalidChainType, data)
	}
	t, err := Custom(name)
	if err != nil {
		return err
	}
	*c = t
	return nil
}
