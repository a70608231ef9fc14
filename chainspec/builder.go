package chainspec

import (
	"bytes"

	"github.com/Siasom1/shinde-chain/core/genesis"
)

// Builder assembles a Spec. Specs are Live unless WithChainType says otherwise.
type Builder struct {
	code []byte
	spec Spec
}

// NewBuilder starts a spec for the given runtime code and extensions.
func NewBuilder(code []byte, ext Extensions) *Builder {
	return &Builder{
		code: bytes.Clone(code),
		spec: Spec{
			ChainType:  Live,
			Extensions: ext.clone(),
		},
	}
}

func (b *Builder) WithName(name string) *Builder {
	b.spec.Name = name
	return b
}

func (b *Builder) WithID(id string) *Builder {
	b.spec.ID = id
	return b
}

func (b *Builder) WithChainType(t ChainType) *Builder {
	b.spec.ChainType = t
	return b
}

func (b *Builder) WithForkID(forkID string) *Builder {
	b.spec.ForkID = forkID
	return b
}

func (b *Builder) WithProtocolID(protocolID string) *Builder {
	b.spec.ProtocolID = protocolID
	return b
}

func (b *Builder) WithBootNodes(nodes ...string) *Builder {
	b.spec.BootNodes = append([]string(nil), nodes...)
	return b
}

func (b *Builder) WithProperties(p Properties) *Builder {
	b.spec.Properties = &p
	return b
}

// WithGenesis sets the genesis descriptor. Its Code is replaced by the builder's
// runtime code.
func (b *Builder) WithGenesis(d genesis.Descriptor) *Builder {
	b.spec.genesis = cloneDescriptor(d)
	return b
}

// Build returns the assembled spec, or genesis.ErrMissingRuntimeCode when the
// builder has no runtime code. The builder may be reused afterwards.
func (b *Builder) Build() (*Spec, error) {
	if len(b.code) == 0 {
		return nil, genesis.ErrMissingRuntimeCode
	}

	spec := b.spec
	spec.BootNodes = append([]string(nil), b.spec.BootNodes...)
	spec.Extensions = b.spec.Extensions.clone()
	if b.spec.Properties != nil {
		props := *b.spec.Properties
		spec.Properties = &props
	}
	spec.genesis = cloneDescriptor(b.spec.genesis)
	spec.genesis.Code = bytes.Clone(b.code)
	return &spec, nil
}
