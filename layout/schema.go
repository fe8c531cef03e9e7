package layout

import (
	"github.com/wippyai/bitlayout/bits"
	"github.com/wippyai/bitlayout/errors"
)

// Flavor selects how a schema places its members.
type Flavor uint8

const (
	FlavorStruct Flavor = iota
	FlavorUnion
)

func (f Flavor) String() string {
	if f == FlavorUnion {
		return "union"
	}
	return "struct"
}

// Schema is a named aggregate with one fixed layout, computed when the
// schema is defined and shared by every instance.
type Schema struct {
	name   string
	flavor Flavor
	layout Layout
}

// DefineStruct defines a struct-flavored schema. Member order fixes the
// offsets.
func DefineStruct(name string, list ...Member) (*Schema, error) {
	return define(name, FlavorStruct, list)
}

// DefineUnion defines a union-flavored schema.
func DefineUnion(name string, list ...Member) (*Schema, error) {
	return define(name, FlavorUnion, list)
}

// MustDefineStruct is like DefineStruct but panics on error. It is meant
// for package-level schema declarations.
func MustDefineStruct(name string, list ...Member) *Schema {
	s, err := DefineStruct(name, list...)
	if err != nil {
		panic(err)
	}
	return s
}

// MustDefineUnion is like DefineUnion but panics on error.
func MustDefineUnion(name string, list ...Member) *Schema {
	s, err := DefineUnion(name, list...)
	if err != nil {
		panic(err)
	}
	return s
}

func define(name string, flavor Flavor, list []Member) (*Schema, error) {
	var (
		l   Layout
		err error
	)
	switch flavor {
	case FlavorUnion:
		l, err = NewUnionLayout(list...)
	default:
		l, err = NewStructLayout(list...)
	}
	if err != nil {
		return nil, errors.New(errors.PhaseSchema, errors.KindInvalidArgument).
			Path(name).
			Cause(err).
			Detail("define %s %s", flavor, name).
			Build()
	}
	return &Schema{name: name, flavor: flavor, layout: l}, nil
}

// Name returns the schema name.
func (s *Schema) Name() string { return s.name }

// Flavor reports whether the schema is a struct or a union.
func (s *Schema) Flavor() Flavor { return s.flavor }

// Layout returns the schema's fixed layout.
func (s *Schema) Layout() Layout { return s.layout }

// AsShape reduces the schema to its layout.
func (s *Schema) AsShape() any { return s.layout }

// New returns an instance over freshly allocated zero bits.
func (s *Schema) New() *View {
	return &View{orig: s, layout: s.layout, value: bits.New(s.layout.Size())}
}

// Bind returns an instance over value, which must be exactly as wide as the
// schema's layout.
func (s *Schema) Bind(value any) (*View, error) {
	if value == nil {
		return nil, errors.InvalidArgument(errors.PhaseSchema, value,
			"%s instance target must be a bit-vector-castable object, not nil", s.name)
	}
	return NewView(s, value)
}

func (s *Schema) String() string {
	return s.name
}
