package layout

import (
	"fmt"
	"iter"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/bitlayout/errors"
	"github.com/wippyai/bitlayout/shape"
)

// Member is one named, shaped entry of a struct or union layout.
type Member struct {
	Name  string
	Shape any
}

type namedField struct {
	name  string
	field Field
}

// members is the shared storage of struct and union layouts.
type members struct {
	fields []namedField
	index  map[string]int
	size   int
}

func buildMembers(kind string, list []Member, sequential bool) (members, error) {
	m := members{
		fields: make([]namedField, 0, len(list)),
		index:  make(map[string]int, len(list)),
	}
	offset := 0
	for _, mem := range list {
		if _, dup := m.index[mem.Name]; dup {
			return members{}, errors.New(errors.PhaseLayout, errors.KindInvalidArgument).
				Path(mem.Name).
				Value(mem.Name).
				Detail("%s layout member %q is declared more than once", kind, mem.Name).
				Build()
		}
		s, err := shape.Cast(mem.Shape)
		if err != nil {
			return members{}, errors.New(errors.PhaseLayout, errors.KindInvalidArgument).
				Path(mem.Name).
				Value(mem.Shape).
				Cause(err).
				Detail("%s layout member shape must be a shape-castable object, not %v", kind, mem.Shape).
				Build()
		}
		if sequential && offset > math.MaxInt-s.Width {
			return members{}, errors.New(errors.PhaseLayout, errors.KindOutOfRange).
				Path(mem.Name).
				Value(mem.Shape).
				Detail("%s layout member %q at bit %d exceeds the largest representable size", kind, mem.Name, offset).
				Build()
		}
		fieldOffset := 0
		if sequential {
			fieldOffset = offset
		}
		m.index[mem.Name] = len(m.fields)
		m.fields = append(m.fields, namedField{
			name:  mem.Name,
			field: Field{shape: mem.Shape, offset: fieldOffset, width: s.Width},
		})
		offset += s.Width
		m.size = max(m.size, fieldOffset+s.Width)
	}

	Logger().Debug("layout built",
		zap.String("kind", kind),
		zap.Int("fields", len(m.fields)),
		zap.Int("size", m.size))
	return m, nil
}

func (m *members) iterate() iter.Seq2[any, Field] {
	return func(yield func(any, Field) bool) {
		for _, nf := range m.fields {
			if !yield(nf.name, nf.field) {
				return
			}
		}
	}
}

func (m *members) lookup(key any) (Field, error) {
	name, ok := key.(string)
	if ok {
		if i, found := m.index[name]; found {
			return m.fields[i].field, nil
		}
	}
	return Field{}, errors.NotFound(errors.PhaseLayout, "field", key)
}

func (m *members) list() []Member {
	out := make([]Member, len(m.fields))
	for i, nf := range m.fields {
		out[i] = Member{Name: nf.name, Shape: nf.field.shape}
	}
	return out
}

func (m *members) format(kind string) string {
	var b strings.Builder
	b.WriteString(kind)
	b.WriteByte('{')
	for i, nf := range m.fields {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %v", nf.name, nf.field.shape)
	}
	b.WriteByte('}')
	return b.String()
}

// StructLayout places members back to back in declaration order, the first
// member at offset 0.
type StructLayout struct {
	m members
}

// NewStructLayout builds a struct layout from members in order.
func NewStructLayout(list ...Member) (*StructLayout, error) {
	m, err := buildMembers("struct", list, true)
	if err != nil {
		return nil, err
	}
	return &StructLayout{m: m}, nil
}

// Fields yields members in declaration order.
func (l *StructLayout) Fields() iter.Seq2[any, Field] { return l.m.iterate() }

// Lookup returns the field for a member name.
func (l *StructLayout) Lookup(key any) (Field, error) { return l.m.lookup(key) }

// Size is the end of the furthest member, or 0 without members.
func (l *StructLayout) Size() int { return l.m.size }

// Members returns the declared members in order.
func (l *StructLayout) Members() []Member { return l.m.list() }

// AsShape reduces the layout to an unsigned shape of its size.
func (l *StructLayout) AsShape() any { return shape.Unsigned(l.m.size) }

func (l *StructLayout) String() string { return l.m.format("StructLayout") }

// UnionLayout places every member at offset 0.
type UnionLayout struct {
	m members
}

// NewUnionLayout builds a union layout from members.
func NewUnionLayout(list ...Member) (*UnionLayout, error) {
	m, err := buildMembers("union", list, false)
	if err != nil {
		return nil, err
	}
	return &UnionLayout{m: m}, nil
}

// Fields yields members in declaration order.
func (l *UnionLayout) Fields() iter.Seq2[any, Field] { return l.m.iterate() }

// Lookup returns the field for a member name.
func (l *UnionLayout) Lookup(key any) (Field, error) { return l.m.lookup(key) }

// Size is the width of the widest member, or 0 without members.
func (l *UnionLayout) Size() int { return l.m.size }

// Members returns the declared members in order.
func (l *UnionLayout) Members() []Member { return l.m.list() }

// AsShape reduces the layout to an unsigned shape of its size.
func (l *UnionLayout) AsShape() any { return shape.Unsigned(l.m.size) }

func (l *UnionLayout) String() string { return l.m.format("UnionLayout") }
