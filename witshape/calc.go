package witshape

import (
	"fmt"
	mathbits "math/bits"

	"go.bytecodealliance.org/wit"
	"go.uber.org/zap"

	"github.com/wippyai/bitlayout/errors"
	"github.com/wippyai/bitlayout/layout"
	"github.com/wippyai/bitlayout/shape"
)

const (
	handleWidth  = 32
	pointerWidth = 32
	charWidth    = 21
)

// Calculator converts WIT types and caches the result per type definition.
// It is not safe for concurrent use.
type Calculator struct {
	cache map[*wit.TypeDef]any
}

func NewCalculator() *Calculator {
	return &Calculator{
		cache: make(map[*wit.TypeDef]any),
	}
}

// Shape returns the shape of t: a shape.Shape for scalars, a layout.Layout
// for aggregates.
func (c *Calculator) Shape(t wit.Type) (any, error) {
	switch typ := t.(type) {
	case wit.Bool:
		return shape.Unsigned(1), nil
	case wit.U8:
		return shape.Unsigned(8), nil
	case wit.S8:
		return shape.Signed(8), nil
	case wit.U16:
		return shape.Unsigned(16), nil
	case wit.S16:
		return shape.Signed(16), nil
	case wit.U32, wit.F32:
		return shape.Unsigned(32), nil
	case wit.S32:
		return shape.Signed(32), nil
	case wit.U64, wit.F64:
		return shape.Unsigned(64), nil
	case wit.S64:
		return shape.Signed(64), nil
	case wit.Char:
		return shape.Unsigned(charWidth), nil
	case wit.String:
		return pointerPair()
	case *wit.TypeDef:
		return c.typeDef(typ)
	case nil:
		return nil, errors.InvalidArgument(errors.PhaseWIT, nil, "missing WIT type")
	default:
		return nil, errors.Unsupported(errors.PhaseWIT, fmt.Sprintf("WIT type %T has no bit layout", t))
	}
}

// Layout is Shape for types that must convert to a layout.
func (c *Calculator) Layout(t wit.Type) (layout.Layout, error) {
	s, err := c.Shape(t)
	if err != nil {
		return nil, err
	}
	l, ok := s.(layout.Layout)
	if !ok {
		return nil, errors.InvalidArgument(errors.PhaseWIT, t, "WIT type %s is a scalar %v, not an aggregate", typeName(t), s)
	}
	return l, nil
}

// Size returns the bit width of t.
func (c *Calculator) Size(t wit.Type) (int, error) {
	s, err := c.Shape(t)
	if err != nil {
		return 0, err
	}
	cast, err := shape.Cast(s)
	if err != nil {
		return 0, err
	}
	return cast.Width, nil
}

// Schema defines a named schema for a record or flags type definition.
func (c *Calculator) Schema(def *wit.TypeDef) (*layout.Schema, error) {
	if def == nil {
		return nil, errors.InvalidArgument(errors.PhaseWIT, nil, "missing WIT type definition")
	}
	name := typeName(def)
	if def.Name == nil {
		return nil, errors.InvalidArgument(errors.PhaseWIT, def, "anonymous %s cannot define a schema", name)
	}

	var list []layout.Member
	switch kind := def.Kind.(type) {
	case *wit.Record:
		members, err := c.recordMembers(kind)
		if err != nil {
			return nil, withPath(err, name)
		}
		list = members
	case *wit.Flags:
		list = flagMembers(kind)
	default:
		return nil, errors.Unsupported(errors.PhaseWIT,
			fmt.Sprintf("only records and flags define schemas, %s is a %s", name, kindName(def.Kind)))
	}
	return layout.DefineStruct(name, list...)
}

func (c *Calculator) typeDef(t *wit.TypeDef) (any, error) {
	if cached, ok := c.cache[t]; ok {
		return cached, nil
	}

	var (
		s   any
		err error
	)

	switch kind := t.Kind.(type) {
	case *wit.Record:
		s, err = c.record(kind)
	case *wit.Flags:
		s, err = layout.NewStructLayout(flagMembers(kind)...)
	case *wit.Enum:
		s = shape.Unsigned(tagWidth(len(kind.Cases)))
	case *wit.Tuple:
		s, err = c.tuple(kind)
	case *wit.Option:
		s, err = c.option(kind)
	case *wit.Result:
		s, err = c.result(kind)
	case *wit.Variant:
		s, err = c.variant(kind)
	case *wit.List:
		s, err = pointerPair()
	case *wit.Own, *wit.Borrow:
		s = shape.Unsigned(handleWidth)
	case wit.Type:
		s, err = c.Shape(kind)
	default:
		err = errors.Unsupported(errors.PhaseWIT,
			fmt.Sprintf("WIT %s %s has no bit layout", kindName(t.Kind), typeName(t)))
	}
	if err != nil {
		if t.Name != nil {
			err = withPath(err, *t.Name)
		}
		return nil, err
	}

	Logger().Debug("wit type converted",
		zap.String("type", typeName(t)),
		zap.String("kind", kindName(t.Kind)),
		zap.Stringer("shape", stringer{s}))

	c.cache[t] = s
	return s, nil
}

func (c *Calculator) recordMembers(r *wit.Record) ([]layout.Member, error) {
	list := make([]layout.Member, 0, len(r.Fields))
	for _, f := range r.Fields {
		s, err := c.Shape(f.Type)
		if err != nil {
			return nil, withPath(err, f.Name)
		}
		list = append(list, layout.Member{Name: f.Name, Shape: s})
	}
	return list, nil
}

func (c *Calculator) record(r *wit.Record) (layout.Layout, error) {
	list, err := c.recordMembers(r)
	if err != nil {
		return nil, err
	}
	return layout.NewStructLayout(list...)
}

func flagMembers(f *wit.Flags) []layout.Member {
	list := make([]layout.Member, 0, len(f.Flags))
	for _, flag := range f.Flags {
		list = append(list, layout.Member{Name: flag.Name, Shape: shape.Unsigned(1)})
	}
	return list
}

func (c *Calculator) tuple(t *wit.Tuple) (layout.Layout, error) {
	placements := make([]layout.Placement, 0, len(t.Types))
	offset := 0
	for i, typ := range t.Types {
		s, err := c.Shape(typ)
		if err != nil {
			return nil, withPath(err, fmt.Sprint(i))
		}
		f, err := layout.NewField(s, offset)
		if err != nil {
			return nil, err
		}
		placements = append(placements, layout.Placement{Key: i, Field: f})
		offset = f.End()
	}
	return layout.NewFlexibleLayout(offset, placements...)
}

func (c *Calculator) option(o *wit.Option) (layout.Layout, error) {
	s, err := c.Shape(o.Type)
	if err != nil {
		return nil, withPath(err, "value")
	}
	return layout.NewStructLayout(
		layout.Member{Name: "is_some", Shape: shape.Unsigned(1)},
		layout.Member{Name: "value", Shape: s},
	)
}

func (c *Calculator) result(r *wit.Result) (layout.Layout, error) {
	var cases []layout.Member
	for _, arm := range []struct {
		name string
		typ  wit.Type
	}{{"ok", r.OK}, {"err", r.Err}} {
		if arm.typ == nil {
			continue
		}
		s, err := c.Shape(arm.typ)
		if err != nil {
			return nil, withPath(err, arm.name)
		}
		cases = append(cases, layout.Member{Name: arm.name, Shape: s})
	}
	payload, err := layout.NewUnionLayout(cases...)
	if err != nil {
		return nil, err
	}
	return layout.NewStructLayout(
		layout.Member{Name: "is_err", Shape: shape.Unsigned(1)},
		layout.Member{Name: "payload", Shape: payload},
	)
}

func (c *Calculator) variant(v *wit.Variant) (layout.Layout, error) {
	var cases []layout.Member
	for _, cs := range v.Cases {
		if cs.Type == nil {
			continue
		}
		s, err := c.Shape(cs.Type)
		if err != nil {
			return nil, withPath(err, cs.Name)
		}
		cases = append(cases, layout.Member{Name: cs.Name, Shape: s})
	}
	payload, err := layout.NewUnionLayout(cases...)
	if err != nil {
		return nil, err
	}
	return layout.NewStructLayout(
		layout.Member{Name: "tag", Shape: shape.Unsigned(tagWidth(len(v.Cases)))},
		layout.Member{Name: "payload", Shape: payload},
	)
}

func pointerPair() (layout.Layout, error) {
	return layout.NewStructLayout(
		layout.Member{Name: "ptr", Shape: shape.Unsigned(pointerWidth)},
		layout.Member{Name: "len", Shape: shape.Unsigned(pointerWidth)},
	)
}

// tagWidth is the number of bits needed to tell n cases apart.
func tagWidth(n int) int {
	if n <= 1 {
		return 0
	}
	return mathbits.Len(uint(n - 1))
}

// withPath prefixes the path of a structured error with name.
func withPath(err error, name string) error {
	e, ok := err.(*errors.Error)
	if !ok {
		return err
	}
	cp := *e
	cp.Path = append([]string{name}, e.Path...)
	return &cp
}

func typeName(t wit.Type) string {
	if def, ok := t.(*wit.TypeDef); ok {
		if def.Name != nil {
			return *def.Name
		}
		return "anonymous " + kindName(def.Kind)
	}
	return fmt.Sprintf("%T", t)
}

func kindName(k any) string {
	switch k.(type) {
	case *wit.Record:
		return "record"
	case *wit.Flags:
		return "flags"
	case *wit.Enum:
		return "enum"
	case *wit.Tuple:
		return "tuple"
	case *wit.Option:
		return "option"
	case *wit.Result:
		return "result"
	case *wit.Variant:
		return "variant"
	case *wit.List:
		return "list"
	case *wit.Own:
		return "own"
	case *wit.Borrow:
		return "borrow"
	case wit.Type:
		return "alias"
	default:
		return fmt.Sprintf("%T", k)
	}
}

type stringer struct{ v any }

func (s stringer) String() string { return fmt.Sprint(s.v) }
