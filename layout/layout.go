package layout

import (
	"iter"
	"math"
	"reflect"

	"github.com/wippyai/bitlayout/errors"
	"github.com/wippyai/bitlayout/shape"
)

// Layout maps keys to fields within a fixed number of bits.
//
// Keys are strings for struct and union layouts, ints for array layouts,
// and either for flexible layouts.
type Layout interface {
	shape.Castable

	// Fields yields (key, field) pairs. The sequence is finite and may be
	// iterated any number of times.
	Fields() iter.Seq2[any, Field]

	// Lookup returns the field for key. Unknown keys fail with a not_found
	// error; keys of the wrong type fail with invalid_argument where the
	// layout distinguishes them.
	Lookup(key any) (Field, error)

	// Size returns the number of bits the layout describes.
	Size() int
}

// Cast reduces obj to a Layout by following AsShape.
func Cast(obj any) (Layout, error) {
	cur := obj
	for depth := 0; depth <= shape.MaxCastDepth; depth++ {
		if l, ok := cur.(Layout); ok {
			if isNilLayout(l) {
				return nil, errors.InvalidArgument(errors.PhaseLayout, obj, "nil %T is not a data layout", l)
			}
			return l, nil
		}
		c, ok := cur.(shape.Castable)
		if !ok {
			break
		}
		next := c.AsShape()
		if shape.Same(next, cur) {
			break
		}
		cur = next
	}
	b := errors.New(errors.PhaseLayout, errors.KindInvalidArgument).Value(obj)
	if _, err := shape.Cast(obj); err != nil {
		b.Cause(err)
	}
	return nil, b.Detail("object %v cannot be converted to a data layout", obj).Build()
}

// Of returns the object a view was constructed with, before it was cast to
// a layout. For schema instances this is the *Schema.
func Of(v any) (any, error) {
	view, ok := v.(*View)
	if !ok || view == nil {
		return nil, errors.InvalidArgument(errors.PhaseLayout, v, "object %v is not a data view", v)
	}
	return view.orig, nil
}

// Equal reports whether a and b describe the same layout: the same size and
// the same (key, field) pairs, in any order. b is cast to a layout first;
// anything that does not cast is not equal.
func Equal(a Layout, b any) bool {
	if a == nil {
		return false
	}
	lb, err := Cast(b)
	if err != nil || a.Size() != lb.Size() {
		return false
	}
	want := make(map[any]Field)
	for k, f := range a.Fields() {
		want[k] = f
	}
	n := 0
	for k, f := range lb.Fields() {
		n++
		g, ok := want[k]
		if !ok || !g.Equal(f) {
			return false
		}
	}
	return n == len(want)
}

// Keys returns the layout's keys formatted for diagnostics, in iteration
// order.
func Keys(l Layout) []string {
	var keys []string
	for k := range l.Fields() {
		keys = append(keys, errors.FormatKey(k))
	}
	return keys
}

// intKey normalizes any Go integer to int. Unsigned values beyond the int
// range saturate, so they are never found.
func intKey(key any) (int, bool) {
	switch k := key.(type) {
	case int:
		return k, true
	case int8:
		return int(k), true
	case int16:
		return int(k), true
	case int32:
		return int(k), true
	case int64:
		if k > math.MaxInt || k < math.MinInt {
			return math.MaxInt, true
		}
		return int(k), true
	case uint, uint8, uint16, uint32, uint64, uintptr:
		u := reflect.ValueOf(k).Uint()
		if u > math.MaxInt {
			return math.MaxInt, true
		}
		return int(u), true
	}
	return 0, false
}

func isNilLayout(l Layout) bool {
	rv := reflect.ValueOf(l)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
