package shape

import (
	"fmt"
	"reflect"

	"github.com/wippyai/bitlayout/errors"
)

// MaxCastDepth bounds the number of AsShape unwraps performed by Cast.
const MaxCastDepth = 64

// Shape is a bit width plus signedness.
type Shape struct {
	Width  int
	Signed bool
}

// Unsigned returns an unsigned shape of the given width.
func Unsigned(width int) Shape {
	return Shape{Width: width}
}

// Signed returns a signed shape of the given width.
func Signed(width int) Shape {
	return Shape{Width: width, Signed: true}
}

func (s Shape) String() string {
	if s.Signed {
		return fmt.Sprintf("signed(%d)", s.Width)
	}
	return fmt.Sprintf("unsigned(%d)", s.Width)
}

// AsShape makes Shape itself Castable; it is the fixed point of every chain.
func (s Shape) AsShape() any {
	return s
}

// Castable is implemented by anything that can be reduced to a Shape,
// possibly through several intermediate objects.
type Castable interface {
	AsShape() any
}

// Cast reduces obj to a Shape.
func Cast(obj any) (Shape, error) {
	orig := obj
	for depth := 0; ; depth++ {
		switch v := obj.(type) {
		case Shape:
			if v.Width < 0 {
				return Shape{}, errors.InvalidArgument(errors.PhaseShape, orig,
					"shape width must be a non-negative integer, not %d", v.Width)
			}
			return v, nil
		case int:
			if v < 0 {
				return Shape{}, errors.InvalidArgument(errors.PhaseShape, orig,
					"width must be a non-negative integer, not %d", v)
			}
			return Unsigned(v), nil
		case Castable:
			if depth >= MaxCastDepth {
				return Shape{}, errors.InvalidArgument(errors.PhaseShape, orig,
					"object %v did not reduce to a shape within %d steps", orig, MaxCastDepth)
			}
			next := v.AsShape()
			if Same(next, obj) {
				return Shape{}, errors.InvalidArgument(errors.PhaseShape, orig,
					"object %v cannot be converted to a shape", orig)
			}
			obj = next
		default:
			return Shape{}, errors.InvalidArgument(errors.PhaseShape, orig,
				"object %v of type %s cannot be converted to a shape", orig, typeName(orig))
		}
	}
}

// IsCastable reports whether Cast(obj) would succeed.
func IsCastable(obj any) bool {
	_, err := Cast(obj)
	return err == nil
}

// Same reports whether a and b are the same object: == for comparable
// dynamic types, false otherwise. A comparable struct holding a
// non-comparable interface value compares as different.
func Same(a, b any) (same bool) {
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

// typeName returns "nil" for nil values, avoiding reflect.TypeOf(nil) panic.
func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}
