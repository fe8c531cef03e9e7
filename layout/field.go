package layout

import (
	"fmt"
	"math"

	"github.com/wippyai/bitlayout/errors"
	"github.com/wippyai/bitlayout/shape"
)

// Field is one placement within a layout: a shape at a bit offset.
// The zero Field has no shape and is rejected wherever a field is expected.
type Field struct {
	shape  any
	offset int
	width  int
}

// NewField validates shp and offset and returns the field.
func NewField(shp any, offset int) (Field, error) {
	s, err := shape.Cast(shp)
	if err != nil {
		return Field{}, errors.New(errors.PhaseField, errors.KindInvalidArgument).
			Value(shp).
			Cause(err).
			Detail("field shape must be a shape-castable object, not %v", shp).
			Build()
	}
	if offset < 0 {
		return Field{}, errors.InvalidArgument(errors.PhaseField, offset,
			"field offset must be a non-negative integer, not %d", offset)
	}
	if offset > math.MaxInt-s.Width {
		return Field{}, errors.OutOfRange(errors.PhaseField, offset,
			"field of %d bit(s) at offset %d ends past the largest representable bit", s.Width, offset)
	}
	return Field{shape: shp, offset: offset, width: s.Width}, nil
}

// MustField is like NewField but panics on error.
func MustField(shp any, offset int) Field {
	f, err := NewField(shp, offset)
	if err != nil {
		panic(err)
	}
	return f
}

// Shape returns the shape the field was declared with, before casting.
func (f Field) Shape() any {
	return f.shape
}

// Offset returns the bit offset of the field.
func (f Field) Offset() int {
	return f.offset
}

// Width returns the bit width of the field's shape.
func (f Field) Width() int {
	return f.width
}

// End returns the first bit past the field.
func (f Field) End() int {
	return f.offset + f.width
}

// IsZero reports whether f is the zero Field.
func (f Field) IsZero() bool {
	return f.shape == nil
}

// Equal reports whether f and o have the same shape and offset.
func (f Field) Equal(o Field) bool {
	return f.offset == o.offset && shapesEqual(f.shape, o.shape)
}

func (f Field) String() string {
	return fmt.Sprintf("Field(%v, %d)", f.shape, f.offset)
}

func shapesEqual(a, b any) bool {
	if shape.Same(a, b) {
		return true
	}
	if la, ok := a.(Layout); ok {
		return Equal(la, b)
	}
	if lb, ok := b.(Layout); ok {
		return Equal(lb, a)
	}
	return false
}
