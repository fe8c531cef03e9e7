package layout

import (
	"fmt"
	"iter"
	"math"

	"go.uber.org/zap"

	"github.com/wippyai/bitlayout/errors"
	"github.com/wippyai/bitlayout/shape"
)

// ArrayLayout is length elements of one shape, element i at i*width.
// Fields are generated on demand rather than stored.
type ArrayLayout struct {
	elem      any
	elemWidth int
	length    int
}

// NewArrayLayout builds an array layout.
func NewArrayLayout(elem any, length int) (*ArrayLayout, error) {
	s, err := shape.Cast(elem)
	if err != nil {
		return nil, errors.New(errors.PhaseLayout, errors.KindInvalidArgument).
			Value(elem).
			Cause(err).
			Detail("array layout element shape must be a shape-castable object, not %v", elem).
			Build()
	}
	if length < 0 {
		return nil, errors.InvalidArgument(errors.PhaseLayout, length,
			"array layout length must be a non-negative integer, not %d", length)
	}
	if s.Width > 0 && length > math.MaxInt/s.Width {
		return nil, errors.OutOfRange(errors.PhaseLayout, length,
			"array layout of %d element(s) of %d bit(s) exceeds the largest representable size", length, s.Width)
	}
	Logger().Debug("layout built",
		zap.String("kind", "array"),
		zap.Int("length", length),
		zap.Int("size", s.Width*length))
	return &ArrayLayout{elem: elem, elemWidth: s.Width, length: length}, nil
}

// Elem returns the element shape.
func (l *ArrayLayout) Elem() any { return l.elem }

// ElemWidth returns the bit width of one element.
func (l *ArrayLayout) ElemWidth() int { return l.elemWidth }

// Len returns the number of elements.
func (l *ArrayLayout) Len() int { return l.length }

// Size is ElemWidth() * Len().
func (l *ArrayLayout) Size() int { return l.elemWidth * l.length }

// AsShape reduces the layout to an unsigned shape of its size.
func (l *ArrayLayout) AsShape() any { return shape.Unsigned(l.Size()) }

// Fields yields indices 0..Len()-1.
func (l *ArrayLayout) Fields() iter.Seq2[any, Field] {
	return func(yield func(any, Field) bool) {
		for i := range l.length {
			if !yield(i, l.field(i)) {
				return
			}
		}
	}
}

// Lookup returns element key. Negative keys count from the end, so -1 is
// the last element; keys outside [-Len(), Len()) are not found.
func (l *ArrayLayout) Lookup(key any) (Field, error) {
	i, ok := intKey(key)
	if !ok {
		return Field{}, errors.InvalidArgument(errors.PhaseLayout, key,
			"cannot index array layout with %v", errors.FormatKey(key))
	}
	if i < -l.length || i >= l.length {
		return Field{}, errors.NotFound(errors.PhaseLayout, "index", key)
	}
	if i < 0 {
		i += l.length
	}
	return l.field(i), nil
}

func (l *ArrayLayout) field(i int) Field {
	return Field{shape: l.elem, offset: i * l.elemWidth, width: l.elemWidth}
}

func (l *ArrayLayout) String() string {
	return fmt.Sprintf("ArrayLayout(%v, %d)", l.elem, l.length)
}
