package layout

import (
	"fmt"
	"math"
	"strings"

	"github.com/wippyai/bitlayout/bits"
	"github.com/wippyai/bitlayout/errors"
	"github.com/wippyai/bitlayout/shape"
)

// View binds a layout to a bit-vector. The binding is fixed at
// construction; the bits themselves stay mutable.
type View struct {
	orig   any
	layout Layout
	value  *bits.Vector
}

// NewView binds l to value. l may be a Layout or anything that casts to
// one. A nil value allocates l.Size() zero bits; otherwise value must be
// bit-vector-castable and exactly l.Size() bits wide.
func NewView(l any, value any) (*View, error) {
	cast, err := Cast(l)
	if err != nil {
		return nil, errors.New(errors.PhaseView, errors.KindInvalidArgument).
			Value(l).
			Cause(err).
			Detail("view layout must be a Layout, not %v", l).
			Build()
	}

	var vec *bits.Vector
	if value == nil {
		vec = bits.New(cast.Size())
	} else {
		vec, err = bits.Cast(value)
		if err != nil {
			return nil, errors.New(errors.PhaseView, errors.KindInvalidArgument).
				Value(value).
				Cause(err).
				Detail("view target must be a bit-vector-castable object").
				Build()
		}
		if vec.Len() != cast.Size() {
			return nil, errors.SizeMismatch(errors.PhaseView, vec.Len(), cast.Size())
		}
	}
	return &View{orig: l, layout: cast, value: vec}, nil
}

// AsValue returns the bound bit-vector.
func (v *View) AsValue() *bits.Vector {
	return v.value
}

// Layout returns the layout the view was cast to.
func (v *View) Layout() Layout {
	return v.layout
}

// Assign copies other into the bound bit-vector.
func (v *View) Assign(other any) error {
	return v.value.Assign(other)
}

// Index resolves key to the bits of one field.
//
// On array views a bit-vector-castable key selects an element at run time
// by its unsigned value. Other keys go through Layout.Lookup. The result is
// a *View when the field shape is a layout or schema, a signed vector when
// the shape is signed, and the plain slice otherwise.
func (v *View) Index(key any) (bits.Castable, error) {
	var (
		shp   any
		slice *bits.Vector
		err   error
	)

	dyn, dynamic := key.(bits.Castable)
	if arr, ok := v.layout.(*ArrayLayout); ok && dynamic {
		idx, castErr := bits.Cast(dyn)
		if castErr != nil {
			return nil, castErr
		}
		slice, err = v.value.WordSelect(dynamicIndex(idx), arr.ElemWidth())
		if err != nil {
			return nil, err
		}
		shp = arr.Elem()
	} else {
		if dynamic {
			return nil, errors.InvalidArgument(errors.PhaseView, key,
				"only array-layout views accept dynamic indices, not %v", v.layout)
		}
		field, lookupErr := v.layout.Lookup(key)
		if lookupErr != nil {
			return nil, lookupErr
		}
		slice, err = v.value.Slice(field.Offset(), field.End())
		if err != nil {
			return nil, err
		}
		shp = field.Shape()
	}

	return wrap(shp, slice)
}

func dynamicIndex(idx *bits.Vector) int {
	n := idx.AsUnsigned().Big()
	if !n.IsInt64() || n.Int64() > math.MaxInt {
		return math.MaxInt
	}
	return int(n.Int64())
}

func wrap(shp any, slice *bits.Vector) (bits.Castable, error) {
	switch s := shp.(type) {
	case *Schema:
		inst, err := s.Bind(slice)
		if err != nil {
			return nil, err
		}
		return inst, nil
	case Layout:
		sub, err := NewView(s, slice)
		if err != nil {
			return nil, err
		}
		return sub, nil
	}
	cast, err := shape.Cast(shp)
	if err != nil {
		return nil, err
	}
	if cast.Signed {
		return slice.AsSigned(), nil
	}
	return slice, nil
}

// Field is Index for names. An unknown name fails with a not_found error
// listing every declared key; a name starting with an underscore is
// reserved and fails with invalid_argument even if the layout has it.
func (v *View) Field(name string) (bits.Castable, error) {
	item, err := v.Index(name)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, errors.New(errors.PhaseView, errors.KindNotFound).
				Path(name).
				Value(name).
				Cause(err).
				Detail("field not found: view of %v does not have a field %q; did you mean one of: %s?",
					v.layout, name, strings.Join(Keys(v.layout), ", ")).
				Build()
		}
		return nil, err
	}
	if strings.HasPrefix(name, "_") {
		return nil, errors.New(errors.PhaseView, errors.KindInvalidArgument).
			Path(name).
			Value(name).
			Detail("field %q has a reserved name and may only be accessed by indexing", name).
			Build()
	}
	return item, nil
}

// Sub resolves key and requires the result to be a nested view.
func (v *View) Sub(key any) (*View, error) {
	item, err := v.Index(key)
	if err != nil {
		return nil, err
	}
	sub, ok := item.(*View)
	if !ok {
		return nil, errors.InvalidArgument(errors.PhaseView, key,
			"field %s is a scalar, not a nested layout", errors.FormatKey(key))
	}
	return sub, nil
}

// Value resolves key and returns the field's bits as a vector, whatever
// the field shape.
func (v *View) Value(key any) (*bits.Vector, error) {
	item, err := v.Index(key)
	if err != nil {
		return nil, err
	}
	return item.AsValue(), nil
}

func (v *View) String() string {
	return fmt.Sprintf("View(%v, %v)", v.orig, v.value)
}
