package layout

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/bitlayout/errors"
	"github.com/wippyai/bitlayout/shape"
)

// Placement assigns an explicit field to a key in a flexible layout.
// Key is a string or a non-negative integer.
type Placement struct {
	Key   any
	Field Field
}

// FlexibleLayout has a fixed size and explicitly placed fields that may
// overlap or leave gaps. Every field lies within the size.
type FlexibleLayout struct {
	size   int
	keys   []any
	fields map[any]Field
}

// NewFlexibleLayout validates all placements against size at once.
func NewFlexibleLayout(size int, placements ...Placement) (*FlexibleLayout, error) {
	if size < 0 {
		return nil, errors.InvalidArgument(errors.PhaseLayout, size,
			"flexible layout size must be a non-negative integer, not %d", size)
	}
	l := &FlexibleLayout{
		size:   size,
		keys:   make([]any, 0, len(placements)),
		fields: make(map[any]Field, len(placements)),
	}
	for _, p := range placements {
		key, err := l.check(p.Key, p.Field)
		if err != nil {
			return nil, err
		}
		if _, dup := l.fields[key]; dup {
			return nil, errors.New(errors.PhaseLayout, errors.KindInvalidArgument).
				Path(fmt.Sprint(key)).
				Value(key).
				Detail("flexible layout field %s is placed more than once", errors.FormatKey(key)).
				Build()
		}
		l.keys = append(l.keys, key)
		l.fields[key] = p.Field
	}

	Logger().Debug("layout built",
		zap.String("kind", "flexible"),
		zap.Int("fields", len(l.keys)),
		zap.Int("size", size))
	return l, nil
}

// check validates one placement against the layout size and returns the
// normalized key.
func (l *FlexibleLayout) check(rawKey any, f Field) (any, error) {
	key, err := flexibleKey(rawKey)
	if err != nil {
		return nil, err
	}
	if f.IsZero() {
		return nil, errors.New(errors.PhaseLayout, errors.KindInvalidArgument).
			Path(fmt.Sprint(key)).
			Detail("flexible layout field value for %s must be a constructed Field", errors.FormatKey(key)).
			Build()
	}
	if f.End() > l.size {
		return nil, errors.New(errors.PhaseLayout, errors.KindOutOfRange).
			Path(fmt.Sprint(key)).
			Value(f.End()).
			Detail("flexible layout field %s ends at bit %d, exceeding the size of %d bit(s)",
				errors.FormatKey(key), f.End(), l.size).
			Build()
	}
	return key, nil
}

func flexibleKey(key any) (any, error) {
	if s, ok := key.(string); ok {
		return s, nil
	}
	if i, ok := intKey(key); ok && i >= 0 {
		return i, nil
	}
	return nil, errors.InvalidArgument(errors.PhaseLayout, key,
		"flexible layout field name must be a non-negative integer or a string, not %v", key)
}

// WithField returns a copy of l with key placed at f, replacing any field
// already under key. The receiver is not modified.
func (l *FlexibleLayout) WithField(key any, f Field) (*FlexibleLayout, error) {
	k, err := l.check(key, f)
	if err != nil {
		return nil, err
	}
	out := l.clone()
	if _, exists := out.fields[k]; !exists {
		out.keys = append(out.keys, k)
	}
	out.fields[k] = f
	return out, nil
}

// WithSize returns a copy of l with a new size. The size must still cover
// every field.
func (l *FlexibleLayout) WithSize(size int) (*FlexibleLayout, error) {
	if size < 0 {
		return nil, errors.InvalidArgument(errors.PhaseLayout, size,
			"flexible layout size must be a non-negative integer, not %d", size)
	}
	var (
		endKey any
		end    int
	)
	for _, k := range l.keys {
		if e := l.fields[k].End(); endKey == nil || e > end {
			endKey, end = k, e
		}
	}
	if endKey != nil && end > size {
		return nil, errors.New(errors.PhaseLayout, errors.KindOutOfRange).
			Path(fmt.Sprint(endKey)).
			Value(size).
			Detail("flexible layout size %d does not cover the field %s, which ends at bit %d",
				size, errors.FormatKey(endKey), end).
			Build()
	}
	out := l.clone()
	out.size = size
	return out, nil
}

func (l *FlexibleLayout) clone() *FlexibleLayout {
	out := &FlexibleLayout{
		size:   l.size,
		keys:   slices.Clone(l.keys),
		fields: make(map[any]Field, len(l.fields)),
	}
	for k, f := range l.fields {
		out.fields[k] = f
	}
	return out
}

// Size returns the declared size.
func (l *FlexibleLayout) Size() int { return l.size }

// AsShape reduces the layout to an unsigned shape of its size.
func (l *FlexibleLayout) AsShape() any { return shape.Unsigned(l.size) }

// Fields yields placements in the order they were added.
func (l *FlexibleLayout) Fields() iter.Seq2[any, Field] {
	return func(yield func(any, Field) bool) {
		for _, k := range l.keys {
			if !yield(k, l.fields[k]) {
				return
			}
		}
	}
}

// Placements returns the placements in the order they were added.
func (l *FlexibleLayout) Placements() []Placement {
	out := make([]Placement, len(l.keys))
	for i, k := range l.keys {
		out[i] = Placement{Key: k, Field: l.fields[k]}
	}
	return out
}

// Lookup returns the field under a string or integer key.
func (l *FlexibleLayout) Lookup(key any) (Field, error) {
	var k any
	if s, ok := key.(string); ok {
		k = s
	} else if i, ok := intKey(key); ok {
		k = i
	} else {
		return Field{}, errors.InvalidArgument(errors.PhaseLayout, key,
			"cannot index flexible layout with %v", key)
	}
	f, ok := l.fields[k]
	if !ok {
		return Field{}, errors.NotFound(errors.PhaseLayout, "field", key)
	}
	return f, nil
}

func (l *FlexibleLayout) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "FlexibleLayout(%d, {", l.size)
	for i, k := range l.keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %v", errors.FormatKey(k), l.fields[k])
	}
	b.WriteString("})")
	return b.String()
}
