package shape

import (
	"errors"
	"testing"

	bperrors "github.com/wippyai/bitlayout/errors"
)

type wrapper struct{ inner any }

func (w wrapper) AsShape() any { return w.inner }

type selfish struct{ n int }

func (s *selfish) AsShape() any { return s }

type endless struct{ n int }

func (e endless) AsShape() any { return endless{e.n + 1} }

type sliceHolder struct{ v []int }

func (s sliceHolder) AsShape() any { return s }

func TestCast(t *testing.T) {
	tests := []struct {
		name string
		obj  any
		want Shape
	}{
		{"unsigned", Unsigned(8), Shape{Width: 8}},
		{"signed", Signed(3), Shape{Width: 3, Signed: true}},
		{"zero width", Unsigned(0), Shape{}},
		{"bare int", 5, Shape{Width: 5}},
		{"wrapped once", wrapper{Signed(4)}, Signed(4)},
		{"wrapped twice", wrapper{wrapper{7}}, Unsigned(7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Cast(tt.obj)
			if err != nil {
				t.Fatalf("Cast: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCastErrors(t *testing.T) {
	tests := []struct {
		name string
		obj  any
	}{
		{"nil", nil},
		{"string", "u8"},
		{"negative int", -1},
		{"negative shape", Shape{Width: -2}},
		{"fixed point", &selfish{}},
		{"non-comparable fixed point", sliceHolder{v: []int{1}}},
		{"endless chain", endless{}},
		{"wrapped garbage", wrapper{"nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Cast(tt.obj)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, bperrors.ErrInvalidArgument) {
				t.Errorf("error %v is not invalid_argument", err)
			}
			if IsCastable(tt.obj) {
				t.Error("IsCastable should be false")
			}
		})
	}
}

func TestShapeString(t *testing.T) {
	if got := Unsigned(4).String(); got != "unsigned(4)" {
		t.Errorf("got %q", got)
	}
	if got := Signed(12).String(); got != "signed(12)" {
		t.Errorf("got %q", got)
	}
}

func TestSame(t *testing.T) {
	p := &selfish{}
	if !Same(p, p) {
		t.Error("pointer should be same as itself")
	}
	if Same(p, &selfish{}) {
		t.Error("distinct pointers should differ")
	}
	if !Same(Unsigned(3), Unsigned(3)) {
		t.Error("equal shapes should be same")
	}
	if Same(Unsigned(3), 3) {
		t.Error("different types should differ")
	}
	if Same(sliceHolder{}, sliceHolder{}) {
		t.Error("non-comparable values should differ")
	}
	if Same(wrapper{[]int{1}}, wrapper{[]int{1}}) {
		t.Error("comparable struct holding a slice should differ")
	}
	if !Same(nil, nil) || Same(nil, 1) {
		t.Error("nil handling")
	}
}
