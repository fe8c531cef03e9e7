package bits

import (
	"bytes"
	"errors"
	"math/big"
	"testing"

	bperrors "github.com/wippyai/bitlayout/errors"
)

func TestNew(t *testing.T) {
	for _, width := range []int{0, 1, 7, 64, 65, 130} {
		v := New(width)
		if v.Len() != width {
			t.Errorf("Len: got %d, want %d", v.Len(), width)
		}
		if v.Big().Sign() != 0 {
			t.Errorf("width %d: fresh vector not zero: %v", width, v)
		}
	}
}

func TestNewNegativePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	New(-1)
}

func TestSetUintTruncates(t *testing.T) {
	v := FromUint(4, 0xff)
	if got := v.Uint(); got != 0xf {
		t.Errorf("got %#x, want 0xf", got)
	}

	wide := New(100)
	wide.SetInt(-1)
	wide.SetUint(5)
	if got := wide.Big(); got.Cmp(big.NewInt(5)) != 0 {
		t.Errorf("upper bits not cleared: got %v", got)
	}
}

func TestSignedInterpretation(t *testing.T) {
	v := New(4)
	v.SetInt(-3)
	if got := v.Uint(); got != 0xd {
		t.Errorf("raw bits: got %#x, want 0xd", got)
	}
	if got := v.Int(); got != 13 {
		t.Errorf("unsigned Int: got %d, want 13", got)
	}
	s := v.AsSigned()
	if !s.Signed() {
		t.Error("AsSigned should report signed")
	}
	if got := s.Int(); got != -3 {
		t.Errorf("signed Int: got %d, want -3", got)
	}
	if got := s.Big(); got.Cmp(big.NewInt(-3)) != 0 {
		t.Errorf("signed Big: got %v, want -3", got)
	}
	if s.AsUnsigned().Signed() {
		t.Error("AsUnsigned should clear signedness")
	}
	if v.Signed() {
		t.Error("AsSigned must not modify the receiver")
	}
}

func TestSliceSharesStorage(t *testing.T) {
	v := New(16)
	hi, err := v.Slice(8, 16)
	if err != nil {
		t.Fatalf("Slice: %v", err)
	}
	hi.SetUint(0xab)
	if got := v.Uint(); got != 0xab00 {
		t.Errorf("parent: got %#x, want 0xab00", got)
	}

	mid, err := v.Slice(4, 12)
	if err != nil {
		t.Fatalf("Slice: %v", err)
	}
	if got := mid.Uint(); got != 0xb0 {
		t.Errorf("overlapping slice: got %#x, want 0xb0", got)
	}

	inner, err := mid.Slice(4, 8)
	if err != nil {
		t.Fatalf("nested Slice: %v", err)
	}
	if got := inner.Uint(); got != 0xb {
		t.Errorf("nested slice: got %#x, want 0xb", got)
	}
}

func TestSliceErrors(t *testing.T) {
	v := New(8)
	for _, r := range [][2]int{{-1, 2}, {3, 2}, {0, 9}} {
		_, err := v.Slice(r[0], r[1])
		if !errors.Is(err, bperrors.ErrOutOfRange) {
			t.Errorf("Slice(%d, %d): got %v, want out_of_range", r[0], r[1], err)
		}
	}
	if _, err := v.Slice(8, 8); err != nil {
		t.Errorf("empty slice at end should be valid: %v", err)
	}
}

func TestCrossWordAccess(t *testing.T) {
	v := New(128)
	s, err := v.Slice(60, 72)
	if err != nil {
		t.Fatalf("Slice: %v", err)
	}
	s.SetUint(0xabc)
	if got := s.Uint(); got != 0xabc {
		t.Errorf("got %#x, want 0xabc", got)
	}
	want := new(big.Int).Lsh(big.NewInt(0xabc), 60)
	if got := v.Big(); got.Cmp(want) != 0 {
		t.Errorf("parent: got %v, want %v", got.Text(16), want.Text(16))
	}
}

func TestWordSelect(t *testing.T) {
	v := New(24)
	v.SetUint(0x332211)

	for i, want := range []uint64{0x11, 0x22, 0x33} {
		w, err := v.WordSelect(i, 8)
		if err != nil {
			t.Fatalf("WordSelect(%d): %v", i, err)
		}
		if got := w.Uint(); got != want {
			t.Errorf("word %d: got %#x, want %#x", i, got, want)
		}
	}

	for _, idx := range []int{-1, 3} {
		if _, err := v.WordSelect(idx, 8); !errors.Is(err, bperrors.ErrOutOfRange) {
			t.Errorf("WordSelect(%d): got %v, want out_of_range", idx, err)
		}
	}
	if _, err := v.WordSelect(0, -1); !errors.Is(err, bperrors.ErrInvalidArgument) {
		t.Errorf("negative word width: got %v, want invalid_argument", err)
	}
}

func TestBigRoundTrip(t *testing.T) {
	v := New(130)
	x, _ := new(big.Int).SetString("2a0000000000000000000000000000001", 16)
	v.SetBig(x)
	if got := v.Big(); got.Cmp(x) != 0 {
		t.Errorf("got %s, want %s", got.Text(16), x.Text(16))
	}

	s := v.AsSigned()
	s.SetBig(big.NewInt(-2))
	if got := s.Big(); got.Cmp(big.NewInt(-2)) != 0 {
		t.Errorf("signed: got %v, want -2", got)
	}
}

func TestAssign(t *testing.T) {
	t.Run("zero extend", func(t *testing.T) {
		dst := FromUint(8, 0xff)
		if err := dst.Assign(FromUint(4, 0x5)); err != nil {
			t.Fatalf("Assign: %v", err)
		}
		if got := dst.Uint(); got != 0x05 {
			t.Errorf("got %#x, want 0x05", got)
		}
	})

	t.Run("sign extend", func(t *testing.T) {
		dst := New(8)
		src := FromUint(4, 0xd).AsSigned()
		if err := dst.Assign(src); err != nil {
			t.Fatalf("Assign: %v", err)
		}
		if got := dst.Uint(); got != 0xfd {
			t.Errorf("got %#x, want 0xfd", got)
		}
	})

	t.Run("truncate", func(t *testing.T) {
		dst := New(4)
		if err := dst.Assign(FromUint(12, 0xabc)); err != nil {
			t.Fatalf("Assign: %v", err)
		}
		if got := dst.Uint(); got != 0xc {
			t.Errorf("got %#x, want 0xc", got)
		}
	})

	t.Run("overlapping", func(t *testing.T) {
		v := FromUint(16, 0x00ff)
		lo, _ := v.Slice(0, 12)
		hi, _ := v.Slice(4, 16)
		if err := hi.Assign(lo); err != nil {
			t.Fatalf("Assign: %v", err)
		}
		if got := v.Uint(); got != 0x0fff {
			t.Errorf("got %#x, want 0x0fff", got)
		}
	})

	t.Run("not castable", func(t *testing.T) {
		if err := New(4).Assign(42); !errors.Is(err, bperrors.ErrInvalidArgument) {
			t.Errorf("got %v, want invalid_argument", err)
		}
	})
}

func TestBytes(t *testing.T) {
	v, err := FromBytes(12, []byte{0x34, 0xf2})
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if got := v.Uint(); got != 0x234 {
		t.Errorf("got %#x, want 0x234", got)
	}
	if got := v.Bytes(); !bytes.Equal(got, []byte{0x34, 0x02}) {
		t.Errorf("Bytes: got %x, want 3402", got)
	}

	if _, err := FromBytes(12, []byte{1}); !errors.Is(err, bperrors.ErrInvalidArgument) {
		t.Errorf("short input: got %v, want invalid_argument", err)
	}
	if _, err := FromBytes(-1, nil); !errors.Is(err, bperrors.ErrInvalidArgument) {
		t.Errorf("negative width: got %v, want invalid_argument", err)
	}
}

func TestCast(t *testing.T) {
	v := New(3)
	got, err := Cast(v)
	if err != nil || got != v {
		t.Errorf("Cast(vector): got %v, %v", got, err)
	}

	var nilVec *Vector
	if _, err := Cast(nilVec); !errors.Is(err, bperrors.ErrInvalidArgument) {
		t.Errorf("Cast(nil vector): got %v", err)
	}
	if _, err := Cast(nil); !errors.Is(err, bperrors.ErrInvalidArgument) {
		t.Errorf("Cast(nil): got %v", err)
	}
	if _, err := Cast("bits"); !errors.Is(err, bperrors.ErrInvalidArgument) {
		t.Errorf("Cast(string): got %v", err)
	}
}

func TestBitAccess(t *testing.T) {
	v := New(70)
	v.SetBit(69, true)
	v.SetBit(0, true)
	if !v.Bit(69) || !v.Bit(0) || v.Bit(35) {
		t.Error("unexpected bit values")
	}
	v.SetBit(69, false)
	if v.Bit(69) {
		t.Error("bit 69 should be cleared")
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic for out-of-range bit")
		}
	}()
	v.Bit(70)
}

func TestString(t *testing.T) {
	if got := FromUint(8, 0x2a).String(); got != "8'h2a" {
		t.Errorf("got %q", got)
	}
	if got := FromUint(4, 0xd).AsSigned().String(); got != "4'sd-3" {
		t.Errorf("got %q", got)
	}
}
