package bits

import (
	"fmt"
	"math/big"
	"reflect"

	"github.com/wippyai/bitlayout/errors"
)

// Vector is a window of width bits over shared storage.
type Vector struct {
	buf    *storage
	start  int
	width  int
	signed bool
}

// Castable is implemented by anything that can be treated as a bit-vector.
type Castable interface {
	AsValue() *Vector
}

// New allocates width zero bits. It panics if width is negative.
func New(width int) *Vector {
	if width < 0 {
		panic(fmt.Sprintf("bits: negative width %d", width))
	}
	return &Vector{buf: newStorage(width), width: width}
}

// FromUint allocates width bits holding x, truncated to width.
func FromUint(width int, x uint64) *Vector {
	v := New(width)
	v.SetUint(x)
	return v
}

// FromBytes allocates width bits from LSB-first bytes. len(b) must be
// exactly ceil(width/8); bits of the last byte above width are ignored.
func FromBytes(width int, b []byte) (*Vector, error) {
	if width < 0 {
		return nil, errors.InvalidArgument(errors.PhaseBits, width,
			"width must be a non-negative integer, not %d", width)
	}
	if want := (width + 7) / 8; len(b) != want {
		return nil, errors.InvalidArgument(errors.PhaseBits, len(b),
			"%d byte(s) cannot hold exactly %d bit(s), need %d", len(b), width, want)
	}
	v := New(width)
	for i, c := range b {
		n := min(8, width-i*8)
		v.buf.write(i*8, n, uint64(c))
	}
	return v, nil
}

// Cast converts a bit-vector-castable object to its Vector.
func Cast(obj any) (*Vector, error) {
	c, ok := obj.(Castable)
	if !ok || isNil(obj) {
		return nil, errors.InvalidArgument(errors.PhaseBits, obj,
			"object of type %s is not a bit-vector-castable object", typeName(obj))
	}
	v := c.AsValue()
	if v == nil {
		return nil, errors.InvalidArgument(errors.PhaseBits, obj,
			"object of type %s converted to a nil bit-vector", typeName(obj))
	}
	return v, nil
}

// AsValue returns v; Vector is trivially Castable.
func (v *Vector) AsValue() *Vector {
	return v
}

// Len returns the width in bits.
func (v *Vector) Len() int {
	return v.width
}

// Signed reports whether the vector is interpreted as two's complement.
func (v *Vector) Signed() bool {
	return v.signed
}

// Bit returns bit i. It panics if i is out of range.
func (v *Vector) Bit(i int) bool {
	v.checkIndex(i)
	return v.buf.read(v.start+i, 1) == 1
}

// SetBit sets bit i. It panics if i is out of range.
func (v *Vector) SetBit(i int, b bool) {
	v.checkIndex(i)
	var x uint64
	if b {
		x = 1
	}
	v.buf.write(v.start+i, 1, x)
}

func (v *Vector) checkIndex(i int) {
	if i < 0 || i >= v.width {
		panic(fmt.Sprintf("bits: index %d out of range [0, %d)", i, v.width))
	}
}

// Slice returns the unsigned window [start, end) sharing v's storage.
func (v *Vector) Slice(start, end int) (*Vector, error) {
	if start < 0 || end < start || end > v.width {
		return nil, errors.New(errors.PhaseBits, errors.KindOutOfRange).
			Value([2]int{start, end}).
			Detail("slice [%d, %d) out of range for %d bit(s)", start, end, v.width).
			Build()
	}
	return &Vector{buf: v.buf, start: v.start + start, width: end - start}, nil
}

// WordSelect returns the index-th word of the given width, that is the
// window [index*width, (index+1)*width).
func (v *Vector) WordSelect(index, width int) (*Vector, error) {
	if width < 0 {
		return nil, errors.InvalidArgument(errors.PhaseBits, width,
			"word width must be a non-negative integer, not %d", width)
	}
	if index < 0 || (width > 0 && index >= v.width/width) {
		return nil, errors.New(errors.PhaseBits, errors.KindOutOfRange).
			Value(index).
			Detail("word %d of width %d out of range for %d bit(s)", index, width, v.width).
			Build()
	}
	return v.Slice(index*width, index*width+width)
}

// AsSigned returns a view of the same bits interpreted as signed.
func (v *Vector) AsSigned() *Vector {
	w := *v
	w.signed = true
	return &w
}

// AsUnsigned returns a view of the same bits interpreted as unsigned.
func (v *Vector) AsUnsigned() *Vector {
	w := *v
	w.signed = false
	return &w
}

// Uint returns the low 64 bits, zero-extended.
func (v *Vector) Uint() uint64 {
	return v.buf.read(v.start, min(v.width, wordBits))
}

// Int returns the value as int64. Signed vectors up to 64 bits wide are
// sign-extended; wider vectors are truncated to their low 64 bits.
func (v *Vector) Int() int64 {
	x := v.Uint()
	if v.signed && v.width > 0 && v.width < wordBits {
		shift := wordBits - v.width
		return int64(x<<shift) >> shift
	}
	return int64(x)
}

// Big returns the full value, honoring signedness.
func (v *Vector) Big() *big.Int {
	out := new(big.Int)
	for pos := ((v.width - 1) / wordBits) * wordBits; pos >= 0 && v.width > 0; pos -= wordBits {
		n := min(wordBits, v.width-pos)
		out.Lsh(out, uint(n))
		out.Or(out, new(big.Int).SetUint64(v.buf.read(v.start+pos, n)))
	}
	if v.signed && v.width > 0 && v.Bit(v.width-1) {
		out.Sub(out, new(big.Int).Lsh(big.NewInt(1), uint(v.width)))
	}
	return out
}

// SetUint stores x, truncated to the vector width; bits above 64 are cleared.
func (v *Vector) SetUint(x uint64) {
	v.fill(x, 0)
}

// SetInt stores x in two's complement, truncated or sign-extended to the
// vector width.
func (v *Vector) SetInt(x int64) {
	var ext uint64
	if x < 0 {
		ext = ^uint64(0)
	}
	v.fill(uint64(x), ext)
}

func (v *Vector) fill(low, ext uint64) {
	for pos := 0; pos < v.width; pos += wordBits {
		n := min(wordBits, v.width-pos)
		word := ext
		if pos == 0 {
			word = low
		}
		v.buf.write(v.start+pos, n, word)
	}
}

// SetBig stores x modulo 2^width in two's complement.
func (v *Vector) SetBig(x *big.Int) {
	mod := new(big.Int).Lsh(big.NewInt(1), uint(v.width))
	y := new(big.Int).Mod(x, mod)
	mask := new(big.Int).SetUint64(^uint64(0))
	chunk := new(big.Int)
	for pos := 0; pos < v.width; pos += wordBits {
		n := min(wordBits, v.width-pos)
		chunk.Rsh(y, uint(pos)).And(chunk, mask)
		v.buf.write(v.start+pos, n, chunk.Uint64())
	}
}

// Assign copies other into v. A narrower source is zero-extended, or
// sign-extended when it is signed; a wider source is truncated.
func (v *Vector) Assign(other any) error {
	src, err := Cast(other)
	if err != nil {
		return err
	}
	n := min(src.width, v.width)
	chunks := make([]uint64, 0, (n+wordBits-1)/wordBits)
	for pos := 0; pos < n; pos += wordBits {
		chunks = append(chunks, src.buf.read(src.start+pos, min(wordBits, n-pos)))
	}
	var ext uint64
	if src.signed && src.width > 0 && src.Bit(src.width-1) {
		ext = ^uint64(0)
	}
	for i, c := range chunks {
		pos := i * wordBits
		v.buf.write(v.start+pos, min(wordBits, n-pos), c)
	}
	for pos := n; pos < v.width; pos += wordBits {
		v.buf.write(v.start+pos, min(wordBits, v.width-pos), ext)
	}
	return nil
}

// Bytes returns the bits as ceil(width/8) LSB-first bytes.
func (v *Vector) Bytes() []byte {
	out := make([]byte, (v.width+7)/8)
	for i := range out {
		out[i] = byte(v.buf.read(v.start+i*8, min(8, v.width-i*8)))
	}
	return out
}

// String renders the vector in Verilog-like notation, e.g. 8'h2a or 4'sd-3.
func (v *Vector) String() string {
	if v.signed {
		return fmt.Sprintf("%d'sd%s", v.width, v.Big().String())
	}
	return fmt.Sprintf("%d'h%s", v.width, v.Big().Text(16))
}

func isNil(obj any) bool {
	if obj == nil {
		return true
	}
	rv := reflect.ValueOf(obj)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// typeName returns "nil" for nil values, avoiding reflect.TypeOf(nil) panic.
func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}
