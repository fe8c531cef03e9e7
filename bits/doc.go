// Package bits provides a flat, mutable bit-vector with slicing.
//
// A Vector is a window onto shared word storage. Slicing never copies: a
// slice, a word-select, or a signed reinterpretation of a vector aliases the
// same bits, so writes through any of them are visible through all others.
//
//	v := bits.New(16)
//	hi, _ := v.Slice(8, 16)
//	hi.SetUint(0xab)
//	v.Uint() // 0xab00
//
// # Bit Order
//
// Bit 0 is the least significant bit. Byte conversions are LSB-first: bit i
// of the vector is bit i%8 of byte i/8.
//
// # Thread Safety
//
// Vectors are NOT safe for concurrent mutation. Callers sharing storage
// across goroutines must coordinate access themselves.
package bits
