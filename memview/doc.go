// Package memview loads and stores layout views in WASM linear memory.
//
// A view of n bits occupies ceil(n/8) bytes starting at its address. Bits
// are packed LSB-first, so a 32-bit unsigned field at bit offset 0 reads
// the same as a little-endian u32 at that address. Trailing bits of the
// last byte beyond the layout size are preserved on Store.
package memview
