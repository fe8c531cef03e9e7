// Package witshape converts WebAssembly Interface Types into bit shapes and
// layouts.
//
// Scalars map to shapes of their natural width. Aggregates map to layouts
// packed without alignment padding, so the result describes the logical
// bits of a value rather than its canonical ABI memory image:
//
//	bool               unsigned(1)
//	u8 .. u64          unsigned(n)
//	s8 .. s64          signed(n)
//	f32, f64           unsigned(n), raw IEEE 754 bits
//	char               unsigned(21)
//	string, list<T>    {ptr: u32, len: u32}
//	record             StructLayout in field order
//	flags              StructLayout of 1-bit members
//	enum               unsigned(ceil(log2(cases)))
//	tuple              FlexibleLayout keyed 0..n-1
//	option<T>          {is_some: 1, value: T}
//	result<T, E>       {is_err: 1, payload: union{ok: T, err: E}}
//	variant            {tag, payload: union of typed cases}
//	own, borrow        unsigned(32) handle
//
// Resources, futures and streams have no fixed bit image and fail with an
// unsupported error.
package witshape
