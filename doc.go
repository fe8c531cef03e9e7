// Package bitlayout describes how named or indexed fields map onto a flat
// sequence of bits, and reads and writes those fields through views.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	bitlayout/           Root package with the core Memory interfaces
//	├── shape/           Bit shapes (width + signedness) and shape casting
//	├── bits/            Bit-vectors with shared storage and aliasing slices
//	├── layout/          Fields, layouts, views and named schemas
//	├── witshape/        WIT type to shape/layout conversion
//	├── memview/         Loading and storing views in WASM linear memory
//	├── errors/          Structured error types for debugging
//	└── cmd/bitview/     CLI decoding values against WIT types
//
// # Quick Start
//
// Describe a packed header and read it:
//
//	hdr := layout.MustDefineStruct("header",
//	    layout.Member{Name: "kind", Shape: shape.Unsigned(4)},
//	    layout.Member{Name: "delta", Shape: shape.Signed(12)},
//	)
//
//	v, err := hdr.Bind(bits.FromUint(16, 0xfff3))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	delta, _ := v.Value("delta")
//	fmt.Println(delta.Int()) // -1
//
// # Bit Order
//
// Bit 0 is the least significant bit. Byte conversions are LSB-first: bit i
// of a vector is bit i%8 of byte i/8, which matches little-endian integers
// in WASM linear memory.
//
// # Thread Safety
//
// Layouts, fields and schemas are immutable and safe to share. Bit-vectors
// and views are NOT thread-safe: slices alias their parent's storage, so
// concurrent writers must be synchronized by the caller.
package bitlayout
