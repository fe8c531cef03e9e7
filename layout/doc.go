// Package layout describes how named or indexed fields map onto a flat
// sequence of bits, and provides views that read and write those fields.
//
// # Layouts
//
// A Layout is an immutable description of field placement:
//
//	StructLayout    fields placed back to back in declaration order
//	UnionLayout     every field at offset 0
//	ArrayLayout     length copies of one element shape
//	FlexibleLayout  explicit offsets within a fixed size
//
// Every layout reduces to an unsigned shape of its size, so layouts nest:
// a layout may be the shape of a field in another layout.
//
//	hdr, _ := layout.NewStructLayout(
//		layout.Member{Name: "kind", Shape: shape.Unsigned(4)},
//		layout.Member{Name: "len", Shape: shape.Unsigned(12)},
//	)
//	hdr.Size() // 16
//
// # Views
//
// A View binds a layout to a bit-vector. Index resolves a key to the
// field's bits and wraps them according to the field shape: nested layouts
// become views, signed scalars become signed vectors, everything else is an
// unsigned slice. Writes through the result land in the bound vector.
//
//	v, _ := layout.NewView(hdr, nil)
//	kind, _ := v.Value("kind")
//	kind.SetUint(3)
//
// Field is the name-based form of Index. It lists the declared fields when
// a name is not found and refuses names starting with an underscore.
//
// # Schemas
//
// DefineStruct and DefineUnion build a named schema with one fixed layout.
// Instances are views whose layout.Of is the schema itself.
//
// # Thread Safety
//
// Layouts, fields, and schemas are immutable and safe to share. Views are as
// safe as the bit-vector they are bound to, which is to say not safe for
// concurrent mutation.
package layout
