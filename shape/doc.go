// Package shape describes the width and signedness of a bit-level value.
//
// A Shape is the primitive answer to "how many bits, and are they signed".
// Anything else that can reduce to a Shape implements Castable; Cast follows
// AsShape until it reaches a Shape, stopping at MaxCastDepth or at a fixed
// point so that a badly behaved Castable cannot loop forever.
//
//	s, err := shape.Cast(myLayout) // layouts reduce to unsigned(size)
//	s.Width, s.Signed
//
// A bare non-negative int is accepted as an unsigned width.
package shape
