package bits

const wordBits = 64

type storage struct {
	words []uint64
}

func newStorage(width int) *storage {
	return &storage{words: make([]uint64, (width+wordBits-1)/wordBits)}
}

func lowMask(n int) uint64 {
	if n >= wordBits {
		return ^uint64(0)
	}
	return (uint64(1) << n) - 1
}

// read returns n <= 64 bits starting at absolute bit position pos.
func (s *storage) read(pos, n int) uint64 {
	if n == 0 {
		return 0
	}
	idx, off := pos/wordBits, pos%wordBits
	x := s.words[idx] >> off
	if off+n > wordBits {
		x |= s.words[idx+1] << (wordBits - off)
	}
	return x & lowMask(n)
}

// write stores the low n <= 64 bits of x at absolute bit position pos.
func (s *storage) write(pos, n int, x uint64) {
	if n == 0 {
		return
	}
	mask := lowMask(n)
	x &= mask
	idx, off := pos/wordBits, pos%wordBits
	s.words[idx] = s.words[idx]&^(mask<<off) | x<<off
	if off+n > wordBits {
		shift := wordBits - off
		s.words[idx+1] = s.words[idx+1]&^(mask>>shift) | x>>shift
	}
}
