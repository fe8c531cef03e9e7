package memview

import (
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	bitlayout "github.com/wippyai/bitlayout"
	"github.com/wippyai/bitlayout/bits"
	"github.com/wippyai/bitlayout/errors"
	"github.com/wippyai/bitlayout/layout"
)

// ByteSize returns the number of bytes a layout of the given size occupies.
func ByteSize(l layout.Layout) uint32 {
	return uint32((l.Size() + 7) / 8)
}

// Load reads the bytes at addr and binds them to l. l may be a Layout or
// anything that casts to one. The returned view owns a copy of the bytes;
// write it back with Store.
func Load(mem bitlayout.Memory, addr uint32, l any) (*layout.View, error) {
	cast, err := layout.Cast(l)
	if err != nil {
		return nil, err
	}
	n := ByteSize(cast)
	data, err := mem.Read(addr, n)
	if err != nil {
		return nil, outOfRange(mem, addr, n, err)
	}

	vec, err := bits.FromBytes(cast.Size(), data)
	if err != nil {
		return nil, err
	}

	Logger().Debug("view loaded",
		zap.Uint32("addr", addr),
		zap.Uint32("bytes", n),
		zap.Int("bits", cast.Size()))

	return layout.NewView(l, vec)
}

// Store writes the view's bits to addr. When the size is not a multiple of
// eight, the high bits of the last byte keep their current memory contents.
func Store(mem bitlayout.Memory, addr uint32, v *layout.View) error {
	if v == nil {
		return errors.InvalidArgument(errors.PhaseMemory, nil, "cannot store a nil view")
	}
	size := v.Layout().Size()
	n := ByteSize(v.Layout())
	if n == 0 {
		return nil
	}

	out := v.AsValue().Bytes()
	if rem := size % 8; rem != 0 {
		last, err := mem.Read(addr+n-1, 1)
		if err != nil {
			return outOfRange(mem, addr, n, err)
		}
		keep := byte(0xff) << rem
		out[n-1] = out[n-1]&^keep | last[0]&keep
	}
	if err := mem.Write(addr, out); err != nil {
		return outOfRange(mem, addr, n, err)
	}

	Logger().Debug("view stored",
		zap.Uint32("addr", addr),
		zap.Uint32("bytes", n),
		zap.Int("bits", size))
	return nil
}

func outOfRange(mem bitlayout.Memory, addr, n uint32, cause error) error {
	b := errors.New(errors.PhaseMemory, errors.KindOutOfRange).Value(addr).Cause(cause)
	if sz, ok := mem.(bitlayout.MemorySizer); ok {
		return b.Detail("%d byte(s) at address %d exceed the %d byte memory", n, addr, sz.Size()).Build()
	}
	return b.Detail("%d byte(s) at address %d are out of bounds", n, addr).Build()
}

// WazeroMemory wraps wazero memory to implement bitlayout.Memory
type WazeroMemory struct {
	mem api.Memory
}

// Wrap adapts a wazero memory, such as api.Module.Memory().
func Wrap(mem api.Memory) *WazeroMemory {
	return &WazeroMemory{mem: mem}
}

func (m *WazeroMemory) Read(offset uint32, length uint32) ([]byte, error) {
	data, ok := m.mem.Read(offset, length)
	if !ok {
		return nil, errors.OutOfRange(errors.PhaseMemory, offset, "read out of bounds: offset=%d, length=%d", offset, length)
	}
	return data, nil
}

func (m *WazeroMemory) Write(offset uint32, data []byte) error {
	ok := m.mem.Write(offset, data)
	if !ok {
		return errors.OutOfRange(errors.PhaseMemory, offset, "write out of bounds: offset=%d, length=%d", offset, len(data))
	}
	return nil
}

func (m *WazeroMemory) Size() uint32 {
	return m.mem.Size()
}
