package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/bitlayout/bits"
	"github.com/wippyai/bitlayout/layout"
	"github.com/wippyai/bitlayout/shape"
	"github.com/wippyai/bitlayout/witshape"
)

type typeInfo struct {
	err   error
	shape any
	name  string
	size  int
}

// row is one line of a decoded value tree.
type row struct {
	key    string
	value  string
	depth  int
	offset int
	width  int
}

func loadCatalog(witFile, prim string) ([]typeInfo, error) {
	calc := witshape.NewCalculator()

	if prim != "" {
		t, err := wit.ParseType(strings.TrimSpace(prim))
		if err != nil {
			return nil, fmt.Errorf("parse type %q: %w", prim, err)
		}
		return []typeInfo{newTypeInfo(calc, prim, t)}, nil
	}

	f, err := os.Open(witFile)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	res, err := witshape.Decode(f)
	if err != nil {
		return nil, err
	}

	var types []typeInfo
	for _, def := range witshape.Named(res) {
		types = append(types, newTypeInfo(calc, *def.Name, def))
	}
	if len(types) == 0 {
		return nil, fmt.Errorf("%s has no named types", witFile)
	}
	return types, nil
}

func newTypeInfo(calc *witshape.Calculator, name string, t wit.Type) typeInfo {
	ti := typeInfo{name: name}
	ti.shape, ti.err = calc.Shape(t)
	if ti.err == nil {
		ti.size, ti.err = calc.Size(t)
	}
	return ti
}

// parseValue decodes hex bytes, least significant byte first, into a
// vector of width bits. Missing high bytes are zero.
func parseValue(s string, width int) (*bits.Vector, error) {
	s = strings.TrimPrefix(strings.ReplaceAll(strings.TrimSpace(s), " ", ""), "0x")
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("parse value: %w", err)
	}
	n := (width + 7) / 8
	if len(raw) > n {
		return nil, fmt.Errorf("value has %d bytes, type holds %d", len(raw), n)
	}
	buf := make([]byte, n)
	copy(buf, raw)
	return bits.FromBytes(width, buf)
}

func describe(shp any, vec *bits.Vector) ([]row, error) {
	return walk(nil, "value", 0, 0, shp, vec)
}

func walk(rows []row, key string, depth, offset int, shp any, vec *bits.Vector) ([]row, error) {
	l, err := layout.Cast(shp)
	if err != nil {
		s, err := shape.Cast(shp)
		if err != nil {
			return nil, err
		}
		if s.Signed {
			vec = vec.AsSigned()
		}
		return append(rows, row{key: key, value: vec.String(), depth: depth, offset: offset, width: vec.Len()}), nil
	}

	rows = append(rows, row{key: key, value: vec.String(), depth: depth, offset: offset, width: l.Size()})
	v, err := layout.NewView(l, vec)
	if err != nil {
		return nil, err
	}
	for k, f := range l.Fields() {
		item, err := v.Index(k)
		if err != nil {
			return nil, err
		}
		rows, err = walk(rows, keyLabel(k), depth+1, offset+f.Offset(), f.Shape(), item.AsValue())
		if err != nil {
			return nil, err
		}
	}
	return rows, nil
}

func keyLabel(k any) string {
	if s, ok := k.(string); ok {
		return s
	}
	return fmt.Sprintf("[%v]", k)
}
