package witshape

import (
	"bytes"
	"encoding/json"
	"io"
	"sort"

	"go.bytecodealliance.org/wit"
	"go.uber.org/zap"

	"github.com/wippyai/bitlayout/errors"
)

// Decode reads a WIT resolve in the JSON form produced by
// `wasm-tools component wit --json`.
// Truncated or malformed input is rejected before it reaches the decoder.
func Decode(r io.Reader) (*wit.Resolve, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseWIT, errors.KindInvalidArgument, err, "read WIT JSON")
	}
	if !json.Valid(data) {
		return nil, errors.New(errors.PhaseWIT, errors.KindInvalidArgument).
			Value(len(data)).
			Detail("WIT JSON is malformed or truncated (%d byte(s))", len(data)).
			Build()
	}
	res, err := wit.DecodeJSON(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.PhaseWIT, errors.KindInvalidArgument, err, "decode WIT JSON")
	}
	Logger().Debug("wit resolve decoded", zap.Int("typedefs", len(res.TypeDefs)))
	return res, nil
}

// Named returns the named type definitions of res, sorted by name.
func Named(res *wit.Resolve) []*wit.TypeDef {
	var defs []*wit.TypeDef
	for _, def := range res.TypeDefs {
		if def.Name != nil {
			defs = append(defs, def)
		}
	}
	sort.SliceStable(defs, func(i, j int) bool {
		return *defs[i].Name < *defs[j].Name
	})
	return defs
}

// Find returns the first type definition of res named name.
func Find(res *wit.Resolve, name string) (*wit.TypeDef, error) {
	for _, def := range res.TypeDefs {
		if def.Name != nil && *def.Name == name {
			return def, nil
		}
	}
	return nil, errors.NotFound(errors.PhaseWIT, "type", name)
}
