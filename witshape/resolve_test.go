package witshape

import (
	"strings"
	"testing"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/bitlayout/errors"
)

func TestFindAndNamed(t *testing.T) {
	res := &wit.Resolve{
		TypeDefs: []*wit.TypeDef{
			named("point", &wit.Record{}),
			{Kind: &wit.List{Type: wit.U8{}}},
			named("color", &wit.Enum{Cases: []wit.EnumCase{{Name: "red"}}}),
		},
	}

	defs := Named(res)
	if len(defs) != 2 {
		t.Fatalf("Named: got %d definitions, want 2", len(defs))
	}
	if *defs[0].Name != "color" || *defs[1].Name != "point" {
		t.Errorf("Named: got %s, %s; want color, point", *defs[0].Name, *defs[1].Name)
	}

	def, err := Find(res, "point")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if def != res.TypeDefs[0] {
		t.Error("Find returned the wrong definition")
	}

	if _, err := Find(res, "missing"); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("Find(missing): got %v, want not_found", err)
	}
}

func TestDecodeInvalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"open brace", "{"},
		{"truncated typedef", `{"types":[{"kind":`},
		{"not json", "not json"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Decode(strings.NewReader(tc.in))
			if !errors.Is(err, &errors.Error{Phase: errors.PhaseWIT, Kind: errors.KindInvalidArgument}) {
				t.Errorf("got %v, want wit invalid_argument", err)
			}
			if res != nil {
				t.Errorf("got resolve %v, want nil", res)
			}
		})
	}
}
