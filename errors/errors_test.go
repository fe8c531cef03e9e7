package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseLayout,
				Kind:   KindOutOfRange,
				Path:   []string{"header", "flags"},
				Detail: "field ends at bit 9",
			},
			contains: []string{"[layout]", "out_of_range", "header.flags", "field ends at bit 9"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseView,
				Kind:  KindNotFound,
			},
			contains: []string{"[view]", "not_found"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseMemory,
				Kind:   KindOutOfRange,
				Detail: "read failed",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[memory]", "out_of_range", "read failed", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseBits,
		Kind:  KindInvalidArgument,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseLayout,
		Kind:  KindNotFound,
		Path:  []string{"foo"},
	}

	if !err.Is(&Error{Phase: PhaseLayout, Kind: KindNotFound}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseView, Kind: KindNotFound}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseLayout, Kind: KindOutOfRange}) {
		t.Error("Is should not match different kind")
	}
	if err.Is(errors.New("not found")) {
		t.Error("Is should not match foreign errors")
	}

	// Sentinels carry no phase and match on kind alone
	if !errors.Is(err, ErrNotFound) {
		t.Error("errors.Is should match ErrNotFound sentinel")
	}
	if errors.Is(err, ErrInvalidArgument) {
		t.Error("errors.Is should not match ErrInvalidArgument sentinel")
	}

	wrapped := Wrap(PhaseView, KindNotFound, err, "lookup")
	if !errors.Is(wrapped, &Error{Phase: PhaseLayout, Kind: KindNotFound}) {
		t.Error("errors.Is should find the wrapped layout error")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseLayout, KindOutOfRange).
		Path("header", "flags").
		Value(9).
		Cause(cause).
		Detail("ends at bit %d, size %d", 9, 8).
		Build()

	if err.Phase != PhaseLayout {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseLayout)
	}
	if err.Kind != KindOutOfRange {
		t.Errorf("Kind = %v, want %v", err.Kind, KindOutOfRange)
	}
	if len(err.Path) != 2 || err.Path[0] != "header" || err.Path[1] != "flags" {
		t.Errorf("Path = %v, want [header flags]", err.Path)
	}
	if err.Value != 9 {
		t.Errorf("Value = %v, want 9", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "ends at bit 9, size 8" {
		t.Errorf("Detail = %v, want 'ends at bit 9, size 8'", err.Detail)
	}

	msg := "100% literal"
	plain := New(PhaseView, KindNotFound).Detail(msg).Build()
	if plain.Detail != msg {
		t.Errorf("Detail = %v, want unformatted message", plain.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("InvalidArgument", func(t *testing.T) {
		err := InvalidArgument(PhaseField, -1, "offset must be a non-negative integer, not %d", -1)
		if err.Kind != KindInvalidArgument {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidArgument)
		}
		if err.Value != -1 {
			t.Errorf("Value = %v, want -1", err.Value)
		}
	})

	t.Run("OutOfRange", func(t *testing.T) {
		err := OutOfRange(PhaseBits, 12, "slice end %d exceeds width %d", 12, 8)
		if err.Kind != KindOutOfRange {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOutOfRange)
		}
		if !strings.Contains(err.Detail, "12") {
			t.Errorf("Detail = %v, should contain end", err.Detail)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		err := NotFound(PhaseLayout, "field", "x")
		if err.Kind != KindNotFound {
			t.Errorf("Kind = %v, want %v", err.Kind, KindNotFound)
		}
		if err.Detail != `field "x" not found` {
			t.Errorf("Detail = %v", err.Detail)
		}
		intErr := NotFound(PhaseLayout, "index", 3)
		if intErr.Detail != "index 3 not found" {
			t.Errorf("Detail = %v", intErr.Detail)
		}
	})

	t.Run("SizeMismatch", func(t *testing.T) {
		err := SizeMismatch(PhaseView, 12, 16)
		if err.Kind != KindSizeMismatch {
			t.Errorf("Kind = %v, want %v", err.Kind, KindSizeMismatch)
		}
		if !strings.Contains(err.Detail, "width mismatch") {
			t.Errorf("Detail = %v, should mention width mismatch", err.Detail)
		}
		if !errors.Is(err, ErrInvalidArgument) {
			t.Error("a size mismatch should also be an invalid argument")
		}
		if errors.Is(&Error{Kind: KindInvalidArgument}, ErrSizeMismatch) {
			t.Error("an invalid argument is not a size mismatch")
		}
	})

	t.Run("Unsupported", func(t *testing.T) {
		err := Unsupported(PhaseWIT, "resource types")
		if err.Kind != KindUnsupported {
			t.Errorf("Kind = %v, want %v", err.Kind, KindUnsupported)
		}
	})
}

func TestFormatKey(t *testing.T) {
	tests := []struct {
		key  any
		want string
	}{
		{"a", `"a"`},
		{3, "3"},
		{nil, "<nil>"},
		{2.5, "2.5"},
	}
	for _, tt := range tests {
		if got := FormatKey(tt.key); got != tt.want {
			t.Errorf("FormatKey(%v) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestIsAs(t *testing.T) {
	err := Wrap(PhaseView, KindNotFound, NotFound(PhaseLayout, "field", "x"), "lookup")
	if !Is(err, ErrNotFound) {
		t.Error("Is should match through the cause chain")
	}
	var target *Error
	if !As(err, &target) {
		t.Fatal("As should find *Error")
	}
	if target.Phase != PhaseView {
		t.Errorf("As found phase %v, want outermost %v", target.Phase, PhaseView)
	}
}
