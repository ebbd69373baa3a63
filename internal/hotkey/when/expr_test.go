package when

import (
	"errors"
	"testing"
)

func TestParseRef(t *testing.T) {
	tests := []struct {
		input string
		want  Ref
	}{
		{"editor", Ref{Name: "editor"}},
		{"!readonly", Ref{Name: "readonly", Negated: true}},
		{"  palette  ", Ref{Name: "palette"}},
		{"! modal", Ref{Name: "modal", Negated: true}},
	}

	for _, tt := range tests {
		got, err := ParseRef(tt.input)
		if err != nil {
			t.Errorf("ParseRef(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseRef(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}
}

func TestParseRefInvalid(t *testing.T) {
	for _, input := range []string{"", "!", "  ", "!!x"} {
		if _, err := ParseRef(input); !errors.Is(err, ErrInvalidContextName) {
			t.Errorf("ParseRef(%q) error = %v, want ErrInvalidContextName", input, err)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  string // round-tripped String()
	}{
		{"editor", "editor"},
		{"editor && !readonly", "editor && !readonly"},
		{"a || b", "a || b"},
		{"a && b || !c", "a && b || !c"},
		{"  a  &&  b  ", "a && b"},
	}

	for _, tt := range tests {
		expr, err := Parse(tt.input)
		if err != nil {
			t.Errorf("Parse(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if got := expr.String(); got != tt.want {
			t.Errorf("Parse(%q).String() = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseEmpty(t *testing.T) {
	for _, input := range []string{"", "   "} {
		expr, err := Parse(input)
		if err != nil {
			t.Fatalf("Parse(%q) unexpected error: %v", input, err)
		}
		if !expr.IsAlways() {
			t.Errorf("Parse(%q) should be the global expression", input)
		}
	}
}

func TestParseInvalid(t *testing.T) {
	for _, input := range []string{"a ||", "|| a", "a && ", "&& a", "a && ! || b"} {
		if _, err := Parse(input); err == nil {
			t.Errorf("Parse(%q) should fail", input)
		}
	}
}

func TestAndEmpty(t *testing.T) {
	if _, err := And(); !errors.Is(err, ErrEmptyTerm) {
		t.Errorf("And() error = %v, want ErrEmptyTerm", err)
	}
}

func TestExpressionString(t *testing.T) {
	if got := Always().String(); got != "" {
		t.Errorf("Always().String() = %q, want empty", got)
	}
	if got := FromPredicate(func([]string) bool { return true }).String(); got != "<predicate>" {
		t.Errorf("predicate String() = %q, want %q", got, "<predicate>")
	}
}

func TestValidateName(t *testing.T) {
	if err := ValidateName("editor"); err != nil {
		t.Errorf("ValidateName(editor) = %v, want nil", err)
	}
	for _, name := range []string{"", "!editor"} {
		if err := ValidateName(name); !errors.Is(err, ErrInvalidContextName) {
			t.Errorf("ValidateName(%q) = %v, want ErrInvalidContextName", name, err)
		}
	}
}
