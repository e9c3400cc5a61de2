package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain string unchanged", input: "Jane Doe", want: "Jane Doe"},
		{name: "surrounding whitespace trimmed", input: "  Jane Doe  ", want: "Jane Doe"},
		{name: "inner runs collapsed", input: "Jane \t\n  Doe", want: "Jane Doe"},
		{name: "empty stays empty", input: "", want: ""},
		{name: "only whitespace becomes empty", input: " \t\n ", want: ""},
		{name: "unicode preserved", input: "  José  García ", want: "José García"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimAndNormalize(tt.input); got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Guest@Example.COM "); got != "guest@example.com" {
		t.Errorf("NormalizeEmail() = %q", got)
	}
}
