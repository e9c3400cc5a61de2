package sanitizer

import "testing"

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "already e164", input: "+16502530000", want: "+16502530000"},
		{name: "us national format", input: "(650) 253-0000", want: "+16502530000"},
		{name: "uk number with prefix", input: "+44 20 7183 8750", want: "+442071838750"},
		{name: "empty input", input: "", want: ""},
		{name: "garbage", input: "not-a-phone", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePhone(tt.input); got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
