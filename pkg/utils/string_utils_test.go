package utils

import "testing"

func TestDigitsOnly(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "formattedPhone", in: "+7 (700) 123-45-67", want: "77001234567"},
		{name: "alreadyDigits", in: "77001234567", want: "77001234567"},
		{name: "noDigits", in: "not a phone", want: ""},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DigitsOnly(tt.in); got != tt.want {
				t.Errorf("DigitsOnly(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewNullString(t *testing.T) {
	if got := NewNullString(""); got != nil {
		t.Errorf("NewNullString(\"\") = %v, want nil", got)
	}
	if got := NewNullString("x"); got == nil || *got != "x" {
		t.Errorf("NewNullString(\"x\") = %v, want pointer to \"x\"", got)
	}
}
