package normalize

import "testing"

func TestEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"test@EXAMPLE.COM", "test@example.com"},
		{"Chris@GMAIL.CoM", "Chris@gmail.com"},
		{"  padded@Example.org  ", "padded@example.org"},
		{"noatsign", "noatsign"},
		{"", ""},
		{"UPPER@lower.dev", "UPPER@lower.dev"},
	}

	for _, tt := range tests {
		if got := Email(tt.in); got != tt.want {
			t.Errorf("Email(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEmailKey(t *testing.T) {
	a := EmailKey("Chris@GMAIL.CoM")
	b := EmailKey("chris@gmail.com")
	if a != b {
		t.Errorf("keys differ: %q vs %q", a, b)
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Comfort   Food ", "Comfort Food"},
		{"salt", "salt"},
		{"a\tb\nc", "a b c"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Name(tt.in); got != tt.want {
			t.Errorf("Name(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNameNFC(t *testing.T) {
	// "é" as 'e' + combining acute must normalize to the precomposed form.
	decomposed := "café"
	composed := "café"

	if got := Name(decomposed); got != composed {
		t.Errorf("Name(%q) = %q, want %q", decomposed, got, composed)
	}
}
