package auth

import "testing"

func TestNormalizeAccount(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"admin", "ADMIN"},
		{"  Admin  ", "ADMIN"},
		{"useR01", "USER01"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := normalizeAccount(tt.input); got != tt.want {
			t.Errorf("normalizeAccount(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
