package utils

import "testing"

func TestParseFeedInt64(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"1,234", 1234},
		{"4,646,516,112", 4646516112},
		{" 42 ", 42},
		{"0", 0},
		{"", 0},
		{"--", 0},
		{"abc", 0},
	}
	for _, tt := range tests {
		if got := ParseFeedInt64(tt.input); got != tt.want {
			t.Errorf("ParseFeedInt64(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestParseFeedDecimal(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"61.35", "61.35"},
		{"1,061.35", "1061.35"},
		{"-0.50", "-0.5"},
		{"", "0"},
		{"--", "0"},
		{"X", "0"},
	}
	for _, tt := range tests {
		if got := ParseFeedDecimal(tt.input).String(); got != tt.want {
			t.Errorf("ParseFeedDecimal(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}
