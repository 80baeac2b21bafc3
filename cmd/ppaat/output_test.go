package main

import "testing"

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name   string
		s      string
		maxLen int
		want   string
	}{
		{"short", "EDE1", 20, "EDE1"},
		{"exact", "abcdef", 6, "abcdef"},
		{"ascii", "abcdefghij", 6, "abc..."},
		{"multibyte", "Größenänderung", 8, "Größe..."},
		{"tiny limit", "abcdef", 2, "ab"},
		{"zero limit", "abcdef", 0, ""},
		{"negative limit", "abcdef", -1, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncateString(tt.s, tt.maxLen); got != tt.want {
				t.Errorf("truncateString(%q, %d) = %q, want %q", tt.s, tt.maxLen, got, tt.want)
			}
		})
	}
}
