package analytics

import "testing"

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"below one token", "abc", 0},
		{"exactly one token", "abcd", 1},
		{"rounds down", "abcdefg", 1},
		{"two tokens", "abcdefgh", 2},
		{"counts runes not bytes", "ααααββββ", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateTokens(tt.text); got != tt.want {
				t.Errorf("EstimateTokens(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}
