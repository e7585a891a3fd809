// ABOUTME: Tests for display width and truncation helpers
// ABOUTME: Covers ASCII fast path, wide runes, and ellipsis behavior

package textwidth

import "testing"

func TestWidth(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"tokyo-night", 11},
		{"日本語", 6},
		{"naïve", 5},
	}
	for _, tc := range cases {
		if got := Width(tc.in); got != tc.want {
			t.Errorf("Width(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	if got := Truncate("tokyo-night", 20); got != "tokyo-night" {
		t.Errorf("no-op truncate changed string: %q", got)
	}
	if got := Truncate("tokyo-night", 6); got != "tokyo…" {
		t.Errorf("Truncate = %q, want tokyo…", got)
	}
	if got := Truncate("anything", 0); got != "" {
		t.Errorf("Truncate(max=0) = %q", got)
	}
	if got := Width(Truncate("日本語テーマ", 5)); got > 5 {
		t.Errorf("truncated wide string is %d cells, want <= 5", got)
	}
}

func TestPad(t *testing.T) {
	t.Parallel()

	if got := Pad("ab", 5); got != "ab   " {
		t.Errorf("Pad = %q", got)
	}
	if got := Width(Pad("long-theme-name", 4)); got != 4 {
		t.Errorf("Pad should clamp to 4 cells, got %d", got)
	}
}
