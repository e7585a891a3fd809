// ABOUTME: Display-width measurement and truncation for picker rows
// ABOUTME: Grapheme-aware via uniseg; fast path for plain ASCII

package textwidth

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Width returns the display width of s in terminal cells.
func Width(s string) int {
	if isPlainASCII(s) {
		return len(s)
	}
	w := 0
	state := -1
	for len(s) > 0 {
		cluster, rest, _, newState := uniseg.FirstGraphemeClusterInString(s, state)
		w += clusterWidth(cluster)
		s = rest
		state = newState
	}
	return w
}

// Truncate cuts s to at most max cells, appending an ellipsis when
// anything was dropped. max below 2 returns the bare cut.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if Width(s) <= max {
		return s
	}

	budget := max
	ellipsis := "…"
	if max >= 2 {
		budget = max - 1
	} else {
		ellipsis = ""
	}

	out := make([]byte, 0, len(s))
	w := 0
	state := -1
	for len(s) > 0 {
		cluster, rest, _, newState := uniseg.FirstGraphemeClusterInString(s, state)
		cw := clusterWidth(cluster)
		if w+cw > budget {
			break
		}
		out = append(out, cluster...)
		w += cw
		s = rest
		state = newState
	}
	return string(out) + ellipsis
}

// Pad right-pads s with spaces to exactly max cells, truncating first
// when it is too wide.
func Pad(s string, max int) string {
	s = Truncate(s, max)
	for w := Width(s); w < max; w++ {
		s += " "
	}
	return s
}

func isPlainASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7E {
			return false
		}
	}
	return true
}

func clusterWidth(cluster string) int {
	if cluster == "" {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(cluster)
	return runewidth.RuneWidth(r)
}
