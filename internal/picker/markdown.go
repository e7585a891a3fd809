// ABOUTME: Markdown renderer wrapper around glamour for README previews
// ABOUTME: Caches rendered results keyed by content hash + width

package picker

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

type markdownRenderer struct {
	cache map[string]string // "hash:width" -> rendered
}

func newMarkdownRenderer() *markdownRenderer {
	return &markdownRenderer{cache: make(map[string]string)}
}

// render returns the terminal-styled rendering of the given markdown,
// falling back to the raw text if glamour fails.
func (r *markdownRenderer) render(md string, width int) string {
	if md == "" {
		return ""
	}

	key := cacheKey(md, width)
	if cached, ok := r.cache[key]; ok {
		return cached
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	rendered, err := renderer.Render(md)
	if err != nil {
		return md
	}
	rendered = strings.TrimRight(rendered, "\n ")

	r.cache[key] = rendered
	return rendered
}

func cacheKey(content string, width int) string {
	sum := sha256.Sum256([]byte(content))
	return fmt.Sprintf("%x:%d", sum[:8], width)
}
