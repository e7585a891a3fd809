// ABOUTME: Picker rendering: list pane, preview pane, filter and status lines
// ABOUTME: Lipgloss styles with grapheme-aware row truncation

package picker

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/swatchdev/swatch/internal/textwidth"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	cursorStyle   = lipgloss.NewStyle().Bold(true).Reverse(true)
	currentStyle  = lipgloss.NewStyle().Bold(true)
	dimStyle      = lipgloss.NewStyle().Faint(true)
	statusStyle   = lipgloss.NewStyle().Italic(true)
	previewBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
)

const minPreviewWidth = 30

// View renders the full picker surface.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "loading themes..."
	}

	listWidth := m.width / 3
	if listWidth < 20 {
		listWidth = m.width
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("swatch themes"))
	b.WriteString("\n")
	b.WriteString("filter: " + m.query + "▏")
	b.WriteString("\n\n")

	listHeight := m.height - 6
	if listHeight < 1 {
		listHeight = 1
	}
	list := m.renderList(listWidth, listHeight)

	if m.width-listWidth >= minPreviewWidth {
		preview := m.renderPreview(m.width - listWidth - 4)
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list, preview))
	} else {
		b.WriteString(list)
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render("enter: switch  ↑/↓: move  esc: quit"))
	return b.String()
}

func (m *Model) renderList(width, height int) string {
	if len(m.filtered) == 0 {
		return dimStyle.Render("no themes match")
	}

	// Keep the cursor in view.
	start := 0
	if m.cursor >= height {
		start = m.cursor - height + 1
	}
	end := start + height
	if end > len(m.filtered) {
		end = len(m.filtered)
	}

	var rows []string
	for i := start; i < end; i++ {
		bundle := m.bundles[m.filtered[i]]
		marker := "  "
		if bundle.ID == m.current {
			marker = "* "
		}
		row := textwidth.Pad(marker+bundle.ID, width)
		switch {
		case i == m.cursor:
			row = cursorStyle.Render(row)
		case bundle.ID == m.current:
			row = currentStyle.Render(row)
		}
		rows = append(rows, row)
	}
	return strings.Join(rows, "\n")
}

func (m *Model) renderPreview(width int) string {
	b := m.selected()
	if b == nil {
		return ""
	}

	var lines []string
	lines = append(lines, titleStyle.Render(b.Manifest.Name))
	if b.Manifest.Author != "" {
		lines = append(lines, dimStyle.Render("by "+b.Manifest.Author))
	}
	lines = append(lines, dimStyle.Render(textwidth.Truncate(b.Dir, width)))
	lines = append(lines, "")

	keys := make([]string, 0, len(b.Manifest.Colors))
	for k := range b.Manifest.Colors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		swatchBlock := lipgloss.NewStyle().
			Background(lipgloss.Color(b.Manifest.Colors[k])).
			Render("   ")
		lines = append(lines, swatchBlock+" "+k+" "+dimStyle.Render(b.Manifest.Colors[k]))
	}

	if md := m.readme(); md != "" {
		lines = append(lines, "", m.md.render(md, width))
	}

	return previewBorder.Width(width).Render(strings.Join(lines, "\n"))
}
