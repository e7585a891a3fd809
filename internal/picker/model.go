// ABOUTME: Bubbletea model for the interactive theme picker
// ABOUTME: Fuzzy-filtered catalog list; enter switches via the engine

package picker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/swatchdev/swatch/internal/engine"
	"github.com/swatchdev/swatch/internal/pointer"
	"github.com/swatchdev/swatch/internal/theme"
)

type bundlesLoadedMsg struct {
	bundles []*theme.Bundle
}

type refreshMsg struct{}

type switchDoneMsg struct {
	result engine.Result
}

type loadErrMsg struct {
	err error
}

// Model is the picker's bubbletea model.
type Model struct {
	eng  *engine.Engine
	repo *theme.Repository
	ptr  *pointer.Pointer

	refresh <-chan struct{} // catalog watcher ticks, may be nil

	bundles  []*theme.Bundle
	filtered []int // indices into bundles
	query    string
	cursor   int
	current  string // active theme id, from the pointer

	md        *markdownRenderer
	width     int
	height    int
	status    string
	switching bool
	quitting  bool
}

// New creates a picker over an engine, repository, and pointer.
// refresh may be nil when no watcher is running.
func New(eng *engine.Engine, repo *theme.Repository, ptr *pointer.Pointer, refresh <-chan struct{}) *Model {
	return &Model{
		eng:     eng,
		repo:    repo,
		ptr:     ptr,
		refresh: refresh,
		md:      newMarkdownRenderer(),
	}
}

// Init loads the catalog and arms the refresh listener.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadCatalog()}
	if m.refresh != nil {
		cmds = append(cmds, m.waitForRefresh())
	}
	return tea.Batch(cmds...)
}

func (m *Model) loadCatalog() tea.Cmd {
	return func() tea.Msg {
		bundles, err := m.repo.List(context.Background())
		if err != nil {
			return loadErrMsg{err: err}
		}
		return bundlesLoadedMsg{bundles: bundles}
	}
}

func (m *Model) waitForRefresh() tea.Cmd {
	ch := m.refresh
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return refreshMsg{}
	}
}

func (m *Model) switchCmd(id string) tea.Cmd {
	return func() tea.Msg {
		return switchDoneMsg{result: m.eng.SwitchTo(context.Background(), id)}
	}
}

// Update handles key, size, and async messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case bundlesLoadedMsg:
		m.bundles = msg.bundles
		if id, err := m.ptr.Current(); err == nil {
			m.current = id
		} else {
			m.current = ""
			if errors.Is(err, pointer.ErrBroken) {
				m.status = "current theme was deleted; pick a new one"
			}
		}
		m.applyFilter()
		return m, nil

	case refreshMsg:
		return m, tea.Batch(m.loadCatalog(), m.waitForRefresh())

	case loadErrMsg:
		m.status = "catalog error: " + msg.err.Error()
		return m, nil

	case switchDoneMsg:
		m.switching = false
		res := msg.result
		switch {
		case res.Err != nil:
			m.status = "switch failed: " + res.Err.Error()
		case res.Hook.Skipped:
			m.current = res.ThemeID
			m.status = "switched to " + res.ThemeID + " (no hook configured)"
		case !res.Hook.Success():
			m.current = res.ThemeID
			m.status = "switched to " + res.ThemeID + ", but the hook failed"
		default:
			m.current = res.ThemeID
			m.status = "switched to " + res.ThemeID
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit

	case "up", "ctrl+p":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "ctrl+n":
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}
		return m, nil

	case "enter":
		if m.switching {
			return m, nil
		}
		if b := m.selected(); b != nil {
			m.switching = true
			m.status = "switching to " + b.ID + "..."
			return m, m.switchCmd(b.ID)
		}
		return m, nil

	case "backspace":
		if m.query != "" {
			m.query = m.query[:len(m.query)-1]
			m.applyFilter()
		}
		return m, nil

	default:
		if msg.Type == tea.KeyRunes {
			m.query += string(msg.Runes)
			m.applyFilter()
		}
		return m, nil
	}
}

// applyFilter recomputes the visible subset from the query.
func (m *Model) applyFilter() {
	if m.query == "" {
		m.filtered = make([]int, len(m.bundles))
		for i := range m.bundles {
			m.filtered[i] = i
		}
	} else {
		names := make([]string, len(m.bundles))
		for i, b := range m.bundles {
			names[i] = b.ID + " " + b.Manifest.Name
		}
		matches := fuzzy.Find(m.query, names)
		m.filtered = make([]int, len(matches))
		for i, match := range matches {
			m.filtered[i] = match.Index
		}
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// selected returns the bundle under the cursor, or nil.
func (m *Model) selected() *theme.Bundle {
	if m.cursor < 0 || m.cursor >= len(m.filtered) {
		return nil
	}
	return m.bundles[m.filtered[m.cursor]]
}

// readme returns the selected bundle's README contents, if any.
func (m *Model) readme() string {
	b := m.selected()
	if b == nil {
		return ""
	}
	data, err := os.ReadFile(filepath.Join(b.Dir, "README.md"))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
