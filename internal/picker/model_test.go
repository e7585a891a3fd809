// ABOUTME: Tests for picker model state: filtering, cursor bounds, switch flow
// ABOUTME: Drives Update directly with tea messages; no program loop

package picker

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/swatchdev/swatch/internal/engine"
	"github.com/swatchdev/swatch/internal/hook"
	"github.com/swatchdev/swatch/internal/pointer"
	"github.com/swatchdev/swatch/internal/theme"
)

func testBundles(ids ...string) []*theme.Bundle {
	bundles := make([]*theme.Bundle, len(ids))
	for i, id := range ids {
		bundles[i] = &theme.Bundle{
			ID:       id,
			Dir:      filepath.Join("/themes", id),
			Manifest: &theme.Manifest{Name: id, Colors: map[string]string{"bg": "#000000"}},
		}
	}
	return bundles
}

func loadedModel(t *testing.T, ids ...string) *Model {
	t.Helper()
	m := New(nil, nil, pointer.New(filepath.Join(t.TempDir(), "current")), nil)
	updated, _ := m.Update(bundlesLoadedMsg{bundles: testBundles(ids...)})
	return updated.(*Model)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestFilterNarrowsList(t *testing.T) {
	t.Parallel()

	m := loadedModel(t, "tokyo-night", "gruvbox", "nord")
	if len(m.filtered) != 3 {
		t.Fatalf("unfiltered list has %d entries, want 3", len(m.filtered))
	}

	updated, _ := m.Update(keyRunes("gruv"))
	m = updated.(*Model)

	if len(m.filtered) != 1 {
		t.Fatalf("filtered list has %d entries, want 1", len(m.filtered))
	}
	if m.selected().ID != "gruvbox" {
		t.Errorf("selected = %q, want gruvbox", m.selected().ID)
	}
}

func TestBackspaceWidensFilter(t *testing.T) {
	t.Parallel()

	m := loadedModel(t, "tokyo-night", "nord")
	updated, _ := m.Update(keyRunes("tokyo"))
	m = updated.(*Model)
	if len(m.filtered) != 1 {
		t.Fatalf("filtered = %d, want 1", len(m.filtered))
	}

	for i := 0; i < 5; i++ {
		updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
		m = updated.(*Model)
	}
	if len(m.filtered) != 2 {
		t.Errorf("filtered = %d after clearing query, want 2", len(m.filtered))
	}
}

func TestCursorStaysInBounds(t *testing.T) {
	t.Parallel()

	m := loadedModel(t, "a", "b")
	for i := 0; i < 5; i++ {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m = updated.(*Model)
	}
	if m.cursor != 1 {
		t.Errorf("cursor = %d, want clamped to 1", m.cursor)
	}
	for i := 0; i < 5; i++ {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
		m = updated.(*Model)
	}
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want clamped to 0", m.cursor)
	}
}

func TestSwitchDoneUpdatesStatus(t *testing.T) {
	t.Parallel()

	m := loadedModel(t, "nord")
	updated, _ := m.Update(switchDoneMsg{result: engine.Result{
		ThemeID:  "nord",
		Switched: true,
		Hook:     hook.Invocation{ExitCode: 0},
	}})
	m = updated.(*Model)

	if m.current != "nord" {
		t.Errorf("current = %q, want nord", m.current)
	}
	if !strings.Contains(m.status, "switched to nord") {
		t.Errorf("status = %q", m.status)
	}
}

func TestSwitchFailureKeepsCurrent(t *testing.T) {
	t.Parallel()

	m := loadedModel(t, "nord")
	m.current = "gruvbox"

	updated, _ := m.Update(switchDoneMsg{result: engine.Result{
		ThemeID: "nord",
		Err:     errors.New("no such theme"),
	}})
	m = updated.(*Model)

	if m.current != "gruvbox" {
		t.Errorf("current = %q, failed switch must not move it", m.current)
	}
	if !strings.Contains(m.status, "switch failed") {
		t.Errorf("status = %q", m.status)
	}
}

func TestHookFailureStillReportsSwitch(t *testing.T) {
	t.Parallel()

	m := loadedModel(t, "nord")
	updated, _ := m.Update(switchDoneMsg{result: engine.Result{
		ThemeID:  "nord",
		Switched: true,
		Hook:     hook.Invocation{ExitCode: 1, Err: errors.New("hook exited with status 1")},
	}})
	m = updated.(*Model)

	if m.current != "nord" {
		t.Errorf("current = %q, pointer updates even when the hook fails", m.current)
	}
	if !strings.Contains(m.status, "hook failed") {
		t.Errorf("status = %q", m.status)
	}
}

func TestViewRendersWithoutSize(t *testing.T) {
	t.Parallel()

	m := loadedModel(t, "nord")
	if v := m.View(); !strings.Contains(v, "loading") {
		t.Errorf("zero-size view = %q", v)
	}

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = updated.(*Model)
	if v := m.View(); !strings.Contains(v, "nord") {
		t.Errorf("sized view missing theme list: %q", v)
	}
}
