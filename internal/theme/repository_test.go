// ABOUTME: Tests for repository enumeration, validation, and id safety
// ABOUTME: Builds real bundle fixtures under t.TempDir

package theme

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/swatchdev/swatch/internal/config"
	"github.com/swatchdev/swatch/internal/eventbus"
)

const validManifest = `name: Tokyo Night
author: folke
colors:
  background: "#1a1b26"
  foreground: "#c0caf5"
`

const validAlacritty = `[colors.primary]
background = "#1a1b26"
foreground = "#c0caf5"
`

func writeBundle(t *testing.T, root, id string, files map[string]string) {
	t.Helper()
	dir := filepath.Join(root, id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func writeValidBundle(t *testing.T, root, id string) {
	t.Helper()
	writeBundle(t, root, id, map[string]string{
		config.ManifestFile: validManifest,
		"alacritty.toml":    validAlacritty,
	})
}

func newRepo(t *testing.T, root string, bus *eventbus.Bus[Diagnostic]) *Repository {
	t.Helper()
	repo, err := NewRepository(root, nil, bus)
	if err != nil {
		t.Fatalf("NewRepository: %v", err)
	}
	return repo
}

func TestListReturnsSortedValidBundles(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeValidBundle(t, root, "tokyo-night")
	writeValidBundle(t, root, "gruvbox")

	repo := newRepo(t, root, nil)
	bundles, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(bundles) != 2 {
		t.Fatalf("List returned %d bundles, want 2", len(bundles))
	}
	if bundles[0].ID != "gruvbox" || bundles[1].ID != "tokyo-night" {
		t.Errorf("unsorted listing: %s, %s", bundles[0].ID, bundles[1].ID)
	}
	if bundles[1].Manifest.Name != "Tokyo Night" {
		t.Errorf("Manifest.Name = %q", bundles[1].Manifest.Name)
	}
}

func TestListSkipsHiddenAndNonDirectories(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeValidBundle(t, root, "nord")
	writeValidBundle(t, root, ".hidden")
	if err := os.WriteFile(filepath.Join(root, "stray.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	repo := newRepo(t, root, nil)
	bundles, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(bundles) != 1 || bundles[0].ID != "nord" {
		t.Errorf("List = %v, want just nord", bundles)
	}
}

func TestListReportsBrokenBundlesAsDiagnostics(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeValidBundle(t, root, "tokyo-night")
	// Manifest present, required terminal fragment missing.
	writeBundle(t, root, "broken-theme", map[string]string{
		config.ManifestFile: validManifest,
	})

	bus := eventbus.New[Diagnostic]()
	var mu sync.Mutex
	var diags []Diagnostic
	bus.Subscribe(func(d Diagnostic) {
		mu.Lock()
		diags = append(diags, d)
		mu.Unlock()
	})

	repo := newRepo(t, root, bus)
	bundles, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(bundles) != 1 || bundles[0].ID != "tokyo-night" {
		t.Fatalf("List = %v, want just tokyo-night", bundles)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(diags) != 1 || diags[0].ID != "broken-theme" {
		t.Fatalf("diagnostics = %v, want one for broken-theme", diags)
	}
	if !errors.Is(diags[0].Reason, ErrInvalidBundle) {
		t.Errorf("diagnostic reason = %v, want ErrInvalidBundle", diags[0].Reason)
	}
}

func TestValidateNotFound(t *testing.T) {
	t.Parallel()

	repo := newRepo(t, t.TempDir(), nil)
	_, err := repo.Validate("nonexistent-id")
	if !errors.Is(err, ErrThemeNotFound) {
		t.Errorf("Validate = %v, want ErrThemeNotFound", err)
	}
}

func TestValidateMissingManifest(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeBundle(t, root, "no-manifest", map[string]string{
		"alacritty.toml": validAlacritty,
	})

	repo := newRepo(t, root, nil)
	_, err := repo.Validate("no-manifest")
	if !errors.Is(err, ErrInvalidBundle) {
		t.Errorf("Validate = %v, want ErrInvalidBundle", err)
	}
}

func TestValidateRejectsBadPalette(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeBundle(t, root, "bad-colors", map[string]string{
		config.ManifestFile: "name: Bad\ncolors:\n  background: \"not-a-color\"\n",
		"alacritty.toml":    validAlacritty,
	})

	repo := newRepo(t, root, nil)
	_, err := repo.Validate("bad-colors")
	if !errors.Is(err, ErrInvalidBundle) {
		t.Errorf("Validate = %v, want ErrInvalidBundle", err)
	}
}

func TestValidateRejectsUndecodableTOMLFragment(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeBundle(t, root, "bad-toml", map[string]string{
		config.ManifestFile: validManifest,
		"alacritty.toml":    "[colors\nbroken",
	})

	repo := newRepo(t, root, nil)
	_, err := repo.Validate("bad-toml")
	if !errors.Is(err, ErrInvalidBundle) {
		t.Errorf("Validate = %v, want ErrInvalidBundle", err)
	}
}

func TestValidateResolvesFiles(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeBundle(t, root, "kitty-too", map[string]string{
		config.ManifestFile: validManifest,
		"alacritty.toml":    validAlacritty,
		"kitty.conf":        "background #1a1b26\n",
	})

	repo := newRepo(t, root, nil)
	bundle, err := repo.Validate("kitty-too")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	for _, name := range []string{config.ManifestFile, "alacritty.toml", "kitty.conf"} {
		path, ok := bundle.Files[name]
		if !ok {
			t.Errorf("Files missing %s", name)
			continue
		}
		if !filepath.IsAbs(path) {
			t.Errorf("Files[%s] = %q, want absolute path", name, path)
		}
	}
}

func TestDirRejectsUnsafeIDs(t *testing.T) {
	t.Parallel()

	repo := newRepo(t, t.TempDir(), nil)
	for _, id := range []string{"", "..", "../etc", "a/b", "/abs", ".hidden", "a b", "TokyoNight"} {
		if _, err := repo.Dir(id); !errors.Is(err, ErrInvalidThemeID) {
			t.Errorf("Dir(%q) = %v, want ErrInvalidThemeID", id, err)
		}
	}
}

func TestDirReturnsAbsolutePath(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	repo := newRepo(t, root, nil)
	dir, err := repo.Dir("tokyo-night")
	if err != nil {
		t.Fatalf("Dir: %v", err)
	}
	if dir != filepath.Join(repo.Root(), "tokyo-night") {
		t.Errorf("Dir = %q", dir)
	}
}
