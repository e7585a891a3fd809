// ABOUTME: Theme repository: enumerates and validates installed theme bundles
// ABOUTME: Re-validates on every gating call; malformed entries become diagnostics

package theme

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"

	"github.com/swatchdev/swatch/internal/config"
	"github.com/swatchdev/swatch/internal/eventbus"
	"github.com/swatchdev/swatch/internal/log"
)

// idPattern restricts theme ids to lowercase directory-name-safe
// characters. Leading dot is excluded, which also rules out "." and "..".
var idPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)

// Bundle is a validated theme: a directory of config fragments plus its
// manifest. Read-only to this core.
type Bundle struct {
	ID       string
	Dir      string
	Manifest *Manifest
	// Files maps logical fragment names to absolute paths. Contains the
	// manifest and every required or present optional fragment.
	Files map[string]string
}

// Repository enumerates and validates theme bundles under a root directory.
type Repository struct {
	root      string
	fragments map[string]config.Requirement
	bus       *eventbus.Bus[Diagnostic]
}

// NewRepository creates a repository over the given themes root.
// The root is resolved to an absolute path; bus may be nil.
func NewRepository(root string, fragments map[string]config.Requirement, bus *eventbus.Bus[Diagnostic]) (*Repository, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving themes root: %w", err)
	}
	if fragments == nil {
		fragments = config.DefaultFragments()
	}
	return &Repository{root: abs, fragments: fragments, bus: bus}, nil
}

// Root returns the absolute themes root directory.
func (r *Repository) Root() string {
	return r.root
}

// List enumerates the themes root and validates each entry concurrently.
// Hidden and non-directory entries are skipped. A malformed bundle does
// not fail the listing; it is omitted and published as a Diagnostic.
// Results are sorted by id.
func (r *Repository) List(ctx context.Context) ([]*Bundle, error) {
	entries, err := os.ReadDir(r.root)
	if err != nil {
		return nil, fmt.Errorf("reading themes root %s: %w", r.root, err)
	}

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		ids = append(ids, entry.Name())
	}

	// Each id validates into its own slot; no mutex needed.
	slots := make([]*Bundle, len(ids))
	g, ctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			bundle, err := r.Validate(id)
			if err != nil {
				log.Debug("skipping theme %s: %v", id, err)
				if r.bus != nil {
					r.bus.Publish(Diagnostic{ID: id, Reason: err})
				}
				return nil
			}
			slots[i] = bundle
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	bundles := make([]*Bundle, 0, len(slots))
	for _, b := range slots {
		if b != nil {
			bundles = append(bundles, b)
		}
	}
	sort.Slice(bundles, func(i, j int) bool { return bundles[i].ID < bundles[j].ID })
	return bundles, nil
}

// Validate re-reads the manifest and required fragments for the given id
// at call time. No caching: a switch must never act on stale state.
func (r *Repository) Validate(id string) (*Bundle, error) {
	dir, err := r.Dir(id)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("theme %q: %w", id, ErrThemeNotFound)
	}

	files := make(map[string]string)

	manifestPath := filepath.Join(dir, config.ManifestFile)
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("theme %q missing %s: %w", id, config.ManifestFile, ErrInvalidBundle)
	}
	manifest, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("theme %q: %v: %w", id, err, ErrInvalidBundle)
	}
	files[config.ManifestFile] = manifestPath

	for name, req := range r.fragments {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			if req == config.Required {
				return nil, fmt.Errorf("theme %q missing required fragment %s: %w", id, name, ErrInvalidBundle)
			}
			continue
		}
		if err := checkFragment(path); err != nil {
			return nil, fmt.Errorf("theme %q fragment %s: %v: %w", id, name, err, ErrInvalidBundle)
		}
		files[name] = path
	}

	return &Bundle{ID: id, Dir: dir, Manifest: manifest, Files: files}, nil
}

// Dir returns the absolute bundle directory for a well-formed id.
// Malformed or root-escaping ids are rejected before any lookup.
func (r *Repository) Dir(id string) (string, error) {
	id = norm.NFC.String(id)
	if !idPattern.MatchString(id) {
		return "", fmt.Errorf("theme id %q: %w", id, ErrInvalidThemeID)
	}
	dir := filepath.Join(r.root, id)
	// Join cleans the path; a result outside the root means traversal.
	if filepath.Dir(dir) != r.root {
		return "", fmt.Errorf("theme id %q escapes themes root: %w", id, ErrInvalidThemeID)
	}
	return dir, nil
}

// checkFragment sanity-checks a fragment file. TOML fragments must
// decode; other formats are opaque to this core.
func checkFragment(path string) error {
	if filepath.Ext(path) != ".toml" {
		return nil
	}
	var root map[string]any
	if _, err := toml.DecodeFile(path, &root); err != nil {
		return fmt.Errorf("decode toml: %w", err)
	}
	return nil
}
