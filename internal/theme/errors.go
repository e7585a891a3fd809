// ABOUTME: Sentinel errors and diagnostics for theme repository operations
// ABOUTME: Callers classify failures with errors.Is; List reports via Diagnostic

package theme

import "errors"

var (
	// ErrThemeNotFound means no bundle directory matches the requested id.
	ErrThemeNotFound = errors.New("theme not found")

	// ErrInvalidBundle means the bundle exists but fails manifest or
	// required-fragment validation.
	ErrInvalidBundle = errors.New("invalid theme bundle")

	// ErrInvalidThemeID means the identifier is malformed or attempts to
	// escape the themes root. Rejected before any filesystem lookup.
	ErrInvalidThemeID = errors.New("invalid theme id")
)

// Diagnostic describes a bundle that was skipped during enumeration.
// Published on the repository's bus instead of failing the listing.
type Diagnostic struct {
	ID     string
	Reason error
}
