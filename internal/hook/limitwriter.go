// ABOUTME: Bounded writer protecting against runaway hook output
// ABOUTME: Silently discards bytes past the limit and records truncation

package hook

import "io"

// limitedWriter wraps an io.Writer and discards data after limit bytes.
// Unlike an erroring writer it never fails the copy: the hook keeps
// running to completion (or timeout) with its excess output dropped.
type limitedWriter struct {
	w         io.Writer
	limit     int
	written   int
	truncated bool
}

func (lw *limitedWriter) Write(p []byte) (int, error) {
	remaining := lw.limit - lw.written
	if remaining <= 0 {
		lw.truncated = true
		return len(p), nil
	}
	if len(p) > remaining {
		n, err := lw.w.Write(p[:remaining])
		lw.written += n
		lw.truncated = true
		if err != nil {
			return n, err
		}
		return len(p), nil
	}
	n, err := lw.w.Write(p)
	lw.written += n
	return n, err
}
