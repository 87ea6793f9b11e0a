// Package artifact persists screenshots and printed documents produced by
// the WebDriver endpoints to disk, the way a real session would keep
// captured evidence around instead of only ever returning it inline.
package artifact

import (
	"context"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

// Store writes PNG screenshots and PDF print output under a base directory,
// one subdirectory per session.
type Store struct {
	fs      afero.Fs
	baseDir string
}

// NewStore creates a Store rooted at baseDir on the given filesystem. Pass
// afero.NewOsFs() in production; tests can use afero.NewMemMapFs().
func NewStore(fs afero.Fs, baseDir string) *Store {
	return &Store{fs: fs, baseDir: baseDir}
}

// Persist writes data to <baseDir>/<sessionID>/<name> and returns the path
// it was written to. The session's subdirectory is created on demand and
// an existing file at the same path is truncated and overwritten.
func (s *Store) Persist(ctx context.Context, sessionID, name string, data []byte) (string, error) {
	dir := filepath.Join(s.baseDir, sessionID)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, name)
	if err := afero.WriteFile(s.fs, path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// SaveScreenshot persists a base64-decoded PNG capture for sessionID under a
// timestamped name and returns the path it landed at.
func (s *Store) SaveScreenshot(ctx context.Context, sessionID string, png []byte, at time.Time) (string, error) {
	return s.Persist(ctx, sessionID, "screenshot-"+at.UTC().Format("20060102T150405.000")+".png", png)
}

// SavePrint persists a base64-decoded PDF produced by a print request.
func (s *Store) SavePrint(ctx context.Context, sessionID string, pdf []byte, at time.Time) (string, error) {
	return s.Persist(ctx, sessionID, "print-"+at.UTC().Format("20060102T150405.000")+".pdf", pdf)
}
