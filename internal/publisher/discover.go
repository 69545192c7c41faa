package publisher

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrNoArtifacts means nothing in the work dir matched the artifact pattern.
var ErrNoArtifacts = errors.New("publisher: no matching artifacts")

// FindNewestArtifact returns the pattern match in dir with the latest
// modification time. Ties are broken by whatever order the filesystem
// returned, which is not deterministic.
func FindNewestArtifact(dir, pattern string) (string, error) {
	matches, err := doublestar.FilepathGlob(filepath.Join(dir, pattern))
	if err != nil {
		return "", fmt.Errorf("publisher: glob %q: %w", pattern, err)
	}

	var newest string
	var newestMtime time.Time
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		if newest == "" || info.ModTime().After(newestMtime) {
			newest = match
			newestMtime = info.ModTime()
		}
	}

	if newest == "" {
		return "", fmt.Errorf("%w: %q in %q", ErrNoArtifacts, pattern, dir)
	}
	return newest, nil
}
