package publisher

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

const (
	artifactSuffix   = ".tar.gz"
	normalizedSuffix = ".tgz"
)

// ErrArtifactVanished means the discovered artifact disappeared before it
// could be renamed.
var ErrArtifactVanished = errors.New("publisher: artifact vanished")

// NormalizeArtifact renames the artifact's `.tar.gz` suffix to `.tgz` and
// returns the new path. An existing file at the target path is removed first
// (last normalize wins). A path already carrying the target suffix passes
// through unchanged.
func NormalizeArtifact(path string) (string, error) {
	if strings.HasSuffix(path, normalizedSuffix) {
		return path, nil
	}
	if !strings.HasSuffix(path, artifactSuffix) {
		return "", fmt.Errorf("publisher: %q does not end in %s", path, artifactSuffix)
	}

	target := strings.TrimSuffix(path, artifactSuffix) + normalizedSuffix

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %q", ErrArtifactVanished, path)
		}
		return "", fmt.Errorf("publisher: stat %q: %w", path, err)
	}

	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("publisher: remove %q: %w", target, err)
	}

	if err := os.Rename(path, target); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %q", ErrArtifactVanished, path)
		}
		return "", fmt.Errorf("publisher: rename %q: %w", path, err)
	}

	return target, nil
}
