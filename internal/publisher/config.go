package publisher

import (
	"errors"
	"path/filepath"

	"github.com/packworks/bundlesync/internal/utils"
)

// Canonical names. The master bundle lives under a fixed name in the work
// directory and at the depot root; neither is configurable.
const (
	MasterBundleName = "master_bundle.tar"
	RemoteBundlePath = "/" + MasterBundleName

	// ArtifactPattern matches the incoming package files in the work dir.
	ArtifactPattern = "*.tar.gz"
)

var ErrNoAccessToken = errors.New("publisher: access token missing")

// Config is the publish pipeline configuration, resolved once at startup.
type Config struct {
	// WorkDir holds the incoming artifacts and the local master bundle.
	WorkDir string
	// ServerURL is the depot endpoint.
	ServerURL string
	// AccessToken is the opaque depot credential.
	AccessToken string
}

func (c *Config) Validate() error {
	if c.AccessToken == "" {
		return ErrNoAccessToken
	}
	if c.ServerURL == "" {
		return errors.New("publisher: server url missing")
	}

	workDir, err := utils.ResolvePath(c.WorkDir)
	if err != nil {
		return err
	}
	c.WorkDir = workDir
	return nil
}

// ArchivePath is the canonical local path of the master bundle.
func (c *Config) ArchivePath() string {
	return filepath.Join(c.WorkDir, MasterBundleName)
}
