// Package publisher drives the bundle publish pipeline: discover the newest
// artifact, normalize its name, merge it into the local master bundle, and
// push the bundle to the depot. The steps run strictly in order and any
// failure aborts the run; a merged-but-not-uploaded bundle stays merged
// locally and goes out on the next run.
package publisher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/packworks/bundlesync/internal/depotsdk"
	"github.com/packworks/bundlesync/internal/tarx"
	"github.com/packworks/bundlesync/internal/utils"
)

// RemoteDepot is the slice of the depot API the pipeline needs.
type RemoteDepot interface {
	VerifyIdentity(ctx context.Context) error
	DownloadToFile(ctx context.Context, remotePath, localPath string) error
	Upload(ctx context.Context, localPath, remotePath string) error
}

// Publisher runs the publish pipeline against one work directory.
type Publisher struct {
	cfg   *Config
	depot RemoteDepot
}

func New(cfg *Config, depot RemoteDepot) *Publisher {
	return &Publisher{cfg: cfg, depot: depot}
}

// Run executes one publish. Exactly one artifact is processed per run.
func (p *Publisher) Run(ctx context.Context) error {
	slog.Info("bundle publish start", "workdir", p.cfg.WorkDir, "server", p.cfg.ServerURL)

	if err := p.depot.VerifyIdentity(ctx); err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	slog.Info("depot credentials verified")

	artifact, err := FindNewestArtifact(p.cfg.WorkDir, ArtifactPattern)
	if err != nil {
		return fmt.Errorf("discover: %w", err)
	}
	slog.Info("artifact discovered", "path", artifact)

	normalized, err := NormalizeArtifact(artifact)
	if err != nil {
		return fmt.Errorf("normalize: %w", err)
	}
	if normalized != artifact {
		slog.Info("artifact normalized", "from", filepath.Base(artifact), "to", filepath.Base(normalized))
	}

	archivePath := p.cfg.ArchivePath()

	if err := p.fetchBundle(ctx, archivePath); err != nil {
		return fmt.Errorf("fetch: %w", err)
	}

	memberName := filepath.Base(normalized)
	if err := tarx.Merge(archivePath, memberName, normalized); err != nil {
		return fmt.Errorf("merge: %w", err)
	}
	slog.Info("artifact merged", "member", memberName, "bundle", archivePath)

	if err := p.depot.Upload(ctx, archivePath, RemoteBundlePath); err != nil {
		return fmt.Errorf("upload: %w", err)
	}

	if info, err := os.Stat(archivePath); err == nil {
		slog.Info("bundle publish complete", "remote", RemoteBundlePath, "size", humanize.IBytes(uint64(info.Size())))
	} else {
		slog.Info("bundle publish complete", "remote", RemoteBundlePath)
	}
	return nil
}

// fetchBundle bootstraps the local master bundle from the depot when it does
// not exist locally. A local bundle is never overwritten: it may hold merges
// that a previous run failed to upload.
func (p *Publisher) fetchBundle(ctx context.Context, archivePath string) error {
	if utils.FileExists(archivePath) {
		return nil
	}

	err := p.depot.DownloadToFile(ctx, RemoteBundlePath, archivePath)
	if errors.Is(err, depotsdk.ErrNotFound) {
		slog.Info("no remote bundle, starting fresh", "remote", RemoteBundlePath)
		return nil
	}
	if err != nil {
		return err
	}

	slog.Info("remote bundle fetched", "remote", RemoteBundlePath, "local", archivePath)
	return nil
}
