package publisher

import (
	"context"

	"github.com/packworks/bundlesync/internal/depotsdk"
)

// depotAdapter narrows a depotsdk.Client to the RemoteDepot interface.
type depotAdapter struct {
	sdk *depotsdk.Client
}

// NewDepot wraps a depot SDK client for use by the pipeline.
func NewDepot(sdk *depotsdk.Client) RemoteDepot {
	return &depotAdapter{sdk: sdk}
}

func (d *depotAdapter) VerifyIdentity(ctx context.Context) error {
	_, err := d.sdk.Account.Verify(ctx)
	return err
}

func (d *depotAdapter) DownloadToFile(ctx context.Context, remotePath, localPath string) error {
	return d.sdk.Files.DownloadToFile(ctx, remotePath, localPath)
}

func (d *depotAdapter) Upload(ctx context.Context, localPath, remotePath string) error {
	return d.sdk.Files.Upload(ctx, localPath, remotePath)
}
