package depotsdk

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
)

// UploadChunkSize is both the single-shot threshold and the session chunk
// size. Payloads up to this size go out in one request; anything larger is
// streamed through an upload session.
const UploadChunkSize = int64(8 * 1024 * 1024)

// Upload pushes the local file to the remote path, overwriting any previous
// content. Large files are sent through the session protocol: start carries
// the first chunk, append carries the rest, finish commits with an empty
// payload. The tracked offset only advances after the depot acknowledges a
// chunk, and every failure aborts the upload immediately.
//
// An aborted session is not cleaned up client-side; the depot expires stale
// sessions on its own.
func (f *FilesAPI) Upload(ctx context.Context, localPath, remotePath string) error {
	file, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("depotsdk: upload %q: %w", localPath, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("depotsdk: upload %q: %w", localPath, err)
	}
	size := info.Size()

	if size <= UploadChunkSize {
		data, err := io.ReadAll(file)
		if err != nil {
			return fmt.Errorf("depotsdk: upload %q: %w", localPath, err)
		}
		return f.UploadWhole(ctx, data, remotePath, true)
	}

	return f.uploadViaSession(ctx, file, size, remotePath)
}

func (f *FilesAPI) uploadViaSession(ctx context.Context, file *os.File, size int64, remotePath string) error {
	buf := make([]byte, UploadChunkSize)

	if _, err := io.ReadFull(file, buf); err != nil {
		return fmt.Errorf("depotsdk: read first chunk: %w", err)
	}

	sessionID, err := f.StartSession(ctx, buf)
	if err != nil {
		return err
	}
	offset := UploadChunkSize

	slog.Debug("upload session started", "session", sessionID, "size", humanize.IBytes(uint64(size)))

	for offset < size {
		chunkLen := UploadChunkSize
		if remaining := size - offset; remaining < chunkLen {
			chunkLen = remaining
		}

		chunk := buf[:chunkLen]
		if _, err := io.ReadFull(file, chunk); err != nil {
			return fmt.Errorf("depotsdk: read chunk at %d: %w", offset, err)
		}

		if err := f.AppendSession(ctx, sessionID, offset, chunk); err != nil {
			return err
		}
		offset += chunkLen

		slog.Debug("upload session progress", "session", sessionID, "offset", offset, "total", size)
	}

	return f.FinishSession(ctx, sessionID, offset, remotePath, true)
}
