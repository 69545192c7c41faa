package depotsdk

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/imroc/req/v3"
	"github.com/packworks/bundlesync/internal/utils"
)

const (
	v1FileDownload  = "/api/v1/files/download"
	v1FileUpload    = "/api/v1/files/upload"
	v1SessionStart  = "/api/v1/files/session/start"
	v1SessionAppend = "/api/v1/files/session/append"
	v1SessionFinish = "/api/v1/files/session/finish"

	contentTypeOctetStream = "application/octet-stream"
)

type FilesAPI struct {
	client *req.Client
}

type startSessionResponse struct {
	SessionID string `json:"session_id"`
}

// DownloadToFile fetches the remote path into localPath. A missing remote
// file yields ErrNotFound and leaves localPath untouched.
func (f *FilesAPI) DownloadToFile(ctx context.Context, remotePath, localPath string) error {
	resp, err := f.client.R().
		SetContext(ctx).
		DisableAutoReadResponse().
		SetQueryParam("path", remotePath).
		Get(v1FileDownload)
	if err != nil {
		return fmt.Errorf("depotsdk: download %q: %w", remotePath, err)
	}
	defer resp.Body.Close()

	if resp.IsErrorState() {
		// The body was not auto-read, so drain it for the error payload.
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if resp.StatusCode == 404 {
			return fmt.Errorf("depotsdk: download %q: %w", remotePath, ErrNotFound)
		}
		return fmt.Errorf("depotsdk: download %q: status %s: %s", remotePath, resp.Status, body)
	}

	if err := utils.EnsureParent(localPath); err != nil {
		return fmt.Errorf("depotsdk: download %q: %w", remotePath, err)
	}

	out, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("depotsdk: download %q: %w", remotePath, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		os.Remove(localPath)
		return fmt.Errorf("depotsdk: download %q: %w", remotePath, err)
	}

	return out.Close()
}

// UploadWhole writes the payload to the remote path in a single request.
func (f *FilesAPI) UploadWhole(ctx context.Context, data []byte, remotePath string, overwrite bool) error {
	resp, err := f.client.R().
		SetContext(ctx).
		SetQueryParam("path", remotePath).
		SetQueryParam("overwrite", strconv.FormatBool(overwrite)).
		SetContentType(contentTypeOctetStream).
		SetBodyBytes(data).
		Put(v1FileUpload)

	return handleAPIError(resp, err, fmt.Sprintf("upload %q", remotePath))
}

// StartSession opens an upload session seeded with the first chunk and
// returns the session id.
func (f *FilesAPI) StartSession(ctx context.Context, firstChunk []byte) (string, error) {
	var result startSessionResponse
	resp, err := f.client.R().
		SetContext(ctx).
		SetContentType(contentTypeOctetStream).
		SetBodyBytes(firstChunk).
		SetSuccessResult(&result).
		Post(v1SessionStart)

	if err := handleAPIError(resp, err, "start session"); err != nil {
		return "", err
	}
	if result.SessionID == "" {
		return "", fmt.Errorf("depotsdk: start session: empty session id")
	}

	return result.SessionID, nil
}

// AppendSession adds a chunk at the given offset. The offset must match the
// bytes the depot has acknowledged so far.
func (f *FilesAPI) AppendSession(ctx context.Context, sessionID string, offset int64, chunk []byte) error {
	resp, err := f.client.R().
		SetContext(ctx).
		SetQueryParam("session_id", sessionID).
		SetQueryParam("offset", strconv.FormatInt(offset, 10)).
		SetContentType(contentTypeOctetStream).
		SetBodyBytes(chunk).
		Post(v1SessionAppend)

	return handleAPIError(resp, err, fmt.Sprintf("append session at %d", offset))
}

// FinishSession commits the session to the remote path. The payload is
// empty; all bytes were sent through start/append.
func (f *FilesAPI) FinishSession(ctx context.Context, sessionID string, offset int64, remotePath string, overwrite bool) error {
	resp, err := f.client.R().
		SetContext(ctx).
		SetQueryParam("session_id", sessionID).
		SetQueryParam("offset", strconv.FormatInt(offset, 10)).
		SetQueryParam("path", remotePath).
		SetQueryParam("overwrite", strconv.FormatBool(overwrite)).
		SetContentType(contentTypeOctetStream).
		Post(v1SessionFinish)

	return handleAPIError(resp, err, fmt.Sprintf("finish session %q", remotePath))
}
