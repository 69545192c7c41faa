// Package depotsdk is the HTTP client for the file depot API. It covers the
// small surface bundlesync needs: identity verification, whole-file
// download/upload and the chunked upload session protocol.
package depotsdk

import (
	"fmt"
	"runtime"

	"github.com/imroc/req/v3"
	"github.com/packworks/bundlesync/internal/version"
)

const (
	HeaderUserAgent = "User-Agent"
	HeaderVersion   = "X-Bundlesync-Version"
)

var userAgent = fmt.Sprintf("BundleSync/%s (%s; %s/%s)", version.Version, version.Revision, runtime.GOOS, runtime.GOARCH)

// Client is the depot API client.
type Client struct {
	http    *req.Client
	baseURL string

	Account *AccountAPI
	Files   *FilesAPI
}

// New creates a depot client for the given server, authenticating every call
// with the access token. Remote calls are single-attempt; the pipeline treats
// any remote failure as fatal, so the client must not retry behind its back.
func New(serverURL string, accessToken string) (*Client, error) {
	if serverURL == "" {
		return nil, ErrNoServerURL
	}
	if accessToken == "" {
		return nil, ErrNoAccessToken
	}

	client := req.C().
		SetBaseURL(serverURL).
		SetUserAgent(userAgent).
		SetCommonHeader(HeaderVersion, version.Version).
		SetCommonBearerAuthToken(accessToken).
		SetCommonErrorResult(&APIError{})

	return &Client{
		http:    client,
		baseURL: serverURL,
		Account: &AccountAPI{client: client},
		Files:   &FilesAPI{client: client},
	}, nil
}

// Close releases idle connections held by the underlying transport.
func (c *Client) Close() {
	c.http.GetTransport().CloseIdleConnections()
}
