package depotsdk

import (
	"errors"
	"fmt"

	"github.com/imroc/req/v3"
)

var (
	ErrNoServerURL   = errors.New("depotsdk: server url missing")
	ErrNoAccessToken = errors.New("depotsdk: access token missing")

	// ErrNotFound means the remote path does not exist on the depot.
	ErrNotFound = errors.New("depotsdk: not found")
)

const (
	CodeInvalidRequest = "E_INVALID_REQUEST" // bad or invalid request
	CodeAccessDenied   = "E_ACCESS_DENIED"   // credentials rejected
	CodeNotFound       = "E_NOT_FOUND"       // remote path does not exist
	CodeSessionInvalid = "E_SESSION_INVALID" // unknown session id or offset mismatch
	CodeInternalError  = "E_INTERNAL_ERROR"  // depot-side failure
)

// APIError is the error body returned by the depot API.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"error"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: %s - %s", e.Code, e.Message)
}

// handleAPIError folds the transport error and the API error body of a
// response into a single error, nil when the call succeeded.
func handleAPIError(resp *req.Response, requestErr error, operation string) error {
	if requestErr != nil {
		return fmt.Errorf("depotsdk: %s: %w", operation, requestErr)
	}

	if resp.IsErrorState() {
		if apiErr, ok := resp.ErrorResult().(*APIError); ok && apiErr.Code != "" {
			if apiErr.Code == CodeNotFound {
				return fmt.Errorf("depotsdk: %s: %w: %s", operation, ErrNotFound, apiErr.Message)
			}
			return fmt.Errorf("depotsdk: %s: %w", operation, apiErr)
		}
		if resp.StatusCode == 404 {
			return fmt.Errorf("depotsdk: %s: %w", operation, ErrNotFound)
		}
		return fmt.Errorf("depotsdk: %s: unexpected status %s", operation, resp.Status)
	}

	return nil
}
