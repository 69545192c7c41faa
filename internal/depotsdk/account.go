package depotsdk

import (
	"context"

	"github.com/imroc/req/v3"
)

const v1AccountVerify = "/api/v1/account/verify"

type AccountInfo struct {
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
}

type AccountAPI struct {
	client *req.Client
}

// Verify checks the access token against the depot and returns the account
// it belongs to.
func (a *AccountAPI) Verify(ctx context.Context) (info *AccountInfo, err error) {
	resp, err := a.client.R().
		SetContext(ctx).
		SetSuccessResult(&info).
		Get(v1AccountVerify)

	if err := handleAPIError(resp, err, "verify account"); err != nil {
		return nil, err
	}

	return info, nil
}
