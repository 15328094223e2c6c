package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mjfashion/billdesk/internal/config"
	ierr "github.com/mjfashion/billdesk/internal/errors"
	"github.com/mjfashion/billdesk/internal/httpclient"
	"github.com/mjfashion/billdesk/internal/logger"
	"github.com/mjfashion/billdesk/internal/types"
)

// apiClient sends json requests to the billing api
type apiClient struct {
	baseURL string
	client  httpclient.Client
	logger  *logger.Logger
}

func newAPIClient(cfg *config.Configuration, client httpclient.Client, log *logger.Logger) *apiClient {
	return &apiClient{
		baseURL: strings.TrimRight(cfg.API.BaseURL, "/"),
		client:  client,
		logger:  log,
	}
}

// call sends body as json to path and decodes the response into out.
// Authorized calls take the bearer token from the context.
func (c *apiClient) call(ctx context.Context, method, path string, authorized bool, body, out any) error {
	headers := map[string]string{}
	if authorized {
		token := types.GetJWT(ctx)
		if token == "" {
			return ierr.NewError("missing bearer token").
				WithHint("Please sign in first").
				Mark(ierr.ErrPermissionDenied)
		}
		headers["Authorization"] = "Bearer " + token
	}

	var raw []byte
	if body != nil {
		var err error
		raw, err = json.Marshal(body)
		if err != nil {
			return ierr.WithError(err).
				WithHintf("Failed to encode %s request", path).
				Mark(ierr.ErrSystem)
		}
	}

	resp, err := c.client.Send(ctx, &httpclient.Request{
		Method:  method,
		URL:     c.baseURL + "/" + strings.TrimLeft(path, "/"),
		Headers: headers,
		Body:    raw,
	})
	if err != nil {
		c.logger.Debugw("billing api call failed",
			"method", method,
			"path", path,
			"error", err)
		return err
	}

	if out == nil || len(resp.Body) == 0 || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return ierr.WithError(err).
			WithHintf("Unexpected response from %s", path).
			WithReportableDetails(map[string]any{
				"method": method,
				"path":   path,
			}).
			Mark(ierr.ErrHTTPClient)
	}
	return nil
}
