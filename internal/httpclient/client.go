package httpclient

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/mjfashion/billdesk/internal/config"
	ierr "github.com/mjfashion/billdesk/internal/errors"
	"github.com/mjfashion/billdesk/internal/logger"
	"github.com/mjfashion/billdesk/internal/types"
)

const headerRequestID = "X-Request-ID"

// Request represents an HTTP request
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    []byte
}

// Response represents an HTTP response
type Response struct {
	StatusCode int
	Body       []byte
	Headers    map[string]string
}

// Client interface for making HTTP requests
type Client interface {
	Send(ctx context.Context, req *Request) (*Response, error)
}

// DefaultClient implements the Client interface on top of a retrying transport
type DefaultClient struct {
	client *retryablehttp.Client
	logger *logger.Logger
}

// NewDefaultClient creates a new DefaultClient using the api settings
func NewDefaultClient(cfg *config.Configuration, log *logger.Logger) Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = cfg.API.RetryMax
	rc.RetryWaitMin = cfg.API.RetryWaitMin
	rc.RetryWaitMax = cfg.API.RetryWaitMax
	rc.HTTPClient.Timeout = cfg.API.Timeout
	rc.Logger = log.GetRetryableLogger()
	// hand the final response back instead of a generic "giving up" error
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &DefaultClient{
		client: rc,
		logger: log,
	}
}

// Send makes an HTTP request and returns the response.
// Responses with a status of 400 or above are returned as *Error marked with
// the sentinel that matches the status.
func (c *DefaultClient) Send(ctx context.Context, req *Request) (*Response, error) {
	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Please check the request payload").
			Mark(ierr.ErrHTTPClient)
	}

	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")

	requestID := types.GetRequestID(ctx)
	if requestID == "" {
		requestID = types.GenerateUUID()
	}
	httpReq.Header.Set(headerRequestID, requestID)

	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		c.logger.Errorw("billing api request failed",
			"method", req.Method,
			"url", req.URL,
			"request_id", requestID,
			"error", err,
		)
		return nil, ierr.WithError(err).
			WithHint("Could not reach the billing service").
			Mark(ierr.ErrHTTPClient)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Could not read the billing service response").
			Mark(ierr.ErrHTTPClient)
	}

	headers := make(map[string]string)
	for k, v := range resp.Header {
		if len(v) > 0 {
			headers[k] = v[0]
		}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, Wrap(NewError(resp.StatusCode, respBody))
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       respBody,
		Headers:    headers,
	}, nil
}
