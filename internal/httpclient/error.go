package httpclient

import (
	goerrors "errors"
	"net/http"

	ierr "github.com/mjfashion/billdesk/internal/errors"
)

// Error represents an HTTP client error
type Error struct {
	*ierr.InternalError
	StatusCode int
	Response   []byte
}

func (e *Error) Unwrap() error {
	return e.InternalError.Unwrap()
}

func (e *Error) Error() string {
	return e.InternalError.Error()
}

// NewError creates a new HTTP client error
func NewError(statusCode int, response []byte) *Error {
	message := ierr.ParseAPIErrorBody(response)
	if message == "" {
		message = http.StatusText(statusCode)
	}
	return &Error{
		InternalError: ierr.New(ierr.ErrCodeHTTPClient, message),
		StatusCode:    statusCode,
		Response:      response,
	}
}

// Wrap attaches the api message as hint and marks the error with the sentinel matching its status
func Wrap(e *Error) error {
	return ierr.WithError(e).
		WithHint(e.Message).
		WithReportableDetails(map[string]any{
			"status_code": e.StatusCode,
		}).
		Mark(ierr.FromHTTPStatus(e.StatusCode))
}

// IsHTTPError checks if an error is an HTTP client error
func IsHTTPError(err error) (*Error, bool) {
	var httpErr *Error
	if goerrors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}
