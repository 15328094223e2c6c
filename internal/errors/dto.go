package errors

import (
	"encoding/json"
	"strings"
)

// APIErrorBody is the error envelope returned by the billing api.
// Depending on the endpoint the text is carried in either field.
type APIErrorBody struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// Text returns the first non empty message of the body
func (b APIErrorBody) Text() string {
	if b.Error != "" {
		return b.Error
	}
	return b.Message
}

// ParseAPIErrorBody extracts a display message from a raw response body.
// Non JSON bodies are returned trimmed.
func ParseAPIErrorBody(raw []byte) string {
	var body APIErrorBody
	if err := json.Unmarshal(raw, &body); err == nil && body.Text() != "" {
		return body.Text()
	}
	return strings.TrimSpace(string(raw))
}
