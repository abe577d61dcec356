package upload

import (
	"errors"
	"fmt"
)

const (
	uploadFailedText = "Upload failed"
	unknownErrorText = "Unknown error"
)

// Validation errors. Their text is shown to the user as is.
var (
	ErrNoFile      = errors.New("Please select a file")
	ErrNoRecipient = errors.New("Please enter a recipient")
)

// ServerError is returned when the daemon answers with a non-2xx status.
type ServerError struct {
	StatusCode int
	// Message is the daemon's "message" field, empty if it sent none.
	Message string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return uploadFailedText
	}
	return e.Message
}

// failureMessage turns any submission error into the status line text.
func failureMessage(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return unknownErrorText
}

// errInvalidBody wraps a success response whose body is not JSON.
func errInvalidBody(err error) error {
	return fmt.Errorf("invalid response body: %w", err)
}
