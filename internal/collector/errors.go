package collector

import (
	"errors"
	"fmt"

	"github.com/fbcbank/card-intake/internal/schema"
)

var (
	ErrSubmitted  = errors.New("application already submitted")
	ErrInProgress = errors.New("submission already in progress")
)

// Messages shown to the applicant when the endpoint misbehaves.
const (
	MsgNonJSON      = "The server returned a non-JSON response. Please contact support."
	MsgInvalidJSON  = "The server returned an invalid response format. This might be due to a server error. Please try again later or contact support."
	MsgNetwork      = "Network error occurred. Please check your internet connection and try again."
	statusMsgFormat = "Failed to submit application (Status: %d)"
)

// ValidationError is returned by Submit when the form rules fail.
type ValidationError struct {
	Errors schema.Errors
	// Field is the first failing field, the one to focus.
	Field string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Errors.Error()
}

// SubmitError is any failure after the payload was handed to the network.
// Message is suitable for display; the form stays editable.
type SubmitError struct {
	Status  int // 0 when no response was received
	Message string
	Err     error
}

func (e *SubmitError) Error() string { return e.Message }

func (e *SubmitError) Unwrap() error { return e.Err }

func statusMessage(status int) string {
	return fmt.Sprintf(statusMsgFormat, status)
}
