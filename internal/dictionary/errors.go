package dictionary

import (
	"errors"
	"fmt"
)

// GenericFailureMessage is shown when the service fails without a structured
// error body.
const GenericFailureMessage = "Something went wrong"

// ErrorKind classifies a lookup failure.
type ErrorKind int

const (
	// RemoteUnavailable means the service could not be reached at all.
	RemoteUnavailable ErrorKind = iota + 1
	// RemoteRejected means the service answered with a non-success status.
	RemoteRejected
)

func (k ErrorKind) String() string {
	switch k {
	case RemoteUnavailable:
		return "remote_unavailable"
	case RemoteRejected:
		return "remote_rejected"
	}
	return "unknown"
}

// LookupError is the failure shape of every remote dictionary operation.
type LookupError struct {
	Kind       ErrorKind
	Message    string
	StatusCode int
	cause      error
}

func (e *LookupError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (status %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *LookupError) Unwrap() error {
	return e.cause
}

// UserMessage extracts the human-readable message to display for a failed
// lookup. Unknown error shapes fall back to the generic message.
func UserMessage(err error) string {
	var lookupErr *LookupError
	if errors.As(err, &lookupErr) && lookupErr.Message != "" {
		return lookupErr.Message
	}
	return GenericFailureMessage
}
