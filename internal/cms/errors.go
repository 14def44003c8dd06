package cms

import (
	"errors"
	"fmt"
)

// ============================================
// CMS CLIENT ERROR TAXONOMY
// ============================================
// Two failure classes, kept distinct so callers can branch on
// "is this a connectivity problem":
// - RemoteError: the CMS answered with a non-2xx status
// - NetworkError: no response at all (DNS, refused, timeout)

// RemoteError represents a non-2xx response from the CMS.
type RemoteError struct {
	StatusCode int    // HTTP status code (e.g. 404)
	Status     string // status line (e.g. "404 Not Found")
	Message    string // best-effort message extracted from the body
}

func (e *RemoteError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "Unknown error"
	}
	return fmt.Sprintf("%s. %s", e.Status, msg)
}

// NetworkError represents a transport-level failure: the request never
// produced an HTTP response.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsNetworkError reports whether err is (or wraps) a NetworkError.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// IsRemoteError reports whether err is (or wraps) a RemoteError.
func IsRemoteError(err error) bool {
	var re *RemoteError
	return errors.As(err, &re)
}
