package youtube

import (
	"errors"
	"fmt"
)

// ErrNotFound means the video has no active live chat: the stream is not
// live, does not exist, or has chat turned off. Not retried automatically.
var ErrNotFound = errors.New("no active live chat found for video")

// ErrChatDisabled means upstream reported the live chat disabled, ended,
// or gone. Distinct from a transient failure: polling must stop until the
// host explicitly restarts.
var ErrChatDisabled = errors.New("live chat is disabled or not found")

// HTTPError represents a non-2xx API response that carries no recognized
// terminal reason.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// IsStatus returns true if err (or any wrapped error) is an HTTPError with
// the given status code.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	return false
}
