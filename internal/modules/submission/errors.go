package submission

import (
	"errors"
	"fmt"
)

var ErrNotReady = errors.New("draft does not pass final validation")

// RemoteError carries the booking collaborator's message verbatim; the user
// sees exactly what the server said and may retry.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("booking service rejected submission (status %d): %s", e.StatusCode, e.Message)
}
