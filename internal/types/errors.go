package types

import (
	"errors"
	"fmt"
)

// ErrNoInput means the request carried no media file. User-correctable.
var ErrNoInput = errors.New("no input media provided")

// ErrMissingAPIKey means the transcription credential is not configured.
var ErrMissingAPIKey = errors.New("transcription API key is not configured")

// UpstreamError reports a failed call to an external collaborator. Body is
// truncated and secret-redacted before it is stored here.
type UpstreamError struct {
	Stage  string
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: upstream status %d: %s", e.Stage, e.Status, e.Body)
	}
	return fmt.Sprintf("%s: upstream failure: %s", e.Stage, e.Body)
}
