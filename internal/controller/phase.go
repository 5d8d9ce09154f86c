package controller

import (
	goerrors "errors"

	"github.com/walkcore/walkcore-client/internal/transport"
)

// Phase is the lifecycle state of one screen's view-state. Success and Error
// are both resumable: submitting again re-enters Loading.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSuccess
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

const unknownErrorMessage = "unknown error occurred"

// displayMessage reduces a repository error to user-facing text. The
// backend's own message is preferred when the error is a well-formed API
// error; otherwise the error text, then the screen-specific fallback.
func displayMessage(err error, fallback string) string {
	var apiErr *transport.APIError
	if goerrors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	if fallback != "" {
		return fallback
	}
	return unknownErrorMessage
}

// Metric outcome labels shared by all controllers
const (
	outcomeSuccess         = "success"
	outcomeError           = "error"
	outcomeValidationError = "validation_error"
)
