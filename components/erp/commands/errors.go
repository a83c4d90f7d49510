package commands

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks a command message that is missing required fields.
var ErrInvalidInput = errors.New("commands: invalid input")

var (
	errMissingService = errors.New("commands: service is required")
	errMissingSession = fmt.Errorf("%w: session id is required", ErrInvalidInput)
)

func requireSession(service any, sessionID string) error {
	if service == nil {
		return errMissingService
	}
	if sessionID == "" {
		return errMissingSession
	}
	return nil
}
