package cli

import (
	"errors"

	"github.com/rshade/roster/internal/roster"
)

// Process exit codes.
const (
	ExitCodeOK           = 0
	ExitCodeError        = 1
	ExitCodeAuthRequired = 3
)

// AuthRequiredError reports that the employee service rejected the
// configured credentials. main maps it to ExitCodeAuthRequired.
type AuthRequiredError struct {
	Err error
}

func (e *AuthRequiredError) Error() string {
	return "authorization required: " + e.Err.Error() +
		" (set --token, ROSTER_API_TOKEN or api.token in the config file)"
}

func (e *AuthRequiredError) Unwrap() error {
	return e.Err
}

// ExitCode returns the process exit code for err.
func ExitCode(err error) int {
	if err == nil {
		return ExitCodeOK
	}
	var authErr *AuthRequiredError
	if errors.As(err, &authErr) || errors.Is(err, roster.ErrNotAuthorized) {
		return ExitCodeAuthRequired
	}
	return ExitCodeError
}

// authError wraps credential rejections in AuthRequiredError and returns
// every other error unchanged.
func authError(err error) error {
	if err == nil {
		return nil
	}
	var authErr *AuthRequiredError
	if errors.As(err, &authErr) {
		return err
	}
	if errors.Is(err, roster.ErrNotAuthorized) {
		return &AuthRequiredError{Err: err}
	}
	return err
}
