package forum

import (
	"errors"
	"fmt"
)

// ErrLoginFailed is returned when the server answered the login form but
// handed out no session cookie, which means the credentials were rejected.
var ErrLoginFailed = errors.New("authentication failed, invalid login/password")

// ErrNoCredentials is returned by RefreshLogin when no account was ever
// persisted for this session.
var ErrNoCredentials = errors.New("no stored credentials to re-login with")

// TransportError is a connection-level or HTTP-level failure: refused
// connection, timeout, non-2xx status. These are retryable by the user but
// the engine never retries them on its own.
type TransportError struct {
	Op     string
	Status string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Status)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// AuthError is surfaced separately from TransportError so callers can
// prompt for credentials instead of showing a generic network notice.
type AuthError struct {
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *AuthError) Unwrap() error {
	return e.Err
}
