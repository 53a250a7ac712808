package git

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/transport"
)

// Sentinel errors that can be checked with errors.Is().
// These wrap underlying go-git errors while providing a stable API for consumers.

// ErrInvalidOptions is returned when Options or arguments are missing or malformed.
var ErrInvalidOptions = errors.New("invalid options")

// ErrAuthRequired is returned when an operation requires authentication
// but no usable credentials were provided or available.
var ErrAuthRequired = errors.New("authentication required")

// ErrAuthFailed is returned when authentication was attempted but the
// remote rejected the credentials.
var ErrAuthFailed = errors.New("authentication failed")

// ErrRemoteNotFound is returned when the remote host answers but has no
// repository at the requested path.
var ErrRemoteNotFound = errors.New("remote repository not found")

// ErrNetwork is returned for transport failures: unreachable hosts,
// refused connections, broken handshakes, dropped transfers.
var ErrNetwork = errors.New("network failure")

// ErrNotRepository is returned by Open when the directory holds no repository.
var ErrNotRepository = errors.New("not a git repository")

// ErrResolveFailed is returned when a reference cannot be resolved.
var ErrResolveFailed = errors.New("cannot resolve revision")

// WrapError wraps an error with additional context while preserving
// the ability to check against sentinel errors using errors.Is().
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// WrapErrorf wraps an error with formatted additional context while preserving
// the ability to check against sentinel errors using errors.Is().
func WrapErrorf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// classifyTransportError maps a go-git clone error onto the package sentinels.
// Context errors and local filesystem errors are passed through (wrapped)
// so callers can still tell a timeout or a permission problem apart.
func classifyTransportError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("clone interrupted: %w", errors.Join(ctxErr, err))
	}

	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return WrapError(err, "failed to write repository")
	}

	switch {
	case errors.Is(err, transport.ErrAuthenticationRequired):
		return fmt.Errorf("%w: %v", ErrAuthRequired, err)
	case errors.Is(err, transport.ErrAuthorizationFailed):
		return fmt.Errorf("%w: %v", ErrAuthFailed, err)
	case errors.Is(err, transport.ErrRepositoryNotFound):
		return fmt.Errorf("%w: %v", ErrRemoteNotFound, err)
	case errors.Is(err, transport.ErrEmptyRemoteRepository):
		return fmt.Errorf("%w: %v", ErrRemoteNotFound, err)
	}

	// x/crypto/ssh reports rejected keys only through the message text.
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "unable to authenticate") || strings.Contains(msg, "permission denied (publickey") {
		return fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}

	return fmt.Errorf("%w: %v", ErrNetwork, err)
}
