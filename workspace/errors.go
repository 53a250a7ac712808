package workspace

import (
	"context"
	"io/fs"

	"github.com/Capswan/cli-gitspace/errors"
	"github.com/Capswan/cli-gitspace/git"
)

// classifyCloneError maps a clone failure onto an error code.
//
//	timeout            CodeTimeout
//	cancellation       CodeCanceled
//	auth               CodeUnauthorized
//	local filesystem   CodeFilesystem / CodeForbidden
//	everything else    CodeNetwork
func classifyCloneError(err error, ctx map[string]interface{}) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return errors.WrapWithContext(err, errors.CodeTimeout, "clone timed out", ctx)
	case errors.Is(err, context.Canceled):
		return errors.WrapWithContext(err, errors.CodeCanceled, "clone canceled", ctx)
	case errors.Is(err, git.ErrAuthRequired), errors.Is(err, git.ErrAuthFailed):
		return errors.WrapWithContext(err, errors.CodeUnauthorized, "authentication rejected", ctx)
	case errors.Is(err, git.ErrRemoteNotFound):
		return errors.WrapWithContext(err, errors.CodeNetwork, "remote repository not found", ctx)
	case errors.Is(err, git.ErrInvalidOptions):
		return errors.WrapWithContext(err, errors.CodeInvalidInput, "invalid clone request", ctx)
	}

	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		code := errors.CodeFilesystem
		if errors.Is(err, fs.ErrPermission) {
			code = errors.CodeForbidden
		}
		return errors.WrapWithContext(err, code, "failed to write clone", ctx)
	}

	return errors.WrapWithContext(err, errors.CodeNetwork, "clone failed", ctx)
}
