package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
)

// PlatformError is implemented by every error created by this package.
// Use errors.As with a PlatformError target to recover the code and context.
type PlatformError interface {
	error

	// Code returns the classification of the error.
	Code() ErrorCode

	// Message returns the human readable message without the wrapped cause.
	Message() string

	// Context returns the structured context attached to the error, if any.
	Context() map[string]interface{}
}

// codedError is the concrete PlatformError.
type codedError struct {
	code    ErrorCode
	message string
	context map[string]interface{}
	cause   error
}

func (e *codedError) Error() string {
	var b strings.Builder
	b.WriteString(e.message)

	if len(e.context) > 0 {
		keys := make([]string, 0, len(e.context))
		for k := range e.context {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		b.WriteString(" (")
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s=%v", k, e.context[k])
		}
		b.WriteString(")")
	}

	if e.cause != nil {
		b.WriteString(": ")
		b.WriteString(e.cause.Error())
	}
	return b.String()
}

func (e *codedError) Code() ErrorCode                 { return e.code }
func (e *codedError) Message() string                 { return e.message }
func (e *codedError) Context() map[string]interface{} { return e.context }
func (e *codedError) Unwrap() error                   { return e.cause }

// Is matches another PlatformError with the same code, so a bare
// errors.New(code, "") can be used as a sentinel.
func (e *codedError) Is(target error) bool {
	var pe *codedError
	if !stderrors.As(target, &pe) {
		return false
	}
	return pe.code == e.code && (pe.message == "" || pe.message == e.message)
}

// New creates a PlatformError with the given code and message.
func New(code ErrorCode, message string) error {
	return &codedError{code: code, message: message}
}

// Newf creates a PlatformError with a formatted message.
func Newf(code ErrorCode, format string, args ...interface{}) error {
	return &codedError{code: code, message: fmt.Sprintf(format, args...)}
}

// NewWithContext creates a PlatformError carrying structured context.
func NewWithContext(code ErrorCode, message string, context map[string]interface{}) error {
	return &codedError{code: code, message: message, context: context}
}

// Wrap attaches a code and message to err. It returns nil if err is nil.
func Wrap(err error, code ErrorCode, message string) error {
	if err == nil {
		return nil
	}
	return &codedError{code: code, message: message, cause: err}
}

// WrapWithContext attaches a code, message, and structured context to err.
// It returns nil if err is nil.
func WrapWithContext(err error, code ErrorCode, message string, context map[string]interface{}) error {
	if err == nil {
		return nil
	}
	return &codedError{code: code, message: message, context: context, cause: err}
}

// CodeOf returns the code of the outermost PlatformError in err's chain,
// or CodeUnknown if there is none. A nil error has no code.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var pe PlatformError
	if stderrors.As(err, &pe) {
		return pe.Code()
	}
	return CodeUnknown
}

// FromFilesystem classifies a raw filesystem error. Missing paths become
// CodeNotFound, permission problems CodeForbidden, everything else
// CodeFilesystem.
func FromFilesystem(err error, message string, path string) error {
	if err == nil {
		return nil
	}

	code := CodeFilesystem
	switch {
	case stderrors.Is(err, fs.ErrNotExist):
		code = CodeNotFound
	case stderrors.Is(err, fs.ErrPermission), os.IsPermission(err):
		code = CodeForbidden
	}

	return WrapWithContext(err, code, message, map[string]interface{}{"path": path})
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool { return stderrors.Is(err, target) }

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool { return stderrors.As(err, target) }

// Unwrap returns the result of calling Unwrap on err, if available.
func Unwrap(err error) error { return stderrors.Unwrap(err) }

// Join returns an error that wraps the given errors.
func Join(errs ...error) error { return stderrors.Join(errs...) }
