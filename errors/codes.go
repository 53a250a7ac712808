// Package errors provides the structured error handling used across gitspace.
// It extends Go's standard error handling with string error codes, context
// preservation, and classification helpers for the sync engine.
package errors

// ErrorCode represents a specific error condition in gitspace.
// Error codes are string-based for debuggability and natural JSON serialization.
type ErrorCode string

const (
	// Resource errors.

	// CodeNotFound indicates an expected path or resource does not exist.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// CodeNotInitialized indicates the space has no repository store yet.
	CodeNotInitialized ErrorCode = "NOT_INITIALIZED"

	// CodeConflict indicates a resource state conflict that prevents the operation,
	// such as a real file occupying the name of a symlink.
	CodeConflict ErrorCode = "CONFLICT"

	// Permission errors.

	// CodeUnauthorized indicates the remote rejected the presented credentials.
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"

	// CodeForbidden indicates the local filesystem denied the operation.
	CodeForbidden ErrorCode = "FORBIDDEN"

	// Validation errors.

	// CodeInvalidInput indicates the provided input is invalid or malformed.
	CodeInvalidInput ErrorCode = "INVALID_INPUT"

	// CodeInvalidConfig indicates a missing or malformed configuration document.
	CodeInvalidConfig ErrorCode = "INVALID_CONFIGURATION"

	// CodeSchemaFailed indicates the document declares an unsupported schema version.
	CodeSchemaFailed ErrorCode = "SCHEMA_VALIDATION_FAILED"

	// Infrastructure errors.

	// CodeNetwork indicates a transport failure or an unreachable host.
	CodeNetwork ErrorCode = "NETWORK_ERROR"

	// CodeTimeout indicates an operation exceeded its time limit.
	CodeTimeout ErrorCode = "TIMEOUT"

	// CodeFilesystem indicates a local filesystem operation failed.
	CodeFilesystem ErrorCode = "FILESYSTEM_ERROR"

	// Execution errors.

	// CodeCanceled indicates the operation was canceled before it completed.
	CodeCanceled ErrorCode = "CANCELED"

	// System errors.

	// CodeInternal indicates an internal error occurred.
	CodeInternal ErrorCode = "INTERNAL_ERROR"

	// Generic errors.

	// CodeUnknown indicates an unknown or unclassified error occurred.
	CodeUnknown ErrorCode = "UNKNOWN"
)

// Fatal reports whether errors carrying this code abort a whole sync run.
// A bad document or a missing repository store affects every repository;
// all other codes stay with the repository or entry that produced them.
func (c ErrorCode) Fatal() bool {
	switch c {
	case CodeInvalidConfig, CodeSchemaFailed, CodeNotInitialized:
		return true
	default:
		return false
	}
}
