package cli

// Error codes for structured error responses.
// These codes are stable and can be relied upon by scripts.
const (
	ErrConfigInvalid = "CONFIG_INVALID"

	// File errors
	ErrFileNotFound   = "FILE_NOT_FOUND"
	ErrFileReadError  = "FILE_READ_ERROR"
	ErrFileWriteError = "FILE_WRITE_ERROR"

	// Input errors
	ErrInvalidInput    = "INVALID_INPUT"
	ErrMissingArgument = "MISSING_ARGUMENT"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)
