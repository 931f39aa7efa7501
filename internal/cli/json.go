package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Global JSON output flag
var jsonOutput bool

// errReported is returned after a JSON error envelope has been written, so
// the process still exits non-zero without printing the error twice.
var errReported = errors.New("error reported")

// Response is the standard JSON envelope for all CLI output.
type Response struct {
	OK    bool        `json:"ok"`
	Data  interface{} `json:"data,omitempty"`
	Error *ErrorInfo  `json:"error,omitempty"`
}

// ErrorInfo contains structured error information.
type ErrorInfo struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// outputJSON outputs the response as JSON to stdout.
func outputJSON(resp Response) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(resp)
}

// outputSuccess outputs a successful JSON response.
func outputSuccess(data interface{}) {
	outputJSON(Response{
		OK:   true,
		Data: data,
	})
}

// outputError outputs an error JSON response.
func outputError(code, message, suggestion string) {
	outputJSON(Response{
		OK: false,
		Error: &ErrorInfo{
			Code:       code,
			Message:    message,
			Suggestion: suggestion,
		},
	})
}

// isJSONOutput returns true if JSON output is enabled.
func isJSONOutput() bool {
	return jsonOutput
}

// handleError handles an error appropriately based on output mode.
// In JSON mode, outputs a JSON error. In text mode, returns the error for Cobra.
func handleError(code string, err error, suggestion string) error {
	if jsonOutput {
		outputError(code, err.Error(), suggestion)
		return errReported
	}
	if suggestion != "" {
		return fmt.Errorf("%w\n\n%s", err, suggestion)
	}
	return err
}

// handleErrorMsg handles an error message appropriately based on output mode.
func handleErrorMsg(code, message, suggestion string) error {
	return handleError(code, errors.New(message), suggestion)
}
