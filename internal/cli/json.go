package cli

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"os"
	"strings"

	"github.com/rileyhilliard/zbdtop/internal/errors"
	"github.com/rileyhilliard/zbdtop/internal/zbd"
)

// JSONEnvelope wraps command output in a consistent structure for machine parsing.
// All --json output should use this envelope.
type JSONEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *JSONError  `json:"error,omitempty"`
}

// JSONError provides structured error information for machine parsing.
type JSONError struct {
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Suggestion string      `json:"suggestion,omitempty"`
	Details    interface{} `json:"details,omitempty"`
}

// Error codes for machine-readable output.
const (
	ErrCodeConfigNotFound   = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid    = "CONFIG_INVALID"
	ErrCodeDeviceNotFound   = "DEVICE_NOT_FOUND"
	ErrCodeDeviceNotZoned   = "DEVICE_NOT_ZONED"
	ErrCodeDevicePermission = "DEVICE_PERMISSION"
	ErrCodeDeviceOpenFailed = "DEVICE_OPEN_FAILED"
	ErrCodeReportFailed     = "REPORT_FAILED"
	ErrCodeSignalFailed     = "SIGNAL_FAILED"
	ErrCodeUnknown          = "UNKNOWN"
)

// WriteJSONSuccess writes a successful response with data to the writer.
func WriteJSONSuccess(w io.Writer, data interface{}) error {
	env := JSONEnvelope{
		Success: true,
		Data:    data,
	}
	return writeJSONEnvelope(w, env)
}

// WriteJSONError writes an error response to the writer.
func WriteJSONError(w io.Writer, code, message, suggestion string, details interface{}) error {
	env := JSONEnvelope{
		Success: false,
		Error: &JSONError{
			Code:       code,
			Message:    message,
			Suggestion: suggestion,
			Details:    details,
		},
	}
	return writeJSONEnvelope(w, env)
}

// WriteJSONFromError converts a Go error to a JSON error response.
func WriteJSONFromError(w io.Writer, err error) error {
	env := JSONEnvelope{
		Success: false,
		Error:   ErrorToJSON(err),
	}
	return writeJSONEnvelope(w, env)
}

// writeJSONEnvelope writes the envelope with consistent formatting.
func writeJSONEnvelope(w io.Writer, env JSONEnvelope) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}

// ErrorToJSON converts a Go error to a JSONError with appropriate code mapping.
func ErrorToJSON(err error) *JSONError {
	if err == nil {
		return nil
	}

	var zErr *errors.Error
	if stderrors.As(err, &zErr) {
		jsonErr := &JSONError{
			Code:       mapErrorCode(zErr),
			Message:    zErr.Message,
			Suggestion: zErr.Suggestion,
		}
		if zErr.Cause != nil {
			jsonErr.Details = map[string]interface{}{
				"cause": zErr.Cause.Error(),
			}
		}
		return jsonErr
	}

	return &JSONError{
		Code:    ErrCodeUnknown,
		Message: err.Error(),
	}
}

// mapErrorCode maps internal error codes to machine-readable codes.
func mapErrorCode(e *errors.Error) string {
	switch e.Code {
	case errors.ErrConfig:
		// Distinguish between not found and invalid
		msgLower := strings.ToLower(e.Message)
		if strings.Contains(msgLower, "config") && strings.Contains(msgLower, "not found") {
			return ErrCodeConfigNotFound
		}
		return ErrCodeConfigInvalid
	case errors.ErrDevice:
		switch {
		case stderrors.Is(e, zbd.ErrNotZoned):
			return ErrCodeDeviceNotZoned
		case stderrors.Is(e, os.ErrNotExist):
			return ErrCodeDeviceNotFound
		case stderrors.Is(e, os.ErrPermission):
			return ErrCodeDevicePermission
		}
		return ErrCodeDeviceOpenFailed
	case errors.ErrReport:
		return ErrCodeReportFailed
	case errors.ErrSignal:
		return ErrCodeSignalFailed
	}

	return ErrCodeUnknown
}
