package dto

import "net/http"

// Error code constants
// Format: ERR_<CATEGORY>
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
	// ErrCodeCSRF is used when CSRF validation fails
	ErrCodeCSRF = "ERR_CSRF"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal: http.StatusInternalServerError,
	ErrCodeCSRF:     http.StatusForbidden,
}

// GetHTTPStatus returns the HTTP status code for an error code,
// defaulting to 500 for unknown codes.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
