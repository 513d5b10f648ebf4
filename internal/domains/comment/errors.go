package comment

import (
	"errors"
	"net/http"
)

var (
	ErrValidation       = errors.New("validation failed")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrEntryNotFound    = errors.New("entry not found")
	ErrInvalidParent    = errors.New("replies can only target top-level comments")
	ErrStoreUnavailable = errors.New("comment store unavailable")
)

// GetHTTPStatusCode maps domain errors to HTTP status codes.
func GetHTTPStatusCode(err error) int {
	switch {
	case errors.Is(err, ErrCommentNotFound), errors.Is(err, ErrEntryNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidParent):
		return http.StatusBadRequest
	case errors.Is(err, ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// GetErrorCode maps domain errors to stable machine-readable codes.
func GetErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "VAL_001"
	case errors.Is(err, ErrCommentNotFound):
		return "COMMENT_001"
	case errors.Is(err, ErrEntryNotFound):
		return "COMMENT_002"
	case errors.Is(err, ErrInvalidParent):
		return "COMMENT_003"
	case errors.Is(err, ErrStoreUnavailable):
		return "COMMENT_004"
	default:
		return "SYS_001"
	}
}
