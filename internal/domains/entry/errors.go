package entry

import (
	"errors"
	"net/http"
)

var (
	ErrValidation           = errors.New("validation failed")
	ErrEntryNotFound        = errors.New("entry not found")
	ErrInvalidCategory      = errors.New("invalid category")
	ErrInvalidRating        = errors.New("rating must be between 0 and 10")
	ErrInvalidProjectStatus = errors.New("invalid project status")
	ErrInvalidEntryID       = errors.New("invalid entry id")
	ErrSlugTaken            = errors.New("slug already in use")
	ErrStoreUnavailable     = errors.New("entry store unavailable")
)

// GetHTTPStatusCode maps domain errors to HTTP status codes.
func GetHTTPStatusCode(err error) int {
	switch {
	case errors.Is(err, ErrEntryNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrInvalidCategory),
		errors.Is(err, ErrInvalidRating),
		errors.Is(err, ErrInvalidProjectStatus),
		errors.Is(err, ErrInvalidEntryID):
		return http.StatusBadRequest
	case errors.Is(err, ErrSlugTaken):
		return http.StatusConflict
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
	case errors.Is(err, ErrEntryNotFound):
		return "ENTRY_001"
	case errors.Is(err, ErrInvalidCategory):
		return "ENTRY_002"
	case errors.Is(err, ErrInvalidRating):
		return "ENTRY_003"
	case errors.Is(err, ErrInvalidProjectStatus):
		return "ENTRY_004"
	case errors.Is(err, ErrInvalidEntryID):
		return "ENTRY_005"
	case errors.Is(err, ErrSlugTaken):
		return "ENTRY_006"
	case errors.Is(err, ErrStoreUnavailable):
		return "ENTRY_007"
	default:
		return "SYS_001"
	}
}
