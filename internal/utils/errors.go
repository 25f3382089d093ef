package utils

import (
	"errors"
	"net/http"
)

// Domain-level errors used by the service layer to provide
// fine-grained failure reasons.
var (
	ErrBuildingNotFound = errors.New("building_not_found")
	ErrWaypointNotFound = errors.New("waypoint_not_found")
	ErrDuplicateAddress = errors.New("duplicate_address")
	ErrStoreUnavailable = errors.New("store_unavailable")
	ErrGeocoderDisabled = errors.New("geocoder_disabled")
	ErrExternalService  = errors.New("external_service_failure")
)

// AppError carries a transport status alongside a machine-readable
// code so controllers can respond without re-classifying errors.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// HandleAppError centralizes responding to AppErrors.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, nil, appErr.Err)
	} else {
		RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil, err)
	}
}
