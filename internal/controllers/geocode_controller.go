package controllers

import (
	"errors"
	"net/http"

	"github.com/crackwatch/monitor-service/internal/dtos"
	"github.com/crackwatch/monitor-service/internal/services"
	"github.com/crackwatch/monitor-service/internal/utils"
)

type GeocodeController struct {
	geocodeService *services.GeocodeService
}

func NewGeocodeController(gs *services.GeocodeService) *GeocodeController {
	return &GeocodeController{geocodeService: gs}
}

// ----------------------------------------------------------------
// GET /geocode/search?query=...
// ----------------------------------------------------------------
func (c *GeocodeController) SearchHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			"query param is required", nil, nil,
		)
		return
	}

	docs, err := c.geocodeService.Search(r.Context(), query)
	switch {
	case errors.Is(err, utils.ErrGeocoderDisabled):
		utils.RespondErrorWithCode(
			w, http.StatusServiceUnavailable, utils.ErrCodeGeocoderDisabled,
			"Geocoder is not configured", nil, nil,
		)
		return
	case err != nil:
		utils.RespondErrorWithCode(
			w, http.StatusBadGateway, utils.ErrCodeExternalServiceFailure,
			"Address search failed", nil, err,
		)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.GeocodeSearchResponse{Documents: docs})
}
