package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/crackwatch/monitor-service/internal/dtos"
	"github.com/crackwatch/monitor-service/internal/services"
	"github.com/crackwatch/monitor-service/internal/utils"
)

type MeasurementsController struct {
	measurementService *services.MeasurementService
}

func NewMeasurementsController(ms *services.MeasurementService) *MeasurementsController {
	return &MeasurementsController{measurementService: ms}
}

// ----------------------------------------------------------------
// GET /measurements
// ----------------------------------------------------------------
func (c *MeasurementsController) ListMeasurementsHandler(w http.ResponseWriter, r *http.Request) {
	rows, err := c.measurementService.List(r.Context())
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to list measurements")
		utils.RespondWithJSON(w, http.StatusInternalServerError,
			dtos.ErrorMessageResponse{Error: storeErrorMessage})
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, rows)
}

// ----------------------------------------------------------------
// POST /measurements
// ----------------------------------------------------------------
func (c *MeasurementsController) AppendMeasurementHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.AppendMeasurementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			"Invalid JSON for append-measurement payload", nil, err,
		)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation,
			"buildingId, waypointId and date (YYYY-MM-DD) are required", nil, err,
		)
		return
	}

	stored, err := c.measurementService.Append(r.Context(), req)
	switch {
	case services.IsNotFound(err):
		utils.RespondWithJSON(w, http.StatusNotFound,
			dtos.ErrorMessageResponse{Error: "Building not found."})
		return
	case err != nil:
		utils.Logger.WithError(err).Error("Failed to append measurement")
		utils.RespondWithJSON(w, http.StatusInternalServerError,
			dtos.ErrorMessageResponse{Error: storeErrorMessage})
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, stored)
}
