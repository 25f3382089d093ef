package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/crackwatch/monitor-service/internal/dtos"
	"github.com/crackwatch/monitor-service/internal/services"
	"github.com/crackwatch/monitor-service/internal/utils"
)

var validate = validator.New()

// storeErrorMessage is the fixed 500 body for any data-file
// read/parse/write failure.
const storeErrorMessage = "A server error occurred."

type BuildingsController struct {
	buildingService *services.BuildingService
}

func NewBuildingsController(bs *services.BuildingService) *BuildingsController {
	return &BuildingsController{buildingService: bs}
}

// ----------------------------------------------------------------
// GET /buildings
// ----------------------------------------------------------------
func (c *BuildingsController) ListBuildingsHandler(w http.ResponseWriter, r *http.Request) {
	buildings, err := c.buildingService.List(r.Context())
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to list buildings")
		utils.RespondWithJSON(w, http.StatusInternalServerError,
			dtos.ErrorMessageResponse{Error: storeErrorMessage})
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, buildings)
}

// ----------------------------------------------------------------
// POST /buildings
// ----------------------------------------------------------------
func (c *BuildingsController) CreateBuildingHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateBuildingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			"Invalid JSON for create-building payload", nil, err,
		)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation,
			"name, address, lat and lng are required", nil, err,
		)
		return
	}

	stored, err := c.buildingService.Create(r.Context(), req)
	switch {
	case errors.Is(err, utils.ErrDuplicateAddress):
		// The existing record rides along so the client can select it.
		utils.RespondWithJSON(w, http.StatusBadRequest, dtos.DuplicateBuildingResponse{
			Error:    "Building is already registered.",
			Building: stored,
		})
		return
	case err != nil:
		utils.Logger.WithError(err).Error("Failed to create building")
		utils.RespondWithJSON(w, http.StatusInternalServerError,
			dtos.ErrorMessageResponse{Error: storeErrorMessage})
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, stored)
}

// ----------------------------------------------------------------
// DELETE /buildings/{id}
// ----------------------------------------------------------------
func (c *BuildingsController) DeleteBuildingHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	err := c.buildingService.Delete(r.Context(), id)
	switch {
	case services.IsNotFound(err):
		utils.RespondWithJSON(w, http.StatusNotFound,
			dtos.ErrorMessageResponse{Error: "Building not found."})
		return
	case err != nil:
		utils.Logger.WithError(err).Error("Failed to delete building")
		utils.RespondWithJSON(w, http.StatusInternalServerError,
			dtos.ErrorMessageResponse{Error: storeErrorMessage})
		return
	}

	utils.RespondWithJSON(w, http.StatusOK,
		dtos.MessageResponse{Message: "Building deleted successfully."})
}

// ----------------------------------------------------------------
// GET /buildings/nearby?lat=..&lng=..&radius_km=..
// ----------------------------------------------------------------
func (c *BuildingsController) NearbyBuildingsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	lat, latErr := strconv.ParseFloat(q.Get("lat"), 64)
	lng, lngErr := strconv.ParseFloat(q.Get("lng"), 64)
	if latErr != nil || lngErr != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			"lat and lng query params are required decimals", nil, nil,
		)
		return
	}

	radiusKm := 1.0
	if raw := q.Get("radius_km"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			utils.RespondErrorWithCode(
				w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
				"radius_km must be a positive decimal", nil, err,
			)
			return
		}
		radiusKm = parsed
	}

	rows, err := c.buildingService.Nearby(r.Context(), lat, lng, radiusKm)
	if err != nil {
		utils.HandleAppError(w, &utils.AppError{
			StatusCode: http.StatusInternalServerError,
			Code:       utils.ErrCodeInternal,
			Message:    "Failed to query nearby buildings",
			Err:        err,
		})
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, rows)
}
