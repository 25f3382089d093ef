package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/crackwatch/monitor-service/internal/dtos"
	"github.com/crackwatch/monitor-service/internal/services"
	"github.com/crackwatch/monitor-service/internal/utils"
)

type WaypointsController struct {
	waypointService *services.WaypointService
}

func NewWaypointsController(ws *services.WaypointService) *WaypointsController {
	return &WaypointsController{waypointService: ws}
}

// ----------------------------------------------------------------
// GET /waypoints
//
// Three views over one route, matching the original surface:
//   ?buildingId= -> per-waypoint latest readings of one building
//   ?date=       -> per-waypoint readings on that date, all buildings
//   (no filter)  -> every waypoint, no readings
// ----------------------------------------------------------------
func (c *WaypointsController) ListWaypointsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if buildingID := q.Get("buildingId"); buildingID != "" {
		resp, err := c.waypointService.ByBuilding(r.Context(), buildingID)
		switch {
		case services.IsNotFound(err):
			utils.RespondWithJSON(w, http.StatusNotFound,
				dtos.ErrorMessageResponse{Error: "Building not found."})
			return
		case err != nil:
			utils.Logger.WithError(err).Error("Failed to list building waypoints")
			utils.RespondWithJSON(w, http.StatusInternalServerError,
				dtos.ErrorMessageResponse{Error: storeErrorMessage})
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, resp)
		return
	}

	if date := q.Get("date"); date != "" {
		rows, err := c.waypointService.ByDate(r.Context(), date)
		if err != nil {
			utils.Logger.WithError(err).Error("Failed to list waypoints by date")
			utils.RespondWithJSON(w, http.StatusInternalServerError,
				dtos.ErrorMessageResponse{Error: storeErrorMessage})
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, rows)
		return
	}

	rows, err := c.waypointService.All(r.Context())
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to list waypoints")
		utils.RespondWithJSON(w, http.StatusInternalServerError,
			dtos.ErrorMessageResponse{Error: storeErrorMessage})
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, rows)
}

// ----------------------------------------------------------------
// GET /waypoints/{id}/images
// ----------------------------------------------------------------
func (c *WaypointsController) WaypointImagesHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	resp, err := c.waypointService.Images(r.Context(), id)
	switch {
	case services.IsNotFound(err):
		utils.RespondWithJSON(w, http.StatusNotFound,
			dtos.ErrorMessageResponse{Error: "Waypoint not found."})
		return
	case err != nil:
		utils.Logger.WithError(err).Error("Failed to list waypoint images")
		utils.RespondWithJSON(w, http.StatusInternalServerError,
			dtos.ErrorMessageResponse{Error: storeErrorMessage})
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
