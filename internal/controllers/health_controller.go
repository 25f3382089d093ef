package controllers

import (
	"net/http"

	"github.com/crackwatch/monitor-service/internal/app"
	"github.com/crackwatch/monitor-service/internal/dtos"
	"github.com/crackwatch/monitor-service/internal/utils"
)

// HealthController checks that the data file is readable.
type HealthController struct {
	app *app.App
}

func NewHealthController(app *app.App) *HealthController {
	return &HealthController{app}
}

// HealthCheckHandler => GET /health
func (c *HealthController) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	if _, err := c.app.BuildingRepo.List(r.Context()); err != nil {
		utils.Logger.WithError(err).Error("Data file unreachable")
		utils.RespondErrorWithCode(w, http.StatusServiceUnavailable, utils.ErrCodeInternal, "Data store unreachable", nil, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.HealthCheckResponse{Status: "OK"})
}
