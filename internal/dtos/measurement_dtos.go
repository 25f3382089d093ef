package dtos

import "github.com/crackwatch/monitor-service/internal/models"

// TaggedWaypoint is one entry of GET /measurements: a building's
// waypoint (its full reading history) tagged with the owning building.
type TaggedWaypoint struct {
	models.Waypoint
	BuildingID   string `json:"buildingId"`
	BuildingName string `json:"buildingName"`
}

// AppendMeasurementRequest is the POST /measurements body: one new
// reading for an existing waypoint of an existing building.
type AppendMeasurementRequest struct {
	BuildingID string  `json:"buildingId" validate:"required"`
	WaypointID string  `json:"waypointId" validate:"required"`
	Date       string  `json:"date" validate:"required,datetime=2006-01-02"`
	WidthMM    float64 `json:"width_mm" validate:"gte=0"`
	ImageURL   string  `json:"imageUrl,omitempty"`
}

type HealthCheckResponse struct {
	Status string `json:"status"`
}
