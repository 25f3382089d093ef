package dtos

import "github.com/crackwatch/monitor-service/internal/models"

// CreateBuildingRequest is the POST /buildings body. lat/lng are flat
// on the wire and folded into the stored location by the server.
type CreateBuildingRequest struct {
	ID           string            `json:"id,omitempty"`
	Name         string            `json:"name" validate:"required"`
	Address      string            `json:"address" validate:"required"`
	Lat          float64           `json:"lat" validate:"required,latitude"`
	Lng          float64           `json:"lng" validate:"required,longitude"`
	Measurements []models.Waypoint `json:"measurements,omitempty"`
}

// DuplicateBuildingResponse is the 400 body on an address collision:
// the error message plus the already-registered record.
type DuplicateBuildingResponse struct {
	Error    string           `json:"error"`
	Building *models.Building `json:"building"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorMessageResponse struct {
	Error string `json:"error"`
}

// NearbyBuildingResponse is one row of GET /buildings/nearby, ordered
// by ascending crow-flies distance.
type NearbyBuildingResponse struct {
	Building   models.Building `json:"building"`
	DistanceKm float64         `json:"distance_km"`
}
