package dtos

import "github.com/crackwatch/monitor-service/internal/models"

// WaypointReading is one waypoint with its most recent measurement
// only (GET /waypoints?buildingId=...).
type WaypointReading struct {
	ID       string          `json:"id"`
	Label    string          `json:"label"`
	Location models.Location `json:"location"`
	ImageURL *string         `json:"imageUrl"`
	Date     string          `json:"date"`
	WidthMM  float64         `json:"width_mm"`
}

type BuildingWaypointsResponse struct {
	BuildingName string            `json:"buildingName"`
	Waypoints    []WaypointReading `json:"waypoints"`
}

// DatedWaypointReading is one per-waypoint reading matching a date
// filter, tagged with its owning building (GET /waypoints?date=...).
type DatedWaypointReading struct {
	ID           string          `json:"id"`
	Label        string          `json:"label"`
	BuildingID   string          `json:"buildingId"`
	BuildingName string          `json:"buildingName"`
	Location     models.Location `json:"location"`
	ImageURL     *string         `json:"imageUrl"`
	Date         string          `json:"date"`
	WidthMM      float64         `json:"width_mm"`
}

// WaypointSummary is the unfiltered GET /waypoints row.
type WaypointSummary struct {
	ID           string          `json:"id"`
	Label        string          `json:"label"`
	BuildingID   string          `json:"buildingId"`
	BuildingName string          `json:"buildingName"`
	Location     models.Location `json:"location"`
}

type WaypointImage struct {
	ImageURL  string  `json:"imageUrl"`
	Date      string  `json:"date"`
	WidthMM   float64 `json:"width_mm"`
	Timestamp int64   `json:"timestamp"` // epoch millis of Date
}

type WaypointImagesResponse struct {
	WaypointID    string          `json:"waypointId"`
	WaypointLabel string          `json:"waypointLabel"`
	BuildingName  string          `json:"buildingName"`
	Images        []WaypointImage `json:"images"`
}
