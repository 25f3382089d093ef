package routes

const (
	// Health
	Health = "/health"

	// Building store
	Buildings       = "/buildings"
	BuildingsNearby = "/buildings/nearby"
	BuildingByID    = "/buildings/{id}"

	// Waypoint views
	Waypoints      = "/waypoints"
	WaypointImages = "/waypoints/{id}/images"

	// Measurement readings
	Measurements = "/measurements"

	// External geocoder passthrough
	GeocodeSearch = "/geocode/search"
)
