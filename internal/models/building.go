package models

// Location is a WGS84 coordinate. Altitude is only present on
// waypoints that were surveyed in 3D.
type Location struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Altitude  *float64 `json:"altitude,omitempty"`
}

// Building is a monitored structure. Its `measurements` array holds
// the crack-measurement waypoints; the nesting mirrors the on-disk
// document so the whole store round-trips through encoding/json.
type Building struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Address      string     `json:"address"`
	TimeZone     string     `json:"timezone,omitempty"`
	Location     Location   `json:"location"`
	Measurements []Waypoint `json:"measurements"`
}

// HasLocation reports whether the building carries a usable map
// coordinate. A zero-valued location is treated as absent.
func (b *Building) HasLocation() bool {
	return b != nil && (b.Location.Latitude != 0 || b.Location.Longitude != 0)
}

// Waypoint is a fixed crack-measurement point on a building. Order in
// the parent slice defines the polyline path drawn between waypoints.
type Waypoint struct {
	ID           string        `json:"id"`
	Label        string        `json:"label"`
	Location     Location      `json:"location"`
	Measurements []Measurement `json:"measurements"`
}

// Measurement is one dated crack-width reading. Append-only per
// waypoint; duplicate dates are allowed and the later array entry wins
// for "latest" queries.
type Measurement struct {
	ID       string  `json:"id,omitempty"`
	Date     string  `json:"date"` // YYYY-MM-DD
	WidthMM  float64 `json:"width_mm"`
	ImageURL string  `json:"imageUrl,omitempty"`
}

// Latest returns the most recent reading by array order, or nil when
// the waypoint has none.
func (w *Waypoint) Latest() *Measurement {
	if len(w.Measurements) == 0 {
		return nil
	}
	return &w.Measurements[len(w.Measurements)-1]
}
