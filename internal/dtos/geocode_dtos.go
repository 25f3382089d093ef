package dtos

// GeocodeDocument is one keyword-search hit from the geocoder. X is
// longitude and Y is latitude, both decimal strings as the upstream
// API returns them.
type GeocodeDocument struct {
	ID          string `json:"id"`
	PlaceName   string `json:"place_name"`
	AddressName string `json:"address_name"`
	X           string `json:"x"`
	Y           string `json:"y"`
}

type GeocodeSearchResponse struct {
	Documents []GeocodeDocument `json:"documents"`
}
