package events

import "github.com/crackwatch/monitor-service/internal/models"

// Channel names the cross-widget event streams. The five channels are
// the whole contract surface between independently-mounted views.
type Channel string

const (
	ChannelAddressSelect  Channel = "addressSelect"
	ChannelMarkerRemove   Channel = "markerRemove"
	ChannelBuildingSelect Channel = "buildingSelect"
	ChannelDateChange     Channel = "dateChange"
	ChannelWaypointSelect Channel = "waypointSelect"
)

// AddressSelectPayload is published when a geocoder search result is
// picked. X is longitude, Y is latitude (geocoder axis order).
type AddressSelectPayload struct {
	ID          string
	PlaceName   string
	AddressName string
	X           float64
	Y           float64
}

// MarkerRemovePayload asks the map to drop a previously-added marker.
type MarkerRemovePayload struct {
	ID string
}

// BuildingSelectPayload carries the full selected building, or a nil
// Building when the selection was cleared and dependent views must
// reset.
type BuildingSelectPayload struct {
	Building *models.Building
}

// DateChangePayload is published by the calendar widget.
type DateChangePayload struct {
	Date string // YYYY-MM-DD
}

// WaypointSelectPayload identifies a clicked waypoint. Both fields nil
// means "reset the waypoint selection".
type WaypointSelectPayload struct {
	WaypointID   *string
	WaypointName *string
}

// payloadValid reports whether the payload is of the type the channel
// carries. Unknown channels accept anything; the five named channels
// are strict.
func payloadValid(ch Channel, payload any) bool {
	switch ch {
	case ChannelAddressSelect:
		_, ok := payload.(AddressSelectPayload)
		return ok
	case ChannelMarkerRemove:
		_, ok := payload.(MarkerRemovePayload)
		return ok
	case ChannelBuildingSelect:
		_, ok := payload.(BuildingSelectPayload)
		return ok
	case ChannelDateChange:
		_, ok := payload.(DateChangePayload)
		return ok
	case ChannelWaypointSelect:
		_, ok := payload.(WaypointSelectPayload)
		return ok
	default:
		return true
	}
}
