// Package dashboard holds the view models coordinated over the event
// bus. No view model references another; everything cross-cutting
// travels on the five named channels.
package dashboard

import (
	"sync"

	"github.com/crackwatch/monitor-service/internal/events"
	"github.com/crackwatch/monitor-service/internal/utils"
)

// Marker is one rendered map marker.
type Marker struct {
	ID    string
	Label string
	Lat   float64
	Lng   float64
}

// CameraTarget is the coordinate the map camera last flew to. The
// flight itself is fire-and-forget; only the target is state.
type CameraTarget struct {
	Lat float64
	Lng float64
}

// MapViewModel mirrors the map widget's event contract: it recenters
// on building and address selection, keeps an idempotent marker set,
// and owns publishing waypointSelect.
type MapViewModel struct {
	mu      sync.Mutex
	bus     *events.Bus
	markers map[string]Marker
	camera  *CameraTarget
	unsubs  []func()
}

func NewMapViewModel(bus *events.Bus) *MapViewModel {
	vm := &MapViewModel{
		bus:     bus,
		markers: make(map[string]Marker),
	}

	vm.unsubs = append(vm.unsubs,
		bus.Subscribe(events.ChannelBuildingSelect, vm.onBuildingSelect),
		bus.Subscribe(events.ChannelAddressSelect, vm.onAddressSelect),
		bus.Subscribe(events.ChannelMarkerRemove, vm.onMarkerRemove),
		bus.Subscribe(events.ChannelDateChange, vm.onDateChange),
	)
	return vm
}

// Close detaches the view model from the bus.
func (vm *MapViewModel) Close() {
	for _, u := range vm.unsubs {
		u()
	}
}

// ClickWaypoint is the marker click handler: it announces the clicked
// waypoint to whoever cares.
func (vm *MapViewModel) ClickWaypoint(waypointID, waypointName string) {
	vm.bus.Publish(events.ChannelWaypointSelect, events.WaypointSelectPayload{
		WaypointID:   utils.Ptr(waypointID),
		WaypointName: utils.Ptr(waypointName),
	})
}

func (vm *MapViewModel) Camera() *CameraTarget {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.camera == nil {
		return nil
	}
	c := *vm.camera
	return &c
}

func (vm *MapViewModel) Markers() []Marker {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	out := make([]Marker, 0, len(vm.markers))
	for _, m := range vm.markers {
		out = append(out, m)
	}
	return out
}

func (vm *MapViewModel) Marker(id string) (Marker, bool) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	m, ok := vm.markers[id]
	return m, ok
}

/* ---------- event handlers ---------- */

func (vm *MapViewModel) onBuildingSelect(payload any) {
	p := payload.(events.BuildingSelectPayload)
	if p.Building == nil {
		// Cleared selection: analytics reset elsewhere, nothing for
		// the camera to fly to.
		return
	}
	if !p.Building.HasLocation() {
		utils.Logger.Warnf("buildingSelect for %q without location; ignoring recenter", p.Building.Name)
		return
	}

	vm.mu.Lock()
	vm.camera = &CameraTarget{
		Lat: p.Building.Location.Latitude,
		Lng: p.Building.Location.Longitude,
	}
	vm.mu.Unlock()
}

func (vm *MapViewModel) onAddressSelect(payload any) {
	p := payload.(events.AddressSelectPayload)
	if p.ID == "" {
		utils.Logger.Warn("addressSelect without id; dropping")
		return
	}

	vm.mu.Lock()
	// Replace, never duplicate: re-selecting the same search hit moves
	// its marker instead of stacking a second one.
	vm.markers[p.ID] = Marker{
		ID:    p.ID,
		Label: p.PlaceName,
		Lat:   p.Y,
		Lng:   p.X,
	}
	vm.camera = &CameraTarget{Lat: p.Y, Lng: p.X}
	vm.mu.Unlock()
}

func (vm *MapViewModel) onMarkerRemove(payload any) {
	p := payload.(events.MarkerRemovePayload)

	vm.mu.Lock()
	delete(vm.markers, p.ID)
	vm.mu.Unlock()
}

// onDateChange resets the waypoint selection: a new date context makes
// the previously-clicked waypoint's photo panel stale.
func (vm *MapViewModel) onDateChange(any) {
	vm.bus.Publish(events.ChannelWaypointSelect, events.WaypointSelectPayload{})
}
