package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/crackwatch/monitor-service/internal/dtos"
	"github.com/crackwatch/monitor-service/internal/events"
	"github.com/crackwatch/monitor-service/internal/metrics"
	"github.com/crackwatch/monitor-service/internal/models"
	"github.com/crackwatch/monitor-service/internal/selection"
)

func testBuilding() *models.Building {
	return &models.Building{
		ID:      "1700000000000",
		Name:    "Building A",
		Address: "123 Main",
		Location: models.Location{
			Latitude:  37.5665,
			Longitude: 126.978,
		},
		Measurements: []models.Waypoint{
			{
				ID:    "wp-1",
				Label: "WP1",
				Measurements: []models.Measurement{
					{Date: "2024-01-01", WidthMM: 1.0},
					{Date: "2024-01-08", WidthMM: 2.4},
				},
			},
			{
				ID:    "wp-2",
				Label: "WP2",
				Measurements: []models.Measurement{
					{Date: "2024-01-01", WidthMM: 0.5},
				},
			},
		},
	}
}

/* ---------- MapViewModel ---------- */

func TestMapRecentersOnBuildingSelect(t *testing.T) {
	bus := events.NewBus()
	vm := NewMapViewModel(bus)
	defer vm.Close()

	sel := selection.New(bus)
	sel.Set(testBuilding())

	cam := vm.Camera()
	require.NotNil(t, cam)
	require.Equal(t, 37.5665, cam.Lat)
	require.Equal(t, 126.978, cam.Lng)
}

func TestMapIgnoresSelectionWithoutLocation(t *testing.T) {
	bus := events.NewBus()
	vm := NewMapViewModel(bus)
	defer vm.Close()

	bus.Publish(events.ChannelBuildingSelect, events.BuildingSelectPayload{
		Building: &models.Building{ID: "x", Name: "No coords"},
	})
	require.Nil(t, vm.Camera(), "missing location is a logged no-op")

	bus.Publish(events.ChannelBuildingSelect, events.BuildingSelectPayload{Building: nil})
	require.Nil(t, vm.Camera())
}

func TestMapMarkerAddIsIdempotent(t *testing.T) {
	bus := events.NewBus()
	vm := NewMapViewModel(bus)
	defer vm.Close()

	payload := events.AddressSelectPayload{
		ID: "place-1", PlaceName: "City Hall", AddressName: "1 Plaza", X: 126.978, Y: 37.5665,
	}
	bus.Publish(events.ChannelAddressSelect, payload)

	// Same ID again with a moved coordinate: replaced, never stacked.
	payload.Y = 37.6
	bus.Publish(events.ChannelAddressSelect, payload)

	require.Len(t, vm.Markers(), 1)
	m, ok := vm.Marker("place-1")
	require.True(t, ok)
	require.Equal(t, 37.6, m.Lat)

	cam := vm.Camera()
	require.NotNil(t, cam)
	require.Equal(t, 37.6, cam.Lat)
}

func TestMapMarkerRemove(t *testing.T) {
	bus := events.NewBus()
	vm := NewMapViewModel(bus)
	defer vm.Close()

	bus.Publish(events.ChannelAddressSelect, events.AddressSelectPayload{ID: "place-1", X: 1, Y: 1})
	bus.Publish(events.ChannelMarkerRemove, events.MarkerRemovePayload{ID: "place-1"})
	require.Empty(t, vm.Markers())

	// Removing an unknown marker is a no-op.
	bus.Publish(events.ChannelMarkerRemove, events.MarkerRemovePayload{ID: "ghost"})
}

func TestClickWaypointPublishesSelection(t *testing.T) {
	bus := events.NewBus()
	vm := NewMapViewModel(bus)
	defer vm.Close()

	var got events.WaypointSelectPayload
	bus.Subscribe(events.ChannelWaypointSelect, func(payload any) {
		got = payload.(events.WaypointSelectPayload)
	})

	vm.ClickWaypoint("wp-1", "WP1")
	require.NotNil(t, got.WaypointID)
	require.Equal(t, "wp-1", *got.WaypointID)
	require.Equal(t, "WP1", *got.WaypointName)
}

func TestDateChangeResetsWaypointSelection(t *testing.T) {
	bus := events.NewBus()
	vm := NewMapViewModel(bus)
	defer vm.Close()

	var resets int
	bus.Subscribe(events.ChannelWaypointSelect, func(payload any) {
		p := payload.(events.WaypointSelectPayload)
		if p.WaypointID == nil && p.WaypointName == nil {
			resets++
		}
	})

	bus.Publish(events.ChannelDateChange, events.DateChangePayload{Date: "2024-02-01"})
	require.Equal(t, 1, resets)
}

/* ---------- Graph / Risk cards ---------- */

func TestGraphAndRiskRecomputeOnSelection(t *testing.T) {
	bus := events.NewBus()
	graph := NewGraphViewModel(bus)
	risk := NewRiskViewModel(bus)
	defer graph.Close()
	defer risk.Close()

	sel := selection.New(bus)
	sel.Set(testBuilding())

	rows := graph.Rows()
	require.Len(t, rows, 2)
	require.Equal(t, "2024-01-01", rows[0].Date)

	points := risk.Points()
	require.Len(t, points, 2)
	require.Equal(t, "WP1", points[0].ID)
	require.Equal(t, metrics.RiskLevelMedium, points[0].RiskLevel)

	// Clearing the selection empties both cards.
	sel.Set(nil)
	require.Empty(t, graph.Rows())
	require.Empty(t, risk.Points())
}

/* ---------- PhotoViewModel ---------- */

type blockingFetcher struct {
	release chan struct{}
	calls   chan string
	byID    map[string]*dtos.WaypointImagesResponse
}

func (f *blockingFetcher) Images(_ context.Context, waypointID string) (*dtos.WaypointImagesResponse, error) {
	f.calls <- waypointID
	<-f.release
	return f.byID[waypointID], nil
}

func TestPhotoViewDiscardsStaleResponse(t *testing.T) {
	bus := events.NewBus()
	fetcher := &blockingFetcher{
		release: make(chan struct{}),
		calls:   make(chan string, 2),
		byID: map[string]*dtos.WaypointImagesResponse{
			"wp-1": {WaypointID: "wp-1", WaypointLabel: "WP1"},
			"wp-2": {WaypointID: "wp-2", WaypointLabel: "WP2"},
		},
	}
	vm := NewPhotoViewModel(bus, fetcher)
	mapVM := NewMapViewModel(bus)
	defer mapVM.Close()

	// Two quick selections: the first request is still in flight when
	// the second lands.
	mapVM.ClickWaypoint("wp-1", "WP1")
	<-fetcher.calls
	mapVM.ClickWaypoint("wp-2", "WP2")
	<-fetcher.calls

	// Let both responses arrive, in whatever order.
	close(fetcher.release)
	vm.Close()

	imgs := vm.Images()
	require.NotNil(t, imgs)
	require.Equal(t, "wp-2", imgs.WaypointID, "a stale response must never overwrite the newer selection")
}

type stubFetcher struct {
	resp *dtos.WaypointImagesResponse
	err  error
}

func (f *stubFetcher) Images(context.Context, string) (*dtos.WaypointImagesResponse, error) {
	return f.resp, f.err
}

func TestPhotoViewResetClearsState(t *testing.T) {
	bus := events.NewBus()
	vm := NewPhotoViewModel(bus, &stubFetcher{
		resp: &dtos.WaypointImagesResponse{WaypointID: "wp-1"},
	})
	defer vm.Close()
	mapVM := NewMapViewModel(bus)
	defer mapVM.Close()

	mapVM.ClickWaypoint("wp-1", "WP1")
	require.Eventually(t, func() bool { return vm.Images() != nil },
		time.Second, time.Millisecond)

	// Date change publishes the {nil,nil} reset.
	bus.Publish(events.ChannelDateChange, events.DateChangePayload{Date: "2024-02-01"})
	require.Nil(t, vm.Images())
	require.False(t, vm.Loading())
}

func TestPhotoViewSurfacesFetchFailureInline(t *testing.T) {
	bus := events.NewBus()
	vm := NewPhotoViewModel(bus, &stubFetcher{err: errors.New("boom")})
	mapVM := NewMapViewModel(bus)
	defer mapVM.Close()

	mapVM.ClickWaypoint("wp-1", "WP1")
	vm.Close() // wait for the in-flight fetch

	require.Nil(t, vm.Images())
	require.Equal(t, "Failed to load waypoint photos.", vm.ErrorMessage())
}
