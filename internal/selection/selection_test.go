package selection

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crackwatch/monitor-service/internal/events"
	"github.com/crackwatch/monitor-service/internal/models"
)

func TestSetPublishesBuildingSelect(t *testing.T) {
	bus := events.NewBus()
	ctx := New(bus)

	var received []*models.Building
	bus.Subscribe(events.ChannelBuildingSelect, func(payload any) {
		p := payload.(events.BuildingSelectPayload)
		received = append(received, p.Building)
	})

	b := &models.Building{
		ID:       "1",
		Name:     "A",
		Location: models.Location{Latitude: 37.5, Longitude: 127.0},
	}
	ctx.Set(b)

	require.Same(t, b, ctx.Get())
	require.Len(t, received, 1)
	require.Same(t, b, received[0], "subscribers get the full building object")
}

func TestSetNilClearsDependentViews(t *testing.T) {
	bus := events.NewBus()
	ctx := New(bus)

	var cleared bool
	bus.Subscribe(events.ChannelBuildingSelect, func(payload any) {
		p := payload.(events.BuildingSelectPayload)
		cleared = p.Building == nil
	})

	ctx.Set(&models.Building{ID: "1", Location: models.Location{Latitude: 1, Longitude: 1}})
	require.False(t, cleared)

	ctx.Set(nil)
	require.Nil(t, ctx.Get())
	require.True(t, cleared, "nil selection must still notify so analytics reset")
}

func TestGetStartsEmpty(t *testing.T) {
	ctx := New(events.NewBus())
	require.Nil(t, ctx.Get())
}
