package events

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crackwatch/monitor-service/internal/models"
)

func TestPublishDeliversInSubscriptionOrder(t *testing.T) {
	bus := NewBus()

	var order []string
	bus.Subscribe(ChannelDateChange, func(any) { order = append(order, "first") })
	bus.Subscribe(ChannelDateChange, func(any) { order = append(order, "second") })
	bus.Subscribe(ChannelDateChange, func(any) { order = append(order, "third") })

	bus.Publish(ChannelDateChange, DateChangePayload{Date: "2024-01-01"})

	require.Equal(t, []string{"first", "second", "third"}, order)
}

func TestPublishWithoutSubscribersIsDropped(t *testing.T) {
	bus := NewBus()
	// No listener: the event is lost, nothing panics.
	bus.Publish(ChannelMarkerRemove, MarkerRemovePayload{ID: "m1"})

	var got int
	bus.Subscribe(ChannelMarkerRemove, func(any) { got++ })
	require.Zero(t, got, "late subscriber must not replay earlier publishes")
}

func TestDoubleSubscribeDeliversTwice(t *testing.T) {
	bus := NewBus()

	var calls int
	handler := func(any) { calls++ }

	unsubA := bus.Subscribe(ChannelDateChange, handler)
	unsubB := bus.Subscribe(ChannelDateChange, handler)

	bus.Publish(ChannelDateChange, DateChangePayload{Date: "2024-01-01"})
	require.Equal(t, 2, calls, "two registrations deliver twice, no implicit dedup")

	// One unsubscribe removes exactly one registration.
	unsubA()
	bus.Publish(ChannelDateChange, DateChangePayload{Date: "2024-01-02"})
	require.Equal(t, 3, calls)

	unsubB()
	bus.Publish(ChannelDateChange, DateChangePayload{Date: "2024-01-03"})
	require.Equal(t, 3, calls)
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	bus := NewBus()

	var aCalls, bCalls int
	unsubA := bus.Subscribe(ChannelDateChange, func(any) { aCalls++ })
	bus.Subscribe(ChannelDateChange, func(any) { bCalls++ })

	unsubA()
	unsubA() // must not error and must not remove the other handler
	unsubA()

	bus.Publish(ChannelDateChange, DateChangePayload{Date: "2024-01-01"})
	require.Zero(t, aCalls)
	require.Equal(t, 1, bCalls)
}

func TestMalformedPayloadIsDroppedNotDelivered(t *testing.T) {
	bus := NewBus()

	var calls int
	bus.Subscribe(ChannelBuildingSelect, func(any) { calls++ })

	// Wrong payload type for the channel: logged and dropped, the
	// producer never sees a panic.
	bus.Publish(ChannelBuildingSelect, "not-a-building-payload")
	require.Zero(t, calls)

	bus.Publish(ChannelBuildingSelect, BuildingSelectPayload{Building: &models.Building{Name: "A"}})
	require.Equal(t, 1, calls)
}

func TestUnsubscribeDuringDelivery(t *testing.T) {
	bus := NewBus()

	var calls int
	var unsub func()
	unsub = bus.Subscribe(ChannelDateChange, func(any) {
		calls++
		unsub()
	})

	bus.Publish(ChannelDateChange, DateChangePayload{Date: "2024-01-01"})
	bus.Publish(ChannelDateChange, DateChangePayload{Date: "2024-01-02"})
	require.Equal(t, 1, calls)
}
