// Package selection holds the single source of truth for "which
// building is active". One Context lives for the whole application;
// tests construct their own.
package selection

import (
	"sync"

	"github.com/crackwatch/monitor-service/internal/events"
	"github.com/crackwatch/monitor-service/internal/models"
)

// Context is a single mutable selection slot with no history. Setting
// a building publishes buildingSelect so decoupled views recompute;
// clearing it publishes a nil-building payload so dependent analytics
// reset without any map movement.
type Context struct {
	mu       sync.Mutex
	bus      *events.Bus
	selected *models.Building
}

func New(bus *events.Bus) *Context {
	return &Context{bus: bus}
}

func (c *Context) Get() *models.Building {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

func (c *Context) Set(b *models.Building) {
	c.mu.Lock()
	c.selected = b
	c.mu.Unlock()

	// Publish outside the lock: handlers may call back into Get.
	c.bus.Publish(events.ChannelBuildingSelect, events.BuildingSelectPayload{Building: b})
}
