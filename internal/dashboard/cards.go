package dashboard

import (
	"sync"

	"github.com/crackwatch/monitor-service/internal/events"
	"github.com/crackwatch/monitor-service/internal/metrics"
)

// GraphViewModel recomputes the crack-width time series whenever the
// building selection changes.
type GraphViewModel struct {
	mu    sync.Mutex
	rows  []metrics.SeriesRow
	unsub func()
}

func NewGraphViewModel(bus *events.Bus) *GraphViewModel {
	vm := &GraphViewModel{}
	vm.unsub = bus.Subscribe(events.ChannelBuildingSelect, func(payload any) {
		p := payload.(events.BuildingSelectPayload)

		vm.mu.Lock()
		defer vm.mu.Unlock()
		if p.Building == nil {
			vm.rows = nil
			return
		}
		vm.rows = metrics.TimeSeries(p.Building)
	})
	return vm
}

func (vm *GraphViewModel) Rows() []metrics.SeriesRow {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.rows
}

func (vm *GraphViewModel) Close() { vm.unsub() }

// RiskViewModel recomputes the per-waypoint risk ranking whenever the
// building selection changes.
type RiskViewModel struct {
	mu     sync.Mutex
	points []metrics.RiskPoint
	unsub  func()
}

func NewRiskViewModel(bus *events.Bus) *RiskViewModel {
	vm := &RiskViewModel{}
	vm.unsub = bus.Subscribe(events.ChannelBuildingSelect, func(payload any) {
		p := payload.(events.BuildingSelectPayload)

		vm.mu.Lock()
		defer vm.mu.Unlock()
		if p.Building == nil {
			vm.points = nil
			return
		}
		vm.points = metrics.RiskRanking(p.Building)
	})
	return vm
}

func (vm *RiskViewModel) Points() []metrics.RiskPoint {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.points
}

func (vm *RiskViewModel) Close() { vm.unsub() }
