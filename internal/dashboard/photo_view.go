package dashboard

import (
	"context"
	"sync"

	"github.com/crackwatch/monitor-service/internal/dtos"
	"github.com/crackwatch/monitor-service/internal/events"
	"github.com/crackwatch/monitor-service/internal/utils"
)

// WaypointImagesFetcher is satisfied by services.WaypointService and
// by any HTTP client hitting GET /waypoints/{id}/images.
type WaypointImagesFetcher interface {
	Images(ctx context.Context, waypointID string) (*dtos.WaypointImagesResponse, error)
}

// PhotoViewModel shows the photo history of the clicked waypoint.
// Requests are not cancelled when the selection changes again; instead
// each request carries a generation token and a stale response is
// discarded on arrival, so a slow fetch for a previous waypoint can
// never overwrite the current one.
type PhotoViewModel struct {
	mu         sync.Mutex
	fetcher    WaypointImagesFetcher
	generation uint64
	images     *dtos.WaypointImagesResponse
	errMsg     string
	loading    bool
	unsub      func()
	wg         sync.WaitGroup
}

func NewPhotoViewModel(bus *events.Bus, fetcher WaypointImagesFetcher) *PhotoViewModel {
	vm := &PhotoViewModel{fetcher: fetcher}
	vm.unsub = bus.Subscribe(events.ChannelWaypointSelect, vm.onWaypointSelect)
	return vm
}

// Close detaches from the bus and waits for in-flight fetches so tests
// observe a quiesced view model.
func (vm *PhotoViewModel) Close() {
	vm.unsub()
	vm.wg.Wait()
}

func (vm *PhotoViewModel) Images() *dtos.WaypointImagesResponse {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.images
}

func (vm *PhotoViewModel) ErrorMessage() string {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.errMsg
}

func (vm *PhotoViewModel) Loading() bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.loading
}

func (vm *PhotoViewModel) onWaypointSelect(payload any) {
	p := payload.(events.WaypointSelectPayload)

	vm.mu.Lock()
	vm.generation++
	gen := vm.generation

	if p.WaypointID == nil {
		// Reset: date changed or selection cleared.
		vm.images = nil
		vm.errMsg = ""
		vm.loading = false
		vm.mu.Unlock()
		return
	}
	vm.loading = true
	waypointID := utils.Val(p.WaypointID)
	vm.mu.Unlock()

	vm.wg.Add(1)
	go func() {
		defer vm.wg.Done()

		resp, err := vm.fetcher.Images(context.Background(), waypointID)

		vm.mu.Lock()
		defer vm.mu.Unlock()
		if gen != vm.generation {
			// A newer selection superseded this request.
			utils.Logger.Debugf("Discarding stale image response for waypoint %s", waypointID)
			return
		}
		vm.loading = false
		if err != nil {
			vm.images = nil
			vm.errMsg = "Failed to load waypoint photos."
			return
		}
		vm.errMsg = ""
		vm.images = resp
	}()
}
