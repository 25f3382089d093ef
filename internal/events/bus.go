package events

import (
	"sync"

	"github.com/crackwatch/monitor-service/internal/utils"
)

// Handler receives the payload published on a channel.
type Handler func(payload any)

type subscription struct {
	handler Handler
}

// Bus is an explicit publish/subscribe service decoupling producers
// and consumers of cross-cutting UI events. Delivery is synchronous,
// on the publishing goroutine, in subscription order per channel.
// There is no buffering: a publish with no subscribers is dropped.
type Bus struct {
	mu   sync.Mutex
	subs map[Channel][]*subscription
}

func NewBus() *Bus {
	return &Bus{subs: make(map[Channel][]*subscription)}
}

// Subscribe registers a handler on a channel and returns its
// unsubscribe func. Registering the same handler twice yields two
// independent registrations (and two deliveries per publish); each
// unsubscribe removes only its own registration and is safe to call
// more than once.
func (b *Bus) Subscribe(ch Channel, h Handler) (unsubscribe func()) {
	if h == nil {
		utils.Logger.Warnf("Ignoring nil handler subscription on channel %q", ch)
		return func() {}
	}

	sub := &subscription{handler: h}

	b.mu.Lock()
	b.subs[ch] = append(b.subs[ch], sub)
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			list := b.subs[ch]
			for i, s := range list {
				if s == sub {
					b.subs[ch] = append(list[:i:i], list[i+1:]...)
					break
				}
			}
		})
	}
}

// Publish delivers the payload to every subscriber currently
// registered on the channel. A payload of the wrong type for a named
// channel is logged and dropped; the producer is never failed because
// a consumer is absent or malformed.
func (b *Bus) Publish(ch Channel, payload any) {
	if !payloadValid(ch, payload) {
		utils.Logger.Warnf("Dropping malformed %q event payload (%T)", ch, payload)
		return
	}

	b.mu.Lock()
	list := make([]*subscription, len(b.subs[ch]))
	copy(list, b.subs[ch])
	b.mu.Unlock()

	for _, s := range list {
		s.handler(payload)
	}
}
