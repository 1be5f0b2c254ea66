package service

import (
	"slices"
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/models"
)

// Broadcaster delivers progress events to every subscriber, synchronously,
// in emission order and in subscription order. Subscribers must not block.
type Broadcaster struct {
	clock clockwork.Clock

	mu     sync.RWMutex
	nextID int
	subs   []subscriber
}

type subscriber struct {
	id int
	fn func(models.ProgressEvent)
}

// NewBroadcaster returns an empty broadcaster stamping events with clock.
func NewBroadcaster(clock clockwork.Clock) *Broadcaster {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Broadcaster{clock: clock}
}

// Subscribe registers fn and returns its unsubscribe function.
func (b *Broadcaster) Subscribe(fn func(models.ProgressEvent)) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs = append(b.subs, subscriber{id: id, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			b.subs = slices.DeleteFunc(b.subs, func(s subscriber) bool { return s.id == id })
			b.mu.Unlock()
		})
	}
}

// Publish stamps ev and hands it to every subscriber.
func (b *Broadcaster) Publish(ev models.ProgressEvent) {
	if ev.At.IsZero() {
		ev.At = b.clock.Now()
	}

	b.mu.RLock()
	subs := slices.Clone(b.subs)
	b.mu.RUnlock()

	for _, s := range subs {
		s.fn(ev)
	}
}

// Message publishes a free-text progress message.
func (b *Broadcaster) Message(direction models.Direction, msg string) {
	b.Publish(models.ProgressEvent{Type: models.ProgressMessage, Direction: direction, Message: msg})
}

// LogSubscriber mirrors progress events into log at debug level.
func LogSubscriber(log *logger.Logger) func(models.ProgressEvent) {
	return func(ev models.ProgressEvent) {
		e := log.Debug().
			Str("event", string(ev.Type)).
			Str("direction", string(ev.Direction))
		if ev.State != "" {
			e = e.Str("state", ev.State)
		}
		if ev.Message != "" {
			e = e.Str("message", ev.Message)
		}
		if ev.Count > 0 {
			e = e.Int("count", ev.Count)
		}
		e.Msg("sync progress")
	}
}
