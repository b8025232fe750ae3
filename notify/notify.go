// Package notify delivers user-facing progress and status events. It is an
// injected capability so that code which reports progress never depends on how
// events are presented.
package notify

import (
	"sync"

	"go.uber.org/zap"
)

// Severity of a single event.
// ENUM(info, success, warning, error)
type Level int

// Event is a single user-facing notification.
type Event struct {
	Level   Level
	Message string
	// set for export progress events, zero otherwise
	Page  int
	Pages int
}

// Notifier accepts events. Implementations must be safe for concurrent use
// and must never block the caller.
type Notifier interface {
	Notify(ev Event)
}

// Bus is a channel backed Notifier. Consumers drain Events; when the buffer
// is full the oldest event is dropped so producers never stall.
type Bus struct {
	mu     sync.Mutex
	ch     chan Event
	closed bool
}

func NewBus(size int) *Bus {
	if size <= 0 {
		size = 16
	}
	return &Bus{ch: make(chan Event, size)}
}

func (b *Bus) Notify(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	for {
		select {
		case b.ch <- ev:
			return
		default:
			// buffer full, drop the oldest event
			select {
			case <-b.ch:
			default:
			}
		}
	}
}

// Events returns the consumer side of the bus. Channel is closed by Close.
func (b *Bus) Events() <-chan Event {
	return b.ch
}

// Close stops the bus. Events sent after Close are discarded.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.closed {
		b.closed = true
		close(b.ch)
	}
}

// Log is a Notifier writing events to a zap logger, used by the CLI.
type Log struct {
	L *zap.Logger
}

func (n Log) Notify(ev Event) {
	if n.L == nil {
		return
	}
	fields := []zap.Field{}
	if ev.Pages > 0 {
		fields = append(fields, zap.Int("page", ev.Page), zap.Int("pages", ev.Pages))
	}
	switch ev.Level {
	case LevelError:
		n.L.Error(ev.Message, fields...)
	case LevelWarning:
		n.L.Warn(ev.Message, fields...)
	default:
		n.L.Info(ev.Message, fields...)
	}
}

// Nop discards all events.
type Nop struct{}

func (Nop) Notify(Event) {}
