package shortcut

import (
	"errors"
	"sync"
)

// ErrUnsupported is returned when global shortcuts are unavailable on this platform
var ErrUnsupported = errors.New("global shortcuts are not supported on this platform")

// Phase is the key transition that produced an event
type Phase int

const (
	Pressed Phase = iota
	Released
)

func (p Phase) String() string {
	if p == Pressed {
		return "pressed"
	}
	return "released"
}

// Event is a single delivery of the registered combination
type Event struct {
	Phase Phase
	Combo string
}

// Listener forwards key transitions of one registered combination onto a
// single channel. The OS delivers them on its own goroutine; consumers only
// ever see Events().
type Listener struct {
	combo      Combo
	events     chan Event
	done       chan struct{}
	unregister func() error
	closeOnce  sync.Once
	closeErr   error
}

// NewListener forwards keydown and keyup deliveries of c until Close.
// unregister runs once on Close; up may be nil for backends without key-up.
func NewListener[T any](combo Combo, down, up <-chan T, unregister func() error) *Listener {
	l := &Listener{
		combo:      combo,
		events:     make(chan Event, 4),
		done:       make(chan struct{}),
		unregister: unregister,
	}
	go forward(l, down, up)
	return l
}

func forward[T any](l *Listener, down, up <-chan T) {
	defer close(l.events)

	name := l.combo.String()
	for {
		var ev Event
		select {
		case <-l.done:
			return
		case _, ok := <-down:
			if !ok {
				return
			}
			ev = Event{Phase: Pressed, Combo: name}
		case _, ok := <-up:
			if !ok {
				// Some backends never report key-up; keep listening for key-down
				up = nil
				continue
			}
			ev = Event{Phase: Released, Combo: name}
		}

		select {
		case l.events <- ev:
		case <-l.done:
			return
		}
	}
}

// Combo returns the registered combination
func (l *Listener) Combo() Combo {
	return l.combo
}

// Events returns the channel of key transitions. It is closed after Close.
func (l *Listener) Events() <-chan Event {
	return l.events
}

// Close unregisters the combination and stops forwarding
func (l *Listener) Close() error {
	l.closeOnce.Do(func() {
		close(l.done)
		if l.unregister != nil {
			l.closeErr = l.unregister()
		}
	})
	return l.closeErr
}
