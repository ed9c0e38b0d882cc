package overlay

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/wailsapp/wails/v2/pkg/logger"

	"sidepanel/internal/geometry"
	"sidepanel/internal/shortcut"
)

// Service owns the panel state and drives the window on every toggle.
// Only the goroutine running Run mutates state; the mutex exists so the
// frontend can read a consistent snapshot.
type Service struct {
	locate   Locator
	expanded geometry.Size
	log      logger.Logger
	out      io.Writer
	requests chan struct{}

	mu      sync.RWMutex
	state   State
	monitor geometry.Rect
}

// Options configures a Service
type Options struct {
	// Locate re-fetches the window handle
	Locate Locator

	// Expanded is the window size in the expanded state
	Expanded geometry.Size

	// Fallback is used when the monitor cannot be read at startup
	Fallback geometry.Rect

	// Log receives best-effort diagnostics; nil discards them
	Log logger.Logger

	// Out receives one line per toggle; defaults to stdout
	Out io.Writer
}

// New creates a service in the expanded state. The monitor under the window
// is read once here and reused for every later snap.
func New(opts Options) *Service {
	s := &Service{
		locate:   opts.Locate,
		expanded: opts.Expanded,
		log:      opts.Log,
		out:      opts.Out,
		requests: make(chan struct{}, 1),
		state:    Expanded,
	}
	if s.out == nil {
		s.out = os.Stdout
	}
	if s.locate == nil {
		s.locate = func() (Window, error) { return nil, ErrWindowNotFound }
	}

	w, err := s.locate()
	if err != nil {
		s.discard("locate window", err)
		w = nil
	}

	monitor, err := ReadMonitor(w, opts.Fallback)
	s.discard("read monitor", err)
	s.monitor = monitor

	return s
}

// Place snaps the window to the cached monitor without changing state
func (s *Service) Place() {
	w, err := s.locate()
	if err != nil {
		s.discard("locate window", err)
		return
	}
	s.discard("snap window", Snap(w, s.Monitor()))
}

// Run drains hotkey events and frontend toggle requests until ctx is done
// or events is closed. It is the only writer of the panel state.
func (s *Service) Run(ctx context.Context, events <-chan shortcut.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			s.Handle(ev)
		case <-s.requests:
			s.toggle()
		}
	}
}

// Handle applies a single hotkey event. Only presses toggle.
func (s *Service) Handle(ev shortcut.Event) {
	if ev.Phase != shortcut.Pressed {
		return
	}
	s.toggle()
}

// RequestToggle asks the Run loop to toggle. It returns false when a request
// is already pending.
func (s *Service) RequestToggle() bool {
	select {
	case s.requests <- struct{}{}:
		return true
	default:
		return false
	}
}

func (s *Service) toggle() {
	s.mu.Lock()
	s.state = s.state.Next()
	state := s.state
	monitor := s.monitor
	s.mu.Unlock()

	w, err := s.locate()
	if err != nil {
		s.discard("locate window", err)
		return
	}

	s.discard("set click-through", w.SetClickThrough(!state.Interactive()))

	if state.IsCollapsed() {
		size, err := w.OuterSize()
		if err == nil {
			s.discard("collapse window", w.SetSize(geometry.Size{Width: 0, Height: size.Height}))
		} else {
			s.discard("read outer size", err)
		}
	} else {
		s.discard("expand window", w.SetSize(s.expanded))
	}

	s.discard("snap window", Snap(w, monitor))

	fmt.Fprintf(s.out, "Window is now %s and %s\n", state.InputLabel(), state.VisibilityLabel())
}

// State returns the current state
func (s *Service) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Monitor returns the monitor geometry captured at startup
func (s *Service) Monitor() geometry.Rect {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.monitor
}

// Info returns a snapshot for the frontend
func (s *Service) Info() PanelInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return PanelInfo{
		Interactive: s.state.Interactive(),
		Collapsed:   s.state.IsCollapsed(),
		Input:       s.state.InputLabel(),
		Visibility:  s.state.VisibilityLabel(),
		MonitorX:    s.monitor.X,
		MonitorY:    s.monitor.Y,
		MonitorW:    s.monitor.Width,
		MonitorH:    s.monitor.Height,
	}
}

// discard drops a native call failure after an optional debug line
func (s *Service) discard(op string, err error) {
	if err == nil || s.log == nil {
		return
	}
	s.log.Debug(fmt.Sprintf("overlay: %s: %v", op, err))
}
