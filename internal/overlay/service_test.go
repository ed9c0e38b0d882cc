package overlay

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sidepanel/internal/geometry"
	"sidepanel/internal/shortcut"
)

// fakeWindow mimics a native window with layered/transparent style bits
type fakeWindow struct {
	mu          sync.Mutex
	monitor     geometry.Rect
	monitorErr  error
	size        geometry.Size
	sizeErr     error
	pos         geometry.Point
	layered     bool
	transparent bool
	calls       int
}

func (f *fakeWindow) Monitor() (geometry.Rect, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.monitor, f.monitorErr
}

func (f *fakeWindow) OuterSize() (geometry.Size, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.size, f.sizeErr
}

func (f *fakeWindow) SetSize(size geometry.Size) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.size = size
	return nil
}

func (f *fakeWindow) SetPosition(pos geometry.Point) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.pos = pos
	return nil
}

func (f *fakeWindow) SetClickThrough(enable bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.layered = true
	f.transparent = enable
	return nil
}

type windowSnapshot struct {
	size        geometry.Size
	pos         geometry.Point
	layered     bool
	transparent bool
	calls       int
}

func (f *fakeWindow) snapshot() windowSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return windowSnapshot{size: f.size, pos: f.pos, layered: f.layered, transparent: f.transparent, calls: f.calls}
}

func locatorFor(w *fakeWindow) Locator {
	return func() (Window, error) { return w, nil }
}

func newTestService(t *testing.T, w *fakeWindow) (*Service, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	s := New(Options{
		Locate:   locatorFor(w),
		Expanded: geometry.Size{Width: 320, Height: 1000},
		Fallback: geometry.DefaultMonitor,
		Out:      out,
	})
	return s, out
}

var pressed = shortcut.Event{Phase: shortcut.Pressed, Combo: "ctrl+shift+alt+o"}

func TestService_EndToEnd(t *testing.T) {
	w := &fakeWindow{
		monitor: geometry.Rect{X: 0, Y: 0, Width: 1920, Height: 1080},
		size:    geometry.Size{Width: 320, Height: 1000},
	}
	s, out := newTestService(t, w)

	s.Place()
	assert.Equal(t, geometry.Point{X: 1600, Y: 0}, w.snapshot().pos)
	assert.Equal(t, Expanded, s.State())

	s.Handle(pressed)
	got := w.snapshot()
	assert.Equal(t, Collapsed, s.State())
	assert.Equal(t, geometry.Size{Width: 0, Height: 1000}, got.size)
	assert.True(t, got.transparent)
	assert.True(t, got.layered)
	assert.Equal(t, geometry.Point{X: 1920, Y: 0}, got.pos)

	s.Handle(pressed)
	got = w.snapshot()
	assert.Equal(t, Expanded, s.State())
	assert.Equal(t, geometry.Size{Width: 320, Height: 1000}, got.size)
	assert.False(t, got.transparent)
	assert.True(t, got.layered, "layered bit survives disabling click-through")
	assert.Equal(t, geometry.Point{X: 1600, Y: 0}, got.pos)

	assert.Equal(t,
		"Window is now click-through and collapsed\nWindow is now interactive and expanded\n",
		out.String())
}

func TestService_CollapseKeepsHeight(t *testing.T) {
	w := &fakeWindow{
		monitor: geometry.Rect{X: 1920, Y: 0, Width: 2560, Height: 1440},
		size:    geometry.Size{Width: 500, Height: 777},
	}
	s, _ := newTestService(t, w)

	s.Handle(pressed)
	got := w.snapshot()
	assert.Equal(t, geometry.Size{Width: 0, Height: 777}, got.size)
	assert.Equal(t, geometry.Point{X: 4480, Y: 0}, got.pos)
}

func TestService_ExpandIgnoresPriorSize(t *testing.T) {
	w := &fakeWindow{
		monitor: geometry.DefaultMonitor,
		size:    geometry.Size{Width: 10, Height: 20},
	}
	s, _ := newTestService(t, w)

	s.Handle(pressed)
	w.SetSize(geometry.Size{Width: 42, Height: 17})
	s.Handle(pressed)

	assert.Equal(t, geometry.Size{Width: 320, Height: 1000}, w.snapshot().size)
}

func TestService_ReleasedIgnored(t *testing.T) {
	w := &fakeWindow{monitor: geometry.DefaultMonitor, size: geometry.Size{Width: 320, Height: 1000}}
	s, out := newTestService(t, w)
	before := w.snapshot().calls

	s.Handle(shortcut.Event{Phase: shortcut.Released, Combo: "ctrl+shift+alt+o"})

	assert.Equal(t, Expanded, s.State())
	assert.Empty(t, out.String())
	assert.Equal(t, before, w.snapshot().calls, "no native call for a release")
}

func TestService_MissingWindowSkipsToggle(t *testing.T) {
	out := &bytes.Buffer{}
	s := New(Options{
		Locate:   func() (Window, error) { return nil, ErrWindowNotFound },
		Expanded: geometry.Size{Width: 320, Height: 1000},
		Fallback: geometry.DefaultMonitor,
		Out:      out,
	})

	s.Handle(pressed)

	assert.Equal(t, Collapsed, s.State(), "state flips before the handle lookup")
	assert.Empty(t, out.String())
	assert.Equal(t, geometry.DefaultMonitor, s.Monitor())
}

func TestService_MonitorFallback(t *testing.T) {
	w := &fakeWindow{monitorErr: errors.New("no monitor"), size: geometry.Size{Width: 320, Height: 1000}}
	s, _ := newTestService(t, w)
	assert.Equal(t, geometry.DefaultMonitor, s.Monitor())

	empty := &fakeWindow{size: geometry.Size{Width: 320, Height: 1000}}
	s, _ = newTestService(t, empty)
	assert.Equal(t, geometry.DefaultMonitor, s.Monitor())
}

func TestService_SizeQueryFailureSkipsReposition(t *testing.T) {
	w := &fakeWindow{
		monitor: geometry.DefaultMonitor,
		sizeErr: errors.New("size unavailable"),
		pos:     geometry.Point{X: 5, Y: 6},
	}
	s, out := newTestService(t, w)

	s.Place()
	assert.Equal(t, geometry.Point{X: 5, Y: 6}, w.snapshot().pos)

	s.Handle(pressed)
	got := w.snapshot()
	assert.Equal(t, geometry.Point{X: 5, Y: 6}, got.pos)
	assert.True(t, got.transparent)
	assert.True(t, strings.HasPrefix(out.String(), "Window is now click-through and collapsed"))
}

func TestService_RunDrainsEventsAndRequests(t *testing.T) {
	w := &fakeWindow{monitor: geometry.DefaultMonitor, size: geometry.Size{Width: 320, Height: 1000}}
	s, _ := newTestService(t, w)

	ctx, cancel := context.WithCancel(context.Background())
	events := make(chan shortcut.Event)
	done := make(chan struct{})
	go func() {
		s.Run(ctx, events)
		close(done)
	}()

	events <- pressed
	events <- shortcut.Event{Phase: shortcut.Released}
	require.Eventually(t, func() bool { return s.State() == Collapsed }, time.Second, 5*time.Millisecond)

	require.True(t, s.RequestToggle())
	require.Eventually(t, func() bool { return s.State() == Expanded }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestService_RunStopsWhenEventsClosed(t *testing.T) {
	s, _ := newTestService(t, &fakeWindow{monitor: geometry.DefaultMonitor})

	events := make(chan shortcut.Event)
	close(events)

	done := make(chan struct{})
	go func() {
		s.Run(context.Background(), events)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after events closed")
	}
}

func TestService_Info(t *testing.T) {
	w := &fakeWindow{monitor: geometry.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}, size: geometry.Size{Width: 320, Height: 1000}}
	s, _ := newTestService(t, w)

	info := s.Info()
	assert.True(t, info.Interactive)
	assert.False(t, info.Collapsed)
	assert.Equal(t, "interactive", info.Input)
	assert.Equal(t, "expanded", info.Visibility)
	assert.Equal(t, 1920, info.MonitorW)

	s.Handle(pressed)
	info = s.Info()
	assert.Equal(t, "click-through", info.Input)
	assert.Equal(t, "collapsed", info.Visibility)
}

func TestState_Cycle(t *testing.T) {
	assert.Equal(t, Collapsed, Expanded.Next())
	assert.Equal(t, Expanded, Expanded.Next().Next())
	assert.True(t, Expanded.Interactive())
	assert.False(t, Collapsed.Interactive())
	assert.Equal(t, "collapsed", Collapsed.String())
}
