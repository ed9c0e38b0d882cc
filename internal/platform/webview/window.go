// Package webview drives the panel window through the Wails runtime. It is
// the fallback where no native backend exists; click-through is unsupported.
package webview

import (
	"context"

	"github.com/samber/lo"
	"github.com/wailsapp/wails/v2/pkg/runtime"

	"sidepanel/internal/geometry"
	"sidepanel/internal/overlay"
)

// Window wraps the Wails runtime context of the single app window
type Window struct {
	ctx context.Context
}

// Locator returns the app window bound to ctx
func Locator(ctx context.Context) overlay.Locator {
	return func() (overlay.Window, error) {
		if ctx == nil {
			return nil, overlay.ErrWindowNotFound
		}
		return &Window{ctx: ctx}, nil
	}
}

// Monitor returns the current screen. The runtime positions windows relative
// to the screen they are on, so the origin is always (0,0).
func (w *Window) Monitor() (geometry.Rect, error) {
	screens, err := runtime.ScreenGetAll(w.ctx)
	if err != nil {
		return geometry.Rect{}, err
	}

	screen, ok := pickScreen(screens)
	if !ok {
		return geometry.Rect{}, overlay.ErrNoMonitor
	}
	return geometry.Rect{Width: screen.Size.Width, Height: screen.Size.Height}, nil
}

func (w *Window) OuterSize() (geometry.Size, error) {
	width, height := runtime.WindowGetSize(w.ctx)
	return geometry.Size{Width: width, Height: height}, nil
}

func (w *Window) SetSize(size geometry.Size) error {
	runtime.WindowSetSize(w.ctx, size.Width, size.Height)
	return nil
}

func (w *Window) SetPosition(pos geometry.Point) error {
	runtime.WindowSetPosition(w.ctx, pos.X, pos.Y)
	return nil
}

// SetClickThrough has no runtime equivalent; expand/collapse still works
func (w *Window) SetClickThrough(enable bool) error {
	return overlay.ErrUnsupported
}

// pickScreen prefers the screen holding the window, then the primary one
func pickScreen(screens []runtime.Screen) (runtime.Screen, bool) {
	if s, ok := lo.Find(screens, func(s runtime.Screen) bool { return s.IsCurrent }); ok {
		return s, true
	}
	if s, ok := lo.Find(screens, func(s runtime.Screen) bool { return s.IsPrimary }); ok {
		return s, true
	}
	return lo.First(screens)
}
