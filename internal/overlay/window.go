package overlay

import (
	"errors"
	"fmt"

	"sidepanel/internal/geometry"
)

var (
	// ErrWindowNotFound implies the panel window could not be located
	ErrWindowNotFound = errors.New("window not found")

	// ErrNoMonitor implies no monitor contains the window
	ErrNoMonitor = errors.New("no monitor found for window")

	// ErrUnsupported implies the backend has no equivalent for the operation
	ErrUnsupported = errors.New("operation not supported by this window backend")
)

// Window is a live handle to the panel window. Implementations are selected
// at build time: user32 on Windows, X11 on Linux, the Wails runtime elsewhere.
type Window interface {
	// Monitor returns the rectangle of the monitor containing the window
	Monitor() (geometry.Rect, error)

	// OuterSize returns the window size including decorations
	OuterSize() (geometry.Size, error)

	SetSize(size geometry.Size) error
	SetPosition(pos geometry.Point) error

	// SetClickThrough makes the window pass pointer and keyboard input to
	// whatever is beneath it. It is idempotent.
	SetClickThrough(enable bool) error
}

// Locator fetches the current window handle. It is called again on every
// toggle because handles can be invalidated while the app runs.
type Locator func() (Window, error)

// ReadMonitor returns the monitor containing w, or fallback when w is nil or
// the query fails.
func ReadMonitor(w Window, fallback geometry.Rect) (geometry.Rect, error) {
	if w == nil {
		return fallback, ErrWindowNotFound
	}

	m, err := w.Monitor()
	if err != nil {
		return fallback, err
	}
	if m.Empty() {
		return fallback, ErrNoMonitor
	}
	return m, nil
}

// Snap moves w flush against the right edge and top of monitor. When the
// outer size cannot be read the window is left where it is.
func Snap(w Window, monitor geometry.Rect) error {
	size, err := w.OuterSize()
	if err != nil {
		return fmt.Errorf("read outer size: %w", err)
	}
	return w.SetPosition(geometry.SnapTopRight(monitor, size))
}
