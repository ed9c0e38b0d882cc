//go:build windows

package win32

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"sidepanel/internal/geometry"
	"sidepanel/internal/overlay"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")

	procFindWindowW       = user32.NewProc("FindWindowW")
	procGetWindowRect     = user32.NewProc("GetWindowRect")
	procSetWindowPos      = user32.NewProc("SetWindowPos")
	procMonitorFromWindow = user32.NewProc("MonitorFromWindow")
	procGetMonitorInfoW   = user32.NewProc("GetMonitorInfoW")
	procGetWindowLongW    = user32.NewProc("GetWindowLongW")
	procSetWindowLongW    = user32.NewProc("SetWindowLongW")
)

type rect struct {
	Left   int32
	Top    int32
	Right  int32
	Bottom int32
}

type monitorInfo struct {
	Size    uint32
	Monitor rect
	Work    rect
	Flags   uint32
}

// Window is a top-level window addressed by its HWND
type Window struct {
	hwnd uintptr
}

// Find returns the top-level window with the given title
func Find(title string) (*Window, error) {
	ptr, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return nil, fmt.Errorf("invalid window title %q: %w", title, err)
	}

	hwnd, _, _ := procFindWindowW.Call(0, uintptr(unsafe.Pointer(ptr)))
	if hwnd == 0 {
		return nil, fmt.Errorf("%w: %q", overlay.ErrWindowNotFound, title)
	}
	return &Window{hwnd: hwnd}, nil
}

// Locator looks the window up by title on every call
func Locator(title string) overlay.Locator {
	return func() (overlay.Window, error) {
		w, err := Find(title)
		if err != nil {
			return nil, err
		}
		return w, nil
	}
}

// Monitor returns the bounds of the monitor nearest to the window
func (w *Window) Monitor() (geometry.Rect, error) {
	hmon, _, _ := procMonitorFromWindow.Call(w.hwnd, monitorNearest)
	if hmon == 0 {
		return geometry.Rect{}, overlay.ErrNoMonitor
	}

	var mi monitorInfo
	mi.Size = uint32(unsafe.Sizeof(mi))
	ret, _, callErr := procGetMonitorInfoW.Call(hmon, uintptr(unsafe.Pointer(&mi)))
	if ret == 0 {
		return geometry.Rect{}, fmt.Errorf("GetMonitorInfoW: %w", callErr)
	}

	return toRect(mi.Monitor), nil
}

// OuterSize returns the window rectangle size, including the frame
func (w *Window) OuterSize() (geometry.Size, error) {
	var r rect
	ret, _, callErr := procGetWindowRect.Call(w.hwnd, uintptr(unsafe.Pointer(&r)))
	if ret == 0 {
		return geometry.Size{}, fmt.Errorf("GetWindowRect: %w", callErr)
	}
	return toRect(r).Size(), nil
}

// SetSize resizes the window without moving it
func (w *Window) SetSize(size geometry.Size) error {
	return w.setWindowPos(0, 0, size.Width, size.Height, swpNoMove|swpNoZOrder|swpNoActivate)
}

// SetPosition moves the window without resizing it
func (w *Window) SetPosition(pos geometry.Point) error {
	return w.setWindowPos(pos.X, pos.Y, 0, 0, swpNoSize|swpNoZOrder|swpNoActivate)
}

// SetClickThrough toggles WS_EX_TRANSPARENT so mouse events pass through the
// window. WS_EX_LAYERED is always set first.
func (w *Window) SetClickThrough(enable bool) error {
	idx := gwlExStyle
	exStyle, _, _ := procGetWindowLongW.Call(w.hwnd, uintptr(idx))

	newStyle := clickThroughStyle(int32(exStyle), enable)
	procSetWindowLongW.Call(w.hwnd, uintptr(idx), uintptr(newStyle))
	return nil
}

func (w *Window) setWindowPos(x, y, cx, cy int, flags uintptr) error {
	ret, _, callErr := procSetWindowPos.Call(
		w.hwnd,
		0,
		uintptr(x),
		uintptr(y),
		uintptr(cx),
		uintptr(cy),
		flags,
	)
	if ret == 0 {
		return fmt.Errorf("SetWindowPos: %w", callErr)
	}
	return nil
}

func toRect(r rect) geometry.Rect {
	return geometry.Rect{
		X:      int(r.Left),
		Y:      int(r.Top),
		Width:  int(r.Right - r.Left),
		Height: int(r.Bottom - r.Top),
	}
}
