package x11

import (
	"github.com/jezek/xgb/shape"
	"github.com/jezek/xgb/xproto"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"sidepanel/internal/geometry"
	"sidepanel/internal/overlay"
)

// Window is a client window plus the frame the window manager wraps it in
type Window struct {
	c  *Conn
	id xproto.Window

	// requested holds the last size asked for. The window manager applies
	// configure requests asynchronously, so geometry read back right after a
	// resize can still be the old one.
	requested *geometry.Size

	// decor is how much larger the frame is than the client, measured once
	decor *geometry.Size
}

// Monitor returns the monitor containing the centre of the window
func (w *Window) Monitor() (geometry.Rect, error) {
	origin, err := xproto.TranslateCoordinates(w.c.conn, w.id, w.c.root, 0, 0).Reply()
	if err != nil {
		return geometry.Rect{}, errors.Wrap(err, "translate window origin")
	}
	size, err := w.OuterSize()
	if err != nil {
		return geometry.Rect{}, err
	}

	center := geometry.Point{
		X: int(origin.DstX) + size.Width/2,
		Y: int(origin.DstY) + size.Height/2,
	}
	m, ok := monitorFor(w.c.monitors(), center)
	if !ok {
		return geometry.Rect{}, overlay.ErrNoMonitor
	}
	return m, nil
}

// OuterSize returns the frame size including borders
func (w *Window) OuterSize() (geometry.Size, error) {
	if w.requested != nil {
		return *w.requested, nil
	}
	return w.sizeOf(w.frame())
}

// SetSize resizes the window so its frame ends up at size. Only the client
// can be configured, so the decorations are taken off first. X11 has no
// zero-sized windows, so a zero dimension becomes one pixel.
func (w *Window) SetSize(size geometry.Size) error {
	decor, err := w.decorations()
	if err != nil {
		return err
	}

	client := clientSizeFor(size, decor)
	err = xproto.ConfigureWindowChecked(w.c.conn, w.id,
		xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{uint32(client.Width), uint32(client.Height)},
	).Check()
	if err != nil {
		return errors.Wrap(err, "resize window")
	}

	outer := geometry.Size{Width: client.Width + decor.Width, Height: client.Height + decor.Height}
	w.requested = &outer
	return nil
}

// decorations measures the frame against the client before the first
// resize, while both still agree.
func (w *Window) decorations() (geometry.Size, error) {
	if w.decor != nil {
		return *w.decor, nil
	}

	client, err := w.sizeOf(w.id)
	if err != nil {
		return geometry.Size{}, err
	}
	decor := geometry.Size{}
	if frame := w.frame(); frame != w.id {
		outer, err := w.sizeOf(frame)
		if err != nil {
			return geometry.Size{}, err
		}
		decor = geometry.Size{
			Width:  max(outer.Width-client.Width, 0),
			Height: max(outer.Height-client.Height, 0),
		}
	}
	w.decor = &decor
	return decor, nil
}

// sizeOf returns the size of win including its border
func (w *Window) sizeOf(win xproto.Window) (geometry.Size, error) {
	geom, err := xproto.GetGeometry(w.c.conn, xproto.Drawable(win)).Reply()
	if err != nil {
		return geometry.Size{}, errors.Wrap(err, "get window geometry")
	}
	border := 2 * int(geom.BorderWidth)
	return geometry.Size{
		Width:  int(geom.Width) + border,
		Height: int(geom.Height) + border,
	}, nil
}

// SetPosition moves the window
func (w *Window) SetPosition(pos geometry.Point) error {
	err := xproto.ConfigureWindowChecked(w.c.conn, w.id,
		xproto.ConfigWindowX|xproto.ConfigWindowY,
		[]uint32{uint32(int32(pos.X)), uint32(int32(pos.Y))},
	).Check()
	return errors.Wrap(err, "move window")
}

// SetClickThrough empties the input region of the client and its frame so
// pointer events reach the windows below, or restores the default region.
// There is no layered-window prerequisite on X11.
func (w *Window) SetClickThrough(enable bool) error {
	if !w.c.hasShape {
		return overlay.ErrUnsupported
	}

	targets := lo.Uniq([]xproto.Window{w.id, w.frame()})
	for _, target := range targets {
		var err error
		if enable {
			err = shape.RectanglesChecked(w.c.conn, shape.SoSet, shape.SkInput,
				xproto.ClipOrderingUnsorted, target, 0, 0, nil).Check()
		} else {
			err = shape.MaskChecked(w.c.conn, shape.SoSet, shape.SkInput,
				target, 0, 0, xproto.PixmapNone).Check()
		}
		if err != nil {
			return errors.Wrapf(err, "set input shape on window %d", target)
		}
	}
	return nil
}

// frame returns the top-level ancestor directly below the root window
func (w *Window) frame() xproto.Window {
	win := w.id
	for {
		reply, err := xproto.QueryTree(w.c.conn, win).Reply()
		if err != nil || reply.Parent == w.c.root || reply.Parent == 0 {
			return win
		}
		win = reply.Parent
	}
}

func monitorFor(monitors []geometry.Rect, p geometry.Point) (geometry.Rect, bool) {
	if m, ok := lo.Find(monitors, func(m geometry.Rect) bool { return m.Contains(p) }); ok {
		return m, true
	}
	return lo.First(monitors)
}

// clientSizeFor is the client size that puts the frame at outer
func clientSizeFor(outer, decor geometry.Size) geometry.Size {
	return clampSize(geometry.Size{
		Width:  outer.Width - decor.Width,
		Height: outer.Height - decor.Height,
	})
}

func clampSize(size geometry.Size) geometry.Size {
	return geometry.Size{
		Width:  max(size.Width, 1),
		Height: max(size.Height, 1),
	}
}
