// Package x11 drives the panel window on X11 sessions. Click-through is an
// empty SHAPE input region; monitors come from XINERAMA.
package x11

import (
	"strings"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/shape"
	"github.com/jezek/xgb/xinerama"
	"github.com/jezek/xgb/xproto"
	"github.com/pkg/errors"

	"sidepanel/internal/geometry"
	"sidepanel/internal/overlay"
)

// maxSearchDepth covers root -> WM frame -> client
const maxSearchDepth = 3

// Conn is a connection to the X server with the extensions the panel needs
type Conn struct {
	conn   *xgb.Conn
	root   xproto.Window
	screen *xproto.ScreenInfo
	atoms  map[string]xproto.Atom

	hasShape    bool
	hasXinerama bool
}

// Connect opens the display named by $DISPLAY
func Connect() (*Conn, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, errors.Wrap(err, "connect to X server")
	}

	screen := xproto.Setup(conn).DefaultScreen(conn)
	c := &Conn{
		conn:   conn,
		root:   screen.Root,
		screen: screen,
		atoms:  make(map[string]xproto.Atom),
	}

	for _, name := range []string{"_NET_WM_NAME", "UTF8_STRING"} {
		reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
		if err != nil {
			conn.Close()
			return nil, errors.Wrapf(err, "intern atom %s", name)
		}
		c.atoms[name] = reply.Atom
	}

	c.hasShape = shape.Init(conn) == nil
	c.hasXinerama = xinerama.Init(conn) == nil

	return c, nil
}

// Close closes the connection
func (c *Conn) Close() {
	c.conn.Close()
}

// Find searches the window tree for a window titled title
func (c *Conn) Find(title string) (*Window, error) {
	level := []xproto.Window{c.root}
	for depth := 0; depth < maxSearchDepth && len(level) > 0; depth++ {
		var next []xproto.Window
		for _, parent := range level {
			tree, err := xproto.QueryTree(c.conn, parent).Reply()
			if err != nil {
				continue
			}
			for _, child := range tree.Children {
				if c.windowName(child) == title {
					return &Window{c: c, id: child}, nil
				}
			}
			next = append(next, tree.Children...)
		}
		level = next
	}
	return nil, errors.Wrapf(overlay.ErrWindowNotFound, "title %q", title)
}

// Locator looks the window up by title on every call
func (c *Conn) Locator(title string) overlay.Locator {
	return func() (overlay.Window, error) {
		w, err := c.Find(title)
		if err != nil {
			return nil, err
		}
		return w, nil
	}
}

func (c *Conn) windowName(w xproto.Window) string {
	if data := c.property(w, c.atoms["_NET_WM_NAME"], c.atoms["UTF8_STRING"]); len(data) > 0 {
		return strings.TrimRight(string(data), "\x00")
	}
	if data := c.property(w, xproto.AtomWmName, xproto.AtomString); len(data) > 0 {
		return strings.TrimRight(string(data), "\x00")
	}
	return ""
}

func (c *Conn) property(w xproto.Window, atom, atomType xproto.Atom) []byte {
	reply, err := xproto.GetProperty(c.conn, false, w, atom, atomType, 0, 256).Reply()
	if err != nil {
		return nil
	}
	return reply.Value
}

// monitors returns every XINERAMA screen, or the root window when the
// extension is missing
func (c *Conn) monitors() []geometry.Rect {
	rootRect := geometry.Rect{
		Width:  int(c.screen.WidthInPixels),
		Height: int(c.screen.HeightInPixels),
	}
	if !c.hasXinerama {
		return []geometry.Rect{rootRect}
	}

	reply, err := xinerama.QueryScreens(c.conn).Reply()
	if err != nil || len(reply.ScreenInfo) == 0 {
		return []geometry.Rect{rootRect}
	}

	out := make([]geometry.Rect, 0, len(reply.ScreenInfo))
	for _, si := range reply.ScreenInfo {
		out = append(out, geometry.Rect{
			X:      int(si.XOrg),
			Y:      int(si.YOrg),
			Width:  int(si.Width),
			Height: int(si.Height),
		})
	}
	return out
}
