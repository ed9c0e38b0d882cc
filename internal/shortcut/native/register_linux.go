//go:build linux

package native

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/pkg/errors"

	"sidepanel/internal/shortcut"
)

// X11 keysyms for the named keys Parse accepts
var namedKeysyms = map[string]xproto.Keysym{
	"space":  0x0020, // XK_space
	"tab":    0xff09, // XK_Tab
	"escape": 0xff1b, // XK_Escape
	"return": 0xff0d, // XK_Return
}

const keysymF1 = 0xffbe // XK_F1; F2..F12 follow

var modifierMasks = map[shortcut.Modifier]uint16{
	shortcut.ModCtrl:  xproto.ModMaskControl,
	shortcut.ModShift: xproto.ModMaskShift,
	shortcut.ModAlt:   xproto.ModMask1,
	shortcut.ModSuper: xproto.ModMask4,
}

// Register grabs the combination on the root window. The grab is checked
// synchronously, so a combination owned by another client fails here with
// BadAccess.
func Register(c shortcut.Combo) (*shortcut.Listener, error) {
	sym, ok := keysymFor(c.Key)
	if !ok {
		return nil, fmt.Errorf("key %q is not available on this platform", c.Key)
	}

	conn, err := xgb.NewConn()
	if err != nil {
		return nil, errors.Wrap(err, "connect to X server")
	}

	setup := xproto.Setup(conn)
	count := int(setup.MaxKeycode) - int(setup.MinKeycode) + 1
	mapping, err := xproto.GetKeyboardMapping(conn, setup.MinKeycode, byte(count)).Reply()
	if err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "read keyboard mapping")
	}

	code, ok := keycodeFor(mapping, setup.MinKeycode, sym)
	if !ok {
		conn.Close()
		return nil, fmt.Errorf("no keycode produces key %q", c.Key)
	}

	g := &grab{
		conn: conn,
		root: setup.DefaultScreen(conn).Root,
		code: code,
		stop: make(chan struct{}),
	}
	for _, mods := range lockVariants(modifierMask(c)) {
		err := xproto.GrabKeyChecked(conn, true, g.root, mods, code,
			xproto.GrabModeAsync, xproto.GrabModeAsync).Check()
		if err != nil {
			g.release()
			return nil, errors.Wrapf(err, "grab %s", c)
		}
		g.mods = append(g.mods, mods)
	}

	down := make(chan struct{})
	up := make(chan struct{})
	go g.loop(down, up)

	return shortcut.NewListener(c, down, up, g.unregister), nil
}

// grab is one key grabbed under every lock-key variant of its modifiers
type grab struct {
	conn *xgb.Conn
	root xproto.Window
	code xproto.Keycode
	mods []uint16

	stop     chan struct{}
	stopOnce sync.Once
}

// loop turns X key events into deliveries until the connection closes.
// Auto-repeat shows up as a release and a press sharing one timestamp; the
// repeated press is dropped.
func (g *grab) loop(down, up chan<- struct{}) {
	defer close(down)

	var lastRelease xproto.Timestamp
	for {
		ev, err := g.conn.WaitForEvent()
		if ev == nil && err == nil {
			return
		}
		if err != nil {
			continue
		}

		var out chan<- struct{}
		switch e := ev.(type) {
		case xproto.KeyPressEvent:
			if e.Detail != g.code || e.Time == lastRelease {
				continue
			}
			out = down
		case xproto.KeyReleaseEvent:
			if e.Detail != g.code {
				continue
			}
			lastRelease = e.Time
			out = up
		default:
			continue
		}

		select {
		case out <- struct{}{}:
		case <-g.stop:
			return
		}
	}
}

func (g *grab) unregister() error {
	g.stopOnce.Do(func() { close(g.stop) })
	return g.release()
}

// release drops every grab taken so far and closes the connection
func (g *grab) release() error {
	var firstErr error
	for _, mods := range g.mods {
		err := xproto.UngrabKeyChecked(g.conn, g.code, g.root, mods).Check()
		if err != nil && firstErr == nil {
			firstErr = errors.Wrap(err, "ungrab key")
		}
	}
	g.mods = nil
	g.conn.Close()
	return firstErr
}

func keysymFor(key string) (xproto.Keysym, bool) {
	if len(key) == 1 {
		r := key[0]
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return xproto.Keysym(r), true
		}
		return 0, false
	}
	if sym, ok := namedKeysyms[key]; ok {
		return sym, true
	}
	if n, err := strconv.Atoi(strings.TrimPrefix(key, "f")); err == nil && strings.HasPrefix(key, "f") && n >= 1 && n <= 12 {
		return xproto.Keysym(keysymF1 + n - 1), true
	}
	return 0, false
}

func modifierMask(c shortcut.Combo) uint16 {
	var mask uint16
	for _, m := range c.Modifiers {
		mask |= modifierMasks[m]
	}
	return mask
}

// lockVariants returns mask with every combination of Caps Lock and Num Lock
// so the shortcut fires regardless of lock state
func lockVariants(mask uint16) []uint16 {
	return []uint16{
		mask,
		mask | xproto.ModMaskLock,
		mask | xproto.ModMask2,
		mask | xproto.ModMaskLock | xproto.ModMask2,
	}
}

func keycodeFor(mapping *xproto.GetKeyboardMappingReply, min xproto.Keycode, sym xproto.Keysym) (xproto.Keycode, bool) {
	per := int(mapping.KeysymsPerKeycode)
	if per == 0 {
		return 0, false
	}
	for i, s := range mapping.Keysyms {
		if s == sym {
			return min + xproto.Keycode(i/per), true
		}
	}
	return 0, false
}
