//go:build !windows && !darwin && !linux

package native

import "sidepanel/internal/shortcut"

// Register always fails on platforms without a global hotkey facility
func Register(c shortcut.Combo) (*shortcut.Listener, error) {
	return nil, shortcut.ErrUnsupported
}
