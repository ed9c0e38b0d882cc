//go:build darwin

package native

import (
	"golang.design/x/hotkey"

	"sidepanel/internal/shortcut"
)

var modifierMap = map[shortcut.Modifier]hotkey.Modifier{
	shortcut.ModCtrl:  hotkey.ModCtrl,
	shortcut.ModShift: hotkey.ModShift,
	shortcut.ModAlt:   hotkey.ModOption,
	shortcut.ModSuper: hotkey.ModCmd,
}
