// Package shortcut parses accelerator strings and delivers global hotkey
// events from the OS on a single channel.
package shortcut

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
)

// Modifier is a platform-neutral modifier key
type Modifier int

const (
	ModCtrl Modifier = iota
	ModShift
	ModAlt
	ModSuper
)

var modifierNames = map[Modifier]string{
	ModCtrl:  "ctrl",
	ModShift: "shift",
	ModAlt:   "alt",
	ModSuper: "super",
}

var modifierAliases = map[string]Modifier{
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"shift":   ModShift,
	"alt":     ModAlt,
	"option":  ModAlt,
	"super":   ModSuper,
	"win":     ModSuper,
	"cmd":     ModSuper,
	"meta":    ModSuper,
}

func (m Modifier) String() string {
	if name, ok := modifierNames[m]; ok {
		return name
	}
	return fmt.Sprintf("modifier(%d)", int(m))
}

// Combo is a parsed accelerator: a set of modifiers plus exactly one key
type Combo struct {
	Modifiers []Modifier
	Key       string
}

// Parse turns an accelerator such as "ctrl+shift+alt+o" into a Combo.
// Tokens are case-insensitive and modifiers may appear in any order.
func Parse(accel string) (Combo, error) {
	tokens := strings.Split(strings.ToLower(strings.TrimSpace(accel)), "+")

	var combo Combo
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			return Combo{}, fmt.Errorf("invalid accelerator %q: empty token", accel)
		}

		if mod, ok := modifierAliases[tok]; ok {
			combo.Modifiers = append(combo.Modifiers, mod)
			continue
		}

		if !isKnownKey(tok) {
			return Combo{}, fmt.Errorf("invalid accelerator %q: unknown key %q", accel, tok)
		}
		if combo.Key != "" {
			return Combo{}, fmt.Errorf("invalid accelerator %q: more than one key", accel)
		}
		combo.Key = tok
	}

	if combo.Key == "" {
		return Combo{}, fmt.Errorf("invalid accelerator %q: no key", accel)
	}
	if len(combo.Modifiers) == 0 {
		return Combo{}, fmt.Errorf("invalid accelerator %q: at least one modifier is required", accel)
	}

	combo.Modifiers = lo.Uniq(combo.Modifiers)
	sort.Slice(combo.Modifiers, func(i, j int) bool { return combo.Modifiers[i] < combo.Modifiers[j] })

	return combo, nil
}

// Has reports whether the combo includes the modifier
func (c Combo) Has(m Modifier) bool {
	return lo.Contains(c.Modifiers, m)
}

// String returns the canonical accelerator, e.g. "ctrl+shift+alt+o"
func (c Combo) String() string {
	parts := lo.Map(c.Modifiers, func(m Modifier, _ int) string { return m.String() })
	return strings.Join(append(parts, c.Key), "+")
}

// Equal reports whether both combos describe the same key combination
func (c Combo) Equal(other Combo) bool {
	return c.String() == other.String()
}

func isKnownKey(name string) bool {
	if len(name) == 1 {
		r := name[0]
		return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
	}
	return lo.Contains(namedKeys, name)
}

var namedKeys = []string{
	"space", "tab", "escape", "return",
	"f1", "f2", "f3", "f4", "f5", "f6", "f7", "f8", "f9", "f10", "f11", "f12",
}
