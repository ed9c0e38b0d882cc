package overlay

import "github.com/samber/lo"

// State is the panel's position in its two-step cycle. Input passthrough is
// derived from it, so visibility and click-through never disagree.
type State int

const (
	// Expanded: standard size, receives input
	Expanded State = iota
	// Collapsed: zero width, click-through
	Collapsed
)

// Next returns the state a toggle moves to
func (s State) Next() State {
	if s == Expanded {
		return Collapsed
	}
	return Expanded
}

// Interactive reports whether the window accepts input in this state
func (s State) Interactive() bool {
	return s == Expanded
}

// IsCollapsed reports whether the window is collapsed to zero width
func (s State) IsCollapsed() bool {
	return s == Collapsed
}

// InputLabel is "interactive" or "click-through"
func (s State) InputLabel() string {
	return lo.Ternary(s.Interactive(), "interactive", "click-through")
}

// VisibilityLabel is "collapsed" or "expanded"
func (s State) VisibilityLabel() string {
	return lo.Ternary(s.IsCollapsed(), "collapsed", "expanded")
}

func (s State) String() string {
	return s.VisibilityLabel()
}

// PanelInfo is the state snapshot handed to the frontend
type PanelInfo struct {
	Interactive bool   `json:"interactive"`
	Collapsed   bool   `json:"collapsed"`
	Input       string `json:"input"`
	Visibility  string `json:"visibility"`
	MonitorX    int    `json:"monitor_x"`
	MonitorY    int    `json:"monitor_y"`
	MonitorW    int    `json:"monitor_width"`
	MonitorH    int    `json:"monitor_height"`
}
