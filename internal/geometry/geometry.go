package geometry

import (
	"fmt"
	"strconv"
	"strings"
)

// Point is a position in virtual desktop pixels. Coordinates can be negative
// when a monitor sits left of or above the primary one.
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Size is a width/height pair in pixels
type Size struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Rect is a monitor or window rectangle
type Rect struct {
	X      int `json:"x" yaml:"x"`
	Y      int `json:"y" yaml:"y"`
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// DefaultMonitor is used whenever the monitor containing the window cannot be determined
var DefaultMonitor = Rect{X: 0, Y: 0, Width: 1920, Height: 1080}

// Origin returns the top-left corner of the rectangle
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Size returns the rectangle's dimensions
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Contains reports whether p lies inside r
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Empty reports whether the rectangle has no area
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

func (r Rect) String() string {
	return fmt.Sprintf("%d,%d,%d,%d", r.X, r.Y, r.Width, r.Height)
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// SnapTopRight returns the position that puts a window of the given outer size
// flush against the monitor's right edge and aligned with its top edge.
func SnapTopRight(monitor Rect, window Size) Point {
	return Point{
		X: monitor.X + monitor.Width - window.Width,
		Y: monitor.Y,
	}
}

// ParseRect parses "X,Y,W,H"
func ParseRect(s string) (Rect, error) {
	v, err := parseInts(s, 4)
	if err != nil {
		return Rect{}, fmt.Errorf("invalid rect %q: %w", s, err)
	}
	if v[2] < 0 || v[3] < 0 {
		return Rect{}, fmt.Errorf("invalid rect %q: negative size", s)
	}
	return Rect{X: v[0], Y: v[1], Width: v[2], Height: v[3]}, nil
}

// ParseSize parses "W,H" or "WxH"
func ParseSize(s string) (Size, error) {
	v, err := parseInts(strings.ReplaceAll(s, "x", ","), 2)
	if err != nil {
		return Size{}, fmt.Errorf("invalid size %q: %w", s, err)
	}
	if v[0] < 0 || v[1] < 0 {
		return Size{}, fmt.Errorf("invalid size %q: negative dimension", s)
	}
	return Size{Width: v[0], Height: v[1]}, nil
}

func parseInts(s string, n int) ([]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d comma-separated values, got %d", n, len(parts))
	}

	out := make([]int, n)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
