package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapTopRight(t *testing.T) {
	tests := []struct {
		name    string
		monitor Rect
		window  Size
		want    Point
	}{
		{"primary 1080p", Rect{0, 0, 1920, 1080}, Size{320, 1000}, Point{1600, 0}},
		{"collapsed", Rect{0, 0, 1920, 1080}, Size{0, 1000}, Point{1920, 0}},
		{"secondary right", Rect{1920, 0, 2560, 1440}, Size{320, 1000}, Point{4160, 0}},
		{"secondary left", Rect{-1280, -200, 1280, 1024}, Size{320, 1000}, Point{-320, -200}},
		{"wider than monitor", Rect{0, 0, 800, 600}, Size{1000, 500}, Point{-200, 0}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := SnapTopRight(tc.monitor, tc.window)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.monitor.X+tc.monitor.Width, got.X+tc.window.Width, "right edge flush")
			assert.Equal(t, tc.monitor.Y, got.Y, "top aligned")
		})
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 100, Y: 50, Width: 10, Height: 10}

	assert.True(t, r.Contains(Point{100, 50}))
	assert.True(t, r.Contains(Point{109, 59}))
	assert.False(t, r.Contains(Point{110, 55}))
	assert.False(t, r.Contains(Point{99, 55}))
}

func TestParseRect(t *testing.T) {
	r, err := ParseRect("1920, 0,2560,1440")
	require.NoError(t, err)
	assert.Equal(t, Rect{1920, 0, 2560, 1440}, r)

	_, err = ParseRect("1,2,3")
	assert.Error(t, err)

	_, err = ParseRect("0,0,-1,10")
	assert.Error(t, err)

	_, err = ParseRect("a,b,c,d")
	assert.Error(t, err)
}

func TestParseSize(t *testing.T) {
	s, err := ParseSize("320x1000")
	require.NoError(t, err)
	assert.Equal(t, Size{320, 1000}, s)

	s, err = ParseSize("0,1000")
	require.NoError(t, err)
	assert.Equal(t, Size{0, 1000}, s)

	_, err = ParseSize("320")
	assert.Error(t, err)
}
