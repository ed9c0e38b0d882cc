package shortcut

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Default(t *testing.T) {
	c, err := Parse("ctrl+shift+alt+o")
	require.NoError(t, err)

	assert.Equal(t, []Modifier{ModCtrl, ModShift, ModAlt}, c.Modifiers)
	assert.Equal(t, "o", c.Key)
	assert.Equal(t, "ctrl+shift+alt+o", c.String())
}

func TestParse_Canonicalizes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Alt+Shift+Control+O", "ctrl+shift+alt+o"},
		{" ctrl + ctrl + p ", "ctrl+p"},
		{"cmd+option+F5", "alt+super+f5"},
		{"win+space", "super+space"},
	}

	for _, tc := range tests {
		c, err := Parse(tc.input)
		require.NoError(t, err, tc.input)
		assert.Equal(t, tc.want, c.String(), tc.input)
	}
}

func TestParse_Errors(t *testing.T) {
	bad := []string{
		"",
		"o",
		"ctrl+shift",
		"ctrl+o+p",
		"ctrl++o",
		"ctrl+hyper+o",
		"ctrl+pageup",
	}

	for _, accel := range bad {
		_, err := Parse(accel)
		assert.Error(t, err, "accelerator %q should be rejected", accel)
	}
}

func TestCombo_Equal(t *testing.T) {
	a, err := Parse("ctrl+shift+alt+o")
	require.NoError(t, err)
	b, err := Parse("shift+alt+ctrl+O")
	require.NoError(t, err)
	c, err := Parse("ctrl+shift+o")
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.True(t, a.Has(ModAlt))
	assert.False(t, c.Has(ModAlt))
}
