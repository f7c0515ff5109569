package mediakeys

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyEventString(t *testing.T) {
	assert.Equal(t, "PlayPause", PlayPause.String())
	assert.Equal(t, "Next", Next.String())
	assert.Equal(t, "Prev", Prev.String())
	assert.Equal(t, "Unknown", KeyEvent(-1).String())
}

func TestParseKeyEvent(t *testing.T) {
	for _, e := range []KeyEvent{PlayPause, Next, Prev} {
		got, err := ParseKeyEvent(e.String())
		require.NoError(t, err)
		assert.Equal(t, e, got)
	}

	got, err := ParseKeyEvent(" Previous ")
	require.NoError(t, err)
	assert.Equal(t, Prev, got)

	_, err = ParseKeyEvent("stop")
	assert.Error(t, err)
}
