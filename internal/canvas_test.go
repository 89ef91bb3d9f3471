package internal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanvasDraw(t *testing.T) {
	c := newCanvas(6, 3)
	c.draw(1, 1, "ab\ncd")
	require.Equal(t, "      \n ab   \n cd   ", c.String())
}

func TestCanvasDrawClips(t *testing.T) {
	c := newCanvas(5, 2)
	c.draw(-2, 0, "wxyz")
	c.draw(3, 1, "1234")
	c.draw(0, -1, "hidden\nv")
	require.Equal(t, "vz   \n   12", c.String())
}

func TestCanvasLaterDrawsCover(t *testing.T) {
	c := newCanvas(4, 1)
	c.draw(0, 0, "....")
	c.draw(1, 0, "##")
	require.Equal(t, ".##.", c.String())
}
