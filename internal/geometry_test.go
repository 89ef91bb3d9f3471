package internal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRectContains(t *testing.T) {
	r := Rect{X: 2, Y: 3, Width: 4, Height: 2}
	tests := []struct {
		p    Point
		want bool
	}{
		{Point{X: 2, Y: 3}, true},
		{Point{X: 5, Y: 4}, true},
		{Point{X: 6, Y: 4}, false},
		{Point{X: 5, Y: 5}, false},
		{Point{X: 1, Y: 3}, false},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, r.Contains(tt.p), "point %+v", tt.p)
	}
	require.False(t, Rect{X: 0, Y: 0}.Contains(Point{}))
}

func TestRectCenterAndOffset(t *testing.T) {
	r := Rect{X: 10, Y: 4, Width: 5, Height: 3}
	require.Equal(t, Point{X: 12, Y: 5}, r.Center())
	require.Equal(t, Rect{X: 7, Y: 6, Width: 5, Height: 3}, r.Offset(Point{X: -3, Y: 2}))
}

func TestHitTest(t *testing.T) {
	columns := []Rect{
		{X: 0, Y: 0, Width: 10, Height: 20},
		{X: 11, Y: 0, Width: 10, Height: 20},
		{X: 22, Y: 0, Width: 10, Height: 20},
	}

	index, ok := HitTest(Rect{X: 20, Y: 5, Width: 6, Height: 3}, columns)
	require.True(t, ok)
	require.Equal(t, 2, index)

	// Center lands in the gap between columns 0 and 1.
	_, ok = HitTest(Rect{X: 8, Y: 5, Width: 5, Height: 3}, columns)
	require.False(t, ok)

	_, ok = HitTest(Rect{X: 0, Y: 40, Width: 6, Height: 3}, columns)
	require.False(t, ok)

	_, ok = HitTest(Rect{X: 0, Y: 0, Width: 4, Height: 4}, nil)
	require.False(t, ok)
}

func TestHitTestOverlapPrefersLowestIndex(t *testing.T) {
	columns := []Rect{
		{X: 0, Y: 0, Width: 10, Height: 10},
		{X: 5, Y: 0, Width: 10, Height: 10},
		{X: 5, Y: 0, Width: 10, Height: 10},
	}
	index, ok := HitTest(Rect{X: 6, Y: 2, Width: 2, Height: 2}, columns)
	require.True(t, ok)
	require.Equal(t, 0, index)

	index, ok = HitTest(Rect{X: 11, Y: 2, Width: 2, Height: 2}, columns)
	require.True(t, ok)
	require.Equal(t, 1, index)
}
