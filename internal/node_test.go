package internal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddChildDetachesFromPreviousParent(t *testing.T) {
	a, b, child := NewNode(nil), NewNode(nil), NewNode(nil)
	a.AddChild(child)
	b.AddChild(child)

	require.Empty(t, a.Children())
	require.Equal(t, []*Node{child}, b.Children())
	require.Same(t, b, child.Parent())
}

func TestConvertRect(t *testing.T) {
	root := NewNode(nil)
	mid := NewNode(nil)
	leaf := NewNode(nil)
	other := NewNode(nil)
	root.AddChild(mid)
	mid.AddChild(leaf)
	root.AddChild(other)

	mid.SetFrame(Rect{X: 10, Y: 2, Width: 20, Height: 20})
	leaf.SetFrame(Rect{X: 3, Y: 4, Width: 5, Height: 2})
	other.SetFrame(Rect{X: 1, Y: 1, Width: 5, Height: 5})

	require.Equal(t, Rect{X: 13, Y: 6, Width: 5, Height: 2}, leaf.ConvertRect(leaf.Bounds(), root))
	require.Equal(t, Rect{X: 12, Y: 5, Width: 5, Height: 2}, leaf.ConvertRect(leaf.Bounds(), other))
	require.Equal(t, Rect{X: -9, Y: -1, Width: 1, Height: 1}, root.ConvertRect(Rect{X: 1, Y: 1, Width: 1, Height: 1}, mid))
}

func TestSetCenterKeepsSize(t *testing.T) {
	n := NewNode(nil)
	n.SetFrame(Rect{X: 0, Y: 0, Width: 6, Height: 3})
	n.SetCenter(Point{X: 10, Y: 10})
	require.Equal(t, Rect{X: 7, Y: 9, Width: 6, Height: 3}, n.Frame())
	require.Equal(t, Point{X: 10, Y: 10}, n.Center())
}

// Raising must work however deep the element is nested.
func TestRaiseToFrontWalksEveryAncestor(t *testing.T) {
	root := NewNode(nil)
	var chain []*Node
	parent := root
	for i := 0; i < 5; i++ {
		n := NewNode(nil)
		sibling := NewNode(nil)
		parent.AddChild(n)
		parent.AddChild(sibling)
		chain = append(chain, n)
		parent = n
	}
	leaf := NewNode(nil)
	parent.AddChild(leaf)
	parent.AddChild(NewNode(nil))

	leaf.RaiseToFront(root)

	require.Same(t, leaf, last(parent.Children()))
	for i, n := range chain {
		p := n.Parent()
		require.Same(t, n, last(p.Children()), "level %d", i)
	}
}

func TestRaiseToFrontStopsAtRoot(t *testing.T) {
	outer := NewNode(nil)
	root := NewNode(nil)
	outer.AddChild(root)
	outer.AddChild(NewNode(nil))
	child := NewNode(nil)
	root.AddChild(child)

	child.RaiseToFront(root)
	require.NotSame(t, root, last(outer.Children()))
}

func TestHitTestFindsTopmost(t *testing.T) {
	root := NewNode(nil)
	bottom, top := NewNode(nil), NewNode(nil)
	root.AddChild(bottom)
	root.AddChild(top)
	bottom.SetFrame(Rect{X: 0, Y: 0, Width: 4, Height: 4})
	top.SetFrame(Rect{X: 2, Y: 2, Width: 4, Height: 4})

	notRoot := func(n *Node) bool { return n != root }
	require.Same(t, top, root.hitTest(Point{X: 3, Y: 3}, notRoot))
	require.Same(t, bottom, root.hitTest(Point{X: 1, Y: 1}, notRoot))
	require.Nil(t, root.hitTest(Point{X: 9, Y: 9}, notRoot))

	root.BringToFront(bottom)
	require.Same(t, bottom, root.hitTest(Point{X: 3, Y: 3}, notRoot))
}

func last(nodes []*Node) *Node {
	return nodes[len(nodes)-1]
}
