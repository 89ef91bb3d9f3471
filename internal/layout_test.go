package internal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestColumnWidths(t *testing.T) {
	l := newColumnLayout(1, 0)
	require.NoError(t, l.configure(3))
	require.Equal(t, []int{9, 9, 10}, l.columnWidths(30))

	l.spacing = 0
	require.Equal(t, []int{10, 10, 10}, l.columnWidths(30))

	require.NoError(t, l.configure(4))
	require.Equal(t, []int{0, 0, 0, 0}, l.columnWidths(0))
}

func TestConfigureRejectsNonPositive(t *testing.T) {
	l := newColumnLayout(1, 0)
	require.ErrorIs(t, l.configure(0), ErrInvalidColumnCount)
	require.ErrorIs(t, l.configure(-1), ErrInvalidColumnCount)
}

func TestConfigureDiscardsHosting(t *testing.T) {
	A := newBlock("A")
	l := newColumnLayout(1, 0)
	require.NoError(t, l.configure(2))
	require.NoError(t, l.hostElement(A, 1))
	node := l.nodes[A]
	require.NotNil(t, node.Parent())

	require.NoError(t, l.configure(3))
	require.Equal(t, NewArrangement(3), l.hosted())
	require.Nil(t, node.Parent())
	require.Len(t, l.row.Children(), 3)

	// The node is reused when the element is hosted again.
	require.NoError(t, l.hostElement(A, 2))
	require.Same(t, node, l.nodes[A])
}

func TestHostElementMovesBetweenColumns(t *testing.T) {
	A, B := newBlock("A"), newBlock("B")
	l := newColumnLayout(1, 0)
	require.NoError(t, l.configure(2))
	require.NoError(t, l.hostElement(A, 0))
	require.NoError(t, l.hostElement(B, 0))
	require.NoError(t, l.hostElement(A, 1))

	require.Equal(t, Arrangement{{B}, {A}}, l.hosted())
	require.Same(t, l.columns[1].stack, l.nodes[A].Parent())
	require.ErrorIs(t, l.hostElement(A, 2), ErrColumnOutOfRange)
}

func TestClearColumnKeepsElementsAlive(t *testing.T) {
	A, B := newBlock("A"), newBlock("B")
	l := newColumnLayout(1, 0)
	require.NoError(t, l.configure(2))
	require.NoError(t, l.hostElement(A, 0))
	require.NoError(t, l.hostElement(B, 0))

	l.clearColumn(0)
	require.Equal(t, Arrangement{{}, {}}, l.hosted())
	require.Empty(t, l.columns[0].stack.Children())
	require.Contains(t, l.nodes, Element(A))

	l.clearColumn(7)
}

func TestLayoutFrames(t *testing.T) {
	A, B := newBlock("A"), &block{name: "B", height: 2}
	l := newColumnLayout(1, 1)
	require.NoError(t, l.configure(2))
	require.NoError(t, l.hostElement(A, 0))
	require.NoError(t, l.hostElement(B, 0))

	l.layout(21, 0)

	// widths: (21-1)/2 = 10 each; inset border 1 + spacing 1.
	require.Equal(t, Rect{X: 0, Y: 0, Width: 10, Height: 10}, l.columns[0].container.Frame())
	require.Equal(t, Rect{X: 11, Y: 0, Width: 10, Height: 10}, l.columns[1].container.Frame())
	require.Equal(t, Rect{X: 2, Y: 2, Width: 6, Height: 6}, l.columns[0].stack.Frame())
	require.Equal(t, Rect{X: 0, Y: 0, Width: 6, Height: 3}, l.nodes[A].Frame())
	require.Equal(t, Rect{X: 0, Y: 4, Width: 6, Height: 2}, l.nodes[B].Frame())

	// A taller viewport stretches every column.
	l.layout(21, 15)
	require.Equal(t, 15, l.columns[1].container.Frame().Height)
}
