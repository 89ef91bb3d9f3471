package internal

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

const (
	columnBorder = 1 // border cells on each side of a column box
	minElementW  = 1
)

var columnBorderColor = lipgloss.AdaptiveColor{Light: "250", Dark: "238"}

// column pairs the bordered container with the stack that lays out its
// elements. The container is what drops are hit-tested against.
type column struct {
	container *Node
	stack     *Node
	elements  []Element
}

// columnLayout owns the visual side of the board: one container per column
// inside a horizontal row, and one node per hosted element.
type columnLayout struct {
	row     *Node
	columns []*column
	nodes   map[Element]*Node
	owners  map[*Node]Element

	spacing int
	radius  int
}

func newColumnLayout(spacing, radius int) *columnLayout {
	return &columnLayout{
		row:     NewNode(nil),
		nodes:   make(map[Element]*Node),
		owners:  make(map[*Node]Element),
		spacing: spacing,
		radius:  radius,
	}
}

// configure throws away every column and builds count empty ones. Element
// nodes survive so they can be hosted again.
func (l *columnLayout) configure(count int) error {
	if count <= 0 {
		return fmt.Errorf("configure %d columns: %w", count, ErrInvalidColumnCount)
	}
	for _, c := range l.columns {
		c.stack.RemoveAllChildren()
	}
	l.row.RemoveAllChildren()

	l.columns = make([]*column, count)
	for i := range l.columns {
		c := &column{stack: NewNode(nil)}
		c.container = NewNode(PainterFunc(l.paintColumn))
		c.container.AddChild(c.stack)
		l.row.AddChild(c.container)
		l.columns[i] = c
	}
	return nil
}

func (l *columnLayout) count() int {
	return len(l.columns)
}

// nodeFor returns the node wrapping e, creating it on first use.
func (l *columnLayout) nodeFor(e Element) *Node {
	if n, ok := l.nodes[e]; ok {
		return n
	}
	n := NewNode(PainterFunc(func(width, _ int) string {
		return e.View(width)
	}))
	l.nodes[e] = n
	l.owners[n] = e
	return n
}

// hostElement appends e to the bottom of column index, detaching it from the
// column that hosted it before.
func (l *columnLayout) hostElement(e Element, index int) error {
	if index < 0 || index >= len(l.columns) {
		return fmt.Errorf("host in column %d of %d: %w", index, len(l.columns), ErrColumnOutOfRange)
	}
	n := l.nodeFor(e)
	for _, c := range l.columns {
		c.elements = removeElement(c.elements, e)
	}
	target := l.columns[index]
	target.elements = append(target.elements, e)
	target.stack.AddChild(n)
	return nil
}

// clearColumn detaches every element hosted in column index.
func (l *columnLayout) clearColumn(index int) {
	if index < 0 || index >= len(l.columns) {
		return
	}
	c := l.columns[index]
	c.stack.RemoveAllChildren()
	c.elements = nil
}

// forget drops nodes of elements that are no longer hosted anywhere.
func (l *columnLayout) forget(keep Arrangement) {
	live := make(map[Element]struct{}, keep.Len())
	for _, col := range keep {
		for _, e := range col {
			live[e] = struct{}{}
		}
	}
	for e, n := range l.nodes {
		if _, ok := live[e]; !ok {
			n.RemoveFromParent()
			delete(l.nodes, e)
			delete(l.owners, n)
		}
	}
}

// hosted returns the visual membership, column by column.
func (l *columnLayout) hosted() Arrangement {
	out := make(Arrangement, len(l.columns))
	for i, c := range l.columns {
		out[i] = append([]Element{}, c.elements...)
	}
	return out
}

func (l *columnLayout) columnWidths(width int) []int {
	n := len(l.columns)
	widths := make([]int, n)
	if n == 0 {
		return widths
	}
	avail := max(0, width-l.spacing*(n-1))
	each := avail / n
	for i := range widths {
		widths[i] = each
	}
	widths[n-1] += avail - each*n
	return widths
}

// layout assigns frames to every column and hosted element. Columns are
// equally wide and share the height of the tallest one, or minHeight when
// that is larger.
func (l *columnLayout) layout(width, minHeight int) {
	widths := l.columnWidths(width)
	inset := columnBorder + l.spacing

	type placed struct {
		node  *Node
		frame Rect
	}
	var frames [][]placed
	height := minHeight
	for i, c := range l.columns {
		inner := max(minElementW, widths[i]-2*inset)
		y := 0
		var col []placed
		for j, e := range c.elements {
			if j > 0 {
				y += l.spacing
			}
			h := lipgloss.Height(e.View(inner))
			col = append(col, placed{node: l.nodes[e], frame: Rect{X: 0, Y: y, Width: inner, Height: h}})
			y += h
		}
		frames = append(frames, col)
		height = max(height, y+2*inset)
	}

	x := 0
	for i, c := range l.columns {
		c.container.SetFrame(Rect{X: x, Y: 0, Width: widths[i], Height: height})
		c.stack.SetFrame(Rect{
			X:      inset,
			Y:      inset,
			Width:  max(minElementW, widths[i]-2*inset),
			Height: max(0, height-2*inset),
		})
		for _, p := range frames[i] {
			p.node.SetFrame(p.frame)
		}
		x += widths[i] + l.spacing
	}
	l.row.SetFrame(Rect{Width: max(0, width), Height: height})
}

func (l *columnLayout) paintColumn(width, height int) string {
	border := lipgloss.NormalBorder()
	if l.radius > 0 {
		border = lipgloss.RoundedBorder()
	}
	return lipgloss.NewStyle().
		Border(border).
		BorderForeground(columnBorderColor).
		Width(max(0, width-2*columnBorder)).
		Height(max(0, height-2*columnBorder)).
		Render("")
}

func removeElement(list []Element, e Element) []Element {
	for i, el := range list {
		if el == e {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return list
}
