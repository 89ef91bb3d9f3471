package internal

// Painter draws a node's own content into a block of exactly width x height
// cells. Children are painted afterwards, on top.
type Painter interface {
	Paint(width, height int) string
}

// PainterFunc adapts a function to the Painter interface.
type PainterFunc func(width, height int) string

func (f PainterFunc) Paint(width, height int) string {
	return f(width, height)
}

// Node is one entry of the retained view tree. Its frame is expressed in the
// coordinate space of its parent. Child order is paint order: the last child
// is drawn on top.
type Node struct {
	parent   *Node
	children []*Node
	frame    Rect
	painter  Painter
}

func NewNode(painter Painter) *Node {
	return &Node{painter: painter}
}

func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns a copy of the children in paint order.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

func (n *Node) Frame() Rect {
	return n.frame
}

func (n *Node) SetFrame(r Rect) {
	n.frame = r
}

// Bounds is the node's frame in its own coordinate space.
func (n *Node) Bounds() Rect {
	return Rect{Width: n.frame.Width, Height: n.frame.Height}
}

func (n *Node) Center() Point {
	return n.frame.Center()
}

// SetCenter moves the node so that its frame center lands on p, keeping its
// size.
func (n *Node) SetCenter(p Point) {
	n.frame = n.frame.Offset(p.Sub(n.frame.Center()))
}

// AddChild appends child on top of the existing children. A child that
// already has a parent is detached from it first.
func (n *Node) AddChild(child *Node) {
	child.RemoveFromParent()
	child.parent = n
	n.children = append(n.children, child)
}

func (n *Node) RemoveFromParent() {
	p := n.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil
}

// RemoveAllChildren detaches every child. The detached nodes stay usable.
func (n *Node) RemoveAllChildren() {
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = nil
}

// BringToFront moves child to the end of the paint order. It is a no-op for
// nodes that are not direct children of n.
func (n *Node) BringToFront(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			n.children = append(n.children, child)
			return
		}
	}
}

// IsDescendant reports whether n is ancestor or lives somewhere below it.
func (n *Node) IsDescendant(ancestor *Node) bool {
	for cur := n; cur != nil; cur = cur.parent {
		if cur == ancestor {
			return true
		}
	}
	return false
}

// absoluteOrigin is the position of the node's own origin in the space of the
// topmost ancestor.
func (n *Node) absoluteOrigin() Point {
	var p Point
	for cur := n; cur != nil; cur = cur.parent {
		p = p.Add(cur.frame.Origin())
	}
	return p
}

// ConvertRect maps r from n's coordinate space into target's. Both nodes must
// share the same tree; target may be any node, not only an ancestor.
func (n *Node) ConvertRect(r Rect, target *Node) Rect {
	from := n.absoluteOrigin()
	var to Point
	if target != nil {
		to = target.absoluteOrigin()
	}
	return r.Offset(from.Sub(to))
}

// RaiseToFront brings n above its siblings, and every ancestor above its own
// siblings, up to but not including root. Any nesting depth works.
func (n *Node) RaiseToFront(root *Node) {
	for cur := n.parent; cur != nil && cur != root; cur = cur.parent {
		if cur.parent != nil {
			cur.parent.BringToFront(cur)
		}
	}
	if n.parent != nil {
		n.parent.BringToFront(n)
	}
}

// paint draws the subtree rooted at n onto c. offset is the absolute position
// of n's parent origin.
func (n *Node) paint(c *canvas, offset Point) {
	origin := offset.Add(n.frame.Origin())
	if n.painter != nil && !n.frame.Empty() {
		c.draw(origin.X, origin.Y, n.painter.Paint(n.frame.Width, n.frame.Height))
	}
	for _, child := range n.children {
		child.paint(c, origin)
	}
}

// hitTest returns the topmost node under p that satisfies accept. p is in the
// coordinate space of n's parent.
func (n *Node) hitTest(p Point, accept func(*Node) bool) *Node {
	local := p.Sub(n.frame.Origin())
	for i := len(n.children) - 1; i >= 0; i-- {
		if hit := n.children[i].hitTest(local, accept); hit != nil {
			return hit
		}
	}
	if accept(n) && n.frame.Contains(p) {
		return n
	}
	return nil
}
