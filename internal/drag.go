package internal

// GesturePhase is the stage of a continuous drag gesture.
type GesturePhase int

const (
	GestureBegan GesturePhase = iota
	GestureChanged
	GestureEnded
)

func (p GesturePhase) String() string {
	switch p {
	case GestureBegan:
		return "began"
	case GestureChanged:
		return "changed"
	case GestureEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Gesture is one report from a pan recognizer. Translation is the movement
// since the previous report, not since the gesture began.
type Gesture struct {
	Phase       GesturePhase
	Target      Element
	Translation Point
}

// dragSession lives from gesture begin to gesture end.
type dragSession struct {
	element     Element
	node        *Node
	anchor      Point
	translation Point
}

// dragController turns gestures into node movement and, on release, into a
// committed move on the board.
type dragController struct {
	board   *Board
	session *dragSession
}

func (d *dragController) active() bool {
	return d.session != nil
}

func (d *dragController) handle(g Gesture) {
	switch g.Phase {
	case GestureBegan:
		if d.session != nil || g.Target == nil || !isComparable(g.Target) {
			return
		}
		node, ok := d.board.layout.nodes[g.Target]
		if !ok || !node.IsDescendant(d.board.root) {
			return
		}
		d.session = &dragSession{element: g.Target, node: node, anchor: node.Center()}
		d.board.logger.Debug("drag began", "anchor", d.session.anchor)
		d.translate(g.Translation)

	case GestureChanged:
		if !d.owns(g) {
			return
		}
		d.translate(g.Translation)

	case GestureEnded:
		if !d.owns(g) {
			return
		}
		d.translate(g.Translation)
		d.end()
	}
}

func (d *dragController) owns(g Gesture) bool {
	return d.session != nil && g.Target != nil && isComparable(g.Target) && g.Target == d.session.element
}

// translate moves the dragged node by delta and keeps it painted above every
// column.
func (d *dragController) translate(delta Point) {
	s := d.session
	s.translation = s.translation.Add(delta)
	s.node.SetCenter(s.node.Center().Add(delta))
	s.node.RaiseToFront(d.board.root)
}

func (d *dragController) end() {
	s := d.session
	d.session = nil

	if s.translation.IsZero() {
		s.node.SetCenter(s.anchor)
		return
	}

	root := d.board.root
	bounds := s.node.ConvertRect(s.node.Bounds(), root)
	index, ok := HitTest(bounds, d.board.columnBounds())
	if !ok {
		d.board.logger.Debug("drop outside columns", "center", bounds.Center())
		s.node.SetCenter(s.anchor)
		return
	}

	if err := d.board.commit(s.element, index); err != nil {
		d.board.logger.Error("commit drop", "column", index, "err", err)
	}
	s.node.SetCenter(s.anchor)
}

// cancel drops the session and puts the node back where it started.
func (d *dragController) cancel() {
	if d.session == nil {
		return
	}
	d.session.node.SetCenter(d.session.anchor)
	d.session = nil
}
