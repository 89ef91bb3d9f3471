package internal

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

const (
	DefaultColumnCount  = 3
	DefaultSpacing      = 10
	DefaultCornerRadius = 10
	defaultBoardWidth   = 80
)

// Board arranges elements in a fixed number of columns and lets the user drag
// an element from one column to another with the mouse.
//
// Board is not safe for concurrent use; drive it from a single goroutine, as
// bubbletea does. The zero value is not usable, construct boards with
// NewBoard.
type Board struct {
	root     *Node
	layout   *columnLayout
	model    *arrangementModel
	drag     dragController
	observer ChangeObserver
	logger   *log.Logger

	origin Point
	width  int
	height int
	dirty  bool

	// last pointer position in board space while a mouse drag is active
	pointer Point
}

// NewBoard returns a board with DefaultColumnCount empty columns.
func NewBoard() *Board {
	b := &Board{
		root:   NewNode(nil),
		layout: newColumnLayout(DefaultSpacing, DefaultCornerRadius),
		model:  newArrangementModel(DefaultColumnCount),
		logger: log.New(io.Discard),
		width:  defaultBoardWidth,
		dirty:  true,
	}
	b.drag.board = b
	// DefaultColumnCount is positive, configure cannot fail
	_ = b.layout.configure(DefaultColumnCount)
	b.root.AddChild(b.layout.row)
	return b
}

func (b *Board) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	b.logger = l
}

// SetChangeObserver registers the observer for committed moves. nil removes
// it. The board does not own the observer.
func (b *Board) SetChangeObserver(o ChangeObserver) {
	b.observer = o
}

func (b *Board) ColumnCount() int {
	return b.layout.count()
}

// SetColumnCount rebuilds the layout with count columns. Growing adds empty
// columns; shrinking moves the elements of removed columns to the end of the
// new last column. The observer is not called.
func (b *Board) SetColumnCount(count int) error {
	if count <= 0 {
		return fmt.Errorf("set column count %d: %w", count, ErrInvalidColumnCount)
	}
	b.drag.cancel()
	if err := b.layout.configure(count); err != nil {
		return err
	}
	b.model.resize(count)
	b.rehost()
	return nil
}

// Arrangement returns a copy of the current column membership.
func (b *Board) Arrangement() Arrangement {
	return b.model.snapshot()
}

// SetArrangement replaces every column. When the arrangement length differs
// from the column count the layout is rebuilt to match it; an empty
// arrangement clears the board and keeps the count. The observer is not
// called, the caller already knows the state it set.
func (b *Board) SetArrangement(a Arrangement) error {
	if err := a.Validate(); err != nil {
		return fmt.Errorf("set arrangement: %w", err)
	}
	if len(a) == 0 {
		a = NewArrangement(b.layout.count())
	}
	b.drag.cancel()
	if len(a) != b.layout.count() {
		if err := b.layout.configure(len(a)); err != nil {
			return err
		}
	}
	if err := b.model.replace(a); err != nil {
		return err
	}
	b.rehost()
	return nil
}

func (b *Board) Spacing() int {
	return b.layout.spacing
}

// SetSpacing sets the gap between columns and between stacked elements, and
// the inset inside each column.
func (b *Board) SetSpacing(spacing int) error {
	if spacing < 0 {
		return fmt.Errorf("set spacing %d: %w", spacing, ErrInvalidSpacing)
	}
	b.layout.spacing = spacing
	b.dirty = true
	return nil
}

func (b *Board) CornerRadius() int {
	return b.layout.radius
}

// SetCornerRadius controls column box rounding. Terminal cells can only show
// square or rounded corners, so any positive radius renders rounded.
func (b *Board) SetCornerRadius(radius int) error {
	if radius < 0 {
		return fmt.Errorf("set corner radius %d: %w", radius, ErrInvalidCornerRadius)
	}
	b.layout.radius = radius
	return nil
}

// SetOrigin places the board inside the host view. Mouse coordinates are
// translated by it.
func (b *Board) SetOrigin(p Point) {
	b.origin = p
}

// SetSize sets the width the columns share and the minimum column height.
func (b *Board) SetSize(width, height int) {
	b.width = max(0, width)
	b.height = max(0, height)
	b.dirty = true
}

// MoveElement commits e to the end of column, exactly like a drop would, and
// notifies the observer.
func (b *Board) MoveElement(e Element, column int) error {
	if e == nil || !isComparable(e) {
		return ErrUnknownElement
	}
	if column < 0 || column >= b.layout.count() {
		return fmt.Errorf("move to column %d of %d: %w", column, b.layout.count(), ErrColumnOutOfRange)
	}
	if _, _, ok := b.model.columns.Locate(e); !ok {
		return ErrUnknownElement
	}
	if b.drag.active() && b.drag.session.element == e {
		b.drag.cancel()
	}
	return b.commit(e, column)
}

// HandleGesture feeds one pan gesture report to the drag controller.
func (b *Board) HandleGesture(g Gesture) {
	b.ensureLayout()
	b.drag.handle(g)
}

// Dragging reports whether a drag session is active.
func (b *Board) Dragging() bool {
	return b.drag.active()
}

// ElementAt returns the topmost element under p, given in board space.
func (b *Board) ElementAt(p Point) (Element, bool) {
	b.ensureLayout()
	hit := b.root.hitTest(p, func(n *Node) bool {
		_, ok := b.layout.owners[n]
		return ok
	})
	if hit == nil {
		return nil, false
	}
	return b.layout.owners[hit], true
}

// Update translates left-button mouse presses, motion and releases into
// gestures.
func (b *Board) Update(msg tea.Msg) tea.Cmd {
	m, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	p := Point{X: m.X, Y: m.Y}.Sub(b.origin)

	switch m.Action {
	case tea.MouseActionPress:
		if m.Button != tea.MouseButtonLeft || b.drag.active() {
			return nil
		}
		target, ok := b.ElementAt(p)
		if !ok {
			return nil
		}
		b.pointer = p
		b.HandleGesture(Gesture{Phase: GestureBegan, Target: target})

	case tea.MouseActionMotion:
		if !b.drag.active() {
			return nil
		}
		delta := p.Sub(b.pointer)
		b.pointer = p
		b.HandleGesture(Gesture{Phase: GestureChanged, Target: b.drag.session.element, Translation: delta})

	case tea.MouseActionRelease:
		if !b.drag.active() {
			return nil
		}
		delta := p.Sub(b.pointer)
		b.pointer = p
		b.HandleGesture(Gesture{Phase: GestureEnded, Target: b.drag.session.element, Translation: delta})
	}
	return nil
}

func (b *Board) View() string {
	b.ensureLayout()
	frame := b.layout.row.Frame()
	c := newCanvas(b.width, frame.Height)
	b.root.paint(c, Point{})
	return c.String()
}

// commit moves e in the model, re-hosts its node and notifies the observer.
// It never goes through the full rebuild path.
func (b *Board) commit(e Element, column int) error {
	from, err := b.model.move(e, column)
	if err != nil {
		return err
	}
	if err := b.layout.hostElement(e, column); err != nil {
		return err
	}
	b.dirty = true
	b.logger.Info("moved element", "element", e, "from", from, "to", column)
	if b.observer != nil {
		b.observer.ArrangementChanged(b.model.snapshot())
	}
	return nil
}

// rehost rebuilds the visual membership from the model.
func (b *Board) rehost() {
	for i := 0; i < b.layout.count(); i++ {
		b.layout.clearColumn(i)
	}
	for i, col := range b.model.columns {
		for _, e := range col {
			// model and layout always share the column count here
			_ = b.layout.hostElement(e, i)
		}
	}
	b.layout.forget(b.model.columns)
	b.dirty = true
}

func (b *Board) columnBounds() []Rect {
	out := make([]Rect, len(b.layout.columns))
	for i, c := range b.layout.columns {
		out[i] = c.container.ConvertRect(c.container.Bounds(), b.root)
	}
	return out
}

func (b *Board) ensureLayout() {
	if !b.dirty {
		return
	}
	b.layout.layout(b.width, b.height)
	b.dirty = false
	if s := b.drag.session; s != nil {
		s.anchor = s.node.Center()
		s.node.SetCenter(s.anchor.Add(s.translation))
	}
}
