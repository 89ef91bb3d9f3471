package internal

import (
	"fmt"
	"reflect"
)

// Element is a draggable unit owned by the embedding application. The board
// only re-parents it visually and tracks which column it belongs to.
//
// Elements are compared by identity, so implementations must be pointer
// types (or otherwise comparable with ==, with distinct values per element).
// Values that cannot be compared are rejected with ErrIncomparable.
type Element interface {
	// View renders the element at the given width. The number of lines in
	// the result is the element's height.
	View(width int) string
}

// Arrangement maps column index to the ordered elements of that column,
// top to bottom.
type Arrangement [][]Element

// NewArrangement returns count empty columns.
func NewArrangement(count int) Arrangement {
	a := make(Arrangement, count)
	for i := range a {
		a[i] = []Element{}
	}
	return a
}

// Clone copies the column slices. Elements are shared.
func (a Arrangement) Clone() Arrangement {
	out := make(Arrangement, len(a))
	for i, col := range a {
		out[i] = append([]Element{}, col...)
	}
	return out
}

// Len is the number of elements across all columns.
func (a Arrangement) Len() int {
	n := 0
	for _, col := range a {
		n += len(col)
	}
	return n
}

// Locate returns the column and row holding e.
func (a Arrangement) Locate(e Element) (column, row int, ok bool) {
	for c, col := range a {
		for r, el := range col {
			if el == e {
				return c, r, true
			}
		}
	}
	return -1, -1, false
}

// Validate rejects nil elements and elements present more than once.
func (a Arrangement) Validate() error {
	seen := make(map[Element]struct{}, a.Len())
	for c, col := range a {
		for r, el := range col {
			if el == nil {
				return fmt.Errorf("column %d row %d: %w", c, r, ErrNilElement)
			}
			if !isComparable(el) {
				return fmt.Errorf("column %d row %d (%T): %w", c, r, el, ErrIncomparable)
			}
			if _, dup := seen[el]; dup {
				return fmt.Errorf("column %d row %d: %w", c, r, ErrDuplicateElement)
			}
			seen[el] = struct{}{}
		}
	}
	return nil
}

// isComparable reports whether e can be used with == and as a map key
// without panicking.
func isComparable(e Element) bool {
	return reflect.ValueOf(e).Comparable()
}

// arrangementModel is the single source of truth for column membership.
// Owner assignment goes through replace; drag commits go through move.
type arrangementModel struct {
	columns Arrangement
}

func newArrangementModel(count int) *arrangementModel {
	return &arrangementModel{columns: NewArrangement(count)}
}

func (m *arrangementModel) snapshot() Arrangement {
	return m.columns.Clone()
}

func (m *arrangementModel) replace(a Arrangement) error {
	if err := a.Validate(); err != nil {
		return err
	}
	m.columns = a.Clone()
	return nil
}

// move removes e from whichever column holds it and appends it to column to.
// It returns the source column.
func (m *arrangementModel) move(e Element, to int) (int, error) {
	if to < 0 || to >= len(m.columns) {
		return -1, fmt.Errorf("move to column %d of %d: %w", to, len(m.columns), ErrColumnOutOfRange)
	}
	from, row, ok := m.columns.Locate(e)
	if !ok {
		return -1, ErrUnknownElement
	}
	col := m.columns[from]
	m.columns[from] = append(col[:row:row], col[row+1:]...)
	m.columns[to] = append(m.columns[to], e)
	return from, nil
}

// resize sets the number of columns. Elements of dropped columns are appended
// to the new last column so every element keeps exactly one column.
func (m *arrangementModel) resize(count int) {
	switch {
	case count > len(m.columns):
		for len(m.columns) < count {
			m.columns = append(m.columns, []Element{})
		}
	case count < len(m.columns):
		last := m.columns[count-1]
		for _, col := range m.columns[count:] {
			last = append(last, col...)
		}
		m.columns = append(m.columns[:count-1:count-1], last)
	}
}
