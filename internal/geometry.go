package internal

// Point is a cell position. X grows to the right, Y grows downwards.
type Point struct {
	X int
	Y int
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

// Rect is a rectangular cell region. The right and bottom edges are exclusive.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Center rounds towards the origin for even sizes.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

func (r Rect) Offset(d Point) Rect {
	r.X += d.X
	r.Y += d.Y
	return r
}

func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

func (r Rect) Contains(p Point) bool {
	if r.Empty() {
		return false
	}
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// HitTest returns the index of the first column whose bounds contain the
// center of element. All rectangles must be in the same coordinate space.
// Overlapping columns resolve to the lowest index.
func HitTest(element Rect, columns []Rect) (int, bool) {
	center := element.Center()
	for i, bounds := range columns {
		if bounds.Contains(center) {
			return i, true
		}
	}
	return -1, false
}
