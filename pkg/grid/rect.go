package grid

import "fmt"

// Point is a cell coordinate. X grows to the right, Y grows downward.
type Point struct {
	X int `json:"x" bson:"x"`
	Y int `json:"y" bson:"y"`
}

// Rect is a committed block. Ids are assigned by the grid in commit order.
type Rect struct {
	ID int `json:"id" bson:"id"`
	X  int `json:"x" bson:"x"`
	Y  int `json:"y" bson:"y"`
	W  int `json:"width" bson:"width"`
	H  int `json:"height" bson:"height"`
}

// Area returns W*H.
func (r Rect) Area() int { return r.W * r.H }

// Right returns the exclusive right edge.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int { return r.Y + r.H }

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Overlaps reports whether r and o share at least one cell.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Touches reports whether r and o share an edge segment of positive length.
// Rectangles meeting only at a corner do not touch.
func (r Rect) Touches(o Rect) bool {
	if r.Right() == o.X || o.Right() == r.X {
		return r.Y < o.Bottom() && o.Y < r.Bottom()
	}
	if r.Bottom() == o.Y || o.Bottom() == r.Y {
		return r.X < o.Right() && o.X < r.Right()
	}
	return false
}

func (r Rect) String() string {
	return fmt.Sprintf("#%d(%d,%d %dx%d)", r.ID, r.X, r.Y, r.W, r.H)
}
