package strum

// Rect is an axis-aligned rectangle used for hit testing. Width and Height are
// never negative; use NewRect to construct one from arbitrary corners.
type Rect struct {
	X, Y          float32
	Width, Height float32
}

// NewRect returns a rectangle with origin (x, y) and the given size. A negative
// size is folded back so that the rectangle covers the same area with a
// non-negative Width and Height.
func NewRect(x, y, width, height float32) Rect {
	if width < 0 {
		x, width = x+width, -width
	}
	if height < 0 {
		y, height = y+height, -height
	}
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Contains reports whether the point lies inside the closed rectangle.
func (r Rect) Contains(px, py float32) bool {
	return px >= r.X && px <= r.X+r.Width && py >= r.Y && py <= r.Y+r.Height
}

func (r Rect) Center() (float32, float32) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

func (r Rect) Max() (float32, float32) {
	return r.X + r.Width, r.Y + r.Height
}
