package buildlog

// ScrollOffset returns the index of the first rendered row for a cursor at
// index cursor in a visible list of n rows shown in height rows. The cursor
// is centred when possible; near either end the window is pinned so no
// blank rows appear.
func ScrollOffset(cursor, n, height int) int {
	if height <= 0 || n <= 0 || cursor < 0 {
		return 0
	}
	half := height / 2
	switch {
	case cursor < half:
		return 0
	case cursor >= n-half:
		return max(0, n-height)
	default:
		return cursor - half
	}
}

// Window is the slice of the visible list being drawn.
type Window struct {
	Offset int
	Height int
}

// NewWindow derives the window for the given cursor, list length and height.
func NewWindow(cursor, n, height int) Window {
	return Window{Offset: ScrollOffset(cursor, n, height), Height: max(0, height)}
}

// Bounds returns the half-open index range of rows to draw from a list of n.
func (w Window) Bounds(n int) (start, end int) {
	start = min(w.Offset, n)
	end = min(start+w.Height, n)
	return start, end
}

// Contains reports whether index i is drawn.
func (w Window) Contains(i int) bool {
	return i >= w.Offset && i < w.Offset+w.Height
}
