package physics

import "math"

const DefaultWindings = 4

// Axis is the fixed set of headings a cycle may face. Winding 0 faces +x and
// windings advance counter-clockwise.
type Axis struct {
	dirs []Vec2
}

// NewAxis builds an axis of n evenly spaced directions. Values below 2 fall
// back to the 4-way grid.
func NewAxis(n int) Axis {
	if n < 2 {
		n = DefaultWindings
	}
	dirs := make([]Vec2, n)
	for i := range dirs {
		a := 2 * math.Pi * float64(i) / float64(n)
		dirs[i] = Vec2{X: snap(math.Cos(a)), Y: snap(math.Sin(a))}
	}
	return Axis{dirs: dirs}
}

func (a Axis) Count() int { return len(a.dirs) }

func (a Axis) Direction(winding int) Vec2 {
	return a.dirs[a.wrap(winding)]
}

// Winding returns the index of the axis direction closest to dir.
func (a Axis) Winding(dir Vec2) int {
	best, bestDot := 0, math.Inf(-1)
	for i, d := range a.dirs {
		if dot := d.Dot(dir); dot > bestDot {
			best, bestDot = i, dot
		}
	}
	return best
}

// Turn moves one step along the axis. Positive dir is counter-clockwise (left).
func (a Axis) Turn(winding, dir int) int {
	switch {
	case dir > 0:
		return a.wrap(winding + 1)
	case dir < 0:
		return a.wrap(winding - 1)
	default:
		return a.wrap(winding)
	}
}

func (a Axis) wrap(w int) int {
	n := len(a.dirs)
	w %= n
	if w < 0 {
		w += n
	}
	return w
}

// snap removes the float noise of cos/sin around the cardinal values.
func snap(f float64) float64 {
	for _, c := range [...]float64{-1, 0, 1} {
		if math.Abs(f-c) < 1e-12 {
			return c
		}
	}
	return f
}
