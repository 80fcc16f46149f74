package physics

import "math"

// Ray is a half line starting at Origin. Direction is expected to be a unit vector.
type Ray struct {
	Origin    Vec2
	Direction Vec2
}

// IntersectOptions tunes the epsilon gated branches of IntersectSegment.
type IntersectOptions struct {
	// Epsilon is the minimum ray parameter counted as ahead of the origin.
	Epsilon float64
	// ParallelEpsilon bounds |sin| between ray and segment below which they are parallel.
	ParallelEpsilon float64
	// CollinearTolerance is the perpendicular distance under which a parallel
	// segment counts as lying on the ray.
	CollinearTolerance float64
}

func DefaultIntersectOptions() IntersectOptions {
	return IntersectOptions{
		Epsilon:            1e-3,
		ParallelEpsilon:    1e-9,
		CollinearTolerance: 0.05,
	}
}

// IntersectSegment solves the ray against segment a-b. It returns the ray
// parameter of the hit and whether one exists ahead of the origin. A parallel
// segment lying on the ray reports its nearest endpoint ahead.
func IntersectSegment(r Ray, a, b Vec2, opts IntersectOptions) (float64, bool) {
	if !r.Origin.IsFinite() || !r.Direction.IsFinite() || !a.IsFinite() || !b.IsFinite() {
		return 0, false
	}
	seg := b.Sub(a)
	segLen := seg.Len()
	toStart := a.Sub(r.Origin)

	if segLen == 0 {
		// point segment: hit only if it lies on the ray
		t := toStart.Dot(r.Direction)
		if t > opts.Epsilon && math.Abs(toStart.Cross(r.Direction)) < opts.CollinearTolerance {
			return t, true
		}
		return 0, false
	}

	cross := r.Direction.Cross(seg)
	if math.Abs(cross)/segLen < opts.ParallelEpsilon {
		if math.Abs(toStart.Cross(r.Direction)) >= opts.CollinearTolerance {
			return 0, false
		}
		ta := toStart.Dot(r.Direction)
		tb := b.Sub(r.Origin).Dot(r.Direction)
		t := math.Inf(1)
		if ta > opts.Epsilon {
			t = ta
		}
		if tb > opts.Epsilon && tb < t {
			t = tb
		}
		if math.IsInf(t, 1) {
			return 0, false
		}
		return t, true
	}

	t := toStart.Cross(seg) / cross
	u := toStart.Cross(r.Direction) / cross
	if !isFinite(t) || !isFinite(u) {
		return 0, false
	}
	if t <= opts.Epsilon || u < 0 || u > 1 {
		return 0, false
	}
	return t, true
}

// DistanceToSegment is the shortest distance from p to segment a-b.
func DistanceToSegment(p, a, b Vec2) float64 {
	seg := b.Sub(a)
	l2 := seg.Len2()
	if l2 == 0 {
		return Distance(p, a)
	}
	u := p.Sub(a).Dot(seg) / l2
	u = math.Max(0, math.Min(1, u))
	return Distance(p, a.Add(seg.Scale(u)))
}

// ExitDistance is how far a ray starting inside the box |x|<=halfW, |y|<=halfH
// travels before leaving it. Rays starting outside report 0.
func ExitDistance(r Ray, halfW, halfH float64) float64 {
	if math.Abs(r.Origin.X) > halfW || math.Abs(r.Origin.Y) > halfH {
		return 0
	}
	t := math.Inf(1)
	if r.Direction.X > 0 {
		t = math.Min(t, (halfW-r.Origin.X)/r.Direction.X)
	} else if r.Direction.X < 0 {
		t = math.Min(t, (-halfW-r.Origin.X)/r.Direction.X)
	}
	if r.Direction.Y > 0 {
		t = math.Min(t, (halfH-r.Origin.Y)/r.Direction.Y)
	} else if r.Direction.Y < 0 {
		t = math.Min(t, (-halfH-r.Origin.Y)/r.Direction.Y)
	}
	return t
}

// ClampToBox clamps p into the box and reports how far outside it was.
func ClampToBox(p Vec2, halfW, halfH float64) (Vec2, float64) {
	c := Vec2{
		X: math.Max(-halfW, math.Min(halfW, p.X)),
		Y: math.Max(-halfH, math.Min(halfH, p.Y)),
	}
	return c, Distance(p, c)
}
