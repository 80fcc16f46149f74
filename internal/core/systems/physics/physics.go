package physics

import "math"

// Vec2 is a point or direction on the ground plane.
type Vec2 struct{ X, Y float64 }

var Zero = Vec2{}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// Cross is the z component of the 3D cross product.
func (v Vec2) Cross(o Vec2) float64 { return v.X*o.Y - v.Y*o.X }

func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

func (v Vec2) Len2() float64 { return v.X*v.X + v.Y*v.Y }

// Normalized returns the unit vector along v. The zero vector stays zero.
func (v Vec2) Normalized() Vec2 {
	l := v.Len()
	if l == 0 || !isFinite(l) {
		return Zero
	}
	return Vec2{v.X / l, v.Y / l}
}

// Left rotates v a quarter turn counter-clockwise.
func (v Vec2) Left() Vec2 { return Vec2{-v.Y, v.X} }

// Right rotates v a quarter turn clockwise.
func (v Vec2) Right() Vec2 { return Vec2{v.Y, -v.X} }

func (v Vec2) IsFinite() bool { return isFinite(v.X) && isFinite(v.Y) }

func (v Vec2) ApproxEqual(o Vec2, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps
}

// Distance2 computes Euclidean distance between two 2D points.
func Distance2(x1, y1, x2, y2 float64) float64 { return math.Hypot(x2-x1, y2-y1) }

// Distance computes the distance between two points.
func Distance(a, b Vec2) float64 { return Distance2(a.X, a.Y, b.X, b.Y) }

func isFinite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
