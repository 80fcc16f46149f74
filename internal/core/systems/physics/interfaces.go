package physics

// Body is anything with a ground plane position and a facing. Cycles implement
// it and sensors cast from it.
type Body interface {
	Position() Vec2
	Heading() Vec2
}
