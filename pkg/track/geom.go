package track

// Vec2 is a point or extent in the ground plane: X is lateral, Z is forward.
type Vec2 struct {
	X float64 `json:"x" toml:"x"`
	Z float64 `json:"z" toml:"z"`
}

// Vec3 is a world position. Y is the placement height above the track.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}
