package geo

// Rect is an axis-aligned rectangle on the ground plane, described by its
// center and extents. Width runs along X, Depth along Z. Negative extents are
// kept as given so callers can see them.
type Rect struct {
	Center Point2D `json:"center"`
	Width  float64 `json:"width"`
	Depth  float64 `json:"depth"`
}

// CenteredRect returns a rectangle centred on the origin.
func CenteredRect(width, depth float64) Rect {
	return Rect{Width: width, Depth: depth}
}

// Min returns the corner with the lowest X and Z for positive extents.
func (r Rect) Min() Point2D {
	return Point2D{r.Center.X - r.Width/2, r.Center.Z - r.Depth/2}
}

// Max returns the corner with the highest X and Z for positive extents.
func (r Rect) Max() Point2D {
	return Point2D{r.Center.X + r.Width/2, r.Center.Z + r.Depth/2}
}

// Area returns Width * Depth. It is negative when exactly one extent is.
func (r Rect) Area() float64 {
	return r.Width * r.Depth
}

// IsDegenerate reports whether either extent is zero or negative.
func (r Rect) IsDegenerate() bool {
	return r.Width <= 0 || r.Depth <= 0
}

// Corners returns the four corners starting at Min, counterclockwise
// when viewed with X right and Z up.
func (r Rect) Corners() [4]Point2D {
	lo, hi := r.Min(), r.Max()
	return [4]Point2D{
		{lo.X, lo.Z},
		{hi.X, lo.Z},
		{hi.X, hi.Z},
		{lo.X, hi.Z},
	}
}

// Polygon returns the rectangle as a polygon.
func (r Rect) Polygon() Polygon {
	c := r.Corners()
	return NewPolygon(c[0], c[1], c[2], c[3])
}

// Ring returns the closed outline (first corner repeated at the end) lifted
// to height y.
func (r Rect) Ring(y float64) []Vec3 {
	c := r.Corners()
	return []Vec3{c[0].At(y), c[1].At(y), c[2].At(y), c[3].At(y), c[0].At(y)}
}
