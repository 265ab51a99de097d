package geo

import "math"

// Polygon is a closed outline on the ground plane, vertices in order.
type Polygon struct {
	Vertices []Point2D
}

// NewPolygon creates a polygon from a list of vertices.
func NewPolygon(pts ...Point2D) Polygon {
	return Polygon{Vertices: pts}
}

// IsEmpty returns true if the polygon has fewer than 3 vertices.
func (p Polygon) IsEmpty() bool {
	return len(p.Vertices) < 3
}

// SignedArea returns the shoelace area: positive for counterclockwise
// winding, negative for clockwise.
func (p Polygon) SignedArea() float64 {
	n := len(p.Vertices)
	if n < 3 {
		return 0
	}
	area := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += p.Vertices[i].X*p.Vertices[j].Z - p.Vertices[j].X*p.Vertices[i].Z
	}
	return area / 2
}

// Area returns the unsigned area.
func (p Polygon) Area() float64 {
	return math.Abs(p.SignedArea())
}

// IsCounterClockwise reports whether the winding is counterclockwise.
func (p Polygon) IsCounterClockwise() bool {
	return p.SignedArea() > 0
}

// EnsureCCW returns the polygon wound counterclockwise.
func (p Polygon) EnsureCCW() Polygon {
	if p.SignedArea() >= 0 {
		return p
	}
	n := len(p.Vertices)
	rev := make([]Point2D, n)
	for i, v := range p.Vertices {
		rev[n-1-i] = v
	}
	return Polygon{Vertices: rev}
}

// Bounds returns the axis-aligned extent as a Rect.
func (p Polygon) Bounds() Rect {
	if len(p.Vertices) == 0 {
		return Rect{}
	}
	lo, hi := p.Vertices[0], p.Vertices[0]
	for _, v := range p.Vertices[1:] {
		lo = Pt(math.Min(lo.X, v.X), math.Min(lo.Z, v.Z))
		hi = Pt(math.Max(hi.X, v.X), math.Max(hi.Z, v.Z))
	}
	return Rect{
		Center: MidPoint(lo, hi),
		Width:  hi.X - lo.X,
		Depth:  hi.Z - lo.Z,
	}
}
