package scene2d

import (
	"fmt"
	"time"

	"github.com/melkuo/bylaw-visualizer/pkg/analytics"
	"github.com/melkuo/bylaw-visualizer/pkg/annotation"
	"github.com/melkuo/bylaw-visualizer/pkg/envelope"
	"github.com/melkuo/bylaw-visualizer/pkg/geo"
	"github.com/melkuo/bylaw-visualizer/pkg/spec"
)

// Assemble2D projects the envelope and its annotations onto the ground plane.
// Guides and footprints come from the same annotation primitives the 3D scene
// uses, so both views always agree.
func Assemble2D(p *spec.Project, active spec.ActiveBylaws) *Plan {
	e := envelope.Compute(p.Lot, p.Parameters, active)
	prims := annotation.Annotate(p.Lot, p.Parameters, active, e)
	summary := analytics.Summarize(p.Lot, p.Parameters, e)

	return &Plan{
		Metadata: Metadata{
			LotWidthM:          p.Lot.Width,
			LotDepthM:          p.Lot.Depth,
			LotAreaM2:          summary.LotAreaM2,
			CoveragePct:        summary.CoveragePct,
			AllowedCoveragePct: summary.AllowedCoveragePct,
			Active:             active,
			GeneratedAt:        time.Now().UTC().Format(time.RFC3339),
		},
		Lot:        assembleLot(p.Lot),
		Setbacks:   assembleSetbacks(p.Parameters.Setbacks, annotation.ByRole(prims, annotation.RoleSetbackGuide)),
		Footprints: assembleFootprints(prims),
		Heights:    assembleHeights(prims),
	}
}

func assembleLot(lot spec.LotConstants) Lot2D {
	r := geo.CenteredRect(lot.Width, lot.Depth)
	lo, hi := r.Min(), r.Max()
	return Lot2D{
		Boundary:  polygonToCoords(r.Polygon()),
		FrontEdge: [2][2]float64{{lo.X, hi.Z}, {hi.X, hi.Z}},
		RearEdge:  [2][2]float64{{lo.X, lo.Z}, {hi.X, lo.Z}},
	}
}

func assembleSetbacks(s spec.Setbacks, guides []annotation.Primitive) []Setback2D {
	result := make([]Setback2D, 0, len(guides))
	for _, g := range guides {
		if len(g.Points) < 2 {
			continue
		}
		offset := s.Side
		switch g.Bylaw {
		case spec.KindFrontSetback:
			offset = s.Front
		case spec.KindRearSetback:
			offset = s.Rear
		}
		start, end := g.Points[0], g.Points[len(g.Points)-1]
		result = append(result, Setback2D{
			ID:      g.ID,
			Bylaw:   g.Bylaw,
			Start:   coord(start),
			End:     coord(end),
			LengthM: start.Ground().Distance(end.Ground()),
			OffsetM: offset,
			Color:   string(g.Color),
		})
	}
	return result
}

func assembleFootprints(prims []annotation.Primitive) []Footprint2D {
	var result []Footprint2D
	for _, a := range prims {
		var typ string
		switch a.Role {
		case annotation.RoleOriginalFootprint:
			typ = "original"
		case annotation.RoleReducedFootprint:
			typ = "reduced"
		default:
			continue
		}
		poly := ringToPolygon(a.Points)
		bounds := poly.Bounds()
		result = append(result, Footprint2D{
			ID:      a.ID,
			Type:    typ,
			Polygon: polygonToCoords(poly),
			WidthM:  bounds.Width,
			DepthM:  bounds.Depth,
			AreaM2:  poly.Area(),
			Color:   string(a.Color),
			Dashed:  a.Dashed,
			Opacity: a.Opacity,
		})
	}
	return result
}

func assembleHeights(prims []annotation.Primitive) []Height2D {
	var result []Height2D
	for _, a := range prims {
		if a.Role != annotation.RoleMainWallMarker && a.Role != annotation.RoleMaxHeightMarker {
			continue
		}
		if len(a.Points) < 2 {
			continue
		}
		base, top := a.Points[0], a.Points[len(a.Points)-1]
		h := top.Y - base.Y
		label := fmt.Sprintf("max %gm", h)
		if a.Role == annotation.RoleMainWallMarker {
			label = fmt.Sprintf("main wall %gm", h)
		}
		result = append(result, Height2D{
			ID:       a.ID,
			Position: coord(base),
			HeightM:  h,
			Label:    label,
			Color:    string(a.Color),
		})
	}
	return result
}

// ringToPolygon drops the closing point of a closed ring.
func ringToPolygon(pts []geo.Vec3) geo.Polygon {
	n := len(pts)
	if n > 1 && pts[0] == pts[n-1] {
		n--
	}
	verts := make([]geo.Point2D, n)
	for i := 0; i < n; i++ {
		verts[i] = pts[i].Ground()
	}
	return geo.NewPolygon(verts...)
}

func coord(v geo.Vec3) [2]float64 {
	return [2]float64{v.X, v.Z}
}

// polygonToCoords converts a geo.Polygon to a [][2]float64 coordinate list.
func polygonToCoords(p geo.Polygon) [][2]float64 {
	coords := make([][2]float64, len(p.Vertices))
	for i, v := range p.Vertices {
		coords[i] = [2]float64{v.X, v.Z}
	}
	return coords
}
