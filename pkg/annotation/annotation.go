// Package annotation builds the display guides that accompany an envelope:
// setback lines, footprint outlines and height markers. Primitives are plain
// geometry with a style hint; nothing here depends on a renderer.
//
// Lot coordinates: the lot is centred on the origin, X runs across its width
// and Z along its depth. The front property line is at +Z (the end a front
// setback clears) and the rear property line at -Z.
package annotation

import (
	"github.com/melkuo/bylaw-visualizer/pkg/envelope"
	"github.com/melkuo/bylaw-visualizer/pkg/geo"
	"github.com/melkuo/bylaw-visualizer/pkg/spec"
)

// Shape is the kind of primitive.
type Shape string

const (
	ShapePolyline Shape = "polyline"
	ShapePlane    Shape = "plane"
)

// Color is a named display color.
type Color string

const (
	ColorRed    Color = "red"
	ColorYellow Color = "yellow"
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
)

// Role says what a primitive depicts.
type Role string

const (
	RoleSetbackGuide      Role = "setback_guide"
	RoleOriginalFootprint Role = "original_footprint"
	RoleReducedFootprint  Role = "reduced_footprint"
	RoleMainWallMarker    Role = "main_wall_marker"
	RoleMaxHeightMarker   Role = "max_height_marker"
)

// Heights just above the ground plane so outlines are not z-fighting with it.
const (
	GuideY     = 0.0
	FootprintY = 0.01
)

// Primitive is one annotation. Polylines are ordered point sequences; planes
// are closed outlines to be filled with the given opacity.
type Primitive struct {
	ID      string     `json:"id"`
	Role    Role       `json:"role"`
	Shape   Shape      `json:"shape"`
	Points  []geo.Vec3 `json:"points"`
	Dashed  bool       `json:"dashed"`
	Color   Color      `json:"color"`
	Opacity float64    `json:"opacity"`
	Bylaw   spec.Kind  `json:"bylaw,omitempty"`
}

// Annotate returns the guides for the active bylaws, in a fixed order:
// setback guides (front, rear, side), footprint outlines, height markers.
func Annotate(lot spec.LotConstants, p spec.BylawParameters, active spec.ActiveBylaws, e envelope.Envelope) []Primitive {
	var out []Primitive
	out = append(out, setbackGuides(lot, p.Setbacks, active)...)
	if active.AnySetback() {
		out = append(out, footprintOutlines(lot, e)...)
	}
	if active.HeightRestriction {
		out = append(out, heightMarkers(p.HeightRestriction, e)...)
	}
	return out
}

func setbackGuides(lot spec.LotConstants, s spec.Setbacks, active spec.ActiveBylaws) []Primitive {
	halfW, halfD := lot.Width/2, lot.Depth/2
	var out []Primitive

	if active.FrontSetback {
		z := halfD - s.Front
		out = append(out, guide("setback_front", spec.KindFrontSetback,
			geo.V3(-halfW, GuideY, z), geo.V3(halfW, GuideY, z)))
	}
	if active.RearSetback {
		z := -halfD + s.Rear
		out = append(out, guide("setback_rear", spec.KindRearSetback,
			geo.V3(-halfW, GuideY, z), geo.V3(halfW, GuideY, z)))
	}
	if active.SideSetback {
		x := halfW - s.Side
		out = append(out,
			guide("setback_side_left", spec.KindSideSetback,
				geo.V3(-x, GuideY, -halfD), geo.V3(-x, GuideY, halfD)),
			guide("setback_side_right", spec.KindSideSetback,
				geo.V3(x, GuideY, -halfD), geo.V3(x, GuideY, halfD)),
		)
	}
	return out
}

func guide(id string, k spec.Kind, from, to geo.Vec3) Primitive {
	return Primitive{
		ID:      id,
		Role:    RoleSetbackGuide,
		Shape:   ShapePolyline,
		Points:  []geo.Vec3{from, to},
		Dashed:  true,
		Color:   ColorRed,
		Opacity: 1,
		Bylaw:   k,
	}
}

func footprintOutlines(lot spec.LotConstants, e envelope.Envelope) []Primitive {
	return []Primitive{
		{
			ID:      "footprint_original",
			Role:    RoleOriginalFootprint,
			Shape:   ShapePlane,
			Points:  geo.CenteredRect(lot.Width, lot.Depth).Ring(FootprintY),
			Color:   ColorRed,
			Opacity: 0.1,
		},
		{
			ID:      "footprint_reduced",
			Role:    RoleReducedFootprint,
			Shape:   ShapePolyline,
			Points:  e.Footprint().Ring(GuideY),
			Dashed:  true,
			Color:   ColorYellow,
			Opacity: 1,
		},
	}
}

// heightMarkers stands both markers on the envelope's left edge: main wall
// at the rear corner, maximum height at the front corner.
func heightMarkers(h spec.HeightRestriction, e envelope.Envelope) []Primitive {
	fp := e.Footprint()
	lo, hi := fp.Min(), fp.Max()
	rear := geo.Pt(lo.X, lo.Z)
	front := geo.Pt(lo.X, hi.Z)

	return []Primitive{
		{
			ID:      "height_main_wall",
			Role:    RoleMainWallMarker,
			Shape:   ShapePolyline,
			Points:  []geo.Vec3{rear.At(0), rear.At(h.MainWallHeight)},
			Dashed:  true,
			Color:   ColorBlue,
			Opacity: 1,
			Bylaw:   spec.KindHeightRestriction,
		},
		{
			ID:      "height_max",
			Role:    RoleMaxHeightMarker,
			Shape:   ShapePolyline,
			Points:  []geo.Vec3{front.At(0), front.At(h.MaxHeight)},
			Dashed:  true,
			Color:   ColorGreen,
			Opacity: 1,
			Bylaw:   spec.KindHeightRestriction,
		},
	}
}

// ByRole filters primitives by role.
func ByRole(prims []Primitive, r Role) []Primitive {
	var out []Primitive
	for _, p := range prims {
		if p.Role == r {
			out = append(out, p)
		}
	}
	return out
}
