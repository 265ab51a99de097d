// Package envelope derives the buildable envelope of a lot from the active
// zoning bylaws.
//
// Compute is a pure function: the same lot, parameters and selection always
// produce the same Envelope, and nothing is retained between calls. Bylaws
// are applied in a fixed order (front setback, rear setback, side setback,
// lot coverage, building depth, height restriction). Results are not clamped:
// parameters that over-constrain the lot yield negative extents, which
// CheckGeometry reports.
package envelope

import (
	"math"

	"github.com/melkuo/bylaw-visualizer/pkg/geo"
	"github.com/melkuo/bylaw-visualizer/pkg/spec"
)

const (
	// BaselineHeight is the unconstrained demonstration height, taller than
	// the default 10m limit so the height bylaw has a visible effect.
	BaselineHeight = 18.0
	// BaselineMainWallHeight is the unconstrained main wall height.
	BaselineMainWallHeight = 12.0

	// Minimum gap kept between the baseline and a configured limit when the
	// configured limit is at or above the baseline constant.
	baselineHeightMargin   = BaselineHeight - 10.0
	baselineMainWallMargin = BaselineMainWallHeight - 7.0

	// ReferenceBuildingDepth is the nominal depth the coverage bylaw divides
	// the allowed footprint area by. It is fixed and does not follow the
	// depth left after setbacks.
	ReferenceBuildingDepth = 17.0
)

// Position is the envelope center's offset from the lot center.
type Position struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// Envelope is the derived building volume.
type Envelope struct {
	Width          float64  `json:"width"`
	Depth          float64  `json:"depth"`
	Height         float64  `json:"height"`
	MainWallHeight float64  `json:"main_wall_height"`
	Position       Position `json:"position"`
}

// Baseline returns the unconstrained envelope: the full lot footprint with
// heights above both configured limits.
func Baseline(lot spec.LotConstants, p spec.BylawParameters) Envelope {
	return Envelope{
		Width:          lot.Width,
		Depth:          lot.Depth,
		Height:         baselineAbove(BaselineHeight, p.HeightRestriction.MaxHeight, baselineHeightMargin),
		MainWallHeight: baselineAbove(BaselineMainWallHeight, p.HeightRestriction.MainWallHeight, baselineMainWallMargin),
	}
}

func baselineAbove(base, limit, margin float64) float64 {
	if limit < base {
		return base
	}
	return limit + margin
}

// MaxCoverageWidth is the widest footprint the lot coverage bylaw allows.
func MaxCoverageWidth(lot spec.LotConstants, p spec.BylawParameters) float64 {
	return lot.Area() * p.LotCoverage.MaxPercentage / 100 / ReferenceBuildingDepth
}

// Compute applies the active bylaws to the baseline envelope.
func Compute(lot spec.LotConstants, p spec.BylawParameters, active spec.ActiveBylaws) Envelope {
	e := Baseline(lot, p)

	if active.FrontSetback {
		e.Depth -= p.Setbacks.Front
		e.Position.Z -= p.Setbacks.Front / 2
	}
	if active.RearSetback {
		e.Depth -= p.Setbacks.Rear
		e.Position.Z += p.Setbacks.Rear / 2
	}
	if active.SideSetback {
		e.Width -= 2 * p.Setbacks.Side
	}

	// Coverage only narrows the footprint.
	if active.LotCoverage {
		e.Width = math.Min(e.Width, MaxCoverageWidth(lot, p))
	}
	if active.BuildingDepth {
		e.Depth = math.Min(e.Depth, p.BuildingDepth.MaxDepth)
	}

	if active.HeightRestriction {
		e.Height = p.HeightRestriction.MaxHeight
		e.MainWallHeight = p.HeightRestriction.MainWallHeight
	}

	return e
}

// Footprint returns the envelope's ground-plane rectangle in lot coordinates.
func (e Envelope) Footprint() geo.Rect {
	return geo.Rect{
		Center: geo.Pt(e.Position.X, e.Position.Z),
		Width:  e.Width,
		Depth:  e.Depth,
	}
}

// Center returns the 3D center of the envelope box (Y at half height).
func (e Envelope) Center() geo.Vec3 {
	return geo.V3(e.Position.X, e.Height/2, e.Position.Z)
}

// IsDegenerate reports whether width or depth is zero or negative.
func (e Envelope) IsDegenerate() bool {
	return e.Width <= 0 || e.Depth <= 0
}
