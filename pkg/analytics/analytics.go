package analytics

import (
	"math"

	"github.com/melkuo/bylaw-visualizer/pkg/envelope"
	"github.com/melkuo/bylaw-visualizer/pkg/geo"
	"github.com/melkuo/bylaw-visualizer/pkg/spec"
	"github.com/melkuo/bylaw-visualizer/pkg/validation"
)

// FloorHeight is the storey height used to estimate floor counts, in meters.
const FloorHeight = 3.0

// Summary holds the figures derived from one envelope.
//
// FootprintInLotM2 is the part of the footprint that lies inside the lot. It
// only falls short of FootprintAreaM2 when unvalidated parameters, such as a
// negative setback, push the envelope past a property line.
type Summary struct {
	LotAreaM2          float64 `json:"lot_area_m2"`
	FootprintAreaM2    float64 `json:"footprint_area_m2"`
	FootprintInLotM2   float64 `json:"footprint_in_lot_m2"`
	CoveragePct        float64 `json:"coverage_pct"`
	AllowedCoveragePct float64 `json:"allowed_coverage_pct"`
	VolumeM3           float64 `json:"volume_m3"`
	Stories            int     `json:"stories"`
	GrossFloorAreaM2   float64 `json:"gross_floor_area_m2"`
	FloorSpaceIndex    float64 `json:"floor_space_index"`
	Degenerate         bool    `json:"degenerate"`
}

// Summarize computes footprint, coverage, volume and floor-area figures for
// an envelope. Degenerate envelopes report their signed footprint area and no
// storeys.
func Summarize(lot spec.LotConstants, p spec.BylawParameters, e envelope.Envelope) *Summary {
	s := &Summary{
		LotAreaM2:          lot.Area(),
		FootprintAreaM2:    e.Width * e.Depth,
		AllowedCoveragePct: p.LotCoverage.MaxPercentage,
		Degenerate:         e.IsDegenerate(),
	}

	if !s.Degenerate {
		lotRect := geo.CenteredRect(lot.Width, lot.Depth)
		s.FootprintInLotM2 = geo.IntersectRects(e.Footprint(), lotRect).Area()
		s.VolumeM3 = s.FootprintAreaM2 * e.Height
		s.Stories = storiesFor(e.MainWallHeight)
		s.GrossFloorAreaM2 = s.FootprintAreaM2 * float64(s.Stories)
	}
	if s.LotAreaM2 > 0 {
		s.CoveragePct = s.FootprintAreaM2 / s.LotAreaM2 * 100
		s.FloorSpaceIndex = s.GrossFloorAreaM2 / s.LotAreaM2
	}

	return s
}

// storiesFor counts full storeys under the main wall.
func storiesFor(mainWallHeight float64) int {
	if mainWallHeight <= 0 {
		return 0
	}
	// Guard against 6.9999... from accumulated arithmetic.
	return int(math.Floor(mainWallHeight/FloorHeight + 1e-9))
}

// Resolve computes the envelope, its summary, and a report merging parameter
// validation, geometry checks and coverage findings.
func Resolve(lot spec.LotConstants, p spec.BylawParameters, active spec.ActiveBylaws) (envelope.Envelope, *Summary, *validation.Report) {
	report := validation.ValidateParameters(lot, p)

	e := envelope.Compute(lot, p, active)
	report.Merge(envelope.CheckGeometry(e))

	s := Summarize(lot, p, e)
	validateCoverage(active, s, report)

	return e, s, report
}
