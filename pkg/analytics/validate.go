package analytics

import (
	"fmt"

	"github.com/melkuo/bylaw-visualizer/pkg/envelope"
	"github.com/melkuo/bylaw-visualizer/pkg/spec"
	"github.com/melkuo/bylaw-visualizer/pkg/validation"
)

// validateCoverage flags footprints that cover more of the lot than the
// coverage bylaw allows. The coverage width is derived from a fixed reference
// depth, so a deeper envelope can exceed the percentage while the bylaw is on.
func validateCoverage(active spec.ActiveBylaws, s *Summary, r *validation.Report) {
	if !active.LotCoverage || s.Degenerate {
		return
	}
	const epsilon = 1e-6
	if s.CoveragePct <= s.AllowedCoveragePct+epsilon {
		return
	}
	r.AddInfo(validation.Result{
		Level:       validation.LevelGeometry,
		Message:     fmt.Sprintf("footprint covers %.1f%% of the lot, above the %.0f%% coverage limit; coverage width assumes a %.0fm building depth", s.CoveragePct, s.AllowedCoveragePct, envelope.ReferenceBuildingDepth),
		SpecPath:    "parameters.lot_coverage.max_percentage",
		ActualValue: s.CoveragePct,
		Expected:    fmt.Sprintf("<= %.0f", s.AllowedCoveragePct),
		Suggestions: []string{"Enable the building depth bylaw to bring depth to the reference depth"},
	})
}
