package analytics

import (
	"github.com/melkuo/bylaw-visualizer/pkg/envelope"
	"github.com/melkuo/bylaw-visualizer/pkg/spec"
)

// Impact describes what one bylaw does to the envelope.
//
// Isolated deltas compare the baseline with only this bylaw switched on.
// Marginal deltas compare the current selection with and without this bylaw,
// so a bylaw that another bylaw already dominates shows zero marginal effect.
type Impact struct {
	Kind   spec.Kind `json:"kind"`
	Label  string    `json:"label"`
	Active bool      `json:"active"`

	IsolatedWidth  float64 `json:"isolated_width_delta"`
	IsolatedDepth  float64 `json:"isolated_depth_delta"`
	IsolatedHeight float64 `json:"isolated_height_delta"`
	IsolatedArea   float64 `json:"isolated_footprint_delta_m2"`

	MarginalWidth  float64 `json:"marginal_width_delta"`
	MarginalDepth  float64 `json:"marginal_depth_delta"`
	MarginalHeight float64 `json:"marginal_height_delta"`
	MarginalArea   float64 `json:"marginal_footprint_delta_m2"`

	// Binding is true when removing this bylaw from the current selection
	// would change the envelope.
	Binding bool `json:"binding"`
}

// Impacts evaluates every bylaw against the current selection, in catalog
// order. Deltas are negative when a bylaw shrinks the envelope.
func Impacts(lot spec.LotConstants, p spec.BylawParameters, active spec.ActiveBylaws) []Impact {
	baseline := envelope.Compute(lot, p, spec.ActiveBylaws{})
	current := envelope.Compute(lot, p, active)
	catalog := spec.Catalog(p)

	out := make([]Impact, 0, len(catalog))
	for _, info := range catalog {
		only, _ := spec.ActiveBylaws{}.With(info.Kind, true)
		isolated := envelope.Compute(lot, p, only)

		on, _ := active.Enabled(info.Kind)
		with, _ := active.With(info.Kind, true)
		without, _ := active.With(info.Kind, false)
		eWith := current
		if !on {
			eWith = envelope.Compute(lot, p, with)
		}
		eWithout := envelope.Compute(lot, p, without)

		out = append(out, Impact{
			Kind:   info.Kind,
			Label:  info.Label,
			Active: on,

			IsolatedWidth:  isolated.Width - baseline.Width,
			IsolatedDepth:  isolated.Depth - baseline.Depth,
			IsolatedHeight: isolated.Height - baseline.Height,
			IsolatedArea:   footprintArea(isolated) - footprintArea(baseline),

			MarginalWidth:  eWith.Width - eWithout.Width,
			MarginalDepth:  eWith.Depth - eWithout.Depth,
			MarginalHeight: eWith.Height - eWithout.Height,
			MarginalArea:   footprintArea(eWith) - footprintArea(eWithout),

			Binding: on && eWith != eWithout,
		})
	}
	return out
}

func footprintArea(e envelope.Envelope) float64 {
	return e.Width * e.Depth
}
