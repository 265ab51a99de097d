package envelope

import (
	"fmt"

	"github.com/go-faster/errors"

	"github.com/melkuo/bylaw-visualizer/pkg/spec"
	"github.com/melkuo/bylaw-visualizer/pkg/validation"
)

// CheckGeometry reports zero or negative envelope extents as warnings. The
// envelope itself is left as computed.
func CheckGeometry(e Envelope) *validation.Report {
	r := validation.NewReport()

	dims := []struct {
		name string
		v    float64
	}{
		{"width", e.Width},
		{"depth", e.Depth},
		{"height", e.Height},
		{"main_wall_height", e.MainWallHeight},
	}
	for _, d := range dims {
		if d.v > 0 {
			continue
		}
		r.AddWarning(validation.Result{
			Level:       validation.LevelGeometry,
			Message:     fmt.Sprintf("envelope %s is %.2fm; active bylaws leave nothing buildable", d.name, d.v),
			SpecPath:    "envelope." + d.name,
			ActualValue: d.v,
			Expected:    "> 0",
			Suggestions: suggestionsFor(d.name),
		})
	}

	return r
}

func suggestionsFor(dim string) []string {
	switch dim {
	case "width":
		return []string{"Reduce the side setback below half the lot width"}
	case "depth":
		return []string{"Reduce the front or rear setback", "Check building_depth.max_depth is positive"}
	default:
		return nil
	}
}

// ComputeChecked is Compute followed by a degenerate-geometry check. The
// envelope is always returned unmodified; the error wraps
// validation.ErrDegenerateGeometry when width or depth is not positive.
func ComputeChecked(lot spec.LotConstants, p spec.BylawParameters, active spec.ActiveBylaws) (Envelope, error) {
	e := Compute(lot, p, active)
	if e.IsDegenerate() {
		return e, errors.Wrapf(validation.ErrDegenerateGeometry,
			"width %.2fm, depth %.2fm", e.Width, e.Depth)
	}
	return e, nil
}
