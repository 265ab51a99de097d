package validation

import (
	"fmt"
	"math"

	"github.com/melkuo/bylaw-visualizer/pkg/spec"
)

// MinRearSetbackRatio is the share of lot depth below which a rear setback is
// flagged. Toronto 569-2013 requires the greater of 7.5m or 25% of lot depth.
const MinRearSetbackRatio = 0.25

// ValidateParameters checks a lot and its bylaw parameters before any
// envelope is computed. Range violations are errors (configuration errors);
// combinations that would leave no buildable width or depth are warnings.
func ValidateParameters(lot spec.LotConstants, p spec.BylawParameters) *Report {
	r := NewReport()

	validateLot(lot, r)
	validateSetbacks(lot, p.Setbacks, r)
	validateHeight(p.HeightRestriction, r)
	validateCoverage(p.LotCoverage, r)
	validateDepth(lot, p.BuildingDepth, r)

	return r
}

// ValidateProject validates a loaded project file.
func ValidateProject(p *spec.Project) *Report {
	if p == nil {
		r := NewReport()
		r.AddError(Result{
			Level:   LevelParameters,
			Message: "project is nil",
		})
		return r
	}
	return ValidateParameters(p.Lot, p.Parameters)
}

// requireFinite adds an error for NaN or infinite values and reports whether
// v is usable for the range checks that follow. Range checks are written as
// negated bounds, which NaN would pass silently.
func requireFinite(path string, v float64, r *Report) bool {
	if !math.IsNaN(v) && !math.IsInf(v, 0) {
		return true
	}
	r.AddError(Result{
		Level:       LevelParameters,
		Message:     fmt.Sprintf("%s must be a finite number", path),
		SpecPath:    path,
		ActualValue: fmt.Sprint(v),
		Expected:    "finite number",
	})
	return false
}

func validateLot(lot spec.LotConstants, r *Report) {
	dims := []struct {
		name string
		v    float64
	}{
		{"width", lot.Width},
		{"depth", lot.Depth},
	}
	for _, d := range dims {
		if !requireFinite("lot."+d.name, d.v, r) {
			continue
		}
		if d.v <= 0 {
			r.AddError(Result{
				Level:       LevelParameters,
				Message:     fmt.Sprintf("lot %s must be greater than 0", d.name),
				SpecPath:    "lot." + d.name,
				ActualValue: d.v,
				Expected:    "> 0",
			})
		}
	}
}

func validateSetbacks(lot spec.LotConstants, s spec.Setbacks, r *Report) {
	values := []struct {
		name string
		v    float64
	}{
		{"front", s.Front},
		{"rear", s.Rear},
		{"side", s.Side},
	}
	for _, sv := range values {
		if !requireFinite("parameters.setbacks."+sv.name, sv.v, r) {
			continue
		}
		if sv.v < 0 {
			r.AddError(Result{
				Level:       LevelParameters,
				Message:     fmt.Sprintf("%s setback must be non-negative", sv.name),
				SpecPath:    "parameters.setbacks." + sv.name,
				ActualValue: sv.v,
				Expected:    ">= 0",
			})
		}
	}

	if lot.Depth > 0 && s.Front+s.Rear >= lot.Depth {
		r.AddWarning(Result{
			Level:        LevelParameters,
			Message:      fmt.Sprintf("front and rear setbacks (%.2fm) leave no buildable depth on a %.2fm lot", s.Front+s.Rear, lot.Depth),
			SpecPath:     "parameters.setbacks.rear",
			ActualValue:  s.Rear,
			Expected:     fmt.Sprintf("< %.2f", lot.Depth-s.Front),
			ConflictWith: "lot.depth",
		})
	}
	if lot.Width > 0 && 2*s.Side >= lot.Width {
		r.AddWarning(Result{
			Level:        LevelParameters,
			Message:      fmt.Sprintf("side setbacks (2 x %.2fm) leave no buildable width on a %.2fm lot", s.Side, lot.Width),
			SpecPath:     "parameters.setbacks.side",
			ActualValue:  s.Side,
			Expected:     fmt.Sprintf("< %.2f", lot.Width/2),
			ConflictWith: "lot.width",
		})
	}
	if lot.Depth > 0 && s.Rear >= 0 && s.Rear < lot.Depth*MinRearSetbackRatio {
		r.AddInfo(Result{
			Level:       LevelParameters,
			Message:     fmt.Sprintf("rear setback %.2fm is less than %.0f%% of lot depth (%.2fm)", s.Rear, MinRearSetbackRatio*100, lot.Depth*MinRearSetbackRatio),
			SpecPath:    "parameters.setbacks.rear",
			ActualValue: s.Rear,
		})
	}
}

func validateHeight(h spec.HeightRestriction, r *Report) {
	maxOK := requireFinite("parameters.height_restriction.max_height", h.MaxHeight, r)
	wallOK := requireFinite("parameters.height_restriction.main_wall_height", h.MainWallHeight, r)
	if !maxOK || !wallOK {
		return
	}
	if h.MaxHeight < 0 {
		r.AddError(Result{
			Level:       LevelParameters,
			Message:     "max_height must be non-negative",
			SpecPath:    "parameters.height_restriction.max_height",
			ActualValue: h.MaxHeight,
			Expected:    ">= 0",
		})
	}
	if h.MainWallHeight < 0 {
		r.AddError(Result{
			Level:       LevelParameters,
			Message:     "main_wall_height must be non-negative",
			SpecPath:    "parameters.height_restriction.main_wall_height",
			ActualValue: h.MainWallHeight,
			Expected:    ">= 0",
		})
	}
	if h.MaxHeight < h.MainWallHeight {
		r.AddError(Result{
			Level:        LevelParameters,
			Message:      fmt.Sprintf("max_height (%.2fm) must not be lower than main_wall_height (%.2fm)", h.MaxHeight, h.MainWallHeight),
			SpecPath:     "parameters.height_restriction.max_height",
			ActualValue:  h.MaxHeight,
			Expected:     fmt.Sprintf(">= %.2f", h.MainWallHeight),
			ConflictWith: "parameters.height_restriction.main_wall_height",
			Suggestions:  []string{"Raise max_height or lower main_wall_height"},
		})
	}
}

func validateCoverage(c spec.LotCoverage, r *Report) {
	if !requireFinite("parameters.lot_coverage.max_percentage", c.MaxPercentage, r) {
		return
	}
	if c.MaxPercentage < 0 || c.MaxPercentage > 100 {
		r.AddError(Result{
			Level:       LevelParameters,
			Message:     fmt.Sprintf("max_percentage %.2f is outside valid range (0-100)", c.MaxPercentage),
			SpecPath:    "parameters.lot_coverage.max_percentage",
			ActualValue: c.MaxPercentage,
			Expected:    "0-100",
		})
	}
}

func validateDepth(lot spec.LotConstants, d spec.BuildingDepth, r *Report) {
	if !requireFinite("parameters.building_depth.max_depth", d.MaxDepth, r) {
		return
	}
	if d.MaxDepth <= 0 {
		r.AddError(Result{
			Level:       LevelParameters,
			Message:     "max_depth must be greater than 0",
			SpecPath:    "parameters.building_depth.max_depth",
			ActualValue: d.MaxDepth,
			Expected:    "> 0",
		})
		return
	}
	if lot.Depth > 0 && d.MaxDepth > lot.Depth {
		r.AddInfo(Result{
			Level:       LevelParameters,
			Message:     fmt.Sprintf("max_depth %.2fm exceeds lot depth %.2fm and never constrains the envelope", d.MaxDepth, lot.Depth),
			SpecPath:    "parameters.building_depth.max_depth",
			ActualValue: d.MaxDepth,
		})
	}
}
