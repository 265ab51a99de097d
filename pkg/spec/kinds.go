package spec

import (
	"fmt"
	"strings"

	"github.com/go-faster/errors"
)

// Kind identifies one toggleable bylaw.
type Kind string

const (
	KindFrontSetback      Kind = "front_setback"
	KindRearSetback       Kind = "rear_setback"
	KindSideSetback       Kind = "side_setback"
	KindHeightRestriction Kind = "height_restriction"
	KindLotCoverage       Kind = "lot_coverage"
	KindBuildingDepth     Kind = "building_depth"
)

// AllKinds lists every bylaw in control-panel order.
var AllKinds = []Kind{
	KindFrontSetback,
	KindRearSetback,
	KindSideSetback,
	KindHeightRestriction,
	KindLotCoverage,
	KindBuildingDepth,
}

// ErrUnknownKind is returned when a bylaw name does not match any Kind.
var ErrUnknownKind = errors.New("unknown bylaw")

func unknownKind(name string) error {
	return errors.Wrapf(ErrUnknownKind, "%q", name)
}

// Info describes a bylaw for display in a control panel.
type Info struct {
	Kind        Kind   `json:"kind"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// Catalog returns display info for every bylaw, with descriptions filled in
// from the given parameters.
func Catalog(p BylawParameters) []Info {
	return []Info{
		{KindFrontSetback, "Front Setback", fmt.Sprintf("%.1fm minimum from front property line", p.Setbacks.Front)},
		{KindRearSetback, "Rear Setback", fmt.Sprintf("%.1fm minimum from rear property line", p.Setbacks.Rear)},
		{KindSideSetback, "Side Setback", fmt.Sprintf("%.1fm minimum from side property lines", p.Setbacks.Side)},
		{KindHeightRestriction, "Height Restriction", fmt.Sprintf("%gm maximum height, %gm main wall height", p.HeightRestriction.MaxHeight, p.HeightRestriction.MainWallHeight)},
		{KindLotCoverage, "Lot Coverage", fmt.Sprintf("%g%% maximum lot coverage", p.LotCoverage.MaxPercentage)},
		{KindBuildingDepth, "Building Depth", fmt.Sprintf("%gm maximum building depth", p.BuildingDepth.MaxDepth)},
	}
}

// ParseKind resolves a bylaw name. It accepts the canonical snake_case form,
// camelCase ("frontSetback"), kebab-case and the short aliases
// front, rear, side, height, coverage and depth.
func ParseKind(name string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.ReplaceAll(n, "-", "_")
	switch n {
	case "front", "front_setback", "frontsetback":
		return KindFrontSetback, nil
	case "rear", "rear_setback", "rearsetback":
		return KindRearSetback, nil
	case "side", "side_setback", "sidesetback":
		return KindSideSetback, nil
	case "height", "height_restriction", "heightrestriction":
		return KindHeightRestriction, nil
	case "coverage", "lot_coverage", "lotcoverage":
		return KindLotCoverage, nil
	case "depth", "building_depth", "buildingdepth":
		return KindBuildingDepth, nil
	}
	return "", unknownKind(name)
}

// ParseActive builds a selection with the named bylaws switched on.
func ParseActive(names []string) (ActiveBylaws, error) {
	var a ActiveBylaws
	for _, name := range names {
		k, err := ParseKind(name)
		if err != nil {
			return ActiveBylaws{}, err
		}
		a, _ = a.With(k, true)
	}
	return a, nil
}
