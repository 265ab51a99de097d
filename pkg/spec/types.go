package spec

// Project is the top-level bylaw project file: one lot, the bylaw parameters
// that apply to it, and the initial bylaw selection.
type Project struct {
	SpecVersion string          `yaml:"spec_version" toml:"spec_version" json:"spec_version"`
	Name        string          `yaml:"name" toml:"name" json:"name"`
	Lot         LotConstants    `yaml:"lot" toml:"lot" json:"lot"`
	Parameters  BylawParameters `yaml:"parameters" toml:"parameters" json:"parameters"`
	Active      ActiveBylaws    `yaml:"active" toml:"active" json:"active"`
}

// LotConstants are the fixed plan dimensions of the lot in meters.
type LotConstants struct {
	Width float64 `yaml:"width" toml:"width" json:"width"`
	Depth float64 `yaml:"depth" toml:"depth" json:"depth"`
}

// Area returns the lot area in square meters.
func (l LotConstants) Area() float64 {
	return l.Width * l.Depth
}

// BylawParameters holds the numeric values of every bylaw, whether or not the
// bylaw is currently active.
type BylawParameters struct {
	Setbacks          Setbacks          `yaml:"setbacks" toml:"setbacks" json:"setbacks"`
	HeightRestriction HeightRestriction `yaml:"height_restriction" toml:"height_restriction" json:"height_restriction"`
	LotCoverage       LotCoverage       `yaml:"lot_coverage" toml:"lot_coverage" json:"lot_coverage"`
	BuildingDepth     BuildingDepth     `yaml:"building_depth" toml:"building_depth" json:"building_depth"`
}

type Setbacks struct {
	Front float64 `yaml:"front" toml:"front" json:"front"`
	Rear  float64 `yaml:"rear" toml:"rear" json:"rear"`
	Side  float64 `yaml:"side" toml:"side" json:"side"`
}

type HeightRestriction struct {
	MaxHeight      float64 `yaml:"max_height" toml:"max_height" json:"max_height"`
	MainWallHeight float64 `yaml:"main_wall_height" toml:"main_wall_height" json:"main_wall_height"`
}

type LotCoverage struct {
	MaxPercentage float64 `yaml:"max_percentage" toml:"max_percentage" json:"max_percentage"`
}

type BuildingDepth struct {
	MaxDepth float64 `yaml:"max_depth" toml:"max_depth" json:"max_depth"`
}

// ActiveBylaws is the current bylaw selection. The zero value has every bylaw
// switched off. Methods return modified copies; the receiver is never mutated.
type ActiveBylaws struct {
	FrontSetback      bool `yaml:"front_setback" toml:"front_setback" json:"front_setback"`
	RearSetback       bool `yaml:"rear_setback" toml:"rear_setback" json:"rear_setback"`
	SideSetback       bool `yaml:"side_setback" toml:"side_setback" json:"side_setback"`
	HeightRestriction bool `yaml:"height_restriction" toml:"height_restriction" json:"height_restriction"`
	LotCoverage       bool `yaml:"lot_coverage" toml:"lot_coverage" json:"lot_coverage"`
	BuildingDepth     bool `yaml:"building_depth" toml:"building_depth" json:"building_depth"`
}

// AllActive returns a selection with every bylaw switched on.
func AllActive() ActiveBylaws {
	return ActiveBylaws{
		FrontSetback:      true,
		RearSetback:       true,
		SideSetback:       true,
		HeightRestriction: true,
		LotCoverage:       true,
		BuildingDepth:     true,
	}
}

// AnySetback reports whether at least one setback bylaw is active.
func (a ActiveBylaws) AnySetback() bool {
	return a.FrontSetback || a.RearSetback || a.SideSetback
}

// AnyActive reports whether at least one bylaw is active.
func (a ActiveBylaws) AnyActive() bool {
	return a.AnySetback() || a.HeightRestriction || a.LotCoverage || a.BuildingDepth
}

// Enabled returns the state of a single bylaw.
func (a ActiveBylaws) Enabled(k Kind) (bool, error) {
	p, err := a.field(k)
	if err != nil {
		return false, err
	}
	return *p, nil
}

// With returns a copy of the selection with bylaw k set to on.
func (a ActiveBylaws) With(k Kind, on bool) (ActiveBylaws, error) {
	p, err := a.field(k)
	if err != nil {
		return a, err
	}
	*p = on
	return a, nil
}

// Toggle returns a copy of the selection with bylaw k flipped.
func (a ActiveBylaws) Toggle(k Kind) (ActiveBylaws, error) {
	p, err := a.field(k)
	if err != nil {
		return a, err
	}
	*p = !*p
	return a, nil
}

// EnabledKinds lists the active bylaws in catalog order.
func (a ActiveBylaws) EnabledKinds() []Kind {
	var out []Kind
	for _, k := range AllKinds {
		if on, _ := a.Enabled(k); on {
			out = append(out, k)
		}
	}
	return out
}

// field returns a pointer into the receiver copy, so callers only ever
// modify their own value.
func (a *ActiveBylaws) field(k Kind) (*bool, error) {
	switch k {
	case KindFrontSetback:
		return &a.FrontSetback, nil
	case KindRearSetback:
		return &a.RearSetback, nil
	case KindSideSetback:
		return &a.SideSetback, nil
	case KindHeightRestriction:
		return &a.HeightRestriction, nil
	case KindLotCoverage:
		return &a.LotCoverage, nil
	case KindBuildingDepth:
		return &a.BuildingDepth, nil
	default:
		return nil, unknownKind(string(k))
	}
}
