package scene2d

import "github.com/melkuo/bylaw-visualizer/pkg/spec"

// Plan is the top-down site plan for an SVG renderer. Coordinates are
// [x, z] pairs in lot space: X across the lot, Z along it with the front
// property line at +Z.
type Plan struct {
	Metadata   Metadata      `json:"metadata"`
	Lot        Lot2D         `json:"lot"`
	Setbacks   []Setback2D   `json:"setbacks"`
	Footprints []Footprint2D `json:"footprints"`
	Heights    []Height2D    `json:"heights"`
}

// Metadata holds lot-level summary data.
type Metadata struct {
	LotWidthM          float64           `json:"lot_width_m"`
	LotDepthM          float64           `json:"lot_depth_m"`
	LotAreaM2          float64           `json:"lot_area_m2"`
	CoveragePct        float64           `json:"coverage_pct"`
	AllowedCoveragePct float64           `json:"allowed_coverage_pct"`
	Active             spec.ActiveBylaws `json:"active"`
	GeneratedAt        string            `json:"generated_at"`
}

// Lot2D is the lot boundary with its front and rear edges named.
type Lot2D struct {
	Boundary  [][2]float64  `json:"boundary"`
	FrontEdge [2][2]float64 `json:"front_edge"`
	RearEdge  [2][2]float64 `json:"rear_edge"`
}

// Setback2D is one setback guide line.
type Setback2D struct {
	ID      string     `json:"id"`
	Bylaw   spec.Kind  `json:"bylaw"`
	Start   [2]float64 `json:"start"`
	End     [2]float64 `json:"end"`
	LengthM float64    `json:"length_m"`
	OffsetM float64    `json:"offset_m"`
	Color   string     `json:"color"`
}

// Footprint2D is a footprint outline.
type Footprint2D struct {
	ID      string       `json:"id"`
	Type    string       `json:"type"`
	Polygon [][2]float64 `json:"polygon"`
	WidthM  float64      `json:"width_m"`
	DepthM  float64      `json:"depth_m"`
	AreaM2  float64      `json:"area_m2"`
	Color   string       `json:"color"`
	Dashed  bool         `json:"dashed"`
	Opacity float64      `json:"opacity"`
}

// Height2D is a plan-view height label at the base of a height marker.
type Height2D struct {
	ID       string     `json:"id"`
	Position [2]float64 `json:"position"`
	HeightM  float64    `json:"height_m"`
	Label    string     `json:"label"`
	Color    string     `json:"color"`
}
