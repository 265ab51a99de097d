package envelope

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melkuo/bylaw-visualizer/pkg/spec"
	"github.com/melkuo/bylaw-visualizer/pkg/validation"
)

const tolerance = 1e-9

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < tolerance
}

func torontoInputs() (spec.LotConstants, spec.BylawParameters) {
	return spec.DefaultLot(), spec.DefaultParameters()
}

func TestBaselineNoBylaws(t *testing.T) {
	lot, p := torontoInputs()
	e := Compute(lot, p, spec.ActiveBylaws{})

	if e.Width != lot.Width || e.Depth != lot.Depth {
		t.Errorf("footprint = %vx%v, want %vx%v", e.Width, e.Depth, lot.Width, lot.Depth)
	}
	if e.Height != BaselineHeight || e.MainWallHeight != BaselineMainWallHeight {
		t.Errorf("heights = %v/%v, want %v/%v", e.Height, e.MainWallHeight, BaselineHeight, BaselineMainWallHeight)
	}
	if e.Height <= p.HeightRestriction.MaxHeight {
		t.Errorf("baseline height %v must exceed max_height %v", e.Height, p.HeightRestriction.MaxHeight)
	}
	if e.MainWallHeight <= p.HeightRestriction.MainWallHeight {
		t.Errorf("baseline main wall %v must exceed main_wall_height %v", e.MainWallHeight, p.HeightRestriction.MainWallHeight)
	}
	if e.Position != (Position{}) {
		t.Errorf("position = %+v, want origin", e.Position)
	}
}

func TestBaselineStaysAboveRaisedLimits(t *testing.T) {
	lot, p := torontoInputs()
	p.HeightRestriction = spec.HeightRestriction{MaxHeight: 25, MainWallHeight: 20}

	e := Compute(lot, p, spec.ActiveBylaws{})
	if e.Height <= 25 || e.MainWallHeight <= 20 {
		t.Errorf("baseline heights %v/%v must exceed raised limits 25/20", e.Height, e.MainWallHeight)
	}
}

func TestDeterminism(t *testing.T) {
	lot, p := torontoInputs()
	for _, active := range []spec.ActiveBylaws{{}, spec.AllActive(), {FrontSetback: true, LotCoverage: true}} {
		first := Compute(lot, p, active)
		for i := 0; i < 10; i++ {
			if got := Compute(lot, p, active); got != first {
				t.Fatalf("call %d = %+v, want %+v", i, got, first)
			}
		}
	}
}

func TestFrontSetbackOnly(t *testing.T) {
	lot, p := torontoInputs()
	e := Compute(lot, p, spec.ActiveBylaws{FrontSetback: true})

	if !approxEqual(e.Depth, lot.Depth-p.Setbacks.Front) {
		t.Errorf("depth = %v, want %v", e.Depth, lot.Depth-p.Setbacks.Front)
	}
	if !approxEqual(e.Position.Z, -p.Setbacks.Front/2) {
		t.Errorf("position.z = %v, want %v", e.Position.Z, -p.Setbacks.Front/2)
	}
	if e.Width != lot.Width {
		t.Errorf("width = %v, want unchanged %v", e.Width, lot.Width)
	}
}

func TestRearSetbackOnly(t *testing.T) {
	lot, p := torontoInputs()
	e := Compute(lot, p, spec.ActiveBylaws{RearSetback: true})

	if !approxEqual(e.Depth, lot.Depth-p.Setbacks.Rear) {
		t.Errorf("depth = %v, want %v", e.Depth, lot.Depth-p.Setbacks.Rear)
	}
	if !approxEqual(e.Position.Z, p.Setbacks.Rear/2) {
		t.Errorf("position.z = %v, want %v", e.Position.Z, p.Setbacks.Rear/2)
	}
}

func TestFrontAndRearSetbacksAccumulate(t *testing.T) {
	lot, p := torontoInputs()
	e := Compute(lot, p, spec.ActiveBylaws{FrontSetback: true, RearSetback: true})

	wantDepth := lot.Depth - p.Setbacks.Front - p.Setbacks.Rear
	wantZ := (p.Setbacks.Rear - p.Setbacks.Front) / 2
	if !approxEqual(e.Depth, wantDepth) {
		t.Errorf("depth = %v, want %v", e.Depth, wantDepth)
	}
	if !approxEqual(e.Position.Z, wantZ) {
		t.Errorf("position.z = %v, want %v", e.Position.Z, wantZ)
	}
	if e.Position.X != 0 {
		t.Errorf("position.x = %v, want 0", e.Position.X)
	}
}

func TestSetbackEffectIndependentOfOtherFlags(t *testing.T) {
	lot, p := torontoInputs()
	// Height and side bylaws never touch depth or z.
	without := Compute(lot, p, spec.ActiveBylaws{SideSetback: true, HeightRestriction: true})
	with := Compute(lot, p, spec.ActiveBylaws{SideSetback: true, HeightRestriction: true, FrontSetback: true})

	if !approxEqual(without.Depth-with.Depth, p.Setbacks.Front) {
		t.Errorf("front setback reduced depth by %v, want %v", without.Depth-with.Depth, p.Setbacks.Front)
	}
	if !approxEqual(with.Position.Z-without.Position.Z, -p.Setbacks.Front/2) {
		t.Errorf("front setback shifted z by %v, want %v", with.Position.Z-without.Position.Z, -p.Setbacks.Front/2)
	}
}

func TestSideSetbackOnly(t *testing.T) {
	lot, p := torontoInputs()
	e := Compute(lot, p, spec.ActiveBylaws{SideSetback: true})

	if !approxEqual(e.Width, lot.Width-2*p.Setbacks.Side) {
		t.Errorf("width = %v, want %v", e.Width, lot.Width-2*p.Setbacks.Side)
	}
	if e.Depth != lot.Depth || e.Position != (Position{}) {
		t.Errorf("depth/position changed: %v %+v", e.Depth, e.Position)
	}
}

func TestHeightRestrictionToggle(t *testing.T) {
	lot, p := torontoInputs()
	on := Compute(lot, p, spec.ActiveBylaws{HeightRestriction: true})
	if on.Height != p.HeightRestriction.MaxHeight || on.MainWallHeight != p.HeightRestriction.MainWallHeight {
		t.Errorf("heights = %v/%v, want %v/%v", on.Height, on.MainWallHeight,
			p.HeightRestriction.MaxHeight, p.HeightRestriction.MainWallHeight)
	}

	off := Compute(lot, p, spec.ActiveBylaws{})
	if off.Height != BaselineHeight || off.MainWallHeight != BaselineMainWallHeight {
		t.Errorf("heights after disabling = %v/%v, want baseline", off.Height, off.MainWallHeight)
	}
}

func TestLotCoverageClamp(t *testing.T) {
	lot, p := torontoInputs()
	maxW := MaxCoverageWidth(lot, p)
	if !approxEqual(maxW, 225*0.4/17) {
		t.Fatalf("MaxCoverageWidth = %v, want %v", maxW, 225*0.4/17)
	}

	e := Compute(lot, p, spec.ActiveBylaws{LotCoverage: true})
	if !approxEqual(e.Width, maxW) {
		t.Errorf("width = %v, want clamped %v", e.Width, maxW)
	}
}

func TestLotCoverageMinNotSubtraction(t *testing.T) {
	lot, p := torontoInputs()
	p.LotCoverage.MaxPercentage = 100 // 225/17 = 13.2m, wider than the lot

	e := Compute(lot, p, spec.ActiveBylaws{LotCoverage: true})
	if e.Width != lot.Width {
		t.Errorf("width = %v, want unchanged %v", e.Width, lot.Width)
	}

	// Coverage uses the fixed reference depth, not the post-setback depth.
	p = spec.DefaultParameters()
	a := Compute(lot, p, spec.ActiveBylaws{LotCoverage: true})
	b := Compute(lot, p, spec.ActiveBylaws{LotCoverage: true, FrontSetback: true, RearSetback: true})
	if a.Width != b.Width {
		t.Errorf("coverage width changed with setbacks: %v vs %v", a.Width, b.Width)
	}
}

func TestBuildingDepthClamp(t *testing.T) {
	lot, p := torontoInputs()
	e := Compute(lot, p, spec.ActiveBylaws{BuildingDepth: true})
	if e.Depth != p.BuildingDepth.MaxDepth {
		t.Errorf("depth = %v, want %v", e.Depth, p.BuildingDepth.MaxDepth)
	}

	p.BuildingDepth.MaxDepth = 40
	e = Compute(lot, p, spec.ActiveBylaws{BuildingDepth: true})
	if e.Depth != lot.Depth {
		t.Errorf("depth = %v, want unchanged %v", e.Depth, lot.Depth)
	}
	// Depth clamp does not move the envelope.
	if e.Position.Z != 0 {
		t.Errorf("position.z = %v, want 0", e.Position.Z)
	}
}

func TestAllBylawsToronto(t *testing.T) {
	lot, p := torontoInputs()
	e := Compute(lot, p, spec.AllActive())

	assert.InDelta(t, 17.0, e.Depth, tolerance, "depth: min(30-5-7.5, 17)")
	assert.InDelta(t, math.Min(5.7, MaxCoverageWidth(lot, p)), e.Width, tolerance, "width: min(7.5-1.8, coverage)")
	assert.InDelta(t, 225*0.4/17, e.Width, tolerance)
	assert.Equal(t, 10.0, e.Height)
	assert.Equal(t, 7.0, e.MainWallHeight)
	assert.InDelta(t, 1.25, e.Position.Z, tolerance)
	assert.Equal(t, 0.0, e.Position.X)
}

func TestNoClampNegativeWidth(t *testing.T) {
	lot, p := torontoInputs()
	p.Setbacks.Side = 4 // 2*4 > 7.5

	e := Compute(lot, p, spec.ActiveBylaws{SideSetback: true})
	assert.InDelta(t, -0.5, e.Width, tolerance, "negative width is propagated, not clamped")
	assert.True(t, e.IsDegenerate())

	r := CheckGeometry(e)
	assert.True(t, r.Valid, "degenerate geometry is a warning")
	assert.True(t, r.HasPath("envelope.width"))

	got, err := ComputeChecked(lot, p, spec.ActiveBylaws{SideSetback: true})
	require.ErrorIs(t, err, validation.ErrDegenerateGeometry)
	assert.Equal(t, e, got, "checked compute returns the same envelope")
}

func TestNoClampNegativeDepth(t *testing.T) {
	lot, p := torontoInputs()
	p.Setbacks.Front = 20
	p.Setbacks.Rear = 15

	e := Compute(lot, p, spec.ActiveBylaws{FrontSetback: true, RearSetback: true})
	assert.InDelta(t, -5.0, e.Depth, tolerance)
	assert.InDelta(t, -2.5, e.Position.Z, tolerance)
	assert.True(t, CheckGeometry(e).HasPath("envelope.depth"))
}

func TestComputeCheckedHealthy(t *testing.T) {
	lot, p := torontoInputs()
	e, err := ComputeChecked(lot, p, spec.AllActive())
	require.NoError(t, err)
	assert.Empty(t, CheckGeometry(e).Warnings)
}

func TestFootprint(t *testing.T) {
	lot, p := torontoInputs()
	e := Compute(lot, p, spec.ActiveBylaws{FrontSetback: true, RearSetback: true})
	fp := e.Footprint()

	// Front property line at +Z: 15 - 5. Rear at -Z: -15 + 7.5.
	assert.InDelta(t, -7.5, fp.Min().Z, tolerance)
	assert.InDelta(t, 10.0, fp.Max().Z, tolerance)
	assert.InDelta(t, e.Height/2, e.Center().Y, tolerance)
}
