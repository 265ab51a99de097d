package scene2d

import (
	"math"
	"testing"

	"github.com/melkuo/bylaw-visualizer/pkg/spec"
)

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

func TestAssemble2DNoBylaws(t *testing.T) {
	plan := Assemble2D(spec.DefaultProject(), spec.ActiveBylaws{})

	if len(plan.Setbacks) != 0 || len(plan.Footprints) != 0 || len(plan.Heights) != 0 {
		t.Errorf("expected bare lot, got %d setbacks, %d footprints, %d heights",
			len(plan.Setbacks), len(plan.Footprints), len(plan.Heights))
	}
	if len(plan.Lot.Boundary) != 4 {
		t.Errorf("lot boundary has %d vertices, want 4", len(plan.Lot.Boundary))
	}
	if plan.Metadata.LotAreaM2 != 225 {
		t.Errorf("lot area = %v, want 225", plan.Metadata.LotAreaM2)
	}
	if plan.Metadata.GeneratedAt == "" {
		t.Error("generated_at is empty")
	}
}

func TestAssemble2DLotEdges(t *testing.T) {
	plan := Assemble2D(spec.DefaultProject(), spec.ActiveBylaws{})

	front := plan.Lot.FrontEdge
	if front[0][1] != 15 || front[1][1] != 15 {
		t.Errorf("front edge = %v, want z=15", front)
	}
	rear := plan.Lot.RearEdge
	if rear[0][1] != -15 || rear[1][1] != -15 {
		t.Errorf("rear edge = %v, want z=-15", rear)
	}
}

func TestAssemble2DSetbacks(t *testing.T) {
	plan := Assemble2D(spec.DefaultProject(), spec.ActiveBylaws{FrontSetback: true, SideSetback: true})

	if len(plan.Setbacks) != 3 {
		t.Fatalf("setbacks = %d, want 3 (front + two sides)", len(plan.Setbacks))
	}
	byID := make(map[string]Setback2D)
	for _, s := range plan.Setbacks {
		byID[s.ID] = s
	}

	front, ok := byID["setback_front"]
	if !ok {
		t.Fatal("missing setback_front")
	}
	if front.OffsetM != 5 || front.Start[1] != 10 || front.End[1] != 10 {
		t.Errorf("front setback = %+v, want offset 5 at z=10", front)
	}
	if !approxEqual(front.LengthM, 7.5, 1e-9) {
		t.Errorf("front setback length = %v, want lot width 7.5", front.LengthM)
	}
	left := byID["setback_side_left"]
	if left.OffsetM != 0.9 || !approxEqual(left.Start[0], -2.85, 1e-9) {
		t.Errorf("left side setback = %+v, want offset 0.9 at x=-2.85", left)
	}
	if !approxEqual(left.LengthM, 30, 1e-9) {
		t.Errorf("side setback length = %v, want lot depth 30", left.LengthM)
	}
}

func TestAssemble2DFootprints(t *testing.T) {
	plan := Assemble2D(spec.DefaultProject(), spec.AllActive())

	if len(plan.Footprints) != 2 {
		t.Fatalf("footprints = %d, want 2", len(plan.Footprints))
	}
	orig, reduced := plan.Footprints[0], plan.Footprints[1]
	if orig.Type != "original" || reduced.Type != "reduced" {
		t.Errorf("footprint types = %s, %s", orig.Type, reduced.Type)
	}
	if !approxEqual(orig.AreaM2, 225, 1e-9) {
		t.Errorf("original area = %v, want 225", orig.AreaM2)
	}
	if !approxEqual(reduced.AreaM2, 90, 1e-9) {
		t.Errorf("reduced area = %v, want 90", reduced.AreaM2)
	}
	if !approxEqual(reduced.DepthM, 17, 1e-9) || !approxEqual(reduced.WidthM, 90.0/17.0, 1e-9) {
		t.Errorf("reduced extent = %v x %v, want %v x 17", reduced.WidthM, reduced.DepthM, 90.0/17.0)
	}
	if len(reduced.Polygon) != 4 {
		t.Errorf("reduced polygon has %d vertices, want 4", len(reduced.Polygon))
	}
	if !reduced.Dashed {
		t.Error("reduced footprint should be dashed")
	}
	if !approxEqual(plan.Metadata.CoveragePct, 40, 1e-9) {
		t.Errorf("coverage = %v, want 40", plan.Metadata.CoveragePct)
	}
}

func TestAssemble2DHeights(t *testing.T) {
	plan := Assemble2D(spec.DefaultProject(), spec.ActiveBylaws{HeightRestriction: true})

	if len(plan.Heights) != 2 {
		t.Fatalf("heights = %d, want 2", len(plan.Heights))
	}
	if plan.Heights[0].HeightM != 7 || plan.Heights[0].Label != "main wall 7m" {
		t.Errorf("main wall = %+v", plan.Heights[0])
	}
	if plan.Heights[1].HeightM != 10 || plan.Heights[1].Label != "max 10m" {
		t.Errorf("max height = %+v", plan.Heights[1])
	}
}
