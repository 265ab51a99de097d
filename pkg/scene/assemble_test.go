package scene

import (
	"testing"

	"github.com/melkuo/bylaw-visualizer/pkg/envelope"
	"github.com/melkuo/bylaw-visualizer/pkg/spec"
)

func assembleTestGraph(t *testing.T, active spec.ActiveBylaws) *Graph {
	t.Helper()
	return Assemble(spec.DefaultProject(), active)
}

func TestAssembleBaseline(t *testing.T) {
	g := assembleTestGraph(t, spec.ActiveBylaws{})

	for _, id := range []string{"ground", "lot_outline", "building", "person_1", "person_2", "tree_1", "tree_2"} {
		if g.Entity(id) == nil {
			t.Errorf("missing entity %q", id)
		}
	}
	if n := len(g.Groups.Layers[LayerAnnotation]); n != 0 {
		t.Errorf("expected no annotations, got %d", n)
	}
	t.Logf("scene graph: %d entities", len(g.Entities))
}

func TestAssembleBuildingMatchesEnvelope(t *testing.T) {
	p := spec.DefaultProject()
	active := spec.AllActive()
	g := Assemble(p, active)
	e := envelope.Compute(p.Lot, p.Parameters, active)

	b := g.Entity("building")
	if b == nil {
		t.Fatal("missing building entity")
	}
	if b.Dimensions.X != e.Width || b.Dimensions.Y != e.Height || b.Dimensions.Z != e.Depth {
		t.Errorf("building dims = %+v, want %vx%vx%v", b.Dimensions, e.Width, e.Height, e.Depth)
	}
	if b.Position.X != e.Position.X || b.Position.Z != e.Position.Z || b.Position.Y != 0 {
		t.Errorf("building position = %+v, want base at (%v, 0, %v)", b.Position, e.Position.X, e.Position.Z)
	}
	if b.Metadata["main_wall_height"] != e.MainWallHeight {
		t.Errorf("main_wall_height = %v, want %v", b.Metadata["main_wall_height"], e.MainWallHeight)
	}
}

func TestAssembleAllBylawsGroups(t *testing.T) {
	g := assembleTestGraph(t, spec.AllActive())

	if n := len(g.Groups.EntityTypes[EntityGuide]); n != 4 {
		t.Errorf("guides = %d, want 4", n)
	}
	if n := len(g.Groups.EntityTypes[EntityFootprint]); n != 2 {
		t.Errorf("footprints = %d, want 2", n)
	}
	if n := len(g.Groups.EntityTypes[EntityMarker]); n != 2 {
		t.Errorf("markers = %d, want 2", n)
	}
	if n := len(g.Groups.Bylaws[spec.KindSideSetback]); n != 2 {
		t.Errorf("side setback group = %d, want 2", n)
	}
	if n := len(g.Groups.Bylaws[spec.KindHeightRestriction]); n != 2 {
		t.Errorf("height group = %d, want 2", n)
	}

	orig := g.Entity("footprint_original")
	if orig == nil || orig.Geometry != GeometryPlane {
		t.Fatalf("footprint_original = %+v, want plane", orig)
	}
	if orig.Dimensions.X != 7.5 || orig.Dimensions.Z != 30 {
		t.Errorf("original footprint dims = %+v, want 7.5 x 30", orig.Dimensions)
	}
}

func TestAssembleMetadata(t *testing.T) {
	g := assembleTestGraph(t, spec.ActiveBylaws{HeightRestriction: true})

	if g.Metadata.SpecVersion != "0.1.0" {
		t.Errorf("expected spec_version 0.1.0, got %s", g.Metadata.SpecVersion)
	}
	if g.Metadata.GeneratedAt == "" {
		t.Error("generated_at is empty")
	}
	if !g.Metadata.Active.HeightRestriction {
		t.Error("metadata should record the selection")
	}
	if g.Metadata.Camera.FOV != 50 {
		t.Errorf("camera fov = %v, want 50", g.Metadata.Camera.FOV)
	}
	// The 10m height limit tops the 9m trees, which stand 2m beyond each
	// side of the lot with 4m canopies.
	sb := g.Metadata.SceneBounds
	if sb.Max.Y != 10 {
		t.Errorf("scene max Y = %v, want 10", sb.Max.Y)
	}
	if sb.Min.X != -(3.75+2+TreeCanopyWidth/2) || sb.Max.X != 3.75+2+TreeCanopyWidth/2 {
		t.Errorf("scene X bounds = [%v, %v]", sb.Min.X, sb.Max.X)
	}
	if sb.Min.Y != groundY {
		t.Errorf("scene min Y = %v, want %v", sb.Min.Y, groundY)
	}
}

func TestAssembleValidates(t *testing.T) {
	for _, active := range []spec.ActiveBylaws{{}, spec.AllActive(), {FrontSetback: true, SideSetback: true}} {
		g := assembleTestGraph(t, active)
		r := ValidateGraph(g)
		if !r.Valid {
			t.Errorf("%v: expected valid graph, got %d errors", active.EnabledKinds(), len(r.Errors))
			for _, e := range r.Errors {
				t.Logf("  error: %s", e.Message)
			}
		}
		if len(r.Warnings) != 0 {
			t.Errorf("%v: expected no warnings, got %v", active.EnabledKinds(), r.Warnings)
		}
	}
}

func TestAssembleDegenerateBuildingWarns(t *testing.T) {
	p := spec.DefaultProject()
	p.Parameters.Setbacks.Side = 4

	g := Assemble(p, spec.ActiveBylaws{SideSetback: true})
	b := g.Entity("building")
	if b.Dimensions.X >= 0 {
		t.Errorf("building width = %v, want the negative computed width", b.Dimensions.X)
	}
	if b.Metadata["degenerate"] != true {
		t.Error("expected degenerate flag on building")
	}
	r := ValidateGraph(g)
	if !r.HasPath("entities.building.dimensions") {
		t.Errorf("expected building dimension warning, got %v", r.Warnings)
	}
}

func BenchmarkAssemble(b *testing.B) {
	p := spec.DefaultProject()
	active := spec.AllActive()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Assemble(p, active)
	}
}
