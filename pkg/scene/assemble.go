package scene

import (
	"fmt"
	"math"
	"time"

	"github.com/melkuo/bylaw-visualizer/pkg/annotation"
	"github.com/melkuo/bylaw-visualizer/pkg/envelope"
	"github.com/melkuo/bylaw-visualizer/pkg/geo"
	"github.com/melkuo/bylaw-visualizer/pkg/spec"
)

// Scale figures placed around the lot, in meters.
const (
	PersonHeight = 1.8
	PersonWidth  = 0.5
	headRadius   = 0.2

	TreeHeight       = 9.0
	TreeTrunkWidth   = 0.2
	TreeCanopyWidth  = 4.0
	TreeCanopyHeight = 6.0

	groundY = -0.1
)

// Display colors.
const (
	colorGround   = "#a0a0a0"
	colorBuilding = "#f0d090"
	colorLot      = "blue"
	colorPerson   = "#444444"
	colorTrunk    = "#8B4513"
	colorCanopy   = "#228B22"
)

// DefaultCamera looks at the lot center from above one corner.
func DefaultCamera() Camera {
	return Camera{
		Position: geo.V3(10, 10, 10),
		Target:   geo.V3(0, 0, 0),
		FOV:      50,
		Near:     0.1,
		Far:      1000,
	}
}

// Assemble builds the scene graph for a project under the given bylaw
// selection: ground and lot outline, the envelope box, its annotations and
// figures for scale.
func Assemble(p *spec.Project, active spec.ActiveBylaws) *Graph {
	g := NewGraph()

	e := envelope.Compute(p.Lot, p.Parameters, active)

	assembleLot(p.Lot, g)
	assembleBuilding(e, g)
	assembleAnnotations(annotation.Annotate(p.Lot, p.Parameters, active, e), g)
	assembleContext(p.Lot, g)

	g.Metadata = Metadata{
		SpecVersion: p.SpecVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		LotBounds: BoundingBox{
			Min: geo.V3(-p.Lot.Width/2, 0, -p.Lot.Depth/2),
			Max: geo.V3(p.Lot.Width/2, 0, p.Lot.Depth/2),
		},
		SceneBounds: computeBounds(g.Entities),
		Camera:      DefaultCamera(),
		Active:      active,
	}

	return g
}

func assembleLot(lot spec.LotConstants, g *Graph) {
	addEntity(g, Entity{
		ID:         "ground",
		Type:       EntityGround,
		Geometry:   GeometryPlane,
		Position:   geo.V3(0, groundY, 0),
		Dimensions: geo.V3(lot.Width, 0, lot.Depth),
		Style:      Style{Color: colorGround, Opacity: 1},
		Layer:      LayerGround,
		Metadata:   map[string]any{"area_m2": lot.Area()},
	})
	addEntity(g, Entity{
		ID:       "lot_outline",
		Type:     EntityLotOutline,
		Geometry: GeometryPolyline,
		Points:   geo.CenteredRect(lot.Width, lot.Depth).Ring(0),
		Style:    Style{Color: colorLot, Opacity: 1},
		Layer:    LayerGround,
	})
}

func assembleBuilding(e envelope.Envelope, g *Graph) {
	addEntity(g, Entity{
		ID:         "building",
		Type:       EntityBuilding,
		Geometry:   GeometryBox,
		Position:   geo.V3(e.Position.X, 0, e.Position.Z),
		Dimensions: geo.V3(e.Width, e.Height, e.Depth),
		Style:      Style{Color: colorBuilding, Opacity: 1},
		Layer:      LayerBuilding,
		Metadata: map[string]any{
			"main_wall_height": e.MainWallHeight,
			"degenerate":       e.IsDegenerate(),
		},
	})
}

func assembleAnnotations(prims []annotation.Primitive, g *Graph) {
	for _, a := range prims {
		ent := Entity{
			ID:     a.ID,
			Points: a.Points,
			Style: Style{
				Color:   string(a.Color),
				Dashed:  a.Dashed,
				Opacity: a.Opacity,
			},
			Layer: LayerAnnotation,
			Bylaw: a.Bylaw,
			Metadata: map[string]any{
				"role": string(a.Role),
			},
		}

		switch a.Role {
		case annotation.RoleSetbackGuide:
			ent.Type = EntityGuide
		case annotation.RoleOriginalFootprint, annotation.RoleReducedFootprint:
			ent.Type = EntityFootprint
		default:
			ent.Type = EntityMarker
		}

		if a.Shape == annotation.ShapePlane {
			ent.Geometry = GeometryPlane
			lo, hi := pointsBounds(a.Points)
			ent.Position = geo.V3((lo.X+hi.X)/2, lo.Y, (lo.Z+hi.Z)/2)
			ent.Dimensions = geo.V3(hi.X-lo.X, 0, hi.Z-lo.Z)
		} else {
			ent.Geometry = GeometryPolyline
		}

		addEntity(g, ent)
	}
}

func assembleContext(lot spec.LotConstants, g *Graph) {
	halfW, halfD := lot.Width/2, lot.Depth/2

	people := []geo.Point2D{
		geo.Pt(halfW+1, -halfD+2),
		geo.Pt(-halfW-1, halfD-2),
	}
	for i, pos := range people {
		addEntity(g, Entity{
			ID:         personID(i),
			Type:       EntityPerson,
			Geometry:   GeometryModel,
			Position:   pos.At(0),
			Dimensions: geo.V3(PersonWidth, PersonHeight+2*headRadius, PersonWidth),
			Style:      Style{Color: colorPerson, Opacity: 1},
			Layer:      LayerContext,
		})
	}

	trees := []geo.Point2D{
		geo.Pt(halfW+2, 0),
		geo.Pt(-halfW-2, 0),
	}
	for i, pos := range trees {
		addEntity(g, Entity{
			ID:         treeID(i),
			Type:       EntityTree,
			Geometry:   GeometryModel,
			Position:   pos.At(0),
			Dimensions: geo.V3(TreeCanopyWidth, TreeHeight, TreeCanopyWidth),
			Style:      Style{Color: colorCanopy, Opacity: 1},
			Layer:      LayerContext,
			Metadata: map[string]any{
				"trunk_width":   TreeTrunkWidth,
				"trunk_color":   colorTrunk,
				"canopy_height": TreeCanopyHeight,
			},
		})
	}
}

func personID(i int) string { return fmt.Sprintf("person_%d", i+1) }
func treeID(i int) string   { return fmt.Sprintf("tree_%d", i+1) }

// addEntity appends an entity and updates all group indices.
func addEntity(g *Graph, e Entity) {
	g.Entities = append(g.Entities, e)
	id := e.ID

	if e.Bylaw != "" {
		g.Groups.Bylaws[e.Bylaw] = append(g.Groups.Bylaws[e.Bylaw], id)
	}
	g.Groups.Layers[e.Layer] = append(g.Groups.Layers[e.Layer], id)
	g.Groups.EntityTypes[e.Type] = append(g.Groups.EntityTypes[e.Type], id)
}

// extent returns the AABB of one entity.
func extent(e Entity) (geo.Vec3, geo.Vec3) {
	if e.Geometry == GeometryPolyline {
		return pointsBounds(e.Points)
	}
	halfX := math.Abs(e.Dimensions.X) / 2
	halfZ := math.Abs(e.Dimensions.Z) / 2
	lo := geo.V3(e.Position.X-halfX, math.Min(e.Position.Y, e.Position.Y+e.Dimensions.Y), e.Position.Z-halfZ)
	hi := geo.V3(e.Position.X+halfX, math.Max(e.Position.Y, e.Position.Y+e.Dimensions.Y), e.Position.Z+halfZ)
	return lo, hi
}

func pointsBounds(pts []geo.Vec3) (geo.Vec3, geo.Vec3) {
	if len(pts) == 0 {
		return geo.Vec3{}, geo.Vec3{}
	}
	lo, hi := pts[0], pts[0]
	for _, p := range pts[1:] {
		lo = geo.V3(math.Min(lo.X, p.X), math.Min(lo.Y, p.Y), math.Min(lo.Z, p.Z))
		hi = geo.V3(math.Max(hi.X, p.X), math.Max(hi.Y, p.Y), math.Max(hi.Z, p.Z))
	}
	return lo, hi
}

// computeBounds calculates the AABB of all entities.
func computeBounds(entities []Entity) BoundingBox {
	if len(entities) == 0 {
		return BoundingBox{}
	}
	minV := geo.V3(math.MaxFloat64, math.MaxFloat64, math.MaxFloat64)
	maxV := geo.V3(-math.MaxFloat64, -math.MaxFloat64, -math.MaxFloat64)

	for _, e := range entities {
		lo, hi := extent(e)
		minV = geo.V3(math.Min(minV.X, lo.X), math.Min(minV.Y, lo.Y), math.Min(minV.Z, lo.Z))
		maxV = geo.V3(math.Max(maxV.X, hi.X), math.Max(maxV.Y, hi.Y), math.Max(maxV.Z, hi.Z))
	}
	return BoundingBox{Min: minV, Max: maxV}
}
