package scene

import (
	"github.com/melkuo/bylaw-visualizer/pkg/geo"
	"github.com/melkuo/bylaw-visualizer/pkg/spec"
)

// LayerType identifies a display layer.
type LayerType string

const (
	LayerGround     LayerType = "ground"
	LayerBuilding   LayerType = "building"
	LayerAnnotation LayerType = "annotation"
	LayerContext    LayerType = "context"
)

// EntityType identifies the kind of entity.
type EntityType string

const (
	EntityGround     EntityType = "ground"
	EntityLotOutline EntityType = "lot_outline"
	EntityBuilding   EntityType = "building"
	EntityGuide      EntityType = "guide"
	EntityFootprint  EntityType = "footprint"
	EntityMarker     EntityType = "marker"
	EntityPerson     EntityType = "person"
	EntityTree       EntityType = "tree"
)

// Geometry says how a renderer should draw an entity.
type Geometry string

const (
	GeometryBox      Geometry = "box"
	GeometryPlane    Geometry = "plane"
	GeometryPolyline Geometry = "polyline"
	GeometryModel    Geometry = "model"
)

// BoundingBox defines an axis-aligned bounding box.
type BoundingBox struct {
	Min geo.Vec3 `json:"min"`
	Max geo.Vec3 `json:"max"`
}

// Style carries display hints.
type Style struct {
	Color   string  `json:"color"`
	Dashed  bool    `json:"dashed,omitempty"`
	Opacity float64 `json:"opacity"`
}

// Entity is a single element in the scene graph. Boxes, planes and models
// use Position (base center) and Dimensions; polylines use Points.
type Entity struct {
	ID         string         `json:"id"`
	Type       EntityType     `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Position   geo.Vec3       `json:"position"`
	Dimensions geo.Vec3       `json:"dimensions"`
	Points     []geo.Vec3     `json:"points,omitempty"`
	Style      Style          `json:"style"`
	Layer      LayerType      `json:"layer"`
	Bylaw      spec.Kind      `json:"bylaw,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// Camera is the default viewpoint for the scene.
type Camera struct {
	Position geo.Vec3 `json:"position"`
	Target   geo.Vec3 `json:"target"`
	FOV      float64  `json:"fov"`
	Near     float64  `json:"near"`
	Far      float64  `json:"far"`
}

// Graph is the complete scene graph for one bylaw selection.
type Graph struct {
	Metadata Metadata `json:"metadata"`
	Entities []Entity `json:"entities"`
	Groups   Groups   `json:"groups"`
}

// Metadata holds scene-level information.
type Metadata struct {
	SpecVersion string            `json:"spec_version"`
	GeneratedAt string            `json:"generated_at"`
	LotBounds   BoundingBox       `json:"lot_bounds"`
	SceneBounds BoundingBox       `json:"scene_bounds"`
	Camera      Camera            `json:"camera"`
	Active      spec.ActiveBylaws `json:"active"`
}

// Groups organizes entity IDs by various axes for fast filtering.
type Groups struct {
	Bylaws      map[spec.Kind][]string  `json:"bylaws"`
	Layers      map[LayerType][]string  `json:"layers"`
	EntityTypes map[EntityType][]string `json:"entity_types"`
}

// NewGraph creates an empty scene graph.
func NewGraph() *Graph {
	return &Graph{
		Entities: []Entity{},
		Groups: Groups{
			Bylaws:      make(map[spec.Kind][]string),
			Layers:      make(map[LayerType][]string),
			EntityTypes: make(map[EntityType][]string),
		},
	}
}

// Entity returns the entity with the given ID, or nil.
func (g *Graph) Entity(id string) *Entity {
	for i := range g.Entities {
		if g.Entities[i].ID == id {
			return &g.Entities[i]
		}
	}
	return nil
}
