package scene

import (
	"fmt"

	"github.com/melkuo/bylaw-visualizer/pkg/validation"
)

// ValidateGraph performs structural validation on a scene graph output.
// It checks entity integrity, group index consistency, lot enclosure and
// geometry.
func ValidateGraph(g *Graph) *validation.Report {
	r := validation.NewReport()

	if g == nil {
		r.AddError(validation.Result{
			Level:   validation.LevelScene,
			Message: "scene graph is nil",
		})
		return r
	}

	validateEntityIDs(g, r)
	validateGroupIndices(g, r)
	validateGroupMembership(g, r)
	validateLotEnclosure(g, r)
	validateEntityGeometry(g, r)

	return r
}

func validateEntityIDs(g *Graph, r *validation.Report) {
	seen := make(map[string]int, len(g.Entities))

	for i, e := range g.Entities {
		if e.ID == "" {
			r.AddError(validation.Result{
				Level:       validation.LevelScene,
				Message:     fmt.Sprintf("entity at index %d has empty ID", i),
				SpecPath:    fmt.Sprintf("entities[%d].id", i),
				ActualValue: "",
				Expected:    "non-empty string",
			})
			continue
		}
		if prev, exists := seen[e.ID]; exists {
			r.AddError(validation.Result{
				Level:       validation.LevelScene,
				Message:     fmt.Sprintf("duplicate entity ID %q at indices %d and %d", e.ID, prev, i),
				SpecPath:    fmt.Sprintf("entities[%d].id", i),
				ActualValue: e.ID,
			})
		}
		seen[e.ID] = i
	}
}

func validateGroupIndices(g *Graph, r *validation.Report) {
	entityIDs := make(map[string]bool, len(g.Entities))
	for _, e := range g.Entities {
		entityIDs[e.ID] = true
	}

	checkGroup := func(groupType, groupName string, ids []string) {
		for _, id := range ids {
			if !entityIDs[id] {
				r.AddError(validation.Result{
					Level:       validation.LevelScene,
					Message:     fmt.Sprintf("group %s.%s references non-existent entity %q", groupType, groupName, id),
					SpecPath:    fmt.Sprintf("groups.%s.%s", groupType, groupName),
					ActualValue: id,
					Expected:    "existing entity ID",
				})
			}
		}
	}

	for name, ids := range g.Groups.Bylaws {
		checkGroup("bylaws", string(name), ids)
	}
	for name, ids := range g.Groups.Layers {
		checkGroup("layers", string(name), ids)
	}
	for name, ids := range g.Groups.EntityTypes {
		checkGroup("entity_types", string(name), ids)
	}
}

func memberSet[K ~string](groups map[K][]string) map[string]map[string]bool {
	out := make(map[string]map[string]bool, len(groups))
	for k, ids := range groups {
		m := make(map[string]bool, len(ids))
		for _, id := range ids {
			m[id] = true
		}
		out[string(k)] = m
	}
	return out
}

func validateGroupMembership(g *Graph, r *validation.Report) {
	layerMembers := memberSet(g.Groups.Layers)
	typeMembers := memberSet(g.Groups.EntityTypes)
	bylawMembers := memberSet(g.Groups.Bylaws)

	check := func(e Entity, groupType, key string, members map[string]map[string]bool) {
		m, ok := members[key]
		if !ok {
			r.AddError(validation.Result{
				Level:       validation.LevelScene,
				Message:     fmt.Sprintf("entity %q has %s %q but no such %s group exists", e.ID, groupType, key, groupType),
				SpecPath:    "groups." + groupType,
				ActualValue: key,
			})
			return
		}
		if !m[e.ID] {
			r.AddError(validation.Result{
				Level:       validation.LevelScene,
				Message:     fmt.Sprintf("entity %q has %s %q but is not in that group", e.ID, groupType, key),
				SpecPath:    fmt.Sprintf("groups.%s.%s", groupType, key),
				ActualValue: e.ID,
			})
		}
	}

	for _, e := range g.Entities {
		if e.ID == "" {
			continue
		}
		if e.Layer != "" {
			check(e, "layers", string(e.Layer), layerMembers)
		}
		if e.Type != "" {
			check(e, "entity_types", string(e.Type), typeMembers)
		}
		if e.Bylaw != "" {
			check(e, "bylaws", string(e.Bylaw), bylawMembers)
		}
	}
}

// validateLotEnclosure warns when the building or an annotation reaches past
// the lot boundary. Context figures stand outside the lot on purpose.
func validateLotEnclosure(g *Graph, r *validation.Report) {
	bounds := g.Metadata.LotBounds
	tolerance := 0.01

	for _, e := range g.Entities {
		if e.Layer != LayerBuilding && e.Layer != LayerAnnotation {
			continue
		}
		lo, hi := extent(e)
		if lo.X < bounds.Min.X-tolerance || hi.X > bounds.Max.X+tolerance ||
			lo.Z < bounds.Min.Z-tolerance || hi.Z > bounds.Max.Z+tolerance {
			r.AddWarning(validation.Result{
				Level:       validation.LevelScene,
				Message:     fmt.Sprintf("entity %q extent X[%.2f, %.2f] Z[%.2f, %.2f] outside lot X[%.2f, %.2f] Z[%.2f, %.2f]", e.ID, lo.X, hi.X, lo.Z, hi.Z, bounds.Min.X, bounds.Max.X, bounds.Min.Z, bounds.Max.Z),
				SpecPath:    "metadata.lot_bounds",
				ActualValue: e.ID,
			})
		}
	}
}

func validateEntityGeometry(g *Graph, r *validation.Report) {
	for _, e := range g.Entities {
		switch e.Geometry {
		case GeometryPolyline:
			if len(e.Points) < 2 {
				r.AddError(validation.Result{
					Level:       validation.LevelScene,
					Message:     fmt.Sprintf("polyline %q has %d points", e.ID, len(e.Points)),
					SpecPath:    fmt.Sprintf("entities.%s.points", e.ID),
					ActualValue: len(e.Points),
					Expected:    ">= 2",
				})
			}
		case GeometryBox, GeometryModel:
			if e.Dimensions.X <= 0 || e.Dimensions.Y <= 0 || e.Dimensions.Z <= 0 {
				r.AddWarning(validation.Result{
					Level:       validation.LevelScene,
					Message:     fmt.Sprintf("entity %q has zero or negative dimension (%.2f, %.2f, %.2f)", e.ID, e.Dimensions.X, e.Dimensions.Y, e.Dimensions.Z),
					SpecPath:    fmt.Sprintf("entities.%s.dimensions", e.ID),
					ActualValue: fmt.Sprintf("%.2f x %.2f x %.2f", e.Dimensions.X, e.Dimensions.Y, e.Dimensions.Z),
					Expected:    "all dimensions > 0",
				})
			}
		case GeometryPlane:
			if e.Dimensions.X <= 0 || e.Dimensions.Z <= 0 {
				r.AddWarning(validation.Result{
					Level:       validation.LevelScene,
					Message:     fmt.Sprintf("plane %q has zero or negative extent (%.2f x %.2f)", e.ID, e.Dimensions.X, e.Dimensions.Z),
					SpecPath:    fmt.Sprintf("entities.%s.dimensions", e.ID),
					ActualValue: fmt.Sprintf("%.2f x %.2f", e.Dimensions.X, e.Dimensions.Z),
					Expected:    "width and depth > 0",
				})
			}
		default:
			r.AddError(validation.Result{
				Level:       validation.LevelScene,
				Message:     fmt.Sprintf("entity %q has unknown geometry %q", e.ID, e.Geometry),
				SpecPath:    fmt.Sprintf("entities.%s.geometry", e.ID),
				ActualValue: string(e.Geometry),
			})
		}
	}
}
