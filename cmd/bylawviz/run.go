package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/go-faster/errors"

	"github.com/melkuo/bylaw-visualizer/pkg/analytics"
	"github.com/melkuo/bylaw-visualizer/pkg/scene"
	"github.com/melkuo/bylaw-visualizer/pkg/scene2d"
	"github.com/melkuo/bylaw-visualizer/pkg/spec"
	"github.com/melkuo/bylaw-visualizer/pkg/validation"
)

var errInvalid = errors.New("validation failed")

// loadProject reads the project directory, or returns the default Toronto
// project when none is given.
func loadProject(ctx context.Context, dir string) (*spec.Project, error) {
	logger := loggerFromContext(ctx)
	if dir == "" {
		logger.Debug("no project directory, using defaults")
		return spec.DefaultProject(), nil
	}
	p, err := spec.LoadProject(dir)
	if err != nil {
		return nil, errors.Wrap(err, "loading project")
	}
	logger.Debug("project loaded", "dir", dir, "name", p.Name)
	return p, nil
}

// resolveSelection picks the bylaw selection: --all, then --enable, then
// whatever the project file switches on.
func resolveSelection(p *spec.Project, f selectionFlags) (spec.ActiveBylaws, error) {
	switch {
	case f.all:
		return spec.AllActive(), nil
	case len(f.enable) > 0:
		return spec.ParseActive(f.enable)
	default:
		return p.Active, nil
	}
}

// loadSelection loads the project, validates its parameters and resolves the
// selection. Invalid parameters are logged and returned as an error.
func loadSelection(ctx context.Context, f selectionFlags) (*spec.Project, spec.ActiveBylaws, error) {
	p, err := loadProject(ctx, f.project)
	if err != nil {
		return nil, spec.ActiveBylaws{}, err
	}
	active, err := resolveSelection(p, f)
	if err != nil {
		return nil, spec.ActiveBylaws{}, err
	}

	report := validation.ValidateProject(p)
	if !report.Valid {
		logger := loggerFromContext(ctx)
		for _, e := range report.Errors {
			logger.Error(e.Message, "path", e.SpecPath)
		}
		return nil, spec.ActiveBylaws{}, errors.Wrap(report.Err(), "project parameters")
	}
	loggerFromContext(ctx).Debug("selection", "active", active.EnabledKinds())
	return p, active, nil
}

func runCompute(ctx context.Context, w io.Writer, f selectionFlags) error {
	p, active, err := loadSelection(ctx, f)
	if err != nil {
		return err
	}

	e, summary, report := analytics.Resolve(p.Lot, p.Parameters, active)
	for _, warn := range report.Warnings {
		loggerFromContext(ctx).Warn(warn.Message, "path", warn.SpecPath)
	}

	output := map[string]any{
		"project":    p.Name,
		"active":     active,
		"envelope":   e,
		"summary":    summary,
		"validation": report,
	}
	return writeJSON(w, output)
}

func runValidate(ctx context.Context, w io.Writer, f selectionFlags) error {
	p, err := loadProject(ctx, f.project)
	if err != nil {
		return err
	}
	active, err := resolveSelection(p, f)
	if err != nil {
		return err
	}

	_, _, report := analytics.Resolve(p.Lot, p.Parameters, active)
	graphReport := scene.ValidateGraph(scene.Assemble(p, active))
	report.Merge(graphReport)

	printValidationReport(w, report)

	if !report.Valid {
		return errInvalid
	}
	return nil
}

func runScene(ctx context.Context, w io.Writer, f selectionFlags) error {
	p, active, err := loadSelection(ctx, f)
	if err != nil {
		return err
	}

	graph := scene.Assemble(p, active)
	report := scene.ValidateGraph(graph)
	logger := loggerFromContext(ctx)
	for _, warn := range report.Warnings {
		logger.Warn(warn.Message, "path", warn.SpecPath)
	}
	if !report.Valid {
		for _, e := range report.Errors {
			logger.Error(e.Message, "path", e.SpecPath)
		}
		return errors.Wrap(report.Err(), "scene graph")
	}
	logger.Debug("scene assembled", "entities", len(graph.Entities))

	return writeJSON(w, graph)
}

func runPlan(ctx context.Context, w io.Writer, f selectionFlags) error {
	p, active, err := loadSelection(ctx, f)
	if err != nil {
		return err
	}
	return writeJSON(w, scene2d.Assemble2D(p, active))
}

func runImpact(ctx context.Context, w io.Writer, f selectionFlags) error {
	p, active, err := loadSelection(ctx, f)
	if err != nil {
		return err
	}

	e, summary, _ := analytics.Resolve(p.Lot, p.Parameters, active)
	printEnvelope(w, e, summary)
	fmt.Fprintln(w)
	printImpactTable(w, analytics.Impacts(p.Lot, p.Parameters, active))
	return nil
}

func runBylaws(ctx context.Context, w io.Writer, f selectionFlags) error {
	p, err := loadProject(ctx, f.project)
	if err != nil {
		return err
	}
	active, err := resolveSelection(p, f)
	if err != nil {
		return err
	}
	printCatalog(w, spec.Catalog(p.Parameters), active)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
