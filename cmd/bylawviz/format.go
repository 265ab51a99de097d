package main

import (
	"fmt"
	"io"

	"github.com/melkuo/bylaw-visualizer/pkg/analytics"
	"github.com/melkuo/bylaw-visualizer/pkg/envelope"
	"github.com/melkuo/bylaw-visualizer/pkg/spec"
	"github.com/melkuo/bylaw-visualizer/pkg/validation"
)

func printValidationReport(w io.Writer, r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Fprintf(w, "ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			printResult(w, e)
		}
		fmt.Fprintln(w)
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintf(w, "WARNINGS (%d):\n", len(r.Warnings))
		for _, wr := range r.Warnings {
			printResult(w, wr)
		}
		fmt.Fprintln(w)
	}

	if len(r.Info) > 0 {
		fmt.Fprintf(w, "INFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Fprintf(w, "  [%s] %s\n", i.Level, i.Message)
		}
		fmt.Fprintln(w)
	}

	if r.Valid {
		fmt.Fprintf(w, "Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Fprintf(w, "Result: INVALID (%s)\n", r.Summary)
	}
}

func printResult(w io.Writer, res validation.Result) {
	fmt.Fprintf(w, "  [%s] %s\n", res.Level, res.Message)
	if res.SpecPath != "" {
		fmt.Fprintf(w, "    -> %s = %v\n", res.SpecPath, res.ActualValue)
	}
	if res.Expected != "" {
		fmt.Fprintf(w, "    expected: %s\n", res.Expected)
	}
	if res.ConflictWith != "" {
		fmt.Fprintf(w, "    conflicts with: %s\n", res.ConflictWith)
	}
	for _, s := range res.Suggestions {
		fmt.Fprintf(w, "    * %s\n", s)
	}
}

func printEnvelope(w io.Writer, e envelope.Envelope, s *analytics.Summary) {
	fmt.Fprintln(w, "Envelope")
	fmt.Fprintln(w, "--------")
	fmt.Fprintf(w, "  Width x depth:     %.2fm x %.2fm\n", e.Width, e.Depth)
	fmt.Fprintf(w, "  Height:            %.2fm (main wall %.2fm)\n", e.Height, e.MainWallHeight)
	fmt.Fprintf(w, "  Position:          x=%.2f z=%.2f\n", e.Position.X, e.Position.Z)
	fmt.Fprintf(w, "  Footprint:         %.1fm² (%.1f%% of %.0fm² lot)\n", s.FootprintAreaM2, s.CoveragePct, s.LotAreaM2)
	fmt.Fprintf(w, "  Storeys / GFA:     %d / %.1fm²\n", s.Stories, s.GrossFloorAreaM2)
	if s.Degenerate {
		fmt.Fprintln(w, "  ! degenerate: the active bylaws leave no buildable volume")
	}
}

func printImpactTable(w io.Writer, impacts []analytics.Impact) {
	fmt.Fprintf(w, "%-20s %-7s %10s %10s %10s %12s %8s\n",
		"Bylaw", "Active", "dWidth", "dDepth", "dHeight", "dFootprint", "Binding")
	fmt.Fprintf(w, "%-20s %-7s %10s %10s %10s %12s %8s\n",
		"--------------------", "-------", "----------", "----------", "----------", "------------", "--------")

	for _, im := range impacts {
		// Active bylaws show what removing them would give back; inactive
		// ones show what switching them on alone would take.
		dw, dd, dh, da := im.IsolatedWidth, im.IsolatedDepth, im.IsolatedHeight, im.IsolatedArea
		if im.Active {
			dw, dd, dh, da = im.MarginalWidth, im.MarginalDepth, im.MarginalHeight, im.MarginalArea
		}
		fmt.Fprintf(w, "%-20s %-7s %10s %10s %10s %12s %8s\n",
			im.Label, yesNo(im.Active), formatDelta(dw), formatDelta(dd), formatDelta(dh), formatDelta(da), yesNo(im.Binding))
	}
}

func printCatalog(w io.Writer, catalog []spec.Info, active spec.ActiveBylaws) {
	for _, info := range catalog {
		on, _ := active.Enabled(info.Kind)
		mark := " "
		if on {
			mark = "x"
		}
		fmt.Fprintf(w, "[%s] %-20s %-20s %s\n", mark, info.Kind, info.Label, info.Description)
	}
}

func formatDelta(v float64) string {
	if v == 0 {
		return "-"
	}
	return fmt.Sprintf("%+.2f", v)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
