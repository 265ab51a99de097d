package validation

import (
	"fmt"
	"strings"

	"github.com/go-faster/errors"
)

// Level indicates which validation stage produced the result.
type Level string

const (
	LevelParameters Level = "parameters"
	LevelGeometry   Level = "geometry"
	LevelScene      Level = "scene"
)

// Severity indicates how critical a validation result is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

var (
	// ErrConfiguration marks bylaw parameters that violate their declared ranges.
	ErrConfiguration = errors.New("invalid bylaw configuration")
	// ErrDegenerateGeometry marks an envelope with a zero or negative extent.
	ErrDegenerateGeometry = errors.New("degenerate building envelope")
	// ErrInvalidScene marks a scene graph that failed structural validation.
	ErrInvalidScene = errors.New("invalid scene graph")
)

// Result is a single validation finding.
type Result struct {
	Level        Level    `json:"level"`
	Severity     Severity `json:"severity"`
	Message      string   `json:"message"`
	SpecPath     string   `json:"spec_path"`
	ActualValue  any      `json:"actual_value,omitempty"`
	Expected     string   `json:"expected,omitempty"`
	ConflictWith string   `json:"conflict_with,omitempty"`
	Suggestions  []string `json:"suggestions,omitempty"`
}

// Report is the complete validation output.
type Report struct {
	Valid    bool     `json:"valid"`
	Errors   []Result `json:"errors"`
	Warnings []Result `json:"warnings"`
	Info     []Result `json:"info"`
	Summary  string   `json:"summary"`
}

// NewReport creates an empty valid report.
func NewReport() *Report {
	r := &Report{
		Valid:    true,
		Errors:   []Result{},
		Warnings: []Result{},
		Info:     []Result{},
	}
	r.updateSummary()
	return r
}

// AddError adds an error result and marks the report invalid.
func (r *Report) AddError(result Result) {
	result.Severity = SeverityError
	r.Errors = append(r.Errors, result)
	r.Valid = false
	r.updateSummary()
}

// AddWarning adds a warning result.
func (r *Report) AddWarning(result Result) {
	result.Severity = SeverityWarning
	r.Warnings = append(r.Warnings, result)
	r.updateSummary()
}

// AddInfo adds an informational result.
func (r *Report) AddInfo(result Result) {
	result.Severity = SeverityInfo
	r.Info = append(r.Info, result)
	r.updateSummary()
}

// Merge combines another report into this one.
func (r *Report) Merge(other *Report) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
	r.Info = append(r.Info, other.Info...)
	if !other.Valid {
		r.Valid = false
	}
	r.updateSummary()
}

// HasPath reports whether any error or warning refers to the given spec path.
func (r *Report) HasPath(path string) bool {
	for _, e := range r.Errors {
		if e.SpecPath == path {
			return true
		}
	}
	for _, w := range r.Warnings {
		if w.SpecPath == path {
			return true
		}
	}
	return false
}

// Err returns nil for a valid report, otherwise an error wrapping the
// sentinel that matches the level of the first error: ErrInvalidScene for
// scene graph errors, ErrConfiguration otherwise. Degenerate geometry is only
// ever a warning in a report; envelope.ComputeChecked is the call that turns
// it into an ErrDegenerateGeometry error.
func (r *Report) Err() error {
	if r.Valid || len(r.Errors) == 0 {
		return nil
	}
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Message
	}
	sentinel := ErrConfiguration
	if r.Errors[0].Level == LevelScene {
		sentinel = ErrInvalidScene
	}
	return errors.Wrap(sentinel, strings.Join(msgs, "; "))
}

func (r *Report) updateSummary() {
	r.Summary = fmt.Sprintf("%d errors, %d warnings, %d info",
		len(r.Errors), len(r.Warnings), len(r.Info))
}
