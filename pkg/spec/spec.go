package spec

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-faster/errors"
	"gopkg.in/yaml.v3"
)

// ProjectFiles are the file names LoadProject looks for, in order.
var ProjectFiles = []string{"bylaws.yaml", "bylaws.yml", "bylaws.toml"}

// DefaultLot is the 7.5m x 30m (225 m²) Toronto lot.
func DefaultLot() LotConstants {
	return LotConstants{Width: 7.5, Depth: 30}
}

// DefaultParameters are Toronto Zoning By-law 569-2013 values for a 225 m² lot.
func DefaultParameters() BylawParameters {
	return BylawParameters{
		Setbacks:          Setbacks{Front: 5.0, Rear: 7.5, Side: 0.9},
		HeightRestriction: HeightRestriction{MaxHeight: 10, MainWallHeight: 7},
		LotCoverage:       LotCoverage{MaxPercentage: 40},
		BuildingDepth:     BuildingDepth{MaxDepth: 17},
	}
}

// DefaultProject returns the built-in project used when no project file is given.
func DefaultProject() *Project {
	return &Project{
		SpecVersion: "0.1.0",
		Name:        "Toronto By-law 569-2013",
		Lot:         DefaultLot(),
		Parameters:  DefaultParameters(),
	}
}

// Load reads a bylaw project from a YAML or TOML file. Sections missing from
// the file keep their default values.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading project file")
	}

	p := DefaultProject()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, p); err != nil {
			return nil, errors.Wrap(err, "parsing project TOML")
		}
	default:
		if err := yaml.Unmarshal(data, p); err != nil {
			return nil, errors.Wrap(err, "parsing project YAML")
		}
	}

	return p, nil
}

// LoadProject loads a bylaw project from a project directory.
// It looks for the first of ProjectFiles present in the given directory.
func LoadProject(projectDir string) (*Project, error) {
	for _, name := range ProjectFiles {
		path := filepath.Join(projectDir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return nil, errors.Errorf("no project file (%s) in %s", strings.Join(ProjectFiles, ", "), projectDir)
}
