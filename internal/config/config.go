// Package config loads an optional YAML defaults file for the
// convert-point-cloud-to-tiles flags, following the teacher's own
// cmd/geo/main.go use of gopkg.in/yaml.v3 (there for `spec --yaml`; here
// for CLI flag defaults, loaded after the command line is parsed and applied
// to every flag the command line left unset).
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/envis-space/etiles/internal/errdefs"
)

// Defaults holds the subset of convert-point-cloud-to-tiles flags that can
// be preset from a YAML file. A zero Defaults changes nothing: every field
// is a pointer so an absent key in the file leaves the flag's own default
// in place.
type Defaults struct {
	InputPath              *string `yaml:"input-path"`
	OutputDirectoryPath    *string `yaml:"output-directory-path"`
	MaximumPointsPerOctant *uint64 `yaml:"maximum-points-per-octant"`
	SourceCRS              *uint32 `yaml:"source-crs"`
	RandomlyShuffle        *bool   `yaml:"randomly-shuffle"`
	ShuffleSeedNumber      *uint64 `yaml:"shuffle-seed-number"`
	LogLevel               *string `yaml:"log-level"`
}

// Load reads and parses the YAML defaults file at path. A missing path
// (empty string) is not an error: it simply yields zero Defaults.
func Load(path string) (Defaults, error) {
	if path == "" {
		return Defaults{}, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Defaults{}, errdefs.EncodingFailed("reading config file "+path, err)
	}

	var d Defaults
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return Defaults{}, errdefs.EncodingFailed("parsing config file "+path, err)
	}
	return d, nil
}
