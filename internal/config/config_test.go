package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmptyPathReturnsZeroDefaults(t *testing.T) {
	d, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if d.InputPath != nil || d.SourceCRS != nil {
		t.Fatalf("expected zero Defaults, got %+v", d)
	}
}

func TestLoadParsesPartialFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "defaults.yaml")
	content := "maximum-points-per-octant: 50000\nrandomly-shuffle: false\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if d.MaximumPointsPerOctant == nil || *d.MaximumPointsPerOctant != 50000 {
		t.Fatalf("expected maximum-points-per-octant 50000, got %+v", d.MaximumPointsPerOctant)
	}
	if d.RandomlyShuffle == nil || *d.RandomlyShuffle != false {
		t.Fatalf("expected randomly-shuffle false, got %+v", d.RandomlyShuffle)
	}
	if d.InputPath != nil {
		t.Fatalf("expected input-path to stay unset, got %+v", d.InputPath)
	}
}

func TestLoadRejectsMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected an error reading a missing file")
	}
}
