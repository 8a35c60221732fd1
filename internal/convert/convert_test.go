package convert

import (
	"path/filepath"
	"testing"

	"github.com/envis-space/etiles/internal/errdefs"
)

func TestValidateOutputPathRejectsMissingExtension(t *testing.T) {
	err := validateOutputPath("/tmp/out")
	if !errdefs.New(errdefs.KindNoFileExtension, "", nil).Is(err) {
		t.Fatalf("expected a NoFileExtension error, got %v", err)
	}
}

func TestValidateOutputPathRejectsWrongExtension(t *testing.T) {
	err := validateOutputPath("/tmp/out.zip")
	if !errdefs.New(errdefs.KindInvalidFileExtension, "", nil).Is(err) {
		t.Fatalf("expected an InvalidFileExtension error, got %v", err)
	}
}

func TestValidateOutputPathAcceptsTar(t *testing.T) {
	if err := validateOutputPath("/tmp/out.tar"); err != nil {
		t.Fatalf("expected .tar to be accepted, got %v", err)
	}
}

func TestRunRejectsInvalidExtensionBeforeReadingInput(t *testing.T) {
	opts := Options{
		InputPath:           filepath.Join(t.TempDir(), "missing.geojson"),
		OutputDirectoryPath: filepath.Join(t.TempDir(), "out.zip"),
	}
	err := Run(opts, nil)
	if !errdefs.New(errdefs.KindInvalidFileExtension, "", nil).Is(err) {
		t.Fatalf("expected an InvalidFileExtension error before any I/O, got %v", err)
	}
}
