package progress

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestPhasePrintsStartAndDone(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)

	done := r.Phase("reading point cloud")
	done()

	out := buf.String()
	if !strings.Contains(out, "start   reading point cloud") {
		t.Fatalf("expected a start line, got %q", out)
	}
	if !strings.Contains(out, "done    reading point cloud") {
		t.Fatalf("expected a done line, got %q", out)
	}
}

func TestFormatDurationRounds(t *testing.T) {
	got := FormatDuration(1204300 * time.Microsecond)
	if got != "1.204s" {
		t.Fatalf("expected 1.204s, got %q", got)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug": LevelDebug,
		"info":  LevelInfo,
		"Warn":  LevelWarn,
		"ERROR": LevelError,
		"":      LevelInfo,
		"bogus": LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestWarnLevelSuppressesPhaseBanners(t *testing.T) {
	var buf bytes.Buffer
	r := NewWithLevel(&buf, LevelWarn)

	done := r.Phase("reading point cloud")
	r.Info("some detail")
	done()

	if buf.Len() != 0 {
		t.Fatalf("expected no output at LevelWarn, got %q", buf.String())
	}

	r.Error("reading point cloud", errors.New("boom"))
	if !strings.Contains(buf.String(), "error   reading point cloud") {
		t.Fatalf("expected Error to print regardless of level, got %q", buf.String())
	}
}
