// Package progress prints phase-tagged banners for the
// convert-point-cloud-to-tiles pipeline, the way the teacher's
// cmd/geo/main.go prints its own startup banner: stdlib log/fmt, no
// third-party logger.
package progress

import (
	"io"
	"log"
	"strings"
	"time"
)

// Level is a logging verbosity threshold, ordered Debug < Info < Warn < Error.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps the --log-level flag's string value to a Level, defaulting
// to LevelInfo for an empty or unrecognized value.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Reporter prints one line per pipeline phase plus its elapsed time,
// filtered by a minimum Level.
type Reporter struct {
	logger *log.Logger
	level  Level
}

// New returns a Reporter writing to w at LevelInfo, with no extra
// log.Logger prefix or flags — callers see plain phase lines, same
// register as the teacher's fmt.Printf banners.
func New(w io.Writer) *Reporter {
	return NewWithLevel(w, LevelInfo)
}

// NewWithLevel returns a Reporter writing to w, suppressing Phase/Info
// banners below level (Error always prints regardless of level).
func NewWithLevel(w io.Writer, level Level) *Reporter {
	return &Reporter{logger: log.New(w, "", 0), level: level}
}

// Phase prints a "start   <name>" line and returns a func that prints
// "done    <name> (<elapsed>)" when called. Typical use:
//
//	done := r.Phase("reading point cloud")
//	...
//	done()
//
// Both lines are suppressed when the Reporter's level is above LevelInfo.
func (r *Reporter) Phase(name string) func() {
	start := time.Now()
	if r.level <= LevelInfo {
		r.logger.Printf("start   %s", name)
	}
	return func() {
		if r.level <= LevelInfo {
			r.logger.Printf("done    %s (%s)", name, time.Since(start).Round(time.Millisecond))
		}
	}
}

// Info prints a one-off informational line, not tied to a phase, suppressed
// when the Reporter's level is above LevelInfo.
func (r *Reporter) Info(format string, args ...any) {
	if r.level <= LevelInfo {
		r.logger.Printf(format, args...)
	}
}

// Error prints a failure line; callers still return the error up the
// stack, this only reports it. Always printed, regardless of level.
func (r *Reporter) Error(phase string, err error) {
	r.logger.Printf("error   %s: %v", phase, err)
}

// FormatDuration renders d the way the pipeline's completion banner
// does, e.g. "1.204s".
func FormatDuration(d time.Duration) string {
	return d.Round(time.Millisecond).String()
}
