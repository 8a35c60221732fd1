// Package errdefs defines the error kinds surfaced by the etiles pipeline.
//
// Every kind from the original Rust workspace's thiserror enums
// (etiles-core::Error, etiles-io::Error) has a sentinel here so callers can
// use errors.Is/errors.As instead of matching on strings.
package errdefs

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure by the phase that produced it.
type Kind int

const (
	// KindInvalidFileExtension means the output path extension isn't "tar".
	KindInvalidFileExtension Kind = iota
	// KindNoFileExtension means the output path has no extension at all.
	KindNoFileExtension
	// KindProjectionFailed means reprojecting a point or isometry failed.
	KindProjectionFailed
	// KindPartitionFailed means an octree-construction precondition was violated.
	KindPartitionFailed
	// KindEncodingFailed means serialization or sink I/O failed.
	KindEncodingFailed
	// KindInvalidVersion means a 3D Tiles asset version other than 1.1 was seen.
	KindInvalidVersion
	// KindAssertFailure means an internal invariant (bit-length, occupancy) was violated.
	KindAssertFailure
)

func (k Kind) String() string {
	switch k {
	case KindInvalidFileExtension:
		return "invalid file extension"
	case KindNoFileExtension:
		return "no file extension"
	case KindProjectionFailed:
		return "projection failed"
	case KindPartitionFailed:
		return "partition failed"
	case KindEncodingFailed:
		return "encoding failed"
	case KindInvalidVersion:
		return "invalid version"
	case KindAssertFailure:
		return "assertion failure"
	default:
		return "unknown"
	}
}

// Error wraps a pipeline failure with the phase-level Kind that produced it.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		if e.Msg != "" {
			return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
		}
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	if e.Msg != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error with the same Kind, so callers can
// write errors.Is(err, errdefs.New(errdefs.KindProjectionFailed, "", nil)).
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return other.Kind == e.Kind
	}
	return false
}

// New builds an *Error of the given Kind wrapping cause (which may be nil).
func New(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: cause}
}

// InvalidFileExtension reports an output path whose extension isn't "tar".
func InvalidFileExtension(ext string) *Error {
	return New(KindInvalidFileExtension, fmt.Sprintf("extension %q is invalid", ext), nil)
}

// NoFileExtension reports an output path with no extension.
func NoFileExtension() *Error {
	return New(KindNoFileExtension, "output path has no extension", nil)
}

// ProjectionFailed wraps a reprojection failure.
func ProjectionFailed(msg string, cause error) *Error {
	return New(KindProjectionFailed, msg, cause)
}

// PartitionFailed wraps an octree-construction failure.
func PartitionFailed(msg string, cause error) *Error {
	return New(KindPartitionFailed, msg, cause)
}

// EncodingFailed wraps a serialization or sink I/O failure.
func EncodingFailed(msg string, cause error) *Error {
	return New(KindEncodingFailed, msg, cause)
}

// InvalidVersion reports an unsupported 3D Tiles asset version.
func InvalidVersion(major, minor uint8) *Error {
	return New(KindInvalidVersion, fmt.Sprintf("major=%d minor=%d", major, minor), nil)
}

// AssertFailure reports a violated internal invariant; always a programming error.
func AssertFailure(msg string) *Error {
	return New(KindAssertFailure, msg, nil)
}
