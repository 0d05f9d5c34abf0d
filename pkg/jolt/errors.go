package jolt

import (
	"fmt"
)

// ErrorKind is one of the nine error kinds this engine reports.
type ErrorKind string

const (
	KindParseError        ErrorKind = "parse_error"
	KindSpecError         ErrorKind = "spec_error"
	KindKeyNotFound       ErrorKind = "key_not_found"
	KindIndexOutOfRange   ErrorKind = "index_out_of_range"
	KindFrameOutOfRange   ErrorKind = "frame_out_of_range"
	KindCaptureOutOfRange ErrorKind = "capture_out_of_range"
	KindCollision         ErrorKind = "collision"
	KindShapeMismatch     ErrorKind = "shape_mismatch"
	KindNotAnInteger      ErrorKind = "not_an_integer"
)

// JoltError is the single error type this engine returns. Path, where
// known, is a dotted rendering of the output (or lookup) location involved.
type JoltError struct {
	Kind    ErrorKind
	Message string
	Path    string
	Cause   error
}

func (e *JoltError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s at %s: %s", e.Kind, e.Path, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *JoltError) Unwrap() error { return e.Cause }

func newParseError(cause error) *JoltError {
	return &JoltError{Kind: KindParseError, Message: cause.Error(), Cause: cause}
}

func newSpecError(msg string) *JoltError {
	return &JoltError{Kind: KindSpecError, Message: msg}
}

func newKeyNotFoundError(path, key string) *JoltError {
	return &JoltError{Kind: KindKeyNotFound, Path: path, Message: fmt.Sprintf("key %q not found", key)}
}

func newIndexOutOfRangeError(path string, idx, length int) *JoltError {
	return &JoltError{Kind: KindIndexOutOfRange, Path: path, Message: fmt.Sprintf("index %d out of range (length %d)", idx, length)}
}

func newFrameOutOfRangeError(levelsUp int) *JoltError {
	return &JoltError{Kind: KindFrameOutOfRange, Message: fmt.Sprintf("no frame %d levels up", levelsUp)}
}

func newCaptureOutOfRangeError(i int) *JoltError {
	return &JoltError{Kind: KindCaptureOutOfRange, Message: fmt.Sprintf("no capture at index %d", i)}
}

func newCollisionError(path string) *JoltError {
	return &JoltError{Kind: KindCollision, Path: path, Message: "a non-null value already occupies this location"}
}

func newShapeMismatchError(path, msg string) *JoltError {
	return &JoltError{Kind: KindShapeMismatch, Path: path, Message: msg}
}

func newNotAnIntegerError(path, msg string) *JoltError {
	return &JoltError{Kind: KindNotAnInteger, Path: path, Message: msg}
}

// wrapParseError lifts a dsl.ParseError into a *JoltError, matching the
// teacher's layering where a lower-level syntax error is wrapped by the
// higher-level domain error.
func wrapParseError(err error) *JoltError {
	if err == nil {
		return nil
	}
	return newParseError(err)
}
