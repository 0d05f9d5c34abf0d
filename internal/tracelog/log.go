// Package tracelog provides the package-level DEBUG/TRACE-style logging
// helpers used throughout jolt, backed by a real structured logger instead
// of a stub. Callers never see this package directly; jolt.WithLogger is
// the public knob.
package tracelog

import "go.uber.org/zap"

var current = zap.NewNop()

// SetLogger installs the logger used by DEBUG/TRACE. Passing nil restores
// the no-op default.
func SetLogger(l *zap.Logger) {
	if l == nil {
		current = zap.NewNop()
		return
	}
	current = l
}

// DEBUG logs a debug-level event with structured fields, mirroring the
// teacher's own package-level DEBUG helper.
func DEBUG(msg string, fields ...zap.Field) {
	current.Debug(msg, fields...)
}

// TRACE logs a more granular event than DEBUG (shift-frame push, RHS
// placement) at zap's debug level with a "trace" marker field, since zap
// has no dedicated trace level.
func TRACE(msg string, fields ...zap.Field) {
	current.Debug(msg, append(fields, zap.Bool("trace", true))...)
}
