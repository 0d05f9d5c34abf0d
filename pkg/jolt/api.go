// Package jolt implements a JSON-to-JSON structural transformation engine
// driven by a declarative JSON specification: an ordered pipeline of
// shift/default/remove operations rewriting an input value into an output
// value.
package jolt

import (
	"encoding/json"

	"github.com/wayneeseguin/jolt/internal/tracelog"
	"go.uber.org/zap"
)

// Options configures a single Transform call; built up via With* functions.
type Options struct {
	logger *zap.Logger
}

// Option mutates Options.
type Option func(*Options)

// WithLogger routes this engine's internal debug/trace events to l. Without
// it, logging is a no-op.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) { o.logger = l }
}

// Transform executes spec's operation pipeline against input and returns
// the resulting value.
func Transform(input Value, spec *TransformSpec, opts ...Option) (Value, error) {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger != nil {
		tracelog.SetLogger(o.logger)
		defer tracelog.SetLogger(nil)
	}
	return runPipeline(input, spec)
}

// TransformBytes is the byte-oriented convenience wrapper: unmarshal input
// JSON, run the pipeline, marshal the result back to JSON.
func TransformBytes(input []byte, spec *TransformSpec, opts ...Option) ([]byte, error) {
	var v Value
	if err := json.Unmarshal(input, &v); err != nil {
		return nil, newSpecError("invalid input JSON: " + err.Error())
	}
	out, err := Transform(v, spec, opts...)
	if err != nil {
		return nil, err
	}
	return json.Marshal(out)
}
