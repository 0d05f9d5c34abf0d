package jolt

import (
	"github.com/wayneeseguin/jolt/internal/tracelog"
	"go.uber.org/zap"
)

// component E: execute the ordered operation pipeline in sequence, each
// stage's output feeding the next stage's input.

func runPipeline(input Value, spec *TransformSpec) (Value, error) {
	cur := input
	for i, op := range spec.Operations {
		tracelog.DEBUG("dispatching operation", zap.Int("index", i), zap.String("kind", string(op.Kind)))
		var err error
		switch op.Kind {
		case OpShift:
			cur, err = runShift(cur, op.Shift)
		case OpDefault:
			cur, err = applyDefault(cur, op.Default)
		case OpRemove:
			cur, err = applyRemove(cur, op.Remove)
		default:
			err = newSpecError("unknown operation kind in pipeline: " + string(op.Kind))
		}
		if err != nil {
			return Value{}, err
		}
	}
	return cur, nil
}
