package jolt

import (
	"encoding/json"
	"fmt"

	"github.com/wayneeseguin/jolt/internal/tracelog"
	"github.com/wayneeseguin/jolt/pkg/jolt/dsl"
	"go.uber.org/zap"
)

// OperationKind is one of the three pipeline operation names.
type OperationKind string

const (
	OpShift   OperationKind = "shift"
	OpDefault OperationKind = "default"
	OpRemove  OperationKind = "remove"
)

// Operation is one typed, parsed stage of a pipeline.
type Operation struct {
	Kind    OperationKind
	Shift   *PatternNode
	Default Value
	Remove  Value
}

// TransformSpec is the parsed, immutable pipeline built by ParseSpec. It is
// safe to share across goroutines and reuse across calls to Transform: a
// transform call never mutates spec state (§5 concurrency model).
type TransformSpec struct {
	Operations []Operation
}

// PatternEntry is one key/value pair of a shift spec level: the parsed LHS
// key, and either a nested PatternNode (Sub) or a leaf Rhs.
type PatternEntry struct {
	Lhs  *dsl.Lhs
	Sub  *PatternNode
	Leaf *dsl.Rhs
}

// PatternNode is one level of the shift pattern tree, entries kept in the
// spec JSON's original key order (invariant: "keys preserve their original
// order from the spec JSON").
type PatternNode struct {
	Entries []PatternEntry
}

// ParseSpec parses the outer pipeline document (spec.md §6): either a
// single {"operation":...,"spec":...} object, or a JSON array of them.
func ParseSpec(raw []byte) (*TransformSpec, error) {
	var root Value
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, newSpecError(fmt.Sprintf("invalid spec JSON: %v", err))
	}

	var opsValues []Value
	switch root.Kind() {
	case KindArray:
		opsValues = root.Array()
	case KindObject:
		opsValues = []Value{root}
	default:
		return nil, newSpecError("spec document must be a JSON object or array of objects")
	}

	spec := &TransformSpec{}
	for i, ov := range opsValues {
		op, err := parseOperation(ov)
		if err != nil {
			if je, ok := err.(*JoltError); ok {
				je.Message = fmt.Sprintf("operation %d: %s", i, je.Message)
				return nil, je
			}
			return nil, err
		}
		spec.Operations = append(spec.Operations, op)
	}
	tracelog.DEBUG("spec parsed", zap.Int("operations", len(spec.Operations)))
	return spec, nil
}

func parseOperation(v Value) (Operation, error) {
	if v.Kind() != KindObject {
		return Operation{}, newSpecError("each pipeline entry must be a JSON object")
	}
	obj := v.Object()

	opVal, ok := obj.Get("operation")
	if !ok || opVal.Kind() != KindString {
		return Operation{}, newSpecError(`pipeline entry is missing a string "operation" field`)
	}
	specVal, ok := obj.Get("spec")
	if !ok {
		return Operation{}, newSpecError(`pipeline entry is missing a "spec" field`)
	}

	switch OperationKind(opVal.StringValue()) {
	case OpShift:
		pattern, err := parsePatternNode(specVal)
		if err != nil {
			return Operation{}, err
		}
		return Operation{Kind: OpShift, Shift: pattern}, nil
	case OpDefault:
		return Operation{Kind: OpDefault, Default: specVal}, nil
	case OpRemove:
		return Operation{Kind: OpRemove, Remove: specVal}, nil
	default:
		return Operation{}, newSpecError(fmt.Sprintf("unknown operation %q", opVal.StringValue()))
	}
}

func parsePatternNode(v Value) (*PatternNode, error) {
	if v.Kind() != KindObject {
		return nil, newSpecError("a shift spec level must be a JSON object")
	}
	node := &PatternNode{}
	for pair := v.Object().Oldest(); pair != nil; pair = pair.Next() {
		lhs, err := dsl.ParseLhs(pair.Key)
		if err != nil {
			return nil, wrapParseError(err)
		}
		entry := PatternEntry{Lhs: lhs}
		switch pair.Value.Kind() {
		case KindObject:
			sub, err := parsePatternNode(pair.Value)
			if err != nil {
				return nil, err
			}
			entry.Sub = sub
		case KindString:
			rhs, err := dsl.ParseRhs(pair.Value.StringValue())
			if err != nil {
				return nil, wrapParseError(err)
			}
			if len(rhs.Parts) == 0 {
				return nil, newSpecError(fmt.Sprintf("key %q: empty RHS is not a valid write target", pair.Key))
			}
			entry.Leaf = rhs
		default:
			return nil, newSpecError(fmt.Sprintf("key %q: shift leaf must be a string RHS expression", pair.Key))
		}
		node.Entries = append(node.Entries, entry)
	}
	return node, nil
}
