package jolt

// # Overview
//
// jolt applies a declarative JSON spec — an ordered pipeline of shift,
// default and remove operations — to an input JSON value and produces a
// new output value. shift is the workhorse: its spec is itself a JSON
// object whose keys are small path-pattern expressions (package dsl) and
// whose string leaves describe where matched values land in the output.
//
// # Quick Start
//
//	spec, err := jolt.ParseSpec(specJSON)
//	var input jolt.Value
//	json.Unmarshal(inputJSON, &input)
//	out, err := jolt.Transform(input, spec)
