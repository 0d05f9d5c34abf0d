package jolt

import orderedmap "github.com/wk8/go-ordered-map/v2"

// component X: recursive prune of keys named by spec (spec.md §4.7). A
// spec value of "" at a key removes that key; a nested object/array spec
// value recurses; anything else leaves the key untouched.

func applyRemove(input Value, spec Value) (Value, error) {
	return pruneValue(input, spec), nil
}

func pruneValue(input, spec Value) Value {
	switch spec.Kind() {
	case KindObject:
		if input.Kind() != KindObject {
			return input
		}
		cloned := orderedmap.New[string, Value]()
		for pair := input.Object().Oldest(); pair != nil; pair = pair.Next() {
			key := pair.Key
			val := pair.Value
			specVal, ok := spec.Object().Get(key)
			if !ok {
				cloned.Set(key, cloneValue(val))
				continue
			}
			if specVal.Kind() == KindString && specVal.StringValue() == "" {
				continue
			}
			if specVal.Kind() == KindObject || specVal.Kind() == KindArray {
				cloned.Set(key, pruneValue(val, specVal))
				continue
			}
			cloned.Set(key, cloneValue(val))
		}
		return Value{kind: KindObject, obj: cloned}
	case KindArray:
		if input.Kind() != KindArray {
			return input
		}
		in := input.Array()
		sp := spec.Array()
		out := make([]Value, len(in))
		for i, v := range in {
			if i < len(sp) {
				out[i] = pruneValue(v, sp[i])
			} else {
				out[i] = cloneValue(v)
			}
		}
		return Value{kind: KindArray, arr: out}
	default:
		return input
	}
}
