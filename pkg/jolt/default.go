package jolt

// component D: recursive merge of spec into input wherever input is
// absent (spec.md §4.6). Input values always win; spec only fills gaps.

func applyDefault(input Value, spec Value) (Value, error) {
	return mergeDefault(input, spec), nil
}

func mergeDefault(input, spec Value) Value {
	if spec.Kind() != KindObject || input.Kind() != KindObject {
		return input
	}
	cloned := cloneObject(input.Object())
	for pair := spec.Object().Oldest(); pair != nil; pair = pair.Next() {
		key := pair.Key
		specVal := pair.Value
		existing, ok := cloned.Get(key)
		if !ok {
			cloned.Set(key, cloneValue(specVal))
			continue
		}
		cloned.Set(key, mergeDefaultValue(existing, specVal))
	}
	return Value{kind: KindObject, obj: cloned}
}

func mergeDefaultValue(existing, specVal Value) Value {
	if existing.Kind() == KindObject && specVal.Kind() == KindObject {
		return mergeDefault(existing, specVal)
	}
	if existing.Kind() == KindArray && specVal.Kind() == KindArray {
		return mergeDefaultArray(existing, specVal)
	}
	return existing
}

func mergeDefaultArray(input, spec Value) Value {
	in := input.Array()
	sp := spec.Array()
	out := make([]Value, len(in))
	copy(out, in)
	for i, sv := range sp {
		if i < len(out) {
			out[i] = mergeDefaultValue(out[i], sv)
		} else {
			out = append(out, cloneValue(sv))
		}
	}
	return Value{kind: KindArray, arr: out}
}
