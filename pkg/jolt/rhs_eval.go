package jolt

import (
	"strconv"
	"strings"

	"github.com/wayneeseguin/jolt/internal/tracelog"
	"github.com/wayneeseguin/jolt/pkg/jolt/dsl"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"go.uber.org/zap"
)

// component R: resolve an Rhs into an output path, then place a value
// there, honoring autovivification, collision and shape-mismatch rules
// (spec.md §4.5).

type segKind int

const (
	segKey segKind = iota
	segIndex
	segAppend
)

type pathSeg struct {
	kind segKind
	key  string
	idx  int
}

// resolveAmp returns captures[amp.Capture] of the frame amp.Frame levels up.
func resolveAmp(amp *dsl.AmpExpr, ctx *MatchContext) (string, error) {
	frame, err := ctx.FrameAt(amp.Frame)
	if err != nil {
		return "", err
	}
	return frame.CaptureAt(amp.Capture)
}

// resolveAt dereferences an At expression: take the input_value of the
// frame at.Index levels up, then resolve at.Rhs against it as a sequence of
// key/index lookups (an empty at.Rhs yields that input_value unchanged).
func resolveAt(at *dsl.AtExpr, ctx *MatchContext) (Value, error) {
	frame, err := ctx.FrameAt(at.Index)
	if err != nil {
		return Value{}, err
	}
	return resolveLookupPath(at.Rhs, ctx, frame.InputValue)
}

func resolveLookupPath(rhs *dsl.Rhs, ctx *MatchContext, val Value) (Value, error) {
	cur := val
	path := &outputPath{}
	for _, part := range rhs.Parts {
		switch part.Kind {
		case dsl.PartKeyPath:
			key, err := resolveEntriesToString(part.Entries, ctx)
			if err != nil {
				return Value{}, err
			}
			path.pushKey(key)
			if cur.Kind() != KindObject {
				return Value{}, newShapeMismatchError(path.String(), "expected an object to look up key "+strconv.Quote(key)+", found "+cur.Kind().String())
			}
			v, ok := cur.Object().Get(key)
			if !ok {
				return Value{}, newKeyNotFoundError(path.String(), key)
			}
			cur = v
		case dsl.PartIndex:
			if part.Index == nil {
				return Value{}, newSpecError("'[]' (append) cannot appear inside a value lookup path")
			}
			idx, err := resolveIndexOp(part.Index, ctx)
			if err != nil {
				return Value{}, err
			}
			path.pushIndex(idx)
			if cur.Kind() != KindArray {
				return Value{}, newShapeMismatchError(path.String(), "expected an array to index, found "+cur.Kind().String())
			}
			arr := cur.Array()
			if idx < 0 || idx >= len(arr) {
				return Value{}, newIndexOutOfRangeError(path.String(), idx, len(arr))
			}
			cur = arr[idx]
		}
	}
	return cur, nil
}

func resolveEntriesToString(entries []dsl.RhsEntry, ctx *MatchContext) (string, error) {
	var sb strings.Builder
	for _, e := range entries {
		switch e.Kind {
		case dsl.EntryKey:
			sb.WriteString(e.Key)
		case dsl.EntryAmp:
			s, err := resolveAmp(e.Amp, ctx)
			if err != nil {
				return "", err
			}
			sb.WriteString(s)
		case dsl.EntryAt:
			v, err := resolveAt(e.At, ctx)
			if err != nil {
				return "", err
			}
			if v.Kind() != KindString {
				return "", newShapeMismatchError("", "'@' used in key position did not resolve to a string, found "+v.Kind().String())
			}
			sb.WriteString(v.StringValue())
		}
	}
	return sb.String(), nil
}

func resolveIndexOp(op *dsl.IndexOp, ctx *MatchContext) (int, error) {
	switch op.Kind {
	case dsl.IdxNumber:
		return op.Number, nil
	case dsl.IdxAmp:
		s, err := resolveAmp(op.Amp, ctx)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return 0, newNotAnIntegerError("", "'&' index expression did not resolve to a non-negative integer: "+strconv.Quote(s))
		}
		return n, nil
	case dsl.IdxAt:
		v, err := resolveAt(op.At, ctx)
		if err != nil {
			return 0, err
		}
		n, ok := v.AsInt()
		if !ok {
			return 0, newNotAnIntegerError("", "'@' index expression did not resolve to a non-negative integer")
		}
		return n, nil
	}
	return 0, newNotAnIntegerError("", "unknown index expression kind")
}

// resolvePathSegments turns an Rhs's path segments into pathSeg values plus
// a human-readable path string for error messages.
func resolvePathSegments(rhs *dsl.Rhs, ctx *MatchContext) ([]pathSeg, string, error) {
	segs := make([]pathSeg, 0, len(rhs.Parts))
	path := &outputPath{}
	for _, part := range rhs.Parts {
		switch part.Kind {
		case dsl.PartKeyPath:
			key, err := resolveEntriesToString(part.Entries, ctx)
			if err != nil {
				return nil, "", err
			}
			path.pushKey(key)
			segs = append(segs, pathSeg{kind: segKey, key: key})
		case dsl.PartIndex:
			if part.Index == nil {
				path.pushAppend()
				segs = append(segs, pathSeg{kind: segAppend})
				continue
			}
			idx, err := resolveIndexOp(part.Index, ctx)
			if err != nil {
				return nil, "", err
			}
			path.pushIndex(idx)
			segs = append(segs, pathSeg{kind: segIndex, idx: idx})
		}
	}
	return segs, path.String(), nil
}

// placeRec rebuilds the tree from cur down to the terminal write, returning
// the updated value for this level (the caller re-attaches it to its
// parent, since Object is a pointer but Array is not).
func placeRec(cur Value, segments []pathSeg, value Value, path string) (Value, error) {
	if len(segments) == 0 {
		if cur.Kind() != KindNull {
			return Value{}, newCollisionError(path)
		}
		return value, nil
	}

	seg := segments[0]
	rest := segments[1:]

	switch seg.kind {
	case segKey:
		var obj *Object
		switch cur.Kind() {
		case KindNull:
			obj = orderedmap.New[string, Value]()
		case KindObject:
			obj = cur.Object()
		default:
			return Value{}, newShapeMismatchError(path, "expected an object, found "+cur.Kind().String())
		}
		existing, ok := obj.Get(seg.key)
		if !ok {
			existing = Null()
		}
		updated, err := placeRec(existing, rest, value, path)
		if err != nil {
			return Value{}, err
		}
		obj.Set(seg.key, updated)
		return Value{kind: KindObject, obj: obj}, nil

	case segIndex:
		var arr []Value
		switch cur.Kind() {
		case KindNull:
			arr = nil
		case KindArray:
			arr = cur.Array()
		default:
			return Value{}, newShapeMismatchError(path, "expected an array, found "+cur.Kind().String())
		}
		for len(arr) <= seg.idx {
			arr = append(arr, Null())
		}
		updated, err := placeRec(arr[seg.idx], rest, value, path)
		if err != nil {
			return Value{}, err
		}
		arr[seg.idx] = updated
		return Value{kind: KindArray, arr: arr}, nil

	case segAppend:
		var arr []Value
		switch cur.Kind() {
		case KindNull:
			arr = nil
		case KindArray:
			arr = cur.Array()
		default:
			return Value{}, newShapeMismatchError(path, "expected an array, found "+cur.Kind().String())
		}
		updated, err := placeRec(Null(), rest, value, path)
		if err != nil {
			return Value{}, err
		}
		arr = append(arr, updated)
		return Value{kind: KindArray, arr: arr}, nil
	}
	panic("unreachable path segment kind")
}

// evalAndPlace resolves rhs against ctx, clones value defensively, and
// writes it into *root at the resolved path.
func evalAndPlace(root *Value, rhs *dsl.Rhs, ctx *MatchContext, value Value) error {
	segs, path, err := resolvePathSegments(rhs, ctx)
	if err != nil {
		return err
	}
	updated, err := placeRec(*root, segs, cloneValue(value), path)
	if err != nil {
		return err
	}
	tracelog.TRACE("rhs placement", zap.String("path", path))
	*root = updated
	return nil
}
