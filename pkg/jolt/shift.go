package jolt

import (
	"strconv"
	"strings"

	"github.com/wayneeseguin/jolt/internal/tracelog"
	"github.com/wayneeseguin/jolt/pkg/jolt/dsl"
	"go.uber.org/zap"
)

// component W: the recursive shift walker (spec.md §4.4).

func runShift(input Value, node *PatternNode) (Value, error) {
	out := NewObject()
	ctx := NewMatchContext(input)
	if err := walkLevel(&out, node, ctx, input); err != nil {
		return Value{}, err
	}
	return out, nil
}

func walkLevel(out *Value, node *PatternNode, ctx *MatchContext, v Value) error {
	var infallible, fallible []PatternEntry
	for _, e := range node.Entries {
		switch e.Lhs.Kind {
		case dsl.LhsAt, dsl.LhsDollar, dsl.LhsSquare:
			infallible = append(infallible, e)
		case dsl.LhsAmp, dsl.LhsPipes:
			fallible = append(fallible, e)
		}
	}

	for _, e := range infallible {
		frame, err := computeInfallibleFrame(e.Lhs, ctx)
		if err != nil {
			return err
		}
		tracelog.TRACE("push infallible frame", zap.String("matched_key", frame.MatchedKey))
		ctx.Push(frame)
		if e.Sub != nil {
			err = walkLevel(out, e.Sub, ctx, frame.InputValue)
		} else {
			err = evalAndPlace(out, e.Leaf, ctx, frame.InputValue)
		}
		ctx.Pop()
		if err != nil {
			return err
		}
	}

	keys, values := orderedKeysAndValues(v)
	if len(fallible) == 0 || keys == nil {
		return nil
	}

	ampTargets := make([]string, len(fallible))
	for i, e := range fallible {
		if e.Lhs.Kind == dsl.LhsAmp {
			s, err := resolveAmp(e.Lhs.Amp, ctx)
			if err != nil {
				return err
			}
			ampTargets[i] = s
		}
	}

	for ki, k := range keys {
		elem := values[ki]
		for i, e := range fallible {
			captures, ok := matchFallible(e.Lhs, k, ampTargets[i])
			if !ok {
				continue
			}
			frame := Frame{MatchedKey: k, Captures: captures, InputValue: elem}
			tracelog.TRACE("push fallible frame", zap.String("matched_key", k))
			ctx.Push(frame)
			var err error
			if e.Sub != nil {
				err = walkLevel(out, e.Sub, ctx, elem)
			} else {
				err = evalAndPlace(out, e.Leaf, ctx, elem)
			}
			ctx.Pop()
			if err != nil {
				return err
			}
			break
		}
	}
	return nil
}

// computeInfallibleFrame builds the frame for an @/$/# entry. Each of these
// produces a value to route and, like a fallible match, pushes exactly one
// frame around its descend/write so nested &/$ references can address it
// by frame offset.
func computeInfallibleFrame(lhs *dsl.Lhs, ctx *MatchContext) (Frame, error) {
	switch lhs.Kind {
	case dsl.LhsAt:
		frame, err := ctx.FrameAt(lhs.At.Index)
		if err != nil {
			return Frame{}, err
		}
		resolved, err := resolveLookupPath(lhs.At.Rhs, ctx, frame.InputValue)
		if err != nil {
			return Frame{}, err
		}
		return Frame{MatchedKey: "", Captures: []string{""}, InputValue: resolved}, nil
	case dsl.LhsDollar:
		frame, err := ctx.FrameAt(lhs.Dollar.Frame)
		if err != nil {
			return Frame{}, err
		}
		s, err := frame.CaptureAt(lhs.Dollar.Capture)
		if err != nil {
			return Frame{}, err
		}
		return Frame{MatchedKey: s, Captures: []string{s}, InputValue: String(s)}, nil
	case dsl.LhsSquare:
		return Frame{MatchedKey: lhs.Square, Captures: []string{lhs.Square}, InputValue: String(lhs.Square)}, nil
	}
	return Frame{}, newSpecError("not an infallible LHS kind")
}

// matchFallible reports whether key k matches a fallible (&/Pipes) LHS, and
// if so its captures (captures[0] == k always).
func matchFallible(lhs *dsl.Lhs, k string, ampTarget string) ([]string, bool) {
	switch lhs.Kind {
	case dsl.LhsPipes:
		for _, alt := range lhs.Pipes {
			if caps, ok := matchStars(alt, k); ok {
				return caps, true
			}
		}
		return nil, false
	case dsl.LhsAmp:
		if ampTarget == k {
			return []string{k}, true
		}
		return nil, false
	}
	return nil, false
}

// matchStars implements the leftmost-earliest wildcard matching rule: k
// must start with fragments[0] and end with fragments[n], interior
// fragments must appear in order after the earliest possible point, and
// every wildcard capture (when n>=1) must be non-empty.
func matchStars(fragments []string, k string) ([]string, bool) {
	n := len(fragments) - 1
	if n == 0 {
		if fragments[0] == k {
			return []string{k}, true
		}
		return nil, false
	}
	if !strings.HasPrefix(k, fragments[0]) {
		return nil, false
	}
	pos := len(fragments[0])
	caps := make([]string, n)
	for i := 1; i < n; i++ {
		frag := fragments[i]
		rel := strings.Index(k[pos:], frag)
		if rel <= 0 {
			return nil, false
		}
		caps[i-1] = k[pos : pos+rel]
		pos += rel + len(frag)
	}
	suffix := fragments[n]
	end := len(k) - len(suffix)
	if end < pos {
		return nil, false
	}
	if k[end:] != suffix {
		return nil, false
	}
	last := k[pos:end]
	if last == "" {
		return nil, false
	}
	caps[n-1] = last

	out := make([]string, 0, n+1)
	out = append(out, k)
	out = append(out, caps...)
	return out, true
}

// orderedKeysAndValues generalizes "iterate its keys in input order" to
// arrays: an array's keys, for matching purposes, are its 0-based indices
// stringified in order. Returns nil, nil for any other kind of v.
func orderedKeysAndValues(v Value) ([]string, []Value) {
	switch v.Kind() {
	case KindObject:
		if v.Object() == nil {
			return []string{}, []Value{}
		}
		keys := make([]string, 0, v.Object().Len())
		vals := make([]Value, 0, v.Object().Len())
		for pair := v.Object().Oldest(); pair != nil; pair = pair.Next() {
			keys = append(keys, pair.Key)
			vals = append(vals, pair.Value)
		}
		return keys, vals
	case KindArray:
		arr := v.Array()
		keys := make([]string, len(arr))
		for i := range arr {
			keys[i] = strconv.Itoa(i)
		}
		return keys, arr
	default:
		return nil, nil
	}
}
