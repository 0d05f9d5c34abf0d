package dsl

import (
	"fmt"
	"strings"
)

// escapeKey backslash-escapes any character from the 12-symbol alphabet (or
// a literal backslash) so the returned text reparses as a single literal
// KEY_CHUNK rather than as control syntax.
func escapeKey(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if strings.ContainsRune(specialChars, r) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// FormatLhs renders an Lhs back into canonical DSL source text. Sugared
// forms (bare `@`, `&`, `$`) are used whenever their indices are the
// defaults, matching the shortest valid spelling.
func FormatLhs(l *Lhs) string {
	switch l.Kind {
	case LhsAt:
		return formatAt(l.At)
	case LhsDollar:
		return formatNumTuple("$", l.Dollar.Frame, l.Dollar.Capture)
	case LhsSquare:
		return "#" + escapeKey(l.Square)
	case LhsAmp:
		return formatAmp(l.Amp)
	case LhsPipes:
		alts := make([]string, len(l.Pipes))
		for i, frags := range l.Pipes {
			escaped := make([]string, len(frags))
			for j, f := range frags {
				escaped[j] = escapeKey(f)
			}
			alts[i] = strings.Join(escaped, "*")
		}
		return strings.Join(alts, "|")
	}
	return ""
}

// FormatRhs renders an Rhs back into canonical DSL source text.
func FormatRhs(r *Rhs) string {
	var sb strings.Builder
	for i, part := range r.Parts {
		switch part.Kind {
		case PartIndex:
			sb.WriteString(formatIndexSegment(part.Index))
		case PartKeyPath:
			if i > 0 {
				sb.WriteByte('.')
			}
			sb.WriteString(formatEntries(part.Entries))
		}
	}
	return sb.String()
}

func formatAt(a *AtExpr) string {
	inner := FormatRhs(a.Rhs)
	if a.Index == 0 && inner == "" {
		return "@"
	}
	if a.Index == 0 {
		return "@(" + inner + ")"
	}
	return fmt.Sprintf("@(%d,%s)", a.Index, inner)
}

func formatAmp(a *AmpExpr) string { return formatNumTuple("&", a.Frame, a.Capture) }

func formatNumTuple(sigil string, frame, capture int) string {
	if frame == 0 && capture == 0 {
		return sigil
	}
	if capture == 0 {
		return fmt.Sprintf("%s(%d)", sigil, frame)
	}
	return fmt.Sprintf("%s(%d,%d)", sigil, frame, capture)
}

func formatIndexSegment(op *IndexOp) string {
	if op == nil {
		return "[]"
	}
	switch op.Kind {
	case IdxNumber:
		return fmt.Sprintf("[%d]", op.Number)
	case IdxAmp:
		return "[" + formatAmp(op.Amp) + "]"
	case IdxAt:
		return "[" + formatAt(op.At) + "]"
	}
	return "[]"
}

func formatEntries(entries []RhsEntry) string {
	var sb strings.Builder
	for _, e := range entries {
		switch e.Kind {
		case EntryAmp:
			sb.WriteString(formatAmp(e.Amp))
		case EntryAt:
			sb.WriteString(formatAt(e.At))
		case EntryKey:
			sb.WriteString(escapeKey(e.Key))
		}
	}
	return sb.String()
}
