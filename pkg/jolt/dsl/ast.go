package dsl

// LhsKind distinguishes the five LHS expression variants.
type LhsKind int

const (
	LhsAt LhsKind = iota
	LhsDollar
	LhsSquare
	LhsAmp
	LhsPipes
)

// AtExpr is `@` / `@(Rhs)` / `@(Index,Rhs)`. Index is the number of levels up
// the match-context stack (0 = current frame). Rhs is always non-nil; an
// empty Rhs (no parts) means "the frame's input_value itself, no further
// lookup" — this is allowed here (unlike a leaf placement Rhs, which the
// loader rejects when empty).
type AtExpr struct {
	Index int
	Rhs   *Rhs
}

// AmpExpr is `&` / `&(x)` / `&(x,y)`: a reference to captures[y] of the
// frame x levels up.
type AmpExpr struct {
	Frame   int
	Capture int
}

// DollarExpr is `$` / `$(x)` / `$(x,y)`: same addressing as AmpExpr, but
// used where the LHS/RHS grammar calls for the Dollar variant specifically.
type DollarExpr struct {
	Frame   int
	Capture int
}

// Lhs is one parsed LHS expression — the key side of a shift spec level.
type Lhs struct {
	Kind LhsKind

	At     *AtExpr
	Dollar *DollarExpr
	Square string
	Amp    *AmpExpr

	// Pipes holds one or more alternatives; each alternative is the ordered
	// list of literal fragments surrounding its wildcards (len(fragments) ==
	// wildcard_count+1).
	Pipes [][]string
}

// RhsEntryKind distinguishes the three things that can appear inside one
// KeyPath segment of an Rhs.
type RhsEntryKind int

const (
	EntryAmp RhsEntryKind = iota
	EntryAt
	EntryKey
)

// RhsEntry is one element of a KeyPath RhsPart. Multiple entries inside a
// single KeyPath (no intervening '.') string-concatenate into one output
// path component.
type RhsEntry struct {
	Kind RhsEntryKind
	Amp  *AmpExpr
	At   *AtExpr
	Key  string
}

// IndexOpKind distinguishes how an array index inside `[...]` is computed.
type IndexOpKind int

const (
	IdxAmp IndexOpKind = iota
	IdxAt
	IdxNumber
)

// IndexOp is the (optional) contents of an IndexSegment `[...]`. A nil
// *IndexOp at the RhsPart level means the append form `[]`.
type IndexOp struct {
	Kind   IndexOpKind
	Amp    *AmpExpr
	At     *AtExpr
	Number int
}

// RhsPartKind distinguishes the two kinds of RHS path segment.
type RhsPartKind int

const (
	PartIndex RhsPartKind = iota
	PartKeyPath
)

// RhsPart is one segment of an Rhs path.
type RhsPart struct {
	Kind    RhsPartKind
	Index   *IndexOp // nil means append ("[]")
	Entries []RhsEntry
}

// Rhs is a full right-hand-side expression: an ordered list of path
// segments. An Rhs with zero Parts is syntactically valid (the spec's own
// open question); jolt's spec loader is the layer that decides whether an
// empty Rhs is acceptable at a given use site.
type Rhs struct {
	Parts []RhsPart
}
