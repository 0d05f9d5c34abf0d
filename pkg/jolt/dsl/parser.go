package dsl

import "strconv"

// parser walks a token stream with one token of lookahead (plus the extra
// peek parseAtExpr needs to disambiguate its two tuple forms).
type parser struct {
	tokens []Token
	pos    int
}

func (p *parser) peek() Token { return p.tokens[p.pos] }

func (p *parser) peekAt(offset int) Token {
	idx := p.pos + offset
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // TEOF
	}
	return p.tokens[idx]
}

func (p *parser) advance() Token {
	t := p.tokens[p.pos]
	if t.Type != TEOF {
		p.pos++
	}
	return t
}

func (p *parser) expect(tt TokenType) (Token, error) {
	if p.peek().Type != tt {
		return Token{}, &ParseError{
			Position: p.peek().Pos,
			Kind:     ErrUnbalancedParen,
			Message:  "expected " + tt.String() + ", found " + p.peek().Type.String(),
		}
	}
	return p.advance(), nil
}

// ParseLhs parses one LHS expression from a spec object key.
func ParseLhs(input string) (*Lhs, error) {
	lx := Lex(input)
	if lx.unterminated {
		return nil, &ParseError{Position: lx.unterminatedAt, Kind: ErrUnterminatedEscape, Message: "trailing backslash has nothing to escape"}
	}
	p := &parser{tokens: lx.tokens}
	lhs, err := p.parseLhs()
	if err != nil {
		return nil, err
	}
	if p.peek().Type != TEOF {
		return nil, errUnexpected(p.peek().Pos, "unexpected trailing content in LHS")
	}
	return lhs, nil
}

// ParseRhs parses one RHS expression from a spec string leaf (or from the
// argument of an At expression).
func ParseRhs(input string) (*Rhs, error) {
	lx := Lex(input)
	if lx.unterminated {
		return nil, &ParseError{Position: lx.unterminatedAt, Kind: ErrUnterminatedEscape, Message: "trailing backslash has nothing to escape"}
	}
	p := &parser{tokens: lx.tokens}
	rhs, err := p.parseRhsInner()
	if err != nil {
		return nil, err
	}
	if p.peek().Type != TEOF {
		return nil, errUnexpected(p.peek().Pos, "unexpected trailing content in RHS")
	}
	return rhs, nil
}

func (p *parser) parseLhs() (*Lhs, error) {
	switch p.peek().Type {
	case TAt:
		at, err := p.parseAtExpr()
		if err != nil {
			return nil, err
		}
		return &Lhs{Kind: LhsAt, At: at}, nil
	case TDollar:
		d, err := p.parseDollarExpr()
		if err != nil {
			return nil, err
		}
		return &Lhs{Kind: LhsDollar, Dollar: d}, nil
	case THash:
		p.advance()
		if p.peek().Type != TChunk {
			return nil, &ParseError{Position: p.peek().Pos, Kind: ErrExpectedKey, Message: "expected literal key after '#'"}
		}
		key := p.advance().Value
		return &Lhs{Kind: LhsSquare, Square: key}, nil
	case TAmp:
		a, err := p.parseAmpTuple()
		if err != nil {
			return nil, err
		}
		return &Lhs{Kind: LhsAmp, Amp: a}, nil
	case TChunk, TStar:
		return p.parsePipes()
	default:
		return nil, errUnexpected(p.peek().Pos, "unexpected token at start of LHS")
	}
}

// parseAtExpr handles all three forms: bare `@`, `@(Rhs)`, `@(Index,Rhs)`.
func (p *parser) parseAtExpr() (*AtExpr, error) {
	p.advance() // consume '@'
	if p.peek().Type != TLParen {
		return &AtExpr{Index: 0, Rhs: &Rhs{}}, nil
	}
	p.advance() // consume '('

	// Disambiguate the two-argument form: it starts with an all-digit chunk
	// immediately followed by a comma.
	if p.peek().Type == TChunk && isAllDigits(p.peek().Value) && p.peekAt(1).Type == TComma {
		idx, err := p.parseIndexNumber()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TComma); err != nil {
			return nil, err
		}
		rhs, err := p.parseRhsInner()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TRParen); err != nil {
			return nil, err
		}
		return &AtExpr{Index: idx, Rhs: rhs}, nil
	}

	rhs, err := p.parseRhsInner()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TRParen); err != nil {
		return nil, err
	}
	return &AtExpr{Index: 0, Rhs: rhs}, nil
}

func (p *parser) parseDollarExpr() (*DollarExpr, error) {
	p.advance() // consume '$'
	if p.peek().Type != TLParen {
		return &DollarExpr{Frame: 0, Capture: 0}, nil
	}
	x, y, err := p.parseNumTupleBody()
	if err != nil {
		return nil, err
	}
	return &DollarExpr{Frame: x, Capture: y}, nil
}

func (p *parser) parseAmpTuple() (*AmpExpr, error) {
	p.advance() // consume '&'
	if p.peek().Type != TLParen {
		return &AmpExpr{Frame: 0, Capture: 0}, nil
	}
	x, y, err := p.parseNumTupleBody()
	if err != nil {
		return nil, err
	}
	return &AmpExpr{Frame: x, Capture: y}, nil
}

// parseNumTupleBody parses `(Index)` or `(Index,Index)` — the caller has
// only peeked the '(' (its TLParen check); this consumes the '(' and
// everything through the matching ')'.
func (p *parser) parseNumTupleBody() (int, int, error) {
	p.advance() // consume '('
	x, err := p.parseIndexNumber()
	if err != nil {
		return 0, 0, err
	}
	y := 0
	if p.peek().Type == TComma {
		p.advance()
		y, err = p.parseIndexNumber()
		if err != nil {
			return 0, 0, err
		}
	}
	if _, err := p.expect(TRParen); err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func (p *parser) parseIndexNumber() (int, error) {
	if p.peek().Type != TChunk {
		return 0, &ParseError{Position: p.peek().Pos, Kind: ErrExpectedNumber, Message: "expected a non-negative integer"}
	}
	tok := p.advance()
	if !isAllDigits(tok.Value) {
		return 0, &ParseError{Position: tok.Pos, Kind: ErrExpectedNumber, Message: "expected a non-negative integer, found " + strconv.Quote(tok.Value)}
	}
	n, err := strconv.Atoi(tok.Value)
	if err != nil {
		return 0, &ParseError{Position: tok.Pos, Kind: ErrExpectedNumber, Message: "integer out of range: " + strconv.Quote(tok.Value)}
	}
	return n, nil
}

func (p *parser) parseStars() ([]string, error) {
	frags := []string{}
	if p.peek().Type == TChunk {
		frags = append(frags, p.advance().Value)
	} else {
		frags = append(frags, "")
	}
	for p.peek().Type == TStar {
		p.advance()
		if p.peek().Type == TChunk {
			frags = append(frags, p.advance().Value)
		} else {
			frags = append(frags, "")
		}
	}
	return frags, nil
}

func (p *parser) parsePipes() (*Lhs, error) {
	alts := [][]string{}
	frags, err := p.parseStars()
	if err != nil {
		return nil, err
	}
	alts = append(alts, frags)
	for p.peek().Type == TPipe {
		p.advance()
		frags, err := p.parseStars()
		if err != nil {
			return nil, err
		}
		alts = append(alts, frags)
	}
	return &Lhs{Kind: LhsPipes, Pipes: alts}, nil
}

// parseRhsInner parses a full Rhs. It is used both for top-level RHS
// strings and for the Rhs embedded inside an At expression's parens, where
// an empty result (zero Parts) is a legal "identity" Rhs.
func (p *parser) parseRhsInner() (*Rhs, error) {
	parts := []RhsPart{}

	if p.peek().Type == TLBracket {
		part, err := p.parseIndexSegment()
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	} else {
		entries, err := p.parseRhsEntries()
		if err != nil {
			return nil, err
		}
		if len(entries) > 0 {
			parts = append(parts, RhsPart{Kind: PartKeyPath, Entries: entries})
		}
	}

	for {
		switch p.peek().Type {
		case TLBracket:
			part, err := p.parseIndexSegment()
			if err != nil {
				return nil, err
			}
			parts = append(parts, part)
		case TDot:
			p.advance()
			entries, err := p.parseRhsEntries()
			if err != nil {
				return nil, err
			}
			parts = append(parts, RhsPart{Kind: PartKeyPath, Entries: entries})
		default:
			return &Rhs{Parts: parts}, nil
		}
	}
}

func (p *parser) parseRhsEntries() ([]RhsEntry, error) {
	entries := []RhsEntry{}
	for {
		switch p.peek().Type {
		case TAmp:
			a, err := p.parseAmpTuple()
			if err != nil {
				return nil, err
			}
			entries = append(entries, RhsEntry{Kind: EntryAmp, Amp: a})
		case TAt:
			at, err := p.parseAtExpr()
			if err != nil {
				return nil, err
			}
			entries = append(entries, RhsEntry{Kind: EntryAt, At: at})
		case TChunk:
			entries = append(entries, RhsEntry{Kind: EntryKey, Key: p.advance().Value})
		default:
			return entries, nil
		}
	}
}

func (p *parser) parseIndexSegment() (RhsPart, error) {
	p.advance() // consume '['
	if p.peek().Type == TRBracket {
		p.advance()
		return RhsPart{Kind: PartIndex, Index: nil}, nil
	}
	op, err := p.parseIndexOp()
	if err != nil {
		return RhsPart{}, err
	}
	if _, err := p.expect(TRBracket); err != nil {
		return RhsPart{}, err
	}
	return RhsPart{Kind: PartIndex, Index: op}, nil
}

func (p *parser) parseIndexOp() (*IndexOp, error) {
	switch p.peek().Type {
	case TAmp:
		a, err := p.parseAmpTuple()
		if err != nil {
			return nil, err
		}
		return &IndexOp{Kind: IdxAmp, Amp: a}, nil
	case TAt:
		at, err := p.parseAtExpr()
		if err != nil {
			return nil, err
		}
		return &IndexOp{Kind: IdxAt, At: at}, nil
	case TChunk:
		n, err := p.parseIndexNumber()
		if err != nil {
			return nil, err
		}
		return &IndexOp{Kind: IdxNumber, Number: n}, nil
	default:
		return nil, errUnexpected(p.peek().Pos, "expected an index expression inside '[...]'")
	}
}
