package template

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Formula expressions are parsed once at template load into a small tree
// and evaluated after topological ordering.
//
// Grammar:
//   expression → term (('+' | '-') term)*
//   term       → factor (('*' | '/') factor)*
//   factor     → NUMBER | IDENT | '-' factor | '(' expression ')'
//
// Identifiers reference other line ids; numbers are decimal constants.

// Lookup returns the already-computed value of a line, or false when the
// line has no value yet.
type Lookup func(id string) (decimal.Decimal, bool)

// Expr is a parsed formula expression.
type Expr interface {
	Eval(lookup Lookup) (decimal.Decimal, error)
	collectRefs(refs map[string]bool)
}

// Refs returns the line ids an expression references, sorted.
func Refs(e Expr) []string {
	set := make(map[string]bool)
	e.collectRefs(set)
	refs := make([]string, 0, len(set))
	for id := range set {
		refs = append(refs, id)
	}
	sort.Strings(refs)
	return refs
}

type litExpr struct {
	value decimal.Decimal
}

func (e litExpr) Eval(Lookup) (decimal.Decimal, error) { return e.value, nil }
func (e litExpr) collectRefs(map[string]bool)          {}

type refExpr struct {
	id string
}

func (e refExpr) Eval(lookup Lookup) (decimal.Decimal, error) {
	v, ok := lookup(e.id)
	if !ok {
		return decimal.Zero, fmt.Errorf("line %s has no value", e.id)
	}
	return v, nil
}

func (e refExpr) collectRefs(refs map[string]bool) { refs[e.id] = true }

type negExpr struct {
	inner Expr
}

func (e negExpr) Eval(lookup Lookup) (decimal.Decimal, error) {
	v, err := e.inner.Eval(lookup)
	if err != nil {
		return decimal.Zero, err
	}
	return v.Neg(), nil
}

func (e negExpr) collectRefs(refs map[string]bool) { e.inner.collectRefs(refs) }

type binaryExpr struct {
	op          byte
	left, right Expr
}

func (e binaryExpr) Eval(lookup Lookup) (decimal.Decimal, error) {
	left, err := e.left.Eval(lookup)
	if err != nil {
		return decimal.Zero, err
	}
	right, err := e.right.Eval(lookup)
	if err != nil {
		return decimal.Zero, err
	}
	switch e.op {
	case '+':
		return left.Add(right), nil
	case '-':
		return left.Sub(right), nil
	case '*':
		return left.Mul(right), nil
	default:
		if right.IsZero() {
			return decimal.Zero, fmt.Errorf("division by zero")
		}
		return left.Div(right), nil
	}
}

func (e binaryExpr) collectRefs(refs map[string]bool) {
	e.left.collectRefs(refs)
	e.right.collectRefs(refs)
}

// ParseFormula parses a formula expression string.
func ParseFormula(src string) (Expr, error) {
	p := &exprParser{src: src}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos < len(p.src) {
		return nil, fmt.Errorf("unexpected %q at offset %d", p.src[p.pos], p.pos)
	}
	return expr, nil
}

type exprParser struct {
	src string
	pos int
}

func (p *exprParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *exprParser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *exprParser) parseExpression() (Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		op := p.peek()
		if op != '+' && op != '-' {
			return left, nil
		}
		p.pos++
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = binaryExpr{op: op, left: left, right: right}
	}
}

func (p *exprParser) parseTerm() (Expr, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for {
		op := p.peek()
		if op != '*' && op != '/' {
			return left, nil
		}
		p.pos++
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = binaryExpr{op: op, left: left, right: right}
	}
}

func (p *exprParser) parseFactor() (Expr, error) {
	switch c := p.peek(); {
	case c == '(':
		p.pos++
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if p.peek() != ')' {
			return nil, fmt.Errorf("expected ')' at offset %d", p.pos)
		}
		p.pos++
		return expr, nil

	case c == '-':
		p.pos++
		inner, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return negExpr{inner: inner}, nil

	case c >= '0' && c <= '9':
		return p.parseNumber()

	case isIdentStart(c):
		return p.parseIdent(), nil

	case c == 0:
		return nil, fmt.Errorf("unexpected end of formula")

	default:
		return nil, fmt.Errorf("unexpected %q at offset %d", c, p.pos)
	}
}

func (p *exprParser) parseNumber() (Expr, error) {
	start := p.pos
	for p.pos < len(p.src) && (p.src[p.pos] >= '0' && p.src[p.pos] <= '9' || p.src[p.pos] == '.') {
		p.pos++
	}
	d, err := decimal.NewFromString(p.src[start:p.pos])
	if err != nil {
		return nil, fmt.Errorf("invalid number %q: %w", p.src[start:p.pos], err)
	}
	return litExpr{value: d}, nil
}

func (p *exprParser) parseIdent() Expr {
	start := p.pos
	for p.pos < len(p.src) && isIdentPart(p.src[p.pos]) {
		p.pos++
	}
	return refExpr{id: p.src[start:p.pos]}
}

func isIdentStart(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || c >= '0' && c <= '9'
}
