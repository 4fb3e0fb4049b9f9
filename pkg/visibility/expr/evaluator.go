// Package expr compiles the small boolean language used by a field's
// visibleWhen rule.
//
// Supported forms:
//   - truthiness: `cnpj` (non-empty value)
//   - comparisons: `cliente_tipo == "juridica"`, `bill_date != 10`, `flag == true`
//   - composition: `!a`, `a && b`, `a || (b && c)`
//
// Identifiers name field ids. Every value is a string; comparisons against
// number and bool literals coerce the field value first.
package expr

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrSyntax wraps every compile error.
var ErrSyntax = errors.New("visibility/expr: syntax error")

// Program is a compiled rule. It is immutable and safe for concurrent use.
type Program struct {
	source string
	root   node
	fields []string
}

// Compile parses rule. An empty rule compiles to a program that is always
// true.
func Compile(rule string) (*Program, error) {
	source := strings.TrimSpace(rule)
	p := &Program{source: source}
	if source == "" {
		return p, nil
	}

	tokens, err := lex(source)
	if err != nil {
		return nil, err
	}
	parser := &parser{tokens: tokens}
	root, err := parser.parseOr()
	if err != nil {
		return nil, err
	}
	if tok, ok := parser.peek(); ok {
		return nil, fmt.Errorf("%w: unexpected %q in %q", ErrSyntax, tok.raw, source)
	}
	p.root = root
	p.fields = parser.identifiers()
	return p, nil
}

// MustCompile is Compile for rules known at build time.
func MustCompile(rule string) *Program {
	p, err := Compile(rule)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the rule source.
func (p *Program) String() string { return p.source }

// Fields returns the sorted field ids the rule reads.
func (p *Program) Fields() []string {
	return append([]string(nil), p.fields...)
}

// Eval runs the program against values. Missing fields read as empty.
func (p *Program) Eval(values map[string]string) bool {
	if p == nil || p.root == nil {
		return true
	}
	return p.root.eval(values)
}

type tokenKind int

const (
	tokIdent tokenKind = iota
	tokString
	tokNumber
	tokBool
	tokEq
	tokNeq
	tokAnd
	tokOr
	tokNot
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	raw  string
}

type lexer struct {
	input  string
	pos    int
	tokens []token
}

func lex(input string) ([]token, error) {
	l := &lexer{input: input}
	for l.pos < len(l.input) {
		if err := l.next(); err != nil {
			return nil, err
		}
	}
	return l.tokens, nil
}

func (l *lexer) emit(kind tokenKind, raw string) {
	l.tokens = append(l.tokens, token{kind: kind, raw: raw})
}

// pair consumes a two-character operator whose first character is at pos.
func (l *lexer) pair(second byte) bool {
	if l.pos+1 < len(l.input) && l.input[l.pos+1] == second {
		l.pos += 2
		return true
	}
	return false
}

func (l *lexer) next() error {
	ch := l.input[l.pos]
	switch {
	case isSpace(ch):
		l.pos++
	case ch == '(':
		l.pos++
		l.emit(tokLParen, "(")
	case ch == ')':
		l.pos++
		l.emit(tokRParen, ")")
	case ch == '!':
		if l.pair('=') {
			l.emit(tokNeq, "!=")
			return nil
		}
		l.pos++
		l.emit(tokNot, "!")
	case ch == '=':
		if !l.pair('=') {
			return fmt.Errorf("%w: single '=' at %d, use '=='", ErrSyntax, l.pos)
		}
		l.emit(tokEq, "==")
	case ch == '&':
		if !l.pair('&') {
			return fmt.Errorf("%w: single '&' at %d, use '&&'", ErrSyntax, l.pos)
		}
		l.emit(tokAnd, "&&")
	case ch == '|':
		if !l.pair('|') {
			return fmt.Errorf("%w: single '|' at %d, use '||'", ErrSyntax, l.pos)
		}
		l.emit(tokOr, "||")
	case ch == '"' || ch == '\'':
		return l.quoted(ch)
	default:
		l.word()
	}
	return nil
}

func (l *lexer) quoted(quote byte) error {
	start := l.pos
	l.pos++
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case '\\':
			l.pos += 2
			continue
		case quote:
			l.pos++
			body := l.input[start+1 : l.pos-1]
			if quote == '\'' {
				body = strings.ReplaceAll(body, `"`, `\"`)
				body = strings.ReplaceAll(body, `\'`, `'`)
			}
			value, err := strconv.Unquote(`"` + body + `"`)
			if err != nil {
				return fmt.Errorf("%w: bad string literal %s", ErrSyntax, l.input[start:l.pos])
			}
			l.emit(tokString, value)
			return nil
		}
		l.pos++
	}
	return fmt.Errorf("%w: unterminated string at %d", ErrSyntax, start)
}

func (l *lexer) word() {
	start := l.pos
	for l.pos < len(l.input) && !isSpace(l.input[l.pos]) && !strings.ContainsRune("()!=&|\"'", rune(l.input[l.pos])) {
		l.pos++
	}
	raw := l.input[start:l.pos]
	switch lower := strings.ToLower(raw); {
	case lower == "true" || lower == "false":
		l.emit(tokBool, lower)
	case raw[0] == '-' || raw[0] == '+' || (raw[0] >= '0' && raw[0] <= '9'):
		l.emit(tokNumber, raw)
	default:
		l.emit(tokIdent, raw)
	}
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

type parser struct {
	tokens []token
	pos    int
	seen   map[string]struct{}
}

func (p *parser) peek() (token, bool) {
	if p.pos >= len(p.tokens) {
		return token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *parser) accept(kind tokenKind) (token, bool) {
	tok, ok := p.peek()
	if !ok || tok.kind != kind {
		return token{}, false
	}
	p.pos++
	return tok, true
}

func (p *parser) identifiers() []string {
	out := make([]string, 0, len(p.seen))
	for id := range p.seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (p *parser) parseOr() (node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.accept(tokOr); !ok {
			return left, nil
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = orNode{left, right}
	}
}

func (p *parser) parseAnd() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.accept(tokAnd); !ok {
			return left, nil
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = andNode{left, right}
	}
}

func (p *parser) parseUnary() (node, error) {
	if _, ok := p.accept(tokNot); ok {
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return notNode{inner}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (node, error) {
	if _, ok := p.accept(tokLParen); ok {
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if _, ok := p.accept(tokRParen); !ok {
			return nil, fmt.Errorf("%w: missing ')'", ErrSyntax)
		}
		return inner, nil
	}

	ident, ok := p.accept(tokIdent)
	if !ok {
		if tok, more := p.peek(); more {
			return nil, fmt.Errorf("%w: expected field id, got %q", ErrSyntax, tok.raw)
		}
		return nil, fmt.Errorf("%w: unexpected end of rule", ErrSyntax)
	}
	if p.seen == nil {
		p.seen = make(map[string]struct{})
	}
	p.seen[ident.raw] = struct{}{}

	for _, op := range []tokenKind{tokEq, tokNeq} {
		if _, ok := p.accept(op); !ok {
			continue
		}
		lit, err := p.literal()
		if err != nil {
			return nil, err
		}
		return compareNode{field: ident.raw, negate: op == tokNeq, lit: lit}, nil
	}
	return truthyNode{field: ident.raw}, nil
}

func (p *parser) literal() (token, error) {
	tok, ok := p.peek()
	if !ok {
		return token{}, fmt.Errorf("%w: missing value after comparison", ErrSyntax)
	}
	p.pos++
	switch tok.kind {
	case tokString, tokBool:
		return tok, nil
	case tokNumber:
		if _, err := strconv.ParseFloat(tok.raw, 64); err != nil {
			return token{}, fmt.Errorf("%w: bad number %q", ErrSyntax, tok.raw)
		}
		return tok, nil
	case tokIdent:
		// bare words compare as strings
		return token{kind: tokString, raw: tok.raw}, nil
	default:
		return token{}, fmt.Errorf("%w: expected value, got %q", ErrSyntax, tok.raw)
	}
}

type node interface {
	eval(values map[string]string) bool
}

type orNode struct{ left, right node }

func (n orNode) eval(values map[string]string) bool {
	return n.left.eval(values) || n.right.eval(values)
}

type andNode struct{ left, right node }

func (n andNode) eval(values map[string]string) bool {
	return n.left.eval(values) && n.right.eval(values)
}

type notNode struct{ inner node }

func (n notNode) eval(values map[string]string) bool {
	return !n.inner.eval(values)
}

type truthyNode struct{ field string }

func (n truthyNode) eval(values map[string]string) bool {
	return strings.TrimSpace(values[n.field]) != ""
}

type compareNode struct {
	field  string
	negate bool
	lit    token
}

func (n compareNode) eval(values map[string]string) bool {
	got := strings.TrimSpace(values[n.field])
	var equal bool
	switch n.lit.kind {
	case tokBool:
		parsed, err := strconv.ParseBool(got)
		if err != nil {
			parsed = got != ""
		}
		equal = parsed == (n.lit.raw == "true")
	case tokNumber:
		want, _ := strconv.ParseFloat(n.lit.raw, 64)
		parsed, err := strconv.ParseFloat(got, 64)
		equal = err == nil && parsed == want
	default:
		equal = got == n.lit.raw
	}
	return equal != n.negate
}
