// Package parser builds lossless fjord syntax trees.
//
// Parsing never fails outright. Malformed input is recorded as a
// [SyntaxError] and the offending lexeme is kept in the tree as a
// [syntax.Error] token, so a single bad line never prevents the rest of the
// file from being parsed.
package parser

import (
	"fmt"
	"slices"

	"github.com/ardnew/fjord/lang/lexer"
	"github.com/ardnew/fjord/lang/syntax"
)

// SyntaxError describes one recoverable parse failure.
type SyntaxError struct {
	Message string       `json:"message" yaml:"message"`
	Range   syntax.Range `json:"range"   yaml:"range"`
}

// Error implements the error interface.
func (e SyntaxError) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Range)
}

// Output is the result of parsing: a tree covering the entire input and the
// syntax errors found along the way.
type Output struct {
	root   *syntax.Node
	errors []SyntaxError
}

// Root returns the root node of the syntax tree. Its kind is always
// [syntax.Root].
func (o *Output) Root() *syntax.Node { return o.root }

// Errors returns the syntax errors in the order they were found.
func (o *Output) Errors() []SyntaxError { return slices.Clone(o.errors) }

// HasErrors reports whether any syntax error was recorded.
func (o *Output) HasErrors() bool { return len(o.errors) > 0 }

// DebugTree renders the syntax tree with [syntax.Debug].
func (o *Output) DebugTree() string { return syntax.Debug(o.root) }

// Parser drives a [syntax.Builder] from a lexeme stream.
type Parser struct {
	lexemes []lexer.Lexeme
	pos     int
	end     int // byte length of the input
	builder syntax.Builder
	errors  []SyntaxError
	depth   int // expressions currently open
}

// MaxNesting is how deeply expressions may nest. Anything nested deeper is
// reported once and kept in the tree as error tokens, which bounds the
// recursion of the parser and of everything that walks its trees.
const MaxNesting = 1000

// New returns a Parser over input.
func New(input string) *Parser {
	return &Parser{
		lexemes: lexer.Lex(input),
		end:     len(input),
	}
}

// Parse parses input in full.
func Parse(input string) *Output {
	return New(input).Parse()
}

// Parse consumes the whole input:
//
//	Root := (Item Eol)* Item?
//
// Blank lines between items are allowed.
func (p *Parser) Parse() *Output {
	p.builder.StartNode(syntax.Root)
	p.skipWhitespaceAndEol()

	for !p.atEnd() {
		p.parseItem()
		p.skipWhitespace()

		kind, ok := p.peek()

		switch {
		case !ok:
		case kind == syntax.Eol:
			p.skipWhitespaceAndEol()
		default:
			p.error("expected end of line")
			p.skipWhitespace()
		}
	}

	p.builder.FinishNode()

	return &Output{
		root:   p.builder.Finish(),
		errors: p.errors,
	}
}

func (p *Parser) peek() (syntax.Kind, bool) {
	if p.pos >= len(p.lexemes) {
		return 0, false
	}

	return p.lexemes[p.pos].Kind, true
}

func (p *Parser) at(kind syntax.Kind) bool {
	k, ok := p.peek()

	return ok && k == kind
}

func (p *Parser) atEnd() bool { return p.pos >= len(p.lexemes) }

func (p *Parser) atEndOrEol() bool { return p.atEnd() || p.at(syntax.Eol) }

// atExprEnd reports whether the current lexeme closes whatever expression is
// being parsed: end of input, end of line, or a token that belongs to an
// enclosing block or conditional.
func (p *Parser) atExprEnd() bool {
	kind, ok := p.peek()
	if !ok {
		return true
	}

	switch kind {
	case syntax.Eol, syntax.RBrace, syntax.Then, syntax.Else:
		return true
	}

	return false
}

// bump moves the current lexeme into the tree unchanged.
func (p *Parser) bump() {
	lx := p.lexemes[p.pos]
	p.pos++

	p.builder.Token(lx.Kind, lx.Text)
}

func (p *Parser) skip(kinds ...syntax.Kind) {
	for {
		kind, ok := p.peek()
		if !ok || !slices.Contains(kinds, kind) {
			return
		}

		p.bump()
	}
}

func (p *Parser) skipWhitespace() { p.skip(syntax.Whitespace) }

func (p *Parser) skipWhitespaceAndEol() { p.skip(syntax.Whitespace, syntax.Eol) }

// currentRange is the range of the current lexeme, or an empty range at the
// end of input.
func (p *Parser) currentRange() syntax.Range {
	if p.atEnd() {
		return syntax.Range{Start: p.end, End: p.end}
	}

	return p.lexemes[p.pos].Range
}

// report records an error at the current lexeme without consuming it.
func (p *Parser) report(message string) {
	p.errors = append(p.errors, SyntaxError{
		Message: message,
		Range:   p.currentRange(),
	})
}

// error records an error at the current lexeme and consumes that lexeme as a
// [syntax.Error] token, unless the parser is at the end of a line or of the
// input.
func (p *Parser) error(message string) {
	p.report(message)

	if p.atEndOrEol() {
		return
	}

	lx := p.lexemes[p.pos]
	p.pos++

	p.builder.Token(syntax.Error, lx.Text)
}

// expect bumps the current lexeme if it has the given kind and records an
// error otherwise.
func (p *Parser) expect(kind syntax.Kind, message string) {
	if p.at(kind) {
		p.bump()

		return
	}

	p.error(message)
}
