// Package lexer splits fjord source text into a flat sequence of lexemes.
//
// The lexer is total and lossless: every input byte belongs to exactly one
// lexeme, characters no rule recognizes become [syntax.Error] lexemes, and
// concatenating the text of all lexemes reproduces the input.
package lexer

import (
	"iter"
	"strings"

	"github.com/macrat/simplexer"

	"github.com/ardnew/fjord/lang/syntax"
)

// Lexeme is a single classified run of source text.
type Lexeme struct {
	Kind  syntax.Kind
	Text  string
	Range syntax.Range
}

// rules is the token table in priority order; the first matching rule wins.
// Keywords are word-bounded so that identifiers such as "letter" remain
// atoms.
var rules = []struct {
	kind    syntax.Kind
	pattern string
}{
	{syntax.Eol, `\r?\n`},
	{syntax.Whitespace, `[ \t]+`},
	{syntax.Let, `let\b`},
	{syntax.If, `if\b`},
	{syntax.Then, `then\b`},
	{syntax.Else, `else\b`},
	{syntax.True, `true\b`},
	{syntax.False, `false\b`},
	{syntax.Atom, `[A-Za-z_][A-Za-z0-9_]*`},
	{syntax.Digits, `[0-9]+`},
	{syntax.StringLiteral, `"[^"\n]*"`},
	{syntax.DoubleColon, `::`},
	{syntax.Equals, `=`},
	{syntax.Pipe, `\|`},
	{syntax.Dollar, `\$`},
	{syntax.Plus, `\+`},
	{syntax.Minus, `-`},
	{syntax.Star, `\*`},
	{syntax.Slash, `/`},
	{syntax.LBrace, `\{`},
	{syntax.RBrace, `\}`},
	// Anything else is consumed one character at a time.
	{syntax.Error, `(?s).`},
}

func tokenTypes() []simplexer.TokenType {
	types := make([]simplexer.TokenType, 0, len(rules))

	for _, r := range rules {
		types = append(types,
			simplexer.NewRegexpTokenType(simplexer.TokenID(r.kind), r.pattern))
	}

	return types
}

// Lexer produces lexemes from a source string.
type Lexer struct {
	scanner *simplexer.Lexer
	offset  int
	err     error
}

// New returns a Lexer over input.
func New(input string) *Lexer {
	s := simplexer.NewLexer(strings.NewReader(input))

	// Whitespace is significant to the syntax tree, so nothing is skipped.
	s.Whitespace = nil
	s.TokenTypes = tokenTypes()

	return &Lexer{scanner: s}
}

// Next returns the next lexeme. It reports false at end of input.
func (l *Lexer) Next() (Lexeme, bool) {
	if l.err != nil {
		return Lexeme{}, false
	}

	tok, err := l.scanner.Scan()
	if err != nil {
		// The catch-all rule matches any character, so only a failing reader
		// ends up here.
		l.err = err

		return Lexeme{}, false
	}

	if tok == nil {
		return Lexeme{}, false
	}

	return l.emit(syntax.Kind(tok.Type.GetID()), tok.Literal), true
}

// Err returns the read error that stopped the lexer, if any.
func (l *Lexer) Err() error { return l.err }

func (l *Lexer) emit(kind syntax.Kind, text string) Lexeme {
	end := l.offset + len(text)
	lx := Lexeme{
		Kind:  kind,
		Text:  text,
		Range: syntax.Range{Start: l.offset, End: end},
	}
	l.offset = end

	return lx
}

// All returns an iterator over every lexeme of l.
func (l *Lexer) All() iter.Seq[Lexeme] {
	return func(yield func(Lexeme) bool) {
		for {
			lx, ok := l.Next()
			if !ok || !yield(lx) {
				return
			}
		}
	}
}

// Lex returns every lexeme of input.
func Lex(input string) []Lexeme {
	lexemes := make([]Lexeme, 0, len(input)/2+1)

	for lx := range New(input).All() {
		lexemes = append(lexemes, lx)
	}

	return lexemes
}
