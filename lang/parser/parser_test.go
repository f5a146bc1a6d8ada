package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/fjord/lang/syntax"
)

func golden(s string) string { return strings.TrimSpace(s) }

func TestParse_Trees(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "nothing",
			input: "",
			want:  `Root@0..0`,
		},
		{
			name:  "subtraction is left associative",
			input: "10 - 5 - 3 - 2",
			want: `
Root@0..14
  BinOp@0..14
    BinOp@0..11
      BinOp@0..7
        Digits@0..2 "10"
        Whitespace@2..3 " "
        Minus@3..4 "-"
        Whitespace@4..5 " "
        Digits@5..6 "5"
        Whitespace@6..7 " "
      Minus@7..8 "-"
      Whitespace@8..9 " "
      Digits@9..10 "3"
      Whitespace@10..11 " "
    Minus@11..12 "-"
    Whitespace@12..13 " "
    Digits@13..14 "2"`,
		},
		{
			name:  "multiplication binds tighter",
			input: "2 + 3 * 4",
			want: `
Root@0..9
  BinOp@0..9
    Digits@0..1 "2"
    Whitespace@1..2 " "
    Plus@2..3 "+"
    Whitespace@3..4 " "
    BinOp@4..9
      Digits@4..5 "3"
      Whitespace@5..6 " "
      Star@6..7 "*"
      Whitespace@7..8 " "
      Digits@8..9 "4"`,
		},
		{
			name:  "binding usage",
			input: "$hello",
			want: `
Root@0..6
  BindingUsage@0..6
    Dollar@0..1 "$"
    Atom@1..6 "hello"`,
		},
		{
			name:  "function call",
			input: "ls $dir\n",
			want: `
Root@0..8
  FunctionCall@0..7
    Atom@0..2 "ls"
    Whitespace@2..3 " "
    FunctionCallParams@3..7
      BindingUsage@3..7
        Dollar@3..4 "$"
        Atom@4..7 "dir"
  Eol@7..8 "\n"`,
		},
		{
			name:  "function call without arguments",
			input: "pwd",
			want: `
Root@0..3
  FunctionCall@0..3
    Atom@0..3 "pwd"
    FunctionCallParams@3..3`,
		},
		{
			name:  "lambda",
			input: "|a b| $a",
			want: `
Root@0..8
  Lambda@0..8
    LambdaParams@0..5
      Pipe@0..1 "|"
      Atom@1..2 "a"
      Whitespace@2..3 " "
      Atom@3..4 "b"
      Pipe@4..5 "|"
    Whitespace@5..6 " "
    BindingUsage@6..8
      Dollar@6..7 "$"
      Atom@7..8 "a"`,
		},
		{
			name:  "if expression",
			input: "if true then 1 else 2",
			want: `
Root@0..21
  If@0..21
    If@0..2 "if"
    Whitespace@2..3 " "
    True@3..7 "true"
    Whitespace@7..8 " "
    Then@8..12 "then"
    Whitespace@12..13 " "
    Digits@13..14 "1"
    Whitespace@14..15 " "
    Else@15..19 "else"
    Whitespace@19..20 " "
    Digits@20..21 "2"`,
		},
		{
			name:  "binding definition",
			input: "let a = \"b\"",
			want: `
Root@0..11
  BindingDef@0..11
    Let@0..3 "let"
    Whitespace@3..4 " "
    Atom@4..5 "a"
    Whitespace@5..6 " "
    Equals@6..7 "="
    Whitespace@7..8 " "
    StringLiteral@8..11 "\"b\""`,
		},
		{
			name:  "block",
			input: "{\n1\n}",
			want: `
Root@0..5
  Block@0..5
    LBrace@0..1 "{"
    Eol@1..2 "\n"
    Digits@2..3 "1"
    Eol@3..4 "\n"
    RBrace@4..5 "}"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Parse(tt.input)

			assert.Empty(t, out.Errors())
			assert.Equal(t, golden(tt.want), out.DebugTree())
		})
	}
}

func TestParse_Recovery(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		errs  []SyntaxError
	}{
		{
			name:  "number as binding name",
			input: "let 5 = 10",
			want: `
Root@0..10
  BindingDef@0..10
    Let@0..3 "let"
    Whitespace@3..4 " "
    Error@4..5 "5"
    Whitespace@5..6 " "
    Equals@6..7 "="
    Whitespace@7..8 " "
    Digits@8..10 "10"`,
			errs: []SyntaxError{
				{Message: "expected binding name", Range: syntax.Range{Start: 4, End: 5}},
			},
		},
		{
			name:  "keyword as binding usage",
			input: "$let",
			want: `
Root@0..4
  BindingUsage@0..4
    Dollar@0..1 "$"
    Error@1..4 "let"`,
			errs: []SyntaxError{
				{Message: "expected atom", Range: syntax.Range{Start: 1, End: 4}},
			},
		},
		{
			name:  "unclosed lambda parameters",
			input: "|a",
			want: `
Root@0..2
  Lambda@0..2
    LambdaParams@0..2
      Pipe@0..1 "|"
      Atom@1..2 "a"`,
			errs: []SyntaxError{
				{Message: "expected atom or pipe", Range: syntax.Range{Start: 2, End: 2}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Parse(tt.input)

			assert.Equal(t, golden(tt.want), out.DebugTree())
			assert.Equal(t, tt.errs, out.Errors())
		})
	}
}

func TestParse_ErrorMessages(t *testing.T) {
	tests := []struct {
		input   string
		message string
		rng     syntax.Range
	}{
		{"1 2", "expected operator", syntax.Range{Start: 2, End: 3}},
		{"1 +", "expected expression", syntax.Range{Start: 3, End: 3}},
		{"{ 1", "expected closing brace", syntax.Range{Start: 3, End: 3}},
		{"a }", "expected end of line", syntax.Range{Start: 2, End: 3}},
		{"let x = 1 ::", "expected operator", syntax.Range{Start: 10, End: 12}},
		{"$ x", "expected atom", syntax.Range{Start: 1, End: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			out := Parse(tt.input)

			require.NotEmpty(t, out.Errors())
			assert.True(t, out.HasErrors())
			assert.Equal(t, tt.message, out.Errors()[0].Message)
			assert.Equal(t, tt.rng, out.Errors()[0].Range)
		})
	}
}

func TestParse_BlankLinesBetweenItems(t *testing.T) {
	out := Parse("let a = 1\n\n\n$a\n")

	assert.Empty(t, out.Errors())

	var kinds []syntax.Kind
	for n := range out.Root().Nodes() {
		kinds = append(kinds, n.Kind())
	}

	assert.Equal(t, []syntax.Kind{syntax.BindingDef, syntax.BindingUsage}, kinds)
}

func TestParse_ErrorsDoNotStopLaterLines(t *testing.T) {
	out := Parse("let = \nlet b = 2")

	require.NotEmpty(t, out.Errors())

	var defs int
	for n := range out.Root().Nodes() {
		if n.Kind() == syntax.BindingDef {
			defs++
		}
	}

	assert.Equal(t, 2, defs)
}

// assertCoverage checks that root spans the whole input and that every node
// covers exactly the span of its children, which follow one another without
// gaps or overlaps.
func assertCoverage(t *testing.T, root *syntax.Node, input string) {
	t.Helper()

	assert.Equal(t, input, root.Text())
	assert.Equal(t, syntax.Range{Start: 0, End: len(input)}, root.Range())

	var walk func(n *syntax.Node)

	walk = func(n *syntax.Node) {
		pos := n.Range().Start

		for el := range n.Elements() {
			if !assert.Equal(t, pos, el.Range().Start, "%s@%s child %s", n.Kind(), n.Range(), el.Kind()) {
				return
			}

			pos = el.Range().End

			if child, ok := el.(*syntax.Node); ok {
				walk(child)
			}
		}

		assert.Equal(t, n.Range().End, pos, "%s@%s ends past its children", n.Kind(), n.Range())
	}

	walk(root)
}

// Every input, well formed or not, must round trip through the tree.
func TestParse_Lossless(t *testing.T) {
	inputs := []string{
		"",
		"\n\n",
		"let x = 1 + 2 * 3\n$x",
		"let 5 = 10",
		"$let",
		"let = = =",
		"1 2 3 4",
		"if then else",
		"if 1 then { 2 else",
		"{ { { }",
		"}}}",
		"|a b 1| | |",
		"ls -la ~/src # comment?\n\n",
		"echo \"unterminated\n",
		"émoji ☃ and \x01 control",
		"a :: b = c $ | { } + - * /",
		"f ",
		"{ | }\n1",
		"1 2 + 3 * 4 4",
		"{{{\n",
		"if f then |x| { $x\n} else g 1 2 + 3",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			root := Parse(input).Root()

			assert.Equal(t, syntax.Root, root.Kind())
			assertCoverage(t, root, input)

			for _, n := range root.Descendants() {
				assert.NotEqual(t, syntax.Item, n.Kind())
				assert.NotEqual(t, syntax.Expr, n.Kind())
			}
		})
	}
}

func TestParse_DeepNesting(t *testing.T) {
	const n = 10_000

	tests := []struct {
		name   string
		input  string
		at     int // offset of the first lexeme nested too deeply
		errors int
	}{
		{
			name:   "blocks",
			input:  strings.Repeat("{", n) + "1" + strings.Repeat("}", n),
			at:     MaxNesting,
			errors: 1,
		},
		{
			name:   "block arguments",
			input:  strings.Repeat("f {", n) + strings.Repeat("}", n) + "\nlet x = 1",
			at:     3 * MaxNesting,
			errors: 1,
		},
		{
			name:   "lambdas",
			input:  strings.Repeat("|a| ", n) + "$a",
			at:     4 * MaxNesting,
			errors: 1,
		},
		{
			name:  "conditions",
			input: strings.Repeat("if ", n) + "true" + strings.Repeat(" then 1 else 2", n),
			at:    3 * MaxNesting,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Parse(tt.input)

			assertCoverage(t, out.Root(), tt.input)

			errs := out.Errors()
			require.NotEmpty(t, errs)
			assert.Equal(t, "nesting too deep", errs[0].Message)
			assert.Equal(t, tt.at, errs[0].Range.Start)

			if tt.errors > 0 {
				assert.Len(t, errs, tt.errors)
			}
		})
	}
}

func TestParse_NestingWithinLimit(t *testing.T) {
	input := strings.Repeat("{", MaxNesting-1) + "1" + strings.Repeat("}", MaxNesting-1)

	out := Parse(input)

	assert.False(t, out.HasErrors())
	assertCoverage(t, out.Root(), input)
}

// An unclosed parameter list stops at the closing brace of its block, so
// the next line is parsed on its own.
func TestParse_UnclosedLambdaInBlock(t *testing.T) {
	out := Parse("{ | }\nlet a = 1")

	assert.Equal(t, []SyntaxError{
		{Message: "expected atom or pipe", Range: syntax.Range{Start: 4, End: 5}},
	}, out.Errors())

	assert.Equal(t, golden(`
Root@0..15
  Block@0..5
    LBrace@0..1 "{"
    Whitespace@1..2 " "
    Lambda@2..4
      LambdaParams@2..4
        Pipe@2..3 "|"
        Whitespace@3..4 " "
    RBrace@4..5 "}"
  Eol@5..6 "\n"
  BindingDef@6..15
    Let@6..9 "let"
    Whitespace@9..10 " "
    Atom@10..11 "a"
    Whitespace@11..12 " "
    Equals@12..13 "="
    Whitespace@13..14 " "
    Digits@14..15 "1"
`), golden(out.DebugTree()))
}
