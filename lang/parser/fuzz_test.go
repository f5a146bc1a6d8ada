package parser

import (
	"strings"
	"testing"
	"unicode/utf8"
)

// FuzzParse checks that parsing never panics, that the tree covers the
// input exactly, and that every error lies within the input.
func FuzzParse(f *testing.F) {
	for _, s := range []string{
		"",
		"let x = 1\n$x",
		"let f = |a b| $a + $b\nf 1 2",
		"if true then 1 else 2",
		"ls -la /tmp",
		"{ 1 + 2 } * 3",
		"let 5 = 10",
		"{ | }\n1",
		"1 2 + 3 * 4 4",
		"{{{\n",
		"\"unterminated",
		"#$%^&",
		"\r\n\r\n",
		strings.Repeat("{", MaxNesting+1),
	} {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, input string) {
		if !utf8.ValidString(input) {
			t.Skip("invalid UTF-8")
		}

		out := Parse(input)

		assertCoverage(t, out.Root(), input)

		for _, e := range out.Errors() {
			if e.Range.Start < 0 || e.Range.End > len(input) || e.Range.Start > e.Range.End {
				t.Errorf("error %q has range %v outside input of length %d",
					e.Message, e.Range, len(input))
			}
		}
	})
}
