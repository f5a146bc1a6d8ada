package lang

import (
	"context"
	"strings"
	"testing"

	"github.com/ardnew/fjord/lang/env"
)

const benchSource = `let square = |x| $x * $x
let sum = |a b| $a + $b
let pick = |c| if $c then "yes" else "no"
pick true
sum { square 3 } { square 4 }
`

func BenchmarkParseString(b *testing.B) {
	ctx := context.Background()

	b.Run("uncached", func(b *testing.B) {
		for b.Loop() {
			if _, err := ParseString(ctx, benchSource, WithCache(false)); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("cached", func(b *testing.B) {
		ClearCache()
		b.Cleanup(ClearCache)

		for b.Loop() {
			if _, err := ParseString(ctx, benchSource); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("large", func(b *testing.B) {
		source := strings.Repeat(benchSource, 200)

		for b.Loop() {
			if _, err := ParseString(ctx, source, WithCache(false)); err != nil {
				b.Fatal(err)
			}
		}
	})
}

func BenchmarkEval(b *testing.B) {
	ctx := context.Background()

	prog, err := ParseString(ctx, benchSource)
	if err != nil {
		b.Fatal(err)
	}

	for b.Loop() {
		if _, err := prog.Eval(ctx, env.New()); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFormat(b *testing.B) {
	ctx := context.Background()

	prog, err := ParseString(ctx, benchSource)
	if err != nil {
		b.Fatal(err)
	}

	var sb strings.Builder

	b.Run("text", func(b *testing.B) {
		for b.Loop() {
			sb.Reset()

			if err := prog.Format(ctx, &sb); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("json", func(b *testing.B) {
		for b.Loop() {
			sb.Reset()

			if err := prog.FormatJSON(ctx, &sb, 2); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("yaml", func(b *testing.B) {
		for b.Loop() {
			sb.Reset()

			if err := prog.FormatYAML(ctx, &sb, 2); err != nil {
				b.Fatal(err)
			}
		}
	})
}
