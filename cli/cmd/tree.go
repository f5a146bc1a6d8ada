package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/fjord/lang"
)

// Tree prints the lossless syntax tree of a script. Malformed scripts are
// printed too, with their errors reported separately.
type Tree struct {
	Format string `default:"text" enum:"text,json,yaml" help:"Output format (${enum})." short:"f"`
	Indent int    `default:"2"                          help:"Indent width for json and yaml; 0 for compact output." short:"i"`
	File   string `arg:"" default:"-"                   help:"Script file, or '-' for stdin."`
}

// Run executes the tree command.
func (t *Tree) Run(ctx context.Context) error {
	scripts, err := loadScripts(ctx, []string{t.File})
	if err != nil {
		return err
	}

	s := scripts[0]

	prog, perr := lang.ParseString(ctx, s.text, langOptions(ctx)...)
	if perr != nil {
		report(stderr(ctx), s, perr)
	}

	w := stdout(ctx)

	switch t.Format {
	case "text":
		err = prog.Format(ctx, w)
	case "json":
		err = prog.FormatJSON(ctx, w, t.Indent)
	case "yaml":
		err = prog.FormatYAML(ctx, w, t.Indent)
	default:
		return ErrInvalidFormat.With(slog.String("format", t.Format))
	}

	if err != nil {
		return ErrWriteOutput.Wrap(err).With(slog.String("format", t.Format))
	}

	return nil
}
