package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/fjord/lang"
	"github.com/ardnew/fjord/log"
)

// Check parses scripts without evaluating them and reports every syntax
// error found.
type Check struct {
	Files []string `arg:"" help:"Script files, or '-' for stdin." optional:""`
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) error {
	scripts, err := loadScripts(ctx, c.Files)
	if err != nil {
		return err
	}

	failed, total := 0, 0

	for _, s := range scripts {
		prog, err := lang.ParseString(ctx, s.text, langOptions(ctx)...)
		if err == nil {
			log.DebugContext(ctx, "script ok", slog.String("script", s.name))

			continue
		}

		report(stderr(ctx), s, err)

		failed++
		total += len(prog.Errors())
	}

	if failed > 0 {
		fmt.Fprintf(stderr(ctx), "%d syntax error(s) in %d of %d script(s)\n",
			total, failed, len(scripts))

		return ErrCheckFailed.With(
			slog.Int("scripts", failed),
			slog.Int("errors", total),
		)
	}

	return nil
}
