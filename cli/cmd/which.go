package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/fjord/lang/env"
)

// Which prints the executable each name resolves to when called from a
// script.
type Which struct {
	Names []string `arg:"" help:"Command names to resolve."`
}

// Run executes the which command.
func (c *Which) Run(ctx context.Context) error {
	commands := commandsFrom(ctx)
	scope := env.New(env.WithCommands(commands))

	var missing []string

	for _, name := range c.Names {
		callee, ok := scope.FuncOrCommand(name)
		if ok && callee.IsCommand() {
			fmt.Fprintln(stdout(ctx), callee.Command)

			continue
		}

		missing = append(missing, name)

		st := newStyles(stderr(ctx))
		line := st.severity.Render("not found") + ": " + st.message.Render(name)

		if hints := scope.Suggest(name, false, true); len(hints) > 0 {
			line += st.hint.Render(" (did you mean ")
			for i, h := range hints {
				if i > 0 {
					line += st.hint.Render(", ")
				}

				line += st.name.Render(h)
			}

			line += st.hint.Render("?)")
		}

		fmt.Fprintln(stderr(ctx), line)
	}

	if len(missing) > 0 {
		return ErrCommandNotFound.With(slog.Any("names", missing))
	}

	return nil
}
