package cmd

import (
	"context"
	"fmt"

	"github.com/ardnew/fjord/pkg"
)

// Version prints the program version.
type Version struct {
	Short bool `help:"Print the version number only." short:"s"`
}

// Run executes the version command.
func (v *Version) Run(ctx context.Context) error {
	if v.Short {
		_, err := fmt.Fprintln(stdout(ctx), pkg.Version)

		return err
	}

	_, err := fmt.Fprintf(stdout(ctx), "%s %s - %s\n", pkg.Name, pkg.Version, pkg.Description)

	return err
}
