package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

func versionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print version information",
		Action: func(_ context.Context, cmd *cli.Command) error {
			fmt.Fprintf(cmd.Root().Writer, "picker version %s (built %s)\n", Version, BuildTime)
			return nil
		},
	}
}
