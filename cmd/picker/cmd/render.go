package cmd

import (
	"context"

	"github.com/urfave/cli/v3"
)

func renderCmd() *cli.Command {
	return &cli.Command{
		Name:      "render",
		Usage:     "Bind every checkbox and radio and print the decorated markup",
		ArgsUsage: "FILE|-",
		Description: `Parse an HTML document, bind a picker to every checkbox and radio
input, and write the resulting markup to stdout.

Options resolve from lowest to highest precedence: built-in defaults,
picker.yaml (--defaults, or ./picker.yaml when present), command-line
flags, and each input's data-picker-options attribute.

Examples:
  picker render form.html
  cat form.html | picker render --fragment -
  picker render --toggle --on Yes --off No form.html`,
		Flags: documentFlags(),
		Action: func(_ context.Context, cmd *cli.Command) error {
			s, err := newSession(cmd, nil)
			if err != nil {
				return err
			}
			return s.close(cmd)
		},
	}
}
