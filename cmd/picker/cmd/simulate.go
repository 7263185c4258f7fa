package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/go-drift/picker/cmd/picker/internal/script"
	"github.com/go-drift/picker/pkg/picker"
)

func simulateCmd() *cli.Command {
	return &cli.Command{
		Name:      "simulate",
		Usage:     "Bind the document, replay interactions, and print the result",
		ArgsUsage: "FILE|-",
		Description: `Bind every checkbox and radio, then run each --step in order.

A step is ACTION:ID where ID is the input's id attribute:
  click    click the native input
  tap      click the picker handle
  label    click the input's label
  focus    focus the input
  blur     clear focus (no id)
  enable   enable through the picker
  disable  disable through the picker
  update   resynchronize the picker from native state
  unbind   remove the picker and restore the markup
  check    set native checked without events
  uncheck  clear native checked without events

Each change notification is printed to stderr as it happens; the final
markup goes to stdout.

Examples:
  picker simulate --step tap:terms --step label:pro form.html`,
		Flags: append(documentFlags(),
			&cli.StringSliceFlag{
				Name:    "step",
				Aliases: []string{"s"},
				Usage:   "Interaction to replay, as ACTION:ID (repeatable)",
			},
		),
		Action: func(_ context.Context, cmd *cli.Command) error {
			steps, err := script.ParseAll(cmd.StringSlice("step"))
			if err != nil {
				return err
			}

			out := cmd.Root().ErrWriter
			s, err := newSession(cmd, func(c picker.Change) {
				fmt.Fprintln(out, formatChange(c))
			})
			if err != nil {
				return err
			}

			for _, step := range steps {
				s.logger.Debug("step", zap.Stringer("step", step))
				if err := script.Run(s.registry, step); err != nil {
					_ = s.close(cmd)
					return err
				}
			}
			return s.close(cmd)
		},
	}
}
