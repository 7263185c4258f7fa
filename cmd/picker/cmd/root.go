// Package cmd implements the picker CLI commands.
//
// The root command dispatches to render, simulate and version. Every
// command that touches a document shares the option flags defined here.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/go-drift/picker/pkg/config"
	"github.com/go-drift/picker/pkg/dom"
	"github.com/go-drift/picker/pkg/errors"
	"github.com/go-drift/picker/pkg/picker"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

const name = "picker"

// NewRootCommand returns the picker command tree.
func NewRootCommand() *cli.Command {
	return &cli.Command{
		Name:    name,
		Usage:   "Custom checkbox and radio controls over native inputs",
		Version: Version,
		Description: `picker reads an HTML document, binds a custom control to every
checkbox and radio input, and prints the decorated markup.

Use "picker <command> --help" for more information about a command.`,
		Commands: []*cli.Command{
			renderCmd(),
			simulateCmd(),
			versionCmd(),
		},
	}
}

// Execute runs the CLI with args, cancelling on SIGINT or SIGTERM.
func Execute(ctx context.Context, args []string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCommand().Run(ctx, args)
}

func documentFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "fragment",
			Usage: "Parse the input as a body fragment instead of a full document",
		},
		&cli.StringFlag{
			Name:    "defaults",
			Aliases: []string{"d"},
			Usage:   "Path to a picker.yaml supplying default options",
		},
		&cli.StringFlag{
			Name:  "custom-class",
			Usage: "Extra class added to every control container",
		},
		&cli.BoolFlag{
			Name:  "toggle",
			Usage: "Render every control, checkbox or radio, with on/off captions",
		},
		&cli.StringFlag{
			Name:  "on",
			Usage: "Toggle caption for the checked state",
		},
		&cli.StringFlag{
			Name:  "off",
			Usage: "Toggle caption for the unchecked state",
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "Log at debug level in development format",
		},
		&cli.BoolFlag{
			Name:  "metrics",
			Usage: "Print picker metrics in Prometheus text format to stderr after the run",
		},
	}
}

// session is a parsed document with its registry and the collaborators the
// command wired into it.
type session struct {
	doc      *dom.Document
	registry *picker.Registry
	metrics  *prometheus.Registry
	logger   *zap.Logger
	prev     errors.ErrorHandler
}

func newSession(cmd *cli.Command, onChange func(picker.Change)) (*session, error) {
	logger, err := newLogger(cmd.Bool("verbose"))
	if err != nil {
		return nil, err
	}

	doc, err := readDocument(cmd)
	if err != nil {
		return nil, err
	}

	defaults, err := loadDefaults(cmd.String("defaults"))
	if err != nil {
		return nil, err
	}

	s := &session{
		doc:     doc,
		metrics: prometheus.NewRegistry(),
		logger:  logger,
	}
	s.prev = errors.SetHandler(errors.NewLogHandler(logger, cmd.Bool("verbose")))

	opts := []picker.RegistryOption{
		picker.WithDefaults(defaults),
		picker.WithLogger(logger),
		picker.WithMetrics(s.metrics),
	}
	if onChange != nil {
		opts = append(opts, picker.WithChangeHandler(onChange))
	}
	s.registry = picker.New(doc, opts...)
	s.registry.BindAll(doc.Root(), optionsFromFlags(cmd)...)
	return s, nil
}

func (s *session) close(cmd *cli.Command) error {
	defer func() {
		errors.SetHandler(s.prev)
		_ = s.logger.Sync()
	}()
	if err := s.doc.Render(cmd.Root().Writer); err != nil {
		return err
	}
	fmt.Fprintln(cmd.Root().Writer)
	if cmd.Bool("metrics") {
		return writeMetrics(cmd.Root().ErrWriter, s.metrics)
	}
	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	var cfg zap.Config
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.OutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger.Named(name), nil
}

func readDocument(cmd *cli.Command) (*dom.Document, error) {
	if cmd.NArg() != 1 {
		return nil, fmt.Errorf("expected exactly one FILE argument (use - for stdin), got %d", cmd.NArg())
	}
	path := cmd.Args().First()

	var r io.Reader
	if path == "-" {
		r = cmd.Root().Reader
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}

	if cmd.Bool("fragment") {
		return dom.ParseFragment(r)
	}
	return dom.Parse(r)
}

func loadDefaults(path string) (picker.DefaultsProvider, error) {
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return picker.StaticDefaults(picker.DefaultOptions()), nil
		}
		f, err := config.LoadOptional(cwd)
		if err != nil {
			return nil, err
		}
		return f, nil
	}
	f, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// optionsFromFlags returns call options for the flags the user set. Unset
// flags leave the defaults alone.
func optionsFromFlags(cmd *cli.Command) []picker.Option {
	var opts []picker.Option
	if cmd.IsSet("custom-class") {
		opts = append(opts, picker.WithCustomClass(cmd.String("custom-class")))
	}
	if cmd.IsSet("toggle") {
		opts = append(opts, picker.WithToggle(cmd.Bool("toggle")))
	}
	if cmd.IsSet("on") || cmd.IsSet("off") {
		labels := &picker.LabelOverrides{}
		if cmd.IsSet("on") {
			on := cmd.String("on")
			labels.On = &on
		}
		if cmd.IsSet("off") {
			off := cmd.String("off")
			labels.Off = &off
		}
		opts = append(opts, func(ov *picker.Overrides) { ov.Labels = labels })
	}
	return opts
}

func writeMetrics(w io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}

func formatChange(c picker.Change) string {
	var b strings.Builder
	fmt.Fprintf(&b, "change %s id=%s", c.Kind, c.ID)
	if c.Group != "" {
		fmt.Fprintf(&b, " group=%s", c.Group)
	}
	if c.Value != "" {
		fmt.Fprintf(&b, " value=%s", c.Value)
	}
	fmt.Fprintf(&b, " checked=%t", c.Checked)
	return b.String()
}
