// Package cmd implements the christofides command line.
package cmd

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/katalvlaran/christofides/config"
	"github.com/katalvlaran/christofides/history"
)

type rootOptions struct {
	configPath  string
	logLevel    string
	logFormat   string
	output      string
	history     bool
	historyPath string
	timeout     time.Duration

	cfg *config.Config
	log *logrus.Logger
}

// Execute is the entry point to running the CLI.
func Execute(ctx context.Context, version string) error {
	return NewRootCommand(version).ExecuteContext(ctx)
}

// NewRootCommand assembles the command tree.
func NewRootCommand(version string) *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "christofides",
		Short:         "Approximate travelling-salesman tours with the Christofides heuristic",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd.Flags(), cmd)
		},
	}
	opts.bind(root.PersistentFlags())

	root.AddCommand(
		newSolveCommand(opts),
		newPlanCommand(opts),
		newHistoryCommand(opts),
	)

	return root
}

func (o *rootOptions) bind(fs *pflag.FlagSet) {
	fs.StringVarP(&o.configPath, "config", "c", "", "path to a YAML config file")
	fs.StringVar(&o.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	fs.StringVar(&o.logFormat, "log-format", "", "log format (text, json)")
	fs.StringVarP(&o.output, "output", "o", "text", "output format (text, yaml, json)")
	fs.BoolVar(&o.history, "history", false, "record runs in the history database")
	fs.StringVar(&o.historyPath, "history-path", "", "history database file")
	fs.DurationVar(&o.timeout, "timeout", 0, "abandon a solve after this duration, e.g. 2s")
}

// setup loads configuration, then lets explicitly set flags override it.
func (o *rootOptions) setup(fs *pflag.FlagSet, cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}

	if fs.Changed("log-level") {
		cfg.Log.Level = o.logLevel
	}
	if fs.Changed("log-format") {
		cfg.Log.Format = o.logFormat
	}
	if fs.Changed("history") {
		cfg.History.Enabled = o.history
	}
	if fs.Changed("history-path") {
		cfg.History.Path = o.historyPath
	}
	if fs.Changed("timeout") {
		cfg.Timeout = o.timeout
	}
	if err = cfg.Validate(); err != nil {
		return err
	}
	switch o.output {
	case formatText, formatYAML, formatJSON:
	default:
		return errors.Errorf("unknown output format %q", o.output)
	}

	if o.log, err = cfg.NewLogger(cmd.ErrOrStderr()); err != nil {
		return err
	}
	o.cfg = cfg

	return nil
}

// openHistory opens the run store when history is enabled or force is set;
// otherwise it returns nil.
func (o *rootOptions) openHistory(force bool) (*history.Store, error) {
	if !o.cfg.History.Enabled && !force {
		return nil, nil
	}

	return history.Open(o.cfg.History.Path, history.WithLogger(o.log))
}

// withTimeout runs fn in its own goroutine and gives up once ctx or the
// configured timeout expires. An abandoned fn keeps running to completion and
// its result is discarded.
func withTimeout[T any](ctx context.Context, d time.Duration, fn func() (T, error)) (T, error) {
	if d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	type outcome struct {
		v   T
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		v, err := fn()
		done <- outcome{v, err}
	}()

	select {
	case r := <-done:
		return r.v, r.err
	case <-ctx.Done():
		var zero T
		return zero, errors.Wrap(ctx.Err(), "solve abandoned")
	}
}
