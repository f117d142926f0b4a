package cli

import (
	"context"
	"errors"
	"io"

	"github.com/specialistvlad/spellgrid/internal/app"
	"github.com/spf13/cobra"
)

// options are the persistent flags shared by every command.
type options struct {
	logFormat       string
	logLevel        string
	healthcheckPort int
	cacheSize       int
	limits          string
	json            bool
}

// newApp validates the flags and builds the application for spell paths.
func (o *options) newApp(outW io.Writer, paths []string) (*app.App, error) {
	limits, err := app.ParseLimits(o.limits)
	if err != nil {
		return nil, usageError(err)
	}
	cfg, err := app.NewConfig(app.Config{
		SpellPaths:      paths,
		LogFormat:       o.logFormat,
		LogLevel:        o.logLevel,
		HealthcheckPort: o.healthcheckPort,
		CacheSize:       o.cacheSize,
		Limits:          limits,
	})
	if err != nil {
		return nil, usageError(err)
	}
	return app.NewApp(outW, cfg), nil
}

// NewRootCmd creates the spellgrid command tree writing to outW.
func NewRootCmd(outW io.Writer) *cobra.Command {
	opts := &options{}
	outputFn := func() *Output { return NewOutput(outW, opts.json) }

	cmd := &cobra.Command{
		Use:           "spellgrid",
		Short:         "Compile and cast spells laid out on a grid",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(outW)
	cmd.SetErr(outW)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flags.IntVar(&opts.healthcheckPort, "healthcheck-port", 0, "Port for the HTTP health check and metrics server. 0 is disabled.")
	flags.IntVar(&opts.cacheSize, "cache-size", 0, "Number of compiled programs to keep. 0 uses the default.")
	flags.StringVar(&opts.limits, "limits", "", "Stat limits a spell must fit, e.g. 'cost=100,potency=40'.")
	flags.BoolVar(&opts.json, "json", false, "Print results as JSON.")

	cmd.AddCommand(
		newCompileCmd(opts, outW, outputFn),
		newCastCmd(opts, outW, outputFn),
		newPiecesCmd(opts, outW, outputFn),
		newFmtCmd(opts, outW),
	)
	return cmd
}

// Execute runs the command tree with args. Failed operations surface as an
// *ExitError with code 1, anything cobra rejects before running a command as
// one with code 2.
func Execute(ctx context.Context, outW io.Writer, args []string) error {
	cmd := NewRootCmd(outW)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	return usageError(err)
}
