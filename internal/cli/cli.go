// Package cli implements the totp command line tool.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-totp/internal/config"
	"github.com/jeremyhahn/go-totp/internal/logging"
	"github.com/jeremyhahn/go-totp/pkg/clock"
)

// Process exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// exitError carries the message shown to the user and the exit code.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string {
	return e.msg
}

func usage(line string) error {
	return &exitError{code: ExitUsage, msg: "Usage: " + line}
}

func failure(format string, args ...any) error {
	return &exitError{code: ExitFailure, msg: fmt.Sprintf(format, args...)}
}

// App holds the collaborators of a single command line invocation.
type App struct {
	Out   io.Writer
	Err   io.Writer
	Clock clock.Clocker

	cfg    *config.Config
	log    *slog.Logger
	stdout *printer
	stderr *printer
}

// Execute runs the tool with args against the system clock and returns the
// process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	app := &App{Out: stdout, Err: stderr, Clock: clock.New()}
	return app.Run(ctx, args)
}

// Run executes args and returns the process exit code. Nothing is written
// to Out unless the command succeeds.
func (a *App) Run(ctx context.Context, args []string) int {
	if a.Clock == nil {
		a.Clock = clock.New()
	}
	a.log = logging.Discard()
	a.stderr = newPrinter(a.Err, true)

	root := a.newRootCommand()
	root.SetArgs(args)
	root.SetOut(a.Out)
	root.SetErr(a.Err)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}

	var ee *exitError
	if errors.As(err, &ee) {
		a.stderr.error(ee.msg)
		return ee.code
	}

	// flag parsing and required flag errors from cobra
	a.stderr.error(err.Error())
	return ExitUsage
}

// setup resolves configuration for the command about to run.
func (a *App) setup(cmd *cobra.Command) error {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return failure("%v", err)
	}

	cfg, err := config.Load(path, cmd.Flags())
	if err != nil {
		return failure("%v", err)
	}

	a.cfg = cfg
	a.log = logging.New(a.Err, cfg.LogLevel, logging.DefaultMask...)
	a.stdout = newPrinter(a.Out, cfg.NoColor)
	a.stderr = newPrinter(a.Err, cfg.NoColor)
	return nil
}

func (a *App) newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "totp <otpauth-uri>",
		Short: "Print the current one-time password for an otpauth:// key URI",
		Long: `Print the account label, secret and current TOTP code (RFC 6238) for an
otpauth://totp key URI. The secret is masked unless --show-secret is given.`,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		RunE: a.runCode,
	}
	root.CompletionOptions.DisableDefaultCmd = true

	pf := root.PersistentFlags()
	pf.String("config", "", "path to a config file (yaml, json, toml)")
	pf.String(config.FlagName(config.KeyLogLevel), "warn", "log level: debug, info, warn, error")
	pf.Bool(config.FlagName(config.KeyNoColor), false, "disable coloured output")

	root.Flags().Bool(config.FlagName(config.KeyShowSecret), false, "print the secret unmasked")
	root.Flags().Bool(config.FlagName(config.KeyURIParams), false, "honour algorithm, digits and period from the uri")

	root.AddCommand(a.newVerifyCommand(), a.newNewCommand())
	return root
}
