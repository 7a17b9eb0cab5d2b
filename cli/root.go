// Package cli wires flags, configuration and logging around the report
// pipeline and maps its outcome to a process exit status.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lukemcguire/lycheereport/config"
	"github.com/lukemcguire/lycheereport/result"
)

// ExitUsage is returned for invalid input, a missing or malformed log, or
// output that could not be written.
const ExitUsage = 2

// Version is the application version.
// Set at build time with -ldflags "-X github.com/lukemcguire/lycheereport/cli.Version=1.0.0".
var Version = "dev"

const description = "Tool used to analyze Lychee link checker logs. Evaluates whether " +
	"the problems detected by lychee are actual site or server problems."

// ExitError carries the exit status for a failed run.
type ExitError struct {
	Code int
	Err  error
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// Execute runs the command line and returns the exit status.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	code := 0
	root := NewRootCommand(&code)
	// cobra falls back to os.Args when given nil
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}
		fmt.Fprintln(stderr, "Error:", err)
		return ExitUsage
	}
	return code
}

// NewRootCommand builds the command; the exit status of a completed run is
// stored in code.
func NewRootCommand(code *int) *cobra.Command {
	var cfgFile string
	v := viper.New()
	config.SetDefaults(v)

	root := &cobra.Command{
		Use:   "lychee-report [flags] error_codes...",
		Short: "Classify lychee link-check failures and write a job summary",
		Long: description + "\n\n" +
			"error_codes trigger failure, in the form of an integer, a list of integers, " +
			"or a range (e.g., 10..200). Example: 503 400..404 999",
		Version:       Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ReadInConfig(v, cfgFile); err != nil {
				return usageError(cmd, err)
			}
			cfg, err := config.Load(v)
			if err != nil {
				return usageError(cmd, err)
			}

			status, err := run(cmd, cfg, args)
			if err != nil {
				return err
			}
			*code = status
			return nil
		},
	}

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError(cmd, err)
	})

	flags := root.Flags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (default is ./lychee-report.yaml)")
	flags.BoolP("verbose", "v", false, "Increase logs verbosity level")
	flags.BoolP("ignore-timeouts", "t", false, "Ignore timeouts")
	flags.BoolP("ignore-nocode-net-err", "n", false, "Ignore network errors without status codes")
	flags.StringP("log-path", "l", "log.json", "Relative path to the lychee json log file.")
	flags.String("summary-path", result.DefaultSummaryPath, "Path of the Markdown job summary to write")
	flags.String("json-out", "", "Also write the broken links as JSON to this path")
	flags.String("csv-out", "", "Also write the broken links as CSV to this path")
	flags.BoolP("interactive", "i", false, "Review the report in a terminal pager when attached to a TTY")

	for key, name := range map[string]string{
		config.KeyVerbose:            "verbose",
		config.KeyIgnoreTimeouts:     "ignore-timeouts",
		config.KeyIgnoreNoCodeNetErr: "ignore-nocode-net-err",
		config.KeyLogPath:            "log-path",
		config.KeySummaryPath:        "summary-path",
		config.KeyJSONOut:            "json-out",
		config.KeyCSVOut:             "csv-out",
		config.KeyInteractive:        "interactive",
	} {
		_ = v.BindPFlag(key, flags.Lookup(name))
	}

	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
	return root
}

// usageError reports err with the usage text and marks it as exit status 2.
func usageError(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
	_ = cmd.Usage()
	return &ExitError{Code: ExitUsage, Err: err}
}
