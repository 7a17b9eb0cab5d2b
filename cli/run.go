package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lukemcguire/lycheereport/config"
	"github.com/lukemcguire/lycheereport/logging"
	"github.com/lukemcguire/lycheereport/lychee"
	"github.com/lukemcguire/lycheereport/result"
	"github.com/lukemcguire/lycheereport/tui"
)

// run resolves the inputs, analyzes the log and writes every output. The
// returned status is result.ExitOK or result.ExitBroken; failures come back
// as *ExitError.
func run(cmd *cobra.Command, cfg config.Config, args []string) (int, error) {
	log, closeLog := logging.New(cfg.Logger, logging.Console(cmd.ErrOrStderr()))
	defer func() {
		_ = logging.Sync(log)
		_ = closeLog()
	}()

	tokens := args
	if len(tokens) == 0 {
		tokens = cfg.ErrorCodes
	}
	if len(tokens) == 0 {
		return 0, invalidInput(cmd, log, "Invalid input parameters!",
			fmt.Errorf("%w: at least one error code is required", result.ErrInvalidInput))
	}

	codes, err := result.ParseCodes(tokens)
	if err != nil {
		return 0, invalidInput(cmd, log, "Invalid input parameters!", err)
	}

	logPath, err := resolvePath(cfg.LogPath)
	if err != nil {
		return 0, invalidInput(cmd, log, "Check the path of the lychee log file!", err)
	}
	if err := lychee.Exists(logPath); err != nil {
		return 0, invalidInput(cmd, log, "Check the path of the lychee log file!", err)
	}

	log.Debug("Error codes", zap.Stringer("codes", codes))
	log.Debug("Lychee log path", zap.String("path", logPath))

	doc, err := lychee.Load(logPath)
	if err != nil {
		log.Error("Could not read the lychee log file!", zap.Error(err))
		return 0, &ExitError{Code: ExitUsage, Err: err}
	}

	if len(doc.FailMap) == 0 {
		log.Info("No links broken. Exiting...")
		return writeOutputs(cmd, log, cfg, &result.Report{})
	}

	rep := result.Analyze(doc, result.Options{
		Codes:              codes,
		IgnoreTimeouts:     cfg.IgnoreTimeouts,
		IgnoreNoCodeNetErr: cfg.IgnoreNoCodeNetErr,
	}, log)
	result.PrintResults(log, rep)

	return writeOutputs(cmd, log, cfg, rep)
}

// writeOutputs writes the summary, the optional exports and, if requested,
// opens the pager.
func writeOutputs(cmd *cobra.Command, log *zap.Logger, cfg config.Config, rep *result.Report) (int, error) {
	if err := result.SaveSummary(cfg.SummaryPath, rep); err != nil {
		log.Error("Could not write the job summary!", zap.Error(err))
		return 0, &ExitError{Code: ExitUsage, Err: err}
	}
	log.Debug("Job summary written", zap.String("path", cfg.SummaryPath))

	exports := []struct {
		path  string
		write func(io.Writer, *result.Report) error
	}{
		{cfg.JSONOut, result.WriteJSON},
		{cfg.CSVOut, result.WriteCSV},
	}
	for _, export := range exports {
		if export.path == "" {
			continue
		}
		if err := result.SaveFile(export.path, rep, export.write); err != nil {
			log.Error("Could not write export!", zap.String("path", export.path), zap.Error(err))
			return 0, &ExitError{Code: ExitUsage, Err: err}
		}
		log.Debug("Export written", zap.String("path", export.path))
	}

	if cfg.Interactive {
		review(cmd, log, rep)
	}
	return rep.ExitCode(), nil
}

// review opens the pager when stdout is a terminal; the exit status does not
// depend on it.
func review(cmd *cobra.Command, log *zap.Logger, rep *result.Report) {
	out, ok := cmd.OutOrStdout().(*os.File)
	if !ok || !(isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd())) {
		log.Warn("Interactive review needs a terminal; skipping")
		return
	}
	if err := tui.Run(rep, tea.WithContext(cmd.Context()), tea.WithOutput(out)); err != nil {
		log.Warn("Interactive review failed", zap.Error(err))
	}
}

// invalidInput logs msg, prints the help text and returns exit status 2.
func invalidInput(cmd *cobra.Command, log *zap.Logger, msg string, err error) error {
	log.Error(msg, zap.Error(err))
	_ = cmd.Help()
	return &ExitError{Code: ExitUsage, Err: err}
}

// resolvePath joins a relative path onto the working directory.
func resolvePath(path string) (string, error) {
	if filepath.IsAbs(path) {
		return path, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", errors.Join(lychee.ErrPathNotFound, fmt.Errorf("get working directory: %w", err))
	}
	return filepath.Join(wd, path), nil
}
