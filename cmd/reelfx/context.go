package main

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/five82/reelfx"
	"github.com/five82/reelfx/internal/config"
	"github.com/five82/reelfx/internal/history"
	"github.com/five82/reelfx/internal/logging"
	"github.com/five82/reelfx/internal/presets"
	"github.com/five82/reelfx/internal/reporter"
)

type globalFlags struct {
	config  string
	verbose bool
	noLog   bool
	json    bool
}

type commandContext struct {
	flags *globalFlags

	configOnce sync.Once
	config     *config.Config
	configErr  error

	runLog *logging.RunLog
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(strings.TrimSpace(c.flags.config))
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) startLogging() error {
	runLog, err := logging.Setup(c.config.Paths.LogDir, c.flags.verbose, c.flags.noLog)
	if err != nil {
		return err
	}
	c.runLog = runLog

	level := logging.ParseLevel(c.config.Logging.Level)
	if c.flags.verbose {
		level = logging.LevelDebug
	}
	logging.SetGlobal(logging.New(logging.Config{
		Level:   level,
		Output:  runLog.Writer(),
		Enabled: runLog != nil,
		JSON:    c.config.Logging.Format == "json",
	}))
	return nil
}

func (c *commandContext) close() error {
	err := c.runLog.Close()
	c.runLog = nil
	return err
}

// reporter picks NDJSON output when asked for or when stdout is not a
// terminal.
func (c *commandContext) reporter(cmd *cobra.Command) reporter.Reporter {
	out := cmd.OutOrStdout()
	if c.jsonOutput(cmd) {
		return reporter.NewJSONReporterWithWriter(out)
	}
	return reporter.NewTerminalReporterWithWriters(out, cmd.ErrOrStderr(), c.flags.verbose)
}

func (c *commandContext) jsonOutput(cmd *cobra.Command) bool {
	return c.flags.json || !isTerminal(cmd.OutOrStdout())
}

func (c *commandContext) presetStore() *presets.Store {
	return presets.Open(c.config.Paths.PresetsFile)
}

func (c *commandContext) openHistory(ctx context.Context) (*history.Store, error) {
	return history.Open(ctx, c.config.Paths.HistoryDB)
}

// newEditor builds an editor reporting to rep. History is best effort.
func (c *commandContext) newEditor(ctx context.Context, rep reporter.Reporter) (*reelfx.Editor, func(), error) {
	opts := []reelfx.Option{reelfx.WithConfig(c.config), reelfx.WithReporter(rep)}
	cleanup := func() {}

	store, err := c.openHistory(ctx)
	if err != nil {
		logging.Warn("batch history unavailable", "error", err)
	} else {
		opts = append(opts, reelfx.WithHistory(store))
		cleanup = func() { _ = store.Close() }
	}

	editor, err := reelfx.New(opts...)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return editor, cleanup, nil
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
