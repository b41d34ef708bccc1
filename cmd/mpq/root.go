package main

import (
	"context"
	"fmt"
	"io"

	"github.com/jmgilman/go/fs/billy"
	"github.com/jmgilman/go/fs/core"
	"github.com/spf13/cobra"

	"github.com/jmgilman/go/mpq"
	"github.com/jmgilman/go/mpq/errors"
	"github.com/jmgilman/go/mpq/internal/config"
	"github.com/jmgilman/go/mpq/internal/logging"
)

// app holds state shared by every command of one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer
	fsys   core.FS

	configPath string
	logLevel   string
	logFormat  string

	cfg    *config.Config
	logger *logging.Logger
	client *mpq.Client
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{
		stdout: stdout,
		stderr: stderr,
		fsys:   billy.NewLocal(),
	}

	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "error: %s\n", err)
		return 1
	}
	return 0
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mpq",
		Short: "Work with MPQ archives",
		Long: `mpq extracts, lists, views and creates MPQ archives.

Entry names inside archives use '\' separators; filters and output paths
use '/'. Per-entry failures are reported as warnings and do not change the
exit status.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", fmt.Sprintf("configuration file (.cue, .yaml); defaults to $%s", config.EnvVar))
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&a.logFormat, "log-format", "", "log format: text, json")

	cmd.AddCommand(
		newExtractCmd(a),
		newViewCmd(a),
		newListCmd(a),
		newNewCmd(a),
	)

	return cmd
}

// setup loads configuration and builds the logger and client.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.NewLoader(a.fsys).Resolve(cmd.Context(), a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	levelText := cfg.Log.Level
	if cmd.Flags().Changed("log-level") {
		levelText = a.logLevel
	}
	formatText := cfg.Log.Format
	if cmd.Flags().Changed("log-format") {
		formatText = a.logFormat
	}

	level, err := logging.ParseLogLevel(levelText)
	if err != nil {
		return errors.Wrap(err, errors.CodeInvalidConfig, "invalid --log-level")
	}
	format, err := logging.ParseLogFormat(formatText)
	if err != nil {
		return errors.Wrap(err, errors.CodeInvalidConfig, "invalid --log-format")
	}

	a.logger = logging.NewLogger(logging.LogConfig{
		Level:  level,
		Format: format,
		Output: a.stderr,
	})

	a.client, err = mpq.New(
		mpq.WithFilesystem(a.fsys),
		mpq.WithLogger(a.logger),
		mpq.WithFormat(mpq.MPQFormat{
			SectorSizeShift: uint16(cfg.Create.SectorSizeShift),
			OmitListfile:    !cfg.Create.Listfile,
		}),
	)
	return err
}
