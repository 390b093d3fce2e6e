package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"webp-batch-go/internal/batch"
	"webp-batch-go/internal/config"
	"webp-batch-go/internal/converter"
	"webp-batch-go/internal/logger"
	"webp-batch-go/internal/statistics"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var version = "dev"

// errConversionFailures is returned when --fail-on-error is set and at least one file failed.
var errConversionFailures = errors.New("one or more images failed to convert")

// newRootCmd builds the base command for the CLI.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webp-batch",
		Short: "Convert JPEG and PNG images in a directory tree to WebP",
		Long: `webp-batch walks a directory tree, finds JPEG and PNG images and writes
a WebP copy next to each one at the requested quality.

- Extensions are matched case-insensitively (.jpg, .jpeg, .png)
- name.ext is written as name.webp in the same directory, replacing any existing file
- Transparency is dropped: every output is flattened to opaque RGB
- A file that fails to convert is logged and skipped; the batch continues`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd)
		},
	}

	config.RegisterFlags(cmd.Flags())
	return cmd
}

// runConvert executes the batch conversion.
func runConvert(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	out := cmd.OutOrStdout()
	log := setupLogger(cfg, out)
	stats := statistics.NewStatistics()
	conv := converter.NewDefaultConverter(log)
	bc := batch.New(cfg, log, stats, conv)

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := bc.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "\n"+stats.GetSummary())
	fmt.Fprintln(out, "\n"+stats.GetFileTypeBreakdown())
	if report.HasFailures() {
		fmt.Fprintln(out, "\n"+stats.GetErrorSummary())
	}

	if cfg.FailOnError && report.HasFailures() {
		return fmt.Errorf("%w: %d of %d", errConversionFailures, report.Failed(), len(report.Results))
	}
	return nil
}

// setupLogger configures and returns a logger.
func setupLogger(cfg *config.Config, out io.Writer) *logrus.Logger {
	loggerCfg := logger.DefaultConfig()
	if cfg.Logging.Level != "" {
		loggerCfg.Level = cfg.Logging.Level
	}
	loggerCfg.FilePath = cfg.Logging.FilePath
	if cfg.Logging.MaxSize > 0 {
		loggerCfg.MaxSize = cfg.Logging.MaxSize
	}
	if cfg.Logging.MaxBackups > 0 {
		loggerCfg.MaxBackups = cfg.Logging.MaxBackups
	}
	if cfg.Logging.MaxAge > 0 {
		loggerCfg.MaxAge = cfg.Logging.MaxAge
	}
	loggerCfg.Compress = cfg.Logging.Compress
	loggerCfg.Output = out

	log, err := logger.NewLogger(loggerCfg)
	if err != nil {
		log = logrus.New()
		log.SetOutput(out)
		log.SetLevel(logrus.InfoLevel)
		log.Warnf("Falling back to console logging: %v", err)
	}

	return log
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
