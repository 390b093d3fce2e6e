package batch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"webp-batch-go/internal/config"
	"webp-batch-go/internal/converter"
	"webp-batch-go/internal/statistics"

	"github.com/sirupsen/logrus"
)

// ResultHookFunc receives each per-file result as soon as it is produced.
type ResultHookFunc func(converter.ConversionResult)

// BatchConverter walks a directory tree and converts every eligible image.
type BatchConverter struct {
	config    *config.Config
	logger    *logrus.Logger
	stats     *statistics.Statistics
	converter converter.Converter

	resultHook ResultHookFunc
}

// Report holds the outcome of a batch run.
type Report struct {
	Results    []converter.ConversionResult
	Ineligible int
}

// Converted returns the number of files written.
func (r *Report) Converted() int {
	n := 0
	for _, res := range r.Results {
		if res.Success() {
			n++
		}
	}
	return n
}

// Failed returns the number of files that could not be converted.
func (r *Report) Failed() int {
	return len(r.Results) - r.Converted()
}

// HasFailures reports whether any file failed conversion.
func (r *Report) HasFailures() bool {
	return r.Failed() > 0
}

// New returns a new BatchConverter.
func New(
	cfg *config.Config,
	logger *logrus.Logger,
	stats *statistics.Statistics,
	conv converter.Converter,
) *BatchConverter {
	return NewWithResultHook(cfg, logger, stats, conv, nil)
}

// NewWithResultHook returns a BatchConverter that streams every result to hook.
func NewWithResultHook(
	cfg *config.Config,
	logger *logrus.Logger,
	stats *statistics.Statistics,
	conv converter.Converter,
	hook ResultHookFunc,
) *BatchConverter {
	if stats == nil {
		stats = statistics.NewStatistics()
	}
	return &BatchConverter{
		config:     cfg,
		logger:     logger,
		stats:      stats,
		converter:  conv,
		resultHook: hook,
	}
}

// Run converts all eligible files under the configured root.
// The returned error is non-nil only when the root itself cannot be
// traversed; per-file failures are reported in the Report.
func (b *BatchConverter) Run(ctx context.Context) (*Report, error) {
	root := b.config.RootDirectory
	b.logger.WithField("root", root).Info("Starting WebP conversion")

	files, ineligible, err := b.discoverFiles(root)
	if err != nil {
		return nil, fmt.Errorf("failed to traverse %s: %w", root, err)
	}

	report := &Report{Ineligible: ineligible}
	if len(files) == 0 {
		b.logger.Info("No eligible images found")
		b.stats.Finalize()
		return report, nil
	}
	b.logger.Infof("Found %d images to convert", len(files))

	written := make(map[string]string, len(files))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			b.logger.Warnf("Conversion interrupted, %d files left unprocessed", len(files)-len(report.Results))
			break
		}

		res := b.processFile(file, written)
		report.Results = append(report.Results, res)
		if b.resultHook != nil {
			b.resultHook(res)
		}
	}

	b.stats.Finalize()
	b.logger.Infof("Conversion completed: %d converted, %d failed", report.Converted(), report.Failed())
	return report, nil
}

// discoverFiles finds all eligible files under root in lexical walk order.
func (b *BatchConverter) discoverFiles(root string) ([]string, int, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, 0, err
	}
	if !info.IsDir() {
		return nil, 0, fmt.Errorf("not a directory")
	}

	var files []string
	ineligible := 0

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			b.logger.Warnf("Error accessing path %s: %v", path, err)
			b.stats.IncrementDirectoriesSkipped()
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			b.stats.IncrementDirectoriesScanned()
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !b.config.IsSupportedExtension(ext) {
			ineligible++
			b.stats.IncrementFilesIneligible()
			return nil
		}

		files = append(files, path)
		b.stats.IncrementFilesFound()
		b.stats.IncrementFileType(strings.ToUpper(strings.TrimPrefix(ext, ".")))
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	return files, ineligible, nil
}

// processFile runs the conversion step for one file and records the outcome.
// written maps each output produced so far to its source, so two sources
// sharing an output name are reported.
func (b *BatchConverter) processFile(path string, written map[string]string) converter.ConversionResult {
	b.logger.Debugf("Converting file: %s", path)

	res := b.converter.ConvertFile(path, b.config.Quality)
	if res.Success() {
		if prev, ok := written[res.OutputPath]; ok {
			b.logger.Warnf("Output %s from %s is overwritten by %s", res.OutputPath, prev, path)
		}
		written[res.OutputPath] = path
		b.stats.IncrementFilesConverted()
		b.stats.AddBytes(res.InputBytes, res.OutputBytes)
		return res
	}

	b.stats.IncrementFilesFailed()
	errMsg := "unknown error"
	if res.Error != nil {
		errMsg = res.Error.Error()
	}
	b.stats.AddError(path, "convert", errMsg)
	return res
}
