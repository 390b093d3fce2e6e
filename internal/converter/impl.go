package converter

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"webp-batch-go/internal/logger"

	"github.com/sirupsen/logrus"
)

// DefaultConverter is the default implementation of the Converter interface.
// It decodes with a Decoder, flattens to RGB and encodes with an Encoder.
type DefaultConverter struct {
	decoder Decoder
	encoder Encoder
	logger  logrus.FieldLogger
}

// NewDefaultConverter creates a DefaultConverter backed by imaging and WebP.
func NewDefaultConverter(log logrus.FieldLogger) *DefaultConverter {
	return NewConverter(NewImagingDecoder(), NewWebPEncoder(), log)
}

// NewConverter creates a DefaultConverter with the given codec.
func NewConverter(decoder Decoder, encoder Encoder, log logrus.FieldLogger) *DefaultConverter {
	if log == nil {
		l := logrus.New()
		l.SetOutput(os.Stderr)
		log = l
	}
	return &DefaultConverter{
		decoder: decoder,
		encoder: encoder,
		logger:  log,
	}
}

// OutputPath returns the path of the converted sibling of inputPath.
// Leading dots of the base name never start an extension, so ".png"
// becomes ".png.webp" rather than ".webp".
func OutputPath(inputPath, ext string) string {
	base := filepath.Base(inputPath)
	if !strings.Contains(strings.TrimLeft(base, "."), ".") {
		return inputPath + ext
	}
	return strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ext
}

// ConvertFile converts one file and returns its result.
func (c *DefaultConverter) ConvertFile(inputPath string, quality int) ConversionResult {
	res := ConversionResult{
		InputPath:  inputPath,
		OutputPath: OutputPath(inputPath, c.encoder.Extension()),
		StartedAt:  time.Now(),
	}

	if info, err := os.Stat(inputPath); err == nil {
		res.InputBytes = info.Size()
	}

	img, err := c.decoder.Decode(inputPath)
	if err != nil {
		return c.fail(res, "decode", fmt.Errorf("%w: %v", ErrDecode, err))
	}

	rgb := FlattenToRGB(img)

	var buf bytes.Buffer
	if err := c.encoder.Encode(&buf, rgb, quality); err != nil {
		return c.fail(res, "encode", fmt.Errorf("%w: %v", ErrEncode, err))
	}

	if err := writeFileAtomic(res.OutputPath, buf.Bytes()); err != nil {
		return c.fail(res, "write", fmt.Errorf("%w: %v", ErrWrite, err))
	}

	res.Status = StatusConverted
	res.OutputBytes = int64(buf.Len())
	res.FinishedAt = time.Now()
	logger.WithFile(c.logger, inputPath).
		WithField("output", res.OutputPath).
		Infof("Saved %s", res.OutputPath)
	return res
}

func (c *DefaultConverter) fail(res ConversionResult, operation string, err error) ConversionResult {
	res.Status = StatusFailed
	res.Error = err
	res.FinishedAt = time.Now()
	logger.WithFileOperation(c.logger, res.InputPath, operation).
		Errorf("Failed %s: %v", res.InputPath, err)
	return res
}

// writeFileAtomic writes data to a temporary sibling and renames it over path,
// so a failed write never leaves a truncated output behind.
func writeFileAtomic(path string, data []byte) error {
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write tmp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
