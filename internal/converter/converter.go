package converter

import (
	"errors"
	"image"
	"io"
	"time"
)

// Status is the outcome of a single conversion attempt.
type Status string

const (
	StatusConverted Status = "converted"
	StatusFailed    Status = "failed"
)

// Stage errors wrapped into ConversionResult.Error.
var (
	ErrDecode = errors.New("decode failed")
	ErrEncode = errors.New("encode failed")
	ErrWrite  = errors.New("write failed")
)

// ConversionResult describes the result of converting a single file.
type ConversionResult struct {
	InputPath   string
	OutputPath  string
	Status      Status
	InputBytes  int64
	OutputBytes int64
	StartedAt   time.Time
	FinishedAt  time.Time
	Error       error
}

// Success reports whether the output file was written.
func (r ConversionResult) Success() bool {
	return r.Status == StatusConverted
}

// Converter defines the interface for the per-file conversion step.
type Converter interface {
	// ConvertFile writes a sibling file with the target extension next to
	// inputPath. Failures are reported in the result, never panicked or returned.
	ConvertFile(inputPath string, quality int) ConversionResult
}

// Decoder reads an image from a file.
type Decoder interface {
	Decode(path string) (image.Image, error)
}

// Encoder writes an image in a single target format.
type Encoder interface {
	Encode(w io.Writer, img image.Image, quality int) error
	// Extension returns the output file extension including the leading dot.
	Extension() string
}
