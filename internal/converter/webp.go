package converter

import (
	"image"
	"io"

	"github.com/chai2010/webp"
)

// WebPEncoder encodes lossy WebP.
type WebPEncoder struct{}

// NewWebPEncoder creates a new WebPEncoder instance.
func NewWebPEncoder() *WebPEncoder {
	return &WebPEncoder{}
}

// Encode writes img to w at the given quality (0-100).
func (e *WebPEncoder) Encode(w io.Writer, img image.Image, quality int) error {
	return webp.Encode(w, img, &webp.Options{Quality: float32(quality)})
}

// Extension implements Encoder.
func (e *WebPEncoder) Extension() string {
	return ".webp"
}
