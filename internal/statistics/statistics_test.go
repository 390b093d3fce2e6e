package statistics

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
		{-2048, "-2.0 KB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatBytes(tt.in), "bytes %d", tt.in)
	}
}

func TestStatistics_Counters(t *testing.T) {
	s := NewStatistics()
	s.IncrementFilesFound()
	s.IncrementFilesFound()
	s.IncrementFilesFound()
	s.IncrementFilesConverted()
	s.IncrementFilesConverted()
	s.IncrementFilesFailed()
	s.IncrementFilesIneligible()
	s.IncrementDirectoriesScanned()
	s.AddBytes(4096, 1024)
	s.AddBytes(1024, 1024)
	s.Finalize()

	assert.Equal(t, int64(2), s.GetFilesConverted())
	assert.Equal(t, int64(1), s.GetFilesFailed())
	assert.Equal(t, int64(3072), s.SpaceSaved())
	assert.False(t, s.EndTime.Before(s.StartTime))

	summary := s.GetSummary()
	assert.Contains(t, summary, "Eligible: 3")
	assert.Contains(t, summary, "Converted: 2")
	assert.Contains(t, summary, "Failed: 1")
	assert.Contains(t, summary, "Ignored: 1")
	assert.Contains(t, summary, "Saved: 3.0 KB")
}

func TestStatistics_ErrorSummary(t *testing.T) {
	s := NewStatistics()
	assert.Equal(t, "No errors occurred during processing", s.GetErrorSummary())

	for i := 0; i < 12; i++ {
		s.AddError(fmt.Sprintf("img%d.png", i), "decode", "unknown format")
	}
	summary := s.GetErrorSummary()
	assert.Contains(t, summary, "Errors (12 total)")
	assert.Contains(t, summary, "decode: img0.png - unknown format")
	assert.Contains(t, summary, "... and 2 more errors")
	assert.NotContains(t, summary, "img11.png")
}

func TestStatistics_FileTypeBreakdown(t *testing.T) {
	s := NewStatistics()
	assert.Equal(t, "No file type statistics available", s.GetFileTypeBreakdown())

	s.IncrementFileType("PNG")
	s.IncrementFileType("PNG")
	s.IncrementFileType("JPG")
	breakdown := s.GetFileTypeBreakdown()
	assert.Contains(t, breakdown, "PNG: 2")
	assert.Contains(t, breakdown, "JPG: 1")
	assert.Equal(t, "File Type Breakdown:\n  JPG: 1\n  PNG: 2\n", breakdown)
}
