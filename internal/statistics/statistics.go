package statistics

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Statistics contains all statistics for a conversion run.
type Statistics struct {
	FilesFound      int64
	FilesIneligible int64
	FilesConverted  int64
	FilesFailed     int64

	DirectoriesScanned int64
	DirectoriesSkipped int64

	BytesIn  int64
	BytesOut int64

	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	FilesPerSecond float64

	Errors []StatError

	FileTypeStats map[string]int64

	mutex sync.RWMutex
}

// StatError represents an error that occurred during processing.
type StatError struct {
	FilePath  string
	Operation string
	Error     string
	Timestamp time.Time
}

// NewStatistics returns a new Statistics instance.
func NewStatistics() *Statistics {
	return &Statistics{
		StartTime:     time.Now(),
		FileTypeStats: make(map[string]int64),
		Errors:        make([]StatError, 0),
	}
}

// IncrementFilesFound increases the count of eligible files by 1.
func (s *Statistics) IncrementFilesFound() {
	atomic.AddInt64(&s.FilesFound, 1)
}

// IncrementFilesIneligible increases the count of skipped, non-image files by 1.
func (s *Statistics) IncrementFilesIneligible() {
	atomic.AddInt64(&s.FilesIneligible, 1)
}

// IncrementFilesConverted increases the count of converted files by 1.
func (s *Statistics) IncrementFilesConverted() {
	atomic.AddInt64(&s.FilesConverted, 1)
}

// IncrementFilesFailed increases the count of failed files by 1.
func (s *Statistics) IncrementFilesFailed() {
	atomic.AddInt64(&s.FilesFailed, 1)
}

// IncrementDirectoriesScanned increases the count of scanned directories by 1.
func (s *Statistics) IncrementDirectoriesScanned() {
	atomic.AddInt64(&s.DirectoriesScanned, 1)
}

// IncrementDirectoriesSkipped increases the count of unreadable directories by 1.
func (s *Statistics) IncrementDirectoriesSkipped() {
	atomic.AddInt64(&s.DirectoriesSkipped, 1)
}

// AddBytes records the input and output sizes of one converted file.
func (s *Statistics) AddBytes(in, out int64) {
	atomic.AddInt64(&s.BytesIn, in)
	atomic.AddInt64(&s.BytesOut, out)
}

// IncrementFileType increases the count for a specific file type by 1.
func (s *Statistics) IncrementFileType(fileType string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.FileTypeStats[fileType]++
}

// AddError records an error that occurred during processing.
func (s *Statistics) AddError(filePath, operation, errorMsg string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.Errors = append(s.Errors, StatError{
		FilePath:  filePath,
		Operation: operation,
		Error:     errorMsg,
		Timestamp: time.Now(),
	})
}

// Finalize calculates duration and throughput.
func (s *Statistics) Finalize() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.EndTime = time.Now()
	s.Duration = s.EndTime.Sub(s.StartTime)

	attempted := atomic.LoadInt64(&s.FilesConverted) + atomic.LoadInt64(&s.FilesFailed)
	if s.Duration.Seconds() > 0 {
		s.FilesPerSecond = float64(attempted) / s.Duration.Seconds()
	}
}

// SpaceSaved returns the byte difference between inputs and outputs of converted files.
// Positive means outputs are smaller; negative means they grew.
func (s *Statistics) SpaceSaved() int64 {
	return atomic.LoadInt64(&s.BytesIn) - atomic.LoadInt64(&s.BytesOut)
}

// GetSummary returns a formatted summary of all statistics.
func (s *Statistics) GetSummary() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return fmt.Sprintf(`WebP Conversion Summary:

Files:
		Eligible: %d
		Converted: %d
		Failed: %d
		Ignored: %d

Size:
		Input: %s
		Output: %s
		Saved: %s

Performance:
		Duration: %v
		Files/Second: %.2f

Directories:
		Scanned: %d
		Unreadable: %d`,
		atomic.LoadInt64(&s.FilesFound),
		atomic.LoadInt64(&s.FilesConverted),
		atomic.LoadInt64(&s.FilesFailed),
		atomic.LoadInt64(&s.FilesIneligible),
		formatBytes(atomic.LoadInt64(&s.BytesIn)),
		formatBytes(atomic.LoadInt64(&s.BytesOut)),
		formatBytes(s.SpaceSaved()),
		s.Duration,
		s.FilesPerSecond,
		atomic.LoadInt64(&s.DirectoriesScanned),
		atomic.LoadInt64(&s.DirectoriesSkipped))
}

// GetFileTypeBreakdown returns a formatted breakdown of eligible file types.
func (s *Statistics) GetFileTypeBreakdown() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if len(s.FileTypeStats) == 0 {
		return "No file type statistics available"
	}

	types := make([]string, 0, len(s.FileTypeStats))
	for fileType := range s.FileTypeStats {
		types = append(types, fileType)
	}
	sort.Strings(types)

	result := "File Type Breakdown:\n"
	for _, fileType := range types {
		result += fmt.Sprintf("  %s: %d\n", fileType, s.FileTypeStats[fileType])
	}
	return result
}

// GetErrorSummary returns a summary of errors that occurred during processing.
func (s *Statistics) GetErrorSummary() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if len(s.Errors) == 0 {
		return "No errors occurred during processing"
	}

	result := fmt.Sprintf("Errors (%d total):\n", len(s.Errors))
	for i, err := range s.Errors {
		if i >= 10 {
			result += fmt.Sprintf("  ... and %d more errors\n", len(s.Errors)-10)
			break
		}
		result += fmt.Sprintf("  [%s] %s: %s - %s\n",
			err.Timestamp.Format("15:04:05"),
			err.Operation,
			err.FilePath,
			err.Error)
	}
	return result
}

// formatBytes returns a human-readable string for a byte count.
func formatBytes(bytes int64) string {
	if bytes < 0 {
		return "-" + formatBytes(-bytes)
	}
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// GetFilesFailed returns the number of files that failed to convert.
func (s *Statistics) GetFilesFailed() int64 {
	return atomic.LoadInt64(&s.FilesFailed)
}

// GetFilesConverted returns the number of converted files.
func (s *Statistics) GetFilesConverted() int64 {
	return atomic.LoadInt64(&s.FilesConverted)
}
