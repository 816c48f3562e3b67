package trace

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"resumint/internal/types"
)

// Sink records judge verdicts. Implementations must be safe for concurrent
// use; verdicts are append-only and never rewritten.
type Sink interface {
	Record(verdict types.JudgeVerdict) error
	Close() error
}

// JSONLSink appends verdicts to a line-delimited JSON file. A mutex
// serializes writes so concurrent requests never interleave partial lines.
type JSONLSink struct {
	mu   sync.Mutex
	file *os.File
}

// NewJSONLSink opens (or creates) the trace file for appending.
func NewJSONLSink(path string) (*JSONLSink, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create trace directory: %w", err)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace file: %w", err)
	}

	return &JSONLSink{file: file}, nil
}

// Record appends one verdict as a single JSON line. The timestamp is set
// here so callers never have to fill it.
func (s *JSONLSink) Record(verdict types.JudgeVerdict) error {
	if verdict.Timestamp == "" {
		verdict.Timestamp = time.Now().UTC().Format(time.RFC3339Nano)
	}
	if verdict.Violations == nil {
		verdict.Violations = []string{}
	}

	line, err := json.Marshal(verdict)
	if err != nil {
		return fmt.Errorf("failed to encode verdict: %w", err)
	}
	line = append(line, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.file.Write(line)
	return err
}

// Close closes the underlying file.
func (s *JSONLSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}

// NopSink discards verdicts. Used when tracing is disabled.
type NopSink struct{}

func (NopSink) Record(types.JudgeVerdict) error { return nil }
func (NopSink) Close() error                    { return nil }
