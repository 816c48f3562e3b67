package trace

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"resumint/internal/types"
)

func TestJSONLSinkRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "judge.jsonl")
	sink, err := NewJSONLSink(path)
	if err != nil {
		t.Fatalf("NewJSONLSink() unexpected error: %v", err)
	}

	verdict := types.JudgeVerdict{
		Skill:      "python",
		Level:      types.LevelAdvanced,
		Question:   "Describe the GIL.",
		Passes:     false,
		Violations: []string{types.ViolationTooBasicForLevel},
	}
	if err := sink.Record(verdict); err != nil {
		t.Fatalf("Record() unexpected error: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close() unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read trace file: %v", err)
	}

	var got types.JudgeVerdict
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("trace line is not valid JSON: %v", err)
	}
	if got.Timestamp == "" {
		t.Error("Record() should stamp the verdict with a timestamp")
	}
	if got.Skill != "python" || got.Passes {
		t.Errorf("unexpected verdict in trace: %+v", got)
	}
}

func TestJSONLSinkConcurrentAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "judge.jsonl")
	sink, err := NewJSONLSink(path)
	if err != nil {
		t.Fatalf("NewJSONLSink() unexpected error: %v", err)
	}

	const writers = 8
	const perWriter = 25

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				verdict := types.JudgeVerdict{
					Skill:      "sql",
					Level:      types.LevelIntermediate,
					Question:   "Explain JOIN types.",
					Passes:     true,
					Violations: []string{},
				}
				if err := sink.Record(verdict); err != nil {
					t.Errorf("Record() unexpected error: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	if err := sink.Close(); err != nil {
		t.Fatalf("Close() unexpected error: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open trace file: %v", err)
	}
	defer file.Close()

	lines := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var verdict types.JudgeVerdict
		if err := json.Unmarshal(scanner.Bytes(), &verdict); err != nil {
			t.Fatalf("line %d is not valid JSON (interleaved write?): %v", lines+1, err)
		}
		lines++
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scanner error: %v", err)
	}

	if lines != writers*perWriter {
		t.Errorf("trace file has %d lines, want %d", lines, writers*perWriter)
	}
}
