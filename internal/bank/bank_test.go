package bank

import (
	"os"
	"path/filepath"
	"testing"

	"resumint/internal/types"
)

const validBankJSON = `[
  {
    "skill": "python",
    "displayName": "Python",
    "levels": {
      "beginner": ["What is a list comprehension?"],
      "intermediate": ["Explain decorators.", "How do generators work?"],
      "advanced": ["Describe the GIL and its implications."]
    }
  },
  {
    "skill": "sql",
    "displayName": "SQL",
    "levels": {
      "beginner": ["What is a primary key?"],
      "intermediate": ["Explain JOIN types."],
      "advanced": ["How would you optimize a slow query?"]
    }
  }
]`

func TestParseValidBank(t *testing.T) {
	b, err := Parse([]byte(validBankJSON))
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}

	if b.Len() != 2 {
		t.Errorf("Len() = %d, want 2", b.Len())
	}

	keys := b.Keys()
	if len(keys) != 2 || keys[0] != "python" || keys[1] != "sql" {
		t.Errorf("Keys() = %v, want [python sql] in file order", keys)
	}

	entry, ok := b.Lookup("python")
	if !ok {
		t.Fatal("Lookup(python) not found")
	}
	if entry.DisplayName != "Python" {
		t.Errorf("DisplayName = %q, want Python", entry.DisplayName)
	}

	questions := b.QuestionsFor("python", types.LevelIntermediate)
	if len(questions) != 2 {
		t.Errorf("QuestionsFor(python, intermediate) returned %d questions, want 2", len(questions))
	}
}

func TestParseInvalidBank(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{
			name: "not JSON",
			json: "{{{",
		},
		{
			name: "empty array",
			json: "[]",
		},
		{
			name: "missing skill key",
			json: `[{"skill": "", "displayName": "Python", "levels": {"beginner": ["q"], "intermediate": ["q"], "advanced": ["q"]}}]`,
		},
		{
			name: "missing display name",
			json: `[{"skill": "python", "displayName": "", "levels": {"beginner": ["q"], "intermediate": ["q"], "advanced": ["q"]}}]`,
		},
		{
			name: "missing level",
			json: `[{"skill": "python", "displayName": "Python", "levels": {"beginner": ["q"], "intermediate": ["q"]}}]`,
		},
		{
			name: "blank question text",
			json: `[{"skill": "python", "displayName": "Python", "levels": {"beginner": ["  "], "intermediate": ["q"], "advanced": ["q"]}}]`,
		},
		{
			name: "unknown level label",
			json: `[{"skill": "python", "displayName": "Python", "levels": {"beginner": ["q"], "intermediate": ["q"], "advanced": ["q"], "expert": ["q"]}}]`,
		},
		{
			name: "duplicate skill key",
			json: `[
				{"skill": "python", "displayName": "Python", "levels": {"beginner": ["q"], "intermediate": ["q"], "advanced": ["q"]}},
				{"skill": "python", "displayName": "Python 3", "levels": {"beginner": ["q"], "intermediate": ["q"], "advanced": ["q"]}}
			]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.json)); err == nil {
				t.Error("Parse() expected error, got nil")
			}
		})
	}
}

func TestParseAcceptsEmptyLevelPool(t *testing.T) {
	// All three level keys must exist, but a pool may be empty.
	b, err := Parse([]byte(`[{"skill": "python", "displayName": "Python", "levels": {"beginner": [], "intermediate": ["q1"], "advanced": ["q2"]}}]`))
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	if got := b.QuestionsFor("python", types.LevelBeginner); len(got) != 0 {
		t.Errorf("QuestionsFor(beginner) = %v, want empty", got)
	}
	if got := b.QuestionsFor("python", types.LevelIntermediate); len(got) != 1 {
		t.Errorf("QuestionsFor(intermediate) = %v, want one question", got)
	}
}

func TestBankLookups(t *testing.T) {
	b, err := Parse([]byte(validBankJSON))
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}

	if b.Has("rust") {
		t.Error("Has(rust) = true, want false")
	}
	if got := b.DisplayName("sql"); got != "SQL" {
		t.Errorf("DisplayName(sql) = %q, want SQL", got)
	}
	if got := b.DisplayName("rust"); got != "rust" {
		t.Errorf("DisplayName(rust) = %q, want the key itself", got)
	}
	if b.QuestionsFor("rust", types.LevelBeginner) != nil {
		t.Error("QuestionsFor(rust, beginner) should be nil for unknown skill")
	}
	if !b.Contains("python", types.LevelAdvanced, "Describe the GIL and its implications.") {
		t.Error("Contains() should find an exact bank question")
	}
	if b.Contains("python", types.LevelAdvanced, "Describe the GIL") {
		t.Error("Contains() should require exact question text")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestStoreReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bank.json")
	if err := os.WriteFile(path, []byte(validBankJSON), 0o644); err != nil {
		t.Fatalf("failed to write bank file: %v", err)
	}

	store, err := NewStore(path, nil)
	if err != nil {
		t.Fatalf("NewStore() unexpected error: %v", err)
	}

	if store.Bank().Len() != 2 {
		t.Fatalf("initial bank has %d skills, want 2", store.Bank().Len())
	}

	updated := `[
	  {
	    "skill": "go",
	    "displayName": "Go",
	    "levels": {
	      "beginner": ["What is a goroutine?"],
	      "intermediate": ["Explain channels."],
	      "advanced": ["Describe the scheduler."]
	    }
	  }
	]`
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		t.Fatalf("failed to rewrite bank file: %v", err)
	}

	store.reload()

	b := store.Bank()
	if b.Len() != 1 || !b.Has("go") {
		t.Errorf("after reload, bank keys = %v, want [go]", b.Keys())
	}
}

func TestStoreReloadKeepsBankOnBadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bank.json")
	if err := os.WriteFile(path, []byte(validBankJSON), 0o644); err != nil {
		t.Fatalf("failed to write bank file: %v", err)
	}

	store, err := NewStore(path, nil)
	if err != nil {
		t.Fatalf("NewStore() unexpected error: %v", err)
	}

	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatalf("failed to corrupt bank file: %v", err)
	}

	store.reload()

	if store.Bank().Len() != 2 {
		t.Errorf("corrupt reload replaced the bank, want previous bank kept")
	}
}

func TestStoreReloadHook(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bank.json")
	if err := os.WriteFile(path, []byte(validBankJSON), 0o644); err != nil {
		t.Fatalf("failed to write bank file: %v", err)
	}

	store, err := NewStore(path, nil)
	if err != nil {
		t.Fatalf("NewStore() unexpected error: %v", err)
	}

	var outcomes []bool
	store.SetReloadHook(func(success bool) {
		outcomes = append(outcomes, success)
	})

	store.reload()

	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatalf("failed to corrupt bank file: %v", err)
	}
	store.reload()

	want := []bool{true, false}
	if len(outcomes) != len(want) {
		t.Fatalf("hook called %d times, want %d", len(outcomes), len(want))
	}
	for i := range want {
		if outcomes[i] != want[i] {
			t.Errorf("hook outcome[%d] = %v, want %v", i, outcomes[i], want[i])
		}
	}
}

func TestNewStoreFailsOnInvalidBank(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bank.json")
	if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
		t.Fatalf("failed to write bank file: %v", err)
	}

	if _, err := NewStore(path, nil); err == nil {
		t.Error("NewStore() expected error for empty bank, got nil")
	}
}
