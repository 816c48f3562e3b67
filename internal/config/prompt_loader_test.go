package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writePromptFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write prompt file: %v", err)
	}
	return path
}

func TestLoadPromptsFromFiles(t *testing.T) {
	dir := t.TempDir()
	systemPath := writePromptFile(t, dir, "detect_system.txt", "You are a skill detector.\n")
	userPath := writePromptFile(t, dir, "generate_user.txt", "Generate questions for: %s\n%s\n%s")

	cfg := &Config{}
	cfg.AI.Detect.SystemPromptFile = systemPath
	cfg.AI.Generate.UserPromptFile = userPath

	if err := cfg.loadPromptsFromFiles(); err != nil {
		t.Fatalf("loadPromptsFromFiles failed: %v", err)
	}

	if cfg.AI.Detect.SystemPrompt != "You are a skill detector." {
		t.Errorf("Expected trimmed system prompt, got %q", cfg.AI.Detect.SystemPrompt)
	}
	if !strings.Contains(cfg.AI.Generate.UserPrompt, "Generate questions for:") {
		t.Errorf("Expected user prompt from file, got %q", cfg.AI.Generate.UserPrompt)
	}

	// Operations without overrides stay empty so defaults apply
	if cfg.AI.Infer.SystemPrompt != "" {
		t.Errorf("Infer system prompt should stay empty, got %q", cfg.AI.Infer.SystemPrompt)
	}
}

func TestLoadPromptsInlineValueWinsOverFile(t *testing.T) {
	dir := t.TempDir()
	path := writePromptFile(t, dir, "judge_system.txt", "from file")

	cfg := &Config{}
	cfg.AI.Judge.SystemPrompt = "inline prompt"
	cfg.AI.Judge.SystemPromptFile = path

	if err := cfg.loadPromptsFromFiles(); err != nil {
		t.Fatalf("loadPromptsFromFiles failed: %v", err)
	}

	if cfg.AI.Judge.SystemPrompt != "inline prompt" {
		t.Errorf("Inline prompt should win over file, got %q", cfg.AI.Judge.SystemPrompt)
	}
}

func TestLoadPromptsMissingFile(t *testing.T) {
	cfg := &Config{}
	cfg.AI.Detect.SystemPromptFile = filepath.Join(t.TempDir(), "does_not_exist.txt")

	err := cfg.loadPromptsFromFiles()
	if err == nil {
		t.Fatal("Expected error for missing prompt file")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("Expected 'not found' error, got: %v", err)
	}
}

func TestLoadPromptsEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := writePromptFile(t, dir, "empty.txt", "   \n\t\n")

	cfg := &Config{}
	cfg.AI.Infer.UserPromptFile = path

	err := cfg.loadPromptsFromFiles()
	if err == nil {
		t.Fatal("Expected error for empty prompt file")
	}
	if !strings.Contains(err.Error(), "is empty") {
		t.Errorf("Expected 'is empty' error, got: %v", err)
	}
}
