package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// loadPromptsFromFiles loads custom prompts from external files for every AI
// operation. Inline prompt values in the config take precedence over files;
// operations with neither keep the built-in defaults.
func (c *Config) loadPromptsFromFiles() error {
	operations := []struct {
		name  string
		opCfg *OperationAIConfig
	}{
		{"detect", &c.AI.Detect},
		{"infer", &c.AI.Infer},
		{"generate", &c.AI.Generate},
		{"judge", &c.AI.Judge},
	}

	loaded := 0
	for _, op := range operations {
		if op.opCfg.SystemPrompt == "" && op.opCfg.SystemPromptFile != "" {
			content, err := loadPromptFromFile(op.opCfg.SystemPromptFile, "system", op.name)
			if err != nil {
				return err
			}
			op.opCfg.SystemPrompt = content
			loaded++
		}

		if op.opCfg.UserPrompt == "" && op.opCfg.UserPromptFile != "" {
			content, err := loadPromptFromFile(op.opCfg.UserPromptFile, "user", op.name)
			if err != nil {
				return err
			}
			op.opCfg.UserPrompt = content
			loaded++
		}
	}

	if loaded > 0 {
		log.Printf("[CONFIG] Loaded %d custom prompt(s) from files", loaded)
	}

	return nil
}

// loadPromptFromFile reads a prompt file and validates it is non-empty
func loadPromptFromFile(filePath, promptType, operation string) (string, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path for %s %s prompt file '%s': %w", promptType, operation, filePath, err)
	}

	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return "", fmt.Errorf("%s %s prompt file not found: %s", promptType, operation, absPath)
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s %s prompt file '%s': %w", promptType, operation, absPath, err)
	}

	trimmed := strings.TrimSpace(string(content))
	if trimmed == "" {
		return "", fmt.Errorf("%s %s prompt file '%s' is empty", promptType, operation, absPath)
	}

	log.Printf("[CONFIG] Loaded %s %s prompt from file: %s (%d characters)",
		promptType, operation, absPath, len(trimmed))

	return trimmed, nil
}
