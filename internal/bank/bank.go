package bank

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"resumint/internal/errors"
	"resumint/internal/types"
)

// Entry is one skill in the question bank with its per-level questions.
type Entry struct {
	Skill       string              `json:"skill"`
	DisplayName string              `json:"displayName"`
	Levels      map[string][]string `json:"levels"`
}

// Bank is an immutable, validated question bank. Once constructed it is
// never modified; hot reloads build a new Bank and swap it atomically.
type Bank struct {
	entries []Entry
	byKey   map[string]*Entry
}

// Load reads and validates a question bank file. Any structural problem is
// fatal: a bank missing a level for any skill cannot serve the fallback
// paths that depend on it.
func Load(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewBankError(errors.ErrCodeBankLoadFailed,
			fmt.Sprintf("failed to read question bank file: %s", path), err)
	}
	return Parse(data)
}

// Parse validates raw question bank JSON and builds the key index.
func Parse(data []byte) (*Bank, error) {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, errors.NewBankError(errors.ErrCodeBankLoadFailed,
			"question bank is not valid JSON", err)
	}

	if len(entries) == 0 {
		return nil, errors.NewBankError(errors.ErrCodeBankLoadFailed,
			"question bank contains no skills", nil)
	}

	b := &Bank{
		entries: entries,
		byKey:   make(map[string]*Entry, len(entries)),
	}

	for i := range entries {
		e := &entries[i]
		if err := validateEntry(e); err != nil {
			return nil, err
		}
		if _, exists := b.byKey[e.Skill]; exists {
			return nil, errors.NewBankError(errors.ErrCodeBankLoadFailed,
				fmt.Sprintf("duplicate skill key: %s", e.Skill), nil)
		}
		b.byKey[e.Skill] = e
	}

	return b, nil
}

func validateEntry(e *Entry) error {
	if strings.TrimSpace(e.Skill) == "" {
		return errors.NewBankError(errors.ErrCodeBankLoadFailed,
			"question bank entry has an empty skill key", nil)
	}
	if strings.TrimSpace(e.DisplayName) == "" {
		return errors.NewBankError(errors.ErrCodeBankLoadFailed,
			fmt.Sprintf("skill %q has an empty display name", e.Skill), nil)
	}

	// Every level key must be present; empty pools are allowed.
	for _, level := range types.Levels {
		questions, ok := e.Levels[string(level)]
		if !ok {
			return errors.NewBankError(errors.ErrCodeBankLoadFailed,
				fmt.Sprintf("skill %q is missing level %q", e.Skill, level), nil)
		}
		for _, q := range questions {
			if strings.TrimSpace(q) == "" {
				return errors.NewBankError(errors.ErrCodeBankLoadFailed,
					fmt.Sprintf("skill %q has an empty question at level %q", e.Skill, level), nil)
			}
		}
	}

	for level := range e.Levels {
		if !types.ValidLevel(types.Level(level)) {
			return errors.NewBankError(errors.ErrCodeBankLoadFailed,
				fmt.Sprintf("skill %q has unknown level %q", e.Skill, level), nil)
		}
	}

	return nil
}

// Keys returns the skill keys in file order.
func (b *Bank) Keys() []string {
	keys := make([]string, len(b.entries))
	for i, e := range b.entries {
		keys[i] = e.Skill
	}
	return keys
}

// Lookup returns the entry for a skill key.
func (b *Bank) Lookup(key string) (*Entry, bool) {
	e, ok := b.byKey[key]
	return e, ok
}

// Has reports whether the bank contains the skill key.
func (b *Bank) Has(key string) bool {
	_, ok := b.byKey[key]
	return ok
}

// DisplayName returns the display name for a skill key, or the key itself
// if the skill is not in the bank.
func (b *Bank) DisplayName(key string) string {
	if e, ok := b.byKey[key]; ok {
		return e.DisplayName
	}
	return key
}

// QuestionsFor returns the question list for a skill at a level. The slice
// is the bank's own backing array; callers must not mutate it.
func (b *Bank) QuestionsFor(key string, level types.Level) []string {
	e, ok := b.byKey[key]
	if !ok {
		return nil
	}
	return e.Levels[string(level)]
}

// Contains reports whether the exact question text appears in the bank for
// the given skill and level.
func (b *Bank) Contains(key string, level types.Level, question string) bool {
	for _, q := range b.QuestionsFor(key, level) {
		if q == question {
			return true
		}
	}
	return false
}

// Len returns the number of skills in the bank.
func (b *Bank) Len() int {
	return len(b.entries)
}
