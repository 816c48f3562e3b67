package analysis

import (
	"context"
	"strings"

	"resumint/internal/ai"
	"resumint/internal/bank"
	"resumint/internal/errors"
	"resumint/internal/types"
)

// detectSnippetLimit bounds how much resume text is sent to the AI
// provider for skill detection.
const detectSnippetLimit = 3000

// Detection is a single skill found in resume text. Level may be empty
// when the detection came from the vocabulary scan; the level inferencer
// fills it in afterwards. Context carries the AI's evidence snippet when
// one was returned.
type Detection struct {
	Key     string
	Name    string
	Variant string
	Level   types.Level
	Context string
}

// Detector finds bank skills in resume text. When an AI provider is
// configured it asks the model first and validates the answer against
// the bank; on any provider failure, or when no provider is set, it
// falls back to a deterministic vocabulary scan.
type Detector struct {
	provider ai.AIProvider
	logger   *errors.Logger
}

func NewDetector(provider ai.AIProvider, logger *errors.Logger) *Detector {
	return &Detector{provider: provider, logger: logger}
}

// Detect returns the skills found in text, reordered so skills relevant
// to jobRole come first. The returned slice is never nil.
func (d *Detector) Detect(ctx context.Context, text, jobRole string, b *bank.Bank) ([]Detection, bool) {
	if d.provider != nil {
		detected, err := d.detectWithAI(ctx, text, jobRole, b)
		if err == nil {
			return prioritizeByRole(detected, jobRole), true
		}
		d.logger.LogError(err, "AI skill detection failed, using vocabulary fallback")
	}
	return prioritizeByRole(d.detectWithVocabulary(text, b), jobRole), false
}

func (d *Detector) detectWithAI(ctx context.Context, text, jobRole string, b *bank.Bank) ([]Detection, error) {
	snippet := text
	if len(snippet) > detectSnippetLimit {
		snippet = snippet[:detectSnippetLimit]
	}
	role := strings.TrimSpace(jobRole)
	if role == "" {
		role = "none"
	}

	output, _, err := d.provider.DetectSkills(ctx, types.DetectSkillsInput{
		ResumeText:      snippet,
		AvailableSkills: b.Keys(),
		JobRole:         role,
	})
	if err != nil {
		return nil, err
	}

	detected := make([]Detection, 0, len(output.Skills))
	seen := make(map[string]bool)
	for _, s := range output.Skills {
		key := strings.ToLower(strings.TrimSpace(s.Skill))
		if key == "" || !b.Has(key) || seen[key] {
			continue
		}
		seen[key] = true
		level := types.Level(strings.ToLower(strings.TrimSpace(string(s.Level))))
		if !types.ValidLevel(level) {
			level = types.LevelIntermediate
		}
		detected = append(detected, Detection{
			Key:     key,
			Name:    b.DisplayName(key),
			Variant: key,
			Level:   level,
			Context: s.Context,
		})
	}
	return detected, nil
}

func (d *Detector) detectWithVocabulary(text string, b *bank.Bank) []Detection {
	normalized := Normalize(text)
	vocab := NewVocabulary(b)

	detected := make([]Detection, 0)
	seen := make(map[string]bool)
	for _, v := range vocab.Variants() {
		if seen[v.Key] {
			continue
		}
		if strings.Contains(normalized, v.Text) {
			seen[v.Key] = true
			detected = append(detected, Detection{
				Key:     v.Key,
				Name:    b.DisplayName(v.Key),
				Variant: v.Text,
			})
		}
	}
	return detected
}
