package analysis

import (
	"context"
	"regexp"
	"strings"

	"resumint/internal/ai"
	"resumint/internal/errors"
	"resumint/internal/types"
)

const (
	aiExcerptRadius      = 200
	fallbackWindowRadius = 100
	maxInferenceExcerpts = 3
)

var advancedKeywords = []string{
	"advanced", "expert", "lead", "senior", "5+ years", "5 years",
	"extensive", "deep", "mastery", "proficient in", "experienced with",
}

var beginnerKeywords = []string{
	"beginner", "familiar", "some experience", "basic", "learning",
	"introduction", "introductory", "novice",
}

var intermediateKeywords = []string{
	"intermediate", "proficient", "2+ years", "2 years", "3+ years",
	"3 years", "comfortable", "working knowledge",
}

// LevelInferencer estimates how proficient a candidate is in a detected
// skill. The AI path sends excerpts around each mention of the skill;
// the fallback scans those windows for level-indicative phrases.
type LevelInferencer struct {
	provider ai.AIProvider
	logger   *errors.Logger
}

func NewLevelInferencer(provider ai.AIProvider, logger *errors.Logger) *LevelInferencer {
	return &LevelInferencer{provider: provider, logger: logger}
}

// Infer returns the proficiency level for the detection's skill based on
// the resume text. Skills mentioned without any level signal come back
// as intermediate.
func (l *LevelInferencer) Infer(ctx context.Context, det Detection, text string) types.Level {
	if l.provider != nil {
		excerpts := skillExcerpts(text, det.Key, aiExcerptRadius, maxInferenceExcerpts)
		if len(excerpts) == 0 {
			return types.LevelIntermediate
		}
		output, _, err := l.provider.InferLevel(ctx, types.InferLevelInput{
			SkillKey: det.Key,
			Excerpts: excerpts,
		})
		if err == nil {
			level := types.Level(strings.ToLower(strings.TrimSpace(string(output.Level))))
			if types.ValidLevel(level) {
				return level
			}
			return types.LevelIntermediate
		}
		l.logger.LogError(err, "AI level inference failed, using keyword fallback",
			"skill", det.Key)
	}
	return inferLevelFromKeywords(text, det)
}

// skillExcerpts collects up to max windows of radius characters around
// whole-word mentions of key. Matching is case-insensitive; the excerpts
// are sliced from the lowercased text, since lowercasing can change byte
// offsets and the match positions index the lowered string.
func skillExcerpts(text, key string, radius, max int) []string {
	re, err := regexp.Compile(`\b` + regexp.QuoteMeta(key) + `\b`)
	if err != nil {
		return nil
	}
	lowered := strings.ToLower(text)

	var excerpts []string
	for _, loc := range re.FindAllStringIndex(lowered, max) {
		start := loc[0] - radius
		if start < 0 {
			start = 0
		}
		end := loc[1] + radius
		if end > len(lowered) {
			end = len(lowered)
		}
		excerpts = append(excerpts, lowered[start:end])
	}
	return excerpts
}

// inferLevelFromKeywords checks each mention window for level phrases.
// Within a window, advanced signals win over intermediate ones and
// intermediate over beginner; the first window with any signal decides.
func inferLevelFromKeywords(text string, det Detection) types.Level {
	key := det.Variant
	if key == "" {
		key = det.Key
	}
	windows := skillExcerpts(text, key, fallbackWindowRadius, -1)
	if len(windows) == 0 && key != det.Key {
		windows = skillExcerpts(text, det.Key, fallbackWindowRadius, -1)
	}

	for _, window := range windows {
		if containsAny(window, advancedKeywords) {
			return types.LevelAdvanced
		}
		if containsAny(window, intermediateKeywords) {
			return types.LevelIntermediate
		}
		if containsAny(window, beginnerKeywords) {
			return types.LevelBeginner
		}
	}
	return types.LevelIntermediate
}

func containsAny(text string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}
