package analysis

import (
	"context"
	"strings"

	"resumint/internal/ai"
	"resumint/internal/bank"
	"resumint/internal/errors"
	"resumint/internal/types"
)

const (
	generateExcerptLimit = 2000
	maxQuestions         = 5
	minQuestions         = 3
	maxPromptExamples    = 3
)

// Generator produces interview questions for detected skills. The AI
// path seeds the model with bank examples and validates every returned
// question; the fallback serves questions straight from the bank.
type Generator struct {
	provider ai.AIProvider
	logger   *errors.Logger
}

func NewGenerator(provider ai.AIProvider, logger *errors.Logger) *Generator {
	return &Generator{provider: provider, logger: logger}
}

// Generate returns 3 to 5 questions for the detected skills, fewer only
// when the bank cannot supply enough. The second return reports whether
// the AI path produced the questions.
func (g *Generator) Generate(ctx context.Context, detected []Detection, resumeText string, b *bank.Bank) ([]types.InterviewQuestion, bool) {
	if len(detected) == 0 {
		return []types.InterviewQuestion{}, false
	}

	if g.provider != nil {
		questions, err := g.generateWithAI(ctx, detected, resumeText, b)
		if err == nil {
			if len(questions) >= minQuestions {
				return truncateQuestions(questions), true
			}
			// Keep the accepted AI questions and top up from the bank.
			g.logger.Warn("AI returned too few valid questions, backfilling from the question bank",
				"valid_count", len(questions))
			return truncateQuestions(g.fillFromBank(detected, questions, nil, b)), len(questions) > 0
		}
		g.logger.LogError(err, "AI question generation failed, using question bank")
	}

	return truncateQuestions(g.fillFromBank(detected, nil, nil, b)), false
}

func (g *Generator) generateWithAI(ctx context.Context, detected []Detection, resumeText string, b *bank.Bank) ([]types.InterviewQuestion, error) {
	excerpt := resumeText
	if len(excerpt) > generateExcerptLimit {
		excerpt = excerpt[:generateExcerptLimit]
	}

	var examples []types.QuestionExample
	for i, det := range detected {
		if i >= maxPromptExamples {
			break
		}
		pool := b.QuestionsFor(det.Key, det.Level)
		if len(pool) > 0 {
			examples = append(examples, types.QuestionExample{
				Skill:   det.Key,
				Level:   det.Level,
				Example: pool[0],
			})
		}
	}

	prompts := make([]types.SkillPrompt, 0, len(detected))
	for _, det := range detected {
		prompts = append(prompts, types.SkillPrompt{
			Skill:       det.Key,
			DisplayName: det.Name,
			Level:       det.Level,
			Context:     det.Context,
		})
	}

	output, _, err := g.provider.GenerateQuestions(ctx, types.GenerateQuestionsInput{
		Skills:        prompts,
		Examples:      examples,
		ResumeExcerpt: excerpt,
	})
	if err != nil {
		return nil, err
	}

	detectedKeys := make(map[string]bool, len(detected))
	for _, det := range detected {
		detectedKeys[det.Key] = true
	}

	questions := make([]types.InterviewQuestion, 0, len(output.Questions))
	for _, q := range output.Questions {
		key := strings.ToLower(strings.TrimSpace(q.Skill))
		text := strings.TrimSpace(q.Question)
		if text == "" || !detectedKeys[key] || !b.Has(key) {
			continue
		}
		level := types.Level(strings.ToLower(strings.TrimSpace(string(q.Level))))
		if !types.ValidLevel(level) {
			level = types.LevelIntermediate
		}
		questions = append(questions, types.InterviewQuestion{
			Skill:    key,
			Level:    level,
			Question: text,
		})
	}
	return questions, nil
}

// fillFromBank builds the deterministic question set: one bank question
// per detected skill at its level, then extra draws until at least
// minQuestions are collected. Questions already in seed, or whose text
// appears in exclude, are skipped; seed questions are kept.
func (g *Generator) fillFromBank(detected []Detection, seed []types.InterviewQuestion, exclude map[string]bool, b *bank.Bank) []types.InterviewQuestion {
	questions := make([]types.InterviewQuestion, 0, len(detected)+len(seed))
	used := make(map[string]bool)
	covered := make(map[string]bool)
	for _, q := range seed {
		used[q.Question] = true
		covered[q.Skill] = true
		questions = append(questions, q)
	}

	takeFirst := func(det Detection, level types.Level) bool {
		for _, text := range b.QuestionsFor(det.Key, level) {
			if used[text] || exclude[text] {
				continue
			}
			used[text] = true
			covered[det.Key] = true
			questions = append(questions, types.InterviewQuestion{
				Skill:    det.Key,
				Level:    level,
				Question: text,
			})
			return true
		}
		return false
	}

	for _, det := range detected {
		if covered[det.Key] {
			continue
		}
		takeFirst(det, det.Level)
	}

	for _, det := range detected {
		if len(questions) >= minQuestions {
			break
		}
		if covered[det.Key] {
			continue
		}
		if !takeFirst(det, det.Level) && det.Level != types.LevelIntermediate {
			takeFirst(det, types.LevelIntermediate)
		}
	}

	// Draw further into non-exhausted pools until the floor is met. The
	// bank may still run dry; the caller reports the degraded result.
	for len(questions) < minQuestions {
		progressed := false
		for _, det := range detected {
			if len(questions) >= minQuestions {
				break
			}
			if takeFirst(det, det.Level) {
				progressed = true
				continue
			}
			if det.Level != types.LevelIntermediate && takeFirst(det, types.LevelIntermediate) {
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}
	return questions
}

// truncateQuestions caps the list at maxQuestions, keeping each skill's
// first question ahead of repeat questions for already-covered skills.
func truncateQuestions(questions []types.InterviewQuestion) []types.InterviewQuestion {
	if len(questions) <= maxQuestions {
		return questions
	}

	var firsts, repeats []types.InterviewQuestion
	seen := make(map[string]bool)
	for _, q := range questions {
		if seen[q.Skill] {
			repeats = append(repeats, q)
		} else {
			seen[q.Skill] = true
			firsts = append(firsts, q)
		}
	}

	ordered := append(firsts, repeats...)
	return ordered[:maxQuestions]
}
