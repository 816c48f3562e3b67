package analysis

import (
	"context"
	"strings"

	"resumint/internal/ai"
	"resumint/internal/errors"
	"resumint/internal/types"
)

// judgeComplexityKeywords mark a question as demanding; their presence
// is wrong for beginners and their absence suspicious for advanced.
var judgeComplexityKeywords = []string{
	"optimize", "implement", "design", "architecture", "complex",
}

var judgeOpenEndedPhrases = []string{"how would you", "describe how"}

var knownViolations = map[string]bool{
	types.ViolationSkillMismatch:       true,
	types.ViolationTooBasicForLevel:    true,
	types.ViolationTooAdvancedForLevel: true,
}

// Judge checks that a generated question actually fits its skill and
// level. The AI path asks the model and keeps only violations from the
// fixed vocabulary; the heuristic fallback applies keyword rules.
type Judge struct {
	provider ai.AIProvider
	logger   *errors.Logger
}

func NewJudge(provider ai.AIProvider, logger *errors.Logger) *Judge {
	return &Judge{provider: provider, logger: logger}
}

// Evaluate returns a verdict for the question. Violations is always
// non-nil so verdicts serialize with an explicit empty list.
func (j *Judge) Evaluate(ctx context.Context, question types.InterviewQuestion, resumeSnippet string) types.JudgeVerdict {
	if j.provider != nil {
		verdict, err := j.evaluateWithAI(ctx, question, resumeSnippet)
		if err == nil {
			return verdict
		}
		j.logger.LogError(err, "AI judge failed, using heuristic rules",
			"skill", question.Skill)
	}
	return j.evaluateWithHeuristics(question)
}

func (j *Judge) evaluateWithAI(ctx context.Context, question types.InterviewQuestion, resumeSnippet string) (types.JudgeVerdict, error) {
	output, _, err := j.provider.JudgeQuestion(ctx, types.JudgeQuestionInput{
		Skill:         question.Skill,
		Level:         question.Level,
		Question:      question.Question,
		ResumeSnippet: resumeSnippet,
	})
	if err != nil {
		return types.JudgeVerdict{}, err
	}

	violations := make([]string, 0, len(output.Violations))
	for _, v := range output.Violations {
		v = strings.ToLower(strings.TrimSpace(v))
		if knownViolations[v] {
			violations = append(violations, v)
		}
	}
	return types.JudgeVerdict{
		Skill:      question.Skill,
		Level:      question.Level,
		Question:   question.Question,
		Passes:     output.Passes && len(violations) == 0,
		Violations: violations,
	}, nil
}

func (j *Judge) evaluateWithHeuristics(question types.InterviewQuestion) types.JudgeVerdict {
	violations := make([]string, 0, 2)
	lowered := strings.ToLower(question.Question)

	if !mentionsSkill(lowered, question.Skill) {
		violations = append(violations, types.ViolationSkillMismatch)
	}

	hasComplexity := containsAny(lowered, judgeComplexityKeywords)
	switch question.Level {
	case types.LevelBeginner:
		if hasComplexity {
			violations = append(violations, types.ViolationTooAdvancedForLevel)
		}
	case types.LevelAdvanced:
		if !hasComplexity && !containsAny(lowered, judgeOpenEndedPhrases) {
			violations = append(violations, types.ViolationTooBasicForLevel)
		}
	}

	return types.JudgeVerdict{
		Skill:      question.Skill,
		Level:      question.Level,
		Question:   question.Question,
		Passes:     len(violations) == 0,
		Violations: violations,
	}
}

// mentionsSkill tolerates spacing differences such as "node js" in the
// question versus the "nodejs" skill key.
func mentionsSkill(loweredQuestion, skill string) bool {
	skill = strings.ToLower(skill)
	if strings.Contains(loweredQuestion, skill) {
		return true
	}
	collapsed := strings.ReplaceAll(loweredQuestion, " ", "")
	return strings.Contains(collapsed, strings.ReplaceAll(skill, " ", ""))
}
