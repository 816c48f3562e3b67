package ai

import (
	"context"

	"resumint/internal/types"
)

// AIProvider interface for different AI implementations
// All methods return token usage information - callers can ignore it if not needed
type AIProvider interface {
	DetectSkills(ctx context.Context, input types.DetectSkillsInput) (types.DetectSkillsOutput, *TokenUsage, error)
	InferLevel(ctx context.Context, input types.InferLevelInput) (types.InferLevelOutput, *TokenUsage, error)
	GenerateQuestions(ctx context.Context, input types.GenerateQuestionsInput) (types.GenerateQuestionsOutput, *TokenUsage, error)
	JudgeQuestion(ctx context.Context, input types.JudgeQuestionInput) (types.JudgeQuestionOutput, *TokenUsage, error)
	GetModelInfo(ctx context.Context) *ModelInfo
	Close() error
}
