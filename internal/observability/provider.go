package observability

import (
	"context"

	"resumint/internal/ai"
	"resumint/internal/types"
)

// InstrumentedProvider wraps an AI provider so every call is traced and
// recorded as AI metrics, including token usage.
type InstrumentedProvider struct {
	inner   ai.AIProvider
	metrics *Metrics
}

// NewInstrumentedProvider wraps provider. A nil metrics instance turns the
// wrapper into a passthrough.
func NewInstrumentedProvider(provider ai.AIProvider, metrics *Metrics) *InstrumentedProvider {
	return &InstrumentedProvider{inner: provider, metrics: metrics}
}

func convertTokenUsage(usage *ai.TokenUsage) *TokenUsage {
	if usage == nil {
		return nil
	}
	return &TokenUsage{
		InputTokens:  usage.InputTokens,
		OutputTokens: usage.OutputTokens,
		TotalTokens:  usage.TotalTokens,
	}
}

func (p *InstrumentedProvider) track(ctx context.Context, operation string, fn func(context.Context) (*ai.TokenUsage, error)) error {
	if p.metrics == nil {
		_, err := fn(ctx)
		return err
	}
	return p.metrics.TrackAIOperationWithTokens(ctx, operation, func(ctx context.Context) *AIOperationResult {
		usage, err := fn(ctx)
		return &AIOperationResult{Error: err, TokenUsage: convertTokenUsage(usage)}
	})
}

func (p *InstrumentedProvider) DetectSkills(ctx context.Context, input types.DetectSkillsInput) (types.DetectSkillsOutput, *ai.TokenUsage, error) {
	var output types.DetectSkillsOutput
	var usage *ai.TokenUsage
	err := p.track(ctx, "detect_skills", func(ctx context.Context) (*ai.TokenUsage, error) {
		var err error
		output, usage, err = p.inner.DetectSkills(ctx, input)
		return usage, err
	})
	return output, usage, err
}

func (p *InstrumentedProvider) InferLevel(ctx context.Context, input types.InferLevelInput) (types.InferLevelOutput, *ai.TokenUsage, error) {
	var output types.InferLevelOutput
	var usage *ai.TokenUsage
	err := p.track(ctx, "infer_level", func(ctx context.Context) (*ai.TokenUsage, error) {
		var err error
		output, usage, err = p.inner.InferLevel(ctx, input)
		return usage, err
	})
	return output, usage, err
}

func (p *InstrumentedProvider) GenerateQuestions(ctx context.Context, input types.GenerateQuestionsInput) (types.GenerateQuestionsOutput, *ai.TokenUsage, error) {
	var output types.GenerateQuestionsOutput
	var usage *ai.TokenUsage
	err := p.track(ctx, "generate_questions", func(ctx context.Context) (*ai.TokenUsage, error) {
		var err error
		output, usage, err = p.inner.GenerateQuestions(ctx, input)
		return usage, err
	})
	return output, usage, err
}

func (p *InstrumentedProvider) JudgeQuestion(ctx context.Context, input types.JudgeQuestionInput) (types.JudgeQuestionOutput, *ai.TokenUsage, error) {
	var output types.JudgeQuestionOutput
	var usage *ai.TokenUsage
	err := p.track(ctx, "judge_question", func(ctx context.Context) (*ai.TokenUsage, error) {
		var err error
		output, usage, err = p.inner.JudgeQuestion(ctx, input)
		return usage, err
	})
	return output, usage, err
}

func (p *InstrumentedProvider) GetModelInfo(ctx context.Context) *ai.ModelInfo {
	return p.inner.GetModelInfo(ctx)
}

func (p *InstrumentedProvider) Close() error {
	return p.inner.Close()
}
