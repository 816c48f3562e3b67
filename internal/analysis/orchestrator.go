package analysis

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"resumint/internal/bank"
	"resumint/internal/errors"
	"resumint/internal/trace"
	"resumint/internal/types"
)

const judgeSnippetLimit = 500

// Stats summarizes one analysis run for the caller's metrics; the
// pipeline itself stays free of instrumentation.
type Stats struct {
	TextChars      int
	SkillsDetected int
	QuestionCount  int
	AIDetect       bool
	AIGenerate     bool
	Degraded       bool
	JudgeTotal     int
	JudgePassed    int
}

// Orchestrator runs the full resume analysis pipeline: text extraction,
// skill detection, level inference, question generation and optional
// judging. It reads the bank through the store so hot reloads take
// effect between requests.
type Orchestrator struct {
	store      *bank.Store
	detector   *Detector
	inferencer *LevelInferencer
	generator  *Generator
	judge      *Judge
	judgeOn    bool
	judgeMode  string
	sink       trace.Sink
	logger     *errors.Logger
}

type OrchestratorOptions struct {
	Store      *bank.Store
	Detector   *Detector
	Inferencer *LevelInferencer
	Generator  *Generator
	Judge      *Judge
	JudgeOn    bool
	JudgeMode  string
	Sink       trace.Sink
	Logger     *errors.Logger
}

func NewOrchestrator(opts OrchestratorOptions) *Orchestrator {
	sink := opts.Sink
	if sink == nil {
		sink = trace.NopSink{}
	}
	return &Orchestrator{
		store:      opts.Store,
		detector:   opts.Detector,
		inferencer: opts.Inferencer,
		generator:  opts.Generator,
		judge:      opts.Judge,
		judgeOn:    opts.JudgeOn,
		judgeMode:  opts.JudgeMode,
		sink:       sink,
		logger:     opts.Logger,
	}
}

// Analyze turns raw PDF bytes into an analysis result. Extraction
// failures and empty resumes produce an empty result, never an error;
// the error return is reserved for faults that make the result itself
// meaningless.
func (o *Orchestrator) Analyze(ctx context.Context, pdfContent []byte, jobRole string) (types.AnalysisResult, Stats, error) {
	var stats Stats

	text, err := ExtractText(pdfContent)
	if err != nil {
		o.logger.LogError(err, "PDF text extraction failed, returning empty result")
		return types.EmptyAnalysisResult(), stats, nil
	}
	stats.TextChars = len(text)

	if IsEmptyText(text) {
		o.logger.Info("Resume contains no usable text")
		return types.EmptyAnalysisResult(), stats, nil
	}

	b := o.store.Bank()

	detected, aiDetect := o.detector.Detect(ctx, text, jobRole, b)
	stats.AIDetect = aiDetect
	stats.SkillsDetected = len(detected)
	if len(detected) == 0 {
		return types.EmptyAnalysisResult(), stats, nil
	}

	o.inferLevels(ctx, detected, text)

	questions, aiGenerate := o.generator.Generate(ctx, detected, text, b)
	stats.AIGenerate = aiGenerate

	result := types.AnalysisResult{
		Skills:    make([]types.DetectedSkill, 0, len(detected)),
		Questions: questions,
	}
	for _, det := range detected {
		result.Skills = append(result.Skills, types.DetectedSkill{
			Name:  det.Name,
			Key:   det.Key,
			Level: det.Level,
		})
	}

	if o.judgeOn && len(result.Questions) > 0 {
		o.applyJudge(ctx, &result, detected, text, b, &stats)
	}

	stats.QuestionCount = len(result.Questions)
	if len(result.Questions) < minQuestions {
		stats.Degraded = true
		o.logger.Warn("Question bank could not satisfy the minimum question count",
			"question_count", len(result.Questions),
			"skills_detected", len(detected))
	}
	return result, stats, nil
}

// inferLevels fills in levels the detector left empty, one goroutine
// per skill. Inference never fails so the group collects no errors.
func (o *Orchestrator) inferLevels(ctx context.Context, detected []Detection, text string) {
	g, gctx := errgroup.WithContext(ctx)
	for i := range detected {
		if detected[i].Level != "" {
			continue
		}
		det := &detected[i]
		g.Go(func() error {
			det.Level = o.inferencer.Infer(gctx, *det, text)
			return nil
		})
	}
	_ = g.Wait()
}

// applyJudge evaluates every generated question. In flag mode the
// verdicts only feed qa_summary; in filter mode failing questions are
// dropped and the bank re-backfills toward the floor. Every verdict is
// appended to the trace sink.
func (o *Orchestrator) applyJudge(ctx context.Context, result *types.AnalysisResult, detected []Detection, text string, b *bank.Bank, stats *Stats) {
	snippet := text
	if len(snippet) > judgeSnippetLimit {
		snippet = snippet[:judgeSnippetLimit]
	}

	passing := make([]types.InterviewQuestion, 0, len(result.Questions))
	failedTexts := make(map[string]bool)
	passed := 0
	for _, q := range result.Questions {
		verdict := o.judge.Evaluate(ctx, q, snippet)
		if err := o.sink.Record(verdict); err != nil {
			o.logger.LogError(err, "Failed to record judge verdict")
		}
		if verdict.Passes {
			passed++
			passing = append(passing, q)
		} else {
			failedTexts[q.Question] = true
		}
	}

	total := len(result.Questions)
	switch o.judgeMode {
	case "filter":
		if len(passing) < minQuestions {
			// Backfilled bank questions are served as curated, without a
			// second judge round.
			passing = o.generator.fillFromBank(detected, passing, failedTexts, b)
		}
		result.Questions = truncateQuestions(passing)
	default:
		result.QASummary = &types.QASummary{Total: total, Passed: passed}
	}
	stats.JudgeTotal += total
	stats.JudgePassed += passed
}

// JudgeQuestion evaluates a single question and records the verdict.
func (o *Orchestrator) JudgeQuestion(ctx context.Context, question types.InterviewQuestion, resumeSnippet string) types.JudgeVerdict {
	verdict := o.judge.Evaluate(ctx, question, resumeSnippet)
	if err := o.sink.Record(verdict); err != nil {
		o.logger.LogError(err, "Failed to record judge verdict")
	}
	return verdict
}

// FreshQuestion serves a replacement question for a skill and level,
// excluding the one the caller already has. With a provider and resume
// text it asks the AI for a personalized question first; the bank pool
// is the fallback, falling through to intermediate before giving up.
func (o *Orchestrator) FreshQuestion(ctx context.Context, skill string, level types.Level, excludeQuestion, resumeText string) (types.InterviewQuestion, error) {
	key := strings.ToLower(strings.TrimSpace(skill))
	b := o.store.Bank()
	if !b.Has(key) {
		return types.InterviewQuestion{}, errors.NewValidationError(
			errors.ErrCodeInvalidRequest,
			fmt.Sprintf("unknown skill: %s", skill), nil)
	}
	if !types.ValidLevel(level) {
		level = types.LevelIntermediate
	}

	if resumeText != "" {
		det := Detection{Key: key, Name: b.DisplayName(key), Level: level}
		if generated, ok := o.generator.Generate(ctx, []Detection{det}, resumeText, b); ok {
			for _, q := range generated {
				if q.Skill == key && q.Question != excludeQuestion {
					return q, nil
				}
			}
		}
	}

	levels := []types.Level{level}
	if level != types.LevelIntermediate {
		levels = append(levels, types.LevelIntermediate)
	}
	for _, lvl := range levels {
		for _, text := range b.QuestionsFor(key, lvl) {
			if text == excludeQuestion {
				continue
			}
			return types.InterviewQuestion{Skill: key, Level: lvl, Question: text}, nil
		}
	}
	return types.InterviewQuestion{}, errors.NewBankError(
		errors.ErrCodeBankExhausted,
		fmt.Sprintf("no alternative question available for %s at %s level", key, level), nil)
}
