package analysis

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"resumint/internal/ai"
	"resumint/internal/bank"
	"resumint/internal/errors"
	"resumint/internal/trace"
	"resumint/internal/types"
)

func testOrchestrator(t *testing.T, provider ai.AIProvider, judgeOn bool, judgeMode string) *Orchestrator {
	t.Helper()

	path := filepath.Join(t.TempDir(), "bank.json")
	if err := os.WriteFile(path, []byte(testBankJSON), 0o644); err != nil {
		t.Fatalf("failed to write bank file: %v", err)
	}
	logger := testLogger()
	store, err := bank.NewStore(path, logger)
	if err != nil {
		t.Fatalf("failed to open bank store: %v", err)
	}
	t.Cleanup(func() { store.Stop() })

	return NewOrchestrator(OrchestratorOptions{
		Store:      store,
		Detector:   NewDetector(provider, logger),
		Inferencer: NewLevelInferencer(provider, logger),
		Generator:  NewGenerator(provider, logger),
		Judge:      NewJudge(provider, logger),
		JudgeOn:    judgeOn,
		JudgeMode:  judgeMode,
		Sink:       trace.NopSink{},
		Logger:     logger,
	})
}

func TestAnalyzeUnreadablePDFReturnsEmptyResult(t *testing.T) {
	orch := testOrchestrator(t, nil, false, "flag")

	result, stats, err := orch.Analyze(context.Background(), []byte("not a pdf at all"), "")
	if err != nil {
		t.Fatalf("Analyze() unexpected error: %v", err)
	}
	if result.Skills == nil || result.Questions == nil {
		t.Fatal("empty result must carry non-nil slices")
	}
	if len(result.Skills) != 0 || len(result.Questions) != 0 {
		t.Errorf("got %d skills and %d questions, want empty result", len(result.Skills), len(result.Questions))
	}
	if stats.SkillsDetected != 0 {
		t.Errorf("stats.SkillsDetected = %d, want 0", stats.SkillsDetected)
	}
}

func TestJudgeQuestionRecordsVerdict(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.json")
	if err := os.WriteFile(path, []byte(testBankJSON), 0o644); err != nil {
		t.Fatalf("failed to write bank file: %v", err)
	}
	logger := testLogger()
	store, err := bank.NewStore(path, logger)
	if err != nil {
		t.Fatalf("failed to open bank store: %v", err)
	}
	defer store.Stop()

	tracePath := filepath.Join(t.TempDir(), "judge.jsonl")
	sink, err := trace.NewJSONLSink(tracePath)
	if err != nil {
		t.Fatalf("failed to open trace sink: %v", err)
	}
	defer sink.Close()

	orch := NewOrchestrator(OrchestratorOptions{
		Store:      store,
		Detector:   NewDetector(nil, logger),
		Inferencer: NewLevelInferencer(nil, logger),
		Generator:  NewGenerator(nil, logger),
		Judge:      NewJudge(nil, logger),
		JudgeOn:    true,
		JudgeMode:  "flag",
		Sink:       sink,
		Logger:     logger,
	})

	verdict := orch.JudgeQuestion(context.Background(), types.InterviewQuestion{
		Skill: "python", Level: types.LevelAdvanced, Question: "What is a Python variable?",
	}, "resume snippet")
	if verdict.Passes {
		t.Error("expected the heuristic judge to fail a basic advanced question")
	}

	data, err := os.ReadFile(tracePath)
	if err != nil {
		t.Fatalf("failed to read trace file: %v", err)
	}
	if !strings.Contains(string(data), types.ViolationTooBasicForLevel) {
		t.Errorf("trace file does not record the violation: %s", data)
	}
}

func TestFreshQuestionRotatesPool(t *testing.T) {
	orch := testOrchestrator(t, nil, false, "flag")

	first, err := orch.FreshQuestion(context.Background(), "python", types.LevelIntermediate, "", "")
	if err != nil {
		t.Fatalf("FreshQuestion() unexpected error: %v", err)
	}
	second, err := orch.FreshQuestion(context.Background(), "python", types.LevelIntermediate, first.Question, "")
	if err != nil {
		t.Fatalf("FreshQuestion() unexpected error: %v", err)
	}
	if second.Question == first.Question {
		t.Errorf("FreshQuestion() repeated the excluded question %q", first.Question)
	}
	if second.Skill != "python" {
		t.Errorf("second.Skill = %q, want python", second.Skill)
	}
}

func TestFreshQuestionFallsBackToIntermediate(t *testing.T) {
	orch := testOrchestrator(t, nil, false, "flag")

	// The sql advanced pool holds a single question; excluding it drops
	// to the intermediate pool.
	advanced, err := orch.FreshQuestion(context.Background(), "sql", types.LevelAdvanced, "", "")
	if err != nil {
		t.Fatalf("FreshQuestion() unexpected error: %v", err)
	}
	next, err := orch.FreshQuestion(context.Background(), "sql", types.LevelAdvanced, advanced.Question, "")
	if err != nil {
		t.Fatalf("FreshQuestion() unexpected error: %v", err)
	}
	if next.Level != types.LevelIntermediate {
		t.Errorf("next.Level = %q, want intermediate fallback", next.Level)
	}
}

func TestFreshQuestionExhaustion(t *testing.T) {
	orch := testOrchestrator(t, nil, false, "flag")

	// javascript has one question per level; exclude the intermediate one
	// and the intermediate request has nowhere left to go.
	_, err := orch.FreshQuestion(context.Background(), "javascript",
		types.LevelIntermediate, "Explain JavaScript closures.", "")
	if err == nil {
		t.Fatal("FreshQuestion() expected exhaustion error")
	}
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) || appErr.Code != errors.ErrCodeBankExhausted {
		t.Errorf("err = %v, want %s", err, errors.ErrCodeBankExhausted)
	}
}

func TestFreshQuestionUnknownSkill(t *testing.T) {
	orch := testOrchestrator(t, nil, false, "flag")

	_, err := orch.FreshQuestion(context.Background(), "fortran", types.LevelIntermediate, "", "")
	if err == nil {
		t.Fatal("FreshQuestion() expected an error for an unknown skill")
	}
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) || appErr.Code != errors.ErrCodeInvalidRequest {
		t.Errorf("err = %v, want %s", err, errors.ErrCodeInvalidRequest)
	}
}
