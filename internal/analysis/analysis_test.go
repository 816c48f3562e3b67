package analysis

import (
	"context"
	"log/slog"
	"testing"

	"resumint/internal/ai"
	"resumint/internal/bank"
	"resumint/internal/errors"
	"resumint/internal/types"
)

const testBankJSON = `[
  {
    "skill": "python",
    "displayName": "Python",
    "levels": {
      "beginner": ["What is a Python list?", "How do you define a function in Python?"],
      "intermediate": ["Explain Python decorators with an example.", "How does Python manage memory?"],
      "advanced": ["How would you optimize a slow Python data pipeline?", "Describe how the Python GIL affects multithreaded programs."]
    }
  },
  {
    "skill": "sql",
    "displayName": "SQL",
    "levels": {
      "beginner": ["What does a SELECT statement do in SQL?"],
      "intermediate": ["Explain the difference between SQL INNER JOIN and LEFT JOIN."],
      "advanced": ["How would you optimize a slow SQL query on a large table?"]
    }
  },
  {
    "skill": "javascript",
    "displayName": "JavaScript",
    "levels": {
      "beginner": ["What is a JavaScript variable?"],
      "intermediate": ["Explain JavaScript closures."],
      "advanced": ["Describe how the JavaScript event loop handles promises."]
    }
  },
  {
    "skill": "git",
    "displayName": "Git",
    "levels": {
      "beginner": ["What does git commit do?"],
      "intermediate": ["Explain the difference between git merge and git rebase."],
      "advanced": ["How would you design a Git branching strategy for a large team?"]
    }
  },
  {
    "skill": "html",
    "displayName": "HTML",
    "levels": {
      "beginner": ["What is an HTML tag?"],
      "intermediate": ["Explain semantic HTML and why it matters."],
      "advanced": ["How would you structure HTML for a complex accessible form?"]
    }
  },
  {
    "skill": "css",
    "displayName": "CSS",
    "levels": {
      "beginner": ["What is a CSS selector?"],
      "intermediate": ["Explain the CSS box model."],
      "advanced": ["How would you design a CSS architecture for a large application?"]
    }
  }
]`

func testBank(t *testing.T) *bank.Bank {
	t.Helper()
	b, err := bank.Parse([]byte(testBankJSON))
	if err != nil {
		t.Fatalf("failed to parse test bank: %v", err)
	}
	return b
}

func testLogger() *errors.Logger {
	return errors.NewLogger(slog.LevelError)
}

// fakeProvider is a canned AIProvider for exercising the AI-primary
// paths without a live model.
type fakeProvider struct {
	detectOut   types.DetectSkillsOutput
	detectErr   error
	inferOut    types.InferLevelOutput
	inferErr    error
	generateOut types.GenerateQuestionsOutput
	generateErr error
	judgeOut    types.JudgeQuestionOutput
	judgeErr    error

	detectCalls   int
	inferCalls    int
	generateCalls int
	judgeCalls    int
	lastDetectIn  types.DetectSkillsInput
	lastInferIn   types.InferLevelInput
}

func (f *fakeProvider) DetectSkills(_ context.Context, input types.DetectSkillsInput) (types.DetectSkillsOutput, *ai.TokenUsage, error) {
	f.detectCalls++
	f.lastDetectIn = input
	return f.detectOut, nil, f.detectErr
}

func (f *fakeProvider) InferLevel(_ context.Context, input types.InferLevelInput) (types.InferLevelOutput, *ai.TokenUsage, error) {
	f.inferCalls++
	f.lastInferIn = input
	return f.inferOut, nil, f.inferErr
}

func (f *fakeProvider) GenerateQuestions(_ context.Context, _ types.GenerateQuestionsInput) (types.GenerateQuestionsOutput, *ai.TokenUsage, error) {
	f.generateCalls++
	return f.generateOut, nil, f.generateErr
}

func (f *fakeProvider) JudgeQuestion(_ context.Context, _ types.JudgeQuestionInput) (types.JudgeQuestionOutput, *ai.TokenUsage, error) {
	f.judgeCalls++
	return f.judgeOut, nil, f.judgeErr
}

func (f *fakeProvider) GetModelInfo(_ context.Context) *ai.ModelInfo { return nil }

func (f *fakeProvider) Close() error { return nil }
