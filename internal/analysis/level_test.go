package analysis

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"resumint/internal/types"
)

func TestInferFallbackKeywords(t *testing.T) {
	tests := []struct {
		name string
		text string
		det  Detection
		want types.Level
	}{
		{
			name: "advanced keyword near mention",
			text: "Python (advanced) used daily for data pipelines",
			det:  Detection{Key: "python", Variant: "python"},
			want: types.LevelAdvanced,
		},
		{
			name: "years of experience",
			text: "5+ years of production experience writing Python services",
			det:  Detection{Key: "python", Variant: "python"},
			want: types.LevelAdvanced,
		},
		{
			name: "beginner keyword",
			text: "Currently learning SQL through an online course",
			det:  Detection{Key: "sql", Variant: "sql"},
			want: types.LevelBeginner,
		},
		{
			name: "intermediate keyword",
			text: "Comfortable with Git workflows on team projects",
			det:  Detection{Key: "git", Variant: "git"},
			want: types.LevelIntermediate,
		},
		{
			name: "no level cues defaults to intermediate",
			text: "Skills: Python, SQL, Git",
			det:  Detection{Key: "git", Variant: "git"},
			want: types.LevelIntermediate,
		},
		{
			name: "skill not mentioned defaults to intermediate",
			text: "Barista at a coffee shop",
			det:  Detection{Key: "python", Variant: "python"},
			want: types.LevelIntermediate,
		},
		{
			name: "advanced wins over beginner in same window",
			text: "Expert in Python, still learning its async internals",
			det:  Detection{Key: "python", Variant: "python"},
			want: types.LevelAdvanced,
		},
		{
			name: "intermediate wins over beginner in same window",
			text: "I am familiar with python, 2+ years of use",
			det:  Detection{Key: "python", Variant: "python"},
			want: types.LevelIntermediate,
		},
	}

	inferencer := NewLevelInferencer(nil, testLogger())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := inferencer.Infer(context.Background(), tt.det, tt.text)
			if got != tt.want {
				t.Errorf("Infer() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInferFallbackDistantKeywordIgnored(t *testing.T) {
	// The advanced cue sits well outside the window around the git
	// mention, so git stays at the default level.
	padding := strings.Repeat("built internal tooling and dashboards ", 10)
	text := "Python (advanced) for data work. " + padding + " Used Git for version control."

	inferencer := NewLevelInferencer(nil, testLogger())
	got := inferencer.Infer(context.Background(), Detection{Key: "git", Variant: "git"}, text)
	if got != types.LevelIntermediate {
		t.Errorf("Infer() = %q, want intermediate when cues are out of range", got)
	}
}

func TestInferAIPath(t *testing.T) {
	provider := &fakeProvider{inferOut: types.InferLevelOutput{Level: "advanced"}}
	inferencer := NewLevelInferencer(provider, testLogger())

	got := inferencer.Infer(context.Background(), Detection{Key: "python", Variant: "python"},
		"Python developer shipping services since 2019")
	if got != types.LevelAdvanced {
		t.Errorf("Infer() = %q, want advanced from AI", got)
	}
	if provider.inferCalls != 1 {
		t.Errorf("provider called %d times, want 1", provider.inferCalls)
	}
	if len(provider.lastInferIn.Excerpts) == 0 {
		t.Error("provider received no excerpts")
	}
}

func TestInferAISkipsCallWithoutMentions(t *testing.T) {
	provider := &fakeProvider{inferOut: types.InferLevelOutput{Level: "advanced"}}
	inferencer := NewLevelInferencer(provider, testLogger())

	got := inferencer.Infer(context.Background(), Detection{Key: "python", Variant: "python"},
		"Barista at a coffee shop")
	if got != types.LevelIntermediate {
		t.Errorf("Infer() = %q, want intermediate when skill is never mentioned", got)
	}
	if provider.inferCalls != 0 {
		t.Errorf("provider called %d times, want 0 with no excerpts", provider.inferCalls)
	}
}

func TestInferAIFailureFallsBack(t *testing.T) {
	provider := &fakeProvider{inferErr: stderrors.New("model unavailable")}
	inferencer := NewLevelInferencer(provider, testLogger())

	got := inferencer.Infer(context.Background(), Detection{Key: "python", Variant: "python"},
		"Expert in Python performance tuning")
	if got != types.LevelAdvanced {
		t.Errorf("Infer() = %q, want advanced from keyword fallback", got)
	}
}

func TestInferAIInvalidLevelNormalizes(t *testing.T) {
	provider := &fakeProvider{inferOut: types.InferLevelOutput{Level: "wizard"}}
	inferencer := NewLevelInferencer(provider, testLogger())

	got := inferencer.Infer(context.Background(), Detection{Key: "python", Variant: "python"},
		"Python mentioned here with no other cues")
	if got != types.LevelIntermediate {
		t.Errorf("Infer() = %q, want intermediate for unknown AI level", got)
	}
}

func TestSkillExcerpts(t *testing.T) {
	text := strings.Repeat("x", 300) + " Python appears here " + strings.Repeat("y", 300) +
		" python again " + strings.Repeat("z", 300) + " PYTHON third " + strings.Repeat("w", 300) +
		" python fourth"

	excerpts := skillExcerpts(text, "python", aiExcerptRadius, maxInferenceExcerpts)
	if len(excerpts) != maxInferenceExcerpts {
		t.Fatalf("got %d excerpts, want %d", len(excerpts), maxInferenceExcerpts)
	}
	for i, e := range excerpts {
		if !strings.Contains(strings.ToLower(e), "python") {
			t.Errorf("excerpt %d does not contain the skill mention: %q", i, e)
		}
		if len(e) > 2*aiExcerptRadius+len("python") {
			t.Errorf("excerpt %d length %d exceeds window bounds", i, len(e))
		}
	}
	// Excerpts are lowercased along with the matched text.
	if strings.Contains(excerpts[0], "Python") {
		t.Errorf("excerpt should be lowercased: %q", excerpts[0])
	}
}

func TestSkillExcerptsWidthChangingRunes(t *testing.T) {
	// Lowercasing U+023A grows it from 2 bytes to 3, shifting byte
	// offsets past the original text length.
	text := strings.Repeat("Ⱥ", 200) + " python"

	excerpts := skillExcerpts(text, "python", aiExcerptRadius, maxInferenceExcerpts)
	if len(excerpts) != 1 {
		t.Fatalf("got %d excerpts, want 1", len(excerpts))
	}
	if !strings.Contains(excerpts[0], "python") {
		t.Errorf("excerpt lost the mention: %q", excerpts[0])
	}

	inferencer := NewLevelInferencer(nil, testLogger())
	if got := inferencer.Infer(context.Background(), Detection{Key: "python", Variant: "python"}, text); got != types.LevelIntermediate {
		t.Errorf("Infer() = %q, want intermediate default", got)
	}
}

func TestSkillExcerptsWordBoundary(t *testing.T) {
	if got := skillExcerpts("loves pythonic code", "python", aiExcerptRadius, maxInferenceExcerpts); len(got) != 0 {
		t.Errorf("got %d excerpts for partial-word match, want 0", len(got))
	}
}
