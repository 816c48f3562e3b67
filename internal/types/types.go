package types

// Level is a canonical proficiency level for a detected skill.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Levels lists the canonical levels in ascending difficulty order.
var Levels = []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}

// ValidLevel reports whether l is exactly one of the three canonical labels.
func ValidLevel(l Level) bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

// DetectedSkill is one skill found in a resume along with its inferred level.
// Key joins the skill to a bank entry; Name is the human-readable form.
type DetectedSkill struct {
	Name  string `json:"name"`
	Key   string `json:"key"`
	Level Level  `json:"level"`
}

// InterviewQuestion is one question produced for a detected skill.
type InterviewQuestion struct {
	Skill    string `json:"skill"`
	Level    Level  `json:"level"`
	Question string `json:"question"`
	Solution string `json:"solution,omitempty"`
}

// QASummary reports judge results over the questions in one analysis.
type QASummary struct {
	Total  int `json:"total"`
	Passed int `json:"passed"`
}

// AnalysisResult is the response body for one resume analysis. It is built
// once per request and never mutated after being returned.
type AnalysisResult struct {
	Skills    []DetectedSkill     `json:"skills"`
	Questions []InterviewQuestion `json:"questions"`
	QASummary *QASummary          `json:"qa_summary,omitempty"`
}

// EmptyAnalysisResult returns the exact empty-detection response: both arrays
// present and empty, no qa_summary.
func EmptyAnalysisResult() AnalysisResult {
	return AnalysisResult{
		Skills:    []DetectedSkill{},
		Questions: []InterviewQuestion{},
	}
}

// JudgeVerdict is the outcome of validating one (skill, level, question)
// triple. Verdicts are append-only: once written to the trace sink they are
// never updated.
type JudgeVerdict struct {
	Timestamp  string   `json:"timestamp,omitempty"`
	Skill      string   `json:"skill"`
	Level      Level    `json:"level"`
	Question   string   `json:"question"`
	Passes     bool     `json:"passes"`
	Violations []string `json:"violations"`
}

// Violation strings emitted by the judge. Fixed vocabulary; new rules add new
// constants rather than free-form text.
const (
	ViolationSkillMismatch       = "skill_mismatch"
	ViolationTooBasicForLevel    = "question_too_basic_for_level"
	ViolationTooAdvancedForLevel = "question_too_advanced_for_level"
)

// AISkill is one skill returned by the skill-detection AI call.
type AISkill struct {
	Skill   string `json:"skill"`
	Level   string `json:"level"`
	Context string `json:"context"`
}

// DetectSkillsInput carries everything the AI needs to detect skills against
// the closed bank vocabulary.
type DetectSkillsInput struct {
	ResumeText      string
	AvailableSkills []string
	JobRole         string
}

// DetectSkillsOutput is the structured response from skill detection.
type DetectSkillsOutput struct {
	Skills []AISkill `json:"skills"`
}

// InferLevelInput carries a skill key and the resume excerpts surrounding its
// mentions.
type InferLevelInput struct {
	SkillKey string
	Excerpts []string
}

// InferLevelOutput is the structured response from level inference.
type InferLevelOutput struct {
	Level string `json:"level"`
}

// SkillPrompt describes one detected skill for question generation.
type SkillPrompt struct {
	Skill       string `json:"skill"`
	DisplayName string `json:"displayName"`
	Level       Level  `json:"level"`
	Context     string `json:"context,omitempty"`
}

// QuestionExample is a bank question used as a style reference in prompts.
type QuestionExample struct {
	Skill   string `json:"skill"`
	Level   Level  `json:"level"`
	Example string `json:"example"`
}

// GenerateQuestionsInput carries detected skills, style examples, and a
// resume excerpt for question generation.
type GenerateQuestionsInput struct {
	Skills        []SkillPrompt
	Examples      []QuestionExample
	ResumeExcerpt string
}

// AIQuestion is one question returned by the generation AI call, prior to
// validation against the bank.
type AIQuestion struct {
	Skill    string `json:"skill"`
	Level    string `json:"level"`
	Question string `json:"question"`
}

// GenerateQuestionsOutput is the structured response from question
// generation.
type GenerateQuestionsOutput struct {
	Questions []AIQuestion `json:"questions"`
}

// JudgeQuestionInput carries one triple for AI-based judging.
type JudgeQuestionInput struct {
	Skill         string
	Level         Level
	Question      string
	ResumeSnippet string
}

// JudgeQuestionOutput is the structured response from AI-based judging.
type JudgeQuestionOutput struct {
	Passes     bool     `json:"passes"`
	Violations []string `json:"violations"`
}
