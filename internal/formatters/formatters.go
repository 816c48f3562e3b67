package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"resumint/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "AnalysisResult", &AnalysisTextFormatter{})
	registry.RegisterFormatter("markdown", "AnalysisResult", &AnalysisMarkdownFormatter{})
	registry.RegisterFormatter("text", "JudgeVerdict", &VerdictTextFormatter{})
	registry.RegisterFormatter("markdown", "JudgeVerdict", &VerdictMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.AnalysisResult, *types.AnalysisResult:
		return "AnalysisResult"
	case types.JudgeVerdict, *types.JudgeVerdict:
		return "JudgeVerdict"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

func asAnalysisResult(data any) (types.AnalysisResult, error) {
	switch v := data.(type) {
	case types.AnalysisResult:
		return v, nil
	case *types.AnalysisResult:
		return *v, nil
	}
	return types.AnalysisResult{}, fmt.Errorf("expected AnalysisResult, got %T", data)
}

func asJudgeVerdict(data any) (types.JudgeVerdict, error) {
	switch v := data.(type) {
	case types.JudgeVerdict:
		return v, nil
	case *types.JudgeVerdict:
		return *v, nil
	}
	return types.JudgeVerdict{}, fmt.Errorf("expected JudgeVerdict, got %T", data)
}

// AnalysisTextFormatter handles text formatting for analysis results
type AnalysisTextFormatter struct{}

func (atf *AnalysisTextFormatter) Format(data any) (string, error) {
	result, err := asAnalysisResult(data)
	if err != nil {
		return "", err
	}

	var output strings.Builder

	output.WriteString("=== DETECTED SKILLS ===\n\n")
	if len(result.Skills) == 0 {
		output.WriteString("No skills detected.\n")
	} else {
		for _, skill := range result.Skills {
			output.WriteString(fmt.Sprintf("- %s (%s)\n", skill.Name, skill.Level))
		}
	}
	output.WriteString("\n")

	output.WriteString("=== INTERVIEW QUESTIONS ===\n\n")
	if len(result.Questions) == 0 {
		output.WriteString("No questions generated.\n")
	} else {
		for i, q := range result.Questions {
			output.WriteString(fmt.Sprintf("%d. [%s / %s] %s\n", i+1, q.Skill, q.Level, q.Question))
			if q.Solution != "" {
				output.WriteString("   Solution: ")
				output.WriteString(q.Solution)
				output.WriteString("\n")
			}
		}
	}

	if result.QASummary != nil {
		output.WriteString("\n=== QUALITY CHECK ===\n")
		output.WriteString(fmt.Sprintf("Passed: %d/%d\n", result.QASummary.Passed, result.QASummary.Total))
	}

	return output.String(), nil
}

func (atf *AnalysisTextFormatter) SupportedType() string {
	return "AnalysisResult"
}

// AnalysisMarkdownFormatter handles markdown formatting for analysis results
type AnalysisMarkdownFormatter struct{}

func (amf *AnalysisMarkdownFormatter) Format(data any) (string, error) {
	result, err := asAnalysisResult(data)
	if err != nil {
		return "", err
	}

	var output strings.Builder

	output.WriteString("# Resume Analysis\n\n")

	output.WriteString("## Detected Skills\n\n")
	if len(result.Skills) == 0 {
		output.WriteString("No skills detected.\n")
	} else {
		for _, skill := range result.Skills {
			output.WriteString(fmt.Sprintf("- **%s** (%s)\n", skill.Name, skill.Level))
		}
	}
	output.WriteString("\n")

	output.WriteString("## Interview Questions\n\n")
	if len(result.Questions) == 0 {
		output.WriteString("No questions generated.\n")
	} else {
		for i, q := range result.Questions {
			output.WriteString(fmt.Sprintf("%d. **%s** (%s): %s\n", i+1, q.Skill, q.Level, q.Question))
			if q.Solution != "" {
				output.WriteString("   - Solution: ")
				output.WriteString(q.Solution)
				output.WriteString("\n")
			}
		}
	}

	if result.QASummary != nil {
		output.WriteString("\n## Quality Check\n\n")
		output.WriteString(fmt.Sprintf("**Passed:** %d/%d\n", result.QASummary.Passed, result.QASummary.Total))
	}

	return output.String(), nil
}

func (amf *AnalysisMarkdownFormatter) SupportedType() string {
	return "AnalysisResult"
}

// VerdictTextFormatter handles text formatting for judge verdicts
type VerdictTextFormatter struct{}

func (vtf *VerdictTextFormatter) Format(data any) (string, error) {
	verdict, err := asJudgeVerdict(data)
	if err != nil {
		return "", err
	}

	var output strings.Builder

	output.WriteString("=== QUESTION VERDICT ===\n\n")
	output.WriteString(fmt.Sprintf("Skill:    %s\n", verdict.Skill))
	output.WriteString(fmt.Sprintf("Level:    %s\n", verdict.Level))
	output.WriteString(fmt.Sprintf("Question: %s\n", verdict.Question))
	if verdict.Passes {
		output.WriteString("Result:   PASS\n")
	} else {
		output.WriteString("Result:   FAIL\n")
	}
	if len(verdict.Violations) > 0 {
		output.WriteString("Violations:\n")
		for _, v := range verdict.Violations {
			output.WriteString(fmt.Sprintf("- %s\n", v))
		}
	}

	return output.String(), nil
}

func (vtf *VerdictTextFormatter) SupportedType() string {
	return "JudgeVerdict"
}

// VerdictMarkdownFormatter handles markdown formatting for judge verdicts
type VerdictMarkdownFormatter struct{}

func (vmf *VerdictMarkdownFormatter) Format(data any) (string, error) {
	verdict, err := asJudgeVerdict(data)
	if err != nil {
		return "", err
	}

	var output strings.Builder

	output.WriteString("# Question Verdict\n\n")
	output.WriteString(fmt.Sprintf("**Skill:** %s\n\n", verdict.Skill))
	output.WriteString(fmt.Sprintf("**Level:** %s\n\n", verdict.Level))
	output.WriteString(fmt.Sprintf("**Question:** %s\n\n", verdict.Question))
	if verdict.Passes {
		output.WriteString("**Result:** PASS\n")
	} else {
		output.WriteString("**Result:** FAIL\n")
	}
	if len(verdict.Violations) > 0 {
		output.WriteString("\n## Violations\n\n")
		for _, v := range verdict.Violations {
			output.WriteString(fmt.Sprintf("- %s\n", v))
		}
	}

	return output.String(), nil
}

func (vmf *VerdictMarkdownFormatter) SupportedType() string {
	return "JudgeVerdict"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
