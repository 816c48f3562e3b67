package ai

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"net"
	"net/http"
	"strings"
	"time"

	"resumint/internal/config"
	resumintErrors "resumint/internal/errors"
	"resumint/internal/types"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
)

// GeminiProvider implements AIProvider for Google Gemini
type GeminiProvider struct {
	client         *genai.Client
	httpClient     *http.Client
	config         *config.OperationAIConfig
	circuitBreaker *AICircuitBreaker
	modelBreaker   *ModelCircuitBreaker
	logger         *resumintErrors.Logger
}

// Ensure GeminiProvider implements AIProvider
var _ AIProvider = (*GeminiProvider)(nil)

// NewGeminiProvider creates a new Gemini provider instance for a specific operation
func NewGeminiProvider(cfg *config.OperationAIConfig, operationType string, logger *resumintErrors.Logger) (*GeminiProvider, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, resumintErrors.NewAIError(resumintErrors.ErrCodeAIServiceFailed,
			"Failed to create Gemini client", err)
	}

	// Initialize circuit breaker with operation-specific configuration
	circuitBreaker := NewAICircuitBreaker(operationType, cfg, logger)
	modelBreaker := NewModelCircuitBreaker(operationType, cfg, logger)

	return &GeminiProvider{
		client: client,
		httpClient: &http.Client{
			Timeout: *cfg.Timeout,
		},
		config:         cfg,
		circuitBreaker: circuitBreaker,
		modelBreaker:   modelBreaker,
		logger:         logger,
	}, nil
}

// ModelInfo represents information about the AI model
type ModelInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Version     string `json:"version,omitempty"`
	Available   bool   `json:"available"`
	Error       string `json:"error,omitempty"`
}

// GetModelInfo checks the readiness and availability of the configured model
func (g *GeminiProvider) GetModelInfo(ctx context.Context) *ModelInfo {
	modelInfo := &ModelInfo{
		Name:      g.config.Model,
		Available: false,
	}

	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// Get model information from Gemini API with circuit breaker
	model, err := g.modelBreaker.ExecuteModel(func() (*genai.Model, error) {
		return g.client.Models.Get(checkCtx, g.config.Model, &genai.GetModelConfig{})
	})
	if err != nil {
		modelInfo.Error = fmt.Sprintf("Failed to get model info: %v", err)

		g.logger.Warn("Model availability check failed",
			"model", g.config.Model,
			"provider", g.config.Provider,
			"error", err.Error())
		return modelInfo
	}

	modelInfo.Available = true
	if model.DisplayName != "" {
		modelInfo.DisplayName = model.DisplayName
	}
	if model.Version != "" {
		modelInfo.Version = model.Version
	}

	g.logger.Debug("Model availability check successful",
		"model", g.config.Model,
		"provider", g.config.Provider,
		"display_name", modelInfo.DisplayName,
		"version", modelInfo.Version)

	return modelInfo
}

// executeWithRetry executes an AI operation with retry logic and exponential backoff
func (g *GeminiProvider) executeWithRetry(ctx context.Context, operation string, fn func() (*genai.GenerateContentResponse, error)) (*genai.GenerateContentResponse, error) {
	var lastErr error

	for attempt := 0; attempt <= *g.config.MaxRetries; attempt++ {
		if attempt > 0 {
			g.logger.Warn("Retrying AI operation",
				"operation", operation,
				"attempt", attempt,
				"max_retries", *g.config.MaxRetries,
				"error", lastErr.Error())

			// Exponential backoff with jitter to prevent thundering herd
			baseDelay := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
			jitterMax := big.NewInt(int64(float64(baseDelay) * 0.1))
			jitterBig, _ := rand.Int(rand.Reader, jitterMax)
			jitter := time.Duration(jitterBig.Int64())
			// Cap maximum backoff at 30 seconds
			backoff := min(baseDelay+jitter, 30*time.Second)

			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		result, err := fn()
		if err == nil {
			if attempt > 0 {
				g.logger.Info("AI operation succeeded after retry",
					"operation", operation,
					"successful_attempt", attempt+1)
			}
			return result, nil
		}

		lastErr = err

		// Don't retry on certain errors (auth, invalid input, etc.)
		if !g.isRetryableError(err) {
			g.logger.Debug("Error is not retryable, stopping retry attempts",
				"operation", operation,
				"error", err.Error())
			break
		}
	}

	g.logger.LogError(lastErr, "AI operation failed after all retry attempts",
		"operation", operation,
		"total_attempts", *g.config.MaxRetries+1)

	return nil, fmt.Errorf("operation '%s' failed after %d retries: %w", operation, *g.config.MaxRetries, lastErr)
}

// isRetryableError determines if an error should trigger a retry
func (g *GeminiProvider) isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Check for network errors (timeouts, connection issues)
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return true
		}
		// Consider other network errors retryable (e.g., connection refused)
		return true
	}

	// Check for Google API errors (HTTP status codes)
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
	}

	return false
}

// executeAIOperation is a generic helper to run AI operations with common tracing, circuit breaker, and parsing logic.
func executeAIOperation[Out any](
	g *GeminiProvider,
	ctx context.Context,
	operationName string,
	userPrompt string,
	systemPrompt string,
	genaiConfig *genai.GenerateContentConfig,
	spanAttributes ...attribute.KeyValue,
) (Out, *TokenUsage, error) {
	var output Out
	tracer := otel.Tracer("resumint.ai.gemini")
	ctx, span := tracer.Start(ctx, "gemini."+operationName)
	defer span.End()

	span.SetAttributes(
		attribute.String("ai.provider", "gemini"),
		attribute.String("ai.model", g.config.Model),
		attribute.Float64("ai.temperature", float64(*g.config.Temperature)),
	)
	span.SetAttributes(spanAttributes...)

	if *g.config.UseSystemPrompts && systemPrompt != "" {
		genaiConfig.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	result, err := g.circuitBreaker.Execute(func() (*genai.GenerateContentResponse, error) {
		return g.executeWithRetry(ctx, operationName, func() (*genai.GenerateContentResponse, error) {
			return g.client.Models.GenerateContent(ctx, g.config.Model, genai.Text(userPrompt), genaiConfig)
		})
	})

	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return output, nil, resumintErrors.NewAIError(resumintErrors.ErrCodeAIServiceFailed, "Failed to generate content for "+operationName, err)
	}

	if err := json.Unmarshal([]byte(result.Text()), &output); err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return output, nil, resumintErrors.NewAIError(resumintErrors.ErrCodeAIResponseParse, "Failed to parse AI response for "+operationName, err)
	}

	tokenUsage := extractTokenUsage(result)
	if tokenUsage != nil {
		span.SetAttributes(
			attribute.Int64("ai.tokens.input", tokenUsage.InputTokens),
			attribute.Int64("ai.tokens.output", tokenUsage.OutputTokens),
			attribute.Int64("ai.tokens.total", tokenUsage.TotalTokens),
		)
	}

	span.SetAttributes(attribute.Bool("success", true))
	return output, tokenUsage, nil
}

// systemPromptOr returns the configured system prompt override, or def
func (g *GeminiProvider) systemPromptOr(def string) string {
	if g.config.SystemPrompt != "" {
		return g.config.SystemPrompt
	}
	return def
}

// userPromptOr returns the configured user prompt template override, or def.
// Overrides must carry the same format verbs as the default template.
func (g *GeminiProvider) userPromptOr(def string) string {
	if g.config.UserPrompt != "" {
		return g.config.UserPrompt
	}
	return def
}

// DetectSkills implements AIProvider interface for skill detection
func (g *GeminiProvider) DetectSkills(ctx context.Context, input types.DetectSkillsInput) (types.DetectSkillsOutput, *TokenUsage, error) {
	jobRole := input.JobRole
	if jobRole == "" {
		jobRole = "none"
	}
	userPrompt := fmt.Sprintf(g.userPromptOr(DefaultUserPrompts.DetectSkills),
		strings.Join(input.AvailableSkills, ", "),
		input.ResumeText,
		jobRole)

	output, tokenUsage, err := executeAIOperation[types.DetectSkillsOutput](
		g,
		ctx,
		"detect_skills",
		userPrompt,
		g.systemPromptOr(DefaultSystemPrompts.DetectSkills),
		g.buildDetectSchema(),
		attribute.Int("input.resume_length", len(input.ResumeText)),
		attribute.Int("input.available_skills", len(input.AvailableSkills)),
	)

	if err != nil {
		return types.DetectSkillsOutput{}, nil, err
	}

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(attribute.Int("output.detected_skills", len(output.Skills)))
	}

	return output, tokenUsage, nil
}

// InferLevel implements AIProvider interface for proficiency level inference
func (g *GeminiProvider) InferLevel(ctx context.Context, input types.InferLevelInput) (types.InferLevelOutput, *TokenUsage, error) {
	userPrompt := fmt.Sprintf(g.userPromptOr(DefaultUserPrompts.InferLevel),
		input.SkillKey,
		strings.Join(input.Excerpts, "\n\n---\n\n"))

	output, tokenUsage, err := executeAIOperation[types.InferLevelOutput](
		g,
		ctx,
		"infer_level",
		userPrompt,
		g.systemPromptOr(DefaultSystemPrompts.InferLevel),
		g.buildInferSchema(),
		attribute.String("input.skill", input.SkillKey),
		attribute.Int("input.excerpts", len(input.Excerpts)),
	)

	if err != nil {
		return types.InferLevelOutput{}, nil, err
	}

	return output, tokenUsage, nil
}

// GenerateQuestions implements AIProvider interface for question generation
func (g *GeminiProvider) GenerateQuestions(ctx context.Context, input types.GenerateQuestionsInput) (types.GenerateQuestionsOutput, *TokenUsage, error) {
	examples := make([]string, 0, len(input.Examples))
	for _, ex := range input.Examples {
		examples = append(examples, fmt.Sprintf("Skill: %s, Level: %s, Example: %q", ex.Skill, ex.Level, ex.Example))
	}

	skillsJSON, err := json.MarshalIndent(input.Skills, "", "  ")
	if err != nil {
		return types.GenerateQuestionsOutput{}, nil, resumintErrors.NewInternalError(
			resumintErrors.ErrCodeAIServiceFailed, "Failed to encode skills for prompt", err)
	}

	userPrompt := fmt.Sprintf(g.userPromptOr(DefaultUserPrompts.GenerateQuestions),
		strings.Join(examples, "\n"),
		string(skillsJSON),
		input.ResumeExcerpt)

	output, tokenUsage, err := executeAIOperation[types.GenerateQuestionsOutput](
		g,
		ctx,
		"generate_questions",
		userPrompt,
		g.systemPromptOr(DefaultSystemPrompts.GenerateQuestions),
		g.buildGenerateSchema(),
		attribute.Int("input.skills", len(input.Skills)),
		attribute.Int("input.examples", len(input.Examples)),
	)

	if err != nil {
		return types.GenerateQuestionsOutput{}, nil, err
	}

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(attribute.Int("output.questions", len(output.Questions)))
	}

	return output, tokenUsage, nil
}

// JudgeQuestion implements AIProvider interface for question quality review
func (g *GeminiProvider) JudgeQuestion(ctx context.Context, input types.JudgeQuestionInput) (types.JudgeQuestionOutput, *TokenUsage, error) {
	userPrompt := fmt.Sprintf(g.userPromptOr(DefaultUserPrompts.JudgeQuestion),
		input.Skill,
		input.Level,
		input.Question,
		input.ResumeSnippet)

	output, tokenUsage, err := executeAIOperation[types.JudgeQuestionOutput](
		g,
		ctx,
		"judge_question",
		userPrompt,
		g.systemPromptOr(DefaultSystemPrompts.JudgeQuestion),
		g.buildJudgeSchema(),
		attribute.String("input.skill", input.Skill),
		attribute.String("input.level", string(input.Level)),
	)

	if err != nil {
		return types.JudgeQuestionOutput{}, nil, err
	}

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(
			attribute.Bool("output.passes", output.Passes),
			attribute.Int("output.violations", len(output.Violations)),
		)
	}

	return output, tokenUsage, nil
}

// GetCircuitBreakerStats returns circuit breaker statistics
func (g *GeminiProvider) GetCircuitBreakerStats() map[string]any {
	stats := map[string]any{
		"ai_operations":    g.circuitBreaker.GetStats(),
		"model_operations": g.modelBreaker.GetModelStats(),
	}

	// Overall health - both breakers must be healthy
	aiHealthy := g.circuitBreaker.IsHealthy()
	modelHealthy := g.modelBreaker.IsModelHealthy()
	stats["overall_healthy"] = aiHealthy && modelHealthy

	return stats
}

// Close implements AIProvider interface
func (g *GeminiProvider) Close() error {
	// Gemini client doesn't have a Close method in current single-shot usage
	return nil
}

// buildDetectSchema creates the schema for skill detection requests
func (g *GeminiProvider) buildDetectSchema() *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"skills": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"skill":   {Type: genai.TypeString},
							"level":   {Type: genai.TypeString},
							"context": {Type: genai.TypeString},
						},
						Required: []string{"skill", "level", "context"},
					},
				},
			},
			Required: []string{"skills"},
		},
	}

	g.applyTemperature(config)
	return config
}

// buildInferSchema creates the schema for level inference requests
func (g *GeminiProvider) buildInferSchema() *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"level": {
					Type: genai.TypeString,
					Enum: []string{"beginner", "intermediate", "advanced"},
				},
			},
			Required: []string{"level"},
		},
	}

	g.applyTemperature(config)
	return config
}

// buildGenerateSchema creates the schema for question generation requests
func (g *GeminiProvider) buildGenerateSchema() *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"questions": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"skill":    {Type: genai.TypeString},
							"level":    {Type: genai.TypeString},
							"question": {Type: genai.TypeString},
						},
						Required: []string{"skill", "level", "question"},
					},
				},
			},
			Required: []string{"questions"},
		},
	}

	g.applyTemperature(config)
	return config
}

// buildJudgeSchema creates the schema for judge requests
func (g *GeminiProvider) buildJudgeSchema() *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"passes": {Type: genai.TypeBoolean},
				"violations": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
			},
			Required: []string{"passes", "violations"},
		},
	}

	g.applyTemperature(config)
	return config
}

// applyTemperature applies temperature configuration if set
func (g *GeminiProvider) applyTemperature(config *genai.GenerateContentConfig) {
	if *g.config.Temperature > 0 {
		config.Temperature = g.config.Temperature
	}
}

// TokenUsage represents token usage information from AI responses
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}

// extractTokenUsage extracts token usage information from Gemini API response
func extractTokenUsage(result *genai.GenerateContentResponse) *TokenUsage {
	if result == nil || result.UsageMetadata == nil {
		return nil
	}

	usage := result.UsageMetadata
	return &TokenUsage{
		InputTokens:  int64(usage.PromptTokenCount),
		OutputTokens: int64(usage.CandidatesTokenCount),
		TotalTokens:  int64(usage.TotalTokenCount),
	}
}
