package server

import (
	stderrors "errors"
	"io"
	"net/http"
	"strings"
	"time"

	"resumint/internal/errors"
	"resumint/internal/observability"
	"resumint/internal/types"
	"resumint/internal/utils"

	"go.opentelemetry.io/otel/attribute"
)

// createAnalyzeResumeHandler handles multipart resume uploads and runs
// the full analysis pipeline.
func (s *Server) createAnalyzeResumeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumint.api")
		ctx, span := tracer.Start(ctx, "api.analyze_resume")
		defer span.End()

		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		if err := r.ParseMultipartForm(s.MaxRequestSize); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid multipart form", err.Error(), http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("resumeFile")
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing resume file", "resumeFile form field is required", http.StatusBadRequest)
			return
		}
		defer func() {
			if err := file.Close(); err != nil {
				s.Logger.LogError(err, "Failed to close uploaded file")
			}
		}()

		if !utils.IsPDFFile(header.Filename) {
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "File must be a PDF", "only PDF resumes are supported", http.StatusBadRequest)
			return
		}

		pdfContent, err := io.ReadAll(file)
		if err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Failed to read resume file", err.Error(), http.StatusBadRequest)
			return
		}

		jobRole := strings.TrimSpace(r.FormValue("jobRole"))

		span.SetAttributes(
			attribute.Int("request.file_size", len(pdfContent)),
			attribute.String("request.job_role", jobRole),
			attribute.String("operation", "analyze_resume"),
		)

		start := time.Now()
		result, stats, err := s.Orchestrator.Analyze(ctx, pdfContent, jobRole)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "analysis"))
			writeErrorResponse(w, "Failed to analyze resume", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics := om.GetMetrics()
		metrics.RecordAnalysis(ctx, time.Since(start), stats.SkillsDetected, stats.QuestionCount, stats.Degraded)
		if !stats.AIDetect {
			metrics.RecordFallback(ctx, "detect")
		}
		if !stats.AIGenerate {
			metrics.RecordFallback(ctx, "generate")
		}
		metrics.RecordJudgeVerdicts(ctx, stats.JudgeTotal, stats.JudgePassed)

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.skills", stats.SkillsDetected),
			attribute.Int("response.questions", stats.QuestionCount),
			attribute.Bool("response.degraded", stats.Degraded),
		)

		writeJSONResponse(w, s.Logger, result)
	}
}

// createJudgeHandler evaluates a single skill/level/question triple.
func (s *Server) createJudgeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumint.api")
		ctx, span := tracer.Start(ctx, "api.judge")
		defer span.End()

		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req JudgeRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.Skill) == "" || strings.TrimSpace(req.Question) == "" {
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing required fields", "skill and question fields are required", http.StatusBadRequest)
			return
		}

		level := types.Level(strings.ToLower(strings.TrimSpace(req.Level)))
		if !types.ValidLevel(level) {
			level = types.LevelIntermediate
		}

		question := types.InterviewQuestion{
			Skill:    strings.ToLower(strings.TrimSpace(req.Skill)),
			Level:    level,
			Question: req.Question,
		}

		verdict := s.Orchestrator.JudgeQuestion(ctx, question, req.ResumeSnippet)

		metrics := om.GetMetrics()
		passed := 0
		if verdict.Passes {
			passed = 1
		}
		metrics.RecordJudgeVerdicts(ctx, 1, passed)

		span.SetAttributes(
			attribute.String("judge.skill", question.Skill),
			attribute.String("judge.level", string(question.Level)),
			attribute.Bool("judge.passes", verdict.Passes),
		)

		writeJSONResponse(w, s.Logger, verdict)
	}
}

// createRefreshQuestionHandler draws a replacement question for a skill
// and level.
func (s *Server) createRefreshQuestionHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumint.api")
		ctx, span := tracer.Start(ctx, "api.refresh_question")
		defer span.End()

		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req RefreshQuestionRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.Skill) == "" {
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing skill", "skill field is required", http.StatusBadRequest)
			return
		}

		level := types.Level(strings.ToLower(strings.TrimSpace(req.Level)))

		question, err := s.Orchestrator.FreshQuestion(ctx, req.Skill, level, req.ExcludeQuestion, req.ResumeText)
		if err != nil {
			span.RecordError(err)
			var appErr *errors.AppError
			if stderrors.As(err, &appErr) {
				switch appErr.Code {
				case errors.ErrCodeBankExhausted:
					writeErrorResponse(w, "No alternative question available", appErr.Message, http.StatusNotFound)
					return
				case errors.ErrCodeInvalidRequest:
					writeErrorResponse(w, "Invalid request", appErr.Message, http.StatusBadRequest)
					return
				}
			}
			writeErrorResponse(w, "Failed to refresh question", err.Error(), http.StatusInternalServerError)
			return
		}

		if metrics := om.GetMetrics(); metrics.QuestionsServed != nil {
			metrics.QuestionsServed.Add(ctx, 1)
		}

		span.SetAttributes(
			attribute.String("refresh.skill", question.Skill),
			attribute.String("refresh.level", string(question.Level)),
		)

		writeJSONResponse(w, s.Logger, question)
	}
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			if wrapper.statusCode == http.StatusTooManyRequests {
				om.GetMetrics().RecordRateLimitHit(r.Context(), r.URL.Path)
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
