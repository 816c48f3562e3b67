package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"resumint/internal/ai"
	"resumint/internal/config"
	resumintErrors "resumint/internal/errors"
)

// getHealthCheckTimeout returns the configured health check timeout
func (s *Server) getHealthCheckTimeout() time.Duration {
	timeout := s.AppConfig.Observability.HealthCheck.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return timeout
}

// healthHandler reports service, bank, and AI model status.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]any{
		"status":  "healthy",
		"message": "resume analysis service is running",
		"service": "resumint",
		"version": s.Version,
	}

	bankStatus := s.checkBankHealth()
	response["bank"] = bankStatus

	aiStatus := s.checkAIHealth()
	response["ai"] = aiStatus

	overallHealthy := true
	if healthy, ok := bankStatus["healthy"].(bool); ok && !healthy {
		overallHealthy = false
	}

	if !overallHealthy {
		response["status"] = "degraded"
		response["message"] = "question bank unavailable"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Failed to encode health response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// checkBankHealth reports the state of the in-memory question bank
func (s *Server) checkBankHealth() map[string]any {
	if s.Store == nil {
		return map[string]any{"healthy": false, "error": "question bank store not configured"}
	}

	b := s.Store.Bank()
	if b == nil || b.Len() == 0 {
		return map[string]any{"healthy": false, "error": "question bank is empty"}
	}

	return map[string]any{
		"healthy": true,
		"skills":  b.Len(),
	}
}

// checkAIHealth reports AI availability. An unavailable model is not a
// health failure; the service degrades to the deterministic fallback.
func (s *Server) checkAIHealth() map[string]any {
	if !s.AppConfig.AIAvailable() {
		return map[string]any{
			"available": false,
			"mode":      "fallback-only",
		}
	}

	timeout := s.getHealthCheckTimeout()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	detectConfig := s.AppConfig.GetDetectConfig()
	aiService, err := ai.NewService(&detectConfig, "detect", s.Logger)
	if err != nil {
		return map[string]any{
			"available": false,
			"mode":      "fallback-only",
			"error":     fmt.Sprintf("failed to create AI service: %v", err),
		}
	}
	defer func() {
		if err := aiService.Provider.Close(); err != nil {
			s.Logger.LogError(err, "Failed to close AI service")
		}
	}()

	modelInfo := aiService.GetModelInfo(ctx)
	return map[string]any{
		"available": true,
		"mode":      "ai-primary",
		"model":     modelInfo,
	}
}

// statsHandler provides server statistics including rate limiting info
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]any{
		"service": "resumint",
		"version": s.Version,
		"server": map[string]any{
			"max_request_size_bytes": s.MaxRequestSize,
		},
	}

	if s.Store != nil {
		response["bank"] = map[string]any{
			"skills": s.Store.Bank().Len(),
			"watch":  s.AppConfig.Bank.Watch,
		}
	}

	response["judge"] = map[string]any{
		"enabled": s.AppConfig.Judge.Enabled,
		"mode":    s.AppConfig.Judge.Mode,
	}

	if s.RateLimiter != nil {
		response["rate_limiting"] = s.RateLimiter.GetStats()
	} else {
		response["rate_limiting"] = map[string]any{
			"enabled": false,
		}
	}

	response["circuit_breakers"] = s.circuitBreakerStats()

	if s.RateLimit != nil {
		response["rate_limit_config"] = map[string]any{
			"enabled":          s.RateLimit.Enabled,
			"requests_per_min": s.RateLimit.RequestsPerMin,
			"burst_capacity":   s.RateLimit.BurstCapacity,
			"by_ip":            s.RateLimit.ByIP,
			"by_api_key":       s.RateLimit.ByAPIKey,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Failed to encode stats response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// circuitBreakerStats summarizes the breaker configuration for each AI operation
func (s *Server) circuitBreakerStats() map[string]any {
	operations := map[string]config.OperationAIConfig{
		"detect":   s.AppConfig.GetDetectConfig(),
		"infer":    s.AppConfig.GetInferConfig(),
		"generate": s.AppConfig.GetGenerateConfig(),
		"judge":    s.AppConfig.GetJudgeConfig(),
	}

	stats := make(map[string]any, len(operations))
	for operation, opCfg := range operations {
		stats[operation] = map[string]any{
			"enabled":           opCfg.CircuitBreaker.Enabled,
			"max_requests":      opCfg.CircuitBreaker.MaxRequests,
			"min_requests":      opCfg.CircuitBreaker.MinRequests,
			"failure_threshold": opCfg.CircuitBreaker.FailureThreshold,
		}
	}
	return stats
}

// parseJSONRequest parses JSON request body into the provided struct
func parseJSONRequest(r *http.Request, v any) error {
	if r.Header.Get("Content-Type") != "application/json" {
		return fmt.Errorf("content-type must be application/json")
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return fmt.Errorf("request body too large (limit is %d bytes)", maxBytesErr.Limit)
		}
		return fmt.Errorf("failed to read request body: %w", err)
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			log.Printf("Failed to close request body: %v", err)
		}
	}()

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	return nil
}

// writeJSONResponse writes a JSON body with the standard content type
func writeJSONResponse(w http.ResponseWriter, logger *resumintErrors.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.LogError(err, "Failed to encode response")
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// writeErrorResponse writes a standardized error response
func writeErrorResponse(w http.ResponseWriter, error, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ErrorResponse{
		Error:   error,
		Message: message,
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Failed to encode error response: %v", err)
		http.Error(w, "Failed to encode error response", http.StatusInternalServerError)
	}
}
