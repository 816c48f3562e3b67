package server

import (
	"time"

	"resumint/internal/analysis"
	"resumint/internal/bank"
	"resumint/internal/config"
	resumintErrors "resumint/internal/errors"
	"resumint/internal/observability"
)

// JudgeRequest represents the request body for the judge endpoint
type JudgeRequest struct {
	Skill         string `json:"skill"`
	Level         string `json:"level"`
	Question      string `json:"question"`
	ResumeSnippet string `json:"resumeSnippet,omitempty"`
}

// RefreshQuestionRequest represents the request body for the refresh endpoint
type RefreshQuestionRequest struct {
	Skill           string `json:"skill"`
	Level           string `json:"level"`
	ExcludeQuestion string `json:"exclude_question,omitempty"`
	ResumeText      string `json:"resume_text,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Server holds configuration for the HTTP server
type Server struct {
	Host    string
	Port    string
	Version string

	// Full application configuration
	AppConfig *config.Config

	// Analysis pipeline
	Orchestrator *analysis.Orchestrator
	Store        *bank.Store

	// Shared observability manager; created on Start when not injected
	Observability *observability.ObservabilityManager

	// TLS Configuration
	TLSConfig config.TLSConfig

	// API Authentication
	APIKeys map[string]bool

	// Timeout configurations
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Request size limit
	MaxRequestSize int64

	// Rate limiting
	RateLimit   *config.RateLimitConfig
	RateLimiter *RateLimiter

	// Logger
	Logger *resumintErrors.Logger
}

// ServerConfig holds configuration for creating a Server instance
type ServerConfig struct {
	Host           string
	Port           string
	Version        string
	TLSConfig      config.TLSConfig
	APIKeys        []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxRequestSize int64
	RateLimit      *config.RateLimitConfig
	Observability  *observability.ObservabilityManager
}

// NewServer creates a new Server instance from a ServerConfig struct
func NewServer(appCfg *config.Config, cfg ServerConfig, orchestrator *analysis.Orchestrator, store *bank.Store, logger *resumintErrors.Logger) *Server {
	// Convert API keys slice to map for O(1) lookup
	apiKeyMap := make(map[string]bool)
	for _, key := range cfg.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}

	var rateLimiter *RateLimiter
	if cfg.RateLimit != nil && cfg.RateLimit.Enabled {
		rateLimiter = NewRateLimiter(
			cfg.RateLimit.RequestsPerMin,
			cfg.RateLimit.BurstCapacity,
			logger,
		)
	}

	return &Server{
		Host:           cfg.Host,
		Port:           cfg.Port,
		Version:        cfg.Version,
		AppConfig:      appCfg,
		Orchestrator:   orchestrator,
		Store:          store,
		Observability:  cfg.Observability,
		TLSConfig:      cfg.TLSConfig,
		APIKeys:        apiKeyMap,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxRequestSize: cfg.MaxRequestSize,
		RateLimit:      cfg.RateLimit,
		RateLimiter:    rateLimiter,
		Logger:         logger,
	}
}
