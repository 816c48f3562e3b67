package config

import (
	"time"

	"github.com/spf13/viper"
)

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// AI Configuration - Global defaults
	v.SetDefault("ai.enabled", true)
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.timeout", 60*time.Second)
	v.SetDefault("ai.apiKey", "")
	v.SetDefault("ai.maxRetries", 3)
	v.SetDefault("ai.temperature", 0.7)
	v.SetDefault("ai.useSystemPrompts", true)

	// AI Configuration - Skill detection defaults
	v.SetDefault("ai.detect.provider", "gemini")
	v.SetDefault("ai.detect.model", "")
	v.SetDefault("ai.detect.timeout", 45*time.Second)
	v.SetDefault("ai.detect.apiKey", "")
	v.SetDefault("ai.detect.maxRetries", 2)
	v.SetDefault("ai.detect.temperature", 0.2) // Low temperature for consistent extraction
	v.SetDefault("ai.detect.useSystemPrompts", true)

	// AI Configuration - Level inference defaults
	v.SetDefault("ai.infer.provider", "gemini")
	v.SetDefault("ai.infer.model", "")
	v.SetDefault("ai.infer.timeout", 30*time.Second) // Short single-label responses
	v.SetDefault("ai.infer.apiKey", "")
	v.SetDefault("ai.infer.maxRetries", 2)
	v.SetDefault("ai.infer.temperature", 0.1)
	v.SetDefault("ai.infer.useSystemPrompts", true)

	// AI Configuration - Question generation defaults
	v.SetDefault("ai.generate.provider", "gemini")
	v.SetDefault("ai.generate.model", "")
	v.SetDefault("ai.generate.timeout", 60*time.Second)
	v.SetDefault("ai.generate.apiKey", "")
	v.SetDefault("ai.generate.maxRetries", 2)
	v.SetDefault("ai.generate.temperature", 0.7) // Higher temperature for varied questions
	v.SetDefault("ai.generate.useSystemPrompts", true)

	// AI Configuration - Judge defaults
	v.SetDefault("ai.judge.provider", "gemini")
	v.SetDefault("ai.judge.model", "")
	v.SetDefault("ai.judge.timeout", 30*time.Second)
	v.SetDefault("ai.judge.apiKey", "")
	v.SetDefault("ai.judge.maxRetries", 1)
	v.SetDefault("ai.judge.temperature", 0.1)
	v.SetDefault("ai.judge.useSystemPrompts", true)

	// Circuit Breaker Configuration defaults for all operations
	for _, op := range []string{"detect", "infer", "generate", "judge"} {
		v.SetDefault("ai."+op+".circuitBreaker.enabled", true)
		v.SetDefault("ai."+op+".circuitBreaker.maxRequests", 3)
		v.SetDefault("ai."+op+".circuitBreaker.interval", 60*time.Second)
		v.SetDefault("ai."+op+".circuitBreaker.timeout", 60*time.Second)
		v.SetDefault("ai."+op+".circuitBreaker.minRequests", 3)
		v.SetDefault("ai."+op+".circuitBreaker.failureThreshold", 0.6)
	}

	// Server Configuration
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.readTimeout", 30*time.Second)
	v.SetDefault("server.writeTimeout", 30*time.Second)
	v.SetDefault("server.idleTimeout", 120*time.Second)
	// TLS Configuration defaults
	v.SetDefault("server.tls.mode", "disabled") // disabled, server, mutual
	v.SetDefault("server.tls.certFile", "")
	v.SetDefault("server.tls.keyFile", "")
	v.SetDefault("server.tls.caFile", "")
	v.SetDefault("server.tls.minVersion", "1.2")
	v.SetDefault("server.tls.cipherSuites", []string{}) // Use Go defaults
	v.SetDefault("server.tls.clientAuthPolicy", "require")
	// API Authentication defaults
	v.SetDefault("server.apiKeys", []string{})
	// Rate limiting defaults
	v.SetDefault("server.rateLimit.enabled", false)
	v.SetDefault("server.rateLimit.requestsPerMin", 60)
	v.SetDefault("server.rateLimit.burstCapacity", 10)
	v.SetDefault("server.rateLimit.byIP", true)
	v.SetDefault("server.rateLimit.byAPIKey", false)
	v.SetDefault("server.rateLimit.window", time.Minute)

	// App Configuration
	v.SetDefault("app.logLevel", "info")
	v.SetDefault("app.defaultFormat", "json")
	v.SetDefault("app.supportedFormats", []string{"json", "text", "markdown"})
	v.SetDefault("app.maxFileSize", 10*1024*1024) // 10MB, resumes are small but scans are not

	// Question Bank Configuration
	v.SetDefault("bank.path", "data/skill_question_bank.json")
	v.SetDefault("bank.watch", false)
	v.SetDefault("bank.debounceDelay", time.Second)

	// Judge Configuration
	v.SetDefault("judge.enabled", false)
	v.SetDefault("judge.mode", "flag")

	// Trace Configuration
	v.SetDefault("trace.enabled", false)
	v.SetDefault("trace.path", "trace/judge.jsonl")

	// Vault Configuration
	v.SetDefault("vault.enabled", false)
	v.SetDefault("vault.address", "")
	v.SetDefault("vault.token", "")
	v.SetDefault("vault.tokenFile", "")
	v.SetDefault("vault.namespace", "")
	v.SetDefault("vault.secrets.apiKeys", "")
	v.SetDefault("vault.secrets.geminiKey", "")
	v.SetDefault("vault.secrets.tlsCerts", "")

	// Observability Configuration
	v.SetDefault("observability.enabled", true)
	v.SetDefault("observability.serviceName", "resumint")
	v.SetDefault("observability.serviceVersion", "")  // Will use app version if empty
	v.SetDefault("observability.serviceInstance", "") // Will be auto-generated if empty
	v.SetDefault("observability.consoleOutput", false)
	v.SetDefault("observability.sampleRate", 1.0)

	// Tracing Configuration
	v.SetDefault("observability.tracing.enabled", true)
	v.SetDefault("observability.tracing.sampleRate", 1.0)

	// Metrics Configuration
	v.SetDefault("observability.metrics.enabled", true)
	v.SetDefault("observability.metrics.collectionInterval", 15*time.Second)

	// Console Configuration
	v.SetDefault("observability.console.enabled", false)
	v.SetDefault("observability.console.prettyPrint", true)

	// Prometheus Configuration
	v.SetDefault("observability.prometheus.enabled", true)
	v.SetDefault("observability.prometheus.endpoint", "/metrics")
	v.SetDefault("observability.prometheus.port", "9090")

	// OTLP Configuration
	v.SetDefault("observability.otlp.enabled", false)
	v.SetDefault("observability.otlp.endpoint", "http://localhost:4318")
	v.SetDefault("observability.otlp.insecure", true)
	v.SetDefault("observability.otlp.headers", map[string]string{})

	// Health Check Configuration
	v.SetDefault("observability.healthCheck.timeout", 15*time.Second)
	v.SetDefault("observability.healthCheck.aiModelCheckTimeout", 10*time.Second)
}
