package cli

import (
	"fmt"

	"resumint/internal/ai"
	"resumint/internal/analysis"
	"resumint/internal/bank"
	"resumint/internal/config"
	"resumint/internal/errors"
	"resumint/internal/observability"
	"resumint/internal/trace"
)

// pipeline bundles the analysis components built from configuration along
// with the resources that need closing when the command finishes.
type pipeline struct {
	Orchestrator *analysis.Orchestrator
	Store        *bank.Store

	logger  *errors.Logger
	metrics *observability.Metrics
	cleanup []func() error
}

// buildPipeline wires the question bank, AI providers, trace sink, and
// orchestrator from configuration. A provider that fails to initialize is
// logged and skipped; the affected stage runs in fallback mode. When an
// observability manager is supplied, providers are wrapped so their calls
// and token usage are recorded.
func buildPipeline(cfg *config.Config, logger *errors.Logger, om *observability.ObservabilityManager) (*pipeline, error) {
	store, err := bank.NewStore(cfg.Bank.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load question bank: %w", err)
	}

	p := &pipeline{Store: store, logger: logger}
	p.cleanup = append(p.cleanup, store.Stop)
	if om != nil {
		p.metrics = om.GetMetrics()
	}

	var detectProvider, inferProvider, generateProvider, judgeProvider ai.AIProvider
	if cfg.AIAvailable() {
		detectProvider = p.newProvider(cfg.GetDetectConfig(), "detect")
		inferProvider = p.newProvider(cfg.GetInferConfig(), "infer")
		generateProvider = p.newProvider(cfg.GetGenerateConfig(), "generate")
		judgeProvider = p.newProvider(cfg.GetJudgeConfig(), "judge")
	} else {
		logger.Info("AI provider not configured, running in fallback-only mode")
	}

	var sink trace.Sink
	if cfg.Trace.Enabled {
		jsonlSink, err := trace.NewJSONLSink(cfg.Trace.Path)
		if err != nil {
			p.Close()
			return nil, fmt.Errorf("failed to open trace sink: %w", err)
		}
		sink = jsonlSink
		p.cleanup = append(p.cleanup, jsonlSink.Close)
	}

	p.Orchestrator = analysis.NewOrchestrator(analysis.OrchestratorOptions{
		Store:      store,
		Detector:   analysis.NewDetector(detectProvider, logger),
		Inferencer: analysis.NewLevelInferencer(inferProvider, logger),
		Generator:  analysis.NewGenerator(generateProvider, logger),
		Judge:      analysis.NewJudge(judgeProvider, logger),
		JudgeOn:    cfg.Judge.Enabled,
		JudgeMode:  cfg.Judge.Mode,
		Sink:       sink,
		Logger:     logger,
	})

	return p, nil
}

// newProvider creates the AI provider for one pipeline stage. Construction
// failures degrade that stage to its deterministic fallback.
func (p *pipeline) newProvider(opCfg config.OperationAIConfig, operation string) ai.AIProvider {
	service, err := ai.NewService(&opCfg, operation, p.logger)
	if err != nil {
		p.logger.LogError(err, "Failed to create AI service, stage will use fallback",
			"operation", operation)
		return nil
	}
	p.cleanup = append(p.cleanup, service.Provider.Close)
	if p.metrics != nil {
		return observability.NewInstrumentedProvider(service.Provider, p.metrics)
	}
	return service.Provider
}

// Close releases pipeline resources in reverse construction order.
func (p *pipeline) Close() {
	for i := len(p.cleanup) - 1; i >= 0; i-- {
		if err := p.cleanup[i](); err != nil {
			p.logger.LogError(err, "Failed to close pipeline resource")
		}
	}
}
