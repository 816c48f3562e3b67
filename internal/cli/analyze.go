package cli

import (
	"context"
	"fmt"

	"resumint/internal/common"
	"resumint/internal/types"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [resume.pdf]",
	Short: "Analyze a resume PDF for skills and interview questions",
	Long: `Analyze a PDF resume to detect technical skills, infer proficiency
levels, and generate interview questions tailored to the candidate.

When an AI provider is configured the analysis is AI-assisted; otherwise a
deterministic vocabulary scan and the question bank are used. Use --role to
bias skill ordering toward a target job role.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if analyzeConfig.OutputFormat == "" {
			analyzeConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(analyzeConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runAnalyze,
}

var analyzeConfig common.CommandConfig
var analyzeRole string

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	analyzeCmd.Flags().StringVar(&analyzeConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	analyzeCmd.Flags().StringVar(&analyzeRole, "role", "", "Target job role used to prioritize detected skills")

	// Add completion for format flag
	_ = analyzeCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	pipeline, err := buildPipeline(cfg, logger, nil)
	if err != nil {
		return err
	}
	defer pipeline.Close()

	logDetails := func(pdfPath string, cmdCfg common.CommandConfig) {
		logger.Info("Starting resume analysis",
			"file", pdfPath,
			"job_role", analyzeRole,
			"output_format", cmdCfg.OutputFormat)
	}

	analyzeOperation := func(ctx context.Context, pdfContent []byte) (types.AnalysisResult, error) {
		result, stats, err := pipeline.Orchestrator.Analyze(ctx, pdfContent, analyzeRole)
		if err != nil {
			return types.AnalysisResult{}, err
		}
		logger.Info("Resume analysis completed",
			"text_chars", stats.TextChars,
			"skills_detected", stats.SkillsDetected,
			"questions", stats.QuestionCount,
			"ai_detect", stats.AIDetect,
			"ai_generate", stats.AIGenerate,
			"degraded", stats.Degraded)
		return result, nil
	}

	err = common.RunAnalysisCommand(
		cmd.Context(),
		logger,
		analyzeConfig,
		args[0],
		analyzeOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to analyze resume: %w", err)
	}
	return nil
}
