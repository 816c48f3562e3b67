package cli

import (
	"fmt"

	"resumint/internal/common"
	"resumint/internal/types"

	"github.com/spf13/cobra"
)

var judgeCmd = &cobra.Command{
	Use:   "judge",
	Short: "Judge an interview question for skill and level fit",
	Long: `Judge whether an interview question actually exercises the claimed
skill at the claimed difficulty level. The verdict lists violations such as a
skill mismatch or a question pitched at the wrong level.

The AI judge is used when a provider is configured; otherwise deterministic
heuristics apply. Verdicts are appended to the trace sink when tracing is
enabled.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if judgeConfig.OutputFormat == "" {
			judgeConfig.OutputFormat = cfg.App.DefaultFormat
		}
		if judgeSkill == "" || judgeQuestion == "" {
			return fmt.Errorf("--skill and --question are required")
		}
		return common.ValidateOutputFormat(judgeConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runJudge,
}

var (
	judgeConfig   common.CommandConfig
	judgeSkill    string
	judgeLevel    string
	judgeQuestion string
	judgeSnippet  string
)

func init() {
	judgeCmd.Flags().StringVarP(&judgeConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	judgeCmd.Flags().StringVar(&judgeConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	judgeCmd.Flags().StringVar(&judgeSkill, "skill", "", "Skill the question claims to exercise")
	judgeCmd.Flags().StringVar(&judgeLevel, "level", "intermediate", "Difficulty level: beginner, intermediate, or advanced")
	judgeCmd.Flags().StringVar(&judgeQuestion, "question", "", "The interview question to judge")
	judgeCmd.Flags().StringVar(&judgeSnippet, "snippet", "", "Optional resume snippet for context")
}

func runJudge(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	pipeline, err := buildPipeline(cfg, logger, nil)
	if err != nil {
		return err
	}
	defer pipeline.Close()

	level := types.Level(judgeLevel)
	if !types.ValidLevel(level) {
		level = types.LevelIntermediate
	}

	question := types.InterviewQuestion{
		Skill:    judgeSkill,
		Level:    level,
		Question: judgeQuestion,
	}

	logger.Info("Judging interview question",
		"skill", judgeSkill,
		"level", level)

	verdict := pipeline.Orchestrator.JudgeQuestion(cmd.Context(), question, judgeSnippet)

	outputHandler := common.NewOutputHandler(logger)
	return outputHandler.HandleOutput(verdict, judgeConfig)
}
