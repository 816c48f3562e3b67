package cli

import (
	"fmt"

	"resumint/internal/bank"
	"resumint/internal/types"

	"github.com/spf13/cobra"
)

var bankCmd = &cobra.Command{
	Use:   "bank [path]",
	Short: "Validate and summarize a skill question bank",
	Long: `Validate a skill question bank file and print a per-skill summary of
the questions it holds. With no argument the configured bank path is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBank,
}

func init() {
	bankCmd.Flags().BoolVar(&bankVerbose, "questions", false, "List every question instead of per-level counts")
}

var bankVerbose bool

func runBank(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	path := cfg.Bank.Path
	if len(args) == 1 {
		path = args[0]
	}

	b, err := bank.Load(path)
	if err != nil {
		return fmt.Errorf("question bank validation failed: %w", err)
	}

	logger.Info("Question bank loaded", "path", path, "skills", b.Len())

	fmt.Printf("Question bank: %s\n", path)
	fmt.Printf("Skills: %d\n\n", b.Len())

	for _, key := range b.Keys() {
		fmt.Printf("%s (%s)\n", b.DisplayName(key), key)
		for _, level := range types.Levels {
			questions := b.QuestionsFor(key, level)
			if bankVerbose {
				for _, q := range questions {
					fmt.Printf("  [%s] %s\n", level, q)
				}
			} else {
				fmt.Printf("  %s: %d questions\n", level, len(questions))
			}
		}
	}

	return nil
}
