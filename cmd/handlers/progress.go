package handlers

import (
	"os"

	"github.com/spf13/cobra"

	"scholarly/internal/cache"
	"scholarly/internal/config"
	"scholarly/internal/logger"
)

// NewProgressCmd creates the research-question progress command.
func NewProgressCmd() *cobra.Command {
	progressCmd := &cobra.Command{
		Use:   "progress [question]",
		Short: "Score a research question's maturity",
		Long: `Evaluate a free-text research question against five maturity factors,
producing a 0-100 completeness score and a stage label.`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			conversations, _ := cmd.Flags().GetInt("conversations")
			documents, _ := cmd.Flags().GetInt("documents")
			if err := runProgress(args[0], conversations, documents); err != nil {
				logger.Error("Progress evaluation failed", err)
				os.Exit(1)
			}
		},
	}

	progressCmd.Flags().Int("conversations", 0, "Number of conversations about this question")
	progressCmd.Flags().Int("documents", 0, "Number of documents attached to the project")
	return progressCmd
}

func runProgress(question string, conversations, documents int) error {
	cfg := config.Get()
	results := cache.New(cfg.CacheTTL(), cfg.Cache.SweepChance)
	progressCache := cache.NewProgressCache(results, nil, nil)

	result := progressCache.AnalyzeQuestionProgressCached(question, conversations, documents, nil)
	return printJSON(result)
}
