package handlers

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"scholarly/internal/config"
	"scholarly/internal/logger"
)

// NewOrganizeCmd creates the source organization command.
func NewOrganizeCmd() *cobra.Command {
	organizeCmd := &cobra.Command{
		Use:   "organize [sources.json]",
		Short: "Organize sources into themes, methodologies, and a timeline",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			question, _ := cmd.Flags().GetString("question")
			projectID, _ := cmd.Flags().GetString("project")
			offline, _ := cmd.Flags().GetBool("offline")
			if err := runOrganize(args[0], question, projectID, offline); err != nil {
				logger.Error("Organization failed", err)
				os.Exit(1)
			}
		},
	}

	organizeCmd.Flags().StringP("question", "q", "", "Research question guiding relevance scores")
	organizeCmd.Flags().StringP("project", "p", "", "Project id for artifact persistence")
	organizeCmd.Flags().Bool("offline", false, "Skip AI calls and use deterministic fallbacks only")
	return organizeCmd
}

func runOrganize(sourcesPath, question, projectID string, offline bool) error {
	sources, err := loadSources(sourcesPath)
	if err != nil {
		return err
	}

	eng, cleanup, err := buildEngine(offline)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), config.Get().GeminiTimeout()*4)
	defer cancel()

	organized := eng.OrganizeProject(ctx, projectID, sources, question)
	return printJSON(organized)
}
