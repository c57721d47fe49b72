// Package handlers contains the cobra command implementations for the
// scholarly CLI. The commands are thin callers into the engine library.
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"scholarly/internal/config"
	"scholarly/internal/core"
	"scholarly/internal/engine"
	"scholarly/internal/gaps"
	"scholarly/internal/llm"
	"scholarly/internal/logger"
	"scholarly/internal/organize"
	"scholarly/internal/similarity"
	"scholarly/internal/store"
)

// NewAnalyzeCmd creates the gap analysis command.
func NewAnalyzeCmd() *cobra.Command {
	analyzeCmd := &cobra.Command{
		Use:   "analyze [sources.json]",
		Short: "Run a gap analysis over a collection of sources",
		Long: `Analyze a JSON file of bibliographic sources against a research question,
producing a ranked list of research gap opportunities.`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			question, _ := cmd.Flags().GetString("question")
			projectID, _ := cmd.Flags().GetString("project")
			offline, _ := cmd.Flags().GetBool("offline")
			if err := runAnalyze(args[0], question, projectID, offline); err != nil {
				logger.Error("Gap analysis failed", err)
				os.Exit(1)
			}
		},
	}

	analyzeCmd.Flags().StringP("question", "q", "", "Research question guiding the analysis")
	analyzeCmd.Flags().StringP("project", "p", "", "Project id for artifact persistence")
	analyzeCmd.Flags().Bool("offline", false, "Skip AI calls and use deterministic fallbacks only")
	return analyzeCmd
}

func runAnalyze(sourcesPath, question, projectID string, offline bool) error {
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

	result := eng.AnalyzeProject(ctx, projectID, sources, question)
	return printJSON(result)
}

// buildEngine wires the analyzer, organizer, and store from configuration.
// The cleanup func closes the store.
func buildEngine(offline bool) (*engine.Engine, func(), error) {
	var completer *llm.Client
	if !offline {
		client, err := llm.NewClient("")
		if err != nil {
			logger.Warn("LLM client unavailable, continuing with fallbacks", "error", err.Error())
		} else {
			completer = client
		}
	}

	cfg := config.Get()
	var persister engine.Persister
	cleanup := func() {}
	if st, err := store.NewStore(cfg.Store.Directory); err != nil {
		logger.Warn("artifact store unavailable, persistence disabled", "error", err.Error())
	} else {
		persister = st
		cleanup = func() { st.Close() }
	}

	var analyzer *gaps.Analyzer
	var simEngine *similarity.Engine
	var organizer *organize.Organizer
	if completer != nil {
		analyzer = gaps.NewAnalyzer(completer)
		simEngine = similarity.NewEngine(completer, completer.Dimensions())
		organizer = organize.NewOrganizer(completer, simEngine)
	} else {
		analyzer = gaps.NewAnalyzer(nil)
		simEngine = similarity.NewEngine(nil, 0)
		organizer = organize.NewOrganizer(nil, simEngine)
	}
	organizer = organizer.WithSimilarityThreshold(cfg.Analysis.SimilarityThreshold)

	return engine.New(analyzer, organizer, persister), cleanup, nil
}

// loadSources reads a JSON array of sources from disk.
func loadSources(path string) ([]core.Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources file: %w", err)
	}
	var sources []core.Source
	if err := json.Unmarshal(data, &sources); err != nil {
		return nil, fmt.Errorf("failed to parse sources file: %w", err)
	}
	return sources, nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
