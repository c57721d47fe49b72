// Package engine orchestrates the analysis pipeline for callers: it runs the
// gap analyzer and organizer and persists their artifacts best-effort. Store
// failures are logged and swallowed; they never block results.
package engine

import (
	"context"

	"scholarly/internal/core"
	"scholarly/internal/gaps"
	"scholarly/internal/logger"
	"scholarly/internal/organize"
	"scholarly/internal/store"
)

// Persister is the external key-value persistence contract. Optional.
type Persister interface {
	PersistAnalysis(projectID string, result core.GapAnalysisResult) error
	PersistOrganization(projectID string, organized core.OrganizedSources) error
}

// Engine is the top-level entry point for project-scoped analysis calls.
type Engine struct {
	analyzer  *gaps.Analyzer
	organizer *organize.Organizer
	persister Persister
}

// New creates an engine. A nil persister disables artifact persistence.
func New(analyzer *gaps.Analyzer, organizer *organize.Organizer, persister Persister) *Engine {
	return &Engine{analyzer: analyzer, organizer: organizer, persister: persister}
}

// AnalyzeProject runs a gap analysis for a project and persists the result
// best-effort.
func (e *Engine) AnalyzeProject(ctx context.Context, projectID string, sources []core.Source, question string) core.GapAnalysisResult {
	result := e.analyzer.PerformGapAnalysis(ctx, sources, question)

	if e.persister != nil && projectID != "" {
		if err := e.persister.PersistAnalysis(projectID, result); err != nil {
			logger.Warn("failed to persist analysis", "project_id", projectID, "error", err.Error())
		}
	}
	return result
}

// OrganizeProject organizes a project's sources and persists the bundle
// best-effort.
func (e *Engine) OrganizeProject(ctx context.Context, projectID string, sources []core.Source, question string) core.OrganizedSources {
	organized := e.organizer.OrganizeSources(ctx, sources, question)

	if e.persister != nil && projectID != "" {
		if err := e.persister.PersistOrganization(projectID, organized); err != nil {
			logger.Warn("failed to persist organization", "project_id", projectID, "error", err.Error())
		}
	}
	return organized
}

// compile-time check that the SQLite store satisfies the contract.
var _ Persister = (*store.Store)(nil)
