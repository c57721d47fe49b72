// Package store persists analysis and organization artifacts to a local
// SQLite database keyed by project id. Persistence is best-effort: callers
// log and swallow failures rather than blocking results.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"scholarly/internal/core"
)

// Store is the SQLite-backed artifact store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (creating if needed) the store under dataDir.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "scholarly.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return store, nil
}

// initialize creates the necessary tables.
func (s *Store) initialize() error {
	analysesTable := `
	CREATE TABLE IF NOT EXISTS analyses (
		project_id TEXT PRIMARY KEY,
		payload TEXT,
		generated_at DATETIME
	);`

	organizationsTable := `
	CREATE TABLE IF NOT EXISTS organizations (
		project_id TEXT PRIMARY KEY,
		payload TEXT,
		generated_at DATETIME
	);`

	for _, table := range []string{analysesTable, organizationsTable} {
		if _, err := s.db.Exec(table); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// PersistAnalysis stores the latest analysis for a project, replacing any
// previous one.
func (s *Store) PersistAnalysis(projectID string, result core.GapAnalysisResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}

	query := `INSERT OR REPLACE INTO analyses (project_id, payload, generated_at) VALUES (?, ?, ?)`
	_, err = s.db.Exec(query, projectID, string(payload), time.Now().UTC())
	return err
}

// GetAnalysis retrieves the stored analysis for a project. A nil result with
// nil error means no analysis is stored.
func (s *Store) GetAnalysis(projectID string) (*core.GapAnalysisResult, error) {
	row := s.db.QueryRow(`SELECT payload FROM analyses WHERE project_id = ?`, projectID)

	var payload string
	err := row.Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan analysis: %w", err)
	}

	var result core.GapAnalysisResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal analysis: %w", err)
	}
	return &result, nil
}

// PersistOrganization stores the latest organization bundle for a project.
func (s *Store) PersistOrganization(projectID string, organized core.OrganizedSources) error {
	payload, err := json.Marshal(organized)
	if err != nil {
		return fmt.Errorf("failed to marshal organization: %w", err)
	}

	query := `INSERT OR REPLACE INTO organizations (project_id, payload, generated_at) VALUES (?, ?, ?)`
	_, err = s.db.Exec(query, projectID, string(payload), time.Now().UTC())
	return err
}

// GetOrganization retrieves the stored organization for a project. A nil
// result with nil error means no organization is stored.
func (s *Store) GetOrganization(projectID string) (*core.OrganizedSources, error) {
	row := s.db.QueryRow(`SELECT payload FROM organizations WHERE project_id = ?`, projectID)

	var payload string
	err := row.Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan organization: %w", err)
	}

	var organized core.OrganizedSources
	if err := json.Unmarshal([]byte(payload), &organized); err != nil {
		return nil, fmt.Errorf("failed to unmarshal organization: %w", err)
	}
	return &organized, nil
}

// Stats summarizes the store contents.
type Stats struct {
	AnalysisCount     int       // Stored analyses
	OrganizationCount int       // Stored organizations
	Size              int64     // Database file size in bytes
	LastUpdated       time.Time // File modification time
}

// GetStats returns statistics about the store.
func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{}

	counts := map[string]*int{
		"SELECT COUNT(*) FROM analyses":      &stats.AnalysisCount,
		"SELECT COUNT(*) FROM organizations": &stats.OrganizationCount,
	}
	for query, target := range counts {
		if err := s.db.QueryRow(query).Scan(target); err != nil {
			return nil, fmt.Errorf("failed to get count: %w", err)
		}
	}

	if fileInfo, err := os.Stat(s.path); err == nil {
		stats.Size = fileInfo.Size()
		stats.LastUpdated = fileInfo.ModTime()
	}
	return stats, nil
}

// Clear removes all stored artifacts.
func (s *Store) Clear() error {
	for _, table := range []string{"analyses", "organizations"} {
		if _, err := s.db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			return fmt.Errorf("failed to clear %s table: %w", table, err)
		}
	}
	if _, err := s.db.Exec("VACUUM"); err != nil {
		return fmt.Errorf("failed to vacuum database: %w", err)
	}
	return nil
}
