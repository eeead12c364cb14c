package export

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/agenthands/attackmap/internal/core/model"
)

// SQLiteSink stores every table of a run as JSON, and the ranked and novelty
// tables additionally as rows.
type SQLiteSink struct {
	db    *sql.DB
	runID string
}

// NewSQLiteSink opens dbPath, creates the schema and registers runID.
// Use ":memory:" for in-memory databases (useful for testing).
func NewSQLiteSink(dbPath, runID string) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only allows one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	if _, err := db.Exec("INSERT OR IGNORE INTO runs (id, created_at) VALUES (?, ?)", runID, time.Now().UTC()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to register run: %w", err)
	}
	return &SQLiteSink{db: db, runID: runID}, nil
}

func (s *SQLiteSink) Name() string { return "sqlite" }

// DB returns the underlying database connection for advanced queries.
func (s *SQLiteSink) DB() *sql.DB {
	return s.db
}

func (s *SQLiteSink) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteSink) Export(ctx context.Context, table model.Table) error {
	if err := s.export(ctx, table); err != nil {
		return &Error{Sink: s.Name(), Table: table.Name, Err: err}
	}
	return nil
}

func (s *SQLiteSink) export(ctx context.Context, table model.Table) error {
	payload, err := json.Marshal(table.Data)
	if err != nil {
		return fmt.Errorf("failed to encode table: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"INSERT OR REPLACE INTO analyses (run_id, name, payload) VALUES (?, ?, ?)",
		s.runID, table.Name, string(payload)); err != nil {
		return fmt.Errorf("failed to insert analysis: %w", err)
	}

	switch data := table.Data.(type) {
	case model.RankedTable:
		if err := insertRanked(ctx, tx, s.runID, data); err != nil {
			return err
		}
	case model.NoveltyTable:
		if err := insertNovelty(ctx, tx, s.runID, data); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func insertRanked(ctx context.Context, tx *sql.Tx, runID string, rows model.RankedTable) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM combined_analysis WHERE run_id = ?", runID); err != nil {
		return fmt.Errorf("failed to clear combined analysis: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO combined_analysis
			(run_id, rank, veris_id, mitre_id, mapping_type, strength, frequency, impact_score, technology_domain, creation_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range rows {
		if _, err := stmt.ExecContext(ctx, runID, i+1, r.PrimaryID, r.SecondaryID, r.MappingType,
			r.Strength, r.Frequency, r.ImpactScore, r.TechnologyDomain, r.CreationDate); err != nil {
			return fmt.Errorf("failed to insert ranked row %d: %w", i+1, err)
		}
	}
	return nil
}

func insertNovelty(ctx context.Context, tx *sql.Tx, runID string, scores model.NoveltyTable) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO novelty_scores
			(run_id, node_id, name, object_type, uniqueness, isolation, path_diversity, score)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range scores {
		if _, err := stmt.ExecContext(ctx, runID, s.ID, s.Name, s.ObjectType,
			s.Uniqueness, s.Isolation, s.PathDiversity, s.Score); err != nil {
			return fmt.Errorf("failed to insert novelty score for %s: %w", s.ID, err)
		}
	}
	return nil
}

// TableNames lists the tables stored for the sink's run.
func (s *SQLiteSink) TableNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM analyses WHERE run_id = ? ORDER BY name", s.runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query analyses: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// TopImpact returns the first limit ranked rows of the run.
func (s *SQLiteSink) TopImpact(ctx context.Context, limit int) (model.RankedTable, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT veris_id, mitre_id, mapping_type, strength, frequency, impact_score, technology_domain, creation_date
		FROM combined_analysis WHERE run_id = ? ORDER BY rank LIMIT ?`, s.runID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query combined analysis: %w", err)
	}
	defer rows.Close()

	var out model.RankedTable
	for rows.Next() {
		var r model.RankedRow
		if err := rows.Scan(&r.PrimaryID, &r.SecondaryID, &r.MappingType, &r.Strength,
			&r.Frequency, &r.ImpactScore, &r.TechnologyDomain, &r.CreationDate); err != nil {
			return nil, fmt.Errorf("failed to scan ranked row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
