package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fwojciec/serplens"
)

// Compile-time interface verification.
var _ serplens.RunService = (*RunService)(nil)

// RunService implements serplens.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// CreateRun persists a completed run, assigning its ID and timestamp.
func (s *RunService) CreateRun(ctx context.Context, run *serplens.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	config, err := json.Marshal(run.Config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	pages, err := json.Marshal(run.Pages)
	if err != nil {
		return fmt.Errorf("failed to marshal pages: %w", err)
	}
	analysis, err := json.Marshal(run.Analysis)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, procedure, keyword, created_at, config, pages, analysis)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Procedure, run.Keyword, run.CreatedAt.Format(time.RFC3339),
		string(config), string(pages), string(analysis))

	return err
}

// FindRunByID retrieves a run by ID.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*serplens.Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, procedure, keyword, created_at, config, pages, analysis
		FROM runs
		WHERE id = ?
	`, id)

	run, err := scanRun(row.Scan)
	if err == sql.ErrNoRows {
		return nil, serplens.Errorf(serplens.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// FindRuns retrieves runs matching the filter, newest first.
func (s *RunService) FindRuns(ctx context.Context, filter serplens.RunFilter) ([]*serplens.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, procedure, keyword, created_at, config, pages, analysis FROM runs WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Procedure != nil {
		query.WriteString(" AND procedure = ?")
		args = append(args, *filter.Procedure)
	}

	query.WriteString(" ORDER BY created_at DESC")

	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*serplens.Run
	for rows.Next() {
		run, err := scanRun(rows.Scan)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// DeleteRun permanently removes a run.
func (s *RunService) DeleteRun(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return serplens.Errorf(serplens.ENOTFOUND, "run not found")
	}

	return nil
}

// scanRun reads one runs row and rehydrates the JSON documents.
func scanRun(scan func(dest ...any) error) (*serplens.Run, error) {
	var run serplens.Run
	var createdAt, config, pages, analysis string

	if err := scan(&run.ID, &run.Procedure, &run.Keyword, &createdAt, &config, &pages, &analysis); err != nil {
		return nil, err
	}

	var err error
	run.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if err := json.Unmarshal([]byte(config), &run.Config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := json.Unmarshal([]byte(pages), &run.Pages); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pages: %w", err)
	}
	if err := json.Unmarshal([]byte(analysis), &run.Analysis); err != nil {
		return nil, fmt.Errorf("failed to unmarshal analysis: %w", err)
	}

	return &run, nil
}
