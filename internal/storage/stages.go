package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Veraticus/dealflow/internal/common"
	"github.com/Veraticus/dealflow/internal/model"
)

// ListStages returns the pipeline stages ordered by position.
func (s *SQLiteStorage) ListStages(ctx context.Context) ([]model.Stage, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, position, created_at
		FROM stages
		ORDER BY position, id
	`)
	if err != nil {
		return nil, wrapErr("failed to query stages", err)
	}
	defer func() { _ = rows.Close() }()

	var stages []model.Stage
	for rows.Next() {
		var stage model.Stage
		if err := rows.Scan(&stage.ID, &stage.Name, &stage.Position, &stage.CreatedAt); err != nil {
			return nil, wrapErr("failed to scan stage", err)
		}
		stages = append(stages, stage)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapErr("failed to iterate stages", err)
	}

	return stages, nil
}

// GetStageByName looks a stage up by name, ignoring case.
func (s *SQLiteStorage) GetStageByName(ctx context.Context, name string) (*model.Stage, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	var stage model.Stage
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, position, created_at
		FROM stages
		WHERE name = ? COLLATE NOCASE
	`, name).Scan(&stage.ID, &stage.Name, &stage.Position, &stage.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("stage %q: %w", name, common.ErrNotFound)
	}
	if err != nil {
		return nil, wrapErr("failed to get stage", err)
	}

	return &stage, nil
}

// SaveStage creates a stage, or updates it when stage.ID is set. On create the
// new ID is written back into stage.
func (s *SQLiteStorage) SaveStage(ctx context.Context, stage *model.Stage) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateStage(stage); err != nil {
		return err
	}

	if stage.ID != 0 {
		result, err := s.db.ExecContext(ctx,
			`UPDATE stages SET name = ?, position = ? WHERE id = ?`,
			stage.Name, stage.Position, stage.ID)
		if err != nil {
			return wrapErr("failed to update stage", err)
		}
		if affected, _ := result.RowsAffected(); affected == 0 {
			return fmt.Errorf("stage %d: %w", stage.ID, common.ErrNotFound)
		}
		return nil
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO stages (name, position) VALUES (?, ?)`,
		stage.Name, stage.Position)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("stage %q: %w", stage.Name, common.ErrDuplicateEntry)
		}
		return wrapErr("failed to create stage", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read stage ID: %w", err)
	}
	stage.ID = int(id)

	return nil
}
