package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/Veraticus/dealflow/internal/common"
	"github.com/Veraticus/dealflow/internal/model"
)

// SaveDeals inserts or updates deals in a single transaction. Updated deals
// keep their original position in ListDeals.
func (s *SQLiteStorage) SaveDeals(ctx context.Context, deals []model.Deal) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateDeals(deals); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapErr("failed to begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.saveDealsTx(ctx, tx, deals); err != nil {
		return err
	}

	return wrapErr("failed to commit deals", tx.Commit())
}

func (s *SQLiteStorage) saveDealsTx(ctx context.Context, tx *sql.Tx, deals []model.Deal) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO deals (id, name, company, value, status, stage_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			company = excluded.company,
			value = excluded.value,
			status = excluded.status,
			stage_id = excluded.stage_id,
			created_at = excluded.created_at
	`)
	if err != nil {
		return wrapErr("failed to prepare statement", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, deal := range deals {
		value := sql.NullFloat64{Float64: deal.Value, Valid: deal.HasValue()}
		createdAt := sql.NullTime{Time: deal.CreatedAt, Valid: deal.HasCreatedAt()}

		if _, err := stmt.ExecContext(ctx,
			deal.ID,
			deal.Name,
			deal.Company,
			value,
			string(deal.Status),
			deal.StageID,
			createdAt,
		); err != nil {
			return wrapErr(fmt.Sprintf("failed to save deal %s", deal.ID), err)
		}
	}

	return nil
}

// ListDeals returns every deal in the order it was first stored.
func (s *SQLiteStorage) ListDeals(ctx context.Context) ([]model.Deal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.listDeals(ctx, s.db)
}

func (s *SQLiteStorage) listDeals(ctx context.Context, q queryable) ([]model.Deal, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, name, company, value, status, stage_id, created_at
		FROM deals
		ORDER BY rowid
	`)
	if err != nil {
		return nil, wrapErr("failed to query deals", err)
	}
	defer func() { _ = rows.Close() }()

	var deals []model.Deal
	for rows.Next() {
		deal, err := scanDeal(rows)
		if err != nil {
			return nil, err
		}
		deals = append(deals, deal)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapErr("failed to iterate deals", err)
	}

	return deals, nil
}

// GetDeal retrieves a deal by ID. It returns common.ErrNotFound for unknown IDs.
func (s *SQLiteStorage) GetDeal(ctx context.Context, id string) (*model.Deal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, company, value, status, stage_id, created_at
		FROM deals
		WHERE id = ?
	`, id)

	deal, err := scanDeal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("deal %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	return &deal, nil
}

// DeleteDeal removes a deal. It returns common.ErrNotFound for unknown IDs.
func (s *SQLiteStorage) DeleteDeal(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM deals WHERE id = ?`, id)
	if err != nil {
		return wrapErr("failed to delete deal", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("deal %s: %w", id, common.ErrNotFound)
	}

	return nil
}

// CountDeals returns the number of stored deals.
func (s *SQLiteStorage) CountDeals(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM deals`).Scan(&count); err != nil {
		return 0, wrapErr("failed to count deals", err)
	}
	return count, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDeal(row scanner) (model.Deal, error) {
	var (
		deal      model.Deal
		status    string
		value     sql.NullFloat64
		createdAt sql.NullTime
	)

	if err := row.Scan(
		&deal.ID,
		&deal.Name,
		&deal.Company,
		&value,
		&status,
		&deal.StageID,
		&createdAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Deal{}, err
		}
		return model.Deal{}, wrapErr("failed to scan deal", err)
	}

	deal.Status = model.DealStatus(status)
	deal.Value = math.NaN()
	if value.Valid {
		deal.Value = value.Float64
	}
	if createdAt.Valid {
		deal.CreatedAt = createdAt.Time
	}

	return deal, nil
}
