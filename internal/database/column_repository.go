package database

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"

	"tablero/internal/models"
)

// ColumnRepo handles all column-related database operations.
type ColumnRepo struct {
	db *sql.DB
}

// Create inserts a new column at the given board position
func (r *ColumnRepo) Create(ctx context.Context, name string, position int) (*models.Column, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO columns (id, name, position) VALUES (?, ?, ?)`,
		id, name, position,
	)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// GetByID retrieves a single column
func (r *ColumnRepo) GetByID(ctx context.Context, id string) (*models.Column, error) {
	column := &models.Column{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, position, created_at FROM columns WHERE id = ?`, id,
	).Scan(&column.ID, &column.Name, &column.Position, &column.CreatedAt)
	if err != nil {
		return nil, err
	}
	return column, nil
}

// GetAll retrieves every column sorted ascending by board position
func (r *ColumnRepo) GetAll(ctx context.Context) ([]*models.Column, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, position, created_at FROM columns ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []*models.Column
	for rows.Next() {
		column := &models.Column{}
		if err := rows.Scan(&column.ID, &column.Name, &column.Position, &column.CreatedAt); err != nil {
			return nil, err
		}
		columns = append(columns, column)
	}
	return columns, rows.Err()
}

// GetMaxPosition returns the highest board position, or -1 when no columns exist
func (r *ColumnRepo) GetMaxPosition(ctx context.Context) (int, error) {
	var max int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(position), -1) FROM columns").Scan(&max)
	return max, err
}

// UpdateName renames a column
func (r *ColumnRepo) UpdateName(ctx context.Context, id, name string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE columns SET name = ? WHERE id = ?", name, id)
	return err
}

// DeleteCascade hard-deletes a column together with every card in it, in one
// transaction. The cascade intentionally writes nothing to the archive.
func (r *ColumnRepo) DeleteCascade(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			slog.Error("failed to rollback transaction", "error", err)
		}
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM cards WHERE column_id = ?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM columns WHERE id = ?", id); err != nil {
		return err
	}

	return tx.Commit()
}
