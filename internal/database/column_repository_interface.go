package database

import (
	"context"

	"tablero/internal/models"
)

// ColumnReader defines read operations for columns.
type ColumnReader interface {
	GetAllColumns(ctx context.Context) ([]*models.Column, error)
	GetColumnByID(ctx context.Context, id string) (*models.Column, error)
	GetMaxColumnPosition(ctx context.Context) (int, error)
}

// ColumnWriter defines write operations for columns.
type ColumnWriter interface {
	CreateColumn(ctx context.Context, name string, position int) (*models.Column, error)
	UpdateColumnName(ctx context.Context, id, name string) error
	DeleteColumnCascade(ctx context.Context, id string) error
}

// ColumnRepository combines all column-related operations.
type ColumnRepository interface {
	ColumnReader
	ColumnWriter
}
