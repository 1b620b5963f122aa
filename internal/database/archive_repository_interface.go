package database

import (
	"context"

	"tablero/internal/models"
)

// ArchiveReader defines read operations for the deleted-card archive.
type ArchiveReader interface {
	GetDeletedCards(ctx context.Context, creatorID string) ([]*models.DeletedCard, error)
}

// ArchiveWriter defines the single write operation the archive supports.
type ArchiveWriter interface {
	ArchiveCard(ctx context.Context, snapshot *models.DeletedCard) (*models.DeletedCard, error)
}

// ArchiveRepository combines all archive operations.
type ArchiveRepository interface {
	ArchiveReader
	ArchiveWriter
}
