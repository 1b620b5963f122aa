package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"tablero/internal/models"
)

// ArchiveRepo handles the deleted-card audit archive. Rows are written once
// at card deletion and never mutated or removed afterwards.
type ArchiveRepo struct {
	db *sql.DB
}

// Archive writes the archival snapshot of a card. The ID and deletion
// timestamp are assigned here.
func (r *ArchiveRepo) Archive(ctx context.Context, snapshot *models.DeletedCard) (*models.DeletedCard, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO deleted_cards (id, original_id, column_id, creator_id, creator_name,
		                            creator_color, creator_avatar, status, content, position)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, snapshot.OriginalID, snapshot.ColumnID, snapshot.CreatorID,
		snapshot.CreatorName, snapshot.CreatorColor, snapshot.CreatorAvatar,
		snapshot.Status, snapshot.Content, snapshot.Position,
	)
	if err != nil {
		return nil, err
	}
	return r.getByID(ctx, id)
}

// GetAll retrieves archive records sorted by deletion time, newest first,
// optionally filtered to one original creator (empty creatorID = no filter)
func (r *ArchiveRepo) GetAll(ctx context.Context, creatorID string) ([]*models.DeletedCard, error) {
	query := `SELECT id, original_id, column_id, creator_id, creator_name, creator_color,
	                 creator_avatar, status, content, position, deleted_at
	          FROM deleted_cards`
	var args []any
	if creatorID != "" {
		query += " WHERE creator_id = ?"
		args = append(args, creatorID)
	}
	query += " ORDER BY deleted_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.DeletedCard
	for rows.Next() {
		record := &models.DeletedCard{}
		if err := scanDeletedCard(rows, record); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (r *ArchiveRepo) getByID(ctx context.Context, id string) (*models.DeletedCard, error) {
	record := &models.DeletedCard{}
	row := r.db.QueryRowContext(ctx,
		`SELECT id, original_id, column_id, creator_id, creator_name, creator_color,
		        creator_avatar, status, content, position, deleted_at
		 FROM deleted_cards WHERE id = ?`, id)
	if err := scanDeletedCard(row, record); err != nil {
		return nil, err
	}
	return record, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDeletedCard(row rowScanner, record *models.DeletedCard) error {
	return row.Scan(
		&record.ID, &record.OriginalID, &record.ColumnID, &record.CreatorID,
		&record.CreatorName, &record.CreatorColor, &record.CreatorAvatar,
		&record.Status, &record.Content, &record.Position, &record.DeletedAt,
	)
}
