package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"tablero/internal/models"
)

// CardRepo handles all card-related database operations.
type CardRepo struct {
	db *sql.DB
}

// Create inserts a new card with its denormalized author snapshot already
// filled in by the caller. The ID is assigned here.
func (r *CardRepo) Create(ctx context.Context, card *models.Card) (*models.Card, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO cards (id, column_id, creator_id, creator_name, creator_color,
		                    creator_avatar, status, content, position)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, card.ColumnID, card.CreatorID, card.CreatorName, card.CreatorColor,
		card.CreatorAvatar, card.Status, card.Content, card.Position,
	)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// GetByID retrieves a single card
func (r *CardRepo) GetByID(ctx context.Context, id string) (*models.Card, error) {
	card := &models.Card{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, column_id, creator_id, creator_name, creator_color, creator_avatar,
		        status, content, position, created_at, updated_at
		 FROM cards WHERE id = ?`, id,
	).Scan(
		&card.ID, &card.ColumnID, &card.CreatorID, &card.CreatorName,
		&card.CreatorColor, &card.CreatorAvatar, &card.Status, &card.Content,
		&card.Position, &card.CreatedAt, &card.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return card, nil
}

// GetAll retrieves every card across all columns, ascending by position.
// Grouping by column is the client's responsibility.
func (r *CardRepo) GetAll(ctx context.Context) ([]*models.Card, error) {
	return r.queryCards(ctx,
		`SELECT id, column_id, creator_id, creator_name, creator_color, creator_avatar,
		        status, content, position, created_at, updated_at
		 FROM cards ORDER BY position`)
}

// GetByColumn retrieves all cards in one column, ascending by position
func (r *CardRepo) GetByColumn(ctx context.Context, columnID string) ([]*models.Card, error) {
	return r.queryCards(ctx,
		`SELECT id, column_id, creator_id, creator_name, creator_color, creator_avatar,
		        status, content, position, created_at, updated_at
		 FROM cards WHERE column_id = ? ORDER BY position`, columnID)
}

// GetMaxPosition returns the highest position in a column, or -1 when empty
func (r *CardRepo) GetMaxPosition(ctx context.Context, columnID string) (int, error) {
	var max int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(position), -1) FROM cards WHERE column_id = ?",
		columnID).Scan(&max)
	return max, err
}

// Update replaces the card's mutable content fields (whole-record semantics,
// last write wins)
func (r *CardRepo) Update(ctx context.Context, card *models.Card) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE cards
		 SET status = ?, content = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		card.Status, card.Content, card.ID,
	)
	return err
}

// UpdatePlacement sets a card's column and position. Reindexing issues one
// such write per affected card; these writes are deliberately independent,
// not wrapped in a transaction.
func (r *CardRepo) UpdatePlacement(ctx context.Context, id, columnID string, position int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE cards
		 SET column_id = ?, position = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		columnID, position, id,
	)
	return err
}

// UpdateCreatorDisplay propagates a user's edited display fields to every
// live card they authored. The archive is never touched.
func (r *CardRepo) UpdateCreatorDisplay(ctx context.Context, creatorID, name, color, avatar string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE cards
		 SET creator_name = ?, creator_color = ?, creator_avatar = ?
		 WHERE creator_id = ?`,
		name, color, avatar, creatorID,
	)
	return err
}

// Delete removes a single card
func (r *CardRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM cards WHERE id = ?", id)
	return err
}

// DeleteByCreator hard-deletes every card authored by a user (no archival;
// used by the admin user-delete cascade)
func (r *CardRepo) DeleteByCreator(ctx context.Context, creatorID string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM cards WHERE creator_id = ?", creatorID)
	return err
}

func (r *CardRepo) queryCards(ctx context.Context, query string, args ...any) ([]*models.Card, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []*models.Card
	for rows.Next() {
		card := &models.Card{}
		if err := rows.Scan(
			&card.ID, &card.ColumnID, &card.CreatorID, &card.CreatorName,
			&card.CreatorColor, &card.CreatorAvatar, &card.Status, &card.Content,
			&card.Position, &card.CreatedAt, &card.UpdatedAt,
		); err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, rows.Err()
}
