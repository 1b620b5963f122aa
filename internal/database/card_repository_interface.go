package database

import (
	"context"

	"tablero/internal/models"
)

// CardReader defines read operations for cards.
type CardReader interface {
	GetAllCards(ctx context.Context) ([]*models.Card, error)
	GetCardByID(ctx context.Context, id string) (*models.Card, error)
	GetCardsByColumn(ctx context.Context, columnID string) ([]*models.Card, error)
	GetMaxCardPosition(ctx context.Context, columnID string) (int, error)
}

// CardWriter defines write operations for cards.
type CardWriter interface {
	CreateCard(ctx context.Context, card *models.Card) (*models.Card, error)
	UpdateCard(ctx context.Context, card *models.Card) error
	UpdateCardPlacement(ctx context.Context, id, columnID string, position int) error
	UpdateCardsCreatorDisplay(ctx context.Context, creatorID, name, color, avatar string) error
	DeleteCard(ctx context.Context, id string) error
	DeleteCardsByCreator(ctx context.Context, creatorID string) error
}

// CardRepository combines all card-related operations.
type CardRepository interface {
	CardReader
	CardWriter
}
