package database

import (
	"context"
	"database/sql"

	"tablero/internal/models"
)

// Repository provides a unified interface to all data operations.
// It composes domain-specific repositories using struct embedding.
type Repository struct {
	*UserRepo
	*ColumnRepo
	*CardRepo
	*ArchiveRepo
}

// NewRepository creates a new Repository instance wrapping the given database connection.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		UserRepo:    &UserRepo{db: db},
		ColumnRepo:  &ColumnRepo{db: db},
		CardRepo:    &CardRepo{db: db},
		ArchiveRepo: &ArchiveRepo{db: db},
	}
}

// Wrapper methods for UserRepo to satisfy UserRepository
func (r *Repository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	return r.UserRepo.Create(ctx, user)
}

func (r *Repository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return r.UserRepo.GetByID(ctx, id)
}

func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.UserRepo.GetByUsername(ctx, username)
}

func (r *Repository) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	return r.UserRepo.GetAll(ctx)
}

func (r *Repository) CountUsers(ctx context.Context) (int, error) {
	return r.UserRepo.Count(ctx)
}

func (r *Repository) UpdateUser(ctx context.Context, id, username, color, avatar string) error {
	return r.UserRepo.Update(ctx, id, username, color, avatar)
}

func (r *Repository) DeleteUser(ctx context.Context, id string) error {
	return r.UserRepo.Delete(ctx, id)
}

// Wrapper methods for ColumnRepo to satisfy ColumnRepository
func (r *Repository) CreateColumn(ctx context.Context, name string, position int) (*models.Column, error) {
	return r.ColumnRepo.Create(ctx, name, position)
}

func (r *Repository) GetAllColumns(ctx context.Context) ([]*models.Column, error) {
	return r.ColumnRepo.GetAll(ctx)
}

func (r *Repository) GetColumnByID(ctx context.Context, id string) (*models.Column, error) {
	return r.ColumnRepo.GetByID(ctx, id)
}

func (r *Repository) GetMaxColumnPosition(ctx context.Context) (int, error) {
	return r.ColumnRepo.GetMaxPosition(ctx)
}

func (r *Repository) UpdateColumnName(ctx context.Context, id, name string) error {
	return r.ColumnRepo.UpdateName(ctx, id, name)
}

func (r *Repository) DeleteColumnCascade(ctx context.Context, id string) error {
	return r.ColumnRepo.DeleteCascade(ctx, id)
}

// Wrapper methods for CardRepo to satisfy CardRepository
func (r *Repository) CreateCard(ctx context.Context, card *models.Card) (*models.Card, error) {
	return r.CardRepo.Create(ctx, card)
}

func (r *Repository) GetAllCards(ctx context.Context) ([]*models.Card, error) {
	return r.CardRepo.GetAll(ctx)
}

func (r *Repository) GetCardByID(ctx context.Context, id string) (*models.Card, error) {
	return r.CardRepo.GetByID(ctx, id)
}

func (r *Repository) GetCardsByColumn(ctx context.Context, columnID string) ([]*models.Card, error) {
	return r.CardRepo.GetByColumn(ctx, columnID)
}

func (r *Repository) GetMaxCardPosition(ctx context.Context, columnID string) (int, error) {
	return r.CardRepo.GetMaxPosition(ctx, columnID)
}

func (r *Repository) UpdateCard(ctx context.Context, card *models.Card) error {
	return r.CardRepo.Update(ctx, card)
}

func (r *Repository) UpdateCardPlacement(ctx context.Context, id, columnID string, position int) error {
	return r.CardRepo.UpdatePlacement(ctx, id, columnID, position)
}

func (r *Repository) UpdateCardsCreatorDisplay(ctx context.Context, creatorID, name, color, avatar string) error {
	return r.CardRepo.UpdateCreatorDisplay(ctx, creatorID, name, color, avatar)
}

func (r *Repository) DeleteCard(ctx context.Context, id string) error {
	return r.CardRepo.Delete(ctx, id)
}

func (r *Repository) DeleteCardsByCreator(ctx context.Context, creatorID string) error {
	return r.CardRepo.DeleteByCreator(ctx, creatorID)
}

// Wrapper methods for ArchiveRepo to satisfy ArchiveRepository
func (r *Repository) ArchiveCard(ctx context.Context, snapshot *models.DeletedCard) (*models.DeletedCard, error) {
	return r.ArchiveRepo.Archive(ctx, snapshot)
}

func (r *Repository) GetDeletedCards(ctx context.Context, creatorID string) ([]*models.DeletedCard, error) {
	return r.ArchiveRepo.GetAll(ctx, creatorID)
}

// Compile-time check that Repository satisfies the full DataStore contract.
var _ DataStore = (*Repository)(nil)
