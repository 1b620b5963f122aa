package card

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tablero/internal/database"
	"tablero/internal/models"
	"tablero/internal/ordering"
)

// Service defines all card-related business operations: the lifecycle of a
// card from creation through reordering to archival on delete.
type Service interface {
	// Read operations
	List(ctx context.Context) ([]*models.Card, error)
	ListDeleted(ctx context.Context, requester *models.User, creatorID string) ([]*models.DeletedCard, error)

	// Write operations
	Create(ctx context.Context, req CreateCardRequest, creator *models.User) (*models.Card, error)
	Update(ctx context.Context, req UpdateCardRequest) (*models.Card, error)
	Delete(ctx context.Context, cardID string, requester *models.User) error
}

// CreateCardRequest encapsulates all data needed to create a card
type CreateCardRequest struct {
	ColumnID string
	Content  string
}

// UpdateCardRequest encapsulates a card patch. Nil fields are left unchanged.
// When ColumnID and/or Order is present the change is a move: Order is the
// resolved target index in the destination column, and an absent Order means
// append to the end.
type UpdateCardRequest struct {
	CardID   string
	Status   *models.Status
	Content  *string
	ColumnID *string
	Order    *int
}

// service implements Service
type service struct {
	repo database.DataStore
}

// NewService creates a new card service
func NewService(repo database.DataStore) Service {
	return &service{repo: repo}
}

// Create appends a new card to the end of a column, snapshotting the
// creator's current display fields onto it
func (s *service) Create(ctx context.Context, req CreateCardRequest, creator *models.User) (*models.Card, error) {
	if req.ColumnID == "" {
		return nil, ErrMissingColumn
	}
	if _, err := s.repo.GetColumnByID(ctx, req.ColumnID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrColumnNotFound
		}
		return nil, fmt.Errorf("failed to get column: %w", err)
	}

	max, err := s.repo.GetMaxCardPosition(ctx, req.ColumnID)
	if err != nil {
		return nil, fmt.Errorf("failed to get max position: %w", err)
	}

	created, err := s.repo.CreateCard(ctx, &models.Card{
		ColumnID:      req.ColumnID,
		CreatorID:     creator.ID,
		CreatorName:   creator.Username,
		CreatorColor:  creator.Color,
		CreatorAvatar: creator.Avatar,
		Status:        models.StatusGray,
		Content:       req.Content,
		Position:      max + 1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}
	return created, nil
}

// Update applies a patch to a card. Status and content may be changed by any
// authenticated user; position changes are routed through the ordering
// engine so column positions stay unique and dense.
func (s *service) Update(ctx context.Context, req UpdateCardRequest) (*models.Card, error) {
	if req.CardID == "" {
		return nil, ErrInvalidCardID
	}

	card, err := s.repo.GetCardByID(ctx, req.CardID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to get card: %w", err)
	}

	if req.Status != nil {
		if !models.ValidStatus(*req.Status) {
			return nil, ErrInvalidStatus
		}
		card.Status = *req.Status
	}
	if req.Content != nil {
		card.Content = *req.Content
	}
	if req.Status != nil || req.Content != nil {
		if err := s.repo.UpdateCard(ctx, card); err != nil {
			return nil, fmt.Errorf("failed to update card: %w", err)
		}
	}

	if req.ColumnID != nil || req.Order != nil {
		if err := s.move(ctx, card, req); err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.GetCardByID(ctx, req.CardID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload card: %w", err)
	}
	return updated, nil
}

// move recomputes positions for the target column (and compacts the source
// column on inter-column moves). Each placement update is an independent
// write; a crash mid-way can leave gaps, repaired by the next move or a
// manual compaction pass.
func (s *service) move(ctx context.Context, card *models.Card, req UpdateCardRequest) error {
	targetColumnID := card.ColumnID
	if req.ColumnID != nil {
		targetColumnID = *req.ColumnID
	}
	if _, err := s.repo.GetColumnByID(ctx, targetColumnID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrColumnNotFound
		}
		return fmt.Errorf("failed to get target column: %w", err)
	}

	targetCards, err := s.repo.GetCardsByColumn(ctx, targetColumnID)
	if err != nil {
		return fmt.Errorf("failed to load target column: %w", err)
	}

	// Dropped onto empty column space: append to end
	targetIndex := len(targetCards)
	if req.Order != nil {
		targetIndex = *req.Order
	}

	placements := make([]ordering.Placement, len(targetCards))
	current := make(map[string]int, len(targetCards))
	for i, c := range targetCards {
		placements[i] = ordering.Placement{ID: c.ID, Position: c.Position}
		current[c.ID] = c.Position
	}

	assignments, changed := ordering.Reorder(placements, card.ID, targetIndex)
	if !changed {
		// Same column, same slot: skip all writes
		return nil
	}

	crossColumn := targetColumnID != card.ColumnID
	for _, a := range assignments {
		if a.ID == card.ID {
			if crossColumn || a.Position != card.Position {
				if err := s.repo.UpdateCardPlacement(ctx, a.ID, targetColumnID, a.Position); err != nil {
					return fmt.Errorf("failed to place card: %w", err)
				}
			}
			continue
		}
		if pos, ok := current[a.ID]; ok && pos == a.Position {
			continue
		}
		if err := s.repo.UpdateCardPlacement(ctx, a.ID, targetColumnID, a.Position); err != nil {
			return fmt.Errorf("failed to reindex card: %w", err)
		}
	}

	if crossColumn {
		if err := s.compactColumn(ctx, card.ColumnID); err != nil {
			return err
		}
	}
	return nil
}

// compactColumn closes the position gap a departing card left behind
func (s *service) compactColumn(ctx context.Context, columnID string) error {
	cards, err := s.repo.GetCardsByColumn(ctx, columnID)
	if err != nil {
		return fmt.Errorf("failed to load source column: %w", err)
	}

	placements := make([]ordering.Placement, len(cards))
	for i, c := range cards {
		placements[i] = ordering.Placement{ID: c.ID, Position: c.Position}
	}

	assignments, changed := ordering.Compact(placements)
	if !changed {
		return nil
	}
	for i, a := range assignments {
		if a.Position == cards[i].Position {
			continue
		}
		if err := s.repo.UpdateCardPlacement(ctx, a.ID, columnID, a.Position); err != nil {
			return fmt.Errorf("failed to compact column: %w", err)
		}
	}
	return nil
}

// Delete archives the card and then removes it. The archive write comes
// first: if it fails the live card stays untouched.
func (s *service) Delete(ctx context.Context, cardID string, requester *models.User) error {
	if cardID == "" {
		return ErrInvalidCardID
	}

	card, err := s.repo.GetCardByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCardNotFound
		}
		return fmt.Errorf("failed to get card: %w", err)
	}

	if !requester.IsAdmin() && requester.ID != card.CreatorID {
		return ErrNotCardOwner
	}

	_, err = s.repo.ArchiveCard(ctx, &models.DeletedCard{
		OriginalID:    card.ID,
		ColumnID:      card.ColumnID,
		CreatorID:     card.CreatorID,
		CreatorName:   card.CreatorName,
		CreatorColor:  card.CreatorColor,
		CreatorAvatar: card.CreatorAvatar,
		Status:        card.Status,
		Content:       card.Content,
		Position:      card.Position,
	})
	if err != nil {
		return fmt.Errorf("failed to archive card: %w", err)
	}

	if err := s.repo.DeleteCard(ctx, cardID); err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}
	return nil
}

// List returns every card across all columns, ascending by position
func (s *service) List(ctx context.Context) ([]*models.Card, error) {
	return s.repo.GetAllCards(ctx)
}

// ListDeleted returns archive records, newest deletion first, optionally
// filtered to one original creator
func (s *service) ListDeleted(ctx context.Context, requester *models.User, creatorID string) ([]*models.DeletedCard, error) {
	if !requester.IsAdmin() {
		return nil, ErrAdminOnly
	}
	return s.repo.GetDeletedCards(ctx, creatorID)
}
