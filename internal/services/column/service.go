package column

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"tablero/internal/database"
	"tablero/internal/models"
)

// Service defines all column-related business operations
type Service interface {
	// Read operations
	List(ctx context.Context) ([]*models.Column, error)

	// Write operations
	Create(ctx context.Context, name string) (*models.Column, error)
	Rename(ctx context.Context, id, name string) (*models.Column, error)
	Delete(ctx context.Context, id string) error
}

// service implements Service using the shared datastore
type service struct {
	repo database.DataStore
}

// NewService creates a new column service
func NewService(repo database.DataStore) Service {
	return &service{repo: repo}
}

// List retrieves all columns in board order
func (s *service) List(ctx context.Context) ([]*models.Column, error) {
	return s.repo.GetAllColumns(ctx)
}

// Create appends a new column after the current last one
func (s *service) Create(ctx context.Context, name string) (*models.Column, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}

	maxPos, err := s.repo.GetMaxColumnPosition(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to determine column position: %w", err)
	}

	column, err := s.repo.CreateColumn(ctx, name, maxPos+1)
	if err != nil {
		return nil, fmt.Errorf("failed to create column: %w", err)
	}
	return column, nil
}

// Rename updates a column's name
func (s *service) Rename(ctx context.Context, id, name string) (*models.Column, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.GetColumnByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrColumnNotFound
		}
		return nil, fmt.Errorf("failed to get column: %w", err)
	}

	if err := s.repo.UpdateColumnName(ctx, id, name); err != nil {
		return nil, fmt.Errorf("failed to rename column: %w", err)
	}
	return s.repo.GetColumnByID(ctx, id)
}

// Delete removes a column together with every card it holds. Removed cards
// are gone for good; only card-level deletes feed the archive.
func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetColumnByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrColumnNotFound
		}
		return fmt.Errorf("failed to get column: %w", err)
	}

	if err := s.repo.DeleteColumnCascade(ctx, id); err != nil {
		return fmt.Errorf("failed to delete column: %w", err)
	}
	return nil
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	if len(name) > 50 {
		return "", ErrNameTooLong
	}
	return name, nil
}
