package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"tablero/internal/database"
	"tablero/internal/models"
	"tablero/internal/shared"
)

// defaultColors is cycled through when a new user is created without an
// explicit color, keyed off the current user count
var defaultColors = []string{
	"#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4", "#FFEAA7",
	"#DDA0DD", "#98D8C8", "#F7DC6F", "#BB8FCE", "#85C1E9",
}

// Service defines all user-related business operations
type Service interface {
	// Read operations
	List(ctx context.Context) ([]*models.User, error)

	// Write operations
	Create(ctx context.Context, req CreateUserRequest) (*models.User, error)
	Update(ctx context.Context, req UpdateUserRequest) (*models.User, error)
	Delete(ctx context.Context, id string) error
}

// CreateUserRequest encapsulates data for creating a user
type CreateUserRequest struct {
	Username string
	Password string
	Role     models.Role // defaults to RoleUser when empty
	Color    string      // auto-assigned from the palette when empty
	Avatar   string
}

// UpdateUserRequest encapsulates a partial user update; nil fields are left
// untouched
type UpdateUserRequest struct {
	ID       string
	Username *string
	Color    *string
	Avatar   *string
}

// service implements Service using the shared datastore
type service struct {
	repo database.DataStore
}

// NewService creates a new user service
func NewService(repo database.DataStore) Service {
	return &service{repo: repo}
}

// List retrieves all users
func (s *service) List(ctx context.Context) ([]*models.User, error) {
	return s.repo.GetAllUsers(ctx)
}

// Create registers a new user. Passwords are stored as MD5 digests and a
// display color is drawn from the palette when none is given.
func (s *service) Create(ctx context.Context, req CreateUserRequest) (*models.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		return nil, ErrEmptyUsername
	}
	if req.Password == "" {
		return nil, ErrEmptyPassword
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	if role != models.RoleAdmin && role != models.RoleUser {
		return nil, ErrInvalidRole
	}

	if err := s.checkUsernameFree(ctx, req.Username); err != nil {
		return nil, err
	}

	color := req.Color
	if color == "" {
		count, err := s.repo.CountUsers(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to count users: %w", err)
		}
		color = defaultColors[count%len(defaultColors)]
	}

	user, err := s.repo.CreateUser(ctx, &models.User{
		Username: req.Username,
		Password: shared.MD5Hex(req.Password),
		Role:     role,
		Color:    color,
		Avatar:   req.Avatar,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Update applies a partial edit to a user and propagates the new display
// fields to every card the user created, so board snapshots stay in sync.
// Archived cards are never touched.
func (s *service) Update(ctx context.Context, req UpdateUserRequest) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	changed := false
	if req.Username != nil {
		name := strings.TrimSpace(*req.Username)
		if name == "" {
			return nil, ErrEmptyUsername
		}
		if name != user.Username {
			if err := s.checkUsernameFree(ctx, name); err != nil {
				return nil, err
			}
			user.Username = name
			changed = true
		}
	}
	if req.Color != nil && *req.Color != "" && *req.Color != user.Color {
		user.Color = *req.Color
		changed = true
	}
	if req.Avatar != nil && *req.Avatar != user.Avatar {
		user.Avatar = *req.Avatar
		changed = true
	}

	if !changed {
		return user, nil
	}

	if err := s.repo.UpdateUser(ctx, user.ID, user.Username, user.Color, user.Avatar); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if err := s.repo.UpdateCardsCreatorDisplay(ctx, user.ID, user.Username, user.Color, user.Avatar); err != nil {
		return nil, fmt.Errorf("failed to propagate display fields to cards: %w", err)
	}
	return user, nil
}

// Delete removes a user together with every card they created. Admin
// accounts are refused. The cascaded cards skip the archive.
func (s *service) Delete(ctx context.Context, id string) error {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user.IsAdmin() {
		return ErrCannotDeleteAdmin
	}

	if err := s.repo.DeleteCardsByCreator(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user's cards: %w", err)
	}
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (s *service) checkUsernameFree(ctx context.Context, username string) error {
	_, err := s.repo.GetUserByUsername(ctx, username)
	switch {
	case err == nil:
		return ErrUsernameTaken
	case errors.Is(err, sql.ErrNoRows):
		return nil
	default:
		return fmt.Errorf("failed to check username: %w", err)
	}
}
