package database

import (
	"context"

	"tablero/internal/models"
)

// UserReader defines read operations for users.
type UserReader interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]*models.User, error)
	CountUsers(ctx context.Context) (int, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	UpdateUser(ctx context.Context, id, username, color, avatar string) error
	DeleteUser(ctx context.Context, id string) error
}

// UserRepository combines all user-related operations.
type UserRepository interface {
	UserReader
	UserWriter
}
