package app

import (
	"time"

	"tablero/internal/database"
	"tablero/internal/services/auth"
	"tablero/internal/services/card"
	"tablero/internal/services/column"
	"tablero/internal/services/user"
)

// App holds all application services and provides dependency injection.
// This is the main application container that manages service lifecycles.
type App struct {
	// Repository layer (direct database access)
	repo database.DataStore

	// Service layer (business logic)
	AuthService   auth.Service
	CardService   card.Service
	ColumnService column.Service
	UserService   user.Service
}

// New creates a new App with all services initialized.
// This is the single entry point for creating the application container.
func New(repo database.DataStore, jwtSecret []byte, tokenTTL time.Duration) *App {
	return &App{
		repo:          repo,
		AuthService:   auth.NewService(repo, jwtSecret, tokenTTL),
		CardService:   card.NewService(repo),
		ColumnService: column.NewService(repo),
		UserService:   user.NewService(repo),
	}
}

// Repo returns the underlying repository for direct database access.
func (a *App) Repo() database.DataStore {
	return a.repo
}
