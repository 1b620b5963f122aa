package database

import (
	"context"
	"database/sql"
	"testing"

	"tablero/internal/models"

	_ "modernc.org/sqlite"
)

// ============================================================================
// DATABASE SETUP HELPERS
// ============================================================================

// setupTestDB creates an in-memory database and runs migrations
// This is the unified test database setup used by all tests
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	// A single connection keeps every statement on the same :memory: database
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	// Clear seeded data for fresh tests
	if _, err := db.ExecContext(ctx, "DELETE FROM columns"); err != nil {
		t.Fatalf("Failed to clear columns: %v", err)
	}
	if _, err := db.ExecContext(ctx, "DELETE FROM users"); err != nil {
		t.Fatalf("Failed to clear users: %v", err)
	}

	return db
}

// createTestUser inserts a user and returns it
func createTestUser(t *testing.T, repo *Repository, username string, role models.Role) *models.User {
	t.Helper()
	user, err := repo.CreateUser(context.Background(), &models.User{
		Username: username,
		Password: "5f4dcc3b5aa765d61d8327deb882cf99",
		Role:     role,
		Color:    "#4ECDC4",
	})
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

// createTestColumn inserts a column and returns it
func createTestColumn(t *testing.T, repo *Repository, name string, position int) *models.Column {
	t.Helper()
	column, err := repo.CreateColumn(context.Background(), name, position)
	if err != nil {
		t.Fatalf("Failed to create test column: %v", err)
	}
	return column
}

// createTestCard inserts a card authored by the given user at the next free
// position in the column
func createTestCard(t *testing.T, repo *Repository, column *models.Column, creator *models.User, content string) *models.Card {
	t.Helper()
	ctx := context.Background()

	max, err := repo.GetMaxCardPosition(ctx, column.ID)
	if err != nil {
		t.Fatalf("Failed to get max position: %v", err)
	}

	card, err := repo.CreateCard(ctx, &models.Card{
		ColumnID:      column.ID,
		CreatorID:     creator.ID,
		CreatorName:   creator.Username,
		CreatorColor:  creator.Color,
		CreatorAvatar: creator.Avatar,
		Status:        models.StatusGray,
		Content:       content,
		Position:      max + 1,
	})
	if err != nil {
		t.Fatalf("Failed to create test card: %v", err)
	}
	return card
}
