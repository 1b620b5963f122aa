package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"tablero/internal/shared"
)

// runMigrations creates the database schema and seeds default data if needed
func runMigrations(ctx context.Context, db *sql.DB) error {
	// Create users table
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'user',
			color TEXT NOT NULL,
			avatar TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return err
	}

	// Create columns table
	_, err = db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS columns (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			position INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return err
	}

	// Create cards table with the denormalized author snapshot
	_, err = db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS cards (
			id TEXT PRIMARY KEY,
			column_id TEXT NOT NULL,
			creator_id TEXT NOT NULL,
			creator_name TEXT NOT NULL,
			creator_color TEXT NOT NULL,
			creator_avatar TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'gray',
			content TEXT NOT NULL DEFAULT '',
			position INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return err
	}

	// Create the deleted-card archive. No foreign keys on purpose: archive
	// rows must outlive the user and column they reference.
	_, err = db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS deleted_cards (
			id TEXT PRIMARY KEY,
			original_id TEXT NOT NULL,
			column_id TEXT NOT NULL,
			creator_id TEXT NOT NULL,
			creator_name TEXT NOT NULL,
			creator_color TEXT NOT NULL,
			creator_avatar TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'gray',
			content TEXT NOT NULL DEFAULT '',
			position INTEGER NOT NULL,
			deleted_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return err
	}

	// Create indexes for efficient queries
	_, err = db.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS idx_cards_column
		ON cards(column_id, position)
	`)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS idx_cards_creator
		ON cards(creator_id)
	`)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS idx_deleted_cards_creator
		ON deleted_cards(creator_id, deleted_at)
	`)
	if err != nil {
		return err
	}

	// Seed default data on a fresh store
	if err := seedDefaultColumns(ctx, db); err != nil {
		return err
	}
	return seedDefaultAdmin(ctx, db)
}

// seedDefaultColumns inserts default columns if the columns table is empty
func seedDefaultColumns(ctx context.Context, db *sql.DB) error {
	var count int
	err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM columns").Scan(&count)
	if err != nil {
		return err
	}

	// If columns exist, don't seed
	if count > 0 {
		return nil
	}

	defaultColumns := []struct {
		name     string
		position int
	}{
		{"Todo", 0},
		{"In Progress", 1},
		{"In Review", 2},
		{"Done", 3},
	}

	for _, col := range defaultColumns {
		_, err := db.ExecContext(ctx,
			"INSERT INTO columns (id, name, position) VALUES (?, ?, ?)",
			uuid.NewString(), col.name, col.position,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

// seedDefaultAdmin inserts the bootstrap admin account if no users exist
func seedDefaultAdmin(ctx context.Context, db *sql.DB) error {
	var count int
	err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	if err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	_, err = db.ExecContext(ctx,
		"INSERT INTO users (id, username, password, role, color) VALUES (?, ?, ?, ?, ?)",
		uuid.NewString(), "admin", shared.MD5Hex("admin123"), "admin", "#FF6B6B",
	)
	return err
}
