package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"tablero/internal/models"
)

// UserRepo handles all user-related database operations.
type UserRepo struct {
	db *sql.DB
}

// Create inserts a new user. The ID is assigned here; the caller provides
// every other field (password already hashed).
func (r *UserRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password, role, color, avatar)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, user.Username, user.Password, user.Role, user.Color, user.Avatar,
	)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// GetByID retrieves a single user by ID
func (r *UserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		`SELECT id, username, password, role, color, avatar, created_at
		 FROM users WHERE id = ?`, id))
}

// GetByUsername retrieves a single user by their unique username
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		`SELECT id, username, password, role, color, avatar, created_at
		 FROM users WHERE username = ?`, username))
}

// GetAll retrieves every user, oldest first
func (r *UserRepo) GetAll(ctx context.Context) ([]*models.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, username, password, role, color, avatar, created_at
		 FROM users ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(
			&user.ID, &user.Username, &user.Password,
			&user.Role, &user.Color, &user.Avatar, &user.CreatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// Count returns the total number of users
func (r *UserRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}

// Update replaces the user's mutable display fields
func (r *UserRepo) Update(ctx context.Context, id, username, color, avatar string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET username = ?, color = ?, avatar = ? WHERE id = ?`,
		username, color, avatar, id,
	)
	return err
}

// Delete removes a user record
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	return err
}

func (r *UserRepo) scanOne(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID, &user.Username, &user.Password,
		&user.Role, &user.Color, &user.Avatar, &user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}
