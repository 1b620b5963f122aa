package auth

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"tablero/internal/database"
	"tablero/internal/models"
	"tablero/internal/shared"
)

// Service is the authorization gate: it exchanges credentials for a signed
// token and resolves tokens back to stored users on every request.
type Service interface {
	// Login verifies credentials and returns the user plus a session token
	Login(ctx context.Context, username, password string) (*models.User, string, error)

	// Resolve maps a caller-supplied token to the stored user record. The
	// record is re-fetched on every call so role changes apply immediately.
	Resolve(ctx context.Context, token string) (*models.User, error)

	// RequireAdmin resolves the token and verifies the stored role is admin
	RequireAdmin(ctx context.Context, token string) (*models.User, error)
}

// claims carries the authenticated user ID inside the signed token. Role is
// deliberately not embedded: it is read from the store per request.
type claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
}

// service implements Service
type service struct {
	repo     database.UserReader
	secret   []byte
	tokenTTL time.Duration
}

// NewService creates a new auth service
func NewService(repo database.UserReader, secret []byte, tokenTTL time.Duration) Service {
	return &service{repo: repo, secret: secret, tokenTTL: tokenTTL}
}

// Login verifies the password digest and mints an HS256 token
func (s *service) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	digest := shared.MD5Hex(password)
	if subtle.ConstantTimeCompare([]byte(digest), []byte(user.Password)) != 1 {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign token: %w", err)
	}
	return user, token, nil
}

// Resolve parses the token and re-fetches the user record
func (s *service) Resolve(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}

	parsed := &claims{}
	t, err := jwt.ParseWithClaims(token, parsed, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !t.Valid {
		return nil, ErrUnauthorized
	}

	user, err := s.repo.GetUserByID(ctx, parsed.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return user, nil
}

// RequireAdmin resolves the token and performs the role-equality test
func (s *service) RequireAdmin(ctx context.Context, token string) (*models.User, error) {
	user, err := s.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin() {
		return nil, ErrAdminRequired
	}
	return user, nil
}

func (s *service) generateToken(userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: userID,
	})
	return token.SignedString(s.secret)
}
