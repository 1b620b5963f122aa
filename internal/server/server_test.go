package server

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tablero/internal/database"
	"tablero/internal/models"
	"tablero/internal/services/auth"
	"tablero/internal/services/card"
	"tablero/internal/services/column"
	"tablero/internal/services/user"
	"tablero/internal/storage"

	_ "modernc.org/sqlite"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ============================================================================
// TEST HELPERS
// ============================================================================

type testServer struct {
	srv   *Server
	db    *sql.DB
	repo  *database.Repository
	users user.Service
	auth  auth.Service
}

// newTestServer wires the full stack over an in-memory database
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	db.SetMaxOpenConns(1)

	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'user',
		color TEXT NOT NULL,
		avatar TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS columns (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		position INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

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
	);

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
	);
	`
	_, err = db.ExecContext(context.Background(), schema)
	require.NoError(t, err)

	repo := database.NewRepository(db)
	authSvc := auth.NewService(repo, []byte("test-secret"), time.Hour)
	userSvc := user.NewService(repo)
	avatars, err := storage.NewDiskStore(t.TempDir())
	require.NoError(t, err)

	srv := NewServer(Options{
		Auth:    authSvc,
		Cards:   card.NewService(repo),
		Columns: column.NewService(repo),
		Users:   userSvc,
		Avatars: avatars,
	})

	return &testServer{srv: srv, db: db, repo: repo, users: userSvc, auth: authSvc}
}

// seedUser creates a user and returns it with a valid token
func (ts *testServer) seedUser(t *testing.T, username string, role models.Role) (*models.User, string) {
	t.Helper()
	_, err := ts.users.Create(context.Background(), user.CreateUserRequest{
		Username: username,
		Password: "pw",
		Role:     role,
	})
	require.NoError(t, err)
	u, token, err := ts.auth.Login(context.Background(), username, "pw")
	require.NoError(t, err)
	return u, token
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.srv.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

// ============================================================================
// TEST CASES - AUTH
// ============================================================================

func TestLoginAndMe(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "alice", models.RoleUser)

	w := ts.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"username": "alice", "password": "pw"})
	require.Equal(t, http.StatusOK, w.Code)

	body := decode[map[string]json.RawMessage](t, w)
	var token string
	require.NoError(t, json.Unmarshal(body["token"], &token))
	require.NotEmpty(t, token)

	// Password digests never leak in responses
	assert.NotContains(t, w.Body.String(), "password")

	w = ts.do(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode[models.User](t, w)
	assert.Equal(t, "alice", me.Username)
}

func TestLoginBadPassword(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "alice", models.RoleUser)

	w := ts.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"username": "alice", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMeWithoutToken(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// ============================================================================
// TEST CASES - COLUMNS
// ============================================================================

func TestColumnCRUDRequiresAdmin(t *testing.T) {
	ts := newTestServer(t)
	_, userToken := ts.seedUser(t, "alice", models.RoleUser)
	_, adminToken := ts.seedUser(t, "root", models.RoleAdmin)

	// Regular users cannot create columns
	w := ts.do(t, http.MethodPost, "/api/columns", userToken, gin.H{"name": "Todo"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = ts.do(t, http.MethodPost, "/api/columns", adminToken, gin.H{"name": "Todo"})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[models.Column](t, w)
	assert.Equal(t, "Todo", created.Name)
	assert.Equal(t, 0, created.Position)

	// Listing is public
	w = ts.do(t, http.MethodGet, "/api/columns", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	columns := decode[[]models.Column](t, w)
	require.Len(t, columns, 1)

	w = ts.do(t, http.MethodPut, "/api/columns/"+created.ID, adminToken, gin.H{"name": "Up Next"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Up Next", decode[models.Column](t, w).Name)

	w = ts.do(t, http.MethodDelete, "/api/columns/"+created.ID, adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestColumnValidationError(t *testing.T) {
	ts := newTestServer(t)
	_, adminToken := ts.seedUser(t, "root", models.RoleAdmin)

	w := ts.do(t, http.MethodPost, "/api/columns", adminToken, gin.H{"name": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ============================================================================
// TEST CASES - CARDS
// ============================================================================

func TestCardLifecycleOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	_, userToken := ts.seedUser(t, "alice", models.RoleUser)
	_, adminToken := ts.seedUser(t, "root", models.RoleAdmin)

	w := ts.do(t, http.MethodPost, "/api/columns", adminToken, gin.H{"name": "Todo"})
	require.Equal(t, http.StatusCreated, w.Code)
	todo := decode[models.Column](t, w)

	w = ts.do(t, http.MethodPost, "/api/cards", userToken, gin.H{"columnId": todo.ID, "content": "write tests"})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[models.Card](t, w)
	assert.Equal(t, models.StatusGray, created.Status)
	assert.Equal(t, "alice", created.CreatorName)
	assert.Equal(t, 0, created.Position)

	w = ts.do(t, http.MethodPut, "/api/cards/"+created.ID, userToken, gin.H{"status": "green", "content": "done"})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[models.Card](t, w)
	assert.Equal(t, models.StatusGreen, updated.Status)
	assert.Equal(t, "done", updated.Content)

	w = ts.do(t, http.MethodDelete, "/api/cards/"+created.ID, userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Only admins can see the archive
	w = ts.do(t, http.MethodGet, "/api/deleted-cards", userToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = ts.do(t, http.MethodGet, "/api/deleted-cards", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	records := decode[[]models.DeletedCard](t, w)
	require.Len(t, records, 1)
	assert.Equal(t, created.ID, records[0].OriginalID)
}

func TestCardMoveOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	_, userToken := ts.seedUser(t, "alice", models.RoleUser)
	_, adminToken := ts.seedUser(t, "root", models.RoleAdmin)

	w := ts.do(t, http.MethodPost, "/api/columns", adminToken, gin.H{"name": "Todo"})
	todo := decode[models.Column](t, w)

	var ids []string
	for _, content := range []string{"A", "B", "C"} {
		w = ts.do(t, http.MethodPost, "/api/cards", userToken, gin.H{"columnId": todo.ID, "content": content})
		require.Equal(t, http.StatusCreated, w.Code)
		ids = append(ids, decode[models.Card](t, w).ID)
	}

	// Move A to the end
	w = ts.do(t, http.MethodPut, "/api/cards/"+ids[0], userToken, gin.H{"columnId": todo.ID, "order": 2})
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodGet, "/api/cards", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	cards := decode[[]models.Card](t, w)
	require.Len(t, cards, 3)
	assert.Equal(t, []string{ids[1], ids[2], ids[0]}, []string{cards[0].ID, cards[1].ID, cards[2].ID})
	for i, c := range cards {
		assert.Equal(t, i, c.Position)
	}
}

func TestCardDeleteForbiddenForNonOwner(t *testing.T) {
	ts := newTestServer(t)
	_, aliceToken := ts.seedUser(t, "alice", models.RoleUser)
	_, malloryToken := ts.seedUser(t, "mallory", models.RoleUser)
	_, adminToken := ts.seedUser(t, "root", models.RoleAdmin)

	w := ts.do(t, http.MethodPost, "/api/columns", adminToken, gin.H{"name": "Todo"})
	todo := decode[models.Column](t, w)

	w = ts.do(t, http.MethodPost, "/api/cards", aliceToken, gin.H{"columnId": todo.ID, "content": "mine"})
	created := decode[models.Card](t, w)

	w = ts.do(t, http.MethodDelete, "/api/cards/"+created.ID, malloryToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Admins may delete anyone's card
	w = ts.do(t, http.MethodDelete, "/api/cards/"+created.ID, adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCardUnknownColumn404(t *testing.T) {
	ts := newTestServer(t)
	_, userToken := ts.seedUser(t, "alice", models.RoleUser)

	w := ts.do(t, http.MethodPost, "/api/cards", userToken, gin.H{"columnId": "missing"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// ============================================================================
// TEST CASES - USERS
// ============================================================================

func TestUserAdminEndpoints(t *testing.T) {
	ts := newTestServer(t)
	_, adminToken := ts.seedUser(t, "root", models.RoleAdmin)

	w := ts.do(t, http.MethodPost, "/api/users", adminToken, gin.H{"username": "bob", "password": "pw"})
	require.Equal(t, http.StatusCreated, w.Code)
	bob := decode[models.User](t, w)
	assert.Equal(t, models.RoleUser, bob.Role)
	assert.NotEmpty(t, bob.Color)

	// Duplicate username is a validation error
	w = ts.do(t, http.MethodPost, "/api/users", adminToken, gin.H{"username": "bob", "password": "pw"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodPut, "/api/users/"+bob.ID, adminToken, gin.H{"username": "bobby"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "bobby", decode[models.User](t, w).Username)

	w = ts.do(t, http.MethodGet, "/api/users", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.User](t, w), 2)

	w = ts.do(t, http.MethodDelete, "/api/users/"+bob.ID, adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeleteAdminUserRefused(t *testing.T) {
	ts := newTestServer(t)
	root, adminToken := ts.seedUser(t, "root", models.RoleAdmin)

	w := ts.do(t, http.MethodDelete, "/api/users/"+root.ID, adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRoleDowngradeTakesEffectImmediately(t *testing.T) {
	ts := newTestServer(t)
	demoted, demotedToken := ts.seedUser(t, "temp-admin", models.RoleAdmin)

	// Token minted while the user was an admin
	w := ts.do(t, http.MethodGet, "/api/users", demotedToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	_, err := ts.db.ExecContext(context.Background(),
		"UPDATE users SET role = 'user' WHERE id = ?", demoted.ID)
	require.NoError(t, err)

	// Same token is now rejected for admin routes
	w = ts.do(t, http.MethodGet, "/api/users", demotedToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

// ============================================================================
// TEST CASES - AVATAR UPLOAD
// ============================================================================

func uploadRequest(t *testing.T, filename string, size int) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("avatar", filename)
	require.NoError(t, err)
	_, err = fw.Write(bytes.Repeat([]byte("x"), size))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadAvatar(t *testing.T) {
	ts := newTestServer(t)
	_, adminToken := ts.seedUser(t, "root", models.RoleAdmin)

	body, contentType := uploadRequest(t, "me.png", 128)
	req := httptest.NewRequest(http.MethodPost, "/api/upload/avatar", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	w := httptest.NewRecorder()
	ts.srv.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[map[string]string](t, w)
	assert.True(t, strings.HasPrefix(resp["url"], "/uploads/avatar-"), "url = %q", resp["url"])
	assert.True(t, strings.HasSuffix(resp["url"], ".png"))
}

func TestUploadAvatarRejectsBadFiles(t *testing.T) {
	ts := newTestServer(t)
	_, adminToken := ts.seedUser(t, "root", models.RoleAdmin)

	tests := []struct {
		name     string
		filename string
		size     int
	}{
		{"wrong extension", "script.exe", 128},
		{"too large", "big.png", maxAvatarSize + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, contentType := uploadRequest(t, tt.filename, tt.size)
			req := httptest.NewRequest(http.MethodPost, "/api/upload/avatar", body)
			req.Header.Set("Content-Type", contentType)
			req.Header.Set("Authorization", "Bearer "+adminToken)
			w := httptest.NewRecorder()
			ts.srv.router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusBadRequest, w.Code, fmt.Sprintf("body: %s", w.Body.String()))
		})
	}
}
