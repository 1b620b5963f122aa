// Package server exposes the board over HTTP using gin. All state changes
// flow through the service layer; handlers only translate between JSON and
// service calls.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tablero/internal/services/auth"
	"tablero/internal/services/card"
	"tablero/internal/services/column"
	"tablero/internal/services/user"
	"tablero/internal/storage"
)

// Server is the board HTTP server
type Server struct {
	auth    auth.Service
	cards   card.Service
	columns column.Service
	users   user.Service
	avatars storage.Store
	router  *gin.Engine
}

// Options bundles the dependencies for NewServer. UploadsDir is served as
// /uploads when non-empty; an S3-backed avatar store leaves it blank.
type Options struct {
	Auth       auth.Service
	Cards      card.Service
	Columns    column.Service
	Users      user.Service
	Avatars    storage.Store
	UploadsDir string
}

// NewServer wires the routes
func NewServer(opts Options) *Server {
	router := gin.Default()

	s := &Server{
		auth:    opts.Auth,
		cards:   opts.Cards,
		columns: opts.Columns,
		users:   opts.Users,
		avatars: opts.Avatars,
		router:  router,
	}

	if opts.UploadsDir != "" {
		router.Static("/uploads", opts.UploadsDir)
	}

	api := router.Group("/api")
	{
		api.POST("/auth/login", s.handleLogin)
		api.GET("/auth/me", s.authRequired(), s.handleMe)

		api.GET("/columns", s.handleListColumns)
		api.POST("/columns", s.adminRequired(), s.handleCreateColumn)
		api.PUT("/columns/:id", s.adminRequired(), s.handleRenameColumn)
		api.DELETE("/columns/:id", s.adminRequired(), s.handleDeleteColumn)

		api.GET("/cards", s.handleListCards)
		api.POST("/cards", s.authRequired(), s.handleCreateCard)
		api.PUT("/cards/:id", s.authRequired(), s.handleUpdateCard)
		api.DELETE("/cards/:id", s.authRequired(), s.handleDeleteCard)

		api.GET("/deleted-cards", s.adminRequired(), s.handleListDeletedCards)

		api.GET("/users", s.adminRequired(), s.handleListUsers)
		api.POST("/users", s.adminRequired(), s.handleCreateUser)
		api.PUT("/users/:id", s.adminRequired(), s.handleUpdateUser)
		api.DELETE("/users/:id", s.adminRequired(), s.handleDeleteUser)

		api.POST("/upload/avatar", s.adminRequired(), s.handleUploadAvatar)
	}

	return s
}

// Run starts the HTTP server
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Handler exposes the routes for embedding in a custom http.Server
func (s *Server) Handler() http.Handler {
	return s.router
}
