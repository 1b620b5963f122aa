package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tablero/internal/models"
	"tablero/internal/services/user"
)

func (s *Server) handleListUsers(c *gin.Context) {
	users, err := s.users.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (s *Server) handleCreateUser(c *gin.Context) {
	var in struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Role     string `json:"role"`
		Color    string `json:"color"`
		Avatar   string `json:"avatar"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := s.users.Create(c.Request.Context(), user.CreateUserRequest{
		Username: in.Username,
		Password: in.Password,
		Role:     models.Role(in.Role),
		Color:    in.Color,
		Avatar:   in.Avatar,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) handleUpdateUser(c *gin.Context) {
	var in struct {
		Username *string `json:"username"`
		Color    *string `json:"color"`
		Avatar   *string `json:"avatar"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := s.users.Update(c.Request.Context(), user.UpdateUserRequest{
		ID:       c.Param("id"),
		Username: in.Username,
		Color:    in.Color,
		Avatar:   in.Avatar,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) handleDeleteUser(c *gin.Context) {
	if err := s.users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
