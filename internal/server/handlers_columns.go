package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleListColumns(c *gin.Context) {
	columns, err := s.columns.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, columns)
}

func (s *Server) handleCreateColumn(c *gin.Context) {
	var in struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := s.columns.Create(c.Request.Context(), in.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) handleRenameColumn(c *gin.Context) {
	var in struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	renamed, err := s.columns.Rename(c.Request.Context(), c.Param("id"), in.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, renamed)
}

func (s *Server) handleDeleteColumn(c *gin.Context) {
	if err := s.columns.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Column deleted"})
}
