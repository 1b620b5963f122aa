package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tablero/internal/models"
	"tablero/internal/services/card"
)

func (s *Server) handleListCards(c *gin.Context) {
	cards, err := s.cards.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cards)
}

func (s *Server) handleCreateCard(c *gin.Context) {
	var in struct {
		ColumnID string `json:"columnId" binding:"required"`
		Content  string `json:"content"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := s.cards.Create(c.Request.Context(), card.CreateCardRequest{
		ColumnID: in.ColumnID,
		Content:  in.Content,
	}, currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) handleUpdateCard(c *gin.Context) {
	var in struct {
		Status   *models.Status `json:"status"`
		Content  *string        `json:"content"`
		ColumnID *string        `json:"columnId"`
		Order    *int           `json:"order"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := s.cards.Update(c.Request.Context(), card.UpdateCardRequest{
		CardID:   c.Param("id"),
		Status:   in.Status,
		Content:  in.Content,
		ColumnID: in.ColumnID,
		Order:    in.Order,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) handleDeleteCard(c *gin.Context) {
	if err := s.cards.Delete(c.Request.Context(), c.Param("id"), currentUser(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Card deleted"})
}

func (s *Server) handleListDeletedCards(c *gin.Context) {
	records, err := s.cards.ListDeleted(c.Request.Context(), currentUser(c), c.Query("creatorId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}
