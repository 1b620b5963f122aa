package server

import (
	"strings"

	"github.com/gin-gonic/gin"

	"tablero/internal/models"
)

const currentUserKey = "currentUser"

// authRequired resolves the bearer token to a user record on every request,
// so role changes and deletions take effect immediately
func (s *Server) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := s.auth.Resolve(c.Request.Context(), bearerToken(c))
		if err != nil {
			respondError(c, err)
			c.Abort()
			return
		}
		c.Set(currentUserKey, u)
		c.Next()
	}
}

// adminRequired additionally checks the stored role
func (s *Server) adminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := s.auth.RequireAdmin(c.Request.Context(), bearerToken(c))
		if err != nil {
			respondError(c, err)
			c.Abort()
			return
		}
		c.Set(currentUserKey, u)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(h, "Bearer ")
}

// currentUser returns the user record the auth middleware stored
func currentUser(c *gin.Context) *models.User {
	v, _ := c.Get(currentUserKey)
	u, _ := v.(*models.User)
	return u
}
