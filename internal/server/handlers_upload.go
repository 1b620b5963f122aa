package server

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// maxAvatarSize caps avatar uploads at 2MB
const maxAvatarSize = 2 << 20

var allowedAvatarTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

func (s *Server) handleUploadAvatar(c *gin.Context) {
	header, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avatar file is required"})
		return
	}
	if header.Size > maxAvatarSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avatar must be 2MB or smaller"})
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	contentType, ok := allowedAvatarTypes[ext]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only image files are allowed (jpeg, jpg, png, gif, webp)"})
		return
	}

	f, err := header.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxAvatarSize+1))
	if err != nil {
		respondError(c, err)
		return
	}
	if len(data) > maxAvatarSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avatar must be 2MB or smaller"})
		return
	}

	url, err := s.avatars.Save(c.Request.Context(), data, ext, contentType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
