package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const callerContextKey = "callerKey"

func (h *Handler) authMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		c.Abort()
		return
	}

	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	userKey, err := h.verifier.Verify(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		c.Abort()
		return
	}

	c.Set(callerContextKey, userKey)
	c.Next()
}
