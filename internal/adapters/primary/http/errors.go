package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/soliva-social/soliva/internal/core/domain"
)

// respondError traduit les sentinelles du domaine en statuts HTTP.
// Tout le reste est un 500 générique : pas de détails techniques au client.
func respondError(c *gin.Context, err error) {
	switch {
	case domain.IsInvalidInput(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrPostNotFound),
		errors.Is(err, domain.ErrNotificationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrNotOwner),
		errors.Is(err, domain.ErrNotRegistered),
		errors.Is(err, domain.ErrMessagingGated):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrAlreadyRegistered),
		errors.Is(err, domain.ErrAlreadyFollowing),
		errors.Is(err, domain.ErrAlreadyReposted),
		errors.Is(err, domain.ErrNotFollowing),
		errors.Is(err, domain.ErrSelfFollow):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	default:
		slog.Error("unhandled error", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
