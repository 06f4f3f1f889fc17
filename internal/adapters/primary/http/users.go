package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/soliva-social/soliva/internal/core/ports"
)

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	profile, err := h.profiles.Register(c.Request.Context(), caller(c), ports.ProfileCmd{
		Name:         req.Name,
		Bio:          req.Bio,
		ProfileImage: req.ProfileImage,
		CoverImage:   req.CoverImage,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toProfileResponse(profile))
}

func (h *Handler) updateProfile(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	profile, err := h.profiles.Update(c.Request.Context(), caller(c), ports.ProfileCmd{
		Name:         req.Name,
		Bio:          req.Bio,
		ProfileImage: req.ProfileImage,
		CoverImage:   req.CoverImage,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProfileResponse(profile))
}

func (h *Handler) currentUser(c *gin.Context) {
	profile, err := h.profiles.Get(c.Request.Context(), caller(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProfileResponse(profile))
}

func (h *Handler) getUser(c *gin.Context) {
	profile, err := h.profiles.Get(c.Request.Context(), c.Param("key"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProfileResponse(profile))
}

func (h *Handler) listUsers(c *gin.Context) {
	profiles, err := h.profiles.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProfileResponses(profiles))
}

func (h *Handler) searchUsers(c *gin.Context) {
	profiles, err := h.profiles.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProfileResponses(profiles))
}

func (h *Handler) follow(c *gin.Context) {
	if err := h.graph.Follow(c.Request.Context(), caller(c), c.Param("key")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"following": true})
}

func (h *Handler) unfollow(c *gin.Context) {
	if err := h.graph.Unfollow(c.Request.Context(), caller(c), c.Param("key")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"following": false})
}

func (h *Handler) isFollowing(c *gin.Context) {
	following, err := h.graph.IsFollowing(c.Request.Context(), caller(c), c.Param("key"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"following": following})
}

func (h *Handler) followers(c *gin.Context) {
	keys, err := h.graph.Followers(c.Request.Context(), c.Param("key"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"followers": keys})
}

func (h *Handler) following(c *gin.Context) {
	keys, err := h.graph.Following(c.Request.Context(), c.Param("key"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"following": keys})
}
