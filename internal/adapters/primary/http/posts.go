package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/soliva-social/soliva/internal/core/domain"
	"github.com/soliva-social/soliva/internal/core/ports"
)

func postID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return 0, false
	}
	return id, true
}

func (h *Handler) createPost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	post, err := h.content.CreatePost(c.Request.Context(), caller(c), ports.PostCmd{
		Content: req.Content,
		Image:   req.Image,
		Video:   req.Video,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toPostResponse(post))
}

func (h *Handler) likePost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	post, outcome, err := h.content.LikePost(c.Request.Context(), caller(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	label := "unliked"
	if outcome == domain.Liked {
		label = "liked"
	}
	c.JSON(http.StatusOK, likeResponse{Outcome: label, Post: toPostResponse(post)})
}

func (h *Handler) commentPost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	comment, err := h.content.CommentPost(c.Request.Context(), caller(c), id, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toCommentResponse(comment))
}

func (h *Handler) repostPost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	repost, err := h.content.RepostPost(c.Request.Context(), caller(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toPostResponse(repost))
}

func (h *Handler) allPosts(c *gin.Context) {
	posts, err := h.content.AllPosts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPostResponses(posts))
}

func (h *Handler) userPosts(c *gin.Context) {
	posts, err := h.content.UserPosts(c.Request.Context(), c.Param("key"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPostResponses(posts))
}

func (h *Handler) getFeed(c *gin.Context) {
	posts, err := h.feed.Feed(c.Request.Context(), caller(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPostResponses(posts))
}
