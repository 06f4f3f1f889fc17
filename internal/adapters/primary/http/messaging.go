package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

func (h *Handler) listNotifications(c *gin.Context) {
	notifs, err := h.notifications.List(c.Request.Context(), caller(c))
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]notificationResponse, 0, len(notifs))
	for _, n := range notifs {
		out = append(out, toNotificationResponse(n))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) markNotificationRead(c *gin.Context) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
		return
	}

	if err := h.notifications.MarkRead(c.Request.Context(), caller(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"read": true})
}

func (h *Handler) sendMessage(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	msg, err := h.messaging.Send(c.Request.Context(), caller(c), c.Param("peer"), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toMessageResponse(msg))
}

func (h *Handler) canMessage(c *gin.Context) {
	ok, err := h.messaging.CanMessage(c.Request.Context(), caller(c), c.Param("peer"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"can_message": ok})
}

func (h *Handler) conversation(c *gin.Context) {
	msgs, err := h.messaging.Conversation(c.Request.Context(), caller(c), c.Param("peer"))
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]messageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toMessageResponse(m))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) markSeen(c *gin.Context) {
	var req markSeenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.messaging.MarkSeen(c.Request.Context(), caller(c), c.Param("peer"), req.UpTo); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"seen": true})
}

func (h *Handler) inbox(c *gin.Context) {
	peers, err := h.messaging.Inbox(c.Request.Context(), caller(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"peers": peers})
}
