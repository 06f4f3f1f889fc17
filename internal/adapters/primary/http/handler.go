package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/soliva-social/soliva/internal/core/ports"
)

// Handler regroupe les services de l'hexagone derrière la surface REST.
// L'identité (clé utilisateur) vient du middleware d'auth, jamais du body.
type Handler struct {
	profiles      ports.ProfileService
	graph         ports.GraphService
	content       ports.ContentService
	notifications ports.NotificationService
	feed          ports.FeedService
	messaging     ports.MessagingService
	verifier      ports.TokenVerifier
}

func New(
	profiles ports.ProfileService,
	graph ports.GraphService,
	content ports.ContentService,
	notifications ports.NotificationService,
	feed ports.FeedService,
	messaging ports.MessagingService,
	verifier ports.TokenVerifier,
) *Handler {
	return &Handler{
		profiles:      profiles,
		graph:         graph,
		content:       content,
		notifications: notifications,
		feed:          feed,
		messaging:     messaging,
		verifier:      verifier,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware("soliva"))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	v1.Use(h.authMiddleware)
	{
		users := v1.Group("/users")
		{
			users.POST("", h.register)
			users.GET("", h.listUsers)
			users.GET("/search", h.searchUsers)
			users.GET("/me", h.currentUser)
			users.PUT("/me", h.updateProfile)
			users.GET("/:key", h.getUser)
			users.GET("/:key/posts", h.userPosts)

			users.POST("/:key/follow", h.follow)
			users.DELETE("/:key/follow", h.unfollow)
			users.GET("/:key/follow", h.isFollowing)
			users.GET("/:key/followers", h.followers)
			users.GET("/:key/following", h.following)
		}

		posts := v1.Group("/posts")
		{
			posts.POST("", h.createPost)
			posts.GET("", h.allPosts)
			posts.POST("/:id/like", h.likePost)
			posts.POST("/:id/comments", h.commentPost)
			posts.POST("/:id/repost", h.repostPost)
		}

		v1.GET("/feed", h.getFeed)

		v1.GET("/notifications", h.listNotifications)
		v1.POST("/notifications/:id/read", h.markNotificationRead)

		messages := v1.Group("/messages")
		{
			messages.GET("", h.inbox)
			messages.POST("/:peer", h.sendMessage)
			messages.GET("/:peer", h.conversation)
			messages.POST("/:peer/seen", h.markSeen)
			messages.GET("/:peer/can", h.canMessage)
		}
	}

	return r
}

// caller lit la clé posée par le middleware d'auth.
func caller(c *gin.Context) string {
	return c.GetString(callerContextKey)
}
