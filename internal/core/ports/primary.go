package ports

import (
	"context"

	"github.com/soliva-social/soliva/internal/core/domain"
)

// --- INPUTS (Command Pattern) ---
// Des structs plutôt que des listes de paramètres : on peut ajouter des
// champs optionnels sans casser les signatures.

type ProfileCmd struct {
	Name         string
	Bio          string
	ProfileImage string
	CoverImage   string
}

type PostCmd struct {
	Content string
	Image   string // référence opaque, vide = absent
	Video   string
}

// --- PORTS PRIMAIRES (Driving) ---
// L'API que l'hexagone expose au monde extérieur (HTTP, CLI, tests).
// Le caller est toujours passé explicitement : l'identité vient de
// l'adapter primaire, jamais d'un état ambiant.

type ProfileService interface {
	Register(ctx context.Context, caller string, cmd ProfileCmd) (*domain.Profile, error)
	Update(ctx context.Context, caller string, cmd ProfileCmd) (*domain.Profile, error)
	Get(ctx context.Context, userKey string) (*domain.Profile, error)
	ListAll(ctx context.Context) ([]*domain.Profile, error)
	Search(ctx context.Context, query string) ([]*domain.Profile, error)
}

type GraphService interface {
	Follow(ctx context.Context, caller, target string) error
	Unfollow(ctx context.Context, caller, target string) error
	IsFollowing(ctx context.Context, caller, target string) (bool, error)
	Followers(ctx context.Context, userKey string) ([]string, error)
	Following(ctx context.Context, userKey string) ([]string, error)
}

type ContentService interface {
	CreatePost(ctx context.Context, caller string, cmd PostCmd) (*domain.Post, error)

	// LikePost a une sémantique de toggle ; l'outcome dit quelle
	// transition a eu lieu (Liked ou Unliked).
	LikePost(ctx context.Context, caller string, postID int64) (*domain.Post, domain.LikeOutcome, error)

	CommentPost(ctx context.Context, caller string, postID int64, content string) (*domain.Comment, error)
	RepostPost(ctx context.Context, caller string, postID int64) (*domain.Post, error)

	AllPosts(ctx context.Context) ([]*domain.Post, error)
	UserPosts(ctx context.Context, userKey string) ([]*domain.Post, error)
}

type NotificationService interface {
	// Notify est l'effet de bord synchrone déclenché par Follow/Like/
	// Comment/Repost/Message. Les appelants suppriment l'auto-notification.
	Notify(ctx context.Context, sender, receiver string, kind domain.NotificationKind, message string) error

	List(ctx context.Context, caller string) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, caller string, notificationID int64) error
}

type FeedService interface {
	// Feed est une vue dérivée, recalculée à chaque appel : posts de
	// {caller} ∪ following(caller), du plus récent au plus ancien.
	Feed(ctx context.Context, caller string) ([]*domain.Post, error)
}

type MessagingService interface {
	Send(ctx context.Context, caller, peer, content string) (*domain.Message, error)
	CanMessage(ctx context.Context, caller, peer string) (bool, error)
	Conversation(ctx context.Context, caller, peer string) ([]*domain.Message, error)

	// MarkSeen avance le watermark : tous les messages adressés au caller
	// dans cette conversation avec id <= upTo passent à seen.
	MarkSeen(ctx context.Context, caller, peer string, upTo int64) error

	Inbox(ctx context.Context, caller string) ([]string, error)
}
