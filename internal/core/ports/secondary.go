package ports

import (
	"context"

	"github.com/soliva-social/soliva/internal/core/domain"
)

// --- PERSISTANCE (Driven) ---
// Chaque méthode mutante est une unité atomique : l'adapter garantit
// qu'un échec ne laisse aucun état partiel visible.

type UserRepository interface {
	// Save échoue avec ErrAlreadyRegistered si la clé existe déjà.
	Save(ctx context.Context, user *domain.User) error
	Get(ctx context.Context, key string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	List(ctx context.Context) ([]*domain.User, error)
	Search(ctx context.Context, query string) ([]*domain.User, error)
}

// GraphRepository détient le edge set canonique. Les vues follower/following
// sont des projections de ce set, jamais deux copies indépendantes.
type GraphRepository interface {
	// CreateEdge échoue avec ErrAlreadyFollowing si l'arête existe.
	CreateEdge(ctx context.Context, follower, followee string) error
	// DeleteEdge échoue avec ErrNotFollowing si l'arête n'existe pas.
	DeleteEdge(ctx context.Context, follower, followee string) error
	HasEdge(ctx context.Context, follower, followee string) (bool, error)
	// Status checke les deux sens en un seul aller-retour.
	Status(ctx context.Context, actor, target string) (*domain.RelationStatus, error)
	Followers(ctx context.Context, userKey string) ([]string, error)
	Following(ctx context.Context, userKey string) ([]string, error)
}

type PostRepository interface {
	// Create assigne l'id global monotone et persiste le post.
	Create(ctx context.Context, post *domain.Post) (*domain.Post, error)
	Get(ctx context.Context, postID int64) (*domain.Post, error)

	// ToggleLike lit-puis-écrit le set des likers en une unité indivisible
	// (pas de lost update sous likes concurrents).
	ToggleLike(ctx context.Context, postID int64, userKey string) (*domain.Post, domain.LikeOutcome, error)

	// AddComment assigne l'id de commentaire scopé au post parent.
	AddComment(ctx context.Context, postID int64, comment *domain.Comment) (*domain.Comment, error)

	// CreateRepost vérifie l'existence de l'original et la garde
	// anti-doublon (caller, original) dans la même transaction.
	CreateRepost(ctx context.Context, repost *domain.Post) (*domain.Post, error)

	// All et ByAuthor rendent l'ordre anté-chronologique, ties par id croissant.
	All(ctx context.Context) ([]*domain.Post, error)
	ByAuthor(ctx context.Context, authorKey string) ([]*domain.Post, error)
	// ByAuthors est le batch du feed ; l'ordre est à la charge de l'appelant.
	ByAuthors(ctx context.Context, authorKeys []string) ([]*domain.Post, error)
}

type NotificationRepository interface {
	Append(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	ByReceiver(ctx context.Context, receiver string) ([]*domain.Notification, error)
	// MarkRead est idempotent ; ErrNotOwner si la notification existe mais
	// n'appartient pas au receiver donné.
	MarkRead(ctx context.Context, notificationID int64, receiver string) error
}

type MessageRepository interface {
	// Append assigne l'id monotone scopé à la paire non ordonnée {From, To}.
	Append(ctx context.Context, m *domain.Message) (*domain.Message, error)
	Conversation(ctx context.Context, a, b string) ([]*domain.Message, error)
	// MarkSeen avance le watermark ; no-op silencieux sans conversation.
	MarkSeen(ctx context.Context, owner, peer string, upTo int64) error
	// Peers rend les interlocuteurs, activité la plus récente d'abord.
	Peers(ctx context.Context, owner string) ([]string, error)
}

// --- ÉVÉNEMENTS (Broker) ---

// EventPublisher notifie le monde extérieur (indexeurs, modération, push)
// qu'une mutation a eu lieu. Best effort : un échec de publication ne fait
// jamais échouer l'appel utilisateur.
type EventPublisher interface {
	PublishPostCreated(ctx context.Context, post *domain.Post) error
	PublishPostLiked(ctx context.Context, actor string, postID int64) error
	PublishPostCommented(ctx context.Context, actor string, postID, commentID int64) error
	PublishPostReposted(ctx context.Context, actor string, originalID, repostID int64) error
	PublishFollowed(ctx context.Context, follower, followee string) error
	PublishMessageSent(ctx context.Context, from, to string, messageID int64) error
}

// --- IDENTITÉ ---

// TokenVerifier mappe le token opaque du provider d'identité vers la clé
// utilisateur stable. Aucune logique métier ici.
type TokenVerifier interface {
	Verify(token string) (userKey string, err error)
}
