package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/soliva-social/soliva/internal/core/domain"
	"github.com/soliva-social/soliva/internal/core/ports"
)

// contentService tient le Content Store : posts, likes, commentaires,
// reposts. Chaque mutation est une transaction du repository ; le fan-out
// de notifications est synchrone, la publication d'événement best effort.
type contentService struct {
	users    ports.UserRepository
	posts    ports.PostRepository
	notifier ports.NotificationService
	events   ports.EventPublisher
}

func NewContentService(
	users ports.UserRepository,
	posts ports.PostRepository,
	notifier ports.NotificationService,
	events ports.EventPublisher,
) ports.ContentService {
	return &contentService{users: users, posts: posts, notifier: notifier, events: events}
}

func (s *contentService) CreatePost(ctx context.Context, caller string, cmd ports.PostCmd) (*domain.Post, error) {
	if _, err := s.users.Get(ctx, caller); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrNotRegistered
		}
		return nil, err
	}

	post, err := domain.NewPost(caller, cmd.Content, cmd.Image, cmd.Video)
	if err != nil {
		return nil, err
	}

	created, err := s.posts.Create(ctx, post)
	if err != nil {
		return nil, err
	}

	if err := s.events.PublishPostCreated(ctx, created); err != nil {
		slog.Warn("publish post.created failed", "post_id", created.ID, "error", err)
	}
	return created, nil
}

func (s *contentService) LikePost(ctx context.Context, caller string, postID int64) (*domain.Post, domain.LikeOutcome, error) {
	post, outcome, err := s.posts.ToggleLike(ctx, postID, caller)
	if err != nil {
		return nil, "", err
	}

	// Notification seulement sur la transition vers "liked", jamais sur
	// l'unlike, et supprimée si l'auteur se like lui-même.
	if outcome == domain.Liked && post.Author != caller {
		if err := s.notifier.Notify(ctx, caller, post.Author, domain.NotifLike, "liked your post"); err != nil {
			slog.Error("like notification failed", "post_id", postID, "error", err)
		}
	}
	if outcome == domain.Liked {
		if err := s.events.PublishPostLiked(ctx, caller, postID); err != nil {
			slog.Warn("publish post.liked failed", "post_id", postID, "error", err)
		}
	}
	return post, outcome, nil
}

func (s *contentService) CommentPost(ctx context.Context, caller string, postID int64, content string) (*domain.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, domain.ErrEmptyComment
	}

	comment := &domain.Comment{
		Author:    caller,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	created, err := s.posts.AddComment(ctx, postID, comment)
	if err != nil {
		return nil, err
	}

	post, err := s.posts.Get(ctx, postID)
	if err == nil && post.Author != caller {
		if err := s.notifier.Notify(ctx, caller, post.Author, domain.NotifComment, "commented on your post"); err != nil {
			slog.Error("comment notification failed", "post_id", postID, "error", err)
		}
	}
	if err := s.events.PublishPostCommented(ctx, caller, postID, created.ID); err != nil {
		slog.Warn("publish post.commented failed", "post_id", postID, "error", err)
	}
	return created, nil
}

func (s *contentService) RepostPost(ctx context.Context, caller string, postID int64) (*domain.Post, error) {
	original, err := s.posts.Get(ctx, postID)
	if err != nil {
		return nil, err
	}

	// Le wrapper ne copie rien : la résolution du contenu original se fait
	// à la lecture, référence pendante tolérée.
	repost, err := s.posts.CreateRepost(ctx, domain.NewRepost(caller, postID))
	if err != nil {
		return nil, err
	}

	if original.Author != caller {
		if err := s.notifier.Notify(ctx, caller, original.Author, domain.NotifRepost, "reposted your post"); err != nil {
			slog.Error("repost notification failed", "post_id", postID, "error", err)
		}
	}
	if err := s.events.PublishPostReposted(ctx, caller, postID, repost.ID); err != nil {
		slog.Warn("publish post.reposted failed", "post_id", postID, "error", err)
	}
	return repost, nil
}

func (s *contentService) AllPosts(ctx context.Context) ([]*domain.Post, error) {
	return s.posts.All(ctx)
}

func (s *contentService) UserPosts(ctx context.Context, userKey string) ([]*domain.Post, error) {
	return s.posts.ByAuthor(ctx, userKey)
}
