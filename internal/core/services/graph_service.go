package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/soliva-social/soliva/internal/core/domain"
	"github.com/soliva-social/soliva/internal/core/ports"
)

type graphService struct {
	users    ports.UserRepository
	graph    ports.GraphRepository
	notifier ports.NotificationService
	events   ports.EventPublisher
}

func NewGraphService(
	users ports.UserRepository,
	graph ports.GraphRepository,
	notifier ports.NotificationService,
	events ports.EventPublisher,
) ports.GraphService {
	return &graphService{users: users, graph: graph, notifier: notifier, events: events}
}

func (s *graphService) Follow(ctx context.Context, caller, target string) error {
	if caller == target {
		return domain.ErrSelfFollow
	}
	if _, err := s.users.Get(ctx, target); err != nil {
		return err
	}
	if _, err := s.users.Get(ctx, caller); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrNotRegistered
		}
		return err
	}

	// L'arête canonique ; les deux vues (following du caller, followers du
	// target) dérivent de cette écriture unique, pas de divergence possible.
	if err := s.graph.CreateEdge(ctx, caller, target); err != nil {
		return err
	}

	if err := s.notifier.Notify(ctx, caller, target, domain.NotifFollow, "started following you"); err != nil {
		slog.Error("follow notification failed", "follower", caller, "error", err)
	}
	if err := s.events.PublishFollowed(ctx, caller, target); err != nil {
		slog.Warn("publish follow event failed", "error", err)
	}
	return nil
}

func (s *graphService) Unfollow(ctx context.Context, caller, target string) error {
	// Pas de rétractation des notifications passées.
	return s.graph.DeleteEdge(ctx, caller, target)
}

func (s *graphService) IsFollowing(ctx context.Context, caller, target string) (bool, error) {
	return s.graph.HasEdge(ctx, caller, target)
}

func (s *graphService) Followers(ctx context.Context, userKey string) ([]string, error) {
	return s.graph.Followers(ctx, userKey)
}

func (s *graphService) Following(ctx context.Context, userKey string) ([]string, error) {
	return s.graph.Following(ctx, userKey)
}
