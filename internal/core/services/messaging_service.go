package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/soliva-social/soliva/internal/core/domain"
	"github.com/soliva-social/soliva/internal/core/ports"
)

// messagingService tient le log de conversation par paire non ordonnée,
// gardé par la relation de follow : un lien dans UN des deux sens suffit
// (choix assumé, plus faible que le follow mutuel, pour permettre le
// premier contact dès qu'un follow unilatéral existe).
type messagingService struct {
	users    ports.UserRepository
	graph    ports.GraphRepository
	messages ports.MessageRepository
	notifier ports.NotificationService
	events   ports.EventPublisher
}

func NewMessagingService(
	users ports.UserRepository,
	graph ports.GraphRepository,
	messages ports.MessageRepository,
	notifier ports.NotificationService,
	events ports.EventPublisher,
) ports.MessagingService {
	return &messagingService{users: users, graph: graph, messages: messages, notifier: notifier, events: events}
}

func (s *messagingService) Send(ctx context.Context, caller, peer, content string) (*domain.Message, error) {
	msg, err := domain.NewMessage(caller, peer, content)
	if err != nil {
		return nil, err
	}

	if _, err := s.users.Get(ctx, caller); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrNotRegistered
		}
		return nil, err
	}
	if _, err := s.users.Get(ctx, peer); err != nil {
		return nil, err
	}

	allowed, err := s.CanMessage(ctx, caller, peer)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, domain.ErrMessagingGated
	}

	sent, err := s.messages.Append(ctx, msg)
	if err != nil {
		return nil, err
	}

	if err := s.notifier.Notify(ctx, caller, peer, domain.NotifMessage, "sent you a message"); err != nil {
		slog.Error("message notification failed", "from", caller, "error", err)
	}
	if err := s.events.PublishMessageSent(ctx, caller, peer, sent.ID); err != nil {
		slog.Warn("publish dm.sent failed", "error", err)
	}
	return sent, nil
}

func (s *messagingService) CanMessage(ctx context.Context, caller, peer string) (bool, error) {
	status, err := s.graph.Status(ctx, caller, peer)
	if err != nil {
		return false, err
	}
	return status.IsFollowing || status.IsFollowedBy, nil
}

func (s *messagingService) Conversation(ctx context.Context, caller, peer string) ([]*domain.Message, error) {
	return s.messages.Conversation(ctx, caller, peer)
}

func (s *messagingService) MarkSeen(ctx context.Context, caller, peer string, upTo int64) error {
	// Watermark cumulatif : idempotent, sûr à appeler à n'importe quelle
	// fréquence (le Messenger polle).
	return s.messages.MarkSeen(ctx, caller, peer, upTo)
}

func (s *messagingService) Inbox(ctx context.Context, caller string) ([]string, error) {
	return s.messages.Peers(ctx, caller)
}
