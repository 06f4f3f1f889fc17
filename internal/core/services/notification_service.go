package services

import (
	"context"

	"github.com/soliva-social/soliva/internal/core/domain"
	"github.com/soliva-social/soliva/internal/core/ports"
)

type notificationService struct {
	notifications ports.NotificationRepository
}

func NewNotificationService(notifications ports.NotificationRepository) ports.NotificationService {
	return &notificationService{notifications: notifications}
}

func (s *notificationService) Notify(ctx context.Context, sender, receiver string, kind domain.NotificationKind, message string) error {
	_, err := s.notifications.Append(ctx, domain.NewNotification(sender, receiver, kind, message))
	return err
}

func (s *notificationService) List(ctx context.Context, caller string) ([]*domain.Notification, error) {
	return s.notifications.ByReceiver(ctx, caller)
}

func (s *notificationService) MarkRead(ctx context.Context, caller string, notificationID int64) error {
	return s.notifications.MarkRead(ctx, notificationID, caller)
}
