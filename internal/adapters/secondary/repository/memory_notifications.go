package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/soliva-social/soliva/internal/core/domain"
	"github.com/soliva-social/soliva/internal/core/ports"
)

type MemoryNotificationRepo struct {
	mu            sync.RWMutex
	notifications map[int64]*domain.Notification
	nextID        int64
}

func NewMemoryNotificationRepo() *MemoryNotificationRepo {
	return &MemoryNotificationRepo{notifications: make(map[int64]*domain.Notification)}
}

var _ ports.NotificationRepository = (*MemoryNotificationRepo)(nil)

func (r *MemoryNotificationRepo) Append(_ context.Context, n *domain.Notification) (*domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	cp := *n
	cp.ID = r.nextID
	r.notifications[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *MemoryNotificationRepo) ByReceiver(_ context.Context, receiver string) ([]*domain.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Notification
	for _, n := range r.notifications {
		if n.Receiver == receiver {
			cp := *n
			out = append(out, &cp)
		}
	}
	// Les plus récentes d'abord, ties par id décroissant.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *MemoryNotificationRepo) MarkRead(_ context.Context, notificationID int64, receiver string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notifications[notificationID]
	if !ok {
		return domain.ErrNotificationNotFound
	}
	if n.Receiver != receiver {
		return domain.ErrNotOwner
	}
	n.Read = true // idempotent
	return nil
}
