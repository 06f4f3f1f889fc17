package repository

import (
	"context"
	"sync"

	"github.com/soliva-social/soliva/internal/core/domain"
	"github.com/soliva-social/soliva/internal/core/ports"
)

// MemoryUserRepo : arène en mémoire gardée par un RWMutex. Mode embedded
// (STORAGE=memory) et doublure de test du repo Postgres. Rend toujours des
// copies, jamais les instances stockées.
type MemoryUserRepo struct {
	mu    sync.RWMutex
	users map[string]*domain.User
	order []string // ordre d'insertion, pour des listings stables
}

func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{users: make(map[string]*domain.User)}
}

var _ ports.UserRepository = (*MemoryUserRepo)(nil)

func (r *MemoryUserRepo) Save(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Key]; ok {
		return domain.ErrAlreadyRegistered
	}
	cp := *user
	r.users[user.Key] = &cp
	r.order = append(r.order, user.Key)
	return nil
}

func (r *MemoryUserRepo) Get(_ context.Context, key string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[key]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *MemoryUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Key]; !ok {
		return domain.ErrUserNotFound
	}
	cp := *user
	r.users[user.Key] = &cp
	return nil
}

func (r *MemoryUserRepo) List(_ context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.User, 0, len(r.order))
	for _, key := range r.order {
		cp := *r.users[key]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *MemoryUserRepo) Search(_ context.Context, query string) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.User
	for _, key := range r.order {
		if r.users[key].MatchesQuery(query) {
			cp := *r.users[key]
			out = append(out, &cp)
		}
	}
	return out, nil
}
