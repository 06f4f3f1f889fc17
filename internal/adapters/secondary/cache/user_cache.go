package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/soliva-social/soliva/internal/core/domain"
	"github.com/soliva-social/soliva/internal/core/ports"
)

const (
	userKeyFmt = "user:%s" // <userKey>
	userTTL    = 15 * time.Minute
)

// CachedUserRepo décore un UserRepository avec un read-through Redis sur
// Get (le chemin chaud : gating, fan-out, hydratation de profils).
// Les écritures passent au repo sous-jacent puis invalident la clé.
// Un Redis en panne dégrade en lecture directe, jamais en erreur.
type CachedUserRepo struct {
	next ports.UserRepository
	rdb  *redis.Client
}

func NewCachedUserRepo(next ports.UserRepository, rdb *redis.Client) *CachedUserRepo {
	return &CachedUserRepo{next: next, rdb: rdb}
}

var _ ports.UserRepository = (*CachedUserRepo)(nil)

func (r *CachedUserRepo) Get(ctx context.Context, key string) (*domain.User, error) {
	cacheKey := fmt.Sprintf(userKeyFmt, key)

	raw, err := r.rdb.Get(ctx, cacheKey).Result()
	if err == nil {
		var u domain.User
		if err := json.Unmarshal([]byte(raw), &u); err == nil {
			return &u, nil
		}
		// Payload corrompu : on retombe sur le store et on réécrira.
	} else if !errors.Is(err, redis.Nil) {
		slog.Warn("user cache read failed", "error", err)
	}

	u, err := r.next.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(u); err == nil {
		if err := r.rdb.Set(ctx, cacheKey, data, userTTL).Err(); err != nil {
			slog.Warn("user cache write failed", "error", err)
		}
	}
	return u, nil
}

func (r *CachedUserRepo) Save(ctx context.Context, user *domain.User) error {
	return r.next.Save(ctx, user)
}

func (r *CachedUserRepo) Update(ctx context.Context, user *domain.User) error {
	if err := r.next.Update(ctx, user); err != nil {
		return err
	}
	if err := r.rdb.Del(ctx, fmt.Sprintf(userKeyFmt, user.Key)).Err(); err != nil {
		slog.Warn("user cache invalidation failed", "user", user.Key, "error", err)
	}
	return nil
}

// Listings et recherche : toujours le store, pas de cache de résultats.
func (r *CachedUserRepo) List(ctx context.Context) ([]*domain.User, error) {
	return r.next.List(ctx)
}

func (r *CachedUserRepo) Search(ctx context.Context, query string) ([]*domain.User, error) {
	return r.next.Search(ctx, query)
}
