package repository

import (
	"context"
	"sync"

	"github.com/soliva-social/soliva/internal/core/domain"
	"github.com/soliva-social/soliva/internal/core/ports"
)

type edge struct {
	follower string
	followee string
}

// MemoryGraphRepo : edge set canonique plus deux index dérivés (par source,
// par cible), mis à jour ensemble sous le même verrou. On ne stocke jamais
// deux copies mutables indépendantes de la relation.
type MemoryGraphRepo struct {
	mu       sync.RWMutex
	edges    map[edge]struct{}
	bySource map[string][]string // following
	byTarget map[string][]string // followers
}

func NewMemoryGraphRepo() *MemoryGraphRepo {
	return &MemoryGraphRepo{
		edges:    make(map[edge]struct{}),
		bySource: make(map[string][]string),
		byTarget: make(map[string][]string),
	}
}

var _ ports.GraphRepository = (*MemoryGraphRepo)(nil)

func (r *MemoryGraphRepo) CreateEdge(_ context.Context, follower, followee string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := edge{follower, followee}
	if _, ok := r.edges[e]; ok {
		return domain.ErrAlreadyFollowing
	}
	r.edges[e] = struct{}{}
	r.bySource[follower] = append(r.bySource[follower], followee)
	r.byTarget[followee] = append(r.byTarget[followee], follower)
	return nil
}

func (r *MemoryGraphRepo) DeleteEdge(_ context.Context, follower, followee string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := edge{follower, followee}
	if _, ok := r.edges[e]; !ok {
		return domain.ErrNotFollowing
	}
	delete(r.edges, e)
	r.bySource[follower] = remove(r.bySource[follower], followee)
	r.byTarget[followee] = remove(r.byTarget[followee], follower)
	return nil
}

func (r *MemoryGraphRepo) HasEdge(_ context.Context, follower, followee string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.edges[edge{follower, followee}]
	return ok, nil
}

func (r *MemoryGraphRepo) Status(_ context.Context, actor, target string) (*domain.RelationStatus, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, following := r.edges[edge{actor, target}]
	_, followedBy := r.edges[edge{target, actor}]
	return &domain.RelationStatus{IsFollowing: following, IsFollowedBy: followedBy}, nil
}

func (r *MemoryGraphRepo) Followers(_ context.Context, userKey string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string{}, r.byTarget[userKey]...), nil
}

func (r *MemoryGraphRepo) Following(_ context.Context, userKey string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string{}, r.bySource[userKey]...), nil
}

func remove(list []string, v string) []string {
	out := list[:0]
	for _, s := range list {
		if s != v {
			out = append(out, s)
		}
	}
	return out
}
