package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/soliva-social/soliva/internal/core/domain"
	"github.com/soliva-social/soliva/internal/core/ports"
)

type pairKey struct {
	lo, hi string
}

type conversation struct {
	messages   []*domain.Message
	lastID     int64 // autorité de séquence de la paire
	lastActive time.Time
}

// MemoryMessageRepo : un log par paire non ordonnée, compteur scopé à la
// paire, gardés ensemble sous le verrou du store.
type MemoryMessageRepo struct {
	mu            sync.RWMutex
	conversations map[pairKey]*conversation
}

func NewMemoryMessageRepo() *MemoryMessageRepo {
	return &MemoryMessageRepo{conversations: make(map[pairKey]*conversation)}
}

var _ ports.MessageRepository = (*MemoryMessageRepo)(nil)

func key(a, b string) pairKey {
	lo, hi := domain.ConversationKey(a, b)
	return pairKey{lo, hi}
}

func (r *MemoryMessageRepo) Append(_ context.Context, m *domain.Message) (*domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key(m.From, m.To)
	c, ok := r.conversations[k]
	if !ok {
		c = &conversation{}
		r.conversations[k] = c
	}
	c.lastID++
	cp := *m
	cp.ID = c.lastID
	c.messages = append(c.messages, &cp)
	c.lastActive = cp.CreatedAt
	out := cp
	return &out, nil
}

func (r *MemoryMessageRepo) Conversation(_ context.Context, a, b string) ([]*domain.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.conversations[key(a, b)]
	if !ok {
		return []*domain.Message{}, nil
	}
	out := make([]*domain.Message, 0, len(c.messages))
	for _, m := range c.messages {
		cp := *m
		out = append(out, &cp)
	}
	// Le log est append-only : déjà en ordre de création, les ids scellent l'ordre.
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryMessageRepo) MarkSeen(_ context.Context, owner, peer string, upTo int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.conversations[key(owner, peer)]
	if !ok {
		return nil // watermark sur conversation absente : no-op acké
	}
	for _, m := range c.messages {
		if m.To == owner && m.ID <= upTo {
			m.Seen = true
		}
	}
	return nil
}

func (r *MemoryMessageRepo) Peers(_ context.Context, owner string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	type peerActivity struct {
		peer string
		at   time.Time
	}
	var peers []peerActivity
	for k, c := range r.conversations {
		switch owner {
		case k.lo:
			peers = append(peers, peerActivity{k.hi, c.lastActive})
		case k.hi:
			peers = append(peers, peerActivity{k.lo, c.lastActive})
		}
	}
	sort.Slice(peers, func(i, j int) bool { return peers[i].at.After(peers[j].at) })
	out := make([]string, 0, len(peers))
	for _, p := range peers {
		out = append(out, p.peer)
	}
	return out, nil
}
