package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/soliva-social/soliva/internal/core/domain"
	"github.com/soliva-social/soliva/internal/core/ports"
)

// MemoryPostRepo : arène des posts plus son compteur, sous le même verrou
// (le compteur est gardé comme la collection qu'il numérote). Les likes
// et commentaires sont des sous-collections de l'agrégat, donc toute
// mutation est naturellement indivisible ici.
type MemoryPostRepo struct {
	mu     sync.RWMutex
	posts  map[int64]*domain.Post
	nextID int64
}

func NewMemoryPostRepo() *MemoryPostRepo {
	return &MemoryPostRepo{posts: make(map[int64]*domain.Post)}
}

var _ ports.PostRepository = (*MemoryPostRepo)(nil)

func (r *MemoryPostRepo) Create(_ context.Context, post *domain.Post) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	cp := post.Clone()
	cp.ID = r.nextID
	r.posts[cp.ID] = cp
	return cp.Clone(), nil
}

func (r *MemoryPostRepo) Get(_ context.Context, postID int64) (*domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.posts[postID]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	return p.Clone(), nil
}

func (r *MemoryPostRepo) ToggleLike(_ context.Context, postID int64, userKey string) (*domain.Post, domain.LikeOutcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[postID]
	if !ok {
		return nil, "", domain.ErrPostNotFound
	}

	if p.LikedBy(userKey) {
		likes := p.Likes[:0]
		for _, k := range p.Likes {
			if k != userKey {
				likes = append(likes, k)
			}
		}
		p.Likes = likes
		return p.Clone(), domain.Unliked, nil
	}
	p.Likes = append(p.Likes, userKey)
	return p.Clone(), domain.Liked, nil
}

func (r *MemoryPostRepo) AddComment(_ context.Context, postID int64, comment *domain.Comment) (*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[postID]
	if !ok {
		return nil, domain.ErrPostNotFound
	}

	// Id scopé au post parent : max + 1 sous le verrou de l'arène.
	var maxID int64
	for _, c := range p.Comments {
		if c.ID > maxID {
			maxID = c.ID
		}
	}
	cp := *comment
	cp.ID = maxID + 1
	p.Comments = append(p.Comments, cp)
	return &cp, nil
}

func (r *MemoryPostRepo) CreateRepost(_ context.Context, repost *domain.Post) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[repost.OriginalPostID]; !ok {
		return nil, domain.ErrPostNotFound
	}
	for _, p := range r.posts {
		if p.Author == repost.Author && p.OriginalPostID == repost.OriginalPostID {
			return nil, domain.ErrAlreadyReposted
		}
	}
	r.nextID++
	cp := repost.Clone()
	cp.ID = r.nextID
	r.posts[cp.ID] = cp
	return cp.Clone(), nil
}

func (r *MemoryPostRepo) All(_ context.Context) ([]*domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Post, 0, len(r.posts))
	for _, p := range r.posts {
		out = append(out, p.Clone())
	}
	sortRecentFirst(out)
	return out, nil
}

func (r *MemoryPostRepo) ByAuthor(_ context.Context, authorKey string) ([]*domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Post
	for _, p := range r.posts {
		if p.Author == authorKey {
			out = append(out, p.Clone())
		}
	}
	sortRecentFirst(out)
	return out, nil
}

func (r *MemoryPostRepo) ByAuthors(_ context.Context, authorKeys []string) ([]*domain.Post, error) {
	keys := make(map[string]struct{}, len(authorKeys))
	for _, k := range authorKeys {
		keys[k] = struct{}{}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Post
	for _, p := range r.posts {
		if _, ok := keys[p.Author]; ok {
			out = append(out, p.Clone())
		}
	}
	return out, nil
}

// Anté-chronologique, ties par id croissant.
func sortRecentFirst(posts []*domain.Post) {
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID < posts[j].ID
	})
}
