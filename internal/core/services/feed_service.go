package services

import (
	"context"
	"sort"

	"github.com/soliva-social/soliva/internal/core/domain"
	"github.com/soliva-social/soliva/internal/core/ports"
)

// feedService compose le feed au moment de la lecture : union des posts de
// l'appelant et de ses suivis, sans cache ni pagination. O(suivis × posts),
// c'est la correction qui est contractuelle ici, pas le débit.
type feedService struct {
	graph ports.GraphRepository
	posts ports.PostRepository
}

func NewFeedService(graph ports.GraphRepository, posts ports.PostRepository) ports.FeedService {
	return &feedService{graph: graph, posts: posts}
}

func (s *feedService) Feed(ctx context.Context, caller string) ([]*domain.Post, error) {
	following, err := s.graph.Following(ctx, caller)
	if err != nil {
		return nil, err
	}

	authors := append([]string{caller}, following...)
	feed, err := s.posts.ByAuthors(ctx, authors)
	if err != nil {
		return nil, err
	}

	// Anté-chronologique, ties départagés par id décroissant.
	sort.Slice(feed, func(i, j int) bool {
		if !feed[i].CreatedAt.Equal(feed[j].CreatedAt) {
			return feed[i].CreatedAt.After(feed[j].CreatedAt)
		}
		return feed[i].ID > feed[j].ID
	})
	return feed, nil
}
