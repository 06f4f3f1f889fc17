package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soliva-social/soliva/internal/core/domain"
)

func seedPost(t *testing.T, e *env, author string, at time.Time) int64 {
	t.Helper()
	p, err := domain.NewPost(author, "post", "", "")
	require.NoError(t, err)
	p.CreatedAt = at
	created, err := e.posts.Create(context.Background(), p)
	require.NoError(t, err)
	return created.ID
}

func TestFeed(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("union of own and followed posts", func(t *testing.T) {
		e := newEnv()
		e.register(t, "alice", "Alice")
		e.register(t, "bob", "Bob")
		e.register(t, "carol", "Carol")
		e.follow(t, "alice", "bob")

		own := seedPost(t, e, "alice", base)
		followed := seedPost(t, e, "bob", base.Add(time.Minute))
		seedPost(t, e, "carol", base.Add(2*time.Minute)) // pas suivie

		feed, err := e.feed.Feed(ctx, "alice")
		require.NoError(t, err)

		ids := make([]int64, 0, len(feed))
		for _, p := range feed {
			ids = append(ids, p.ID)
		}
		assert.Equal(t, []int64{followed, own}, ids)
	})

	t.Run("recent first, equal timestamps by descending id", func(t *testing.T) {
		e := newEnv()
		e.register(t, "alice", "Alice")
		e.register(t, "bob", "Bob")
		e.follow(t, "alice", "bob")

		tieA := seedPost(t, e, "alice", base)
		tieB := seedPost(t, e, "bob", base)
		older := seedPost(t, e, "bob", base.Add(-time.Hour))

		feed, err := e.feed.Feed(ctx, "alice")
		require.NoError(t, err)

		ids := make([]int64, 0, len(feed))
		for _, p := range feed {
			ids = append(ids, p.ID)
		}
		assert.Equal(t, []int64{tieB, tieA, older}, ids)
	})

	t.Run("empty graph still shows own posts", func(t *testing.T) {
		e := newEnv()
		e.register(t, "alice", "Alice")
		own := seedPost(t, e, "alice", base)

		feed, err := e.feed.Feed(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, feed, 1)
		assert.Equal(t, own, feed[0].ID)
	})

	t.Run("unfollow shrinks the feed immediately", func(t *testing.T) {
		e := newEnv()
		e.register(t, "alice", "Alice")
		e.register(t, "bob", "Bob")
		e.follow(t, "alice", "bob")
		seedPost(t, e, "bob", base)

		feed, err := e.feed.Feed(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, feed, 1)

		require.NoError(t, e.graphSvc.Unfollow(ctx, "alice", "bob"))

		feed, err = e.feed.Feed(ctx, "alice")
		require.NoError(t, err)
		assert.Empty(t, feed)
	})
}
