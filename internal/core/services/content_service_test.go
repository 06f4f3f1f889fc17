package services_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soliva-social/soliva/internal/core/domain"
	"github.com/soliva-social/soliva/internal/core/ports"
)

func TestCreatePost(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns id and timestamps", func(t *testing.T) {
		e := newEnv()
		e.register(t, "alice", "Alice")

		post, err := e.content.CreatePost(ctx, "alice", ports.PostCmd{Content: "hello"})
		require.NoError(t, err)

		assert.Equal(t, int64(1), post.ID)
		assert.Equal(t, "alice", post.Author)
		assert.False(t, post.CreatedAt.IsZero())
		assert.Empty(t, post.Likes)
		assert.Empty(t, post.Comments)
		assert.False(t, post.IsRepost())
	})

	t.Run("unregistered author rejected", func(t *testing.T) {
		e := newEnv()
		_, err := e.content.CreatePost(ctx, "ghost", ports.PostCmd{Content: "hello"})
		assert.ErrorIs(t, err, domain.ErrNotRegistered)
	})

	t.Run("needs content or media", func(t *testing.T) {
		e := newEnv()
		e.register(t, "alice", "Alice")

		_, err := e.content.CreatePost(ctx, "alice", ports.PostCmd{Content: "   "})
		assert.ErrorIs(t, err, domain.ErrEmptyPost)

		// Un média seul suffit.
		post, err := e.content.CreatePost(ctx, "alice", ports.PostCmd{Image: "img-1"})
		require.NoError(t, err)
		assert.Equal(t, "img-1", post.Image)
	})

	t.Run("ids are monotonic", func(t *testing.T) {
		e := newEnv()
		e.register(t, "alice", "Alice")

		first, err := e.content.CreatePost(ctx, "alice", ports.PostCmd{Content: "one"})
		require.NoError(t, err)
		second, err := e.content.CreatePost(ctx, "alice", ports.PostCmd{Content: "two"})
		require.NoError(t, err)
		assert.Greater(t, second.ID, first.ID)
	})
}

func TestLikePost(t *testing.T) {
	ctx := context.Background()

	t.Run("toggle transitions", func(t *testing.T) {
		e := newEnv()
		e.register(t, "alice", "Alice")
		e.register(t, "bob", "Bob")
		post, err := e.content.CreatePost(ctx, "alice", ports.PostCmd{Content: "hello"})
		require.NoError(t, err)

		liked, outcome, err := e.content.LikePost(ctx, "bob", post.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.Liked, outcome)
		assert.Equal(t, []string{"bob"}, liked.Likes)

		unliked, outcome, err := e.content.LikePost(ctx, "bob", post.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.Unliked, outcome)
		assert.Empty(t, unliked.Likes)
	})

	t.Run("unknown post", func(t *testing.T) {
		e := newEnv()
		e.register(t, "bob", "Bob")
		_, _, err := e.content.LikePost(ctx, "bob", 42)
		assert.ErrorIs(t, err, domain.ErrPostNotFound)
	})

	t.Run("notifies author on like only", func(t *testing.T) {
		e := newEnv()
		e.register(t, "alice", "Alice")
		e.register(t, "bob", "Bob")
		post, err := e.content.CreatePost(ctx, "alice", ports.PostCmd{Content: "hello"})
		require.NoError(t, err)

		_, _, err = e.content.LikePost(ctx, "bob", post.ID) // like
		require.NoError(t, err)
		_, _, err = e.content.LikePost(ctx, "bob", post.ID) // unlike
		require.NoError(t, err)
		_, _, err = e.content.LikePost(ctx, "bob", post.ID) // re-like
		require.NoError(t, err)

		notifs, err := e.notifications.List(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, notifs, 2) // jamais de notification d'unlike
		assert.Equal(t, domain.NotifLike, notifs[0].Kind)
	})

	t.Run("self like stays silent", func(t *testing.T) {
		e := newEnv()
		e.register(t, "alice", "Alice")
		post, err := e.content.CreatePost(ctx, "alice", ports.PostCmd{Content: "hello"})
		require.NoError(t, err)

		_, outcome, err := e.content.LikePost(ctx, "alice", post.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.Liked, outcome)

		notifs, err := e.notifications.List(ctx, "alice")
		require.NoError(t, err)
		assert.Empty(t, notifs)
	})

	t.Run("concurrent likers all land", func(t *testing.T) {
		e := newEnv()
		e.register(t, "alice", "Alice")
		post, err := e.content.CreatePost(ctx, "alice", ports.PostCmd{Content: "hello"})
		require.NoError(t, err)

		const n = 32
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, _, err := e.content.LikePost(ctx, fmt.Sprintf("user-%02d", i), post.ID)
				assert.NoError(t, err)
			}(i)
		}
		wg.Wait()

		got, err := e.posts.Get(ctx, post.ID)
		require.NoError(t, err)
		assert.Len(t, got.Likes, n)
	})
}

func TestCommentPost(t *testing.T) {
	ctx := context.Background()

	t.Run("ids are scoped to the parent post", func(t *testing.T) {
		e := newEnv()
		e.register(t, "alice", "Alice")
		e.register(t, "bob", "Bob")
		first, err := e.content.CreatePost(ctx, "alice", ports.PostCmd{Content: "one"})
		require.NoError(t, err)
		second, err := e.content.CreatePost(ctx, "alice", ports.PostCmd{Content: "two"})
		require.NoError(t, err)

		c1, err := e.content.CommentPost(ctx, "bob", first.ID, "a")
		require.NoError(t, err)
		c2, err := e.content.CommentPost(ctx, "bob", first.ID, "b")
		require.NoError(t, err)
		c3, err := e.content.CommentPost(ctx, "bob", second.ID, "c")
		require.NoError(t, err)

		assert.Equal(t, int64(1), c1.ID)
		assert.Equal(t, int64(2), c2.ID)
		assert.Equal(t, int64(1), c3.ID) // chaque post repart à 1
	})

	t.Run("blank comment rejected", func(t *testing.T) {
		e := newEnv()
		e.register(t, "alice", "Alice")
		post, err := e.content.CreatePost(ctx, "alice", ports.PostCmd{Content: "hello"})
		require.NoError(t, err)

		_, err = e.content.CommentPost(ctx, "alice", post.ID, "  ")
		assert.ErrorIs(t, err, domain.ErrEmptyComment)
	})

	t.Run("unknown post", func(t *testing.T) {
		e := newEnv()
		e.register(t, "bob", "Bob")
		_, err := e.content.CommentPost(ctx, "bob", 42, "hello")
		assert.ErrorIs(t, err, domain.ErrPostNotFound)
	})

	t.Run("notifies the author, not on self-comment", func(t *testing.T) {
		e := newEnv()
		e.register(t, "alice", "Alice")
		e.register(t, "bob", "Bob")
		post, err := e.content.CreatePost(ctx, "alice", ports.PostCmd{Content: "hello"})
		require.NoError(t, err)

		_, err = e.content.CommentPost(ctx, "bob", post.ID, "nice")
		require.NoError(t, err)
		_, err = e.content.CommentPost(ctx, "alice", post.ID, "thanks")
		require.NoError(t, err)

		notifs, err := e.notifications.List(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, notifs, 1)
		assert.Equal(t, domain.NotifComment, notifs[0].Kind)
	})
}

func TestRepostPost(t *testing.T) {
	ctx := context.Background()

	t.Run("wrapper references the original without copying", func(t *testing.T) {
		e := newEnv()
		e.register(t, "alice", "Alice")
		e.register(t, "bob", "Bob")
		original, err := e.content.CreatePost(ctx, "alice", ports.PostCmd{Content: "hello"})
		require.NoError(t, err)

		repost, err := e.content.RepostPost(ctx, "bob", original.ID)
		require.NoError(t, err)

		assert.True(t, repost.IsRepost())
		assert.Equal(t, original.ID, repost.OriginalPostID)
		assert.Equal(t, "bob", repost.RepostedBy)
		assert.Empty(t, repost.Content) // rien n'est copié
		assert.NotEqual(t, original.ID, repost.ID)

		all, err := e.content.AllPosts(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2) // l'original et le wrapper coexistent
	})

	t.Run("double repost rejected", func(t *testing.T) {
		e := newEnv()
		e.register(t, "alice", "Alice")
		e.register(t, "bob", "Bob")
		original, err := e.content.CreatePost(ctx, "alice", ports.PostCmd{Content: "hello"})
		require.NoError(t, err)

		_, err = e.content.RepostPost(ctx, "bob", original.ID)
		require.NoError(t, err)
		_, err = e.content.RepostPost(ctx, "bob", original.ID)
		assert.ErrorIs(t, err, domain.ErrAlreadyReposted)
	})

	t.Run("unknown original", func(t *testing.T) {
		e := newEnv()
		e.register(t, "bob", "Bob")
		_, err := e.content.RepostPost(ctx, "bob", 42)
		assert.ErrorIs(t, err, domain.ErrPostNotFound)
	})

	t.Run("notifies the original author", func(t *testing.T) {
		e := newEnv()
		e.register(t, "alice", "Alice")
		e.register(t, "bob", "Bob")
		original, err := e.content.CreatePost(ctx, "alice", ports.PostCmd{Content: "hello"})
		require.NoError(t, err)

		_, err = e.content.RepostPost(ctx, "bob", original.ID)
		require.NoError(t, err)

		notifs, err := e.notifications.List(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, notifs, 1)
		assert.Equal(t, domain.NotifRepost, notifs[0].Kind)
		assert.Equal(t, "reposted your post", notifs[0].Message)
	})
}

func TestPostListings(t *testing.T) {
	ctx := context.Background()

	t.Run("recent first, equal timestamps by ascending id", func(t *testing.T) {
		e := newEnv()
		base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

		// Injection directe par le repository pour contrôler les horloges.
		seed := func(author string, at time.Time) int64 {
			p, err := domain.NewPost(author, "post", "", "")
			require.NoError(t, err)
			p.CreatedAt = at
			created, err := e.posts.Create(ctx, p)
			require.NoError(t, err)
			return created.ID
		}

		oldID := seed("alice", base.Add(-time.Hour))
		tieA := seed("alice", base)
		tieB := seed("bob", base)
		newID := seed("bob", base.Add(time.Hour))

		all, err := e.content.AllPosts(ctx)
		require.NoError(t, err)

		ids := make([]int64, 0, len(all))
		for _, p := range all {
			ids = append(ids, p.ID)
		}
		assert.Equal(t, []int64{newID, tieA, tieB, oldID}, ids)
	})

	t.Run("by author only", func(t *testing.T) {
		e := newEnv()
		e.register(t, "alice", "Alice")
		e.register(t, "bob", "Bob")
		_, err := e.content.CreatePost(ctx, "alice", ports.PostCmd{Content: "a"})
		require.NoError(t, err)
		_, err = e.content.CreatePost(ctx, "bob", ports.PostCmd{Content: "b"})
		require.NoError(t, err)

		posts, err := e.content.UserPosts(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, "alice", posts[0].Author)
	})
}
