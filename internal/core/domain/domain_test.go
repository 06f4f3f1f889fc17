package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soliva-social/soliva/internal/core/domain"
)

func TestNewPost(t *testing.T) {
	t.Run("content or media required", func(t *testing.T) {
		_, err := domain.NewPost("alice", "  ", "", "")
		assert.ErrorIs(t, err, domain.ErrEmptyPost)

		post, err := domain.NewPost("alice", "", "img-1", "")
		require.NoError(t, err)
		assert.False(t, post.IsRepost())
	})

	t.Run("repost wrapper carries no content", func(t *testing.T) {
		repost := domain.NewRepost("bob", 7)
		assert.True(t, repost.IsRepost())
		assert.Equal(t, int64(7), repost.OriginalPostID)
		assert.Equal(t, "bob", repost.RepostedBy)
		assert.Empty(t, repost.Content)
	})
}

func TestPostClone(t *testing.T) {
	post, err := domain.NewPost("alice", "hello", "", "")
	require.NoError(t, err)
	post.Likes = []string{"bob"}
	post.Comments = []domain.Comment{{ID: 1, Author: "bob", Content: "hi"}}

	clone := post.Clone()
	clone.Likes[0] = "mallory"
	clone.Comments[0].Content = "tampered"

	assert.Equal(t, "bob", post.Likes[0])
	assert.Equal(t, "hi", post.Comments[0].Content)
}

func TestConversationKey(t *testing.T) {
	lo, hi := domain.ConversationKey("bob", "alice")
	assert.Equal(t, "alice", lo)
	assert.Equal(t, "bob", hi)

	lo2, hi2 := domain.ConversationKey("alice", "bob")
	assert.Equal(t, lo, lo2)
	assert.Equal(t, hi, hi2)
}

func TestMatchesQuery(t *testing.T) {
	user, err := domain.NewUser("alice", "Alice", "Plant lover", "", "")
	require.NoError(t, err)

	assert.True(t, user.MatchesQuery("ALICE"))
	assert.True(t, user.MatchesQuery("plant"))
	assert.False(t, user.MatchesQuery("trains"))
}

func TestLikedBy(t *testing.T) {
	post, err := domain.NewPost("alice", "hello", "", "")
	require.NoError(t, err)
	post.Likes = []string{"bob"}

	assert.True(t, post.LikedBy("bob"))
	assert.False(t, post.LikedBy("carol"))
}
