package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soliva-social/soliva/internal/core/domain"
	"github.com/soliva-social/soliva/internal/core/ports"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates profile with empty relation sets", func(t *testing.T) {
		e := newEnv()
		profile, err := e.profiles.Register(ctx, "alice", ports.ProfileCmd{Name: "Alice", Bio: "gardener"})
		require.NoError(t, err)

		assert.Equal(t, "alice", profile.Key)
		assert.Equal(t, "Alice", profile.Name)
		assert.Equal(t, "gardener", profile.Bio)
		assert.Empty(t, profile.Followers)
		assert.Empty(t, profile.Following)
		assert.False(t, profile.CreatedAt.IsZero())
	})

	t.Run("rejects duplicate registration", func(t *testing.T) {
		e := newEnv()
		e.register(t, "alice", "Alice")

		_, err := e.profiles.Register(ctx, "alice", ports.ProfileCmd{Name: "Alice again"})
		assert.ErrorIs(t, err, domain.ErrAlreadyRegistered)
	})

	t.Run("rejects blank name", func(t *testing.T) {
		e := newEnv()
		_, err := e.profiles.Register(ctx, "alice", ports.ProfileCmd{Name: "   "})
		assert.ErrorIs(t, err, domain.ErrEmptyName)
	})

	t.Run("trims name", func(t *testing.T) {
		e := newEnv()
		profile, err := e.profiles.Register(ctx, "alice", ports.ProfileCmd{Name: "  Alice  "})
		require.NoError(t, err)
		assert.Equal(t, "Alice", profile.Name)
	})
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces mutable fields, keeps key and created_at", func(t *testing.T) {
		e := newEnv()
		original, err := e.profiles.Register(ctx, "alice", ports.ProfileCmd{Name: "Alice", Bio: "old"})
		require.NoError(t, err)

		updated, err := e.profiles.Update(ctx, "alice", ports.ProfileCmd{
			Name: "Alice B.", Bio: "new", ProfileImage: "img-1", CoverImage: "cov-1",
		})
		require.NoError(t, err)

		assert.Equal(t, "alice", updated.Key)
		assert.Equal(t, "Alice B.", updated.Name)
		assert.Equal(t, "new", updated.Bio)
		assert.Equal(t, "img-1", updated.ProfileImage)
		assert.True(t, updated.CreatedAt.Equal(original.CreatedAt))
	})

	t.Run("unknown caller", func(t *testing.T) {
		e := newEnv()
		_, err := e.profiles.Update(ctx, "ghost", ports.ProfileCmd{Name: "Ghost"})
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("blank name rejected, profile untouched", func(t *testing.T) {
		e := newEnv()
		e.register(t, "alice", "Alice")

		_, err := e.profiles.Update(ctx, "alice", ports.ProfileCmd{Name: ""})
		assert.ErrorIs(t, err, domain.ErrEmptyName)

		profile, err := e.profiles.Get(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "Alice", profile.Name)
	})
}

func TestGetProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("projects relation sets from the graph", func(t *testing.T) {
		e := newEnv()
		e.register(t, "alice", "Alice")
		e.register(t, "bob", "Bob")
		e.register(t, "carol", "Carol")
		e.follow(t, "bob", "alice")
		e.follow(t, "carol", "alice")
		e.follow(t, "alice", "bob")

		profile, err := e.profiles.Get(ctx, "alice")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"bob", "carol"}, profile.Followers)
		assert.ElementsMatch(t, []string{"bob"}, profile.Following)
	})

	t.Run("unknown user", func(t *testing.T) {
		e := newEnv()
		_, err := e.profiles.Get(ctx, "ghost")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestSearchProfiles(t *testing.T) {
	ctx := context.Background()
	e := newEnv()

	_, err := e.profiles.Register(ctx, "alice", ports.ProfileCmd{Name: "Alice", Bio: "Plant lover"})
	require.NoError(t, err)
	_, err = e.profiles.Register(ctx, "bob", ports.ProfileCmd{Name: "Bob", Bio: "plants and trains"})
	require.NoError(t, err)
	_, err = e.profiles.Register(ctx, "carol", ports.ProfileCmd{Name: "Carol", Bio: "trains only"})
	require.NoError(t, err)

	t.Run("matches name and bio, case-insensitive", func(t *testing.T) {
		results, err := e.profiles.Search(ctx, "PLANT")
		require.NoError(t, err)

		keys := make([]string, 0, len(results))
		for _, p := range results {
			keys = append(keys, p.Key)
		}
		assert.ElementsMatch(t, []string{"alice", "bob"}, keys)
	})

	t.Run("no match returns empty slice", func(t *testing.T) {
		results, err := e.profiles.Search(ctx, "submarines")
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestListAllProfiles(t *testing.T) {
	e := newEnv()
	e.register(t, "alice", "Alice")
	e.register(t, "bob", "Bob")

	profiles, err := e.profiles.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, profiles, 2)
}
