package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soliva-social/soliva/internal/core/domain"
)

func TestNotifications(t *testing.T) {
	ctx := context.Background()

	t.Run("list is scoped to the receiver, most recent first", func(t *testing.T) {
		e := newEnv()
		require.NoError(t, e.notifications.Notify(ctx, "bob", "alice", domain.NotifFollow, "started following you"))
		require.NoError(t, e.notifications.Notify(ctx, "carol", "alice", domain.NotifLike, "liked your post"))
		require.NoError(t, e.notifications.Notify(ctx, "alice", "bob", domain.NotifFollow, "started following you"))

		notifs, err := e.notifications.List(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, notifs, 2)
		// Même horodatage possible : l'id départage, le plus grand d'abord.
		assert.Greater(t, notifs[0].ID, notifs[1].ID)
		assert.Equal(t, "carol", notifs[0].Sender)
	})

	t.Run("mark read is owner-only and idempotent", func(t *testing.T) {
		e := newEnv()
		require.NoError(t, e.notifications.Notify(ctx, "bob", "alice", domain.NotifFollow, "started following you"))

		notifs, err := e.notifications.List(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, notifs, 1)
		id := notifs[0].ID
		assert.False(t, notifs[0].Read)

		assert.ErrorIs(t, e.notifications.MarkRead(ctx, "bob", id), domain.ErrNotOwner)

		require.NoError(t, e.notifications.MarkRead(ctx, "alice", id))
		require.NoError(t, e.notifications.MarkRead(ctx, "alice", id)) // relecture sans effet

		notifs, err = e.notifications.List(ctx, "alice")
		require.NoError(t, err)
		assert.True(t, notifs[0].Read)
	})

	t.Run("mark read on unknown id", func(t *testing.T) {
		e := newEnv()
		assert.ErrorIs(t, e.notifications.MarkRead(ctx, "alice", 42), domain.ErrNotificationNotFound)
	})
}
