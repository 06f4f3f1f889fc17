package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/soliva-social/soliva/internal/adapters/secondary/eventbroker"
	"github.com/soliva-social/soliva/internal/adapters/secondary/repository"
	"github.com/soliva-social/soliva/internal/core/ports"
	"github.com/soliva-social/soliva/internal/core/services"
)

// env câble l'hexagone complet sur les adapters mémoire : les tests de
// services passent par les mêmes ports que la prod.
type env struct {
	users    *repository.MemoryUserRepo
	graph    *repository.MemoryGraphRepo
	posts    *repository.MemoryPostRepo
	notifs   *repository.MemoryNotificationRepo
	messages *repository.MemoryMessageRepo

	profiles      ports.ProfileService
	graphSvc      ports.GraphService
	content       ports.ContentService
	notifications ports.NotificationService
	feed          ports.FeedService
	messaging     ports.MessagingService
}

func newEnv() *env {
	e := &env{
		users:    repository.NewMemoryUserRepo(),
		graph:    repository.NewMemoryGraphRepo(),
		posts:    repository.NewMemoryPostRepo(),
		notifs:   repository.NewMemoryNotificationRepo(),
		messages: repository.NewMemoryMessageRepo(),
	}
	events := eventbroker.NewNoopPublisher()
	e.notifications = services.NewNotificationService(e.notifs)
	e.profiles = services.NewProfileService(e.users, e.graph)
	e.graphSvc = services.NewGraphService(e.users, e.graph, e.notifications, events)
	e.content = services.NewContentService(e.users, e.posts, e.notifications, events)
	e.feed = services.NewFeedService(e.graph, e.posts)
	e.messaging = services.NewMessagingService(e.users, e.graph, e.messages, e.notifications, events)
	return e
}

func (e *env) register(t *testing.T, key, name string) {
	t.Helper()
	_, err := e.profiles.Register(context.Background(), key, ports.ProfileCmd{Name: name})
	require.NoError(t, err)
}

func (e *env) follow(t *testing.T, follower, followee string) {
	t.Helper()
	require.NoError(t, e.graphSvc.Follow(context.Background(), follower, followee))
}
