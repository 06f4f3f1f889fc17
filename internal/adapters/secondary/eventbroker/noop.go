package eventbroker

import (
	"context"

	"github.com/soliva-social/soliva/internal/core/domain"
	"github.com/soliva-social/soliva/internal/core/ports"
)

// NoopPublisher : pour le mode embedded et les tests, quand aucun broker
// n'est branché.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher { return &NoopPublisher{} }

var _ ports.EventPublisher = (*NoopPublisher)(nil)

func (*NoopPublisher) PublishPostCreated(context.Context, *domain.Post) error         { return nil }
func (*NoopPublisher) PublishPostLiked(context.Context, string, int64) error          { return nil }
func (*NoopPublisher) PublishPostCommented(context.Context, string, int64, int64) error { return nil }
func (*NoopPublisher) PublishPostReposted(context.Context, string, int64, int64) error  { return nil }
func (*NoopPublisher) PublishFollowed(context.Context, string, string) error          { return nil }
func (*NoopPublisher) PublishMessageSent(context.Context, string, string, int64) error  { return nil }
