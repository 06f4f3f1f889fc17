package eventbroker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/soliva-social/soliva/internal/core/domain"
	"github.com/soliva-social/soliva/internal/core/ports"
)

// Sujets publiés (contrat implicite avec les consommateurs : indexeurs,
// modération, push mobile).
const (
	subjectPostCreated   = "social.post.created"
	subjectPostLiked     = "social.post.liked"
	subjectPostCommented = "social.post.commented"
	subjectPostReposted  = "social.post.reposted"
	subjectFollowed      = "social.graph.followed"
	subjectMessageSent   = "social.dm.sent"
)

type NatsPublisher struct {
	nc *nats.Conn
}

func NewNatsPublisher(nc *nats.Conn) *NatsPublisher {
	return &NatsPublisher{nc: nc}
}

var _ ports.EventPublisher = (*NatsPublisher)(nil)

// envelope : champs communs à tous les events.
type envelope struct {
	EventID string    `json:"event_id"`
	At      time.Time `json:"at"`
}

func newEnvelope() envelope {
	return envelope{EventID: uuid.NewString(), At: time.Now().UTC()}
}

type postCreatedEvent struct {
	envelope
	PostID   int64  `json:"post_id"`
	AuthorID string `json:"author_id"`
	HasMedia bool   `json:"has_media"`
}

type interactionEvent struct {
	envelope
	Actor     string `json:"actor"`
	PostID    int64  `json:"post_id"`
	CommentID int64  `json:"comment_id,omitempty"`
	RepostID  int64  `json:"repost_id,omitempty"`
}

type followedEvent struct {
	envelope
	Follower string `json:"follower"`
	Followee string `json:"followee"`
}

type messageSentEvent struct {
	envelope
	From      string `json:"from"`
	To        string `json:"to"`
	MessageID int64  `json:"message_id"`
}

func (p *NatsPublisher) PublishPostCreated(ctx context.Context, post *domain.Post) error {
	return p.publish(ctx, subjectPostCreated, postCreatedEvent{
		envelope: newEnvelope(),
		PostID:   post.ID,
		AuthorID: post.Author,
		HasMedia: post.Image != "" || post.Video != "",
	})
}

func (p *NatsPublisher) PublishPostLiked(ctx context.Context, actor string, postID int64) error {
	return p.publish(ctx, subjectPostLiked, interactionEvent{envelope: newEnvelope(), Actor: actor, PostID: postID})
}

func (p *NatsPublisher) PublishPostCommented(ctx context.Context, actor string, postID, commentID int64) error {
	return p.publish(ctx, subjectPostCommented, interactionEvent{
		envelope: newEnvelope(), Actor: actor, PostID: postID, CommentID: commentID,
	})
}

func (p *NatsPublisher) PublishPostReposted(ctx context.Context, actor string, originalID, repostID int64) error {
	return p.publish(ctx, subjectPostReposted, interactionEvent{
		envelope: newEnvelope(), Actor: actor, PostID: originalID, RepostID: repostID,
	})
}

func (p *NatsPublisher) PublishFollowed(ctx context.Context, follower, followee string) error {
	return p.publish(ctx, subjectFollowed, followedEvent{envelope: newEnvelope(), Follower: follower, Followee: followee})
}

func (p *NatsPublisher) PublishMessageSent(ctx context.Context, from, to string, messageID int64) error {
	return p.publish(ctx, subjectMessageSent, messageSentEvent{
		envelope: newEnvelope(), From: from, To: to, MessageID: messageID,
	})
}

func (p *NatsPublisher) publish(ctx context.Context, subject string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := &nats.Msg{
		Subject: subject,
		Data:    data,
		Header:  nats.Header{},
	}
	// Injection du contexte de trace dans les headers NATS : les
	// consommateurs héritent du TraceID de la requête d'origine.
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(msg.Header))

	slog.Debug("📢 publishing event", "subject", subject)
	return p.nc.PublishMsg(msg)
}
