package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/soliva-social/soliva/internal/core/domain"
	"github.com/soliva-social/soliva/internal/core/ports"
)

type PostgresNotificationRepo struct {
	db *pgxpool.Pool
}

func NewPostgresNotificationRepo(pool *pgxpool.Pool) *PostgresNotificationRepo {
	return &PostgresNotificationRepo{db: pool}
}

var _ ports.NotificationRepository = (*PostgresNotificationRepo)(nil)

func (r *PostgresNotificationRepo) Append(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	q := `
		INSERT INTO notifications (sender, receiver, kind, message, created_at, read)
		VALUES (@sender, @receiver, @kind, @message, @created_at, FALSE)
		RETURNING id
	`
	args := pgx.NamedArgs{
		"sender":     n.Sender,
		"receiver":   n.Receiver,
		"kind":       string(n.Kind),
		"message":    n.Message,
		"created_at": n.CreatedAt,
	}
	created := *n
	if err := r.db.QueryRow(ctx, q, args).Scan(&created.ID); err != nil {
		return nil, fmt.Errorf("db: append notification: %w", err)
	}
	return &created, nil
}

func (r *PostgresNotificationRepo) ByReceiver(ctx context.Context, receiver string) ([]*domain.Notification, error) {
	q := `
		SELECT id, sender, receiver, kind, message, created_at, read
		FROM notifications
		WHERE receiver = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.Query(ctx, q, receiver)
	if err != nil {
		return nil, fmt.Errorf("db: query notifications: %w", err)
	}
	defer rows.Close()

	var out []*domain.Notification
	for rows.Next() {
		var n domain.Notification
		var kind string
		if err := rows.Scan(&n.ID, &n.Sender, &n.Receiver, &kind, &n.Message, &n.CreatedAt, &n.Read); err != nil {
			return nil, err
		}
		n.Kind = domain.NotificationKind(kind)
		out = append(out, &n)
	}
	return out, rows.Err()
}

func (r *PostgresNotificationRepo) MarkRead(ctx context.Context, notificationID int64, receiver string) error {
	var owner string
	err := r.db.QueryRow(ctx, `SELECT receiver FROM notifications WHERE id = $1`, notificationID).Scan(&owner)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotificationNotFound
		}
		return fmt.Errorf("db: get notification: %w", err)
	}
	if owner != receiver {
		return domain.ErrNotOwner
	}
	_, err = r.db.Exec(ctx, `UPDATE notifications SET read = TRUE WHERE id = $1`, notificationID)
	if err != nil {
		return fmt.Errorf("db: mark read: %w", err)
	}
	return nil
}
