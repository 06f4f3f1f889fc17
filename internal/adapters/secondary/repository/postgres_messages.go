package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/soliva-social/soliva/internal/core/domain"
	"github.com/soliva-social/soliva/internal/core/ports"
)

// PostgresMessageRepo : la ligne conversations(lo, hi) est l'autorité de
// séquence de la paire ; l'upsert qui incrémente last_message_id et l'insert
// du message vivent dans la même transaction.
type PostgresMessageRepo struct {
	db *pgxpool.Pool
}

func NewPostgresMessageRepo(pool *pgxpool.Pool) *PostgresMessageRepo {
	return &PostgresMessageRepo{db: pool}
}

var _ ports.MessageRepository = (*PostgresMessageRepo)(nil)

func (r *PostgresMessageRepo) Append(ctx context.Context, m *domain.Message) (*domain.Message, error) {
	lo, hi := domain.ConversationKey(m.From, m.To)

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("db: begin append message: %w", err)
	}
	defer tx.Rollback(ctx)

	created := *m
	err = tx.QueryRow(ctx, `
		INSERT INTO conversations (lo, hi, last_message_id, last_active)
		VALUES ($1, $2, 1, $3)
		ON CONFLICT (lo, hi) DO UPDATE
		SET last_message_id = conversations.last_message_id + 1, last_active = $3
		RETURNING last_message_id`,
		lo, hi, m.CreatedAt,
	).Scan(&created.ID)
	if err != nil {
		return nil, fmt.Errorf("db: next message id: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO messages (lo, hi, id, sender, recipient, content, created_at, seen)
		VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE)`,
		lo, hi, created.ID, m.From, m.To, m.Content, m.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("db: insert message: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("db: commit message: %w", err)
	}
	return &created, nil
}

func (r *PostgresMessageRepo) Conversation(ctx context.Context, a, b string) ([]*domain.Message, error) {
	lo, hi := domain.ConversationKey(a, b)
	rows, err := r.db.Query(ctx, `
		SELECT id, sender, recipient, content, created_at, seen
		FROM messages WHERE lo = $1 AND hi = $2
		ORDER BY id ASC`,
		lo, hi,
	)
	if err != nil {
		return nil, fmt.Errorf("db: query conversation: %w", err)
	}
	defer rows.Close()

	out := []*domain.Message{}
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.From, &m.To, &m.Content, &m.CreatedAt, &m.Seen); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

func (r *PostgresMessageRepo) MarkSeen(ctx context.Context, owner, peer string, upTo int64) error {
	lo, hi := domain.ConversationKey(owner, peer)
	// Watermark cumulatif ; 0 ligne affectée est un résultat valide.
	_, err := r.db.Exec(ctx, `
		UPDATE messages SET seen = TRUE
		WHERE lo = $1 AND hi = $2 AND recipient = $3 AND id <= $4`,
		lo, hi, owner, upTo,
	)
	if err != nil {
		return fmt.Errorf("db: mark seen: %w", err)
	}
	return nil
}

func (r *PostgresMessageRepo) Peers(ctx context.Context, owner string) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT CASE WHEN lo = $1 THEN hi ELSE lo END
		FROM conversations
		WHERE lo = $1 OR hi = $1
		ORDER BY last_active DESC`,
		owner,
	)
	if err != nil {
		return nil, fmt.Errorf("db: query peers: %w", err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var peer string
		if err := rows.Scan(&peer); err != nil {
			return nil, err
		}
		out = append(out, peer)
	}
	return out, rows.Err()
}
