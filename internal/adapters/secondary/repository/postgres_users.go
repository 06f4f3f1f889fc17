package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/soliva-social/soliva/internal/core/domain"
	"github.com/soliva-social/soliva/internal/core/ports"
)

// DTO interne : tampon entre la base et le domaine.
type sqlUser struct {
	Key          string
	Name         string
	Bio          string
	ProfileImage string
	CoverImage   string
	CreatedAt    time.Time
}

type PostgresUserRepo struct {
	db *pgxpool.Pool
}

func NewPostgresUserRepo(pool *pgxpool.Pool) *PostgresUserRepo {
	return &PostgresUserRepo{db: pool}
}

var _ ports.UserRepository = (*PostgresUserRepo)(nil)

func (r *PostgresUserRepo) Save(ctx context.Context, user *domain.User) error {
	q := `
		INSERT INTO users (key, name, bio, profile_image, cover_image, created_at)
		VALUES (@key, @name, @bio, @profile_image, @cover_image, @created_at)
	`
	args := pgx.NamedArgs{
		"key":           user.Key,
		"name":          user.Name,
		"bio":           user.Bio,
		"profile_image": user.ProfileImage,
		"cover_image":   user.CoverImage,
		"created_at":    user.CreatedAt,
	}
	if _, err := r.db.Exec(ctx, q, args); err != nil {
		// 23505 = unique violation -> la clé est déjà inscrite
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrAlreadyRegistered
		}
		return fmt.Errorf("db: save user: %w", err)
	}
	return nil
}

func (r *PostgresUserRepo) Get(ctx context.Context, key string) (*domain.User, error) {
	q := `SELECT key, name, bio, profile_image, cover_image, created_at FROM users WHERE key = $1`

	var u sqlUser
	err := r.db.QueryRow(ctx, q, key).Scan(&u.Key, &u.Name, &u.Bio, &u.ProfileImage, &u.CoverImage, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("db: get user: %w", err)
	}
	return u.toDomain(), nil
}

func (r *PostgresUserRepo) Update(ctx context.Context, user *domain.User) error {
	q := `
		UPDATE users
		SET name = @name, bio = @bio, profile_image = @profile_image, cover_image = @cover_image
		WHERE key = @key
	`
	args := pgx.NamedArgs{
		"key":           user.Key,
		"name":          user.Name,
		"bio":           user.Bio,
		"profile_image": user.ProfileImage,
		"cover_image":   user.CoverImage,
	}
	tag, err := r.db.Exec(ctx, q, args)
	if err != nil {
		return fmt.Errorf("db: update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *PostgresUserRepo) List(ctx context.Context) ([]*domain.User, error) {
	q := `SELECT key, name, bio, profile_image, cover_image, created_at FROM users ORDER BY created_at, key`
	return r.collect(ctx, q)
}

func (r *PostgresUserRepo) Search(ctx context.Context, query string) ([]*domain.User, error) {
	q := `
		SELECT key, name, bio, profile_image, cover_image, created_at
		FROM users
		WHERE name ILIKE '%' || $1 || '%' OR bio ILIKE '%' || $1 || '%'
		ORDER BY created_at, key
	`
	return r.collect(ctx, q, query)
}

func (r *PostgresUserRepo) collect(ctx context.Context, q string, args ...any) ([]*domain.User, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("db: query users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		var u sqlUser
		if err := rows.Scan(&u.Key, &u.Name, &u.Bio, &u.ProfileImage, &u.CoverImage, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u.toDomain())
	}
	return users, rows.Err()
}

func (u *sqlUser) toDomain() *domain.User {
	return &domain.User{
		Key:          u.Key,
		Name:         u.Name,
		Bio:          u.Bio,
		ProfileImage: u.ProfileImage,
		CoverImage:   u.CoverImage,
		CreatedAt:    u.CreatedAt,
	}
}
