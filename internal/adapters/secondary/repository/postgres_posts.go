package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/soliva-social/soliva/internal/core/domain"
	"github.com/soliva-social/soliva/internal/core/ports"
)

// PostgresPostRepo : l'agrégat post (likes, commentaires inclus) est muté
// en une transaction par opération publique. La séquence BIGSERIAL est
// l'autorité de l'espace d'ids global ; les ids de commentaires sont
// calculés sous verrou de la ligne du post parent.
type PostgresPostRepo struct {
	db *pgxpool.Pool
}

func NewPostgresPostRepo(pool *pgxpool.Pool) *PostgresPostRepo {
	return &PostgresPostRepo{db: pool}
}

var _ ports.PostRepository = (*PostgresPostRepo)(nil)

const postColumns = `id, author, content, image, video, created_at, original_post_id, reposted_by`

func (r *PostgresPostRepo) Create(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	q := `
		INSERT INTO posts (author, content, image, video, created_at, original_post_id, reposted_by)
		VALUES (@author, @content, @image, @video, @created_at, 0, '')
		RETURNING id
	`
	args := pgx.NamedArgs{
		"author":     post.Author,
		"content":    post.Content,
		"image":      post.Image,
		"video":      post.Video,
		"created_at": post.CreatedAt,
	}
	created := post.Clone()
	if err := r.db.QueryRow(ctx, q, args).Scan(&created.ID); err != nil {
		return nil, fmt.Errorf("db: create post: %w", err)
	}
	return created, nil
}

func (r *PostgresPostRepo) Get(ctx context.Context, postID int64) (*domain.Post, error) {
	posts, err := r.query(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, postID)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, domain.ErrPostNotFound
	}
	return posts[0], nil
}

func (r *PostgresPostRepo) ToggleLike(ctx context.Context, postID int64, userKey string) (*domain.Post, domain.LikeOutcome, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("db: begin toggle like: %w", err)
	}
	defer tx.Rollback(ctx)

	// Verrou de la ligne du post : le read-then-write du set des likers
	// devient indivisible, pas de lost update entre likers concurrents.
	var author string
	err = tx.QueryRow(ctx, `SELECT author FROM posts WHERE id = $1 FOR UPDATE`, postID).Scan(&author)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", domain.ErrPostNotFound
		}
		return nil, "", fmt.Errorf("db: lock post: %w", err)
	}

	outcome := domain.Unliked
	tag, err := tx.Exec(ctx, `DELETE FROM post_likes WHERE post_id = $1 AND user_key = $2`, postID, userKey)
	if err != nil {
		return nil, "", fmt.Errorf("db: unlike: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := tx.Exec(ctx, `INSERT INTO post_likes (post_id, user_key) VALUES ($1, $2)`, postID, userKey); err != nil {
			return nil, "", fmt.Errorf("db: like: %w", err)
		}
		outcome = domain.Liked
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, "", fmt.Errorf("db: commit toggle like: %w", err)
	}

	post, err := r.Get(ctx, postID)
	if err != nil {
		return nil, "", err
	}
	return post, outcome, nil
}

func (r *PostgresPostRepo) AddComment(ctx context.Context, postID int64, comment *domain.Comment) (*domain.Comment, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("db: begin comment: %w", err)
	}
	defer tx.Rollback(ctx)

	var locked int64
	err = tx.QueryRow(ctx, `SELECT id FROM posts WHERE id = $1 FOR UPDATE`, postID).Scan(&locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("db: lock post: %w", err)
	}

	// Id scopé au parent : max + 1 sous le verrou du post.
	created := *comment
	err = tx.QueryRow(ctx,
		`SELECT COALESCE(MAX(comment_id), 0) + 1 FROM post_comments WHERE post_id = $1`, postID,
	).Scan(&created.ID)
	if err != nil {
		return nil, fmt.Errorf("db: next comment id: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO post_comments (post_id, comment_id, author, content, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		postID, created.ID, created.Author, created.Content, created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("db: insert comment: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("db: commit comment: %w", err)
	}
	return &created, nil
}

func (r *PostgresPostRepo) CreateRepost(ctx context.Context, repost *domain.Post) (*domain.Post, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("db: begin repost: %w", err)
	}
	defer tx.Rollback(ctx)

	var exists bool
	err = tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM posts WHERE id = $1)`, repost.OriginalPostID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("db: check original: %w", err)
	}
	if !exists {
		return nil, domain.ErrPostNotFound
	}

	created := repost.Clone()
	err = tx.QueryRow(ctx, `
		INSERT INTO posts (author, content, image, video, created_at, original_post_id, reposted_by)
		VALUES ($1, '', '', '', $2, $3, $4)
		RETURNING id`,
		repost.Author, repost.CreatedAt, repost.OriginalPostID, repost.RepostedBy,
	).Scan(&created.ID)
	if err != nil {
		// L'index unique partiel (author, original_post_id) porte la garde.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyReposted
		}
		return nil, fmt.Errorf("db: insert repost: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("db: commit repost: %w", err)
	}
	return created, nil
}

func (r *PostgresPostRepo) All(ctx context.Context) ([]*domain.Post, error) {
	return r.query(ctx, `SELECT `+postColumns+` FROM posts ORDER BY created_at DESC, id ASC`)
}

func (r *PostgresPostRepo) ByAuthor(ctx context.Context, authorKey string) ([]*domain.Post, error) {
	return r.query(ctx,
		`SELECT `+postColumns+` FROM posts WHERE author = $1 ORDER BY created_at DESC, id ASC`, authorKey)
}

func (r *PostgresPostRepo) ByAuthors(ctx context.Context, authorKeys []string) ([]*domain.Post, error) {
	if len(authorKeys) == 0 {
		return []*domain.Post{}, nil
	}
	return r.query(ctx, `SELECT `+postColumns+` FROM posts WHERE author = ANY($1)`, authorKeys)
}

// --- Hydratation ---

// query charge les posts puis leurs likes et commentaires en deux requêtes
// batch (ANY), même motif que l'hydratation du feed.
func (r *PostgresPostRepo) query(ctx context.Context, q string, args ...any) ([]*domain.Post, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("db: query posts: %w", err)
	}
	defer rows.Close()

	var posts []*domain.Post
	var ids []int64
	index := make(map[int64]*domain.Post)
	for rows.Next() {
		p := &domain.Post{Likes: []string{}, Comments: []domain.Comment{}}
		if err := rows.Scan(&p.ID, &p.Author, &p.Content, &p.Image, &p.Video,
			&p.CreatedAt, &p.OriginalPostID, &p.RepostedBy); err != nil {
			return nil, err
		}
		posts = append(posts, p)
		ids = append(ids, p.ID)
		index[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return posts, nil
	}

	likeRows, err := r.db.Query(ctx,
		`SELECT post_id, user_key FROM post_likes WHERE post_id = ANY($1) ORDER BY created_at, user_key`, ids)
	if err != nil {
		return nil, fmt.Errorf("db: query likes: %w", err)
	}
	defer likeRows.Close()
	for likeRows.Next() {
		var postID int64
		var userKey string
		if err := likeRows.Scan(&postID, &userKey); err != nil {
			return nil, err
		}
		index[postID].Likes = append(index[postID].Likes, userKey)
	}
	if err := likeRows.Err(); err != nil {
		return nil, err
	}

	commentRows, err := r.db.Query(ctx, `
		SELECT post_id, comment_id, author, content, created_at
		FROM post_comments WHERE post_id = ANY($1) ORDER BY post_id, comment_id`, ids)
	if err != nil {
		return nil, fmt.Errorf("db: query comments: %w", err)
	}
	defer commentRows.Close()
	for commentRows.Next() {
		var postID int64
		var c domain.Comment
		if err := commentRows.Scan(&postID, &c.ID, &c.Author, &c.Content, &c.CreatedAt); err != nil {
			return nil, err
		}
		index[postID].Comments = append(index[postID].Comments, c)
	}
	return posts, commentRows.Err()
}
