package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"atelier-backend/internal/domains/entry"
	"atelier-backend/pkg/cache"
	"atelier-backend/pkg/database"
)

const (
	entryCacheTTL       = 10 * time.Minute
	entryCacheKeyPrefix = "entry:slug:"
)

// SlugCachePattern matches every cached slug lookup. Tooling that writes
// entries directly (the seeder) clears it when it finishes.
const SlugCachePattern = "entry:slug:*"

const entryColumns = `
	id, title, slug, excerpt, content, date, read_time, image_url,
	author_name, author_role, author_avatar, author_email, author_bio,
	likes, comments_count, published, metadata, created_at, updated_at`

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

// NewPostgresRepository builds the pgx-backed entry store. The cache is used
// for slug lookups, the hot path of the public read views.
func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) entry.Repository {
	return &postgresRepository{pool: pool, cache: cache}
}

func (r *postgresRepository) Create(ctx context.Context, e *entry.Entry) error {
	meta, err := entry.MarshalMetadata(e.Meta)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}

	query := `
		INSERT INTO entries (
			id, title, slug, excerpt, content, category, date, read_time,
			image_url, author_name, author_role, author_avatar, author_email,
			author_bio, likes, comments_count, published, metadata
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8,
			$9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18
		)
		RETURNING created_at, updated_at`

	err = r.pool.QueryRow(ctx, query,
		e.ID, e.Title, e.Slug, e.Excerpt, e.Content, e.Category().String(),
		e.Date, e.ReadTime, e.ImageURL,
		e.Author.Name, e.Author.Role, e.Author.Avatar, e.Author.Email, e.Author.Bio,
		e.Likes, e.CommentsCount, e.Published, meta,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return entry.ErrSlugTaken
		}
		return fmt.Errorf("insert entry: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id string) (*entry.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE id = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*entry.Entry, error) {
	if r.cache != nil {
		var cached entryRow
		if ok, _ := r.cache.Get(ctx, entryCacheKeyPrefix+slug, &cached); ok {
			return cached.toEntry()
		}
	}

	query := `SELECT ` + entryColumns + ` FROM entries WHERE slug = $1`
	e, err := r.scanOne(r.pool.QueryRow(ctx, query, slug))
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		_ = r.cache.Set(ctx, entryCacheKeyPrefix+slug, newEntryRow(e), entryCacheTTL)
	}
	return e, nil
}

func (r *postgresRepository) List(ctx context.Context, publishedOnly bool) ([]*entry.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries`
	if publishedOnly {
		query += ` WHERE published = true`
	}
	query += ` ORDER BY date DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var out []*entry.Entry
	for rows.Next() {
		e, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *postgresRepository) Update(ctx context.Context, e *entry.Entry) error {
	meta, err := entry.MarshalMetadata(e.Meta)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}

	query := `
		UPDATE entries SET
			title = $2, excerpt = $3, content = $4, category = $5, date = $6,
			read_time = $7, image_url = $8,
			author_name = $9, author_role = $10, author_avatar = $11,
			author_email = $12, author_bio = $13,
			published = $14, metadata = $15, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err = r.pool.QueryRow(ctx, query,
		e.ID, e.Title, e.Excerpt, e.Content, e.Category().String(), e.Date,
		e.ReadTime, e.ImageURL,
		e.Author.Name, e.Author.Role, e.Author.Avatar, e.Author.Email, e.Author.Bio,
		e.Published, meta,
	).Scan(&e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return entry.ErrEntryNotFound
	}
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}

	r.invalidate(ctx, e.Slug)
	return nil
}

// Delete removes the entry and its comments in one transaction. The FK on
// comments cascades too; the explicit delete keeps the two stores' behavior
// identical. The transaction returns the slug so the cached copy can be
// dropped.
func (r *postgresRepository) Delete(ctx context.Context, id string) error {
	slug, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (string, error) {
		if _, err := tx.Exec(ctx, `DELETE FROM comments WHERE entry_id = $1`, id); err != nil {
			return "", fmt.Errorf("delete comments: %w", err)
		}
		var slug string
		err := tx.QueryRow(ctx, `DELETE FROM entries WHERE id = $1 RETURNING slug`, id).Scan(&slug)
		if errors.Is(err, pgx.ErrNoRows) {
			return "", entry.ErrEntryNotFound
		}
		if err != nil {
			return "", fmt.Errorf("delete entry: %w", err)
		}
		return slug, nil
	})
	if err != nil {
		return err
	}

	r.invalidate(ctx, slug)
	return nil
}

func (r *postgresRepository) IncrementLikes(ctx context.Context, id string) (int, error) {
	var likes int
	var slug string
	err := r.pool.QueryRow(ctx,
		`UPDATE entries SET likes = likes + 1, updated_at = NOW() WHERE id = $1 RETURNING likes, slug`,
		id,
	).Scan(&likes, &slug)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, entry.ErrEntryNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("increment likes: %w", err)
	}

	r.invalidate(ctx, slug)
	return likes, nil
}

func (r *postgresRepository) SetCommentsCount(ctx context.Context, id string, count int) error {
	var slug string
	err := r.pool.QueryRow(ctx,
		`UPDATE entries SET comments_count = $2, updated_at = NOW() WHERE id = $1 RETURNING slug`,
		id, count,
	).Scan(&slug)
	if errors.Is(err, pgx.ErrNoRows) {
		return entry.ErrEntryNotFound
	}
	if err != nil {
		return fmt.Errorf("set comments count: %w", err)
	}

	r.invalidate(ctx, slug)
	return nil
}

func (r *postgresRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM entries WHERE slug = $1)`, slug,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check slug: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) invalidate(ctx context.Context, slug string) {
	if r.cache != nil && slug != "" {
		_ = r.cache.Delete(ctx, entryCacheKeyPrefix+slug)
	}
}

func (r *postgresRepository) scanOne(row pgx.Row) (*entry.Entry, error) {
	var er entryRow
	err := row.Scan(
		&er.ID, &er.Title, &er.Slug, &er.Excerpt, &er.Content, &er.Date,
		&er.ReadTime, &er.ImageURL,
		&er.AuthorName, &er.AuthorRole, &er.AuthorAvatar, &er.AuthorEmail, &er.AuthorBio,
		&er.Likes, &er.CommentsCount, &er.Published, &er.Metadata,
		&er.CreatedAt, &er.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, entry.ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan entry: %w", err)
	}
	return er.toEntry()
}

// entryRow is the flat, cache-serializable row shape. Metadata stays as raw
// JSON until decoded into its variant.
type entryRow struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Excerpt       string    `json:"excerpt"`
	Content       string    `json:"content"`
	Date          time.Time `json:"date"`
	ReadTime      string    `json:"readTime"`
	ImageURL      string    `json:"imageUrl"`
	AuthorName    string    `json:"authorName"`
	AuthorRole    string    `json:"authorRole"`
	AuthorAvatar  string    `json:"authorAvatar"`
	AuthorEmail   string    `json:"authorEmail"`
	AuthorBio     string    `json:"authorBio"`
	Likes         int       `json:"likes"`
	CommentsCount int       `json:"commentsCount"`
	Published     bool      `json:"published"`
	Metadata      []byte    `json:"metadata"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func newEntryRow(e *entry.Entry) entryRow {
	meta, _ := entry.MarshalMetadata(e.Meta)
	return entryRow{
		ID: e.ID, Title: e.Title, Slug: e.Slug, Excerpt: e.Excerpt,
		Content: e.Content, Date: e.Date, ReadTime: e.ReadTime,
		ImageURL:   e.ImageURL,
		AuthorName: e.Author.Name, AuthorRole: e.Author.Role,
		AuthorAvatar: e.Author.Avatar, AuthorEmail: e.Author.Email,
		AuthorBio: e.Author.Bio,
		Likes:     e.Likes, CommentsCount: e.CommentsCount,
		Published: e.Published, Metadata: meta,
		CreatedAt: e.CreatedAt, UpdatedAt: e.UpdatedAt,
	}
}

func (er entryRow) toEntry() (*entry.Entry, error) {
	meta, err := entry.UnmarshalMetadata(er.Metadata)
	if err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	return &entry.Entry{
		ID: er.ID, Title: er.Title, Slug: er.Slug, Excerpt: er.Excerpt,
		Content: er.Content, Date: er.Date, ReadTime: er.ReadTime,
		ImageURL: er.ImageURL,
		Author: entry.Author{
			Name: er.AuthorName, Role: er.AuthorRole, Avatar: er.AuthorAvatar,
			Email: er.AuthorEmail, Bio: er.AuthorBio,
		},
		Likes: er.Likes, CommentsCount: er.CommentsCount,
		Published: er.Published, Meta: meta,
		CreatedAt: er.CreatedAt, UpdatedAt: er.UpdatedAt,
	}, nil
}

func isUniqueViolation(err error) bool {
	var pgErr interface{ SQLState() string }
	return errors.As(err, &pgErr) && pgErr.SQLState() == "23505"
}
