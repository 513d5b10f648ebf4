package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"atelier-backend/internal/domains/comment"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) comment.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, c *comment.Comment) error {
	var parent sql.NullString
	if c.ParentID != "" {
		parent = sql.NullString{String: c.ParentID, Valid: true}
	}

	err := r.pool.QueryRow(ctx, `
		INSERT INTO comments (id, entry_id, parent_id, author_name, author_avatar, text, likes, is_author)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`,
		c.ID, c.EntryID, parent, c.AuthorName, c.AuthorAvatar, c.Text, c.Likes, c.IsAuthor,
	).Scan(&c.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return comment.ErrEntryNotFound
		}
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id string) (*comment.Comment, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, entry_id, parent_id, author_name, author_avatar, text, likes, is_author, created_at
		FROM comments WHERE id = $1`, id)

	c, err := scanComment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, comment.ErrCommentNotFound
	}
	return c, err
}

func (r *postgresRepository) ListByEntry(ctx context.Context, entryID string) ([]*comment.Comment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, entry_id, parent_id, author_name, author_avatar, text, likes, is_author, created_at
		FROM comments WHERE entry_id = $1
		ORDER BY created_at ASC`, entryID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var flat []*comment.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		flat = append(flat, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return assembleThread(flat), nil
}

func (r *postgresRepository) CountByEntry(ctx context.Context, entryID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM comments WHERE entry_id = $1`, entryID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count comments: %w", err)
	}
	return count, nil
}

func (r *postgresRepository) DeleteByEntry(ctx context.Context, entryID string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE entry_id = $1`, entryID); err != nil {
		return fmt.Errorf("delete comments: %w", err)
	}
	return nil
}

func (r *postgresRepository) IncrementLikes(ctx context.Context, id string) (int, error) {
	var likes int
	err := r.pool.QueryRow(ctx,
		`UPDATE comments SET likes = likes + 1 WHERE id = $1 RETURNING likes`, id,
	).Scan(&likes)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, comment.ErrCommentNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("increment comment likes: %w", err)
	}
	return likes, nil
}

func scanComment(row pgx.Row) (*comment.Comment, error) {
	var c comment.Comment
	var parent sql.NullString
	err := row.Scan(&c.ID, &c.EntryID, &parent, &c.AuthorName, &c.AuthorAvatar,
		&c.Text, &c.Likes, &c.IsAuthor, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	c.ParentID = parent.String
	return &c, nil
}

// assembleThread nests a chronological flat list: top-level comments stay in
// creation order, replies attach to their parent in creation order. Replies
// whose parent is gone are dropped.
func assembleThread(flat []*comment.Comment) []*comment.Comment {
	byID := make(map[string]*comment.Comment, len(flat))
	var roots []*comment.Comment
	for _, c := range flat {
		if c.ParentID == "" {
			byID[c.ID] = c
			roots = append(roots, c)
		}
	}
	for _, c := range flat {
		if c.ParentID == "" {
			continue
		}
		if parent, ok := byID[c.ParentID]; ok {
			parent.Replies = append(parent.Replies, c)
		}
	}
	return roots
}

func isForeignKeyViolation(err error) bool {
	var pgErr interface{ SQLState() string }
	return errors.As(err, &pgErr) && pgErr.SQLState() == "23503"
}
