package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"atelier-backend/internal/domains/comment"
	"atelier-backend/internal/domains/entry"
	"atelier-backend/pkg/logger"
)

type commentService struct {
	repo    comment.Repository
	entries entry.Repository
}

// NewCommentService builds the comment service. It holds the entry store so
// every mutation refreshes the denormalized comment counter on the entry.
func NewCommentService(repo comment.Repository, entries entry.Repository) comment.Service {
	return &commentService{repo: repo, entries: entries}
}

func (s *commentService) Add(ctx context.Context, entryID string, req comment.AddCommentReq) (*comment.CommentResp, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", comment.ErrValidation, err)
	}

	if _, err := s.entries.GetByID(ctx, entryID); err != nil {
		if errors.Is(err, entry.ErrEntryNotFound) {
			return nil, comment.ErrEntryNotFound
		}
		return nil, err
	}

	if req.ParentID != "" {
		parent, err := s.repo.GetByID(ctx, req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.EntryID != entryID || parent.ParentID != "" {
			return nil, comment.ErrInvalidParent
		}
	}

	c := &comment.Comment{
		ID:           uuid.New().String(),
		EntryID:      entryID,
		ParentID:     req.ParentID,
		AuthorName:   req.AuthorName,
		AuthorAvatar: req.AuthorAvatar,
		Text:         req.Text,
		IsAuthor:     req.IsAuthor,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.refreshCount(ctx, entryID)
	return c.ToResponse(), nil
}

func (s *commentService) ListByEntry(ctx context.Context, entryID string) ([]*comment.CommentResp, error) {
	if _, err := s.entries.GetByID(ctx, entryID); err != nil {
		if errors.Is(err, entry.ErrEntryNotFound) {
			return nil, comment.ErrEntryNotFound
		}
		return nil, err
	}

	comments, err := s.repo.ListByEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}

	out := make([]*comment.CommentResp, 0, len(comments))
	for _, c := range comments {
		out = append(out, c.ToResponse())
	}
	return out, nil
}

func (s *commentService) Like(ctx context.Context, id string) (int, error) {
	return s.repo.IncrementLikes(ctx, id)
}

func (s *commentService) DeleteByEntry(ctx context.Context, entryID string) error {
	return s.repo.DeleteByEntry(ctx, entryID)
}

// refreshCount updates the entry's denormalized counter. A failure here is
// tolerable, the counter converges on the next mutation.
func (s *commentService) refreshCount(ctx context.Context, entryID string) {
	count, err := s.repo.CountByEntry(ctx, entryID)
	if err != nil {
		logger.Warn("comment count refresh failed", map[string]interface{}{"entry_id": entryID})
		return
	}
	if err := s.entries.SetCommentsCount(ctx, entryID, count); err != nil {
		logger.Warn("comment count write failed", map[string]interface{}{"entry_id": entryID})
	}
}
