package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"atelier-backend/internal/domains/entry"
	"atelier-backend/internal/shared/utils"
	"atelier-backend/pkg/logger"
)

// CommentPurger removes every comment belonging to an entry. The database
// enforces the same cascade through its foreign key, the explicit call keeps
// the in-memory store consistent too.
type CommentPurger interface {
	DeleteByEntry(ctx context.Context, entryID string) error
}

type entryService struct {
	repo     entry.Repository
	comments CommentPurger
}

func NewEntryService(repo entry.Repository, comments CommentPurger) entry.Service {
	return &entryService{repo: repo, comments: comments}
}

func (s *entryService) Create(ctx context.Context, req entry.CreateEntryReq) (*entry.EntryResp, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", entry.ErrValidation, err)
	}

	meta := req.Metadata()
	e := &entry.Entry{
		ID:       uuid.New().String(),
		Title:    strings.TrimSpace(req.Title),
		Excerpt:  strings.TrimSpace(req.Excerpt),
		Content:  req.Content,
		Date:     time.Now(),
		ImageURL: req.ImageURL,
		Author:   authorWithDefaults(req.Author),
		Meta:     meta,
	}
	if req.Date != nil {
		e.Date = *req.Date
	}
	if req.Published != nil {
		e.Published = *req.Published
	}
	applyDerivedFields(e)
	e.ReadTime = utils.ReadTimeFor(e.Content)

	slug, err := s.assignSlug(ctx, e.Title)
	if err != nil {
		return nil, err
	}
	e.Slug = slug

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}

	logger.Info("entry created", map[string]interface{}{
		"entry_id": e.ID,
		"slug":     e.Slug,
		"category": e.Category().String(),
	})
	return e.ToResponse(), nil
}

func (s *entryService) GetByID(ctx context.Context, id string) (*entry.EntryResp, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return e.ToResponse(), nil
}

func (s *entryService) GetBySlug(ctx context.Context, slug string) (*entry.EntryResp, error) {
	e, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return e.ToResponse(), nil
}

func (s *entryService) List(ctx context.Context, includeDrafts bool) ([]*entry.EntryResp, error) {
	entries, err := s.repo.List(ctx, !includeDrafts)
	if err != nil {
		return nil, err
	}

	out := make([]*entry.EntryResp, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ToResponse())
	}
	return out, nil
}

func (s *entryService) Update(ctx context.Context, id string, req entry.UpdateEntryReq) (*entry.EntryResp, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", entry.ErrValidation, err)
	}

	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		e.Title = strings.TrimSpace(*req.Title)
	}
	if req.Excerpt != nil {
		e.Excerpt = strings.TrimSpace(*req.Excerpt)
	}
	if req.Content != nil {
		e.Content = *req.Content
		e.ReadTime = utils.ReadTimeFor(e.Content)
	}
	if req.ImageURL != nil {
		e.ImageURL = *req.ImageURL
	}
	if req.Author != nil {
		e.Author = authorWithDefaults(req.Author)
	}
	if req.Published != nil {
		e.Published = *req.Published
	}

	category := e.Category()
	if req.Category != nil {
		category = *req.Category
	}
	if meta := req.Metadata(category); meta != nil {
		e.Meta = meta
	} else if category != e.Category() {
		e.Meta = entry.EmptyMetadata(category)
	}
	applyDerivedFields(e)

	// The slug never changes, even when the title does.
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e.ToResponse(), nil
}

func (s *entryService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	// Comments first, so the entry never outlives an inconsistent state.
	if err := s.comments.DeleteByEntry(ctx, id); err != nil {
		return fmt.Errorf("purge comments: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info("entry deleted", map[string]interface{}{"entry_id": id})
	return nil
}

func (s *entryService) Like(ctx context.Context, id string) (*entry.LikeResp, error) {
	likes, err := s.repo.IncrementLikes(ctx, id)
	if err != nil {
		return nil, err
	}
	return &entry.LikeResp{Likes: likes}, nil
}

// assignSlug derives a slug from the title and resolves collisions by
// numeric suffix, keeping the first form for the first claimant.
func (s *entryService) assignSlug(ctx context.Context, title string) (string, error) {
	base := utils.GenerateSlug(title)
	candidate := base
	for i := 2; ; i++ {
		exists, err := s.repo.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

// applyDerivedFields fills empty titles and excerpts from the metadata
// variant, falling back to the stock draft title.
func applyDerivedFields(e *entry.Entry) {
	e.Title = entry.DeriveTitle(e.Title, e.Meta)
	if e.Title == "" {
		e.Title = "Sem título"
	}
	e.Excerpt = entry.DeriveExcerpt(e.Excerpt, e.Meta)
	if e.ImageURL == "" {
		e.ImageURL = entry.DefaultImageURL
	}
}

func authorWithDefaults(a *entry.Author) entry.Author {
	if a == nil {
		return entry.DefaultAuthor
	}
	out := *a
	if out.Name == "" {
		out.Name = entry.DefaultAuthor.Name
	}
	if out.Role == "" {
		out.Role = entry.DefaultAuthor.Role
	}
	if out.Avatar == "" {
		out.Avatar = entry.DefaultAuthor.Avatar
	}
	if out.Email == "" {
		out.Email = entry.DefaultAuthor.Email
	}
	if out.Bio == "" {
		out.Bio = entry.DefaultAuthor.Bio
	}
	return out
}
