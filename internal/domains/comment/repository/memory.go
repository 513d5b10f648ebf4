package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"atelier-backend/internal/domains/comment"
)

type memoryRepository struct {
	mu       sync.RWMutex
	comments map[string]*comment.Comment
}

// NewMemoryRepository builds the in-process comment store used without a
// database and in tests.
func NewMemoryRepository() comment.Repository {
	return &memoryRepository{comments: make(map[string]*comment.Comment)}
}

func (r *memoryRepository) Create(_ context.Context, c *comment.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	stored := *c
	stored.Replies = nil
	r.comments[c.ID] = &stored
	return nil
}

func (r *memoryRepository) GetByID(_ context.Context, id string) (*comment.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.comments[id]
	if !ok {
		return nil, comment.ErrCommentNotFound
	}
	out := *c
	return &out, nil
}

func (r *memoryRepository) ListByEntry(_ context.Context, entryID string) ([]*comment.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var flat []*comment.Comment
	for _, c := range r.comments {
		if c.EntryID == entryID {
			out := *c
			out.Replies = nil
			flat = append(flat, &out)
		}
	}
	sort.Slice(flat, func(i, j int) bool {
		return flat[i].CreatedAt.Before(flat[j].CreatedAt)
	})
	return assembleThread(flat), nil
}

func (r *memoryRepository) CountByEntry(_ context.Context, entryID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, c := range r.comments {
		if c.EntryID == entryID {
			count++
		}
	}
	return count, nil
}

func (r *memoryRepository) DeleteByEntry(_ context.Context, entryID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, c := range r.comments {
		if c.EntryID == entryID {
			delete(r.comments, id)
		}
	}
	return nil
}

func (r *memoryRepository) IncrementLikes(_ context.Context, id string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.comments[id]
	if !ok {
		return 0, comment.ErrCommentNotFound
	}
	c.Likes++
	return c.Likes, nil
}
