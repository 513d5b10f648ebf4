package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"atelier-backend/internal/domains/entry"
)

// memoryRepository is the in-process store used when no database is
// configured, and as the reference store in tests. Semantics match the
// Postgres implementation.
type memoryRepository struct {
	mu      sync.RWMutex
	entries map[string]*entry.Entry
}

func NewMemoryRepository() entry.Repository {
	return &memoryRepository{entries: make(map[string]*entry.Entry)}
}

func (r *memoryRepository) Create(_ context.Context, e *entry.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.entries {
		if existing.Slug == e.Slug {
			return entry.ErrSlugTaken
		}
	}

	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now
	r.entries[e.ID] = cloneEntry(e)
	return nil
}

func (r *memoryRepository) GetByID(_ context.Context, id string) (*entry.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	if !ok {
		return nil, entry.ErrEntryNotFound
	}
	return cloneEntry(e), nil
}

func (r *memoryRepository) GetBySlug(_ context.Context, slug string) (*entry.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.entries {
		if e.Slug == slug {
			return cloneEntry(e), nil
		}
	}
	return nil, entry.ErrEntryNotFound
}

func (r *memoryRepository) List(_ context.Context, publishedOnly bool) ([]*entry.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entry.Entry, 0, len(r.entries))
	for _, e := range r.entries {
		if publishedOnly && !e.Published {
			continue
		}
		out = append(out, cloneEntry(e))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

func (r *memoryRepository) Update(_ context.Context, e *entry.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[e.ID]; !ok {
		return entry.ErrEntryNotFound
	}
	e.UpdatedAt = time.Now()
	r.entries[e.ID] = cloneEntry(e)
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[id]; !ok {
		return entry.ErrEntryNotFound
	}
	delete(r.entries, id)
	return nil
}

func (r *memoryRepository) IncrementLikes(_ context.Context, id string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return 0, entry.ErrEntryNotFound
	}
	e.Likes++
	e.UpdatedAt = time.Now()
	return e.Likes, nil
}

func (r *memoryRepository) SetCommentsCount(_ context.Context, id string, count int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return entry.ErrEntryNotFound
	}
	e.CommentsCount = count
	e.UpdatedAt = time.Now()
	return nil
}

func (r *memoryRepository) SlugExists(_ context.Context, slug string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.entries {
		if e.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func cloneEntry(e *entry.Entry) *entry.Entry {
	c := *e
	return &c
}
