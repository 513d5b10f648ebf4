package entry

import "context"

// Repository is the persistence port for entries. Implementations must keep
// the metadata payload consistent with the stored category.
type Repository interface {
	Create(ctx context.Context, e *Entry) error
	GetByID(ctx context.Context, id string) (*Entry, error)
	GetBySlug(ctx context.Context, slug string) (*Entry, error)
	// List returns entries sorted by date descending. When publishedOnly is
	// true, drafts are excluded.
	List(ctx context.Context, publishedOnly bool) ([]*Entry, error)
	Update(ctx context.Context, e *Entry) error
	Delete(ctx context.Context, id string) error
	// IncrementLikes atomically bumps the like counter and returns the new
	// count.
	IncrementLikes(ctx context.Context, id string) (int, error)
	SetCommentsCount(ctx context.Context, id string, count int) error
	SlugExists(ctx context.Context, slug string) (bool, error)
}
