package comment

import "context"

// Repository is the persistence port for comments.
type Repository interface {
	Create(ctx context.Context, c *Comment) error
	GetByID(ctx context.Context, id string) (*Comment, error)
	// ListByEntry returns top-level comments in creation order, replies
	// attached to their parent in creation order.
	ListByEntry(ctx context.Context, entryID string) ([]*Comment, error)
	CountByEntry(ctx context.Context, entryID string) (int, error)
	DeleteByEntry(ctx context.Context, entryID string) error
	IncrementLikes(ctx context.Context, id string) (int, error)
}
