package entry

import "context"

// Service is the application port for entry operations.
type Service interface {
	Create(ctx context.Context, req CreateEntryReq) (*EntryResp, error)
	GetByID(ctx context.Context, id string) (*EntryResp, error)
	GetBySlug(ctx context.Context, slug string) (*EntryResp, error)
	// List returns published entries; includeDrafts widens it to everything.
	List(ctx context.Context, includeDrafts bool) ([]*EntryResp, error)
	Update(ctx context.Context, id string, req UpdateEntryReq) (*EntryResp, error)
	Delete(ctx context.Context, id string) error
	Like(ctx context.Context, id string) (*LikeResp, error)
}
