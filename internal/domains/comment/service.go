package comment

import "context"

// Service is the application port for comment operations.
type Service interface {
	Add(ctx context.Context, entryID string, req AddCommentReq) (*CommentResp, error)
	ListByEntry(ctx context.Context, entryID string) ([]*CommentResp, error)
	Like(ctx context.Context, id string) (int, error)
	DeleteByEntry(ctx context.Context, entryID string) error
}
