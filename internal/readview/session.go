package readview

import (
	"context"
	"errors"
	"strings"
	"sync"

	"atelier-backend/internal/domains/comment"
	"atelier-backend/internal/domains/entry"
)

var (
	// ErrAlreadyLiked signals a second like of the same entry in one
	// reading session. The counter on the entry is unaffected.
	ErrAlreadyLiked = errors.New("entry already liked in this session")
	// ErrEmptyComment rejects blank comment text before it reaches the
	// store.
	ErrEmptyComment = errors.New("comment text is empty")
)

// Session tracks one reader's interactions. Likes are deduplicated per
// session only; the store accepts any number of likes across sessions.
type Session struct {
	entries  entry.Service
	comments comment.Service

	mu    sync.Mutex
	liked map[string]bool
}

func NewSession(entries entry.Service, comments comment.Service) *Session {
	return &Session{
		entries:  entries,
		comments: comments,
		liked:    make(map[string]bool),
	}
}

// LikeOnce likes an entry at most once per session.
func (s *Session) LikeOnce(ctx context.Context, entryID string) (*entry.LikeResp, error) {
	s.mu.Lock()
	if s.liked[entryID] {
		s.mu.Unlock()
		return nil, ErrAlreadyLiked
	}
	s.mu.Unlock()

	resp, err := s.entries.Like(ctx, entryID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.liked[entryID] = true
	s.mu.Unlock()
	return resp, nil
}

// HasLiked reports whether this session already liked the entry.
func (s *Session) HasLiked(entryID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.liked[entryID]
}

// SubmitComment guards against blank text, then posts the comment.
func (s *Session) SubmitComment(ctx context.Context, entryID string, req comment.AddCommentReq) (*comment.CommentResp, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, ErrEmptyComment
	}
	return s.comments.Add(ctx, entryID, req)
}
