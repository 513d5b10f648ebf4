package readview

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelier-backend/internal/domains/comment"
	commentRepo "atelier-backend/internal/domains/comment/repository"
	commentService "atelier-backend/internal/domains/comment/service"
	"atelier-backend/internal/domains/entry"
	entryRepo "atelier-backend/internal/domains/entry/repository"
	entryService "atelier-backend/internal/domains/entry/service"
)

func setup(t *testing.T) (*Session, string) {
	t.Helper()
	entries := entryRepo.NewMemoryRepository()
	comments := commentRepo.NewMemoryRepository()
	commentSvc := commentService.NewCommentService(comments, entries)
	entrySvc := entryService.NewEntryService(entries, commentSvc)

	published := true
	created, err := entrySvc.Create(context.Background(), entry.CreateEntryReq{
		Category:  entry.CategoryWriting,
		Title:     "Ensaio público",
		Published: &published,
	})
	require.NoError(t, err)
	return NewSession(entrySvc, commentSvc), created.ID
}

func TestLikeOncePerSession(t *testing.T) {
	session, entryID := setup(t)
	ctx := context.Background()

	resp, err := session.LikeOnce(ctx, entryID)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Likes)
	assert.True(t, session.HasLiked(entryID))

	_, err = session.LikeOnce(ctx, entryID)
	assert.ErrorIs(t, err, ErrAlreadyLiked)
}

func TestSeparateSessionsLikeIndependently(t *testing.T) {
	session, entryID := setup(t)
	ctx := context.Background()

	_, err := session.LikeOnce(ctx, entryID)
	require.NoError(t, err)

	other := NewSession(session.entries, session.comments)
	resp, err := other.LikeOnce(ctx, entryID)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Likes)
}

func TestFailedLikeDoesNotMarkSession(t *testing.T) {
	session, _ := setup(t)

	_, err := session.LikeOnce(context.Background(), "missing-id")
	require.Error(t, err)
	assert.False(t, session.HasLiked("missing-id"))
}

func TestSubmitCommentGuardsBlankText(t *testing.T) {
	session, entryID := setup(t)
	ctx := context.Background()

	_, err := session.SubmitComment(ctx, entryID, comment.AddCommentReq{AuthorName: "Ana", Text: "   "})
	assert.ErrorIs(t, err, ErrEmptyComment)

	resp, err := session.SubmitComment(ctx, entryID, comment.AddCommentReq{AuthorName: "Ana", Text: "gostei"})
	require.NoError(t, err)
	assert.Equal(t, "gostei", resp.Text)
}
