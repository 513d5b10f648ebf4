package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelier-backend/internal/domains/comment"
	commentRepo "atelier-backend/internal/domains/comment/repository"
	"atelier-backend/internal/domains/entry"
	entryRepo "atelier-backend/internal/domains/entry/repository"
	entryService "atelier-backend/internal/domains/entry/service"
)

func setup(t *testing.T) (comment.Service, entry.Service, string) {
	t.Helper()
	entries := entryRepo.NewMemoryRepository()
	comments := commentRepo.NewMemoryRepository()
	commentSvc := NewCommentService(comments, entries)
	entrySvc := entryService.NewEntryService(entries, commentSvc)

	created, err := entrySvc.Create(context.Background(), entry.CreateEntryReq{
		Category: entry.CategoryWriting,
		Title:    "Texto comentável",
	})
	require.NoError(t, err)
	return commentSvc, entrySvc, created.ID
}

func TestAddCommentValidation(t *testing.T) {
	svc, _, entryID := setup(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, entryID, comment.AddCommentReq{AuthorName: "Ana"})
	assert.ErrorIs(t, err, comment.ErrValidation)

	_, err = svc.Add(ctx, entryID, comment.AddCommentReq{Text: "sem autor"})
	assert.ErrorIs(t, err, comment.ErrValidation)
}

func TestAddCommentUnknownEntry(t *testing.T) {
	svc, _, _ := setup(t)

	_, err := svc.Add(context.Background(), "missing", comment.AddCommentReq{AuthorName: "Ana", Text: "oi"})
	assert.ErrorIs(t, err, comment.ErrEntryNotFound)
}

func TestAddCommentRefreshesEntryCount(t *testing.T) {
	svc, entrySvc, entryID := setup(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, entryID, comment.AddCommentReq{AuthorName: "Ana", Text: "primeiro"})
	require.NoError(t, err)
	_, err = svc.Add(ctx, entryID, comment.AddCommentReq{AuthorName: "Bia", Text: "segundo"})
	require.NoError(t, err)

	resp, err := entrySvc.GetByID(ctx, entryID)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.CommentsCount)
}

func TestRepliesNestOneLevel(t *testing.T) {
	svc, _, entryID := setup(t)
	ctx := context.Background()

	parent, err := svc.Add(ctx, entryID, comment.AddCommentReq{AuthorName: "Ana", Text: "topo"})
	require.NoError(t, err)

	reply, err := svc.Add(ctx, entryID, comment.AddCommentReq{
		AuthorName: "Bia", Text: "resposta", ParentID: parent.ID,
	})
	require.NoError(t, err)

	// A reply to a reply is rejected.
	_, err = svc.Add(ctx, entryID, comment.AddCommentReq{
		AuthorName: "Caio", Text: "resposta da resposta", ParentID: reply.ID,
	})
	assert.ErrorIs(t, err, comment.ErrInvalidParent)

	list, err := svc.ListByEntry(ctx, entryID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Len(t, list[0].Replies, 1)
	assert.Equal(t, "resposta", list[0].Replies[0].Text)
	assert.Empty(t, list[0].Replies[0].Replies)
}

func TestListKeepsCreationOrder(t *testing.T) {
	svc, _, entryID := setup(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, entryID, comment.AddCommentReq{AuthorName: "Ana", Text: "primeiro"})
	require.NoError(t, err)
	_, err = svc.Add(ctx, entryID, comment.AddCommentReq{AuthorName: "Bia", Text: "segundo"})
	require.NoError(t, err)

	list, err := svc.ListByEntry(ctx, entryID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "primeiro", list[0].Text)
	assert.Equal(t, "segundo", list[1].Text)
}

func TestReplyMustBelongToSameEntry(t *testing.T) {
	svc, entrySvc, entryID := setup(t)
	ctx := context.Background()

	other, err := entrySvc.Create(ctx, entry.CreateEntryReq{Category: entry.CategoryWriting, Title: "outro"})
	require.NoError(t, err)

	parent, err := svc.Add(ctx, entryID, comment.AddCommentReq{AuthorName: "Ana", Text: "topo"})
	require.NoError(t, err)

	_, err = svc.Add(ctx, other.ID, comment.AddCommentReq{
		AuthorName: "Bia", Text: "cruzado", ParentID: parent.ID,
	})
	assert.ErrorIs(t, err, comment.ErrInvalidParent)
}
