package container

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelier-backend/internal/authoring"
	"atelier-backend/internal/config"
	commentRepo "atelier-backend/internal/domains/comment/repository"
	commentService "atelier-backend/internal/domains/comment/service"
	"atelier-backend/internal/domains/entry"
	entryRepo "atelier-backend/internal/domains/entry/repository"
	entryService "atelier-backend/internal/domains/entry/service"
)

func TestNewAutosaveSchedulerUsesConfiguredCadence(t *testing.T) {
	entries := entryRepo.NewMemoryRepository()
	comments := commentRepo.NewMemoryRepository()
	commentSvc := commentService.NewCommentService(comments, entries)

	c := &Container{
		Config: &config.Config{
			Autosave: config.AutosaveConfig{
				Interval:   time.Hour, // never ticks during the test
				MinContent: 10,
			},
		},
		EntryRepo:      entries,
		CommentRepo:    comments,
		CommentService: commentSvc,
		EntryService:   entryService.NewEntryService(entries, commentSvc),
	}

	session := authoring.NewSession(entry.CategoryWriting)
	session.SetTitle("Ensaio agendado")

	sched := c.NewAutosaveScheduler(session)
	require.NotNil(t, sched)
	go sched.Run(context.Background())
	defer sched.Close()

	resp, err := sched.Publish(context.Background())
	require.NoError(t, err)
	assert.True(t, resp.Published)

	saved, err := c.EntryService.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ensaio agendado", saved.Title)
}
