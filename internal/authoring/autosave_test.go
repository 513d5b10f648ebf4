package authoring

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelier-backend/internal/domains/entry"
	"atelier-backend/internal/editor"
)

// fakeSaver records create/update calls and can fail or stall on demand.
type fakeSaver struct {
	mu       sync.Mutex
	creates  int
	updates  int
	failures int
	delay    time.Duration

	lastUpdatePublished *bool
}

func (f *fakeSaver) Create(_ context.Context, req entry.CreateEntryReq) (*entry.EntryResp, error) {
	f.mu.Lock()
	delay := f.delay
	fail := f.failures > 0
	if fail {
		f.failures--
	}
	f.mu.Unlock()

	time.Sleep(delay)
	if fail {
		return nil, errors.New("store down")
	}

	f.mu.Lock()
	f.creates++
	f.mu.Unlock()

	published := false
	if req.Published != nil {
		published = *req.Published
	}
	return &entry.EntryResp{ID: "assigned-id", Title: req.Title, Published: published}, nil
}

func (f *fakeSaver) Update(_ context.Context, id string, req entry.UpdateEntryReq) (*entry.EntryResp, error) {
	f.mu.Lock()
	delay := f.delay
	fail := f.failures > 0
	if fail {
		f.failures--
	}
	f.mu.Unlock()

	time.Sleep(delay)
	if fail {
		return nil, errors.New("store down")
	}

	f.mu.Lock()
	f.updates++
	f.lastUpdatePublished = req.Published
	f.mu.Unlock()
	return &entry.EntryResp{ID: id}, nil
}

func (f *fakeSaver) counts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.creates, f.updates
}

func startScheduler(t *testing.T, s *Session, saver *fakeSaver, interval time.Duration) *Scheduler {
	t.Helper()
	sched := NewScheduler(s, saver, interval, 10)
	go sched.Run(context.Background())
	t.Cleanup(sched.Close)
	return sched
}

func typeContent(s *Session, text string) {
	s.Edit(editor.InsertText(text))
}

func TestAutosaveSkipsBelowThreshold(t *testing.T) {
	session := NewSession(entry.CategoryWriting)
	typeContent(session, "curto") // 5 chars, threshold is 10

	saver := &fakeSaver{}
	startScheduler(t, session, saver, 5*time.Millisecond)

	time.Sleep(60 * time.Millisecond)
	creates, updates := saver.counts()
	assert.Zero(t, creates)
	assert.Zero(t, updates)
	assert.Empty(t, session.EntryID())
}

func TestAutosaveCreatesThenUpdates(t *testing.T) {
	session := NewSession(entry.CategoryWriting)
	typeContent(session, "conteúdo longo o suficiente para salvar")

	saver := &fakeSaver{}
	startScheduler(t, session, saver, 5*time.Millisecond)

	require.Eventually(t, func() bool {
		c, _ := saver.counts()
		return c == 1
	}, time.Second, 2*time.Millisecond, "first save should create")
	assert.Equal(t, "assigned-id", session.EntryID())

	typeContent(session, " e mais texto depois do primeiro save")
	require.Eventually(t, func() bool {
		_, u := saver.counts()
		return u >= 1
	}, time.Second, 2*time.Millisecond, "second save should update")

	creates, _ := saver.counts()
	assert.Equal(t, 1, creates, "the id transition happens exactly once")
}

func TestAutosaveCleanDraftIsNotResaved(t *testing.T) {
	session := NewSession(entry.CategoryWriting)
	typeContent(session, "conteúdo longo o suficiente para salvar")

	saver := &fakeSaver{}
	startScheduler(t, session, saver, 5*time.Millisecond)

	require.Eventually(t, func() bool {
		c, _ := saver.counts()
		return c == 1
	}, time.Second, 2*time.Millisecond)

	// No edits: the scheduler keeps ticking but never saves again.
	time.Sleep(50 * time.Millisecond)
	creates, updates := saver.counts()
	assert.Equal(t, 1, creates)
	assert.Zero(t, updates)
}

func TestAutosaveSingleFlight(t *testing.T) {
	session := NewSession(entry.CategoryWriting)
	typeContent(session, "conteúdo longo o suficiente para salvar")

	saver := &fakeSaver{delay: 80 * time.Millisecond}
	startScheduler(t, session, saver, 5*time.Millisecond)

	// Many ticks fire while the first save is still running; only one save
	// may be in flight.
	time.Sleep(60 * time.Millisecond)
	creates, updates := saver.counts()
	assert.Zero(t, creates+updates, "slow save still in flight")

	require.Eventually(t, func() bool {
		c, u := saver.counts()
		return c+u == 1
	}, time.Second, 5*time.Millisecond)
}

func TestAutosaveFailureRetriesNextTick(t *testing.T) {
	session := NewSession(entry.CategoryWriting)
	typeContent(session, "conteúdo longo o suficiente para salvar")

	saver := &fakeSaver{failures: 1}
	startScheduler(t, session, saver, 5*time.Millisecond)

	require.Eventually(t, func() bool {
		c, _ := saver.counts()
		return c == 1
	}, time.Second, 2*time.Millisecond, "retry after failure should succeed")
	assert.Equal(t, "assigned-id", session.EntryID())
}

func TestPublishWaitsForInFlightSave(t *testing.T) {
	session := NewSession(entry.CategoryWriting)
	session.SetTitle("Ensaio em progresso")
	typeContent(session, "conteúdo longo o suficiente para salvar")

	saver := &fakeSaver{delay: 50 * time.Millisecond}
	sched := startScheduler(t, session, saver, 5*time.Millisecond)

	// Let a slow autosave start.
	time.Sleep(15 * time.Millisecond)

	resp, err := sched.Publish(context.Background())
	require.NoError(t, err)
	require.NotNil(t, resp)

	creates, updates := saver.counts()
	assert.Equal(t, 1, creates, "autosave created the entry")
	assert.Equal(t, 1, updates, "publish updated it afterwards")

	saver.mu.Lock()
	published := saver.lastUpdatePublished
	saver.mu.Unlock()
	require.NotNil(t, published)
	assert.True(t, *published)
}

func TestPublishEmptyDraftFails(t *testing.T) {
	session := NewSession(entry.CategoryWriting)
	saver := &fakeSaver{}
	sched := NewScheduler(session, saver, time.Hour, 10)
	go sched.Run(context.Background())
	defer sched.Close()

	_, err := sched.Publish(context.Background())
	assert.ErrorIs(t, err, ErrNothingToPublish)
}

func TestPublishTitledDraftWithoutContent(t *testing.T) {
	session := NewSession(entry.CategoryWriting)
	session.SetTitle("Só o título")

	saver := &fakeSaver{}
	sched := NewScheduler(session, saver, time.Hour, 10)
	go sched.Run(context.Background())
	defer sched.Close()

	resp, err := sched.Publish(context.Background())
	require.NoError(t, err)
	assert.True(t, resp.Published)
}

func TestPublishExcludesConcurrentAutosave(t *testing.T) {
	session := NewSession(entry.CategoryWriting)
	session.SetTitle("Ensaio")
	typeContent(session, "conteúdo longo o suficiente para salvar")

	// The publish save is slower than the tick interval: every tick that
	// fires during it must be skipped, or a second create would slip in.
	saver := &fakeSaver{delay: 100 * time.Millisecond}
	sched := NewScheduler(session, saver, 20*time.Millisecond, 10)
	go sched.Run(context.Background())
	t.Cleanup(sched.Close)

	resp, err := sched.Publish(context.Background())
	require.NoError(t, err)
	assert.True(t, resp.Published)

	creates, updates := saver.counts()
	assert.Equal(t, 1, creates, "publish is the only write for an unsaved draft")
	assert.Zero(t, updates)

	// Publishing ends the session: later edits are never autosaved.
	typeContent(session, " texto escrito depois de publicar")
	time.Sleep(80 * time.Millisecond)
	creates, updates = saver.counts()
	assert.Equal(t, 1, creates)
	assert.Zero(t, updates)
}

func TestPublishWritingDraftNeedsTitle(t *testing.T) {
	session := NewSession(entry.CategoryWriting)
	typeContent(session, "conteúdo longo o suficiente para salvar")

	saver := &fakeSaver{}
	sched := NewScheduler(session, saver, time.Hour, 10)
	go sched.Run(context.Background())
	defer sched.Close()

	_, err := sched.Publish(context.Background())
	assert.ErrorIs(t, err, ErrTitleRequired)
}

func TestPublishThoughtDerivesTitle(t *testing.T) {
	session := NewSession(entry.CategoryThought)
	session.SetThoughtInfo(entry.ThoughtInfo{CoreInsight: "Escrever é reescrever."})
	typeContent(session, "conteúdo longo o suficiente para salvar")

	saver := &fakeSaver{}
	sched := NewScheduler(session, saver, time.Hour, 10)
	go sched.Run(context.Background())
	defer sched.Close()

	resp, err := sched.Publish(context.Background())
	require.NoError(t, err)
	assert.True(t, resp.Published)
}

func TestCloseStopsTickerWithoutAbortingInFlight(t *testing.T) {
	session := NewSession(entry.CategoryWriting)
	typeContent(session, "conteúdo longo o suficiente para salvar")

	saver := &fakeSaver{delay: 40 * time.Millisecond}
	sched := NewScheduler(session, saver, 5*time.Millisecond, 10)
	go sched.Run(context.Background())

	// Close while the first save is still running.
	time.Sleep(15 * time.Millisecond)
	sched.Close()

	// The in-flight save finishes on its own.
	require.Eventually(t, func() bool {
		c, _ := saver.counts()
		return c == 1
	}, time.Second, 5*time.Millisecond)

	// And nothing saves after that.
	typeContent(session, " edição tardia")
	time.Sleep(40 * time.Millisecond)
	creates, updates := saver.counts()
	assert.Equal(t, 1, creates)
	assert.Zero(t, updates)
}
