package authoring

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"atelier-backend/internal/domains/entry"
	"atelier-backend/pkg/logger"
)

// Saver persists drafts. The entry service satisfies it.
type Saver interface {
	Create(ctx context.Context, req entry.CreateEntryReq) (*entry.EntryResp, error)
	Update(ctx context.Context, id string, req entry.UpdateEntryReq) (*entry.EntryResp, error)
}

var (
	// ErrNothingToPublish is returned when Publish is called on a draft
	// below the autosave threshold with no prior save.
	ErrNothingToPublish = errors.New("draft has no content to publish")
	// ErrTitleRequired is returned when a draft cannot produce a title.
	// Biblioteca and Pensamento derive one from their metadata; Escrita
	// and Projeto need a typed title.
	ErrTitleRequired = errors.New("a title is required to publish")
)

// Scheduler drives autosave for one session. Every interval it snapshots
// the session and saves when the draft changed and holds enough content.
// Saves are single-flight: a tick that fires while a save is running is
// skipped. The first successful save assigns the entry id; every later save
// updates the same entry.
type Scheduler struct {
	session  *Session
	saver    Saver
	interval time.Duration
	minChars int

	mu         sync.Mutex
	savedRev   uint64
	hasSaved   bool
	inFlight   bool
	flightDone chan struct{}

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewScheduler builds an autosave scheduler. It does not start ticking
// until Run is called.
func NewScheduler(session *Session, saver Saver, interval time.Duration, minChars int) *Scheduler {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if minChars <= 0 {
		minChars = 10
	}
	return &Scheduler{
		session:  session,
		saver:    saver,
		interval: interval,
		minChars: minChars,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Run ticks until Close is called or the context ends. Call it on its own
// goroutine.
func (s *Scheduler) Run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.tick(ctx)
		case <-s.stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Close stops the ticker. An in-flight save is left to finish on its own.
func (s *Scheduler) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
	<-s.done
}

// Publish waits for any in-flight autosave, then saves synchronously with
// published set. It holds the single-flight slot for the whole save, so no
// autosave can overlap it. A successful publish stops the ticker: the
// session is done.
func (s *Scheduler) Publish(ctx context.Context) (*entry.EntryResp, error) {
	s.acquireFlight()
	defer s.releaseFlight()

	draft, rev := s.session.Snapshot()
	if s.session.EntryID() == "" && draft.ContentLength() < s.minChars && draft.Title == "" {
		return nil, ErrNothingToPublish
	}
	if strings.TrimSpace(entry.DeriveTitle(draft.Title, draft.Meta)) == "" {
		return nil, ErrTitleRequired
	}

	published := true
	resp, err := s.save(ctx, draft, &published)
	if err != nil {
		return nil, err
	}
	s.markSaved(rev)
	s.stopOnce.Do(func() { close(s.stop) })
	return resp, nil
}

// tick runs one autosave attempt. Failures are logged and retried on the
// next tick; the draft stays dirty.
func (s *Scheduler) tick(ctx context.Context) {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return
	}

	draft, rev := s.session.Snapshot()
	if s.hasSaved && rev == s.savedRev {
		s.mu.Unlock()
		return
	}
	if draft.ContentLength() < s.minChars {
		s.mu.Unlock()
		return
	}

	s.inFlight = true
	s.flightDone = make(chan struct{})
	s.mu.Unlock()

	go func() {
		defer s.releaseFlight()

		if _, err := s.save(ctx, draft, nil); err != nil {
			logger.Warn("autosave failed", map[string]interface{}{
				"entry_id": draft.EntryID,
				"error":    err.Error(),
			})
			return
		}
		s.markSaved(rev)
	}()
}

func (s *Scheduler) save(ctx context.Context, draft Draft, published *bool) (*entry.EntryResp, error) {
	if draft.EntryID == "" {
		create := false
		if published != nil {
			create = *published
		}
		resp, err := s.saver.Create(ctx, draft.CreateRequest(create))
		if err != nil {
			return nil, err
		}
		s.session.ConfirmSaved(resp.ID)
		return resp, nil
	}
	return s.saver.Update(ctx, draft.EntryID, draft.UpdateRequest(published))
}

func (s *Scheduler) markSaved(rev uint64) {
	s.mu.Lock()
	if !s.hasSaved || rev > s.savedRev {
		s.savedRev = rev
	}
	s.hasSaved = true
	s.mu.Unlock()
}

// acquireFlight blocks until the caller owns the single-flight slot.
func (s *Scheduler) acquireFlight() {
	for {
		s.mu.Lock()
		if !s.inFlight {
			s.inFlight = true
			s.flightDone = make(chan struct{})
			s.mu.Unlock()
			return
		}
		ch := s.flightDone
		s.mu.Unlock()
		<-ch
	}
}

func (s *Scheduler) releaseFlight() {
	s.mu.Lock()
	s.inFlight = false
	close(s.flightDone)
	s.mu.Unlock()
}
