package authoring

import (
	"strings"
	"sync"

	"atelier-backend/internal/domains/entry"
	"atelier-backend/internal/editor"
	"atelier-backend/internal/shared/utils"
)

// Session is one authoring workspace: the draft's metadata fields, the
// rich-text surface, and the form state of every category. Switching
// categories never loses a form's values; only the active category's
// variant is persisted.
type Session struct {
	mu sync.Mutex

	entryID  string // empty until the first successful save
	title    string
	excerpt  string
	imageURL string
	category entry.Category

	book    entry.BookInfo
	project entry.ProjectInfo
	thought entry.ThoughtInfo
	writing entry.WritingInfo

	surface  *editor.Surface
	revision uint64
}

// NewSession starts a blank draft in the given category.
func NewSession(category entry.Category) *Session {
	if !category.IsValid() {
		category = entry.CategoryThought
	}
	return &Session{
		category: category,
		surface:  editor.NewSurface(),
		book:     entry.BookInfo{Status: entry.BookStatusRead},
		project:  entry.ProjectInfo{Status: entry.ProjectStatusInProgress},
	}
}

// NewSessionFrom opens an existing entry for editing.
func NewSessionFrom(resp *entry.EntryResp) *Session {
	s := NewSession(resp.Category)
	s.entryID = resp.ID
	s.title = resp.Title
	s.excerpt = resp.Excerpt
	s.imageURL = resp.ImageURL
	s.surface.Load(resp.Content)

	if resp.BookInfo != nil {
		s.book = *resp.BookInfo
	}
	if resp.ProjectInfo != nil {
		s.project = *resp.ProjectInfo
	}
	if resp.ThoughtInfo != nil {
		s.thought = *resp.ThoughtInfo
	}
	if resp.WritingInfo != nil {
		s.writing = *resp.WritingInfo
	}
	return s
}

// EntryID returns the persistent id, empty while the draft is unsaved.
func (s *Session) EntryID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entryID
}

func (s *Session) SetTitle(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.title = title
	s.revision++
}

func (s *Session) SetExcerpt(excerpt string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.excerpt = excerpt
	s.revision++
}

func (s *Session) SetImageURL(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.imageURL = url
	s.revision++
}

// SetCategory switches the active category. Form state of the previous
// category is retained.
func (s *Session) SetCategory(c entry.Category) {
	if !c.IsValid() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.category = c
	s.revision++
}

func (s *Session) Category() entry.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.category
}

func (s *Session) SetBookInfo(info entry.BookInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.book = info
	s.revision++
}

func (s *Session) SetProjectInfo(info entry.ProjectInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.project = info
	s.revision++
}

func (s *Session) SetThoughtInfo(info entry.ThoughtInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.thought = info
	s.revision++
}

func (s *Session) SetWritingInfo(info entry.WritingInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writing = info
	s.revision++
}

// Edit applies a command to the rich-text surface.
func (s *Session) Edit(cmd editor.Command) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.surface.Apply(cmd)
	s.revision++
}

// Undo reverts the last edit on the surface.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.surface.Undo() {
		s.revision++
		return true
	}
	return false
}

// Redo reapplies the last undone edit.
func (s *Session) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.surface.Redo() {
		s.revision++
		return true
	}
	return false
}

// Surface exposes the editing surface for selection moves and view state.
// The caller must not retain it across goroutines.
func (s *Session) Surface() *editor.Surface {
	return s.surface
}

// Snapshot captures the draft for saving, with the revision it was taken at.
func (s *Session) Snapshot() (Draft, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Draft{
		EntryID:  s.entryID,
		Title:    s.title,
		Excerpt:  s.excerpt,
		Content:  s.surface.HTML(),
		ImageURL: s.imageURL,
		Category: s.category,
		Meta:     s.activeMetaLocked(),
	}, s.revision
}

// ConfirmSaved records the id assigned by the store. The id is set exactly
// once; later saves update in place.
func (s *Session) ConfirmSaved(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entryID == "" {
		s.entryID = id
	}
}

func (s *Session) activeMetaLocked() entry.Metadata {
	switch s.category {
	case entry.CategoryLibrary:
		return s.book
	case entry.CategoryProject:
		return s.project
	case entry.CategoryWriting:
		return s.writing
	default:
		return s.thought
	}
}

// Draft is an immutable capture of the session, carrying only the active
// category's variant.
type Draft struct {
	EntryID  string
	Title    string
	Excerpt  string
	Content  string
	ImageURL string
	Category entry.Category
	Meta     entry.Metadata
}

// ContentLength is the draft's text length, markup excluded.
func (d Draft) ContentLength() int {
	return len([]rune(strings.TrimSpace(utils.StripTags(d.Content))))
}

// CreateRequest maps the draft to the create payload.
func (d Draft) CreateRequest(published bool) entry.CreateEntryReq {
	req := entry.CreateEntryReq{
		Title:     d.Title,
		Excerpt:   d.Excerpt,
		Content:   d.Content,
		Category:  d.Category,
		ImageURL:  d.ImageURL,
		Published: &published,
	}
	d.attachMeta(&req.BookInfo, &req.ProjectInfo, &req.ThoughtInfo, &req.WritingInfo)
	return req
}

// UpdateRequest maps the draft to the update payload. Every field is sent;
// autosave overwrites the whole draft each time.
func (d Draft) UpdateRequest(published *bool) entry.UpdateEntryReq {
	title, excerpt, content, imageURL := d.Title, d.Excerpt, d.Content, d.ImageURL
	category := d.Category
	req := entry.UpdateEntryReq{
		Title:     &title,
		Excerpt:   &excerpt,
		Content:   &content,
		Category:  &category,
		ImageURL:  &imageURL,
		Published: published,
	}
	d.attachMeta(&req.BookInfo, &req.ProjectInfo, &req.ThoughtInfo, &req.WritingInfo)
	return req
}

func (d Draft) attachMeta(book **entry.BookInfo, project **entry.ProjectInfo, thought **entry.ThoughtInfo, writing **entry.WritingInfo) {
	switch v := d.Meta.(type) {
	case entry.BookInfo:
		*book = &v
	case entry.ProjectInfo:
		*project = &v
	case entry.ThoughtInfo:
		*thought = &v
	case entry.WritingInfo:
		*writing = &v
	}
}
