package comment

import "time"

// Comment is one reader comment on an entry. Replies nest exactly one level:
// a reply's ParentID points at a top-level comment and replies never carry
// replies of their own.
type Comment struct {
	ID           string
	EntryID      string
	ParentID     string // empty for top-level comments
	AuthorName   string
	AuthorAvatar string
	Text         string
	Likes        int
	IsAuthor     bool
	CreatedAt    time.Time

	Replies []*Comment
}
