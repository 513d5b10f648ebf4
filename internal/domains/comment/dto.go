package comment

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"atelier-backend/internal/shared/utils"
)

// AddCommentReq is the request body for POST /entries/{id}/comments.
type AddCommentReq struct {
	AuthorName   string `json:"authorName"`
	AuthorAvatar string `json:"authorAvatar"`
	Text         string `json:"text"`
	ParentID     string `json:"parentId"`
	IsAuthor     bool   `json:"isAuthor"`
}

func (r AddCommentReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Text, validation.Required.Error("text is required"), validation.Length(1, 5000)),
		validation.Field(&r.AuthorName, validation.Required.Error("author name is required"), validation.Length(1, 120)),
	)
}

// CommentResp is the wire shape of a comment, replies nested one level. The
// timestamp goes out as date plus its localized display form, like entries.
type CommentResp struct {
	ID           string         `json:"id"`
	EntryID      string         `json:"entryId"`
	ParentID     string         `json:"parentId,omitempty"`
	AuthorName   string         `json:"authorName"`
	AuthorAvatar string         `json:"authorAvatar"`
	Text         string         `json:"text"`
	Likes        int            `json:"likes"`
	IsAuthor     bool           `json:"isAuthor"`
	Date         time.Time      `json:"date"`
	DisplayDate  string         `json:"displayDate"`
	Replies      []*CommentResp `json:"replies"`
}

// ToResponse maps a comment and its replies to the wire shape.
func (c *Comment) ToResponse() *CommentResp {
	resp := &CommentResp{
		ID:           c.ID,
		EntryID:      c.EntryID,
		ParentID:     c.ParentID,
		AuthorName:   c.AuthorName,
		AuthorAvatar: c.AuthorAvatar,
		Text:         c.Text,
		Likes:        c.Likes,
		IsAuthor:     c.IsAuthor,
		Date:         c.CreatedAt,
		DisplayDate:  utils.FormatDisplayDate(c.CreatedAt),
		Replies:      make([]*CommentResp, 0, len(c.Replies)),
	}
	for _, reply := range c.Replies {
		resp.Replies = append(resp.Replies, reply.ToResponse())
	}
	return resp
}
