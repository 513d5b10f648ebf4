package entry

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"

	"atelier-backend/internal/shared/utils"
)

// CreateEntryReq is the request body for POST /entries. All fields are draft
// fields; the store assigns id and slug and fills defaults.
//
// All four variant payloads are accepted so the authoring surface can submit
// its form state verbatim, but only the one matching Category is persisted.
type CreateEntryReq struct {
	Title     string     `json:"title"`
	Excerpt   string     `json:"excerpt"`
	Content   string     `json:"content"`
	Category  Category   `json:"category"`
	Date      *time.Time `json:"date"`
	ImageURL  string     `json:"imageUrl"`
	Author    *Author    `json:"author"`
	Published *bool      `json:"published"`

	BookInfo    *BookInfo    `json:"bookInfo"`
	ProjectInfo *ProjectInfo `json:"projectInfo"`
	ThoughtInfo *ThoughtInfo `json:"thoughtInfo"`
	WritingInfo *WritingInfo `json:"writingInfo"`
}

func (r CreateEntryReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Category,
			validation.Required.Error("category is required"),
			validation.By(validCategory),
		),
		validation.Field(&r.BookInfo),
		validation.Field(&r.ProjectInfo),
	)
}

// Metadata returns the variant matching the requested category, normalized
// with sensible defaults. Variants for other categories are ignored.
func (r CreateEntryReq) Metadata() Metadata {
	return pickMetadata(r.Category, r.BookInfo, r.ProjectInfo, r.ThoughtInfo, r.WritingInfo)
}

// UpdateEntryReq is the request body for PUT /entries/{id}. Nil fields are
// left unchanged. There is deliberately no slug field: the slug is permanent
// after first assignment.
type UpdateEntryReq struct {
	Title     *string   `json:"title"`
	Excerpt   *string   `json:"excerpt"`
	Content   *string   `json:"content"`
	Category  *Category `json:"category"`
	ImageURL  *string   `json:"imageUrl"`
	Author    *Author   `json:"author"`
	Published *bool     `json:"published"`

	BookInfo    *BookInfo    `json:"bookInfo"`
	ProjectInfo *ProjectInfo `json:"projectInfo"`
	ThoughtInfo *ThoughtInfo `json:"thoughtInfo"`
	WritingInfo *WritingInfo `json:"writingInfo"`
}

func (r UpdateEntryReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Category,
			validation.By(func(value interface{}) error {
				c, _ := value.(*Category)
				if c == nil {
					return nil
				}
				return validCategory(*c)
			}),
		),
		validation.Field(&r.BookInfo),
		validation.Field(&r.ProjectInfo),
	)
}

// Metadata returns the variant for the given category, when the request
// carries one. Returns nil when the payload should stay untouched.
func (r UpdateEntryReq) Metadata(c Category) Metadata {
	switch c {
	case CategoryLibrary:
		if r.BookInfo == nil {
			return nil
		}
	case CategoryProject:
		if r.ProjectInfo == nil {
			return nil
		}
	case CategoryThought:
		if r.ThoughtInfo == nil {
			return nil
		}
	case CategoryWriting:
		if r.WritingInfo == nil {
			return nil
		}
	}
	return pickMetadata(c, r.BookInfo, r.ProjectInfo, r.ThoughtInfo, r.WritingInfo)
}

func pickMetadata(c Category, book *BookInfo, project *ProjectInfo, thought *ThoughtInfo, writing *WritingInfo) Metadata {
	switch c {
	case CategoryLibrary:
		if book == nil {
			return BookInfo{Status: BookStatusRead}
		}
		b := *book
		if !b.Status.IsValid() {
			b.Status = BookStatusRead
		}
		return b
	case CategoryProject:
		if project == nil {
			return ProjectInfo{Status: ProjectStatusInProgress}
		}
		p := *project
		if !p.Status.IsValid() {
			p.Status = ProjectStatusInProgress
		}
		return p
	case CategoryWriting:
		if writing == nil {
			return WritingInfo{}
		}
		return *writing
	default:
		if thought == nil {
			return ThoughtInfo{}
		}
		return *thought
	}
}

func validCategory(value interface{}) error {
	c, _ := value.(Category)
	if !c.IsValid() {
		return ErrInvalidCategory
	}
	return nil
}

// Validate keeps book ratings inside the 0..10 scale.
func (b BookInfo) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.Rating, validation.By(func(interface{}) error {
			if b.Rating.LessThan(decimal.Zero) || b.Rating.GreaterThan(decimal.NewFromInt(10)) {
				return ErrInvalidRating
			}
			return nil
		})),
	)
}

// Validate rejects unknown project statuses (an empty status is normalized
// later, not rejected).
func (p ProjectInfo) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Status, validation.By(func(interface{}) error {
			if p.Status != "" && !p.Status.IsValid() {
				return ErrInvalidProjectStatus
			}
			return nil
		})),
	)
}

// EntryResp is the wire shape of an entry: author flattened, exactly one
// variant payload nested, date as the absolute timestamp plus its localized
// display form.
type EntryResp struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Excerpt       string    `json:"excerpt"`
	Content       string    `json:"content"`
	Category      Category  `json:"category"`
	Date          time.Time `json:"date"`
	DisplayDate   string    `json:"displayDate"`
	ReadTime      string    `json:"readTime"`
	ImageURL      string    `json:"imageUrl"`
	AuthorName    string    `json:"authorName"`
	AuthorRole    string    `json:"authorRole"`
	AuthorAvatar  string    `json:"authorAvatar"`
	AuthorEmail   string    `json:"authorEmail"`
	AuthorBio     string    `json:"authorBio"`
	Likes         int       `json:"likes"`
	CommentsCount int       `json:"commentsCount"`
	Published     bool      `json:"published"`

	BookInfo    *BookInfo    `json:"bookInfo,omitempty"`
	ProjectInfo *ProjectInfo `json:"projectInfo,omitempty"`
	ThoughtInfo *ThoughtInfo `json:"thoughtInfo,omitempty"`
	WritingInfo *WritingInfo `json:"writingInfo,omitempty"`
}

// ToResponse maps an Entry to its wire shape.
func (e *Entry) ToResponse() *EntryResp {
	resp := &EntryResp{
		ID:            e.ID,
		Title:         e.Title,
		Slug:          e.Slug,
		Excerpt:       e.Excerpt,
		Content:       e.Content,
		Category:      e.Category(),
		Date:          e.Date,
		DisplayDate:   utils.FormatDisplayDate(e.Date),
		ReadTime:      e.ReadTime,
		ImageURL:      e.ImageURL,
		AuthorName:    e.Author.Name,
		AuthorRole:    e.Author.Role,
		AuthorAvatar:  e.Author.Avatar,
		AuthorEmail:   e.Author.Email,
		AuthorBio:     e.Author.Bio,
		Likes:         e.Likes,
		CommentsCount: e.CommentsCount,
		Published:     e.Published,
	}

	switch v := e.Meta.(type) {
	case BookInfo:
		resp.BookInfo = &v
	case ProjectInfo:
		resp.ProjectInfo = &v
	case ThoughtInfo:
		resp.ThoughtInfo = &v
	case WritingInfo:
		resp.WritingInfo = &v
	}

	return resp
}

// LikeResp is the wire shape of POST /entries/{id}/like.
type LikeResp struct {
	Likes int `json:"likes"`
}
