package entry

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category identifies the kind of entry. Wire values are the Portuguese
// strings the read views and the original data use.
type Category string

const (
	CategoryThought Category = "Pensamento"
	CategoryWriting Category = "Escrita"
	CategoryLibrary Category = "Biblioteca"
	CategoryProject Category = "Projeto"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryThought, CategoryWriting, CategoryLibrary, CategoryProject:
		return true
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

// BookStatus is the reading status of a library entry.
type BookStatus string

const (
	BookStatusReading    BookStatus = "Lendo"
	BookStatusRead       BookStatus = "Lido"
	BookStatusWantToRead BookStatus = "Quero Ler"
)

func (s BookStatus) IsValid() bool {
	switch s {
	case BookStatusReading, BookStatusRead, BookStatusWantToRead:
		return true
	}
	return false
}

// ProjectStatus is the development status of a project entry.
type ProjectStatus string

const (
	ProjectStatusInProgress ProjectStatus = "Em Desenvolvimento"
	ProjectStatusDone       ProjectStatus = "Concluído"
	ProjectStatusPaused     ProjectStatus = "Pausado"
)

func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusInProgress, ProjectStatusDone, ProjectStatusPaused:
		return true
	}
	return false
}

// Author is embedded in every entry by value; it is not an owned entity.
type Author struct {
	Name   string `json:"name"`
	Role   string `json:"role"`
	Avatar string `json:"avatar"`
	Email  string `json:"email"`
	Bio    string `json:"bio"`
}

// DefaultAuthor is the fallback applied when a draft arrives without author
// details.
var DefaultAuthor = Author{
	Name:   "Jefferson Vasconcelos",
	Role:   "Escritor e Pesquisador",
	Avatar: "https://api.dicebear.com/7.x/avataaars/svg?seed=Jefferson",
	Email:  "contato@jefferson.com",
	Bio:    "Explorando a intersecção entre pensamento clássico e modernidade tecnológica.",
}

// DefaultImageURL is the fallback cover for entries saved without one.
const DefaultImageURL = "https://images.unsplash.com/photo-1516414447565-b14be0adf13e?ixlib=rb-4.0.3&auto=format&fit=crop&w=1000&q=80"

// Metadata is the category-specific payload of an entry. It is a sealed
// union: exactly one of BookInfo, ProjectInfo, ThoughtInfo or WritingInfo,
// and the variant determines the entry's category. An entry carrying two
// populated variants is unrepresentable.
type Metadata interface {
	Category() Category
	sealedMetadata()
}

// BookInfo is the Biblioteca variant.
type BookInfo struct {
	Title    string          `json:"title"`
	Author   string          `json:"author"`
	Rating   decimal.Decimal `json:"rating"` // 0..10, tenth precision
	Status   BookStatus      `json:"status"`
	CoverURL string          `json:"coverUrl,omitempty"`
}

func (BookInfo) Category() Category { return CategoryLibrary }
func (BookInfo) sealedMetadata()    {}

// ProjectInfo is the Projeto variant.
type ProjectInfo struct {
	Status    ProjectStatus `json:"status"`
	TechStack []string      `json:"techStack"`
	Link      string        `json:"link,omitempty"`
	Github    string        `json:"github,omitempty"`
}

func (ProjectInfo) Category() Category { return CategoryProject }
func (ProjectInfo) sealedMetadata()    {}

// ThoughtInfo is the Pensamento variant.
type ThoughtInfo struct {
	CoreInsight       string `json:"coreInsight"`
	InspirationSource string `json:"inspirationSource,omitempty"`
}

func (ThoughtInfo) Category() Category { return CategoryThought }
func (ThoughtInfo) sealedMetadata()    {}

// WritingInfo is the Escrita variant.
type WritingInfo struct {
	Genre          string `json:"genre"`
	TargetAudience string `json:"targetAudience,omitempty"`
}

func (WritingInfo) Category() Category { return CategoryWriting }
func (WritingInfo) sealedMetadata()    {}

// EmptyMetadata returns the zero variant for a category, so a fresh draft
// always carries a well-typed payload.
func EmptyMetadata(c Category) Metadata {
	switch c {
	case CategoryLibrary:
		return BookInfo{}
	case CategoryProject:
		return ProjectInfo{}
	case CategoryWriting:
		return WritingInfo{}
	default:
		return ThoughtInfo{}
	}
}

// Entry is one authored content record.
type Entry struct {
	ID            string
	Title         string
	Slug          string // unique, assigned once at first persistence
	Excerpt       string
	Content       string // serialized rich-text markup
	Date          time.Time
	ReadTime      string
	ImageURL      string
	Author        Author
	Likes         int
	CommentsCount int
	Published     bool
	Meta          Metadata
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Category of the entry, given by its metadata variant.
func (e *Entry) Category() Category {
	if e.Meta == nil {
		return CategoryThought
	}
	return e.Meta.Category()
}

// IsDraft reports whether the entry is visible only to the author.
func (e *Entry) IsDraft() bool {
	return !e.Published
}
