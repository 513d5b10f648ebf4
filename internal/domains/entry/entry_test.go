package entry

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataDeterminesCategory(t *testing.T) {
	assert.Equal(t, CategoryLibrary, BookInfo{}.Category())
	assert.Equal(t, CategoryProject, ProjectInfo{}.Category())
	assert.Equal(t, CategoryThought, ThoughtInfo{}.Category())
	assert.Equal(t, CategoryWriting, WritingInfo{}.Category())

	e := &Entry{Meta: BookInfo{Title: "Meditations"}}
	assert.Equal(t, CategoryLibrary, e.Category())
}

func TestEntryWithoutMetaDefaultsToThought(t *testing.T) {
	e := &Entry{}
	assert.Equal(t, CategoryThought, e.Category())
}

func TestMetadataEnvelopeRoundTrip(t *testing.T) {
	book := BookInfo{
		Title:  "Oatmeal & Abs",
		Author: "Parker Klein",
		Rating: decimal.NewFromFloat(3.5),
		Status: BookStatusRead,
	}

	data, err := MarshalMetadata(book)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"category":"Biblioteca"`)
	assert.Contains(t, string(data), `"bookInfo"`)
	assert.NotContains(t, string(data), "projectInfo")

	decoded, err := UnmarshalMetadata(data)
	require.NoError(t, err)
	got, ok := decoded.(BookInfo)
	require.True(t, ok)
	assert.Equal(t, "Parker Klein", got.Author)
	assert.True(t, got.Rating.Equal(decimal.NewFromFloat(3.5)))
}

func TestUnmarshalMetadataMissingPayloadYieldsZeroVariant(t *testing.T) {
	decoded, err := UnmarshalMetadata([]byte(`{"category":"Projeto"}`))
	require.NoError(t, err)
	assert.Equal(t, ProjectInfo{}, decoded)
}

func TestUnmarshalMetadataUnknownCategory(t *testing.T) {
	_, err := UnmarshalMetadata([]byte(`{"category":"Receitas"}`))
	assert.Error(t, err)
}

func TestDeriveTitle(t *testing.T) {
	t.Run("keeps explicit title", func(t *testing.T) {
		got := DeriveTitle("Meu Ensaio", BookInfo{Title: "Ignored"})
		assert.Equal(t, "Meu Ensaio", got)
	})

	t.Run("library derives from book title", func(t *testing.T) {
		got := DeriveTitle("", BookInfo{Title: "Meditations"})
		assert.Equal(t, "Notas de Leitura: Meditations", got)
	})

	t.Run("library without book title", func(t *testing.T) {
		assert.Equal(t, "Notas de Leitura", DeriveTitle("", BookInfo{}))
	})

	t.Run("thought derives from insight", func(t *testing.T) {
		got := DeriveTitle("", ThoughtInfo{CoreInsight: "O silêncio ensina"})
		assert.Equal(t, "Reflexão: O silêncio ensina", got)
	})

	t.Run("long insight truncated at 50 runes", func(t *testing.T) {
		insight := strings.Repeat("á", 60)
		got := DeriveTitle("", ThoughtInfo{CoreInsight: insight})
		assert.Equal(t, "Reflexão: "+strings.Repeat("á", 50)+"...", got)
	})

	t.Run("empty thought", func(t *testing.T) {
		assert.Equal(t, "Nova Reflexão", DeriveTitle("", ThoughtInfo{}))
	})

	t.Run("writing stays empty", func(t *testing.T) {
		assert.Equal(t, "", DeriveTitle("", WritingInfo{}))
	})
}

func TestDeriveExcerpt(t *testing.T) {
	got := DeriveExcerpt("", BookInfo{Author: "Parker Klein", Status: BookStatusRead})
	assert.Equal(t, "Parker Klein - Lido", got)

	got = DeriveExcerpt("", BookInfo{Status: BookStatusReading})
	assert.Equal(t, "Autor desconhecido - Lendo", got)

	got = DeriveExcerpt("", ThoughtInfo{CoreInsight: "Insight central"})
	assert.Equal(t, "Insight central", got)

	got = DeriveExcerpt("Já tenho excerto", ThoughtInfo{CoreInsight: "other"})
	assert.Equal(t, "Já tenho excerto", got)
}

func TestCreateReqValidation(t *testing.T) {
	req := CreateEntryReq{Category: "Inválida"}
	assert.Error(t, req.Validate())

	req = CreateEntryReq{Category: CategoryThought}
	assert.NoError(t, req.Validate())

	req = CreateEntryReq{
		Category: CategoryLibrary,
		BookInfo: &BookInfo{Rating: decimal.NewFromInt(11)},
	}
	assert.Error(t, req.Validate())
}

func TestCreateReqMetadataIgnoresNonMatchingVariants(t *testing.T) {
	req := CreateEntryReq{
		Category:    CategoryThought,
		ThoughtInfo: &ThoughtInfo{CoreInsight: "keep"},
		BookInfo:    &BookInfo{Title: "drop"},
	}
	meta := req.Metadata()
	thought, ok := meta.(ThoughtInfo)
	require.True(t, ok)
	assert.Equal(t, "keep", thought.CoreInsight)
}

func TestCreateReqMetadataNormalizesStatus(t *testing.T) {
	req := CreateEntryReq{Category: CategoryLibrary, BookInfo: &BookInfo{Title: "x"}}
	meta := req.Metadata().(BookInfo)
	assert.Equal(t, BookStatusRead, meta.Status)

	req = CreateEntryReq{Category: CategoryProject}
	project := req.Metadata().(ProjectInfo)
	assert.Equal(t, ProjectStatusInProgress, project.Status)
}

func TestToResponseFlattensAuthorAndNestsOneVariant(t *testing.T) {
	e := &Entry{
		ID:     "id-1",
		Title:  "t",
		Author: DefaultAuthor,
		Meta:   ProjectInfo{Status: ProjectStatusDone, TechStack: []string{"Go"}},
	}
	resp := e.ToResponse()

	assert.Equal(t, "Jefferson Vasconcelos", resp.AuthorName)
	assert.Equal(t, CategoryProject, resp.Category)
	require.NotNil(t, resp.ProjectInfo)
	assert.Nil(t, resp.BookInfo)
	assert.Nil(t, resp.ThoughtInfo)
	assert.Nil(t, resp.WritingInfo)
	assert.Equal(t, ProjectStatusDone, resp.ProjectInfo.Status)
	assert.NotEmpty(t, resp.DisplayDate)
}
