package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"atelier-backend/internal/config"
	"atelier-backend/internal/domains/comment"
	commentRepo "atelier-backend/internal/domains/comment/repository"
	"atelier-backend/internal/domains/entry"
	entryRepo "atelier-backend/internal/domains/entry/repository"
	infraCache "atelier-backend/internal/infrastructure/cache"
	"atelier-backend/internal/infrastructure/database"
	"atelier-backend/internal/shared/utils"
	"atelier-backend/pkg/logger"
)

// Seeds the database with the canonical starter entries plus generated
// filler content for local development.
func main() {
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file found, using system environment")
	}
	logger.Init("development")

	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config", err)
		os.Exit(1)
	}
	if !cfg.HasDatabase() {
		logger.Error("seed requires a database", fmt.Errorf("DB_HOST is not set"))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db := database.NewPostgresDB(&cfg.Database)
	if err := db.Connect(ctx); err != nil {
		logger.Error("connect database", err)
		os.Exit(1)
	}
	defer db.Close()

	entries := entryRepo.NewPostgresRepository(db.Pool, nil)
	comments := commentRepo.NewPostgresRepository(db.Pool)

	seeded := 0
	for _, e := range starterEntries() {
		exists, err := entries.SlugExists(ctx, e.Slug)
		if err != nil {
			logger.Error("slug check", err)
			os.Exit(1)
		}
		if exists {
			continue
		}
		if err := entries.Create(ctx, e); err != nil {
			logger.Error("seed entry", err)
			os.Exit(1)
		}
		seedComments(ctx, entries, comments, e)
		seeded++
	}

	for _, e := range generatedEntries(6) {
		exists, err := entries.SlugExists(ctx, e.Slug)
		if err != nil || exists {
			continue
		}
		if err := entries.Create(ctx, e); err != nil {
			logger.Error("seed entry", err)
			os.Exit(1)
		}
		seedComments(ctx, entries, comments, e)
		seeded++
	}

	// Seeding bypasses the repositories' cache, so cached slug lookups may
	// now be stale.
	if cfg.HasRedis() {
		redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
		if err := redisCache.DeletePattern(ctx, entryRepo.SlugCachePattern); err != nil {
			logger.Warn("cache invalidation failed", map[string]interface{}{"error": err.Error()})
		}
		_ = redisCache.Close()
	}

	logger.Info("seed finished", map[string]interface{}{"entries": seeded})
}

// starterEntries are the platform's original sample posts, kept verbatim.
func starterEntries() []*entry.Entry {
	return []*entry.Entry{
		{
			ID:      uuid.New().String(),
			Title:   "A Arquitetura do Silêncio: Sobre o Estoicismo Moderno",
			Slug:    "arquitetura-do-silencio",
			Excerpt: "Em uma era de ruído perpétuo, como projetamos nossos espaços internos para resistir à erosão da atenção?",
			Content: "<p>Falar de silêncio no século XXI é falar de um recurso em extinção. Somos a primeira geração a viver em um estado de disponibilidade digital contínua...</p>",
			Date:    time.Now().AddDate(0, -2, 0),
			ReadTime:  "12 min",
			ImageURL:  "https://picsum.photos/seed/silence/800/450",
			Author:    entry.DefaultAuthor,
			Likes:     1200,
			Published: true,
			Meta: entry.ThoughtInfo{
				CoreInsight: "O silêncio não é ausência, é arquitetura.",
			},
		},
		{
			ID:      uuid.New().String(),
			Title:   "Oatmeal & Abs",
			Slug:    "oatmeal-abs",
			Excerpt: "Personal reflections on nutrition and consistency in a distracting world.",
			Content: "<p>Content about health and fitness consistency...</p>",
			Date:    time.Now().AddDate(0, -1, 0),
			ReadTime:  "2 min",
			ImageURL:  "https://images.unsplash.com/photo-1544367567-0f2fcb009e0b?auto=format&fit=crop&q=80&w=300",
			Author:    entry.DefaultAuthor,
			Likes:     120,
			Published: true,
			Meta: entry.BookInfo{
				Title:    "Oatmeal & Abs",
				Author:   "Parker Klein",
				Rating:   decimal.NewFromFloat(3.5),
				Status:   entry.BookStatusRead,
				CoverURL: "https://images.unsplash.com/photo-1544367567-0f2fcb009e0b?auto=format&fit=crop&q=80&w=300",
			},
		},
	}
}

// generatedEntries produces filler drafts and posts across all categories.
func generatedEntries(n int) []*entry.Entry {
	gofakeit.Seed(42)

	categories := []entry.Category{
		entry.CategoryThought, entry.CategoryWriting,
		entry.CategoryLibrary, entry.CategoryProject,
	}

	out := make([]*entry.Entry, 0, n)
	for i := 0; i < n; i++ {
		category := categories[i%len(categories)]
		title := gofakeit.Sentence(4)
		content := fmt.Sprintf("<p>%s</p><p>%s</p>", gofakeit.Paragraph(1, 4, 30, " "), gofakeit.Paragraph(1, 3, 25, " "))

		e := &entry.Entry{
			ID:        uuid.New().String(),
			Title:     title,
			Slug:      utils.GenerateSlug(title),
			Excerpt:   gofakeit.Sentence(10),
			Content:   content,
			Date:      gofakeit.DateRange(time.Now().AddDate(-1, 0, 0), time.Now()),
			ReadTime:  utils.ReadTimeFor(content),
			ImageURL:  fmt.Sprintf("https://picsum.photos/seed/%s/800/450", gofakeit.Word()),
			Author:    entry.DefaultAuthor,
			Likes:     gofakeit.Number(0, 300),
			Published: i%3 != 0,
			Meta:      generatedMeta(category),
		}
		out = append(out, e)
	}
	return out
}

func generatedMeta(category entry.Category) entry.Metadata {
	switch category {
	case entry.CategoryLibrary:
		return entry.BookInfo{
			Title:  gofakeit.BookTitle(),
			Author: gofakeit.BookAuthor(),
			Rating: decimal.NewFromFloat(float64(gofakeit.Number(10, 100)) / 10),
			Status: entry.BookStatusReading,
		}
	case entry.CategoryProject:
		return entry.ProjectInfo{
			Status:    entry.ProjectStatusInProgress,
			TechStack: []string{"Go", "PostgreSQL", "Redis"},
			Github:    "https://github.com/" + gofakeit.Username(),
		}
	case entry.CategoryWriting:
		return entry.WritingInfo{
			Genre:          "Ensaio",
			TargetAudience: "Leitores de filosofia",
		}
	default:
		return entry.ThoughtInfo{
			CoreInsight: gofakeit.Sentence(8),
		}
	}
}

func seedComments(ctx context.Context, entries entry.Repository, repo comment.Repository, e *entry.Entry) {
	if !e.Published {
		return
	}
	created := 0
	for i := 0; i < gofakeit.Number(0, 4); i++ {
		c := &comment.Comment{
			ID:           uuid.New().String(),
			EntryID:      e.ID,
			AuthorName:   gofakeit.Name(),
			AuthorAvatar: fmt.Sprintf("https://api.dicebear.com/7.x/avataaars/svg?seed=%s", gofakeit.Word()),
			Text:         gofakeit.Sentence(12),
			Likes:        gofakeit.Number(0, 20),
		}
		if err := repo.Create(ctx, c); err != nil {
			logger.Warn("seed comment failed", map[string]interface{}{"entry_id": e.ID})
			break
		}
		created++
	}
	if created > 0 {
		_ = entries.SetCommentsCount(ctx, e.ID, created)
	}
}
