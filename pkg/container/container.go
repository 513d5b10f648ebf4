package container

import (
	"context"
	"fmt"
	"time"

	"atelier-backend/internal/auth"
	"atelier-backend/internal/authoring"
	"atelier-backend/internal/config"
	"atelier-backend/internal/domains/comment"
	commentHandler "atelier-backend/internal/domains/comment/handler"
	commentRepo "atelier-backend/internal/domains/comment/repository"
	commentService "atelier-backend/internal/domains/comment/service"
	"atelier-backend/internal/domains/entry"
	entryHandler "atelier-backend/internal/domains/entry/handler"
	entryRepo "atelier-backend/internal/domains/entry/repository"
	entryService "atelier-backend/internal/domains/entry/service"
	"atelier-backend/internal/infrastructure/assistant"
	infraCache "atelier-backend/internal/infrastructure/cache"
	"atelier-backend/internal/infrastructure/database"
	"atelier-backend/pkg/cache"
	"atelier-backend/pkg/jwt"
	"atelier-backend/pkg/logger"
)

// Container is the root of the dependency graph. Everything in it is a
// singleton living for the process lifetime.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB // nil when running on the memory store
	Cache      cache.Cache          // nil when Redis is not configured
	JWTManager *jwt.Manager
	Verifier   *auth.Verifier

	EntryRepo   entry.Repository
	CommentRepo comment.Repository

	EntryService     entry.Service
	CommentService   comment.Service
	AssistantService assistant.Service

	EntryHandler     *entryHandler.Handler
	CommentHandler   *commentHandler.Handler
	AuthHandler      *auth.Handler
	AssistantHandler *assistant.Handler
}

// NewContainer wires the whole graph in dependency order: config, then
// infrastructure, then repositories, services and handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	c.Config = cfg

	if cfg.HasRedis() {
		redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisCache.Ping(ctx)
		cancel()
		if err != nil {
			logger.Warn("redis unreachable, running without cache", map[string]interface{}{
				"host": cfg.Redis.Host,
			})
		} else {
			c.Cache = redisCache
		}
	}

	if cfg.HasDatabase() {
		db := database.NewPostgresDB(&cfg.Database)
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		err := db.Connect(ctx)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		c.DB = db
		c.EntryRepo = entryRepo.NewPostgresRepository(db.Pool, c.Cache)
		c.CommentRepo = commentRepo.NewPostgresRepository(db.Pool)
	} else {
		logger.Warn("no database configured, using in-memory store", nil)
		c.EntryRepo = entryRepo.NewMemoryRepository()
		c.CommentRepo = commentRepo.NewMemoryRepository()
	}

	c.JWTManager = jwt.NewManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenExpiry)*time.Hour)
	c.Verifier = auth.NewVerifier(cfg.Auth.SecretHash, cfg.Auth.Secret)

	c.CommentService = commentService.NewCommentService(c.CommentRepo, c.EntryRepo)
	c.EntryService = entryService.NewEntryService(c.EntryRepo, c.CommentService)
	c.AssistantService = assistant.NewGeminiService(
		cfg.Assistant.APIKey, cfg.Assistant.BaseURL, cfg.Assistant.Model, cfg.Assistant.Timeout)

	c.EntryHandler = entryHandler.NewHandler(c.EntryService)
	c.CommentHandler = commentHandler.NewHandler(c.CommentService)
	c.AuthHandler = auth.NewHandler(c.Verifier, c.JWTManager)
	c.AssistantHandler = assistant.NewHandler(c.AssistantService)

	return c, nil
}

// NewAutosaveScheduler builds an autosave scheduler for one authoring
// session, saving through the entry service at the configured cadence.
func (c *Container) NewAutosaveScheduler(session *authoring.Session) *authoring.Scheduler {
	return authoring.NewScheduler(
		session, c.EntryService, c.Config.Autosave.Interval, c.Config.Autosave.MinContent)
}

// Cleanup releases infrastructure connections.
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
	}
	if closer, ok := c.Cache.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
}
