package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/honeycarbs/jobkit/internal/config"
	"github.com/honeycarbs/jobkit/internal/domain/assist"
	"github.com/honeycarbs/jobkit/internal/domain/auth"
	"github.com/honeycarbs/jobkit/internal/domain/export"
	"github.com/honeycarbs/jobkit/internal/domain/search"
	adzunaProvider "github.com/honeycarbs/jobkit/internal/domain/search/providers/adzuna"
	jsearchProvider "github.com/honeycarbs/jobkit/internal/domain/search/providers/jsearch"
	"github.com/honeycarbs/jobkit/internal/domain/tracker"
	"github.com/honeycarbs/jobkit/internal/httpapi"
	"github.com/honeycarbs/jobkit/internal/mcp"
	"github.com/honeycarbs/jobkit/internal/repository"
	"github.com/honeycarbs/jobkit/internal/scheduler"
	"github.com/honeycarbs/jobkit/internal/storage/memory"
	storage "github.com/honeycarbs/jobkit/internal/storage/neo4j"
	"github.com/honeycarbs/jobkit/internal/storage/postgres"
	redisstore "github.com/honeycarbs/jobkit/internal/storage/redis"
	"github.com/honeycarbs/jobkit/pkg/adzuna"
	"github.com/honeycarbs/jobkit/pkg/jsearch"
	"github.com/honeycarbs/jobkit/pkg/llm"
	"github.com/honeycarbs/jobkit/pkg/logging"
	n4j "github.com/honeycarbs/jobkit/pkg/neo4j"
	"github.com/honeycarbs/jobkit/pkg/sheets"
)

const (
	loginAttempts = 10
	loginWindow   = 15 * time.Minute
)

// Store bundles the repositories of the selected storage backend
type Store struct {
	Jobs  repository.SavedJobRepository
	Users repository.UserRepository
}

// provideStore opens the backend named by STORAGE_BACKEND and prepares its schema
func provideStore(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Store, func(), error) {
	switch cfg.Storage.Backend {
	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		logger.Info("postgres storage initialized")
		return &Store{
			Jobs:  postgres.NewSavedJobRepository(pool),
			Users: postgres.NewUserRepository(pool),
		}, pool.Close, nil

	case config.StorageMemory:
		logger.Warn("using in-memory storage; data is lost on restart")
		return &Store{
			Jobs:  memory.NewSavedJobRepository(),
			Users: memory.NewUserRepository(),
		}, func() {}, nil

	default:
		client, err := n4j.NewClient(ctx, provideNeo4jConfig(cfg))
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Shutdown(ctx); err != nil {
				logger.Warn("neo4j shutdown failed", "err", err)
			}
		}
		if err := storage.EnsureSchema(ctx, client); err != nil {
			cleanup()
			return nil, nil, err
		}
		logger.Info("neo4j storage initialized", "uri", cfg.Neo4j.URI)
		return &Store{
			Jobs:  storage.NewSavedJobRepository(client),
			Users: storage.NewUserRepository(client),
		}, cleanup, nil
	}
}

// provideNeo4jConfig extracts Neo4j config from main config
func provideNeo4jConfig(cfg config.Config) n4j.Config {
	return n4j.Config{
		URI:      cfg.Neo4j.URI,
		Username: cfg.Neo4j.Username,
		Password: cfg.Neo4j.Password,
		Database: cfg.Neo4j.Database,
	}
}

func provideSavedJobs(s *Store) repository.SavedJobRepository { return s.Jobs }

func provideUsers(s *Store) repository.UserRepository { return s.Users }

// provideRedis connects when REDIS_URL is set; otherwise it returns nil and
// the in-process fallbacks are used.
func provideRedis(ctx context.Context, cfg config.Config, logger *logging.Logger) (*redis.Client, func(), error) {
	if cfg.RedisURL == "" {
		return nil, func() {}, nil
	}
	client, err := redisstore.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("redis connected")
	return client, func() { _ = client.Close() }, nil
}

func provideStateKV(rdb *redis.Client) search.KV {
	if rdb == nil {
		return memory.NewKV()
	}
	return redisstore.NewKV(rdb, 0)
}

func provideLoginLimiter(rdb *redis.Client) auth.Limiter {
	if rdb == nil {
		return memory.NewLimiter(loginAttempts, loginWindow)
	}
	return redisstore.NewLimiter(rdb, loginAttempts, loginWindow, "ratelimit:login:")
}

// provideSearchProvider builds the upstream named by SEARCH_PROVIDER
func provideSearchProvider(cfg config.Config) (search.Provider, error) {
	switch cfg.Search.Provider {
	case config.ProviderAdzuna:
		client, err := adzuna.NewClient(adzuna.Config{
			AppID:   cfg.Adzuna.AppID,
			AppKey:  cfg.Adzuna.AppKey,
			Country: cfg.Adzuna.Country,
		})
		if err != nil {
			return nil, err
		}
		return adzunaProvider.NewProvider(client)
	default:
		client, err := jsearch.NewClient(jsearch.Config{
			APIKey:            cfg.JSearch.APIKey,
			RequestsPerSecond: cfg.JSearch.RPS,
		})
		if err != nil {
			return nil, err
		}
		return jsearchProvider.NewProvider(client)
	}
}

func provideRequerier(searcher search.Searcher, store *search.StateStore, cfg config.Config, logger *logging.Logger) *search.Requerier {
	return search.NewRequerier(searcher, store,
		search.WithDebounce(cfg.Search.Debounce),
		search.WithRequerierLogger(logger),
	)
}

func provideTokenIssuer(cfg config.Config) (*auth.TokenIssuer, error) {
	return auth.NewTokenIssuer(cfg.JWTSecret, auth.DefaultTokenTTL)
}

func provideAuthService(users repository.UserRepository, tokens *auth.TokenIssuer, limiter auth.Limiter, logger *logging.Logger) (*auth.Service, error) {
	return auth.NewService(users, tokens, logger.Named("auth"), auth.WithLimiter(limiter))
}

// provideGenerator picks the LLM backend. A missing API key disables the AI
// helpers instead of failing startup.
func provideGenerator(ctx context.Context, cfg config.Config, logger *logging.Logger) (assist.Generator, func(), error) {
	switch cfg.LLM.Provider {
	case config.LLMAnthropic:
		if cfg.LLM.ClaudeKey == "" {
			logger.Warn("CLAUDE_API_KEY not set; AI helpers disabled")
			return nil, func() {}, nil
		}
		gen, err := llm.NewAnthropic(cfg.LLM.ClaudeKey, cfg.LLM.ClaudeModel)
		if err != nil {
			return nil, nil, err
		}
		return gen, func() { _ = gen.Close() }, nil
	default:
		if cfg.LLM.GeminiKey == "" {
			logger.Warn("GEMINI_API_KEY not set; AI helpers disabled")
			return nil, func() {}, nil
		}
		gen, err := llm.NewGemini(ctx, cfg.LLM.GeminiKey, cfg.LLM.GeminiModel)
		if err != nil {
			return nil, nil, err
		}
		return gen, func() { _ = gen.Close() }, nil
	}
}

func provideAssist(gen assist.Generator, logger *logging.Logger) *assist.Service {
	return assist.NewService(gen, logger.Named("assist"))
}

// provideSheetWriter returns nil when no credentials are configured
func provideSheetWriter(ctx context.Context, cfg config.Config, logger *logging.Logger) (export.SheetWriter, error) {
	if cfg.SheetsCredentialsPath == "" {
		logger.Warn("GOOGLE_SHEETS_CREDENTIALS_PATH not set; sheet export disabled")
		return nil, nil
	}
	client, err := sheets.NewClient(ctx, sheets.Config{CredentialsPath: cfg.SheetsCredentialsPath})
	if err != nil {
		return nil, err
	}
	return client, nil
}

func provideExporter(writer export.SheetWriter, board export.BoardLister, logger *logging.Logger) *export.Exporter {
	return export.NewExporter(writer, board, logger.Named("export"))
}

func provideMCPHandler(searcher search.Searcher, board *tracker.Service, exporter *export.Exporter, authSvc *auth.Service, logger *logging.Logger) http.Handler {
	server := mcp.NewServer(mcp.Resources{
		Searcher: searcher,
		Board:    board,
		Exporter: exporter,
	}, logger)
	return mcp.NewHandler(server, authSvc)
}

func provideRouter(h *httpapi.Handler, mcpHandler http.Handler, cfg config.Config, logger *logging.Logger) *gin.Engine {
	return httpapi.NewRouter(h, httpapi.RouterConfig{
		CORSOrigin: cfg.CORSOrigin,
		MCP:        mcpHandler,
	}, logger)
}

func provideScheduler(board *tracker.Service, cfg config.Config, logger *logging.Logger) *scheduler.Scheduler {
	return scheduler.New(board, cfg.FollowUp.Schedule, cfg.FollowUp.After, logger)
}

func provideTracker(repo repository.SavedJobRepository, logger *logging.Logger) (*tracker.Service, error) {
	svc, err := tracker.NewServiceWithDeps(repo, logger.Named("tracker"))
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	return svc, nil
}
