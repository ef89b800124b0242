package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageNeo4j    = "neo4j"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"

	ProviderJSearch = "jsearch"
	ProviderAdzuna  = "adzuna"

	LLMGemini    = "gemini"
	LLMAnthropic = "anthropic"
)

// Config contains runtime settings for the API and MCP server
type Config struct {
	LogLevel   string
	LogFormat  string // json (default) or console
	Host       string // default 0.0.0.0
	Port       string // default 8080
	JWTSecret  string
	CORSOrigin string

	Search struct {
		Provider string
		Debounce time.Duration
	}
	JSearch struct {
		APIKey string
		RPS    float64
	}
	Adzuna struct {
		AppID   string
		AppKey  string
		Country string
	}

	Storage struct {
		Backend string
	}
	Neo4j struct {
		URI      string
		Username string
		Password string
		Database string
	}
	DatabaseURL string
	RedisURL    string // optional; enables shared search state and login limiting

	LLM struct {
		Provider    string
		GeminiKey   string
		GeminiModel string
		ClaudeKey   string
		ClaudeModel string
	}

	SheetsCredentialsPath string

	FollowUp struct {
		After    time.Duration
		Schedule string
	}
}

// Addr is the listen address
func (c Config) Addr() string {
	return c.Host + ":" + c.Port
}

// Load reads .env when present, then populates config from environment variables
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds the config from getenv. Every missing required variable is
// reported in a single error.
func FromEnv(getenv func(string) string) (Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	var (
		cfg     Config
		missing []string
		invalid []string
	)

	cfg.LogLevel = get("LOG_LEVEL", "info")
	cfg.LogFormat = get("LOG_FORMAT", "json")
	cfg.Host = get("HTTP_HOST", "0.0.0.0")
	cfg.Port = get("PORT", "8080")
	cfg.JWTSecret = get("JWT_SECRET", "")
	cfg.CORSOrigin = get("CORS_ORIGIN", "http://localhost:5173")

	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}

	cfg.Search.Provider = strings.ToLower(get("SEARCH_PROVIDER", ProviderJSearch))
	cfg.JSearch.APIKey = get("RAPID_API_KEY", "")
	cfg.Adzuna.AppID = get("ADZUNA_APP_ID", "")
	cfg.Adzuna.AppKey = get("ADZUNA_APP_KEY", "")
	cfg.Adzuna.Country = get("ADZUNA_COUNTRY", "us")

	switch cfg.Search.Provider {
	case ProviderJSearch:
		if cfg.JSearch.APIKey == "" {
			missing = append(missing, "RAPID_API_KEY")
		}
	case ProviderAdzuna:
		if cfg.Adzuna.AppID == "" {
			missing = append(missing, "ADZUNA_APP_ID")
		}
		if cfg.Adzuna.AppKey == "" {
			missing = append(missing, "ADZUNA_APP_KEY")
		}
	default:
		invalid = append(invalid, "SEARCH_PROVIDER="+cfg.Search.Provider)
	}

	if v := get("JSEARCH_RPS", "5"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil || rps < 0 {
			invalid = append(invalid, "JSEARCH_RPS="+v)
		}
		cfg.JSearch.RPS = rps
	}

	cfg.Search.Debounce = duration(get("SEARCH_DEBOUNCE", "500ms"), "SEARCH_DEBOUNCE", &invalid)

	cfg.Storage.Backend = strings.ToLower(get("STORAGE_BACKEND", StorageNeo4j))
	cfg.Neo4j.URI = get("NEO4J_URI", "")
	cfg.Neo4j.Username = get("NEO4J_USERNAME", "")
	cfg.Neo4j.Password = get("NEO4J_PASSWORD", "")
	cfg.Neo4j.Database = get("NEO4J_DATABASE", "")
	cfg.DatabaseURL = get("DATABASE_URL", "")
	cfg.RedisURL = get("REDIS_URL", "")

	switch cfg.Storage.Backend {
	case StorageNeo4j:
		for key, val := range map[string]string{
			"NEO4J_URI":      cfg.Neo4j.URI,
			"NEO4J_USERNAME": cfg.Neo4j.Username,
			"NEO4J_PASSWORD": cfg.Neo4j.Password,
		} {
			if val == "" {
				missing = append(missing, key)
			}
		}
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			missing = append(missing, "DATABASE_URL")
		}
	case StorageMemory:
	default:
		invalid = append(invalid, "STORAGE_BACKEND="+cfg.Storage.Backend)
	}

	cfg.LLM.Provider = strings.ToLower(get("LLM_PROVIDER", LLMGemini))
	cfg.LLM.GeminiKey = get("GEMINI_API_KEY", "")
	cfg.LLM.GeminiModel = get("GEMINI_MODEL", "")
	cfg.LLM.ClaudeKey = get("CLAUDE_API_KEY", "")
	cfg.LLM.ClaudeModel = get("CLAUDE_MODEL", "")
	if cfg.LLM.Provider != LLMGemini && cfg.LLM.Provider != LLMAnthropic {
		invalid = append(invalid, "LLM_PROVIDER="+cfg.LLM.Provider)
	}

	cfg.SheetsCredentialsPath = get("GOOGLE_SHEETS_CREDENTIALS_PATH", "")

	cfg.FollowUp.After = duration(get("FOLLOW_UP_AFTER", "72h"), "FOLLOW_UP_AFTER", &invalid)
	cfg.FollowUp.Schedule = get("FOLLOW_UP_SCHEDULE", "@every 1h")

	var errs []error
	if len(missing) > 0 {
		slices.Sort(missing)
		errs = append(errs, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", ")))
	}
	if len(invalid) > 0 {
		errs = append(errs, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", ")))
	}

	return cfg, errors.Join(errs...)
}

func duration(v, key string, invalid *[]string) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		*invalid = append(*invalid, key+"="+v)
		return 0
	}
	return d
}
