package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/honeycarbs/jobkit/internal/config"
	"github.com/honeycarbs/jobkit/internal/storage/memory"
	"github.com/honeycarbs/jobkit/pkg/logging"
)

func memoryConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.FromEnv(func(key string) string {
		return map[string]string{
			"JWT_SECRET":      "test-secret",
			"RAPID_API_KEY":   "test-key",
			"STORAGE_BACKEND": "memory",
			"PORT":            "0",
		}[key]
	})
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	return cfg
}

func TestInitializeAppWithMemoryBackend(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := memoryConfig(t)

	app, cleanup, err := InitializeApp(context.Background(), cfg, logging.Nop())
	if err != nil {
		t.Fatalf("InitializeApp: %v", err)
	}
	defer cleanup()

	handler := app.Server.srv.Handler

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Errorf("healthz = %d", w.Code)
	}

	body := strings.NewReader(`{"name":"Ana","email":"ana@example.com","password":"secret1"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", body)
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Errorf("register = %d %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/mcp/stream", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("mcp without token = %d", w.Code)
	}

	if err := app.Scheduler.Start(); err != nil {
		t.Fatalf("scheduler start: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := app.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown: %v", err)
	}
}

func TestOptionalBackendsFallBack(t *testing.T) {
	if _, ok := provideStateKV(nil).(*memory.KV); !ok {
		t.Error("state KV without redis should be in-memory")
	}
	if _, ok := provideLoginLimiter(nil).(*memory.Limiter); !ok {
		t.Error("login limiter without redis should be in-memory")
	}

	cfg := memoryConfig(t)
	gen, cleanup, err := provideGenerator(context.Background(), cfg, logging.Nop())
	if err != nil || gen != nil {
		t.Errorf("generator without key = %v, %v", gen, err)
	}
	cleanup()

	writer, err := provideSheetWriter(context.Background(), cfg, logging.Nop())
	if err != nil || writer != nil {
		t.Errorf("sheet writer without credentials = %v, %v", writer, err)
	}
}
