package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/honeycarbs/jobkit/pkg/logging"
)

// RouterConfig holds the router options that come from configuration
type RouterConfig struct {
	// CORSOrigin is a comma-separated list of allowed browser origins
	CORSOrigin string
	// MCP, when set, is served at /mcp/stream. It enforces its own bearer auth.
	MCP http.Handler
}

// NewRouter builds the gin engine with every API route
func NewRouter(h *Handler, cfg RouterConfig, logger *logging.Logger) *gin.Engine {
	if logger == nil {
		logger = logging.Nop()
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger.Named("access")))
	r.Use(cors.New(corsConfig(cfg.CORSOrigin)))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/logout", h.Logout)
		authGroup.GET("/me", h.requireAuth(), h.Me)
	}

	protected := api.Group("", h.requireAuth())
	{
		protected.GET("/search/state", h.GetSearchState)
		protected.PUT("/search/state", h.PutSearchState)

		jobs := protected.Group("/jobs")
		jobs.GET("/search", h.SearchJobs)
		jobs.GET("/stats", h.Stats)
		jobs.POST("/save", h.SaveJob)
		jobs.POST("/export", h.Export)
		jobs.GET("", h.ListJobs)
		jobs.POST("", h.CreateJob)
		jobs.GET("/:id", h.GetJob)
		jobs.PUT("/:id", h.UpdateJob)
		jobs.DELETE("/:id", h.DeleteJob)
		jobs.GET("/:id/checklist", h.GetChecklist)
		jobs.PUT("/:id/checklist", h.UpdateChecklist)

		ai := protected.Group("/ai")
		ai.POST("/generate-outreach", h.GenerateOutreach)
		ai.POST("/tailor-resume", h.TailorResume)
		ai.POST("/interview-prep", h.InterviewPrep)
	}

	if cfg.MCP != nil {
		r.Any("/mcp/stream", gin.WrapH(cfg.MCP))
	}

	return r
}

func corsConfig(origins string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Mcp-Session-Id"}
	cfg.ExposeHeaders = []string{"Mcp-Session-Id"}
	cfg.AllowCredentials = true
	cfg.MaxAge = 12 * time.Hour

	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowOrigins = append(cfg.AllowOrigins, o)
		}
	}
	if len(cfg.AllowOrigins) == 0 {
		cfg.AllowOrigins = []string{"http://localhost:5173"}
	}
	return cfg
}
