package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"wallet-screening/internal/handler/api"
	reqdto "wallet-screening/internal/handler/dto/request"
	"wallet-screening/internal/handler/middleware"
	"wallet-screening/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Screening *api.ScreeningHandler
	Keys      *api.KeyHandler
	Health    *api.HealthHandler
	Sanctions *api.SanctionsHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *slog.Logger, handlers Handlers, adminMiddleware *middleware.AdminMiddleware) error {
	// Only listed proxies may set the client IP through X-Forwarded-For / X-Real-IP.
	if err := engine.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		return err
	}
	reqdto.RegisterValidators()

	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, handlers, adminMiddleware)
	return nil
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.Correlation())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.WrapLogger(logger, cfg.Log).LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, adminMiddleware *middleware.AdminMiddleware) {
	engine.GET("/health", healthCheck)

	apiGroup := engine.Group("/api")
	{
		apiGroup.GET("/health", h.Health.Health)

		screen := apiGroup.Group("/screen")
		{
			addRoutes(screen, []route{
				{Method: http.MethodPost, Path: "/batch", Handler: h.Screening.ScreenBatch},
				{Method: http.MethodGet, Path: "/:chain/:address", Handler: h.Screening.Screen},
			})
		}

		keys := apiGroup.Group("/keys")
		keys.Use(adminMiddleware.RequireAdmin())
		{
			addRoutes(keys, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Keys.Issue},
				{Method: http.MethodGet, Path: "", Handler: h.Keys.List},
				{Method: http.MethodGet, Path: "/:keyId", Handler: h.Keys.Get},
				{Method: http.MethodPatch, Path: "/:keyId", Handler: h.Keys.UpdateTier},
				{Method: http.MethodDelete, Path: "/:keyId", Handler: h.Keys.Delete},
			})
		}

		data := apiGroup.Group("/data")
		data.Use(adminMiddleware.RequireAdmin())
		{
			addRoutes(data, []route{
				{Method: http.MethodPost, Path: "/sanctions/:chain", Handler: h.Sanctions.Replace},
			})
		}
	}
}

// @Summary Liveness probe
// @Description Reports that the process is serving requests; see /api/health for dependencies
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is running",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
