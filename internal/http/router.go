package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/usforever/api/internal/config"
	"github.com/usforever/api/internal/http/handlers"
	"github.com/usforever/api/internal/http/middlewares"
	"github.com/usforever/api/internal/observability"
	"github.com/usforever/api/internal/service"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Deps is everything the router wires into handlers and middleware.
// Prom, Metrics and Checks are optional.
type Deps struct {
	Services    service.Services
	Prom        *observability.Prom
	Metrics     http.Handler
	Checks      map[string]handlers.PingFunc
	RateCounter middlewares.WindowCounter
}

func NewRouter(log *slog.Logger, cfg config.Config, deps Deps) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// middleware
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(cfg.OTelServiceName))
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))

	if deps.Prom != nil {
		r.Use(deps.Prom.GinHandleMiddleware())
	}

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.CORSOrigins))

	// health
	h := handlers.NewHealthHandler(deps.Checks)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics))
	}

	r.GET("/docs", handlers.SwaggerUI)
	r.GET("/docs/openapi.yaml", handlers.OpenAPISpec)

	counter := deps.RateCounter
	if counter == nil {
		counter = middlewares.NewMemoryCounter(cfg.RateLimitWindow)
	}

	limiter := middlewares.NewRateLimiter(cfg.RateLimit, counter, log)
	writeLimit := limiter.RateLimiterMiddleware("write", middlewares.KeyByIP)
	loginLimit := limiter.RateLimiterMiddleware("login", middlewares.KeyByIP)

	api := r.Group("/api")
	api.Use(middlewares.MaxBodyBytes(cfg.MaxBodyBytes))
	api.Use(middlewares.RequireJSON())

	notes := handlers.NewNotesHandler(deps.Services.Notes)
	api.GET("/notes", notes.ListNotes)
	api.GET("/notes/:id", notes.GetNoteByID)
	api.POST("/notes", writeLimit, notes.CreateNote)
	api.PUT("/notes/:id", writeLimit, notes.UpdateNote)
	api.DELETE("/notes/:id", writeLimit, notes.DeleteNote)

	photos := handlers.NewPhotosHandler(deps.Services.Photos)
	api.GET("/photos", photos.ListPhotos)
	api.GET("/photos/category/:category", photos.ListPhotosByCategory)
	api.GET("/photos/:id", photos.GetPhotoByID)
	api.POST("/photos", writeLimit, photos.CreatePhoto)
	api.PUT("/photos/:id", writeLimit, photos.UpdatePhoto)
	api.DELETE("/photos/:id", writeLimit, photos.DeletePhoto)

	entries := handlers.NewTimelineHandler(deps.Services.Timeline)
	api.GET("/timeline", entries.ListEntries)
	api.GET("/timeline/:id", entries.GetEntryByID)
	api.POST("/timeline", writeLimit, entries.CreateEntry)
	api.PUT("/timeline/:id", writeLimit, entries.UpdateEntry)
	api.DELETE("/timeline/:id", writeLimit, entries.DeleteEntry)

	users := handlers.NewUsersHandler(deps.Services.Users)
	api.POST("/register", writeLimit, users.Register)
	api.POST("/login", loginLimit, users.Login)
	api.GET("/users/:id", users.GetUserByID)
	api.PUT("/users/:id", writeLimit, users.UpdateUser)
	api.DELETE("/users/:id", writeLimit, users.DeleteUser)

	r.NoRoute(func(ctx *gin.Context) {
		handlers.RespondNotFound(ctx, "Route not found")
	})

	return r
}
