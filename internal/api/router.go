package api

import (
	"context"
	"fmt"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/distribuidora/analise-credito/internal/api/handler"
	"github.com/distribuidora/analise-credito/internal/api/middleware"
	"github.com/distribuidora/analise-credito/internal/core/domain"
	"github.com/distribuidora/analise-credito/internal/core/service"
	mongorepo "github.com/distribuidora/analise-credito/internal/infrastructure/db/mongo"
	redisstore "github.com/distribuidora/analise-credito/internal/infrastructure/db/redis"
	"github.com/distribuidora/analise-credito/internal/infrastructure/queue"
	"github.com/distribuidora/analise-credito/internal/infrastructure/signer"
	"github.com/distribuidora/analise-credito/internal/pkg/config"
)

// multipart framing on top of the file itself
const uploadOverheadBytes = 1 << 20

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) (*echo.Echo, error) {
	rule, err := domain.ParseChecklistRule(cfg.Workflow.ChecklistRule)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(log))
	e.Use(echoprometheus.NewMiddleware("credito"))

	// --- Dependencies ---
	workflow := domain.NewWorkflow(rule)

	authRepo := mongorepo.NewAuthRepository(db)
	proposalRepo := mongorepo.NewProposalRepository(db)
	documentRepo := mongorepo.NewDocumentRepository(db)
	referenceRepo := mongorepo.NewReferenceRepository(db)
	blobs := mongorepo.NewGridFSBlobStore(db)
	idem := redisstore.NewIdempotencyStore(rdb, cfg.Redis.IdemTTL)
	fetcher := queue.NewFetcher(cfg.Documents.ExportWorkers, blobs, log)
	links := signer.New(cfg.JWTSecret, cfg.PublicBaseURL)

	authService := service.NewAuthService(authRepo, cfg.JWTSecret, cfg.TokenTTL, log)
	proposalService := service.NewProposalService(proposalRepo, documentRepo, referenceRepo, blobs, idem, workflow, log)
	documentService := service.NewDocumentService(proposalRepo, documentRepo, authRepo, blobs, fetcher, links, workflow,
		service.DocumentOptions{
			MaxUploadBytes: cfg.Documents.MaxUploadBytes,
			LinkTTL:        cfg.Documents.SignedURLTTL,
		}, log)

	authHandler := handler.NewAuthHandler(authService)
	proposalHandler := handler.NewProposalHandler(proposalService)
	documentHandler := handler.NewDocumentHandler(documentService)

	authMW := middleware.Auth(cfg.JWTSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	agentOnly := middleware.RBAC(domain.RoleAgent)
	uploadLimit := echomiddleware.BodyLimit(fmt.Sprintf("%dK", (cfg.Documents.MaxUploadBytes+uploadOverheadBytes)/1024))

	// --- Public routes ---
	e.POST("/auth/login", authHandler.Login)
	e.GET("/v1/files/:token", documentHandler.Open)
	e.GET("/v1/document-types", documentHandler.Types)

	// --- Authenticated routes ---
	v1 := e.Group("/v1", authMW)

	v1.GET("/me", authHandler.Me)
	v1.PUT("/me/password", authHandler.ChangePassword)
	v1.POST("/users", authHandler.Register, adminOnly)
	v1.GET("/users", authHandler.ListUsers, adminOnly)

	v1.POST("/proposals", proposalHandler.Create, agentOnly)
	v1.GET("/proposals", proposalHandler.List)
	v1.GET("/proposals/:id", proposalHandler.Get)
	v1.DELETE("/proposals/:id", proposalHandler.Delete, agentOnly)
	v1.GET("/proposals/:id/checklist", proposalHandler.Checklist)
	v1.POST("/proposals/:id/submit", proposalHandler.Submit, agentOnly)
	v1.POST("/proposals/:id/transition", proposalHandler.Transition, adminOnly)
	v1.POST("/proposals/:id/references", proposalHandler.AddReference, agentOnly)

	v1.POST("/proposals/:id/documents", documentHandler.Upload, agentOnly, uploadLimit)
	v1.GET("/proposals/:id/export", documentHandler.Export, adminOnly)
	v1.DELETE("/documents/:id", documentHandler.Delete, agentOnly)
	v1.GET("/documents/:id/link", documentHandler.Link)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(map[string]handler.Check{
		"mongodb": func(ctx context.Context) error { return db.Client().Ping(ctx, nil) },
		"redis":   func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
	})

	e.GET("/health", healthHandler.Liveness)            // liveness: is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness: are dependencies up?

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}

// requestLogger emits one structured line per request through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
