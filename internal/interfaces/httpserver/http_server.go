package httpserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	companiondocs "github.com/janhq/companion-api/docs/swagger"
	"github.com/janhq/companion-api/internal/config"
	"github.com/janhq/companion-api/internal/interfaces/httpserver/handlers"
	"github.com/janhq/companion-api/internal/interfaces/httpserver/middlewares"
	"github.com/janhq/companion-api/internal/interfaces/httpserver/requests"
	"github.com/janhq/companion-api/internal/interfaces/httpserver/routes"
)

// ReadinessChecker reports whether backing stores are reachable.
type ReadinessChecker interface {
	Ping(ctx context.Context) error
}

// HttpServer wraps the gin engine with graceful shutdown helpers.
type HttpServer struct {
	cfg       *config.Config
	engine    *gin.Engine
	log       zerolog.Logger
	routeProv *routes.Provider
}

// New constructs the HTTP server with default middleware and routes.
func New(
	cfg *config.Config,
	log zerolog.Logger,
	resolver middlewares.IdentityResolver,
	handlerProvider *handlers.Provider,
	readiness ReadinessChecker,
) (*HttpServer, error) {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	companiondocs.SwaggerInfo.BasePath = "/"
	if err := requests.RegisterValidators(); err != nil {
		return nil, err
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middlewares.RequestID())
	engine.Use(middlewares.TracingMiddleware(cfg.ServiceName))
	engine.Use(middlewares.LoggingMiddleware(log))
	engine.Use(middlewares.MetricsMiddleware())
	engine.Use(middlewares.CORSMiddleware())

	registerCoreRoutes(engine, cfg, readiness)

	engine.Use(middlewares.Identity(resolver))
	routeProvider := routes.NewProvider(cfg, handlerProvider)
	routeProvider.Register(engine)

	return &HttpServer{
		cfg:       cfg,
		engine:    engine,
		log:       log,
		routeProv: routeProvider,
	}, nil
}

// Handler exposes the engine for tests.
func (s *HttpServer) Handler() http.Handler {
	return s.engine
}

// Run starts the HTTP listener and handles graceful shutdown via context cancellation.
func (s *HttpServer) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    s.cfg.Addr(),
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.cfg.Addr()).Msg("HTTP server listening")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error().Err(err).Msg("HTTP server error")
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		s.log.Info().Msg("Context cancelled, shutting down HTTP server")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func registerCoreRoutes(engine *gin.Engine, cfg *config.Config, readiness ReadinessChecker) {
	engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": cfg.ServiceName,
			"status":  "ok",
		})
	})

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	engine.GET("/readyz", func(c *gin.Context) {
		if readiness != nil {
			if err := readiness.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
