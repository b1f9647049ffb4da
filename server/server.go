package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"motor-monitor/cache"
	"motor-monitor/confs"
	"motor-monitor/handlers"
	httpHandler "motor-monitor/handlers/http"
	"motor-monitor/middlewares"
	"motor-monitor/services"
	"motor-monitor/usecases"
	"motor-monitor/web"
	"motor-monitor/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

// Deps are the components the HTTP layer serves. LiveCache and Recorder are
// optional.
type Deps struct {
	Dashboard *usecases.DashboardUseCase
	Auth      *usecases.AuthUseCase
	Hub       *ws.Manager
	LiveCache *cache.LiveCache
	Recorder  *services.ReadingRecorder
}

type Server struct {
	app    *gin.Engine
	cfg    confs.Config
	logger *slog.Logger
}

func NewServer(cfg confs.Config, deps Deps, logger *slog.Logger) (*Server, error) {
	s := &Server{
		app:    gin.New(),
		cfg:    cfg,
		logger: logger,
	}

	s.app.Use(middlewares.AccessLogger(gin.DefaultWriter), gin.Recovery())

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	s.app.SetHTMLTemplate(tmpl)

	if len(cfg.CORSOrigins) > 0 {
		config := cors.DefaultConfig()
		if slices.Contains(cfg.CORSOrigins, "*") {
			config.AllowAllOrigins = true
		} else {
			config.AllowOrigins = cfg.CORSOrigins
			config.AllowCredentials = true
		}
		config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
		config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
		s.app.Use(cors.New(config))
	}

	s.routes(deps)
	return s, nil
}

func (s *Server) routes(deps Deps) {
	s.app.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "OK",
		})
	})

	loginHandler := httpHandler.NewLoginHandler(deps.Auth, s.cfg.CookieSecure, s.logger)
	dashboardHandler := httpHandler.NewDashboardHandler(deps.Dashboard, s.logger)
	pageHandler := httpHandler.NewPageHandler()
	wsHandler := handlers.NewWSHandler(deps.Hub, s.cfg.CORSOrigins, s.logger)
	statsHandler := handlers.NewLiveStatsHandler(deps.LiveCache, deps.Hub, deps.Recorder)

	// Auth routes
	s.app.GET("/login", loginHandler.ShowLogin)
	s.app.POST("/login", loginHandler.Login)
	s.app.GET("/logout", loginHandler.Logout)
	s.app.POST("/api/auth/login", loginHandler.APILogin)

	protected := s.app.Group("", middlewares.RequireSession(deps.Auth))
	{
		// Pages
		protected.GET("/", pageHandler.ZoneOverview)
		protected.GET("/zones", pageHandler.ZoneOverview)
		protected.GET("/zone/:id/motors", pageHandler.MotorList)
		protected.GET("/device/:id", pageHandler.DeviceDetail)

		// Live feed
		protected.GET("/ws", wsHandler.HandleViewerWS)

		api := protected.Group("/api")
		{
			api.GET("/session", loginHandler.Session)
			api.GET("/zones", dashboardHandler.ListZones)
			api.GET("/motors/:id", dashboardHandler.ListMotors)
			api.GET("/motors/:id/detail", dashboardHandler.MotorDetail)
			api.GET("/motors/:id/live", dashboardHandler.LiveReading)
			api.GET("/sensors/:id/history", dashboardHandler.SensorHistory)
			api.GET("/live/stats", statsHandler.GetLiveStats)
		}
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.app
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.HTTPAddr,
		Handler:           s.app,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.cfg.HTTPAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
