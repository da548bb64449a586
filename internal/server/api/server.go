// Package api exposes the file service over HTTP using gin.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"songvault/internal/logging"
	sc "songvault/internal/server/config"
	"songvault/internal/server/files"
)

// Pinger reports database connectivity; *sql.DB satisfies it. The status
// page asks at request time instead of caching a connected flag.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	address       string
	baseURL       string
	maxUploadSize int64
	engine        *gin.Engine
	logger        logging.Logger
	files         *files.Service
	db            Pinger
}

func NewServer(cfg *sc.Config, l logging.Logger, fileService *files.Service, db Pinger) *Server {
	engine := gin.New()
	engine.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "PUT", "POST", "DELETE"}
	corsConfig.AllowHeaders = []string{"Content-Type"}
	engine.Use(cors.New(corsConfig))

	engine.MaxMultipartMemory = cfg.MaxUploadSize

	s := &Server{
		address:       cfg.EndpointAddrHTTP,
		baseURL:       cfg.BaseURL,
		maxUploadSize: cfg.MaxUploadSize,
		engine:        engine,
		logger:        l.With("module", "http_server"),
		files:         fileService,
		db:            db,
	}
	s.routes()

	return s
}

func (s *Server) routes() {
	group := s.engine.Group("/api/files")
	group.POST("/upload", s.uploadFiles)
	group.GET("", s.getFiles)
	group.GET("/view/:key", s.viewUploadedFile)
	group.GET("/viewCoverImage/:key", s.viewCoverImage)
	group.GET("/download/:key", s.downloadUploadedFile)
	group.DELETE("/:id", s.deleteUploadedFile)

	s.engine.NoRoute(s.statusPage)
}

// Handler returns the underlying HTTP handler, used by tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{Addr: s.address, Handler: s.engine}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
