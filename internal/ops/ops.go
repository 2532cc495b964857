// Package ops serves the optional operator HTTP endpoints: a liveness probe
// and the Prometheus metrics of the running server. It never touches stdout.
package ops

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/ggoodman/mycommandmcp/internal/metrics"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.ReleaseMode)
	gin.DefaultWriter = slogWriter{}
	gin.DefaultErrorWriter = slogWriter{}
}

// Server is the ops HTTP listener.
type Server struct {
	addr   string
	engine *gin.Engine
	srv    *http.Server
	ln     net.Listener
	log    *slog.Logger
}

// New builds the ops router for addr. Nothing listens until Start.
func New(addr string, m *metrics.Metrics, log *slog.Logger) *Server {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(m.Handler()))

	return &Server{
		addr:   addr,
		engine: r,
		srv:    &http.Server{Handler: r, ReadHeaderTimeout: 5 * time.Second},
		log:    log,
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.engine }

// Start binds the listener and serves in the background.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.ln = ln
	s.log.Info("ops listener started", slog.String("addr", ln.Addr().String()))
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("ops listener failed", slog.String("err", err.Error()))
		}
	}()
	return nil
}

// Addr returns the bound address once started.
func (s *Server) Addr() string {
	if s.ln == nil {
		return s.addr
	}
	return s.ln.Addr().String()
}

// Shutdown stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("ops request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("elapsed", time.Since(start)),
		)
	}
}

// slogWriter routes gin's own output to the default slog logger, which
// writes to stderr.
type slogWriter struct{}

func (slogWriter) Write(p []byte) (int, error) {
	slog.Debug("gin", slog.String("msg", string(p)))
	return len(p), nil
}
