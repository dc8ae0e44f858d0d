package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/leofalp/flowcanvas/core/action"
	"github.com/leofalp/flowcanvas/core/flow"
	"github.com/leofalp/flowcanvas/nodes"
	"github.com/leofalp/flowcanvas/providers/observability"
	"github.com/leofalp/flowcanvas/providers/sheets"
)

// Version is reported by /health.
const Version = "1.0.0"

// Server holds the collaborators the handlers need.
type Server struct {
	nodes    *nodes.Set
	sheets   sheets.Writer
	observer observability.Provider
}

// Option configures a Server.
type Option func(*Server)

// WithObserver records one span and one counter sample per request.
func WithObserver(observer observability.Provider) Option {
	return func(s *Server) { s.observer = observer }
}

// New creates a server. set may be nil, in which case only /health and the
// sheet endpoint are useful. writer backs POST /api/google-sheets.
func New(set *nodes.Set, writer sheets.Writer, opts ...Option) *Server {
	s := &Server{nodes: set, sheets: writer}
	for _, opt := range opts {
		opt(s)
	}
	s.observer = observability.OrNop(s.observer)
	return s
}

// Router builds the gin engine with routes and middleware.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.observe())
	r.Use(cors())

	r.GET("/health", s.handleHealth)

	api := r.Group("/api")
	api.POST("/google-sheets", s.handleSheetsWrite)
	api.GET("/workflow", s.handleWorkflow)
	api.GET("/nodes/:id/inputs", s.handleInputs)
	api.POST("/nodes/:id/run", s.handleRun)
	api.POST("/edges", s.handleConnect)

	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.observer.Info(ctx, "server listening", observability.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func (s *Server) observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		ctx, span := s.observer.StartSpan(c.Request.Context(), observability.SpanHTTPRequest,
			observability.String(observability.AttrHTTPMethod, c.Request.Method),
			observability.String(observability.AttrHTTPRoute, route),
		)
		defer span.End()
		c.Request = c.Request.WithContext(ctx)

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		span.SetAttributes(observability.Int(observability.AttrHTTPStatusCode, status))
		if status >= http.StatusInternalServerError {
			span.SetStatus(observability.StatusError, http.StatusText(status))
		} else {
			span.SetStatus(observability.StatusOK, "")
		}
		s.observer.Counter(observability.MetricHTTPRequests).Add(ctx, 1,
			observability.String(observability.AttrHTTPRoute, route),
			observability.Int(observability.AttrHTTPStatusCode, status),
		)
		s.observer.Debug(ctx, "request served",
			observability.String(observability.AttrHTTPMethod, c.Request.Method),
			observability.String(observability.AttrHTTPRoute, route),
			observability.Int(observability.AttrHTTPStatusCode, status),
			observability.Duration("duration", time.Since(start)),
		)
	}
}

func sendError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

// statusFor maps an action error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, nodes.ErrUnknownNode), errors.Is(err, flow.ErrNodeNotFound):
		return http.StatusNotFound
	}
	switch action.Classify(err) {
	case action.CategoryBusy:
		return http.StatusConflict
	case action.CategoryValidation, action.CategoryCredential:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}
