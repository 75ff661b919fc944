// Package server implements the mdpdf upload service: a form that accepts a
// Markdown file, converts it to PDF and hands the result back as a download.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/inkwell-labs/mdpdf"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// DefaultMaxUploadBytes caps uploads when Config.MaxUploadBytes is unset.
const DefaultMaxUploadBytes int64 = 10 << 20

// Converter converts a Markdown file on disk to a sibling PDF.
type Converter interface {
	Convert(ctx context.Context, sourcePath, stylesheetPath string) (*mdpdf.Result, error)
}

// Pool lends converters for the duration of one conversion.
type Pool interface {
	Acquire(ctx context.Context) (Converter, error)
	Release(Converter)
}

// PoolConverter runs each conversion on a converter borrowed from Pool, so
// concurrent requests never share a browser.
type PoolConverter struct {
	Pool Pool
}

// Convert acquires a converter, converts and releases it.
func (p PoolConverter) Convert(ctx context.Context, sourcePath, stylesheetPath string) (*mdpdf.Result, error) {
	conv, err := p.Pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", mdpdf.ErrUnexpected, err)
	}
	defer p.Pool.Release(conv)
	return conv.Convert(ctx, sourcePath, stylesheetPath)
}

// Config configures a Server.
type Config struct {
	// UploadDir holds uploaded Markdown files and their PDFs. It must already
	// exist; see PrepareUploadDir.
	UploadDir string
	// Stylesheet is passed to every conversion. Empty selects the
	// converter's default.
	Stylesheet     string
	MaxUploadBytes int64
	Logger         *slog.Logger
}

// Server serves the upload form, conversion and download endpoints.
type Server struct {
	conv       Converter
	uploadDir  string
	stylesheet string
	maxUpload  int64
	logger     *slog.Logger
	tmpl       *template.Template
	router     chi.Router
}

// New builds a Server. cfg.UploadDir is used as given; callers resolve it
// once at startup with PrepareUploadDir.
func New(conv Converter, cfg Config) (*Server, error) {
	if conv == nil {
		return nil, errors.New("server: nil converter")
	}
	if cfg.UploadDir == "" {
		return nil, errors.New("server: empty upload directory")
	}

	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("server: parsing templates: %w", err)
	}

	s := &Server{
		conv:       conv,
		uploadDir:  cfg.UploadDir,
		stylesheet: cfg.Stylesheet,
		maxUpload:  cfg.MaxUploadBytes,
		logger:     cfg.Logger,
		tmpl:       tmpl,
	}
	if s.maxUpload <= 0 {
		s.maxUpload = DefaultMaxUploadBytes
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(securityHeaders)
	r.Use(flashMiddleware)

	static, _ := fs.Sub(staticFS, "static")

	r.Get("/", s.handleIndex)
	r.Post("/", s.handleUpload)
	r.Get("/uploads/{name}", s.handleDownload)
	r.Get("/healthz", handleHealth)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(static)))
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Shutdown timeout for in-flight conversions.
const shutdownTimeout = 30 * time.Second

// ListenAndServe serves h on addr until ctx is canceled, then shuts down
// gracefully.
func ListenAndServe(ctx context.Context, addr string, h http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
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

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}
