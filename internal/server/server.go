package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/simonhull/firebird-suite/heron"
	"github.com/simonhull/firebird-suite/heron/internal/site"
	"github.com/simonhull/firebird-suite/heron/pkg/logger"
)

const (
	HealthRoute = "/_api/health"
	PagesRoute  = "/_api/pages/*"
)

// Server serves the site written to a directory. Page lookups read the
// site's manifest, which Reload refreshes after a rebuild.
type Server struct {
	dir string
	log logger.Logger

	mu    sync.RWMutex
	pages map[string]site.ManifestEntry
	built time.Time
}

// New creates a server for the site in dir.
func New(dir string, log logger.Logger) *Server {
	if log == nil {
		log = logger.NewSilentLogger()
	}
	return &Server{dir: dir, log: log, pages: make(map[string]site.ManifestEntry)}
}

// Reload re-reads the manifest. A missing manifest leaves the server with
// no pages.
func (s *Server) Reload() error {
	pages := make(map[string]site.ManifestEntry)

	data, err := os.ReadFile(filepath.Join(s.dir, site.ManifestFile))
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return fmt.Errorf("reading manifest: %w", err)
	default:
		var entries []site.ManifestEntry
		if err := json.Unmarshal(data, &entries); err != nil {
			return fmt.Errorf("parsing manifest: %w", err)
		}
		for _, e := range entries {
			pages[e.URL] = e
		}
	}

	s.mu.Lock()
	s.pages = pages
	s.built = time.Now()
	s.mu.Unlock()

	s.log.Debug("Loaded manifest", logger.F("pages", len(pages)))
	return nil
}

// Routes returns the function routes served ahead of the static files.
func (s *Server) Routes() Routes {
	return Routes{
		HealthRoute: http.HandlerFunc(s.health),
		PagesRoute:  http.HandlerFunc(s.page),
	}
}

// Handler returns the complete request handler.
func (s *Server) Handler() http.Handler {
	return Middleware(s.Routes(), http.FileServer(http.Dir(s.dir)))
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.logRequests(s.Handler()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Serving reference site", logger.F("addr", addr), logger.F("dir", s.dir))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("Request",
			logger.F("method", r.Method),
			logger.F("path", r.URL.Path),
			logger.F("duration", time.Since(start)))
	})
}

type healthResponse struct {
	Status  string    `json:"status"`
	Version string    `json:"version"`
	Pages   int       `json:"pages"`
	Built   time.Time `json:"built"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	resp := healthResponse{Status: "ok", Version: heron.Version, Pages: len(s.pages), Built: s.built}
	s.mu.RUnlock()
	writeJSON(w, http.StatusOK, resp)
}

// page looks up the plan of the page whose URL follows the route prefix,
// so /_api/pages/api/deno/~/Deno.open describes /api/deno/~/Deno.open.
func (s *Server) page(w http.ResponseWriter, r *http.Request) {
	// Page URLs are stored escaped, as they appear in links.
	url := strings.TrimPrefix(r.URL.EscapedPath(), strings.TrimSuffix(PagesRoute, "/*"))
	if url == "" {
		url = "/"
	}

	s.mu.RLock()
	entry, ok := s.pages[url]
	if !ok && !strings.HasSuffix(url, "/") {
		entry, ok = s.pages[url+"/"]
	}
	s.mu.RUnlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no page at " + url})
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
