// Package mirror serves a local catalog file over HTTP so view servers can
// load it with an http source, the way a static host would.
package mirror

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"garagehub/internal/loader"
)

// Server serves the catalog document and, optionally, an image directory.
type Server struct {
	source    *loader.FileSource
	imagesDir string
	router    chi.Router
}

// New serves the catalog at path. YAML files are converted to JSON. An
// empty imagesDir disables /images. mws run before the built-in middleware.
func New(path, imagesDir string, mws ...func(http.Handler) http.Handler) *Server {
	s := &Server{
		source:    loader.NewFileSource(path),
		imagesDir: imagesDir,
		router:    chi.NewRouter(),
	}
	s.router.Use(mws...)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))

	s.router.Get("/cars.json", s.handleCatalog)
	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	if imagesDir != "" {
		fileServer(s.router, "/images", http.Dir(imagesDir))
	}
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// handleCatalog re-reads the file on every request so edits show up on the
// next reload of the view servers. An invalid file is reported instead of
// being passed on.
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	data, err := s.source.Fetch(r.Context())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, os.ErrNotExist) {
			status = http.StatusNotFound
		}
		respondJSON(w, status, map[string]string{"error": err.Error()})
		return
	}
	if _, err := loader.Decode(data, loader.DecodeOptions{}); err != nil {
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func fileServer(r chi.Router, path string, root http.FileSystem) {
	if strings.ContainsAny(path, "{}*") {
		panic("fileServer does not permit URL parameters")
	}
	if path != "/" && path[len(path)-1] != '/' {
		r.Get(path, http.RedirectHandler(path+"/", http.StatusMovedPermanently).ServeHTTP)
		path += "/"
	}
	path += "*"

	r.Get(path, func(w http.ResponseWriter, req *http.Request) {
		rctx := chi.RouteContext(req.Context())
		prefix := strings.TrimSuffix(rctx.RoutePattern(), "/*")
		http.StripPrefix(prefix, http.FileServer(root)).ServeHTTP(w, req)
	})
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
