package web

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/filatov87/SEO-BOG/internal/store"
)

//go:embed all:static
var staticFS embed.FS

// Server serves the conversion preview page and its API.
type Server struct {
	Store *store.Store
	Addr  string
}

// Handler builds the server's routes.
func (s *Server) Handler() (http.Handler, error) {
	mux := http.NewServeMux()

	// API endpoints
	mux.HandleFunc("/api/files", s.handleFiles)
	mux.HandleFunc("/api/documents", s.handleDocuments)
	mux.HandleFunc("/api/diagnostics", s.handleDiagnostics)
	mux.HandleFunc("/api/maps", s.handleMaps)

	// Static files
	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("creating sub filesystem: %w", err)
	}
	mux.Handle("/", http.FileServer(http.FS(staticSub)))
	return mux, nil
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	h, err := s.Handler()
	if err != nil {
		return err
	}
	fmt.Printf("Serving at http://%s\n", s.Addr)
	return http.ListenAndServe(s.Addr, h)
}
