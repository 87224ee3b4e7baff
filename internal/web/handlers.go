package web

import (
	"encoding/json"
	"net/http"
)

func (s *Server) handleFiles(w http.ResponseWriter, r *http.Request) {
	convs, err := s.Store.Conversions()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, convs)
}

func (s *Server) handleDocuments(w http.ResponseWriter, r *http.Request) {
	file := r.URL.Query().Get("file")
	if file == "" {
		http.Error(w, "missing 'file' parameter", http.StatusBadRequest)
		return
	}

	docs, err := s.Store.Documents(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, docs)
}

// handleDiagnostics lists diagnostics for one file, or all files without a
// 'file' parameter.
func (s *Server) handleDiagnostics(w http.ResponseWriter, r *http.Request) {
	diags, err := s.Store.Diagnostics(r.URL.Query().Get("file"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, diags)
}

func (s *Server) handleMaps(w http.ResponseWriter, r *http.Request) {
	maps, err := s.Store.Maps()
	if err != nil {
		writeJSON(w, []any{})
		return
	}
	writeJSON(w, maps)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	// Wildcard CORS: local preview tool, not a public API.
	w.Header().Set("Access-Control-Allow-Origin", "*")
	if v == nil {
		_, _ = w.Write([]byte("[]"))
		return
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}
