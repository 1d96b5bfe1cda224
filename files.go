package btvo

import (
	"fmt"
	"net/http"
)

func (s *Server) registerFileRoutes() {
	s.mux.HandleFunc("GET /v1/files", s.handleListFiles)
	s.mux.HandleFunc("GET /v1/files/{name}", s.handleGetFile)
	s.mux.HandleFunc("DELETE /v1/files", s.handleClearFiles)
}

func (s *Server) handleListFiles(w http.ResponseWriter, r *http.Request) {
	files, err := s.artifacts.List()
	if err != nil {
		writeError(w, &ServerError{Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, files)
}

func (s *Server) handleGetFile(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	path, err := s.artifacts.Path(name)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "audio/mpeg")
	http.ServeFile(w, r, path)
}

// handleClearFiles removes every generated file, locally and from the
// mirror bucket when one is configured.
func (s *Server) handleClearFiles(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.artifacts.Clear()
	if err != nil {
		writeError(w, &ServerError{Message: err.Error()})
		return
	}
	if s.mirror != nil {
		if _, err := s.mirror.Clear(r.Context()); err != nil {
			s.logger.Warn().Err(err).Msg("mirror clear failed")
		}
	}
	s.metrics.RecordFilesCleared(deleted)

	s.logger.Info().Int("deleted", deleted).Msg("cleared generated files")
	writeJSON(w, http.StatusOK, map[string]any{
		"deleted": deleted,
		"message": fmt.Sprintf("Cleared %d files.", deleted),
	})
}
