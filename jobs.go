package btvo

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

func (s *Server) registerJobRoutes() {
	s.mux.HandleFunc("POST /v1/scripts", s.handleSubmitScript)
	s.mux.HandleFunc("GET /v1/jobs", s.handleListJobs)
	s.mux.HandleFunc("GET /v1/jobs/{id}", s.handleGetJob)
	s.mux.HandleFunc("DELETE /v1/jobs", s.handlePruneJobs)
	s.mux.HandleFunc("DELETE /v1/jobs/{id}", s.handleDeleteJob)
	s.mux.HandleFunc("GET /v1/jobs/{id}/events", s.handleJobEvents)
	s.mux.HandleFunc("GET /v1/voices", s.handleListVoices)
}

// handleSubmitScript accepts a dialogue script as either a multipart
// upload (field "script", must be a .txt file) or a raw text body, and
// starts a voice-over job for it.
func (s *Server) handleSubmitScript(w http.ResponseWriter, r *http.Request) {
	name, content, err := readScript(r)
	if err != nil {
		writeError(w, err)
		return
	}

	job := Job{
		ID:        uuid.New().String(),
		Script:    name,
		Status:    JobPending,
		CreatedAt: time.Now(),
	}
	s.store.Jobs.Put(job.ID, job)
	s.metrics.RecordScriptSubmit()

	s.logger.Info().
		Str("job_id", job.ID).
		Str("script", name).
		Int("size", len(content)).
		Msg("script submitted")

	// Jobs carry no deadline: synthesis runs until the API answers.
	go s.engine.Run(context.Background(), job.ID, content)

	writeJSON(w, http.StatusAccepted, job)
}

// readScript extracts the script name and content from the request.
func readScript(r *http.Request) (string, string, error) {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(16 << 20); err != nil {
			return "", "", &InvalidParameterError{Message: "failed to parse multipart form"}
		}
		file, header, err := r.FormFile("script")
		if err != nil {
			return "", "", &InvalidParameterError{Message: "missing script field"}
		}
		defer file.Close()
		if !strings.HasSuffix(strings.ToLower(header.Filename), ".txt") {
			return "", "", &InvalidParameterError{Message: "Invalid File Type: Please upload a .txt file."}
		}
		data, err := io.ReadAll(file)
		if err != nil {
			return "", "", &ServerError{Message: "failed to read script file"}
		}
		return header.Filename, string(data), nil
	}

	defer r.Body.Close()
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return "", "", &ServerError{Message: "failed to read request body"}
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return "", "", &InvalidParameterError{Message: "Please upload a script file."}
	}
	return "script.txt", string(data), nil
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.ListJobs())
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	job, ok := s.store.Jobs.Get(id)
	if !ok {
		writeError(w, &NotFoundError{Resource: "job", ID: id})
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	job, ok := s.store.Jobs.Get(id)
	if !ok {
		writeError(w, &NotFoundError{Resource: "job", ID: id})
		return
	}
	if job.Status == JobRunning {
		writeError(w, &ConflictError{Message: "job is still running"})
		return
	}
	s.store.Jobs.Delete(id)
	w.WriteHeader(http.StatusNoContent)
}

// handlePruneJobs removes all finished jobs in one sweep.
func (s *Server) handlePruneJobs(w http.ResponseWriter, r *http.Request) {
	pruned := s.store.PruneFinishedJobs()
	s.logger.Info().
		Int("pruned", len(pruned)).
		Int("remaining", s.store.Jobs.Len()).
		Msg("pruned finished jobs")
	writeJSON(w, http.StatusOK, map[string]any{"pruned": len(pruned)})
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleJobEvents streams job events over a websocket until the job
// completes or the client disconnects.
func (s *Server) handleJobEvents(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := s.store.Jobs.Get(id); !ok {
		writeError(w, &NotFoundError{Resource: "job", ID: id})
		return
	}

	subID := uuid.New().String()
	events := s.bus.Subscribe(subID)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.bus.Unsubscribe(subID)
		return
	}
	defer conn.Close()
	defer s.bus.Unsubscribe(subID)

	// The engine publishes job_complete after the store update, so a job
	// already complete here will produce no further events.
	if job, ok := s.store.Jobs.Get(id); ok && job.Status == JobComplete {
		_ = conn.WriteJSON(JobEvent{Type: "job_complete", JobID: id, Time: time.Now().Unix()})
		return
	}

	for event := range events {
		if event.JobID != id {
			continue
		}
		if err := conn.WriteJSON(event); err != nil {
			return
		}
		if event.Type == "job_complete" {
			return
		}
	}
}

func (s *Server) handleListVoices(w http.ResponseWriter, r *http.Request) {
	type voice struct {
		Character string `json:"character"`
		Voice     string `json:"voice"`
	}
	voices := make([]voice, 0, len(s.catalog))
	for _, character := range s.catalog.Characters() {
		v, _ := s.catalog.Lookup(character)
		voices = append(voices, voice{Character: character, Voice: v})
	}
	writeJSON(w, http.StatusOK, voices)
}
