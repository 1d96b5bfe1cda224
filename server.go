package btvo

import (
	"bufio"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Server is the btvo HTTP server: script upload, voice-over jobs, and
// generated-file management.
type Server struct {
	addr      string
	mux       *http.ServeMux
	logger    zerolog.Logger
	cfg       Config
	store     *Store
	metrics   *Metrics
	bus       *EventBus
	catalog   Catalog
	artifacts *ArtifactDir
	mirror    *ArtifactMirror
	engine    *Engine
}

// NewServer creates a btvo server with all routes registered. mirror may
// be nil when no artifact bucket is configured.
func NewServer(cfg Config, logger zerolog.Logger, synth Synthesizer, mirror *ArtifactMirror) (*Server, error) {
	catalog := DefaultVoices()
	if cfg.VoicesFile != "" {
		loaded, err := LoadVoices(cfg.VoicesFile)
		if err != nil {
			return nil, err
		}
		catalog = loaded
	}

	artifacts, err := NewArtifactDir(cfg.OutputDir)
	if err != nil {
		return nil, err
	}

	s := &Server{
		addr:      cfg.Addr(),
		mux:       http.NewServeMux(),
		logger:    logger,
		cfg:       cfg,
		store:     NewStore(),
		metrics:   NewMetrics(),
		bus:       NewEventBus(),
		catalog:   catalog,
		artifacts: artifacts,
		mirror:    mirror,
	}
	s.engine = NewEngine(synth, s.store, artifacts, mirror, catalog, s.bus, s.metrics, logger, cfg.SynthThreads)
	s.registerRoutes()
	return s, nil
}

// Store returns the server's in-memory store (for tests).
func (s *Server) Store() *Store { return s.store }

func (s *Server) registerRoutes() {
	// Health check
	s.mux.HandleFunc("GET /health", s.handleHealth)

	// Script submission + jobs (jobs.go)
	s.registerJobRoutes()

	// Generated files (files.go)
	s.registerFileRoutes()

	// Management: metrics + status
	s.mux.HandleFunc("GET /internal/metrics", s.handleInternalMetrics)
	s.mux.HandleFunc("GET /internal/status", s.handleInternalStatus)

	// Catch-all: logs unmatched requests
	s.mux.HandleFunc("/", s.handleCatchAll)
}

func (s *Server) handleCatchAll(w http.ResponseWriter, r *http.Request) {
	s.logger.Warn().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("query", r.URL.RawQuery).
		Msg("UNHANDLED REQUEST")
	w.WriteHeader(http.StatusNotFound)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "btvo"})
}

func (s *Server) handleInternalMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.metrics.Snapshot())
}

func (s *Server) handleInternalStatus(w http.ResponseWriter, r *http.Request) {
	jobsByStatus := make(map[string]int)
	for _, j := range s.store.Jobs.List() {
		jobsByStatus[string(j.Status)]++
	}
	files, _ := s.artifacts.List()

	writeJSON(w, http.StatusOK, map[string]any{
		"jobs_by_status": jobsByStatus,
		"files_on_disk":  len(files),
		"output_dir":     s.artifacts.Dir(),
		"synth_threads":  s.engine.threads,
		"uptime_seconds": int(time.Since(s.metrics.StartedAt).Seconds()),
	})
}

// Handler returns the fully wrapped HTTP handler (for tests).
func (s *Server) Handler() http.Handler {
	return otelhttp.NewHandler(s.loggingMiddleware(s.mux), "btvo")
}

// ListenAndServe starts the HTTP server with graceful shutdown.
func (s *Server) ListenAndServe() error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
		// Synthesis requests have no timeout; only idle connections are
		// reaped.
		ReadTimeout:  0,
		WriteTimeout: 0,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown on signal
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
		sig := <-sigCh
		s.logger.Info().Str("signal", sig.String()).Msg("shutting down")
		s.bus.Close()
		srv.Close()
	}()

	host, port, _ := net.SplitHostPort(s.addr)
	if host == "" {
		host = "0.0.0.0"
	}

	certFile := os.Getenv("BTVO_TLS_CERT")
	keyFile := os.Getenv("BTVO_TLS_KEY")
	if certFile != "" && keyFile != "" {
		s.logger.Info().Msgf("btvo listening on https://%s:%s", host, port)
		return srv.ListenAndServeTLS(certFile, keyFile)
	}

	s.logger.Info().Msgf("btvo listening on http://%s:%s", host, port)
	return srv.ListenAndServe()
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, status: 200}
		next.ServeHTTP(rw, r)
		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rw.status).
			Dur("dur", time.Since(start)).
			Msg("request")
	})
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// Unwrap lets http.ResponseController reach the underlying writer so
// websocket upgrades can hijack through the middleware.
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// Hijack satisfies http.Hijacker directly for upgraders that type-assert
// the writer instead of going through http.ResponseController.
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	return http.NewResponseController(rw.ResponseWriter).Hijack()
}
