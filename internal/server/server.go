package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/roach88/lily/internal/engine"
	"github.com/roach88/lily/internal/export"
	"github.com/roach88/lily/internal/ir"
)

// DefaultMaxBodyBytes bounds a /generate request body.
const DefaultMaxBodyBytes = 1 << 20

// Generator runs one generation. Implemented by engine.Engine.
type Generator interface {
	Generate(ctx context.Context, def ir.Definition) (*engine.Generation, error)
}

// History records generations. Implemented by store.Store.
type History interface {
	WriteGeneration(ctx context.Context, gen *engine.Generation, viewport *ir.Rect) (int64, error)
	Ping(ctx context.Context) error
}

// Options configures the handler. Only Engine is required.
type Options struct {
	Engine Generator

	// History, if set, records every successful generation.
	History History

	// Viewport is recorded with each generation so it can be replayed; it
	// should match the engine's viewport.
	Viewport *ir.Rect

	// Metrics, if set, is served at /metrics.
	Metrics http.Handler

	// Timeout bounds one generation. Zero means no limit beyond the
	// client's own connection.
	Timeout time.Duration

	MaxBodyBytes int64
	Logger       *slog.Logger
}

type server struct {
	opts Options
	log  *slog.Logger
}

// NewHandler creates the HTTP handler.
func NewHandler(opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	s := &server{opts: opts, log: opts.Logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Post("/generate", s.generate)
	r.Get("/healthz", s.healthz)
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}
	return r
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// generate handles POST /generate.
func (s *server) generate(w http.ResponseWriter, r *http.Request) {
	format := export.FormatJSON
	if q := r.URL.Query().Get("format"); q != "" {
		var err error
		if format, err = export.ParseFormat(q); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	var body GenerateRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, s.opts.MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.log.Warn("generate: invalid request body", "err", err)
		return
	}

	def, err := body.Definition()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	gen, err := s.opts.Engine.Generate(ctx, def)
	if err != nil {
		status := generateStatus(err)
		http.Error(w, err.Error(), status)
		if status == http.StatusInternalServerError {
			s.log.Error("generate failed", "err", err)
		}
		return
	}

	var seq int64
	if s.opts.History != nil {
		if seq, err = s.opts.History.WriteGeneration(ctx, gen, s.opts.Viewport); err != nil {
			http.Error(w, "Failed to record generation", http.StatusInternalServerError)
			s.log.Error("generate: history write failed", "run_id", gen.RunID, "err", err)
			return
		}
	}

	w.Header().Set("X-Run-ID", gen.RunID)
	if seq > 0 {
		w.Header().Set("X-Seq", strconv.FormatInt(seq, 10))
	}

	if format != export.FormatJSON {
		w.Header().Set("Content-Type", format.ContentType())
		if err := export.Write(w, format, gen.Mesh); err != nil {
			s.log.Error("generate: response encode failed", "err", err)
		}
		return
	}

	meshHash, err := ir.MeshHash(gen.Mesh)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	resp := GenerateResponse{
		RunID:          gen.RunID,
		DefinitionHash: gen.DefinitionHash,
		MeshHash:       meshHash,
		Seq:            seq,
		Stats:          gen.Stats,
		Mesh:           gen.Mesh,
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.log.Error("generate: response encode failed", "err", err)
	}
}

func generateStatus(err error) int {
	switch {
	case engine.IsSymbolQuotaError(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// healthz handles GET /healthz.
func (s *server) healthz(w http.ResponseWriter, r *http.Request) {
	if s.opts.History != nil {
		if err := s.opts.History.Ping(r.Context()); err != nil {
			http.Error(w, "history unavailable", http.StatusServiceUnavailable)
			s.log.Warn("healthz: history ping failed", "err", err)
			return
		}
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "ok\n")
}
