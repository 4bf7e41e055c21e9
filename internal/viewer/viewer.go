package viewer

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"FxLens/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Snapshot is one rendered chart with the table it was drawn from.
type Snapshot struct {
	RunID     string
	HTML      []byte
	Table     model.Table
	UpdatedAt time.Time
}

// Store holds the latest snapshot. Safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	snap *Snapshot
}

// Publish replaces the current snapshot.
func (s *Store) Publish(snap *Snapshot) {
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
}

// Latest returns the current snapshot, or nil before the first publish.
func (s *Store) Latest() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Handler serves the latest chart.
type Handler struct {
	Store  *Store
	Logger *zap.Logger
}

// NewRouter wires the viewer routes.
func NewRouter(store *Store, logger *zap.Logger) http.Handler {
	h := Handler{Store: store, Logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/", h.Chart)
	r.Get("/table.json", h.Table)
	r.Get("/healthz", h.Health)
	return r
}

func (h Handler) Chart(w http.ResponseWriter, r *http.Request) {
	snap := h.Store.Latest()
	if snap == nil {
		http.Error(w, "chart not rendered yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Run-Id", snap.RunID)
	if _, err := w.Write(snap.HTML); err != nil {
		h.Logger.Error("write chart", zap.Error(err))
	}
}

func (h Handler) Table(w http.ResponseWriter, r *http.Request) {
	snap := h.Store.Latest()
	if snap == nil {
		http.Error(w, "chart not rendered yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	resp := struct {
		RunID     string      `json:"run_id"`
		UpdatedAt time.Time   `json:"updated_at"`
		Table     model.Table `json:"table"`
	}{snap.RunID, snap.UpdatedAt, snap.Table}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.Logger.Error("encode table", zap.Error(err))
	}
}

func (h Handler) Health(w http.ResponseWriter, r *http.Request) {
	if h.Store.Latest() == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.Logger.Debug("request",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)))
	})
}
