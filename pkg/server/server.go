// Package server provides the HTTP API over stored runs and the
// analysis engine.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/elonfeng/hashradar/internal/logging"
	"github.com/elonfeng/hashradar/internal/metrics"
	"github.com/elonfeng/hashradar/internal/store"
	"github.com/elonfeng/hashradar/pkg/trend"
)

// Server provides the HTTP API.
type Server struct {
	store      store.Store
	engine     *trend.Engine
	categories []trend.Category
	metrics    *metrics.Metrics
	log        logging.Logger
	port       int
}

// New creates a new HTTP server. A nil metrics disables /metrics.
func New(db store.Store, engine *trend.Engine, categories []trend.Category, m *metrics.Metrics, log logging.Logger, port int) *Server {
	if port == 0 {
		port = 8080
	}
	if log == nil {
		log = logging.New()
	}
	return &Server{
		store:      db,
		engine:     engine,
		categories: categories,
		metrics:    m,
		log:        log,
		port:       port,
	}
}

// Handler returns the API routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/v1/trends", s.handleTrends)
	mux.HandleFunc("/api/v1/categories", s.handleCategories)
	mux.HandleFunc("/api/v1/runs", s.handleRuns)
	mux.HandleFunc("/api/v1/analyze", s.handleAnalyze)
	if s.metrics != nil {
		mux.Handle("/metrics", s.metrics.Handler())
	}
	return mux
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.log.WithFields(logging.Fields{"addr": addr}).Info("server listening")
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleTrends serves ranked results. Without an explicit run it falls
// back to the latest run, scoped to the category when one is given.
func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	q := r.URL.Query()
	opts := store.TrendListOpts{
		RunID:    q.Get("run"),
		Category: q.Get("category"),
	}
	if v := q.Get("min_score"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			opts.MinScore = f
		}
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			opts.Limit = n
		}
	}

	if opts.RunID == "" {
		runID, err := s.store.LatestRunID(r.Context(), opts.Category)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		opts.RunID = runID
	}

	trends, err := s.store.ListTrends(r.Context(), opts)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":  trends,
		"count": len(trends),
		"run":   opts.RunID,
	})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":  s.categories,
		"count": len(s.categories),
	})
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	runs, err := s.store.ListRuns(r.Context(), limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":  runs,
		"count": len(runs),
	})
}

// handleAnalyze runs the pipeline for one category on demand.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	name := r.URL.Query().Get("category")
	cat, ok := s.category(name)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": fmt.Sprintf("unknown category: %s", name)})
		return
	}

	run, trends, err := s.engine.Analyze(r.Context(), cat)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"run":   run,
		"data":  trends,
		"count": len(trends),
	})
}

func (s *Server) category(name string) (trend.Category, bool) {
	for _, cat := range s.categories {
		if strings.EqualFold(cat.Name, name) {
			return cat, true
		}
	}
	return trend.Category{}, false
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
