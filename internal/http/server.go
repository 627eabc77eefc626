// Package http exposes the financial state over a JSON API and serves the
// embedded dashboard.
package http

import (
	"context"
	"io/fs"
	"net/http"
	"time"

	"github.com/Farheen-Banu26/PersonalFinanceGuardian/internal/cache"
	"github.com/Farheen-Banu26/PersonalFinanceGuardian/internal/core"
	"github.com/Farheen-Banu26/PersonalFinanceGuardian/internal/finance"
	"github.com/Farheen-Banu26/PersonalFinanceGuardian/internal/log"
	appweb "github.com/Farheen-Banu26/PersonalFinanceGuardian/web"
)

const summaryCacheKey = "summary"

type Server struct {
	http.Server

	store        *finance.Store
	logger       *log.Logger
	summaryCache *cache.LRUCache[core.FinancialSummary]
	events       *eventHub
}

// NewServer builds the API server around a financial store. The summary is
// cached and invalidated through the store's change notifications, which also
// feed the SSE event stream.
func NewServer(addr string, store *finance.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}

	mux := http.NewServeMux()
	s := &Server{
		Server: http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
		store:        store,
		logger:       logger.WithComponent(log.ComponentHTTP),
		summaryCache: cache.NewLRUCache[core.FinancialSummary](1, 5*time.Minute),
		events:       newEventHub(),
	}

	store.Subscribe(func() {
		s.summaryCache.Delete(summaryCacheKey)
		s.events.broadcast()
	})

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.FileServer(http.FS(sub))
		mux.Handle("GET /{file...}", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600")
			static.ServeHTTP(w, r)
		}))
	} else {
		s.logger.Warn("Failed to mount embedded static assets", log.FieldError, err)
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /api/transactions", s.withLogging(s.handleListTransactions))
	mux.HandleFunc("POST /api/transactions", s.withLogging(s.handleCreateTransaction))
	mux.HandleFunc("PATCH /api/transactions/{id}", s.withLogging(s.handleUpdateTransaction))
	mux.HandleFunc("DELETE /api/transactions/{id}", s.withLogging(s.handleDeleteTransaction))

	mux.HandleFunc("GET /api/goals", s.withLogging(s.handleListGoals))
	mux.HandleFunc("POST /api/goals", s.withLogging(s.handleCreateGoal))
	mux.HandleFunc("PATCH /api/goals/{id}", s.withLogging(s.handleUpdateGoal))
	mux.HandleFunc("DELETE /api/goals/{id}", s.withLogging(s.handleDeleteGoal))
	mux.HandleFunc("POST /api/goals/{id}/allocate", s.withLogging(s.handleAllocateGoal))

	mux.HandleFunc("GET /api/summary", s.withLogging(s.handleSummary))
	mux.HandleFunc("GET /api/categories", s.withLogging(s.handleCategories))
	mux.HandleFunc("GET /api/events", s.handleEvents)

	return s
}

// Shutdown closes the SSE streams before draining in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.events.closeAll()
	return s.Server.Shutdown(ctx)
}

// withLogging tags each request with an id and logs start and completion.
func (s *Server) withLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := generateRequestID()

		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		rw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next(rw, r)

		s.logger.InfoContext(ctx, "Request completed",
			log.FieldRequestID, requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatusCode, rw.status,
			log.FieldDuration, time.Since(start).Milliseconds())
	}
}

type requestIDKey struct{}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ready"))
}
