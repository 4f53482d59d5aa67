package server

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/at-ishikawa/dreamer/internal/metrics"
)

// NewRouter registers the routes of h. m may be nil to disable metrics.
func NewRouter(h *Handler, m *metrics.Metrics, allowedOrigins []string) http.Handler {
	router := mux.NewRouter()
	router.Use(loggingMiddleware)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/meanings", h.Interpret).Methods(http.MethodPost)
	api.HandleFunc("/meanings/{word}", h.GetMeaning).Methods(http.MethodGet)
	api.HandleFunc("/dream-meaning/{id}", h.GetDreamMeaning).Methods(http.MethodGet)
	api.HandleFunc("/languages", h.GetLanguages).Methods(http.MethodGet)
	router.HandleFunc("/healthz", h.Healthz).Methods(http.MethodGet)

	if m != nil {
		m.PathLabel = routeTemplate
		router.Use(m.Instrument)
		router.Handle("/metrics", m.Handler()).Methods(http.MethodGet)
	}

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return corsMiddleware(allowedOrigins)(router)
}

// routeTemplate labels a request with its route, so /api/meanings/casa becomes /api/meanings/{word}.
func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if template, err := route.GetPathTemplate(); err == nil {
			return template
		}
	}
	return "unknown"
}

func corsMiddleware(allowedOrigins []string) mux.MiddlewareFunc {
	allowAll := slices.Contains(allowedOrigins, "*")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && (allowAll || slices.Contains(allowedOrigins, origin)) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
				w.Header().Set("Access-Control-Max-Age", "3600")
				w.Header().Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := metrics.NewStatusRecorder(w)
		start := time.Now()
		next.ServeHTTP(rec, r)

		level := slog.LevelInfo
		if rec.Status() >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		slog.Default().Log(r.Context(), level, "request",
			"method", r.Method,
			"path", strings.ToValidUTF8(r.URL.Path, ""),
			"status", rec.Status(),
			"duration", time.Since(start),
		)
	})
}
