package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/doorstep-hq/doorstep/pkg/usecase"
	"github.com/doorstep-hq/doorstep/pkg/utils/logging"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
}

func New(uc *usecase.UseCases) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)

	// Client portal endpoints. The portal is the external event source of the
	// automation core: task completions, file uploads, and signatures.
	r.Route("/api/portal", func(r chi.Router) {
		r.Post("/tasks/{taskID}/complete", s.completeTaskHandler)
		r.Post("/tasks/{taskID}/files", s.fileUploadedHandler)
		r.Post("/signatures/{signatureID}/view", s.viewSignatureHandler)
		r.Post("/signatures/{signatureID}/sign", s.signHandler)
	})

	// Staff-facing surface for diagnosing automation runs
	r.Get("/api/projects/{projectID}/executions", s.listExecutionsHandler)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
