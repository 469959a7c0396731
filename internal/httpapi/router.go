package httpapi

import (
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/psahay/classwork/internal/auth"
	"github.com/psahay/classwork/internal/middleware"
)

// Router configures the chi router, middleware, and route handlers.
func (s *Server) Router(allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.Metrics)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Logging)

		// Public.
		r.Post("/login", s.handleLogin)

		// Authenticated, either role.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(s.jwt))

			r.Get("/projects", s.handleListProjects)
			r.Get("/groups", s.handleListGroups)
			r.Post("/groups/leader", s.handleSetLeader)
			r.Get("/grades/{submissionID}", s.handleGradeFor)
		})

		// Student only.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(s.jwt))
			r.Use(middleware.RequireRole(auth.RoleStudent))

			r.Get("/groups/mine", s.handleMyGroup)
			r.Post("/groups", s.handleCreateGroup)
			r.Post("/groups/join", s.handleJoinGroup)
			r.Post("/groups/leave", s.handleLeaveGroup)
			r.Post("/submissions", s.handleSubmit)
			r.Get("/submissions/mine", s.handleMySubmissions)
		})

		// Teacher only.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(s.jwt))
			r.Use(middleware.RequireRole(auth.RoleTeacher))

			r.Post("/students", s.handleAddStudent)
			r.Get("/students", s.handleListStudents)
			r.Patch("/students/{username}/access", s.handleSetAccess)

			r.Post("/projects", s.handleUploadProject)
			r.Patch("/projects/deadline", s.handleSetDeadline)

			r.Post("/teacher/groups", s.handleCreateEmptyGroup)
			r.Post("/groups/members", s.handleAddMember)
			r.Delete("/groups/{name}", s.handleDeleteGroup)

			r.Get("/submissions", s.handleSubjectSubmissions)
			r.Post("/grades", s.handleSaveGrade)
		})
	})

	return r
}
