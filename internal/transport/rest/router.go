package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/aegisedu/campus-portal/internal/auth"
	"github.com/aegisedu/campus-portal/internal/dashboard"
	"github.com/aegisedu/campus-portal/internal/grievance"
	"github.com/aegisedu/campus-portal/internal/internship"
	"github.com/aegisedu/campus-portal/internal/resource"
	"github.com/aegisedu/campus-portal/internal/transport/middleware"
	"github.com/aegisedu/campus-portal/internal/transport/swagger"
	"github.com/aegisedu/campus-portal/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

// RouterConfig carries what route registration needs beyond the handlers.
type RouterConfig struct {
	AllowedOrigins []string
	UploadDir      string
}

func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	cfg RouterConfig,
	authHandler *auth.Handler,
	userHandler *user.Handler,
	grievanceHandler *grievance.Handler,
	resourceHandler *resource.Handler,
	internshipHandler *internship.Handler,
	dashboardHandler *dashboard.Handler,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db, cfg.UploadDir)

	// Apply global middleware
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Health check routes
	router.Get("/health", healthHandler.healthCheckHandler)
	router.Get("/ping", healthHandler.pingHandler)

	// Serve OpenAPI spec and Swagger UI at root
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	// Public routes. Logout only clears the cookie, so it stays unguarded.
	if authHandler != nil {
		router.Get("/", authHandler.Home)
		router.Post("/login", authHandler.Login)
		router.Post("/register", authHandler.Register)
		router.Get("/logout", authHandler.Logout)
	}

	if authHandler == nil {
		return
	}

	// Everything below requires a session
	router.Group(func(pr chi.Router) {
		pr.Use(authHandler.SessionMiddleware)

		// Downloads are open to any signed-in role
		if resourceHandler != nil {
			pr.Get("/download/{filename}", resourceHandler.Download)
		}

		pr.Route("/student", func(sr chi.Router) {
			sr.Use(authHandler.RequireRoles(auth.RoleStudent))

			if dashboardHandler != nil {
				sr.Get("/dashboard", dashboardHandler.StudentDashboard)
			}
			if grievanceHandler != nil {
				sr.Post("/grievance/new", grievanceHandler.Create)
				sr.Get("/grievances", grievanceHandler.ListMine)
			}
			if internshipHandler != nil {
				sr.Get("/internships", internshipHandler.List)
			}
			if resourceHandler != nil {
				sr.Get("/resources", resourceHandler.List)
			}
		})

		pr.Route("/faculty", func(fr chi.Router) {
			fr.Use(authHandler.RequireRoles(auth.RoleFaculty))

			if dashboardHandler != nil {
				fr.Get("/dashboard", dashboardHandler.FacultyDashboard)
			}
			if resourceHandler != nil {
				fr.Get("/resources", resourceHandler.List)
				fr.Post("/resources", resourceHandler.Upload)
			}
		})

		pr.Route("/admin", func(ar chi.Router) {
			ar.Use(authHandler.RequireRoles(auth.RoleAdmin))

			if dashboardHandler != nil {
				ar.Get("/dashboard", dashboardHandler.AdminDashboard)
			}
			if grievanceHandler != nil {
				ar.Get("/grievances", grievanceHandler.ListAll)
				ar.Post("/grievance/update/{id}", grievanceHandler.Update)
			}
			if internshipHandler != nil {
				ar.Get("/internships", internshipHandler.List)
				ar.Post("/internships", internshipHandler.Create)
				ar.Get("/internship/delete/{id}", internshipHandler.Delete)
			}
			if resourceHandler != nil {
				ar.Get("/resources", resourceHandler.List)
				ar.Post("/resources", resourceHandler.Upload)
				ar.Get("/resources/delete/{id}", resourceHandler.Delete)
			}
			if userHandler != nil {
				ar.Get("/users", userHandler.ListUsers)
			}
		})
	})
}
