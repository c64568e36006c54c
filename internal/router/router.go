package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ruangkarya/ruangkarya-api/internal/config"
	"github.com/ruangkarya/ruangkarya-api/internal/handler"
	"github.com/ruangkarya/ruangkarya-api/internal/middleware"
	"github.com/ruangkarya/ruangkarya-api/internal/models"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	ProjectHandler    *handler.ProjectHandler
	TaskHandler       *handler.TaskHandler
	EvaluationHandler *handler.EvaluationHandler
	ChatHandler       *handler.ChatHandler
	GalleryHandler    *handler.GalleryHandler
	ResourceHandler   *handler.ResourceHandler
	StoreHandler      *handler.StoreHandler
	DashboardHandler  *handler.DashboardHandler
	UploadHandler     *handler.UploadHandler
	AdminUserHandler  *handler.AdminUserHandler
	JWTMiddleware     fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	// Public catalog surface: gallery, learning resources, school store.
	if deps.GalleryHandler != nil {
		deps.GalleryHandler.Register(api.Group("/gallery"))
	}
	if deps.ResourceHandler != nil {
		deps.ResourceHandler.Register(api.Group("/resources"))
	}
	if deps.StoreHandler != nil {
		deps.StoreHandler.Register(api.Group("/store"))
	}

	// Projects and everything scoped under a single project.
	if deps.ProjectHandler != nil {
		projects := api.Group("/projects", jwtMiddleware)
		deps.ProjectHandler.Register(projects)

		project := projects.Group("/:projectID")
		if deps.TaskHandler != nil {
			deps.TaskHandler.Register(project.Group("/tasks"))
		}
		if deps.EvaluationHandler != nil {
			evaluation := project.Group("/evaluation",
				middleware.RequireRole(models.RoleTeacher, models.RoleAdmin))
			deps.EvaluationHandler.Register(evaluation)
		}
		if deps.ChatHandler != nil {
			deps.ChatHandler.Register(project.Group("/chat"))
		}
	}

	if deps.DashboardHandler != nil {
		dashboard := api.Group("/dashboard", jwtMiddleware,
			middleware.RequireRole(models.RoleTeacher, models.RoleAdmin))
		deps.DashboardHandler.Register(dashboard)
	}

	if deps.UploadHandler != nil {
		uploads := api.Group("/uploads", jwtMiddleware)
		deps.UploadHandler.Register(uploads)
	}

	// Admin CMS surface.
	admin := api.Group("/admin", jwtMiddleware, middleware.RequireRole(models.RoleAdmin))
	if deps.GalleryHandler != nil {
		deps.GalleryHandler.RegisterAdmin(admin.Group("/gallery"))
	}
	if deps.ResourceHandler != nil {
		deps.ResourceHandler.RegisterAdmin(admin.Group("/resources"))
	}
	if deps.StoreHandler != nil {
		deps.StoreHandler.RegisterAdmin(admin.Group("/store"))
	}
	if deps.AdminUserHandler != nil {
		deps.AdminUserHandler.Register(admin.Group("/users"))
	}
}
