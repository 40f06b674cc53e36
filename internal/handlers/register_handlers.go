package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/timekeep-hq/timekeep_app/cmd/docs"
	portssvc "github.com/timekeep-hq/timekeep_app/internal/core/ports/services"
	"github.com/timekeep-hq/timekeep_app/internal/middleware"
	"github.com/timekeep-hq/timekeep_app/internal/platform/config"
)

// RegisterRoutes sets up all application routes.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	registerAuthRoutes(r, cfg, services)
	registerGoogleOAuthRoutes(r, cfg, services)

	setupAPIV1Routes(r, cfg, services)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to entity
// route registrations. Everything below /api/v1 requires a valid JWT.
func setupAPIV1Routes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerUserRoutes(v1, services.User)
	registerWorkspaceRoutes(v1, services)
}

// registerWorkspaceRoutes registers workspace management plus all the
// workspace-scoped resources nested under /workspaces/:workspace_id.
func registerWorkspaceRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newWorkspaceHandler(services.Workspace, services.Settings)

	workspaces := rg.Group("/workspaces")
	{
		workspaces.POST("", h.createWorkspace)
		workspaces.GET("", h.listUserWorkspaces)
	}

	scoped := rg.Group("/workspaces/:workspace_id")
	{
		scoped.GET("", h.getWorkspace)

		members := scoped.Group("/users")
		{
			members.POST("", h.addUserToWorkspace)
			members.GET("", h.listWorkspaceUsers)
			members.DELETE("/:user_id", h.removeUserFromWorkspace)
		}

		settings := scoped.Group("/settings")
		{
			settings.GET("", h.getSettings)
			settings.PUT("", h.updateSettings)
		}

		registerClientRoutes(scoped, services.Client)
		registerProjectRoutes(scoped, services.Project, services.SalaryCredit)
		registerTimesheetRoutes(scoped, services.Timesheet, services.Project, services.Tracking)
		registerInvoiceRoutes(scoped, services.Invoice, services.Export)
		registerTemplateRoutes(scoped, services.Template)
		registerSalaryCreditRoutes(scoped, services.SalaryCredit)
	}
}

// setupSwaggerRoutes configures the swagger documentation routes.
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		// no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
