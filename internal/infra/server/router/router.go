// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/finance-assistant/backend/internal/integration/entrypoint/controller"
	"github.com/finance-assistant/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine              *gin.Engine
	healthController    *controller.HealthController
	entryController     *controller.EntryController
	receiptController   *controller.ReceiptController
	reportController    *controller.ReportController
	assistantController *controller.AssistantController
	principalMiddleware *middleware.PrincipalMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	entryController *controller.EntryController,
	receiptController *controller.ReceiptController,
	reportController *controller.ReportController,
	assistantController *controller.AssistantController,
	principalMiddleware *middleware.PrincipalMiddleware,
) *Router {
	return &Router{
		healthController:    healthController,
		entryController:     entryController,
		receiptController:   receiptController,
		reportController:    reportController,
		assistantController: assistantController,
		principalMiddleware: principalMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes. Every business route
// runs behind the principal middleware.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	v1.Use(r.principalMiddleware.Resolve())
	{
		assistant := v1.Group("/assistant")
		{
			assistant.POST("/messages", r.assistantController.ProcessMessage)
		}

		entries := v1.Group("/entries")
		{
			entries.GET("", r.entryController.List)
			entries.POST("", r.entryController.Create)
			entries.POST("/extract", r.entryController.Extract)
			entries.PATCH("/:id", r.entryController.Update)
			entries.DELETE("/:id", r.entryController.Delete)
		}

		receipts := v1.Group("/receipts")
		{
			receipts.POST("/process", r.receiptController.Process)
			receipts.POST("/quality", r.receiptController.Quality)
			receipts.POST("/confirm", r.receiptController.Confirm)
		}

		reports := v1.Group("/reports")
		{
			reports.GET("", r.reportController.Build)
			reports.POST("/insights", r.reportController.Insights)
			reports.POST("/email", r.reportController.SendEmail)
		}
	}
}
