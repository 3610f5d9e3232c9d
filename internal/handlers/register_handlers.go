package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/fleetbooks/fleetbooks_app/internal/core/ports/services"
	"github.com/fleetbooks/fleetbooks_app/internal/middleware"
	"github.com/fleetbooks/fleetbooks_app/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	r.GET("/", getHome)

	setupAPIV1Routes(r, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
) {
	// Every v1 route is tenant-scoped; the middleware rejects requests
	// without a tenant header before any handler runs.
	v1 := r.Group("/api/v1", middleware.TenantMiddleware())

	registerAccountRoutes(v1, services.Registry)
	registerJournalRoutes(v1, services.Ledger)
	registerTripRoutes(v1, services.Trip)
	registerReportingRoutes(v1, services.Reporting)
}
