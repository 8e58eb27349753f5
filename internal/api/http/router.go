package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/asset-maintenance/internal/api/http/handlers"
	"github.com/spec-kit/asset-maintenance/internal/auth"
	"github.com/spec-kit/asset-maintenance/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Tickets        *handlers.TicketsHandler
	Technician     *handlers.TechnicianTicketsHandler
	Admin          *handlers.AdminTicketsHandler
	Dashboard      *handlers.DashboardHandler
	Directory      *handlers.DirectoryHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	authenticated := app.Group("", cfg.AuthMiddleware.Handle)

	employee := authenticated.Group("/tickets", auth.RequireEmployee())
	employee.Post("", cfg.Tickets.CreateTicket)
	employee.Get("", cfg.Tickets.ListTickets)
	employee.Post("/:id/cancel", cfg.Tickets.CancelTicket)

	technician := authenticated.Group("/technician/tickets", auth.RequireTechnicianRole())
	technician.Get("", cfg.Technician.ListActive)
	technician.Get("/history", cfg.Technician.ListHistory)
	technician.Post("/:id/progress", cfg.Technician.UpdateProgress)

	admin := authenticated.Group("/admin/tickets", auth.RequireTechnicianRole(domain.TechnicianRoleAdmin))
	admin.Get("/assignable", cfg.Admin.ListAssignable)
	admin.Get("/schedulable", cfg.Admin.ListSchedulable)
	admin.Get("/history", cfg.Admin.ListHistory)
	admin.Get("/number/:number", cfg.Admin.GetTicketByNumber)
	admin.Get("/:id", cfg.Admin.GetTicket)
	admin.Post("/:id/assign", cfg.Admin.AssignTicket)

	authenticated.Get("/dashboard/analytics", auth.RequireAnyRole(), cfg.Dashboard.Analytics)
	authenticated.Get("/departments", auth.RequireAnyRole(), cfg.Directory.ListDepartments)
	authenticated.Get("/technicians", auth.RequireAnyRole(), cfg.Directory.ListTechnicians)
	authenticated.Get("/assets", auth.RequireAnyRole(), cfg.Directory.ListAssets)
}
