package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/asset-maintenance/internal/api/dto"
	"github.com/spec-kit/asset-maintenance/internal/auth"
	"github.com/spec-kit/asset-maintenance/internal/service"
	apperrors "github.com/spec-kit/asset-maintenance/pkg/errorutil"
)

// AdminTicketsHandler handles assignment-desk endpoints.
type AdminTicketsHandler struct {
	service *service.TicketService
}

// NewAdminTicketsHandler constructs handler.
func NewAdminTicketsHandler(ticketService *service.TicketService) *AdminTicketsHandler {
	return &AdminTicketsHandler{service: ticketService}
}

// ListAssignable GET /admin/tickets/assignable.
func (h *AdminTicketsHandler) ListAssignable(c *fiber.Ctx) error {
	search, page := parseListQuery(c)
	result, err := h.service.ListAssignable(c.Context(), search, page)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketPageResponse(result)})
}

// ListSchedulable GET /admin/tickets/schedulable.
func (h *AdminTicketsHandler) ListSchedulable(c *fiber.Ctx) error {
	search, page := parseListQuery(c)
	result, err := h.service.ListSchedulable(c.Context(), search, page)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketPageResponse(result)})
}

// ListHistory GET /admin/tickets/history.
func (h *AdminTicketsHandler) ListHistory(c *fiber.Ctx) error {
	search, page := parseListQuery(c)
	result, err := h.service.ListHistory(c.Context(), search, page)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketPageResponse(result)})
}

// GetTicketByNumber GET /admin/tickets/number/:number.
func (h *AdminTicketsHandler) GetTicketByNumber(c *fiber.Ctx) error {
	ticket, err := h.service.GetTicketByNumber(c.Context(), c.Params("number"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketSummary(ticket)})
}

// GetTicket GET /admin/tickets/:id.
func (h *AdminTicketsHandler) GetTicket(c *fiber.Ctx) error {
	ticket, err := h.service.GetTicket(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketSummary(ticket)})
}

// AssignTicket POST /admin/tickets/:id/assign.
func (h *AdminTicketsHandler) AssignTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Technician == nil {
		return apperrors.NewUnauthorized("technician required")
	}
	var req dto.AssignTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.TechnicianID == "" {
		return apperrors.NewValidationError("technician_id required", nil)
	}
	ticket, err := h.service.AssignTicket(c.Context(), principal.Technician.ID, c.Params("id"), req.TechnicianID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketSummary(ticket)})
}
