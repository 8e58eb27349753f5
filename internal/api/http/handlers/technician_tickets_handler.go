package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/asset-maintenance/internal/api/dto"
	"github.com/spec-kit/asset-maintenance/internal/auth"
	"github.com/spec-kit/asset-maintenance/internal/domain"
	"github.com/spec-kit/asset-maintenance/internal/service"
	apperrors "github.com/spec-kit/asset-maintenance/pkg/errorutil"
)

// TechnicianTicketsHandler handles technician worklist endpoints.
type TechnicianTicketsHandler struct {
	service *service.TicketService
}

// NewTechnicianTicketsHandler constructs handler.
func NewTechnicianTicketsHandler(ticketService *service.TicketService) *TechnicianTicketsHandler {
	return &TechnicianTicketsHandler{service: ticketService}
}

// ListActive GET /technician/tickets.
func (h *TechnicianTicketsHandler) ListActive(c *fiber.Ctx) error {
	technician, err := technicianPrincipal(c)
	if err != nil {
		return err
	}
	search, page := parseListQuery(c)
	result, err := h.service.ListActiveForTechnician(c.Context(), search, page, technician.Email)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketPageResponse(result)})
}

// ListHistory GET /technician/tickets/history.
func (h *TechnicianTicketsHandler) ListHistory(c *fiber.Ctx) error {
	technician, err := technicianPrincipal(c)
	if err != nil {
		return err
	}
	search, page := parseListQuery(c)
	result, err := h.service.ListHistoryForTechnician(c.Context(), search, page, technician.Email)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketPageResponse(result)})
}

// UpdateProgress POST /technician/tickets/:id/progress.
func (h *TechnicianTicketsHandler) UpdateProgress(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Technician == nil {
		return apperrors.NewUnauthorized("technician required")
	}
	var req dto.ProgressUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Status == "" {
		return apperrors.NewValidationError("status required", nil)
	}

	input := service.ProgressUpdateInput{
		NewStatus:           req.Status,
		AnalysisDescription: req.AnalysisDescription,
		ActionDescription:   req.ActionDescription,
		Comment:             req.Comment,
	}
	ticket, err := h.service.UpdateProgress(c.Context(), principal.Technician, principal.IsAdmin(), c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketSummary(ticket)})
}

func technicianPrincipal(c *fiber.Ctx) (*domain.Technician, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Technician == nil {
		return nil, apperrors.NewUnauthorized("technician required")
	}
	return principal.Technician, nil
}
