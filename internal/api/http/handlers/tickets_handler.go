package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/asset-maintenance/internal/api/dto"
	"github.com/spec-kit/asset-maintenance/internal/auth"
	"github.com/spec-kit/asset-maintenance/internal/domain"
	"github.com/spec-kit/asset-maintenance/internal/service"
	apperrors "github.com/spec-kit/asset-maintenance/pkg/errorutil"
)

// TicketsHandler manages employee-facing ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// CreateTicket POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Employee == nil {
		return apperrors.NewUnauthorized("employee required")
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.AssetID == "" || strings.TrimSpace(req.TroubleUser) == "" {
		return apperrors.NewValidationError("asset_id, trouble_user required", nil)
	}

	input := service.TicketCreateInput{
		AssetID:     req.AssetID,
		Priority:    req.Priority,
		TroubleUser: req.TroubleUser,
		ImageKey:    req.ImageKey,
	}
	ticket, err := h.service.CreateTicket(c.Context(), principal.Employee.ID, input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": ticketSummary(ticket)})
}

// ListTickets GET /tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Employee == nil {
		return apperrors.NewUnauthorized("employee required")
	}
	search, page := parseListQuery(c)
	result, err := h.service.ListForEmployee(c.Context(), search, page, principal.Employee.Email)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketPageResponse(result)})
}

// CancelTicket POST /tickets/:id/cancel.
func (h *TicketsHandler) CancelTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Employee == nil {
		return apperrors.NewUnauthorized("employee required")
	}
	ticket, err := h.service.CancelTicketAsEmployee(c.Context(), principal.Employee.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketSummary(ticket)})
}

func parseListQuery(c *fiber.Ctx) (search string, page int) {
	search = c.Query("q")
	page = 1
	if raw := c.Query("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err == nil && parsed > 0 {
			page = parsed
		}
	}
	return search, page
}

func ticketSummary(ticket *domain.Ticket) dto.TicketSummary {
	summary := dto.TicketSummary{
		ID:                  ticket.ID,
		TicketNumber:        ticket.TicketNumber,
		CountNumber:         ticket.CountNumber,
		Status:              ticket.Status,
		Priority:            ticket.Priority,
		TroubleUser:         ticket.TroubleUser,
		AnalysisDescription: ticket.AnalysisDescription,
		ActionDescription:   ticket.ActionDescription,
		ImageKey:            ticket.ImageKey,
		CreatedAt:           ticket.CreatedAt,
		UpdatedAt:           ticket.UpdatedAt,
	}
	if ticket.Employee != nil {
		ref := dto.PersonRef{
			ID:    ticket.Employee.ID,
			Name:  ticket.Employee.Name,
			Email: ticket.Employee.Email,
		}
		if ticket.Employee.Department != nil {
			name := ticket.Employee.Department.Name
			ref.Department = &name
		}
		summary.Employee = &ref
	}
	if ticket.Technician != nil {
		summary.Technician = &dto.PersonRef{
			ID:    ticket.Technician.ID,
			Name:  ticket.Technician.Name,
			Email: ticket.Technician.Email,
		}
	}
	if ticket.Asset != nil {
		ref := dto.AssetRef{
			ID:       ticket.Asset.ID,
			AssetTag: ticket.Asset.AssetTag,
			Name:     ticket.Asset.Name,
		}
		if ticket.Asset.Product != nil {
			ref.Product = ticket.Asset.Product.Name
		}
		summary.Asset = &ref
	}
	return summary
}

func ticketPageResponse(page *service.TicketPage) dto.TicketPageResponse {
	items := make([]dto.TicketSummary, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, ticketSummary(&page.Items[i]))
	}
	return dto.TicketPageResponse{
		Items:      items,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
	}
}
