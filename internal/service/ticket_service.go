package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/asset-maintenance/internal/domain"
	"github.com/spec-kit/asset-maintenance/internal/events"
	"github.com/spec-kit/asset-maintenance/internal/repository"
	apperrors "github.com/spec-kit/asset-maintenance/pkg/errorutil"
)

const (
	generalPageSize = 15
	scopedPageSize  = 10

	// createAttempts bounds the allocate-and-insert retry loop. The counter
	// upsert already serializes allocation; the retry covers the residual
	// case of a ticket number reused after a counter reset.
	createAttempts = 3
)

// TicketPage is one page of a lifecycle listing.
type TicketPage struct {
	Items      []domain.Ticket
	Page       int
	PageSize   int
	TotalItems int
	TotalPages int
}

// TicketService coordinates ticket numbering and workflows.
type TicketService struct {
	tickets     repository.TicketRepository
	assets      repository.AssetRepository
	employees   repository.EmployeeRepository
	technicians repository.TechnicianRepository
	dispatcher  events.Dispatcher
	now         func() time.Time
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo     repository.TicketRepository
	AssetRepo      repository.AssetRepository
	EmployeeRepo   repository.EmployeeRepository
	TechnicianRepo repository.TechnicianRepository
	Dispatcher     events.Dispatcher
	Now            func() time.Time
}

// TicketCreateInput describes a fault report payload.
type TicketCreateInput struct {
	AssetID     string
	Priority    domain.TicketPriority
	TroubleUser string
	ImageKey    *string
}

// ProgressUpdateInput describes a technician progress mutation.
type ProgressUpdateInput struct {
	NewStatus           domain.TicketStatus
	AnalysisDescription string
	ActionDescription   string
	Comment             string
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &TicketService{
		tickets:     deps.TicketRepo,
		assets:      deps.AssetRepo,
		employees:   deps.EmployeeRepo,
		technicians: deps.TechnicianRepo,
		dispatcher:  deps.Dispatcher,
		now:         now,
	}
}

// GenerateTicketNumber mints the next identifier for the current year-month
// scope. The counter advance is atomic in the store, so concurrent callers
// always receive distinct values.
func (s *TicketService) GenerateTicketNumber(ctx context.Context) (domain.TicketNumber, error) {
	prefix := domain.PeriodPrefix(s.now())
	seq, err := s.tickets.NextSequence(ctx, prefix)
	if err != nil {
		return domain.TicketNumber{}, apperrors.NewInternalError(err)
	}
	return domain.TicketNumber{
		TicketNumber: domain.FormatTicketNumber(prefix, seq),
		CountNumber:  seq,
	}, nil
}

// CreateTicket registers a fault report for an employee. The ticket starts
// PENDING and carries a freshly allocated ticket number.
func (s *TicketService) CreateTicket(ctx context.Context, employeeID string, input TicketCreateInput) (*domain.Ticket, error) {
	if strings.TrimSpace(input.TroubleUser) == "" {
		return nil, apperrors.NewValidationError("trouble description required", nil)
	}
	employee, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	asset, err := s.assets.GetByID(ctx, input.AssetID)
	if err != nil {
		return nil, err
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.TicketPriorityMedium
	}

	var lastErr error
	for attempt := 0; attempt < createAttempts; attempt++ {
		number, err := s.GenerateTicketNumber(ctx)
		if err != nil {
			return nil, err
		}

		ticket := &domain.Ticket{
			TicketNumber: number.TicketNumber,
			CountNumber:  number.CountNumber,
			Status:       domain.TicketStatusPending,
			Priority:     priority,
			EmployeeID:   employee.ID,
			AssetID:      asset.ID,
			TroubleUser:  strings.TrimSpace(input.TroubleUser),
			ImageKey:     input.ImageKey,
		}
		if err := s.tickets.Create(ctx, ticket); err != nil {
			if isUniqueViolation(err) {
				lastErr = err
				continue
			}
			return nil, err
		}

		s.publishEvent(ctx, events.Event{
			Type:         events.EventTicketCreated,
			TicketID:     ticket.ID,
			TicketNumber: ticket.TicketNumber,
			Actor:        employeeActor(employee.ID),
			Payload: events.TicketCreatedPayload{
				CountNumber: ticket.CountNumber,
				AssetID:     ticket.AssetID,
				Priority:    ticket.Priority,
				TroubleUser: ticket.TroubleUser,
			},
		})
		return ticket, nil
	}
	return nil, apperrors.NewConflict("ticket number allocation conflict", map[string]any{
		"cause": lastErr.Error(),
	})
}

// AssignTicket hands a pending ticket to an active technician. Tickets
// already being worked (ASSIGNED or IN_PROGRESS) accept a technician swap
// that keeps the status, so every row on the assignable screen is actionable.
func (s *TicketService) AssignTicket(ctx context.Context, adminID, ticketID, technicianID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	technician, err := s.technicians.GetByID(ctx, technicianID)
	if err != nil {
		return nil, err
	}
	if !technician.IsActive {
		return nil, apperrors.NewValidationError("technician inactive", nil)
	}

	oldStatus := ticket.Status
	switch ticket.Status {
	case domain.TicketStatusAssigned, domain.TicketStatusInProgress:
		// technician swap, status unchanged
	default:
		if !domain.IsValidTransition(ticket.Status, domain.TicketStatusAssigned) {
			return nil, apperrors.NewValidationError("ticket cannot be assigned in current status", map[string]any{
				"status": ticket.Status,
			})
		}
		ticket.Status = domain.TicketStatusAssigned
	}
	ticket.TechnicianID = &technician.ID

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:         events.EventTicketAssigned,
		TicketID:     ticket.ID,
		TicketNumber: ticket.TicketNumber,
		Actor:        technicianActor(adminID),
		Payload: events.TicketAssignedPayload{
			TechnicianID: technician.ID,
		},
	})
	if oldStatus != ticket.Status {
		s.publishStatusChange(ctx, ticket, technicianActor(adminID), oldStatus, "assigned")
	}
	return ticket, nil
}

// UpdateProgress applies a technician's status mutation, enforcing the
// transition table server-side.
func (s *TicketService) UpdateProgress(ctx context.Context, technician *domain.Technician, isAdmin bool, ticketID string, input ProgressUpdateInput) (*domain.Ticket, error) {
	if technician == nil {
		return nil, apperrors.NewUnauthorized("technician required")
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		if ticket.TechnicianID == nil || *ticket.TechnicianID != technician.ID {
			return nil, apperrors.NewForbidden("ticket assigned to another technician")
		}
	}
	if !domain.IsValidTransition(ticket.Status, input.NewStatus) {
		return nil, apperrors.NewValidationError("invalid status transition", map[string]any{
			"from": ticket.Status,
			"to":   input.NewStatus,
		})
	}

	oldStatus := ticket.Status
	ticket.Status = input.NewStatus
	if input.NewStatus == domain.TicketStatusPending {
		// moving back to PENDING returns the ticket to the assignable pool
		ticket.TechnicianID = nil
	}
	if trimmed := strings.TrimSpace(input.AnalysisDescription); trimmed != "" {
		ticket.AnalysisDescription = trimmed
	}
	if trimmed := strings.TrimSpace(input.ActionDescription); trimmed != "" {
		ticket.ActionDescription = trimmed
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	s.publishStatusChange(ctx, ticket, technicianActor(technician.ID), oldStatus, input.Comment)
	return ticket, nil
}

// CancelTicketAsEmployee lets a reporter cancel their own ticket while the
// lifecycle still allows it.
func (s *TicketService) CancelTicketAsEmployee(ctx context.Context, employeeID, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.EmployeeID != employeeID {
		return nil, apperrors.NewForbidden("ticket belongs to another employee")
	}
	if !domain.IsValidTransition(ticket.Status, domain.TicketStatusCanceled) {
		return nil, apperrors.NewValidationError("ticket cannot be canceled in current status", map[string]any{
			"status": ticket.Status,
		})
	}
	oldStatus := ticket.Status
	ticket.Status = domain.TicketStatusCanceled
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	s.publishStatusChange(ctx, ticket, employeeActor(employeeID), oldStatus, "canceled_by_reporter")
	return ticket, nil
}

// GetTicket fetches one ticket with its associations.
func (s *TicketService) GetTicket(ctx context.Context, id string) (*domain.Ticket, error) {
	return s.tickets.GetByID(ctx, id)
}

// GetTicketByNumber fetches one ticket by its human-facing identifier.
func (s *TicketService) GetTicketByNumber(ctx context.Context, number string) (*domain.Ticket, error) {
	return s.tickets.GetByNumber(ctx, number)
}

// ListAssignable pages tickets an administrator may still assign.
func (s *TicketService) ListAssignable(ctx context.Context, search string, page int) (*TicketPage, error) {
	return s.listPage(ctx, repository.TicketFilter{
		Statuses: domain.AssignableStatuses(),
		Search:   &search,
	}, page, generalPageSize)
}

// ListSchedulable pages tickets already handed to technicians.
func (s *TicketService) ListSchedulable(ctx context.Context, search string, page int) (*TicketPage, error) {
	return s.listPage(ctx, repository.TicketFilter{
		Statuses: domain.SchedulableStatuses(),
		Search:   &search,
	}, page, generalPageSize)
}

// ListHistory pages completed and canceled tickets.
func (s *TicketService) ListHistory(ctx context.Context, search string, page int) (*TicketPage, error) {
	return s.listPage(ctx, repository.TicketFilter{
		Statuses: domain.HistoricalStatuses(),
		Search:   &search,
	}, page, generalPageSize)
}

// ListHistoryForTechnician pages one technician's finished tickets.
func (s *TicketService) ListHistoryForTechnician(ctx context.Context, search string, page int, technicianEmail string) (*TicketPage, error) {
	return s.listPage(ctx, repository.TicketFilter{
		Statuses:        domain.HistoricalStatuses(),
		TechnicianEmail: &technicianEmail,
		Search:          &search,
	}, page, scopedPageSize)
}

// ListForEmployee pages every ticket one employee has reported.
func (s *TicketService) ListForEmployee(ctx context.Context, search string, page int, employeeEmail string) (*TicketPage, error) {
	return s.listPage(ctx, repository.TicketFilter{
		EmployeeEmail: &employeeEmail,
		Search:        &search,
	}, page, scopedPageSize)
}

// ListActiveForTechnician pages one technician's in-flight tickets.
func (s *TicketService) ListActiveForTechnician(ctx context.Context, search string, page int, technicianEmail string) (*TicketPage, error) {
	return s.listPage(ctx, repository.TicketFilter{
		Statuses:        domain.SchedulableStatuses(),
		TechnicianEmail: &technicianEmail,
		Search:          &search,
	}, page, scopedPageSize)
}

func (s *TicketService) listPage(ctx context.Context, filter repository.TicketFilter, page, pageSize int) (*TicketPage, error) {
	if page < 1 {
		page = 1
	}
	filter.Limit = pageSize
	filter.Offset = (page - 1) * pageSize

	total, err := s.tickets.CountWithFilter(ctx, filter)
	if err != nil {
		return nil, err
	}
	items, err := s.tickets.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &TicketPage{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: pageCount(total, pageSize),
	}, nil
}

// pageCount derives the page total. Zero matches yield zero pages; every
// listing variant shares this policy.
func pageCount(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (s *TicketService) publishStatusChange(ctx context.Context, ticket *domain.Ticket, actor events.Actor, oldStatus domain.TicketStatus, comment string) {
	s.publishEvent(ctx, events.Event{
		Type:         events.EventTicketStatusChanged,
		TicketID:     ticket.ID,
		TicketNumber: ticket.TicketNumber,
		Actor:        actor,
		Payload: events.TicketStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: ticket.Status,
			Comment:   comment,
		},
	})
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func employeeActor(employeeID string) events.Actor {
	return events.Actor{
		Type:       domain.SubjectTypeEmployee,
		EmployeeID: &employeeID,
	}
}

func technicianActor(technicianID string) events.Actor {
	return events.Actor{
		Type:         domain.SubjectTypeTechnician,
		TechnicianID: &technicianID,
	}
}
