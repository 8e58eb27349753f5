package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/asset-maintenance/internal/domain"
)

// TicketFilter captures lifecycle listing parameters.
type TicketFilter struct {
	Statuses        []domain.TicketStatus
	EmployeeEmail   *string
	TechnicianEmail *string
	Search          *string
	Limit           int
	Offset          int
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	GetByNumber(ctx context.Context, number string) (*domain.Ticket, error)
	NextSequence(ctx context.Context, prefix string) (int, error)
	ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
	CountWithFilter(ctx context.Context, filter TicketFilter) (int, error)
	ListAnalyticsRows(ctx context.Context, since time.Time) ([]domain.AnalyticsRow, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (ticket_number, count_number, status, priority, employee_id, technician_id, asset_id, trouble_user, analysis_description, action_description, image_key)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		ticket.TicketNumber,
		ticket.CountNumber,
		ticket.Status,
		ticket.Priority,
		ticket.EmployeeID,
		ticket.TechnicianID,
		ticket.AssetID,
		ticket.TroubleUser,
		ticket.AnalysisDescription,
		ticket.ActionDescription,
		ticket.ImageKey,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET status=$1, priority=$2, technician_id=$3, trouble_user=$4,
            analysis_description=$5, action_description=$6, image_key=$7, updated_at=NOW()
        WHERE id=$8`
	cmd, err := r.pool.Exec(ctx, query,
		ticket.Status,
		ticket.Priority,
		ticket.TechnicianID,
		ticket.TroubleUser,
		ticket.AnalysisDescription,
		ticket.ActionDescription,
		ticket.ImageKey,
		ticket.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// NextSequence atomically advances the per-period counter, seeding it at 1
// for the first ticket of a month. The upsert keeps concurrent creators from
// ever observing the same value.
func (r *ticketRepository) NextSequence(ctx context.Context, prefix string) (int, error) {
	const query = `
        INSERT INTO ticket_counters (prefix, value) VALUES ($1, 1)
        ON CONFLICT (prefix) DO UPDATE SET value = ticket_counters.value + 1
        RETURNING value`
	var value int
	if err := r.pool.QueryRow(ctx, query, prefix).Scan(&value); err != nil {
		return 0, err
	}
	return value, nil
}

const ticketSelectColumns = `
        t.id, t.ticket_number, t.count_number, t.status, t.priority,
        t.employee_id, t.technician_id, t.asset_id, t.trouble_user,
        t.analysis_description, t.action_description, t.image_key,
        t.created_at, t.updated_at,
        e.name, e.email, e.department_id, d.name,
        tech.name, tech.email,
        a.asset_tag, a.name, a.serial_number, a.product_id, p.name`

const ticketJoinClause = `
        FROM tickets t
        JOIN employees e ON e.id = t.employee_id
        LEFT JOIN departments d ON d.id = e.department_id
        LEFT JOIN technicians tech ON tech.id = t.technician_id
        JOIN assets a ON a.id = t.asset_id
        JOIN products p ON p.id = a.product_id`

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	query := `SELECT` + ticketSelectColumns + ticketJoinClause + ` WHERE t.id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *ticketRepository) GetByNumber(ctx context.Context, number string) (*domain.Ticket, error) {
	query := `SELECT` + ticketSelectColumns + ticketJoinClause + ` WHERE t.ticket_number=$1`
	return r.fetchSingle(ctx, query, number)
}

func (r *ticketRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Ticket, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	tickets, err := scanTickets(rows)
	if err != nil {
		return nil, err
	}
	if len(tickets) == 0 {
		return nil, pgx.ErrNoRows
	}
	return &tickets[0], nil
}

func (r *ticketRepository) ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	clauses, args := buildTicketClauses(filter)

	limit := filter.Limit
	if limit <= 0 {
		limit = 15
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT%s%s WHERE %s ORDER BY t.updated_at DESC LIMIT %d OFFSET %d`,
		ticketSelectColumns, ticketJoinClause, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) CountWithFilter(ctx context.Context, filter TicketFilter) (int, error) {
	clauses, args := buildTicketClauses(filter)
	query := fmt.Sprintf(`SELECT COUNT(*)%s WHERE %s`, ticketJoinClause, strings.Join(clauses, " AND "))

	var count int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func buildTicketClauses(filter TicketFilter) ([]string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("t.status IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.EmployeeEmail != nil {
		args = append(args, *filter.EmployeeEmail)
		clauses = append(clauses, fmt.Sprintf("e.email=$%d", len(args)))
	}
	if filter.TechnicianEmail != nil {
		args = append(args, *filter.TechnicianEmail)
		clauses = append(clauses, fmt.Sprintf("tech.email=$%d", len(args)))
	}
	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.Search)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf(
			"(LOWER(t.ticket_number) LIKE %s OR LOWER(t.analysis_description) LIKE %s OR LOWER(t.trouble_user) LIKE %s OR LOWER(t.action_description) LIKE %s)",
			placeholder, placeholder, placeholder, placeholder))
	}
	return clauses, args
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var (
			ticket         domain.Ticket
			employeeName   string
			employeeEmail  string
			departmentID   *string
			departmentName *string
			technicianName *string
			technicianMail *string
			assetTag       string
			assetName      string
			serialNumber   string
			productID      string
			productName    string
		)
		if err := rows.Scan(
			&ticket.ID,
			&ticket.TicketNumber,
			&ticket.CountNumber,
			&ticket.Status,
			&ticket.Priority,
			&ticket.EmployeeID,
			&ticket.TechnicianID,
			&ticket.AssetID,
			&ticket.TroubleUser,
			&ticket.AnalysisDescription,
			&ticket.ActionDescription,
			&ticket.ImageKey,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
			&employeeName,
			&employeeEmail,
			&departmentID,
			&departmentName,
			&technicianName,
			&technicianMail,
			&assetTag,
			&assetName,
			&serialNumber,
			&productID,
			&productName,
		); err != nil {
			return nil, err
		}

		ticket.Employee = &domain.Employee{
			ID:           ticket.EmployeeID,
			Name:         employeeName,
			Email:        employeeEmail,
			DepartmentID: departmentID,
		}
		if departmentID != nil && departmentName != nil {
			ticket.Employee.Department = &domain.Department{ID: *departmentID, Name: *departmentName}
		}
		if ticket.TechnicianID != nil && technicianName != nil && technicianMail != nil {
			ticket.Technician = &domain.Technician{
				ID:    *ticket.TechnicianID,
				Name:  *technicianName,
				Email: *technicianMail,
			}
		}
		ticket.Asset = &domain.Asset{
			ID:           ticket.AssetID,
			AssetTag:     assetTag,
			Name:         assetName,
			SerialNumber: serialNumber,
			ProductID:    productID,
			Product:      &domain.Product{ID: productID, Name: productName},
		}

		result = append(result, ticket)
	}
	return result, rows.Err()
}

// ListAnalyticsRows reads the flattened classification join for every ticket
// created at or after since. Missing classifications come back as empty
// strings; the aggregator maps those to the "Unknown" buckets.
func (r *ticketRepository) ListAnalyticsRows(ctx context.Context, since time.Time) ([]domain.AnalyticsRow, error) {
	const query = `
        SELECT t.id, t.created_at,
               COALESCE(g.name, ''), COALESCE(pt.name, ''), COALESCE(c.name, ''),
               COALESCE(d.name, ''), COALESCE(e.name, '')
        FROM tickets t
        LEFT JOIN assets a ON a.id = t.asset_id
        LEFT JOIN products p ON p.id = a.product_id
        LEFT JOIN product_groups g ON g.id = p.group_id
        LEFT JOIN product_types pt ON pt.id = p.type_id
        LEFT JOIN product_categories c ON c.id = p.category_id
        LEFT JOIN employees e ON e.id = t.employee_id
        LEFT JOIN departments d ON d.id = e.department_id
        WHERE t.created_at >= $1
        ORDER BY t.created_at`
	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.AnalyticsRow
	for rows.Next() {
		var row domain.AnalyticsRow
		if err := rows.Scan(
			&row.TicketID,
			&row.CreatedAt,
			&row.GroupName,
			&row.TypeName,
			&row.CategoryName,
			&row.DepartmentName,
			&row.EmployeeName,
		); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
