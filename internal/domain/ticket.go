package domain

import "time"

// TicketStatus enumerates lifecycle states for maintenance tickets.
type TicketStatus string

const (
	TicketStatusPending    TicketStatus = "PENDING"
	TicketStatusAssigned   TicketStatus = "ASSIGNED"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusCompleted  TicketStatus = "COMPLETED"
	TicketStatusCanceled   TicketStatus = "CANCELED"
)

// AllTicketStatuses lists every lifecycle state in declaration order.
var AllTicketStatuses = []TicketStatus{
	TicketStatusPending,
	TicketStatusAssigned,
	TicketStatusInProgress,
	TicketStatusCompleted,
	TicketStatusCanceled,
}

// TicketPriority enumerates fault urgency.
type TicketPriority string

const (
	TicketPriorityLow      TicketPriority = "LOW"
	TicketPriorityMedium   TicketPriority = "MEDIUM"
	TicketPriorityHigh     TicketPriority = "HIGH"
	TicketPriorityCritical TicketPriority = "CRITICAL"
)

// Ticket is the aggregate for equipment fault reports.
type Ticket struct {
	ID                  string
	TicketNumber        string
	CountNumber         int
	Status              TicketStatus
	Priority            TicketPriority
	EmployeeID          string
	TechnicianID        *string
	AssetID             string
	TroubleUser         string
	AnalysisDescription string
	ActionDescription   string
	ImageKey            *string
	CreatedAt           time.Time
	UpdatedAt           time.Time

	// Eager-loaded associations, populated by listing queries.
	Employee   *Employee
	Technician *Technician
	Asset      *Asset
}

var allowedTransitions = map[TicketStatus][]TicketStatus{
	TicketStatusPending:    {TicketStatusAssigned, TicketStatusCanceled},
	TicketStatusAssigned:   {TicketStatusInProgress, TicketStatusPending, TicketStatusCanceled},
	TicketStatusInProgress: {TicketStatusCompleted, TicketStatusCanceled},
	TicketStatusCompleted:  {},
	TicketStatusCanceled:   {},
}

// IsValidTransition reports whether moving from current to next is legal.
func IsValidTransition(current, next TicketStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status accepts no further transitions.
func IsTerminal(status TicketStatus) bool {
	return len(allowedTransitions[status]) == 0
}

// Lifecycle buckets drive the role-specific listing screens. Each bucket is
// defined by the statuses it excludes.

// AssignableStatuses covers tickets an administrator may still assign.
func AssignableStatuses() []TicketStatus {
	return statusesExcluding(TicketStatusCompleted, TicketStatusCanceled)
}

// SchedulableStatuses covers tickets already handed to a technician.
func SchedulableStatuses() []TicketStatus {
	return statusesExcluding(TicketStatusPending, TicketStatusCompleted, TicketStatusCanceled)
}

// HistoricalStatuses covers tickets whose lifecycle has ended.
func HistoricalStatuses() []TicketStatus {
	return statusesExcluding(TicketStatusPending, TicketStatusAssigned, TicketStatusInProgress)
}

func statusesExcluding(excluded ...TicketStatus) []TicketStatus {
	skip := make(map[TicketStatus]struct{}, len(excluded))
	for _, status := range excluded {
		skip[status] = struct{}{}
	}
	result := make([]TicketStatus, 0, len(AllTicketStatuses))
	for _, status := range AllTicketStatuses {
		if _, ok := skip[status]; ok {
			continue
		}
		result = append(result, status)
	}
	return result
}
