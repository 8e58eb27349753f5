package domain

import "time"

// Labels used when a ticket's asset or reporter carries no classification.
const (
	UnknownGroup      = "Unknown Group"
	UnknownType       = "Unknown Type"
	UnknownCategory   = "Unknown Category"
	UnknownDepartment = "Unknown Department"
	UnknownEmployee   = "Unknown Employee"
)

// AnalyticsRow is the flattened join of a ticket with its classification
// attributes, as read for dashboard aggregation. Empty names mean the
// dimension is unclassified.
type AnalyticsRow struct {
	TicketID       string
	CreatedAt      time.Time
	GroupName      string
	TypeName       string
	CategoryName   string
	DepartmentName string
	EmployeeName   string
}

// DimensionBucket is one bar of a dashboard chart: the count of window
// tickets sharing a classification value, with the most recent creation time.
type DimensionBucket struct {
	Name            string    `json:"name"`
	Total           int       `json:"total"`
	LatestCreatedAt time.Time `json:"created_at"`
}

// EmployeeTicketCount is the per-employee breakdown inside a department.
type EmployeeTicketCount struct {
	Name        string `json:"name"`
	TicketCount int    `json:"ticket_count"`
}

// DepartmentBucket extends DimensionBucket with a nested employee breakdown.
type DepartmentBucket struct {
	Name            string                `json:"name"`
	Total           int                   `json:"total"`
	LatestCreatedAt time.Time             `json:"created_at"`
	Employees       []EmployeeTicketCount `json:"employees"`
}

// TicketAnalytics is the chart-ready dashboard payload covering the
// trailing twelve full calendar months.
type TicketAnalytics struct {
	Groups       []DimensionBucket  `json:"group_data"`
	ProductTypes []DimensionBucket  `json:"product_type_data"`
	Categories   []DimensionBucket  `json:"category_data"`
	Departments  []DepartmentBucket `json:"department_ticket_data"`
	WindowStart  time.Time          `json:"window_start"`
	GeneratedAt  time.Time          `json:"generated_at"`
}
