package domain

import "time"

// Employee models a ticket reporter belonging to a department.
type Employee struct {
	ID           string
	Name         string
	Email        string
	DepartmentID *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Department *Department
}

// Technician models a maintenance operator who works assigned tickets.
type Technician struct {
	ID        string
	Name      string
	Email     string
	Specialty string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
