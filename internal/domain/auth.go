package domain

import "time"

// SubjectType differentiates employee vs technician tokens.
type SubjectType string

const (
	SubjectTypeEmployee   SubjectType = "EMPLOYEE"
	SubjectTypeTechnician SubjectType = "TECHNICIAN"
)

// TechnicianRole enumerates operator privilege levels.
type TechnicianRole string

const (
	TechnicianRoleTechnician TechnicianRole = "TECHNICIAN"
	TechnicianRoleAdmin      TechnicianRole = "ADMIN"
)

// Token represents issued authentication token metadata.
type Token struct {
	ID        string
	SubjectID string
	Subject   SubjectType
	Role      *TechnicianRole
	ExpiresAt time.Time
	IssuedAt  time.Time
}
