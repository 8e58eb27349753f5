package dto

import (
	"time"

	"github.com/spec-kit/asset-maintenance/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	AssetID     string                `json:"asset_id"`
	Priority    domain.TicketPriority `json:"priority"`
	TroubleUser string                `json:"trouble_user"`
	ImageKey    *string               `json:"image_key,omitempty"`
}

// AssignTicketRequest payload.
type AssignTicketRequest struct {
	TechnicianID string `json:"technician_id"`
}

// ProgressUpdateRequest payload.
type ProgressUpdateRequest struct {
	Status              domain.TicketStatus `json:"status"`
	AnalysisDescription string              `json:"analysis_description"`
	ActionDescription   string              `json:"action_description"`
	Comment             string              `json:"comment"`
}

// PersonRef identifies an associated employee or technician.
type PersonRef struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Department *string `json:"department,omitempty"`
}

// AssetRef identifies the faulted asset.
type AssetRef struct {
	ID       string `json:"id"`
	AssetTag string `json:"asset_tag"`
	Name     string `json:"name"`
	Product  string `json:"product"`
}

// TicketSummary response row.
type TicketSummary struct {
	ID                  string                `json:"id"`
	TicketNumber        string                `json:"ticket_number"`
	CountNumber         int                   `json:"count_number"`
	Status              domain.TicketStatus   `json:"status"`
	Priority            domain.TicketPriority `json:"priority"`
	TroubleUser         string                `json:"trouble_user"`
	AnalysisDescription string                `json:"analysis_description,omitempty"`
	ActionDescription   string                `json:"action_description,omitempty"`
	ImageKey            *string               `json:"image_key,omitempty"`
	Employee            *PersonRef            `json:"employee,omitempty"`
	Technician          *PersonRef            `json:"technician,omitempty"`
	Asset               *AssetRef             `json:"asset,omitempty"`
	CreatedAt           time.Time             `json:"created_at"`
	UpdatedAt           time.Time             `json:"updated_at"`
}

// TicketPageResponse is one page of a lifecycle listing.
type TicketPageResponse struct {
	Items      []TicketSummary `json:"items"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalItems int             `json:"total_items"`
	TotalPages int             `json:"total_pages"`
}

// TechnicianResponse directory row.
type TechnicianResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Specialty string `json:"specialty,omitempty"`
}

// DepartmentResponse directory row.
type DepartmentResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AssetResponse directory row.
type AssetResponse struct {
	ID           string `json:"id"`
	AssetTag     string `json:"asset_tag"`
	Name         string `json:"name"`
	SerialNumber string `json:"serial_number,omitempty"`
	Product      string `json:"product"`
	Group        string `json:"group,omitempty"`
	Type         string `json:"type,omitempty"`
	Category     string `json:"category,omitempty"`
}
