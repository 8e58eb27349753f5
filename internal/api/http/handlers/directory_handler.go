package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/asset-maintenance/internal/api/dto"
	"github.com/spec-kit/asset-maintenance/internal/domain"
	"github.com/spec-kit/asset-maintenance/internal/repository"
)

// DirectoryHandler serves the reference data behind admin screens.
type DirectoryHandler struct {
	departments repository.DepartmentRepository
	technicians repository.TechnicianRepository
	assets      repository.AssetRepository
}

// NewDirectoryHandler constructs handler.
func NewDirectoryHandler(departments repository.DepartmentRepository, technicians repository.TechnicianRepository, assets repository.AssetRepository) *DirectoryHandler {
	return &DirectoryHandler{departments: departments, technicians: technicians, assets: assets}
}

// ListDepartments GET /departments.
func (h *DirectoryHandler) ListDepartments(c *fiber.Ctx) error {
	departments, err := h.departments.List(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.DepartmentResponse, 0, len(departments))
	for _, dept := range departments {
		items = append(items, dto.DepartmentResponse{ID: dept.ID, Name: dept.Name})
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListTechnicians GET /technicians.
func (h *DirectoryHandler) ListTechnicians(c *fiber.Ctx) error {
	technicians, err := h.technicians.ListActive(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.TechnicianResponse, 0, len(technicians))
	for _, technician := range technicians {
		items = append(items, dto.TechnicianResponse{
			ID:        technician.ID,
			Name:      technician.Name,
			Email:     technician.Email,
			Specialty: technician.Specialty,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListAssets GET /assets.
func (h *DirectoryHandler) ListAssets(c *fiber.Ctx) error {
	_, page := parseListQuery(c)
	const pageSize = 20
	assets, err := h.assets.List(c.Context(), pageSize, (page-1)*pageSize)
	if err != nil {
		return err
	}
	items := make([]dto.AssetResponse, 0, len(assets))
	for i := range assets {
		items = append(items, assetResponse(&assets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func assetResponse(asset *domain.Asset) dto.AssetResponse {
	resp := dto.AssetResponse{
		ID:           asset.ID,
		AssetTag:     asset.AssetTag,
		Name:         asset.Name,
		SerialNumber: asset.SerialNumber,
	}
	if asset.Product != nil {
		resp.Product = asset.Product.Name
		if asset.Product.Group != nil {
			resp.Group = asset.Product.Group.Name
		}
		if asset.Product.Type != nil {
			resp.Type = asset.Product.Type.Name
		}
		if asset.Product.Category != nil {
			resp.Category = asset.Product.Category.Name
		}
	}
	return resp
}
