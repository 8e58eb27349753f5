package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/asset-maintenance/internal/domain"
	apperrors "github.com/spec-kit/asset-maintenance/pkg/errorutil"
)

// RequireEmployee ensures an employee is authenticated.
func RequireEmployee() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.SubjectType != domain.SubjectTypeEmployee || principal.Employee == nil {
			return apperrors.NewForbidden("employee required")
		}
		return c.Next()
	}
}

// RequireTechnicianRole ensures the technician principal has one of the
// allowed roles.
func RequireTechnicianRole(allowed ...domain.TechnicianRole) fiber.Handler {
	allowedSet := make(map[domain.TechnicianRole]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.SubjectType != domain.SubjectTypeTechnician || principal.Technician == nil {
			return apperrors.NewForbidden("technician role required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if principal.Role == nil {
			return apperrors.NewForbidden("insufficient role")
		}
		if _, exists := allowedSet[*principal.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// RequireAnyRole ensures caller is authenticated (employee or technician).
func RequireAnyRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}
