package middleware

import (
	"SiDispo/models"
	"SiDispo/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func RequireRole(allowedRoles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals("jwtClaims").(*utils.JWTClaims)
		if !ok {
			return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
		}
		for _, role := range allowedRoles {
			if claims.Role == role {
				return c.Next()
			}
		}
		return c.Status(403).JSON(fiber.Map{"error": "Forbidden"})
	}
}

func RequireKepala() fiber.Handler { return RequireRole(models.RoleKepala) }
func RequireAtasan() fiber.Handler {
	return RequireRole(models.RoleSekretaris, models.RoleKabid)
}
func RequireStaff() fiber.Handler { return RequireRole(models.RoleStaff) }
func RequireAdmin() fiber.Handler { return RequireRole(models.RoleAdmin) }

// RequirePenerimaDisposisi membatasi route detail/terima/feedback untuk semua
// role yang bisa menjadi penerima disposisi (tier atasan maupun bawahan).
func RequirePenerimaDisposisi() fiber.Handler {
	return RequireRole(models.RoleSekretaris, models.RoleKabid, models.RoleStaff)
}

func GetUserFromContext(c *fiber.Ctx) (*models.User, error) {
	claims, ok := c.Locals("jwtClaims").(*utils.JWTClaims)
	if !ok {
		return nil, fiber.ErrUnauthorized
	}
	return &models.User{
		Model:   gorm.Model{ID: claims.UserID},
		Role:    claims.Role,
		Email:   claims.Email,
		Jabatan: claims.Jabatan,
	}, nil
}
