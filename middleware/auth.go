package middleware

import (
	"net/http"
	"strings"

	"cabinet_avocat_go/config"
	"cabinet_avocat_go/db"
	"cabinet_avocat_go/models"
	"cabinet_avocat_go/services"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const (
	// ContextKeyRole is the context key for the authenticated actor's role
	ContextKeyRole = "role"
	// ContextKeyLawyer is the context key for the effective lawyer (tenant owner)
	ContextKeyLawyer = "lawyer"
	// ContextKeySecretary is the context key for the secretary, when one is acting
	ContextKeySecretary = "secretary"
	// ContextKeyAdmin is the context key for the authenticated admin
	ContextKeyAdmin = "admin"
)

// RequireAuth verifies the bearer token and injects the authenticated actor
// into the request context. Secretaries resolve to their owning lawyer so
// downstream ownership scoping is uniform.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cfg, _ := c.Get("config").(*config.Config)
			if cfg == nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "configuration missing")
			}

			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Authorization header required"})
			}

			tokenString := header
			if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
				tokenString = header[7:]
			}

			actorID, role, err := services.ParseToken(cfg.JWTSecret, tokenString)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or expired token"})
			}

			switch role {
			case services.RoleAvocat:
				var lawyer models.Lawyer
				if err := db.DB.First(&lawyer, "id = ?", actorID).Error; err != nil {
					return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unknown account"})
				}
				c.Set(ContextKeyLawyer, &lawyer)
			case services.RoleSecretaire:
				var secretary models.Secretary
				if err := db.DB.Preload("Lawyer").First(&secretary, "id = ?", actorID).Error; err != nil {
					return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unknown account"})
				}
				c.Set(ContextKeySecretary, &secretary)
				c.Set(ContextKeyLawyer, &secretary.Lawyer)
			case services.RoleAdmin:
				var admin models.Admin
				if err := db.DB.First(&admin, "id = ?", actorID).Error; err != nil {
					return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unknown account"})
				}
				c.Set(ContextKeyAdmin, &admin)
			default:
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid token claims"})
			}

			c.Set(ContextKeyRole, role)
			return next(c)
		}
	}
}

// RequireRole restricts a route to specific roles
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ContextKeyRole).(string)

			for _, r := range roles {
				if r == role {
					return next(c)
				}
			}

			return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
		}
	}
}

// GetCurrentLawyer retrieves the effective lawyer from context. For a
// secretary this is the owning lawyer.
func GetCurrentLawyer(c echo.Context) *models.Lawyer {
	lawyer, ok := c.Get(ContextKeyLawyer).(*models.Lawyer)
	if !ok {
		return nil
	}
	return lawyer
}

// GetCurrentAdmin retrieves the authenticated admin from context
func GetCurrentAdmin(c echo.Context) *models.Admin {
	admin, ok := c.Get(ContextKeyAdmin).(*models.Admin)
	if !ok {
		return nil
	}
	return admin
}

// GetLawyerScopedQuery returns a GORM query scoped to the effective lawyer
func GetLawyerScopedQuery(c echo.Context, db *gorm.DB) *gorm.DB {
	lawyer := GetCurrentLawyer(c)
	if lawyer == nil {
		// Return query that matches nothing
		return db.Where("1 = 0")
	}

	return db.Where("lawyer_id = ?", lawyer.ID)
}
