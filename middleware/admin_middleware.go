package middleware

import (
	"strconv"
	authutils "survey-package-backend/lib/utils/auth-utils"
	"survey-package-backend/models"
	apimodels "survey-package-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

func AdminRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		if !GetUserRole(ctx).IsAdmin() {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("операция недоступна"))
		}
		return ctx.Next()
	}
}

// GetUserID ИД пользователя из claim "sub", 0 если его нет
func GetUserID(ctx *fiber.Ctx) uint64 {
	claims := authutils.GetClaims(ctx)
	sub, exist := claims["sub"]
	if !exist {
		return 0
	}
	switch value := sub.(type) {
	case string:
		id, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return 0
		}
		return id
	case float64:
		if value < 0 {
			return 0
		}
		return uint64(value)
	}
	return 0
}

func GetUserRole(ctx *fiber.Ctx) models.UserRole {
	claims := authutils.GetClaims(ctx)
	if role, exist := claims["role"]; exist {
		if stringRole, ok := role.(string); ok && stringRole != "" {
			return models.UserRole(stringRole)
		}
	}
	return ""
}
