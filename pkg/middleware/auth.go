package middleware

import (
	"context"
	"strings"

	"fintrack/internal/models"
	"fintrack/pkg/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserResolver loads the live user record for a verified token subject.
// The lookup runs on every request so revoked accounts stop authenticating
// as soon as the record is gone.
type UserResolver interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

func AuthMiddleware(jwtManager *auth.JWTManager, users UserResolver, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			logger.Warn("Missing authorization token")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Not authorized, no token",
			})
		}
		token := strings.TrimPrefix(header, "Bearer ")

		claims, err := jwtManager.ValidateToken(token)
		if err != nil {
			logger.Warn("Invalid token", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Not authorized, token failed",
			})
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			logger.Warn("Malformed token subject", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Not authorized, token failed",
			})
		}

		user, err := users.GetByID(c.Context(), userID)
		if err != nil {
			logger.Warn("Token subject no longer exists", zap.String("user_id", claims.UserID))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Not authorized, user not found",
			})
		}

		c.Locals("userID", user.ID)
		c.Locals("user", user)

		return c.Next()
	}
}
