package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var errNoUser = errors.New("no authenticated user in context")

// getUserID pulls the identity the auth middleware resolved.
func getUserID(c *fiber.Ctx) (uuid.UUID, error) {
	userID, ok := c.Locals("userID").(uuid.UUID)
	if !ok {
		return uuid.Nil, errNoUser
	}
	return userID, nil
}
