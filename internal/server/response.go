package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// BaseResponse is the envelope every endpoint returns.
type BaseResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

func respond(c *fiber.Ctx, status int, success bool, message string, data interface{}) error {
	return c.Status(status).JSON(BaseResponse{
		Success:   success,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
}

func ok(c *fiber.Ctx, message string, data interface{}) error {
	return respond(c, fiber.StatusOK, true, message, data)
}

func fail(c *fiber.Ctx, status int, message string) error {
	return respond(c, status, false, message, nil)
}
