package middlewares

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/rakesh3649/Fitness/responses"
)

// ErrorHandler is the fallback for errors a handler returned instead of
// answering itself. Outside production the envelope carries the stack.
func ErrorHandler(development bool, logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}

		message := err.Error()
		if message == "" {
			message = "Internal server error"
		}

		env := responses.Envelope{Success: false, Message: message}
		if code >= fiber.StatusInternalServerError {
			logger.Error("server error",
				"method", c.Method(),
				"path", c.OriginalURL(),
				"error", err,
			)
			if development {
				env.Stack = fmt.Sprintf("%+v", err)
			}
		}
		return c.Status(code).JSON(env)
	}
}

// NotFound answers any route nothing else matched.
func NotFound(c *fiber.Ctx) error {
	return responses.Fail(c, fiber.StatusNotFound, fmt.Sprintf("Route %s not found", c.OriginalURL()))
}
