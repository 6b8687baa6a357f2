package routes

import (
	"github.com/rakesh3649/Fitness/controllers/health"

	"github.com/gofiber/fiber/v2"
)

func HealthRoute(api fiber.Router, ctl *health.Controller) {
	api.Get("/health", ctl.Check)
}
