package routes

import (
	controllers "github.com/rakesh3649/Fitness/controllers/accounts"

	"github.com/gofiber/fiber/v2"
)

func AccountRoute(api fiber.Router, ctl *controllers.Controller, protect fiber.Handler) {
	api.Get("/auth/me", protect, ctl.GetUserProfile)
	api.Put("/auth/update-profile", protect, ctl.UpdateUserProfile)
}
