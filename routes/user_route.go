package routes

import (
	controllers "github.com/rakesh3649/Fitness/controllers/user"

	"github.com/gofiber/fiber/v2"
)

func UserRoute(api fiber.Router, ctl *controllers.Controller, protect fiber.Handler) {
	auth := api.Group("/auth")
	auth.Post("/register", ctl.Register)
	auth.Post("/login", ctl.Login)
	auth.Post("/logout", protect, ctl.Logout)
}
