package routes

import (
	"github.com/rakesh3649/Fitness/controllers/callbacks"
	"github.com/rakesh3649/Fitness/middlewares"
	"github.com/rakesh3649/Fitness/policy"

	"github.com/gofiber/fiber/v2"
)

func CallbackRoutes(api fiber.Router, ctl *callbacks.Controller, protect fiber.Handler, p *policy.Policy) {
	api.Post("/callback", ctl.RequestCallback)
	api.Get("/callback", protect, middlewares.Permit(p, policy.CallbackList), ctl.GetCallbacks)
	api.Put("/callback/:id", protect, middlewares.Permit(p, policy.CallbackUpdate), ctl.UpdateCallback)
}
