package routes

import (
	"github.com/rakesh3649/Fitness/controllers/contacts"
	"github.com/rakesh3649/Fitness/middlewares"
	"github.com/rakesh3649/Fitness/policy"

	"github.com/gofiber/fiber/v2"
)

func ContactRoutes(api fiber.Router, ctl *contacts.Controller, protect fiber.Handler, p *policy.Policy) {
	api.Post("/contact", ctl.SubmitContact)
	api.Get("/contact", protect, middlewares.Permit(p, policy.ContactList), ctl.GetContacts)
	api.Put("/contact/:id", protect, middlewares.Permit(p, policy.ContactUpdate), ctl.UpdateContactStatus)
}
