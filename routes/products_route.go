package routes

import (
	productController "github.com/rakesh3649/Fitness/controllers/products"
	"github.com/rakesh3649/Fitness/middlewares"
	"github.com/rakesh3649/Fitness/policy"

	"github.com/gofiber/fiber/v2"
)

func ProductsRoute(api fiber.Router, ctl *productController.Controller, protect fiber.Handler, p *policy.Policy) {
	admin := middlewares.Permit(p, policy.ProductWrite)

	api.Get("/products", ctl.GetAllProducts)
	api.Get("/products/:id", ctl.FetchProductDetails)
	api.Post("/products", protect, admin, ctl.AddProduct)
	api.Put("/products/:id", protect, admin, ctl.UpdateProduct)
	api.Delete("/products/:id", protect, admin, ctl.DeleteProduct)
}
