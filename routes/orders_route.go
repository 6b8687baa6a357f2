package routes

import (
	orderController "github.com/rakesh3649/Fitness/controllers/orders"
	"github.com/rakesh3649/Fitness/middlewares"
	"github.com/rakesh3649/Fitness/policy"

	"github.com/gofiber/fiber/v2"
)

// OrderRoutes registers /orders. /my-orders must precede /:id.
func OrderRoutes(api fiber.Router, ctl *orderController.Controller, protect fiber.Handler, p *policy.Policy) {
	orders := api.Group("/orders", protect)
	orders.Post("/", middlewares.Permit(p, policy.OrderCreate), ctl.CreateOrder)
	orders.Get("/my-orders", ctl.GetMyOrders)
	orders.Get("/", middlewares.Permit(p, policy.OrderList), ctl.GetAllOrders)
	orders.Get("/:id", middlewares.Permit(p, policy.OrderRead), ctl.GetOrderByID)
	orders.Put("/:id/status", middlewares.Permit(p, policy.OrderUpdateStatus), ctl.UpdateOrderStatus)
	orders.Put("/:id/payment", middlewares.Permit(p, policy.OrderUpdatePayment), ctl.UpdatePayment)
}
