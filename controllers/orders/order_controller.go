package controllers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rakesh3649/Fitness/middlewares"
	"github.com/rakesh3649/Fitness/models"
	"github.com/rakesh3649/Fitness/policy"
	"github.com/rakesh3649/Fitness/repository"
	"github.com/rakesh3649/Fitness/responses"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Controller struct {
	orders   repository.Orders
	accounts repository.Accounts
	policy   *policy.Policy
}

func New(orders repository.Orders, accounts repository.Accounts, p *policy.Policy) *Controller {
	return &Controller{orders: orders, accounts: accounts, policy: p}
}

// CreateOrderRequest is the checkout payload. Prices and the total are
// taken as sent by the client.
type CreateOrderRequest struct {
	Items           []OrderItemRequest     `json:"items"`
	TotalAmount     *float64               `json:"totalAmount"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   models.PaymentMethod   `json:"paymentMethod"`
	OrderNotes      string                 `json:"orderNotes"`
	Notes           string                 `json:"notes"`
	TransactionID   string                 `json:"transactionId"`
	PaymentDetails  map[string]string      `json:"paymentDetails"`
}

// OrderItemRequest is one cart line. Cart lines identify the product by
// productId or by id, as a string or a number.
type OrderItemRequest struct {
	ProductID FlexibleID `json:"productId"`
	ID        FlexibleID `json:"id"`
	Name      string     `json:"name"`
	Price     float64    `json:"price"`
	Quantity  int        `json:"quantity"`
	Image     string     `json:"image"`
}

func (r OrderItemRequest) toItem() models.OrderItem {
	productID := string(r.ProductID)
	if productID == "" {
		productID = string(r.ID)
	}
	item := models.OrderItem{
		ProductID: productID,
		Name:      strings.TrimSpace(r.Name),
		Price:     r.Price,
		Quantity:  r.Quantity,
		Image:     r.Image,
	}
	if item.Name == "" {
		item.Name = "Product " + productID
	}
	if item.Quantity == 0 {
		item.Quantity = 1
	}
	if item.Image == "" {
		item.Image = models.DefaultProductImage
	}
	return item
}

// PaymentUpdateRequest carries the second checkout call. Empty fields are
// left as stored.
type PaymentUpdateRequest struct {
	PaymentStatus  models.PaymentStatus `json:"paymentStatus"`
	OrderStatus    models.OrderStatus   `json:"orderStatus"`
	TransactionID  string               `json:"transactionId"`
	PaymentDetails map[string]string    `json:"paymentDetails"`
}

func (ctl *Controller) CreateOrder(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 10*time.Second)
	defer cancel()

	account := middlewares.CurrentAccount(c)
	if account == nil {
		return responses.Fail(c, fiber.StatusUnauthorized, "User not authenticated")
	}

	// Parse request body
	var orderReq CreateOrderRequest
	if err := c.BodyParser(&orderReq); err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, "Invalid request format")
	}

	if len(orderReq.Items) == 0 {
		return responses.Fail(c, fiber.StatusBadRequest, "Please provide order items")
	}
	if orderReq.TotalAmount == nil || *orderReq.TotalAmount <= 0 {
		return responses.Fail(c, fiber.StatusBadRequest, "Please provide valid total amount")
	}

	// Convert cart lines to order items
	orderItems := make([]models.OrderItem, 0, len(orderReq.Items))
	for _, line := range orderReq.Items {
		orderItems = append(orderItems, line.toItem())
	}

	notes := strings.TrimSpace(orderReq.OrderNotes)
	if notes == "" {
		notes = strings.TrimSpace(orderReq.Notes)
	}

	order := models.Order{
		UserID:          account.Id,
		Items:           orderItems,
		TotalAmount:     *orderReq.TotalAmount,
		ShippingAddress: orderReq.ShippingAddress,
		PaymentMethod:   orderReq.PaymentMethod,
		OrderNotes:      notes,
		TransactionID:   orderReq.TransactionID,
		PaymentDetails:  orderReq.PaymentDetails,
	}
	order.Normalize()
	if err := models.Validate(order); err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, err.Error())
	}

	if err := ctl.orders.Create(ctx, &order); err != nil {
		return err
	}

	order.User = account.Ref()
	return responses.OK(c, fiber.StatusCreated, "Order created successfully!", order)
}

func (ctl *Controller) GetMyOrders(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 10*time.Second)
	defer cancel()

	account := middlewares.CurrentAccount(c)
	if account == nil {
		return responses.Fail(c, fiber.StatusUnauthorized, "User not authenticated")
	}

	orders, err := ctl.orders.ListByUser(ctx, account.Id)
	if err != nil {
		return err
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return responses.List(c, orders, len(orders))
}

func (ctl *Controller) GetOrderByID(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 10*time.Second)
	defer cancel()

	account := middlewares.CurrentAccount(c)
	order, status, msg, err := ctl.loadOrder(ctx, c.Params("id"))
	if err != nil {
		return err
	}
	if order == nil {
		return responses.Fail(c, status, msg)
	}

	if !ctl.policy.AllowsOn(account, policy.OrderRead, order.UserID) {
		return responses.Fail(c, fiber.StatusForbidden, "Not authorized to access this order")
	}

	if err := ctl.populate(ctx, []*models.Order{order}); err != nil {
		return err
	}
	return responses.OK(c, fiber.StatusOK, "", order)
}

func (ctl *Controller) GetAllOrders(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 10*time.Second)
	defer cancel()

	orders, err := ctl.orders.List(ctx)
	if err != nil {
		return err
	}
	if orders == nil {
		orders = []models.Order{}
	}

	refs := make([]*models.Order, len(orders))
	for i := range orders {
		refs[i] = &orders[i]
	}
	if err := ctl.populate(ctx, refs); err != nil {
		return err
	}
	return responses.List(c, orders, len(orders))
}

func (ctl *Controller) UpdateOrderStatus(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 10*time.Second)
	defer cancel()

	orderID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, "Invalid order ID")
	}

	var reqBody struct {
		OrderStatus models.OrderStatus `json:"orderStatus"`
		Status      models.OrderStatus `json:"status"`
	}
	if err := c.BodyParser(&reqBody); err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, "Invalid request format")
	}

	status := reqBody.OrderStatus
	if status == "" {
		status = reqBody.Status
	}
	if status == "" {
		return responses.Fail(c, fiber.StatusBadRequest, "Please provide order status")
	}
	if !status.Valid() {
		return responses.Fail(c, fiber.StatusBadRequest,
			fmt.Sprintf("Invalid status. Must be one of: %s", models.OrderStatusList()))
	}

	order, err := ctl.orders.SetOrderStatus(ctx, orderID, status)
	if errors.Is(err, repository.ErrNotFound) {
		return responses.Fail(c, fiber.StatusNotFound, "Order not found")
	} else if err != nil {
		return err
	}
	return responses.OK(c, fiber.StatusOK, "Order status updated", order)
}

// UpdatePayment records the payment outcome the client reports. Out of
// range values are rejected when the order is validated before saving.
func (ctl *Controller) UpdatePayment(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 10*time.Second)
	defer cancel()

	account := middlewares.CurrentAccount(c)
	order, status, msg, err := ctl.loadOrder(ctx, c.Params("id"))
	if err != nil {
		return err
	}
	if order == nil {
		return responses.Fail(c, status, msg)
	}

	if !ctl.policy.AllowsOn(account, policy.OrderUpdatePayment, order.UserID) {
		return responses.Fail(c, fiber.StatusForbidden, "Not authorized to update this order")
	}

	var reqBody PaymentUpdateRequest
	if err := c.BodyParser(&reqBody); err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, "Invalid request format")
	}

	if reqBody.PaymentStatus != "" {
		order.PaymentStatus = reqBody.PaymentStatus
	}
	if reqBody.OrderStatus != "" {
		order.OrderStatus = reqBody.OrderStatus
	}
	if reqBody.TransactionID != "" {
		order.TransactionID = reqBody.TransactionID
	}
	if len(reqBody.PaymentDetails) > 0 {
		order.PaymentDetails = reqBody.PaymentDetails
	}
	order.UpdatedAt = models.Now()

	if err := models.Validate(order); err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, err.Error())
	}

	err = ctl.orders.Save(ctx, order)
	if errors.Is(err, repository.ErrNotFound) {
		return responses.Fail(c, fiber.StatusNotFound, "Order not found")
	} else if err != nil {
		return err
	}
	return responses.OK(c, fiber.StatusOK, "Payment status updated", order)
}

// loadOrder resolves the :id parameter. A nil order with a nil error means
// the caller should answer with status and msg.
func (ctl *Controller) loadOrder(ctx context.Context, rawID string) (*models.Order, int, string, error) {
	orderID, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return nil, fiber.StatusBadRequest, "Invalid order ID", nil
	}
	order, err := ctl.orders.FindByID(ctx, orderID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fiber.StatusNotFound, "Order not found", nil
	} else if err != nil {
		return nil, 0, "", err
	}
	return order, 0, "", nil
}

// populate attaches the owning account to each order. Orders whose owner
// has been removed keep a nil user.
func (ctl *Controller) populate(ctx context.Context, orders []*models.Order) error {
	if len(orders) == 0 {
		return nil
	}
	seen := make(map[primitive.ObjectID]bool, len(orders))
	ids := make([]primitive.ObjectID, 0, len(orders))
	for _, o := range orders {
		if !seen[o.UserID] {
			seen[o.UserID] = true
			ids = append(ids, o.UserID)
		}
	}
	owners, err := ctl.accounts.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, o := range orders {
		if owner, ok := owners[o.UserID]; ok {
			o.User = owner.Ref()
		}
	}
	return nil
}
