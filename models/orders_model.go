package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentMethod string

const (
	PaymentCard       PaymentMethod = "card"
	PaymentUPI        PaymentMethod = "upi"
	PaymentNetbanking PaymentMethod = "netbanking"
	PaymentCOD        PaymentMethod = "cod"
)

var PaymentMethods = []PaymentMethod{PaymentCard, PaymentUPI, PaymentNetbanking, PaymentCOD}

func (m PaymentMethod) Valid() bool { return contains(PaymentMethods, m) }

type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentProcessing PaymentStatus = "processing"
	PaymentCompleted  PaymentStatus = "completed"
	PaymentFailed     PaymentStatus = "failed"
)

type OrderStatus string

// OrderConfirmed is what the checkout client sets after payment;
// OrderProcessing is what admins use. Both are accepted.
const (
	OrderPending    OrderStatus = "pending"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

var OrderStatuses = []OrderStatus{OrderPending, OrderConfirmed, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled}

func (s OrderStatus) Valid() bool { return contains(OrderStatuses, s) }

func OrderStatusList() string { return joinValues(OrderStatuses) }

const (
	DefaultOrderNotes   = "Order from FitnessGym website"
	DefaultProductImage = "default-product.jpg"
)

// OrderItem is a line captured at order time. ProductID is an opaque
// catalog key; name and price are whatever the client sent.
type OrderItem struct {
	ProductID string  `json:"productId" bson:"productId" validate:"required"`
	Name      string  `json:"name" bson:"name" validate:"required"`
	Price     float64 `json:"price" bson:"price"`
	Quantity  int     `json:"quantity" bson:"quantity" validate:"min=1"`
	Image     string  `json:"image,omitempty" bson:"image,omitempty"`
}

// Order represents a customer order
type Order struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID          primitive.ObjectID `json:"userId" bson:"user"`
	User            *AccountRef        `json:"user,omitempty" bson:"-"`
	Items           []OrderItem        `json:"items" bson:"items" validate:"required,min=1,dive"`
	TotalAmount     float64            `json:"totalAmount" bson:"totalAmount" validate:"gte=0"`
	ShippingAddress ShippingAddress    `json:"shippingAddress" bson:"shippingAddress"`
	PaymentMethod   PaymentMethod      `json:"paymentMethod" bson:"paymentMethod" validate:"required,oneof=card upi netbanking cod"`
	PaymentStatus   PaymentStatus      `json:"paymentStatus" bson:"paymentStatus" validate:"required,oneof=pending processing completed failed"`
	OrderStatus     OrderStatus        `json:"orderStatus" bson:"orderStatus" validate:"required,oneof=pending confirmed processing shipped delivered cancelled"`
	OrderNotes      string             `json:"orderNotes" bson:"orderNotes"`
	TransactionID   string             `json:"transactionId,omitempty" bson:"transactionId,omitempty"`
	PaymentDetails  map[string]string  `json:"paymentDetails,omitempty" bson:"paymentDetails,omitempty"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Normalize fills the schema defaults for a new order.
func (o *Order) Normalize() {
	if o.PaymentMethod == "" {
		o.PaymentMethod = PaymentCard
	}
	if o.PaymentStatus == "" {
		o.PaymentStatus = PaymentPending
	}
	if o.OrderStatus == "" {
		o.OrderStatus = OrderPending
	}
	if o.OrderNotes == "" {
		o.OrderNotes = DefaultOrderNotes
	}
	if o.ShippingAddress.AddressType == "" {
		o.ShippingAddress.AddressType = AddressHome
	}
	now := Now()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	if o.UpdatedAt.IsZero() {
		o.UpdatedAt = o.CreatedAt
	}
}
