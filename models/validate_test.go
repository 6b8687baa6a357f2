package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestContactValidation(t *testing.T) {
	c := Contact{Name: "  Meera ", Email: " Meera@Example.COM ", Subject: "Hi", Message: "hello"}
	c.Normalize()
	require.NoError(t, Validate(c))
	assert.Equal(t, "Meera", c.Name)
	assert.Equal(t, "meera@example.com", c.Email)
	assert.Equal(t, ContactPending, c.Status)
	assert.False(t, c.CreatedAt.IsZero())

	c.Name = strings.Repeat("a", 101)
	c.Email = "not-an-email"
	c.Status = "shelved"
	err := Validate(c)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name cannot be more than 100 characters", verr.Fields["name"])
	assert.Equal(t, "email must be a valid email address", verr.Fields["email"])
	assert.Equal(t, "status must be one of: pending, read, replied, archived", verr.Fields["status"])
	// Messages are joined in field order.
	assert.Equal(t, "email must be a valid email address, name cannot be more than 100 characters, status must be one of: pending, read, replied, archived", err.Error())
}

func TestCallbackNotesLimit(t *testing.T) {
	cb := Callback{Name: "Asha", Phone: " 9876543210 "}
	cb.Normalize()
	assert.Equal(t, "9876543210", cb.Phone)
	assert.Equal(t, CallbackPending, cb.Status)

	cb.Notes = strings.Repeat("é", MaxCallbackNotes)
	assert.False(t, NotesTooLong(cb.Notes))
	require.NoError(t, Validate(cb))

	cb.Notes += "x"
	assert.True(t, NotesTooLong(cb.Notes))
	assert.Error(t, Validate(cb))
}

func TestOrderDefaultsAndValidation(t *testing.T) {
	owner := primitive.NewObjectID()
	o := Order{
		UserID:      owner,
		Items:       []OrderItem{{ProductID: "1", Name: "Whey", Price: 2900, Quantity: 1}},
		TotalAmount: 2999,
	}
	o.Normalize()
	require.NoError(t, Validate(&o))
	assert.Equal(t, PaymentCard, o.PaymentMethod)
	assert.Equal(t, PaymentPending, o.PaymentStatus)
	assert.Equal(t, OrderPending, o.OrderStatus)
	assert.Equal(t, DefaultOrderNotes, o.OrderNotes)
	assert.Equal(t, AddressHome, o.ShippingAddress.AddressType)
	assert.Equal(t, o.CreatedAt, o.UpdatedAt)

	o.PaymentStatus = "bogus"
	o.Items[0].Quantity = 0
	var verr *ValidationError
	require.ErrorAs(t, Validate(&o), &verr)
	assert.Contains(t, verr.Fields, "paymentStatus")
	assert.Contains(t, verr.Fields, "items[0].quantity")

	o = Order{TotalAmount: 1}
	o.Normalize()
	require.ErrorAs(t, Validate(&o), &verr)
	assert.Equal(t, "items is required", verr.Fields["items"])
}

func TestEnums(t *testing.T) {
	assert.True(t, OrderConfirmed.Valid())
	assert.True(t, OrderProcessing.Valid())
	assert.False(t, OrderStatus("lost").Valid())
	assert.Equal(t, "pending, confirmed, processing, shipped, delivered, cancelled", OrderStatusList())
	assert.True(t, PaymentCOD.Valid())
	assert.False(t, PaymentMethod("cash").Valid())
	assert.Equal(t, "pending, contacted, completed, cancelled", CallbackStatusList())
}

func TestAccountRef(t *testing.T) {
	var nilAccount *Account
	assert.Nil(t, nilAccount.Ref())

	a := &Account{Id: primitive.NewObjectID(), Name: "Ravi", Email: "ravi@example.com", Password: "hash", Role: RoleAdmin}
	ref := a.Ref()
	assert.Equal(t, a.Id, ref.Id)
	assert.Equal(t, "ravi@example.com", ref.Email)
}

func TestProductNormalize(t *testing.T) {
	p := Product{Name: " Yoga Mat ", Price: 799, Category: "equipment"}
	p.Normalize()
	require.NoError(t, Validate(p))
	assert.Equal(t, "Yoga Mat", p.Name)
	assert.Equal(t, DefaultProductImage, p.Image)

	p.Price = 0
	p.Stock = -1
	var verr *ValidationError
	require.ErrorAs(t, Validate(p), &verr)
	assert.Equal(t, "price must be greater than 0", verr.Fields["price"])
	assert.Equal(t, "stock must be at least 0", verr.Fields["stock"])
}
