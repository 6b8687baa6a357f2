package memrepo

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rakesh3649/Fitness/models"
	"github.com/rakesh3649/Fitness/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAccounts(t *testing.T) {
	ctx := context.Background()
	store := New()

	asha := &models.Account{Name: "Asha", Email: "asha@example.com", Role: models.RoleUser}
	require.NoError(t, store.Accounts.Create(ctx, asha))
	assert.False(t, asha.Id.IsZero())

	err := store.Accounts.Create(ctx, &models.Account{Name: "Again", Email: " ASHA@example.com "})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	found, err := store.Accounts.FindByEmail(ctx, "Asha@Example.com")
	require.NoError(t, err)
	assert.Equal(t, asha.Id, found.Id)

	_, err = store.Accounts.FindByID(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, repository.ErrNotFound)

	phone := "9876543210"
	updated, err := store.Accounts.UpdateProfile(ctx, asha.Id, repository.ProfileUpdate{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "Asha", updated.Name)
	assert.Equal(t, phone, updated.Phone)

	require.NoError(t, store.Accounts.SetRole(ctx, "asha@example.com", models.RoleAdmin))
	found, err = store.Accounts.FindByID(ctx, asha.Id)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, found.Role)
	assert.ErrorIs(t, store.Accounts.SetRole(ctx, "nobody@example.com", models.RoleAdmin), repository.ErrNotFound)

	ghost := primitive.NewObjectID()
	byID, err := store.Accounts.FindByIDs(ctx, []primitive.ObjectID{asha.Id, ghost})
	require.NoError(t, err)
	assert.Len(t, byID, 1)
	assert.Contains(t, byID, asha.Id)
}

func TestOrdersNewestFirstAndIsolated(t *testing.T) {
	ctx := context.Background()
	store := New()
	owner := primitive.NewObjectID()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	var ids []primitive.ObjectID
	for i, at := range []time.Time{base, base.Add(time.Hour), base.Add(time.Hour)} {
		o := &models.Order{
			UserID:         owner,
			Items:          []models.OrderItem{{ProductID: fmt.Sprint(i), Name: "Item", Quantity: 1}},
			PaymentDetails: map[string]string{"method": "card"},
			CreatedAt:      at,
		}
		require.NoError(t, store.Orders.Create(ctx, o))
		ids = append(ids, o.ID)
	}
	require.NoError(t, store.Orders.Create(ctx, &models.Order{UserID: primitive.NewObjectID(), CreatedAt: base}))

	mine, err := store.Orders.ListByUser(ctx, owner)
	require.NoError(t, err)
	require.Len(t, mine, 3)
	assert.Equal(t, []primitive.ObjectID{ids[2], ids[1], ids[0]}, []primitive.ObjectID{mine[0].ID, mine[1].ID, mine[2].ID})

	all, err := store.Orders.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	got, err := store.Orders.FindByID(ctx, ids[0])
	require.NoError(t, err)
	got.Items[0].Name = "changed"
	got.PaymentDetails["method"] = "upi"
	again, err := store.Orders.FindByID(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, "Item", again.Items[0].Name)
	assert.Equal(t, "card", again.PaymentDetails["method"])

	updated, err := store.Orders.SetOrderStatus(ctx, ids[0], models.OrderShipped)
	require.NoError(t, err)
	assert.Equal(t, models.OrderShipped, updated.OrderStatus)
	assert.False(t, updated.UpdatedAt.IsZero())

	_, err = store.Orders.SetOrderStatus(ctx, primitive.NewObjectID(), models.OrderShipped)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, store.Orders.Save(ctx, &models.Order{ID: primitive.NewObjectID()}), repository.ErrNotFound)
}

func TestSubmissions(t *testing.T) {
	ctx := context.Background()
	store := New()

	contact := &models.Contact{Name: "Ravi", Status: models.ContactPending, CreatedAt: models.Now()}
	require.NoError(t, store.Contacts.Create(ctx, contact))
	read, err := store.Contacts.SetStatus(ctx, contact.ID, models.ContactRead)
	require.NoError(t, err)
	assert.Equal(t, models.ContactRead, read.Status)
	_, err = store.Contacts.SetStatus(ctx, primitive.NewObjectID(), models.ContactRead)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	cb := &models.Callback{Name: "Meera", Phone: "9876543210", Status: models.CallbackPending, Notes: "evening"}
	require.NoError(t, store.Callbacks.Create(ctx, cb))
	status := models.CallbackContacted
	updated, err := store.Callbacks.Update(ctx, cb.ID, repository.CallbackUpdate{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, models.CallbackContacted, updated.Status)
	assert.Equal(t, "evening", updated.Notes)

	list, err := store.Callbacks.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestProductsSearchAndPaging(t *testing.T) {
	ctx := context.Background()
	store := New()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	names := []string{"Yoga Mat", "Dumbbell 5kg", "Dumbbell 10kg", "Resistance Band", "Yoga Block"}
	for i, name := range names {
		p := &models.Product{Name: name, Price: 100, Category: "gear", CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, store.Products.Create(ctx, p))
	}

	page, total, err := store.Products.List(ctx, repository.ProductQuery{Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	require.Len(t, page, 2)
	assert.Equal(t, "Yoga Block", page[0].Name)

	page, total, err = store.Products.List(ctx, repository.ProductQuery{Skip: 4, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	require.Len(t, page, 1)
	assert.Equal(t, "Yoga Mat", page[0].Name)

	page, total, err = store.Products.List(ctx, repository.ProductQuery{Search: "DUMB", Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Equal(t, "Dumbbell 10kg", page[0].Name)

	page, _, err = store.Products.List(ctx, repository.ProductQuery{Skip: 50, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, page)

	all, _, err := store.Products.List(ctx, repository.ProductQuery{})
	require.NoError(t, err)
	target := all[0]
	require.NoError(t, store.Products.Delete(ctx, target.ID))
	assert.ErrorIs(t, store.Products.Delete(ctx, target.ID), repository.ErrNotFound)
	_, err = store.Products.FindByID(ctx, target.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
