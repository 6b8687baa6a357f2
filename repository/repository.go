// Package repository defines the storage ports used by the controllers and
// their MongoDB implementation. The memrepo subpackage provides an
// in-process implementation of the same ports.
package repository

import (
	"context"
	"errors"

	"github.com/rakesh3649/Fitness/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound  = errors.New("repository: record not found")
	ErrDuplicate = errors.New("repository: duplicate key")
)

type Accounts interface {
	Create(ctx context.Context, a *models.Account) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Account, error)
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	// FindByIDs returns the accounts that exist among ids, keyed by id.
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.Account, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, upd ProfileUpdate) (*models.Account, error)
	SetRole(ctx context.Context, email string, role models.Role) error
}

type ProfileUpdate struct {
	Name  *string
	Phone *string
}

type Contacts interface {
	Create(ctx context.Context, c *models.Contact) error
	// List returns every submission, newest first.
	List(ctx context.Context) ([]models.Contact, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Contact, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.ContactStatus) (*models.Contact, error)
}

type Callbacks interface {
	Create(ctx context.Context, cb *models.Callback) error
	List(ctx context.Context) ([]models.Callback, error)
	// Update applies the non-nil fields and returns the stored record.
	Update(ctx context.Context, id primitive.ObjectID, upd CallbackUpdate) (*models.Callback, error)
}

type CallbackUpdate struct {
	Status *models.CallbackStatus
	Notes  *string
}

func (u CallbackUpdate) Empty() bool { return u.Status == nil && u.Notes == nil }

type Orders interface {
	Create(ctx context.Context, o *models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	List(ctx context.Context) ([]models.Order, error)
	SetOrderStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) (*models.Order, error)
	// Save replaces the stored order with o.
	Save(ctx context.Context, o *models.Order) error
}

type Products interface {
	List(ctx context.Context, q ProductQuery) ([]models.Product, int64, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	Save(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ProductQuery filters the catalog by a case-insensitive name fragment.
type ProductQuery struct {
	Search string
	Skip   int64
	Limit  int64
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Store bundles the ports handed to the HTTP layer.
type Store struct {
	Accounts  Accounts
	Contacts  Contacts
	Callbacks Callbacks
	Orders    Orders
	Products  Products
	Pinger    Pinger
}
