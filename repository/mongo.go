package repository

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	UsersCollection     = "users"
	ContactsCollection  = "contacts"
	CallbacksCollection = "callbacks"
	OrdersCollection    = "orders"
	ProductsCollection  = "products"
)

var newestFirst = bson.D{{Key: "createdAt", Value: -1}}

// NewMongo wires every port to a collection of db.
func NewMongo(client *mongo.Client, db *mongo.Database) *Store {
	return &Store{
		Accounts:  &mongoAccounts{coll: db.Collection(UsersCollection)},
		Contacts:  &mongoContacts{coll: db.Collection(ContactsCollection)},
		Callbacks: &mongoCallbacks{coll: db.Collection(CallbacksCollection)},
		Orders:    &mongoOrders{coll: db.Collection(OrdersCollection)},
		Products:  &mongoProducts{coll: db.Collection(ProductsCollection)},
		Pinger:    mongoPinger{client: client},
	}
}

// EnsureIndexes creates the unique email index and the createdAt/user
// indexes the list queries sort on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return errors.Wrap(err, "create users.email index")
	}

	for _, name := range []string{ContactsCollection, CallbacksCollection, OrdersCollection} {
		if _, err := db.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{Keys: newestFirst}); err != nil {
			return errors.Wrapf(err, "create %s.createdAt index", name)
		}
	}

	_, err = db.Collection(OrdersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	return errors.Wrap(err, "create orders.user index")
}

type mongoPinger struct {
	client *mongo.Client
}

func (p mongoPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx, readpref.Primary())
}

// translate maps driver errors onto the package sentinels and attaches a
// stack to everything else.
func translate(err error, msg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicate
	default:
		return errors.Wrap(err, msg)
	}
}

func afterUpdate() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}
