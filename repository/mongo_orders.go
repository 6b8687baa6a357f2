package repository

import (
	"context"

	"github.com/rakesh3649/Fitness/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoOrders struct {
	coll *mongo.Collection
}

func (r *mongoOrders) Create(ctx context.Context, o *models.Order) error {
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	_, err := r.coll.InsertOne(ctx, o)
	return translate(err, "insert order")
}

func (r *mongoOrders) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var o models.Order
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&o); err != nil {
		return nil, translate(err, "find order")
	}
	return &o, nil
}

func (r *mongoOrders) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return r.find(ctx, bson.M{"user": userID})
}

func (r *mongoOrders) List(ctx context.Context) ([]models.Order, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoOrders) find(ctx context.Context, filter bson.M) ([]models.Order, error) {
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, translate(err, "find orders")
	}
	orders := make([]models.Order, 0)
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, translate(err, "decode orders")
	}
	return orders, nil
}

func (r *mongoOrders) SetOrderStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) (*models.Order, error) {
	update := bson.M{
		"$set": bson.M{
			"orderStatus": status,
			"updatedAt":   models.Now(),
		},
	}
	var o models.Order
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, afterUpdate()).Decode(&o); err != nil {
		return nil, translate(err, "update order status")
	}
	return &o, nil
}

func (r *mongoOrders) Save(ctx context.Context, o *models.Order) error {
	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": o.ID}, o)
	if err != nil {
		return translate(err, "save order")
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
