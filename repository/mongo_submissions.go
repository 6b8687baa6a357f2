package repository

import (
	"context"

	"github.com/rakesh3649/Fitness/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoContacts struct {
	coll *mongo.Collection
}

func (r *mongoContacts) Create(ctx context.Context, c *models.Contact) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	_, err := r.coll.InsertOne(ctx, c)
	return translate(err, "insert contact")
}

func (r *mongoContacts) List(ctx context.Context) ([]models.Contact, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, translate(err, "find contacts")
	}
	contacts := make([]models.Contact, 0)
	if err := cursor.All(ctx, &contacts); err != nil {
		return nil, translate(err, "decode contacts")
	}
	return contacts, nil
}

func (r *mongoContacts) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Contact, error) {
	var c models.Contact
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, translate(err, "find contact")
	}
	return &c, nil
}

func (r *mongoContacts) SetStatus(ctx context.Context, id primitive.ObjectID, status models.ContactStatus) (*models.Contact, error) {
	var c models.Contact
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}}, afterUpdate()).Decode(&c)
	if err != nil {
		return nil, translate(err, "update contact status")
	}
	return &c, nil
}

type mongoCallbacks struct {
	coll *mongo.Collection
}

func (r *mongoCallbacks) Create(ctx context.Context, cb *models.Callback) error {
	if cb.ID.IsZero() {
		cb.ID = primitive.NewObjectID()
	}
	_, err := r.coll.InsertOne(ctx, cb)
	return translate(err, "insert callback")
}

func (r *mongoCallbacks) List(ctx context.Context) ([]models.Callback, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, translate(err, "find callbacks")
	}
	callbacks := make([]models.Callback, 0)
	if err := cursor.All(ctx, &callbacks); err != nil {
		return nil, translate(err, "decode callbacks")
	}
	return callbacks, nil
}

func (r *mongoCallbacks) Update(ctx context.Context, id primitive.ObjectID, upd CallbackUpdate) (*models.Callback, error) {
	var cb models.Callback
	if upd.Empty() {
		if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&cb); err != nil {
			return nil, translate(err, "find callback")
		}
		return &cb, nil
	}

	set := bson.M{}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}
	if upd.Notes != nil {
		set["notes"] = *upd.Notes
	}
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, afterUpdate()).Decode(&cb)
	if err != nil {
		return nil, translate(err, "update callback")
	}
	return &cb, nil
}
