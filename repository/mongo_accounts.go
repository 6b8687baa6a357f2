package repository

import (
	"context"

	"github.com/rakesh3649/Fitness/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type mongoAccounts struct {
	coll *mongo.Collection
}

func (r *mongoAccounts) Create(ctx context.Context, a *models.Account) error {
	a.Email = models.NormalizeEmail(a.Email)
	if a.Id.IsZero() {
		a.Id = primitive.NewObjectID()
	}
	_, err := r.coll.InsertOne(ctx, a)
	return translate(err, "insert account")
}

func (r *mongoAccounts) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Account, error) {
	var a models.Account
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		return nil, translate(err, "find account")
	}
	return &a, nil
}

func (r *mongoAccounts) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	var a models.Account
	if err := r.coll.FindOne(ctx, bson.M{"email": models.NormalizeEmail(email)}).Decode(&a); err != nil {
		return nil, translate(err, "find account by email")
	}
	return &a, nil
}

func (r *mongoAccounts) FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.Account, error) {
	out := make(map[primitive.ObjectID]*models.Account, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, translate(err, "find accounts")
	}
	var accounts []models.Account
	if err := cursor.All(ctx, &accounts); err != nil {
		return nil, translate(err, "decode accounts")
	}
	for i := range accounts {
		out[accounts[i].Id] = &accounts[i]
	}
	return out, nil
}

func (r *mongoAccounts) UpdateProfile(ctx context.Context, id primitive.ObjectID, upd ProfileUpdate) (*models.Account, error) {
	set := bson.M{}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Phone != nil {
		set["phone"] = *upd.Phone
	}
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	var a models.Account
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, afterUpdate()).Decode(&a)
	if err != nil {
		return nil, translate(err, "update account profile")
	}
	return &a, nil
}

func (r *mongoAccounts) SetRole(ctx context.Context, email string, role models.Role) error {
	result, err := r.coll.UpdateOne(ctx,
		bson.M{"email": models.NormalizeEmail(email)},
		bson.M{"$set": bson.M{"role": role}},
	)
	if err != nil {
		return translate(err, "set account role")
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
