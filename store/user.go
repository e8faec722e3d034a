package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"primeproperties/metrics"
	"primeproperties/models"
)

type Users struct {
	collection *mongo.Collection
}

func NewUsers(db *mongo.Database, collectionName string) (*Users, error) {
	if collectionName == "" {
		collectionName = "users"
	}
	u := &Users{collection: db.Collection(collectionName)}
	_, err := u.collection.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("user indexes: %w", err)
	}
	return u, nil
}

func (u *Users) FindByEmail(ctx context.Context, email string) (models.User, error) {
	defer metrics.TrackDBOperation("user_find_email")(time.Now())

	var user models.User
	err := u.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (u *Users) FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	defer metrics.TrackDBOperation("user_find_id")(time.Now())

	var user models.User
	err := u.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// FindByIDHex resolves a path-parameter id; malformed hex is ErrNotFound.
func (u *Users) FindByIDHex(ctx context.Context, id string) (models.User, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.User{}, ErrNotFound
	}
	return u.FindByID(ctx, objectID)
}

func (u *Users) Insert(ctx context.Context, user *models.User) error {
	defer metrics.TrackDBOperation("user_insert")(time.Now())

	_, err := u.collection.InsertOne(ctx, user)
	return err
}
