package handlers

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"primeproperties/models"
	"primeproperties/store"
)

// The handlers depend on these interfaces rather than the Mongo-backed
// types so tests can swap in fakes.

type PropertyStore interface {
	List(ctx context.Context, q store.ListingQuery) ([]models.Property, int64, error)
	GetByID(ctx context.Context, id string) (models.Property, error)
	FindByID(ctx context.Context, id string) (models.Property, error)
	ListByAgent(ctx context.Context, agentID string) ([]models.Property, error)
	ListFeatured(ctx context.Context) ([]models.Property, error)
	Insert(ctx context.Context, property *models.Property) (primitive.ObjectID, error)
	UpdateSet(ctx context.Context, id primitive.ObjectID, set bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error)
	FindByIDHex(ctx context.Context, id string) (models.User, error)
	Insert(ctx context.Context, user *models.User) error
}

type InquiryStore interface {
	Insert(ctx context.Context, inquiry *models.Inquiry) error
	ListByAgent(ctx context.Context, agentID primitive.ObjectID) ([]models.Inquiry, error)
}
