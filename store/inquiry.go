package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"primeproperties/metrics"
	"primeproperties/models"
)

type Inquiries struct {
	collection *mongo.Collection
}

func NewInquiries(db *mongo.Database, collectionName string) *Inquiries {
	if collectionName == "" {
		collectionName = "inquiries"
	}
	return &Inquiries{collection: db.Collection(collectionName)}
}

func (i *Inquiries) Insert(ctx context.Context, inquiry *models.Inquiry) error {
	defer metrics.TrackDBOperation("inquiry_insert")(time.Now())

	_, err := i.collection.InsertOne(ctx, inquiry)
	return err
}

// ListByAgent returns the inquiries addressed to the agent's listings,
// newest first.
func (i *Inquiries) ListByAgent(ctx context.Context, agentID primitive.ObjectID) ([]models.Inquiry, error) {
	defer metrics.TrackDBOperation("inquiry_list")(time.Now())

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := i.collection.Find(ctx, bson.M{"agentId": agentID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	inquiries := []models.Inquiry{}
	for cursor.Next(ctx) {
		var inquiry models.Inquiry
		if err := cursor.Decode(&inquiry); err != nil {
			continue
		}
		inquiries = append(inquiries, inquiry)
	}
	return inquiries, cursor.Err()
}
