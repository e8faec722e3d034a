// Package store wraps the MongoDB collections behind small types that are
// constructed with an explicit database handle and passed into handlers.
package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"primeproperties/metrics"
	"primeproperties/models"
)

const featuredCap = 6

type Properties struct {
	collection *mongo.Collection
}

func NewProperties(db *mongo.Database, collectionName string) (*Properties, error) {
	if collectionName == "" {
		collectionName = "properties"
	}
	p := &Properties{collection: db.Collection(collectionName)}
	if err := p.ensureIndexes(context.Background()); err != nil {
		return nil, fmt.Errorf("property indexes: %w", err)
	}
	return p, nil
}

// ensureIndexes mirrors the schema-level indexes the API depends on: the
// title+description text index behind the search filter, and createdAt
// for the list sort.
func (p *Properties) ensureIndexes(ctx context.Context) error {
	_, err := p.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "title", Value: "text"},
				{Key: "description", Value: "text"},
			},
		},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "agent", Value: 1}}},
	})
	return err
}

// agentJoinStages joins the owning user's public profile onto each result,
// the aggregation rendering of populate('agent', ...).
func agentJoinStages() []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "agent",
			"foreignField": "_id",
			"as":           "agentProfile",
		}}},
		{{Key: "$unwind", Value: bson.M{
			"path":                       "$agentProfile",
			"preserveNullAndEmptyArrays": true,
		}}},
		{{Key: "$project", Value: bson.M{
			"agentProfile.password": 0,
		}}},
	}
}

func (p *Properties) aggregate(ctx context.Context, pipeline []bson.D) ([]models.Property, error) {
	cursor, err := p.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	properties := []models.Property{}
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, err
	}
	return properties, nil
}

// List returns one page of matching properties, newest first, plus the
// total match count so the caller can derive the page count.
func (p *Properties) List(ctx context.Context, q ListingQuery) ([]models.Property, int64, error) {
	defer metrics.TrackDBOperation("property_list")(time.Now())

	total, err := p.collection.CountDocuments(ctx, q.Filter)
	if err != nil {
		return nil, 0, err
	}

	pipeline := []bson.D{
		{{Key: "$match", Value: q.Filter}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		{{Key: "$skip", Value: int64((q.Page - 1) * q.Limit)}},
		{{Key: "$limit", Value: int64(q.Limit)}},
	}
	pipeline = append(pipeline, agentJoinStages()...)

	properties, err := p.aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, err
	}
	return properties, total, nil
}

// GetByID fetches one property with its agent profile. A malformed id is
// reported as ErrNotFound, the same as an id that resolves to nothing.
func (p *Properties) GetByID(ctx context.Context, id string) (models.Property, error) {
	defer metrics.TrackDBOperation("property_get")(time.Now())

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Property{}, ErrNotFound
	}

	pipeline := []bson.D{
		{{Key: "$match", Value: bson.M{"_id": objectID}}},
	}
	pipeline = append(pipeline, agentJoinStages()...)

	properties, err := p.aggregate(ctx, pipeline)
	if err != nil {
		return models.Property{}, err
	}
	if len(properties) == 0 {
		return models.Property{}, ErrNotFound
	}
	return properties[0], nil
}

// FindByID fetches the raw record without the profile join; the mutation
// path uses it to learn the owning agent before authorizing.
func (p *Properties) FindByID(ctx context.Context, id string) (models.Property, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Property{}, ErrNotFound
	}

	var property models.Property
	err = p.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&property)
	if err == mongo.ErrNoDocuments {
		return models.Property{}, ErrNotFound
	}
	if err != nil {
		return models.Property{}, err
	}
	return property, nil
}

func (p *Properties) ListByAgent(ctx context.Context, agentID string) ([]models.Property, error) {
	defer metrics.TrackDBOperation("property_list_agent")(time.Now())

	objectID, err := primitive.ObjectIDFromHex(agentID)
	if err != nil {
		return nil, ErrNotFound
	}

	pipeline := []bson.D{
		{{Key: "$match", Value: bson.M{"agent": objectID}}},
	}
	pipeline = append(pipeline, agentJoinStages()...)

	return p.aggregate(ctx, pipeline)
}

func (p *Properties) ListFeatured(ctx context.Context) ([]models.Property, error) {
	defer metrics.TrackDBOperation("property_list_featured")(time.Now())

	pipeline := []bson.D{
		{{Key: "$match", Value: bson.M{"featured": true}}},
		{{Key: "$limit", Value: int64(featuredCap)}},
	}
	pipeline = append(pipeline, agentJoinStages()...)

	return p.aggregate(ctx, pipeline)
}

func (p *Properties) Insert(ctx context.Context, property *models.Property) (primitive.ObjectID, error) {
	defer metrics.TrackDBOperation("property_insert")(time.Now())

	result, err := p.collection.InsertOne(ctx, property)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

// UpdateSet applies a $set of the given fields. ErrNotFound covers the
// record disappearing between the authorization read and the write.
func (p *Properties) UpdateSet(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	defer metrics.TrackDBOperation("property_update")(time.Now())

	result, err := p.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Properties) Delete(ctx context.Context, id primitive.ObjectID) error {
	defer metrics.TrackDBOperation("property_delete")(time.Now())

	result, err := p.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
