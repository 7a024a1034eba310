package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bikebay/server/internal/apperr"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BikeRepo interface {
	CreateBike(ctx context.Context, bike *Bike) (*Bike, error)
	GetBikeByID(ctx context.Context, id uuid.UUID) (*Bike, error)
	GetBikeWithHoster(ctx context.Context, id uuid.UUID) (*BikeWithHoster, error)
	ListAvailableBikes(ctx context.Context) ([]*BikeWithHoster, error)
	ListBikesByHoster(ctx context.Context, hosterID uuid.UUID) ([]*BikeWithHoster, error)
	ListBikeIDsByHoster(ctx context.Context, hosterID uuid.UUID) ([]uuid.UUID, error)
	UpdateBike(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*Bike, error)
	DeleteBike(ctx context.Context, id uuid.UUID) error
	ReserveBike(ctx context.Context, id uuid.UUID) error
	ReleaseBike(ctx context.Context, id uuid.UUID) error
}

// hosterLookupStages joins the owning user and projects their name onto
// the bike document, mirroring the populate('hoster', 'name') shape.
func hosterLookupStages() []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.M{
			"from":         UsersColName,
			"localField":   "hoster_id",
			"foreignField": "_id",
			"as":           "hoster_docs",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"hoster_name": bson.M{"$ifNull": bson.A{
				bson.M{"$arrayElemAt": bson.A{"$hoster_docs.name", 0}},
				"",
			}},
		}}},
		{{Key: "$project", Value: bson.M{"hoster_docs": 0}}},
	}
}

func (mdb *MongodbRepo) CreateBike(ctx context.Context, bike *Bike) (*Bike, error) {
	col, err := mdb.GetCollection(ctx, DBName, BikesColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	if _, err := col.InsertOne(ctx, bike); err != nil {
		return nil, fmt.Errorf("error inserting bike: %v", err)
	}

	return bike, nil
}

func (mdb *MongodbRepo) GetBikeByID(ctx context.Context, id uuid.UUID) (*Bike, error) {
	col, err := mdb.GetCollection(ctx, DBName, BikesColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var bike Bike
	err = col.FindOne(ctx, bson.M{"_id": id}).Decode(&bike)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.New(apperr.CodeNotFound, "bike not found")
		}
		return nil, fmt.Errorf("error finding bike by ID: %v", err)
	}

	return &bike, nil
}

func (mdb *MongodbRepo) GetBikeWithHoster(ctx context.Context, id uuid.UUID) (*BikeWithHoster, error) {
	bikes, err := mdb.aggregateBikes(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}
	if len(bikes) == 0 {
		return nil, apperr.New(apperr.CodeNotFound, "bike not found")
	}
	return bikes[0], nil
}

func (mdb *MongodbRepo) ListAvailableBikes(ctx context.Context) ([]*BikeWithHoster, error) {
	return mdb.aggregateBikes(ctx, bson.M{"available": true})
}

func (mdb *MongodbRepo) ListBikesByHoster(ctx context.Context, hosterID uuid.UUID) ([]*BikeWithHoster, error) {
	return mdb.aggregateBikes(ctx, bson.M{"hoster_id": hosterID})
}

func (mdb *MongodbRepo) aggregateBikes(ctx context.Context, match bson.M) ([]*BikeWithHoster, error) {
	col, err := mdb.GetCollection(ctx, DBName, BikesColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	pipeline := append(mongo.Pipeline{
		{{Key: "$match", Value: match}},
	}, hosterLookupStages()...)

	cursor, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating bikes: %v", err)
	}
	defer cursor.Close(ctx)

	bikes := []*BikeWithHoster{}
	for cursor.Next(ctx) {
		var bike BikeWithHoster
		if err := cursor.Decode(&bike); err != nil {
			return nil, fmt.Errorf("error decoding bike: %v", err)
		}
		bikes = append(bikes, &bike)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return bikes, nil
}

func (mdb *MongodbRepo) ListBikeIDsByHoster(ctx context.Context, hosterID uuid.UUID) ([]uuid.UUID, error) {
	col, err := mdb.GetCollection(ctx, DBName, BikesColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	cursor, err := col.Find(ctx, bson.M{"hoster_id": hosterID},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, fmt.Errorf("error finding bikes by hoster: %v", err)
	}
	defer cursor.Close(ctx)

	var ids []uuid.UUID
	for cursor.Next(ctx) {
		var doc struct {
			ID uuid.UUID `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("error decoding bike ID: %v", err)
		}
		ids = append(ids, doc.ID)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return ids, nil
}

func (mdb *MongodbRepo) UpdateBike(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*Bike, error) {
	col, err := mdb.GetCollection(ctx, DBName, BikesColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	set := bson.M{"updated_at": time.Now()}
	for key, value := range fields {
		set[key] = value
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated Bike
	err = col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.New(apperr.CodeNotFound, "bike not found")
		}
		return nil, fmt.Errorf("error updating bike: %v", err)
	}

	return &updated, nil
}

func (mdb *MongodbRepo) DeleteBike(ctx context.Context, id uuid.UUID) error {
	col, err := mdb.GetCollection(ctx, DBName, BikesColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	res, err := col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("error deleting bike: %v", err)
	}
	if res.DeletedCount == 0 {
		return apperr.New(apperr.CodeNotFound, "bike not found")
	}

	return nil
}

// ReserveBike flips the availability flag false with a single conditional
// update. The filter requires available == true at commit time, so of two
// racing requests only one can match; the loser gets a Conflict.
func (mdb *MongodbRepo) ReserveBike(ctx context.Context, id uuid.UUID) error {
	col, err := mdb.GetCollection(ctx, DBName, BikesColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	filter := bson.M{"_id": id, "available": true}
	update := bson.M{"$set": bson.M{"available": false, "updated_at": time.Now()}}

	err = col.FindOneAndUpdate(ctx, filter, update).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperr.New(apperr.CodeConflict, "bike is not available")
		}
		return fmt.Errorf("error reserving bike: %v", err)
	}

	return nil
}

func (mdb *MongodbRepo) ReleaseBike(ctx context.Context, id uuid.UUID) error {
	col, err := mdb.GetCollection(ctx, DBName, BikesColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	res, err := col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"available": true, "updated_at": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("error releasing bike: %v", err)
	}
	if res.MatchedCount == 0 {
		return apperr.New(apperr.CodeNotFound, "bike not found")
	}

	return nil
}
